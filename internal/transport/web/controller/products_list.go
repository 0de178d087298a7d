package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/verdantly/wellness-api/internal/datasources"
	"github.com/verdantly/wellness-api/internal/domain"
)

// ProductsList handles GET /v1/products.
type ProductsList struct {
	Lister      datasources.ProductLister
	Counter     datasources.ProductCounter
	CacheMaxAge time.Duration
}

type ProductsListResponse struct {
	Data     []domain.Product     `json:"data"`
	Metadata ProductsListMetadata `json:"metadata"`
}

type ProductsListMetadata struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
}

func (c ProductsList) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	filters, err := productFiltersFromQuery(r.URL.Query())
	if err != nil {
		logger.ErrorContext(ctx, "unable to parse product filters in query string", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	options, err := productListOptionsFromQuery(r.URL.Query())
	if err != nil {
		logger.ErrorContext(ctx, "unable to parse product list options in query string", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	products, err := c.Lister.ListProducts(ctx, filters, options)
	if err != nil {
		logger.ErrorContext(ctx, "unable to fetch products", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	total, err := c.Counter.TotalMatchingProducts(ctx, filters)
	if err != nil {
		logger.ErrorContext(ctx, "unable to count products", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if products == nil {
		products = []domain.Product{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", fmt.Sprintf("max-age=%d", int(c.CacheMaxAge.Seconds())))

	if err := json.NewEncoder(w).Encode(ProductsListResponse{
		Data: products,
		Metadata: ProductsListMetadata{
			Total:    total,
			Page:     options.Page,
			PageSize: options.PageSize,
		},
	}); err != nil {
		logger.ErrorContext(ctx, "unable to write products to response", "error", err)
	}
}

func productFiltersFromQuery(q url.Values) (domain.ProductFilters, error) {
	var filters domain.ProductFilters

	if q.Has("category_id") {
		categoryID, err := strconv.ParseInt(q.Get("category_id"), 10, 64)
		if err != nil {
			return domain.ProductFilters{}, fmt.Errorf("unable to parse category_id from query: %w", err)
		}
		filters.CategoryID = categoryID
	}

	filters.NameFulltext = q.Get("search")

	if q.Has("min_price_cents") {
		minPrice, err := strconv.ParseInt(q.Get("min_price_cents"), 10, 64)
		if err != nil {
			return domain.ProductFilters{}, fmt.Errorf("unable to parse min_price_cents from query: %w", err)
		}
		filters.MinPriceCents = minPrice
	}

	if q.Has("max_price_cents") {
		maxPrice, err := strconv.ParseInt(q.Get("max_price_cents"), 10, 64)
		if err != nil {
			return domain.ProductFilters{}, fmt.Errorf("unable to parse max_price_cents from query: %w", err)
		}
		filters.MaxPriceCents = maxPrice
	}

	filters.InStockOnly = q.Get("in_stock") == "true"

	return filters, nil
}

func productListOptionsFromQuery(q url.Values) (domain.ProductListOptions, error) {
	var options domain.ProductListOptions

	page, pageSize, err := parsePagination(q)
	if err != nil {
		return domain.ProductListOptions{}, err
	}
	options.Page = page
	options.PageSize = pageSize

	if q.Has("sort") {
		orderings := strings.Split(q.Get("sort"), ",")

		for _, ordering := range orderings {
			field := ordering
			desc := false
			if strings.HasSuffix(ordering, "_desc") {
				field = ordering[:len(ordering)-5]
				desc = true
			}

			if !slices.Contains(domain.ValidProductOrderingFields, domain.ProductOrderingField(field)) {
				return domain.ProductListOptions{}, fmt.Errorf("unrecognised product ordering field: %s", field)
			}

			options.Ordering = append(options.Ordering, domain.ProductOrdering{
				Field: domain.ProductOrderingField(field),
				Desc:  desc,
			})
		}
	}

	return options, nil
}
