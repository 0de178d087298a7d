package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/verdantly/wellness-api/internal/datasources"
	"github.com/verdantly/wellness-api/internal/domain"
)

const similarProductsLimit = 6

// SimilarProductsList handles GET /v1/products/{product_id}/similar. A
// missing or empty similarity index degrades to an empty list.
type SimilarProductsList struct {
	Fetcher    datasources.ProductFetcher
	Similarity datasources.SimilarProductLister
}

type SimilarProductsListResponse struct {
	Data []domain.Product `json:"data"`
}

func (c SimilarProductsList) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	productID, err := strconv.ParseInt(mux.Vars(r)["product_id"], 10, 64)
	if err != nil {
		logger.ErrorContext(ctx, "invalid product ID", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if _, err := c.Fetcher.GetProduct(ctx, productID); err != nil {
		if errors.Is(err, datasources.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		logger.ErrorContext(ctx, "unable to fetch product", "error", err, "product_id", productID)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	hits, err := c.Similarity.ListSimilarProducts(ctx, productID, similarProductsLimit)
	if err != nil {
		logger.WarnContext(ctx, "similarity lookup failed, returning empty list",
			"error", err, "product_id", productID)
		hits = nil
	}

	products := make([]domain.Product, 0, len(hits))
	for _, hit := range hits {
		product, err := c.Fetcher.GetProduct(ctx, hit.ProductID)
		if err != nil {
			// Index entries can outlive catalog rows.
			if !errors.Is(err, datasources.ErrNotFound) {
				logger.WarnContext(ctx, "unable to fetch similar product",
					"error", err, "product_id", hit.ProductID)
			}
			continue
		}
		products = append(products, product)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(SimilarProductsListResponse{Data: products}); err != nil {
		logger.ErrorContext(ctx, "unable to write similar products to response", "error", err)
	}
}
