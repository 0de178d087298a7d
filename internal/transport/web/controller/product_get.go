package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/verdantly/wellness-api/internal/datasources"
	"github.com/verdantly/wellness-api/internal/domain"
)

// ProductGet handles GET /v1/products/{product_id}.
type ProductGet struct {
	Fetcher     datasources.ProductFetcher
	CacheMaxAge time.Duration
}

func (c ProductGet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	productID, err := strconv.ParseInt(mux.Vars(r)["product_id"], 10, 64)
	if err != nil {
		logger.ErrorContext(ctx, "invalid product ID", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	product, err := c.Fetcher.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, datasources.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		logger.ErrorContext(ctx, "unable to fetch product", "error", err, "product_id", productID)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", fmt.Sprintf("max-age=%d", int(c.CacheMaxAge.Seconds())))

	if err := json.NewEncoder(w).Encode(product); err != nil {
		logger.ErrorContext(ctx, "unable to write product to response", "error", err)
	}
}
