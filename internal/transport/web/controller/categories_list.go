package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/verdantly/wellness-api/internal/datasources"
	"github.com/verdantly/wellness-api/internal/domain"
)

// CategoriesList handles GET /v1/categories.
type CategoriesList struct {
	Lister      datasources.CategoryLister
	CacheMaxAge time.Duration
}

type CategoriesListResponse struct {
	Data []domain.Category `json:"data"`
}

func (c CategoriesList) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	categories, err := c.Lister.ListCategories(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "unable to fetch categories", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", fmt.Sprintf("max-age=%d", int(c.CacheMaxAge.Seconds())))

	if err := json.NewEncoder(w).Encode(CategoriesListResponse{Data: categories}); err != nil {
		logger.ErrorContext(ctx, "unable to write categories to response", "error", err)
	}
}
