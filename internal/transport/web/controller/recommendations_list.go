package controller

import (
	"encoding/json"
	"net/http"

	"github.com/verdantly/wellness-api/internal/command"
	"github.com/verdantly/wellness-api/internal/domain"
)

// RecommendationsListResponse wraps the recommended items. Data is an empty
// list, never null, when the user has no interest signal yet.
type RecommendationsListResponse struct {
	Data []command.RecommendedItem `json:"data"`
}

// RecommendationsList handles GET /v1/recommendations.
type RecommendationsList struct {
	RecommendCmd *command.RecommendItems
}

func (c RecommendationsList) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	items, err := c.RecommendCmd.Execute(ctx, command.RecommendItemsRequest{
		UserID: domain.UserIDFromContext(ctx),
	})
	if err != nil {
		logger.ErrorContext(ctx, "unable to generate recommendations", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if items == nil {
		items = []command.RecommendedItem{}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(RecommendationsListResponse{Data: items}); err != nil {
		logger.ErrorContext(ctx, "unable to write recommendations to response", "error", err)
	}
}
