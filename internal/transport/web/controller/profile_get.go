package controller

import (
	"encoding/json"
	"net/http"

	"github.com/verdantly/wellness-api/internal/datasources"
	"github.com/verdantly/wellness-api/internal/domain"
)

// ProfileGetResponse is the user's account plus activity stats.
type ProfileGetResponse struct {
	User  domain.User         `json:"user"`
	Stats domain.ProfileStats `json:"stats"`
}

// ProfileGet handles GET /v1/profile.
type ProfileGet struct {
	Users datasources.UserFetcher
	Stats datasources.ProfileStatsGetter
}

func (c ProfileGet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	userID := domain.UserIDFromContext(ctx)

	user, err := c.Users.GetUser(ctx, userID)
	if err != nil {
		logger.ErrorContext(ctx, "unable to fetch user", "error", err, "user_id", userID)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	stats, err := c.Stats.GetProfileStats(ctx, userID)
	if err != nil {
		logger.ErrorContext(ctx, "unable to fetch profile stats", "error", err, "user_id", userID)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(ProfileGetResponse{User: user, Stats: stats}); err != nil {
		logger.ErrorContext(ctx, "unable to write profile to response", "error", err)
	}
}
