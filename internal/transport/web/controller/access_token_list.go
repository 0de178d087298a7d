package controller

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/verdantly/wellness-api/internal/datasources"
	"github.com/verdantly/wellness-api/internal/domain"
)

// AccessTokenListItem represents a token in the list response.
type AccessTokenListItem struct {
	ID         string     `json:"id"`
	Prefix     string     `json:"prefix"`
	Name       *string    `json:"name,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	Revoked    bool       `json:"revoked"`
}

// AccessTokenListResponse is the JSON response for listing tokens.
type AccessTokenListResponse struct {
	Data []AccessTokenListItem `json:"data"`
}

// AccessTokenList handles GET /v1/tokens to list the user's access tokens.
type AccessTokenList struct {
	Lister datasources.AccessTokenLister
}

func (c AccessTokenList) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	tokens, err := c.Lister.ListAccessTokens(ctx, domain.UserIDFromContext(ctx))
	if err != nil {
		logger.ErrorContext(ctx, "unable to list access tokens", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	items := make([]AccessTokenListItem, 0, len(tokens))
	for _, token := range tokens {
		items = append(items, AccessTokenListItem{
			ID:         token.ID,
			Prefix:     token.Prefix,
			Name:       token.Name,
			CreatedAt:  token.CreatedAt,
			LastUsedAt: token.LastUsedAt,
			ExpiresAt:  token.ExpiresAt,
			Revoked:    token.RevokedAt != nil,
		})
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(AccessTokenListResponse{
		Data: items,
	}); err != nil {
		logger.ErrorContext(ctx, "unable to write response", "error", err)
	}
}
