package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/verdantly/wellness-api/internal/command"
	"github.com/verdantly/wellness-api/internal/domain"
)

// AccessTokenCreateRequest is the JSON request body for creating a token.
type AccessTokenCreateRequest struct {
	Name string `json:"name,omitempty"`
}

// AccessTokenCreateResponse is the JSON response for a created token. Token
// carries the full secret and is shown exactly once.
type AccessTokenCreateResponse struct {
	ID     string `json:"id"`
	Token  string `json:"token"`
	Prefix string `json:"prefix"`
}

// AccessTokenCreate handles POST /v1/tokens to create a new access token.
type AccessTokenCreate struct {
	CreateCmd *command.CreateAccessToken
}

func (c AccessTokenCreate) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	var reqBody AccessTokenCreateRequest
	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
			logger.ErrorContext(ctx, "unable to parse request body", "error", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
	}

	req := command.CreateAccessTokenRequest{
		UserID: domain.UserIDFromContext(ctx),
	}
	if reqBody.Name != "" {
		req.Name = &reqBody.Name
	}

	result, err := c.CreateCmd.Execute(ctx, req)
	if err != nil {
		logger.ErrorContext(ctx, "unable to create access token", "error", err)
		if errors.Is(err, command.ErrTokenLimitExceeded) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusConflict)
			if encErr := json.NewEncoder(w).Encode(map[string]string{
				"error": err.Error(),
			}); encErr != nil {
				logger.ErrorContext(ctx, "unable to write error response", "error", encErr)
			}
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(AccessTokenCreateResponse{
		ID:     result.TokenID,
		Token:  result.FullToken,
		Prefix: result.Prefix,
	}); err != nil {
		logger.ErrorContext(ctx, "unable to write response", "error", err)
	}
}
