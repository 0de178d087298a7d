package controller

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/verdantly/wellness-api/internal/datasources"
	"github.com/verdantly/wellness-api/internal/domain"
)

// AccessTokenRevoke handles DELETE /v1/tokens/{token_id} to revoke a token.
type AccessTokenRevoke struct {
	Revoker datasources.AccessTokenRevoker
}

func (c AccessTokenRevoke) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	tokenID := mux.Vars(r)["token_id"]
	if tokenID == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if err := c.Revoker.RevokeAccessToken(ctx, domain.UserIDFromContext(ctx), tokenID); err != nil {
		logger.ErrorContext(ctx, "unable to revoke access token", "error", err, "token_id", tokenID)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
