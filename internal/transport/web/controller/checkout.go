package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/verdantly/wellness-api/internal/command"
	"github.com/verdantly/wellness-api/internal/datasources"
	"github.com/verdantly/wellness-api/internal/domain"
)

// CheckoutCreate handles POST /v1/checkout.
type CheckoutCreate struct {
	CheckoutCmd *command.Checkout
}

func (c CheckoutCreate) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	order, err := c.CheckoutCmd.Execute(ctx, command.CheckoutRequest{
		UserID: domain.UserIDFromContext(ctx),
	})
	if err != nil {
		if errors.Is(err, datasources.ErrEmptyCart) || errors.Is(err, datasources.ErrInsufficientStock) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusConflict)
			if encErr := json.NewEncoder(w).Encode(map[string]string{
				"error": err.Error(),
			}); encErr != nil {
				logger.ErrorContext(ctx, "unable to write error response", "error", encErr)
			}
			return
		}
		logger.ErrorContext(ctx, "unable to check out cart", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(order); err != nil {
		logger.ErrorContext(ctx, "unable to write order to response", "error", err)
	}
}
