package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/verdantly/wellness-api/internal/datasources"
	"github.com/verdantly/wellness-api/internal/domain"
)

// AdminQuoteCreate handles POST /v1/admin/quotes.
type AdminQuoteCreate struct {
	Creator datasources.QuoteCreator
}

func (c AdminQuoteCreate) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	var quote domain.MotivationalQuote
	if err := json.NewDecoder(r.Body).Decode(&quote); err != nil {
		logger.ErrorContext(ctx, "unable to parse quote body", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(quote.Text) == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	quote.IsActive = true

	quoteID, err := c.Creator.CreateQuote(ctx, quote)
	if err != nil {
		logger.ErrorContext(ctx, "unable to create quote", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	quote.ID = quoteID

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(quote); err != nil {
		logger.ErrorContext(ctx, "unable to write quote to response", "error", err)
	}
}

// AdminQuoteDeactivate handles DELETE /v1/admin/quotes/{quote_id}. Quotes are
// deactivated rather than deleted so existing reminders keep their text.
type AdminQuoteDeactivate struct {
	Deactivator datasources.QuoteDeactivator
}

func (c AdminQuoteDeactivate) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	quoteID, err := strconv.ParseInt(mux.Vars(r)["quote_id"], 10, 64)
	if err != nil {
		logger.ErrorContext(ctx, "invalid quote ID", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if err := c.Deactivator.DeactivateQuote(ctx, quoteID); err != nil {
		if errors.Is(err, datasources.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		logger.ErrorContext(ctx, "unable to deactivate quote", "error", err, "quote_id", quoteID)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
