package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/verdantly/wellness-api/internal/datasources"
	"github.com/verdantly/wellness-api/internal/domain"
)

// OrdersList handles GET /v1/orders.
type OrdersList struct {
	Lister datasources.OrderLister
}

type OrdersListResponse struct {
	Data []domain.Order `json:"data"`
}

func (c OrdersList) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	orders, err := c.Lister.ListOrders(ctx, domain.UserIDFromContext(ctx))
	if err != nil {
		logger.ErrorContext(ctx, "unable to fetch orders", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if orders == nil {
		orders = []domain.Order{}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(OrdersListResponse{Data: orders}); err != nil {
		logger.ErrorContext(ctx, "unable to write orders to response", "error", err)
	}
}

// OrderGet handles GET /v1/orders/{order_number}. Orders are only visible to
// the user who placed them.
type OrderGet struct {
	Fetcher datasources.OrderFetcher
}

func (c OrderGet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	orderNumber := mux.Vars(r)["order_number"]

	order, err := c.Fetcher.GetOrderByNumber(ctx, domain.UserIDFromContext(ctx), orderNumber)
	if err != nil {
		if errors.Is(err, datasources.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		logger.ErrorContext(ctx, "unable to fetch order", "error", err, "order_number", orderNumber)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(order); err != nil {
		logger.ErrorContext(ctx, "unable to write order to response", "error", err)
	}
}
