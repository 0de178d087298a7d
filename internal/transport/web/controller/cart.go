package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/verdantly/wellness-api/internal/datasources"
	"github.com/verdantly/wellness-api/internal/domain"
)

// CartGet handles GET /v1/cart.
type CartGet struct {
	Carts datasources.CartFetcher
}

func (c CartGet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	cart, err := c.Carts.GetCart(ctx, domain.UserIDFromContext(ctx))
	if err != nil {
		logger.ErrorContext(ctx, "unable to fetch cart", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if cart.Items == nil {
		cart.Items = []domain.CartItem{}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(cart); err != nil {
		logger.ErrorContext(ctx, "unable to write cart to response", "error", err)
	}
}

// CartItemSetRequest is the JSON body for adding or updating a cart line.
// ProductID is taken from the URL on PUT and from the body on POST.
type CartItemSetRequest struct {
	ProductID int64 `json:"product_id,omitempty"`
	Quantity  int64 `json:"quantity"`
}

// CartItemSet handles POST /v1/cart/items and PUT /v1/cart/items/{product_id}.
type CartItemSet struct {
	Products datasources.ProductFetcher
	Items    datasources.CartItemUpserter
}

func (c CartItemSet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	var reqBody CartItemSetRequest
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		logger.ErrorContext(ctx, "unable to parse cart item body", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	productID := reqBody.ProductID
	if raw, ok := mux.Vars(r)["product_id"]; ok {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			logger.ErrorContext(ctx, "invalid product ID", "error", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		productID = parsed
	}

	if productID < 1 || reqBody.Quantity < 1 {
		logger.ErrorContext(ctx, "invalid cart item",
			"product_id", productID, "quantity", reqBody.Quantity)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if _, err := c.Products.GetProduct(ctx, productID); err != nil {
		if errors.Is(err, datasources.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		logger.ErrorContext(ctx, "unable to fetch product", "error", err, "product_id", productID)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if err := c.Items.UpsertCartItem(ctx, domain.UserIDFromContext(ctx), productID, reqBody.Quantity); err != nil {
		logger.ErrorContext(ctx, "unable to set cart item", "error", err, "product_id", productID)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CartItemRemove handles DELETE /v1/cart/items/{product_id}.
type CartItemRemove struct {
	Items datasources.CartItemRemover
}

func (c CartItemRemove) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	productID, err := strconv.ParseInt(mux.Vars(r)["product_id"], 10, 64)
	if err != nil {
		logger.ErrorContext(ctx, "invalid product ID", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if err := c.Items.RemoveCartItem(ctx, domain.UserIDFromContext(ctx), productID); err != nil {
		logger.ErrorContext(ctx, "unable to remove cart item", "error", err, "product_id", productID)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
