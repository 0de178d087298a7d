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

// AdminProductCreate handles POST /v1/admin/products.
type AdminProductCreate struct {
	Writer datasources.ProductWriter
}

func (c AdminProductCreate) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	var product domain.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		logger.ErrorContext(ctx, "unable to parse product body", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(product.Name) == "" || product.CategoryID < 1 || product.PriceCents < 0 {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	productID, err := c.Writer.CreateProduct(ctx, product)
	if err != nil {
		logger.ErrorContext(ctx, "unable to create product", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	product.ID = productID

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(product); err != nil {
		logger.ErrorContext(ctx, "unable to write product to response", "error", err)
	}
}

// AdminProductUpdate handles PUT /v1/admin/products/{product_id}.
type AdminProductUpdate struct {
	Writer datasources.ProductWriter
}

func (c AdminProductUpdate) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	productID, err := strconv.ParseInt(mux.Vars(r)["product_id"], 10, 64)
	if err != nil {
		logger.ErrorContext(ctx, "invalid product ID", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var product domain.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		logger.ErrorContext(ctx, "unable to parse product body", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	product.ID = productID

	if err := c.Writer.UpdateProduct(ctx, product); err != nil {
		if errors.Is(err, datasources.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		logger.ErrorContext(ctx, "unable to update product", "error", err, "product_id", productID)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AdminProductDelete handles DELETE /v1/admin/products/{product_id}.
type AdminProductDelete struct {
	Writer datasources.ProductWriter
}

func (c AdminProductDelete) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	productID, err := strconv.ParseInt(mux.Vars(r)["product_id"], 10, 64)
	if err != nil {
		logger.ErrorContext(ctx, "invalid product ID", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if err := c.Writer.DeleteProduct(ctx, productID); err != nil {
		if errors.Is(err, datasources.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		logger.ErrorContext(ctx, "unable to delete product", "error", err, "product_id", productID)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
