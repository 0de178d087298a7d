package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/verdantly/wellness-api/internal/datasources"
	"github.com/verdantly/wellness-api/internal/domain"
)

type fakeProductFetcher struct {
	products map[int64]domain.Product
	err      error
}

func (f *fakeProductFetcher) GetProduct(_ context.Context, productID int64) (domain.Product, error) {
	if f.err != nil {
		return domain.Product{}, f.err
	}
	product, ok := f.products[productID]
	if !ok {
		return domain.Product{}, datasources.ErrNotFound
	}
	return product, nil
}

func TestProductGet_ServeHTTP(t *testing.T) {
	mat := domain.Product{ID: 3, Name: "Yoga Mat", PriceCents: 2999, Stock: 4, CategoryID: 1}

	cases := []struct {
		name       string
		productID  string
		fetchErr   error
		wantStatus int
	}{
		{
			name:       "found",
			productID:  "3",
			wantStatus: http.StatusOK,
		},
		{
			name:       "not_found",
			productID:  "404",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "invalid_id",
			productID:  "abc",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "storage_failure",
			productID:  "3",
			fetchErr:   errors.New("database error"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fetcher := &fakeProductFetcher{
				products: map[int64]domain.Product{3: mat},
				err:      tc.fetchErr,
			}

			req := httptest.NewRequest(http.MethodGet, "/v1/products/"+tc.productID, nil)
			req = mux.SetURLVars(req, map[string]string{"product_id": tc.productID})
			req = testContext()(req)
			rec := httptest.NewRecorder()

			ProductGet{Fetcher: fetcher, CacheMaxAge: time.Hour}.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)

			if tc.wantStatus == http.StatusOK {
				var got domain.Product
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
				assert.Equal(t, mat.Name, got.Name)
				assert.Equal(t, "max-age=3600", rec.Header().Get("Cache-Control"))
			}
		})
	}
}
