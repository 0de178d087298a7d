package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/verdantly/wellness-api/internal/command"
	"github.com/verdantly/wellness-api/internal/domain"
)

type fakeInterestsLister struct {
	interests []domain.CategoryInterest
	err       error
}

func (f *fakeInterestsLister) TopInterests(_ context.Context, _ int64, limit int) ([]domain.CategoryInterest, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.interests) > limit {
		return f.interests[:limit], nil
	}
	return f.interests, nil
}

type fakeProductsLister struct {
	products []domain.Product
}

func (f *fakeProductsLister) ListRecommendableProducts(
	_ context.Context, _ int64, _ []int64, limit int,
) ([]domain.Product, error) {
	if len(f.products) > limit {
		return f.products[:limit], nil
	}
	return f.products, nil
}

type fakeArticlesLister struct {
	articles []domain.Article
}

func (f *fakeArticlesLister) ListRecommendableArticles(
	_ context.Context, _ int64, _ []int64, limit int,
) ([]domain.Article, error) {
	if len(f.articles) > limit {
		return f.articles[:limit], nil
	}
	return f.articles, nil
}

func TestRecommendationsList_ServeHTTP(t *testing.T) {
	cases := []struct {
		name       string
		interests  []domain.CategoryInterest
		products   []domain.Product
		articles   []domain.Article
		listErr    error
		wantStatus int
		wantLen    int
	}{
		{
			name: "items_for_interested_user",
			interests: []domain.CategoryInterest{
				{CategoryID: 1, CategoryName: "Yoga", Score: 12},
			},
			products:   []domain.Product{{ID: 1, Name: "Yoga Mat"}},
			articles:   []domain.Article{{ID: 10, Title: "Breathe"}},
			wantStatus: http.StatusOK,
			wantLen:    2,
		},
		{
			name:       "empty_list_without_signal",
			interests:  nil,
			wantStatus: http.StatusOK,
			wantLen:    0,
		},
		{
			name:       "storage_failure",
			listErr:    errors.New("database error"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd := command.NewRecommendItems(
				&fakeInterestsLister{interests: tc.interests, err: tc.listErr},
				&fakeProductsLister{products: tc.products},
				&fakeArticlesLister{articles: tc.articles},
			)

			req := httptest.NewRequest(http.MethodGet, "/v1/recommendations", nil)
			req = testContextWithUserID(7)(req)
			rec := httptest.NewRecorder()

			RecommendationsList{RecommendCmd: cmd}.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)

			if tc.wantStatus != http.StatusOK {
				return
			}

			var resp RecommendationsListResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			require.NotNil(t, resp.Data)
			assert.Len(t, resp.Data, tc.wantLen)
		})
	}
}
