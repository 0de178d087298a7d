package command

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
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
	products       []domain.Product
	gotCategoryIDs []int64
	err            error
}

func (f *fakeProductsLister) ListRecommendableProducts(
	_ context.Context, _ int64, categoryIDs []int64, limit int,
) ([]domain.Product, error) {
	f.gotCategoryIDs = categoryIDs
	if f.err != nil {
		return nil, f.err
	}
	if len(f.products) > limit {
		return f.products[:limit], nil
	}
	return f.products, nil
}

type fakeArticlesLister struct {
	articles []domain.Article
	err      error
}

func (f *fakeArticlesLister) ListRecommendableArticles(
	_ context.Context, _ int64, _ []int64, limit int,
) ([]domain.Article, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.articles) > limit {
		return f.articles[:limit], nil
	}
	return f.articles, nil
}

func noShuffle(_ []RecommendedItem) {}

func interests(ids ...int64) []domain.CategoryInterest {
	out := make([]domain.CategoryInterest, 0, len(ids))
	for i, id := range ids {
		out = append(out, domain.CategoryInterest{CategoryID: id, Score: float64(100 - i)})
	}
	return out
}

func TestRecommendItems_Execute(t *testing.T) {
	products := []domain.Product{{ID: 1, Name: "Yoga Mat"}, {ID: 2, Name: "Tea"}, {ID: 3, Name: "Journal"}}
	articles := []domain.Article{{ID: 10, Title: "Sleep Well"}, {ID: 11, Title: "Breathe"}}

	cases := []struct {
		name      string
		interests []domain.CategoryInterest
		products  []domain.Product
		articles  []domain.Article
		wantLen   int
	}{
		{
			name:      "no_interest_signal_returns_empty",
			interests: nil,
			wantLen:   0,
		},
		{
			name:      "full_set_capped_at_six",
			interests: interests(1, 2, 3),
			products:  products,
			articles:  articles,
			wantLen:   5,
		},
		{
			name:      "fewer_items_not_padded",
			interests: interests(1),
			products:  products[:1],
			articles:  nil,
			wantLen:   1,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			productsLister := &fakeProductsLister{products: tc.products}
			cmd := NewRecommendItems(
				&fakeInterestsLister{interests: tc.interests},
				productsLister,
				&fakeArticlesLister{articles: tc.articles},
			)
			cmd.Shuffle = noShuffle

			items, err := cmd.Execute(testCtx(), RecommendItemsRequest{UserID: 7})
			require.NoError(t, err)
			assert.Len(t, items, tc.wantLen)

			if len(tc.interests) > 0 {
				var wantIDs []int64
				for _, interest := range tc.interests {
					wantIDs = append(wantIDs, interest.CategoryID)
				}
				assert.Equal(t, wantIDs, productsLister.gotCategoryIDs)
			}

			assert.LessOrEqual(t, len(items), RecommendMaxItems)
		})
	}
}

func TestRecommendItems_TruncatesAfterShuffle(t *testing.T) {
	manyProducts := []domain.Product{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}, {ID: 5}, {ID: 6}, {ID: 7}}

	cmd := NewRecommendItems(
		&fakeInterestsLister{interests: interests(1)},
		&fakeProductsLister{products: manyProducts},
		&fakeArticlesLister{articles: []domain.Article{{ID: 10}, {ID: 11}, {ID: 12}, {ID: 13}}},
	)
	var shuffled int
	cmd.Shuffle = func(items []RecommendedItem) { shuffled = len(items) }

	items, err := cmd.Execute(testCtx(), RecommendItemsRequest{UserID: 7})
	require.NoError(t, err)

	// Listers cap at 3 products and 2 articles before the combined cap.
	assert.Equal(t, 5, shuffled)
	assert.LessOrEqual(t, len(items), RecommendMaxItems)
}

func TestRecommendItems_Errors(t *testing.T) {
	t.Run("interest_error", func(t *testing.T) {
		cmd := NewRecommendItems(
			&fakeInterestsLister{err: errors.New("database error")},
			&fakeProductsLister{},
			&fakeArticlesLister{},
		)
		_, err := cmd.Execute(testCtx(), RecommendItemsRequest{UserID: 7})
		require.Error(t, err)
	})

	t.Run("products_error", func(t *testing.T) {
		cmd := NewRecommendItems(
			&fakeInterestsLister{interests: interests(1)},
			&fakeProductsLister{err: errors.New("database error")},
			&fakeArticlesLister{},
		)
		_, err := cmd.Execute(testCtx(), RecommendItemsRequest{UserID: 7})
		require.Error(t, err)
	})
}
