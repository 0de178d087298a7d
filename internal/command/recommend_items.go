package command

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/verdantly/wellness-api/internal/datasources"
	"github.com/verdantly/wellness-api/internal/domain"
)

const (
	// RecommendTopCategories is how many top interest categories drive the
	// selection.
	RecommendTopCategories = 3
	// RecommendMaxProducts and RecommendMaxArticles cap each content type.
	RecommendMaxProducts = 3
	RecommendMaxArticles = 2
	// RecommendMaxItems caps the combined result.
	RecommendMaxItems = 6
)

// RecommendedItem is one entry in a recommendation list, tagged with its
// content type.
type RecommendedItem struct {
	Type    domain.ContentType `json:"type"`
	Product *domain.Product    `json:"product,omitempty"`
	Article *domain.Article    `json:"article,omitempty"`
}

// RecommendItemsRequest identifies the user to recommend for.
type RecommendItemsRequest struct {
	UserID int64
}

// RecommendItems selects not-yet-seen products and articles from the user's
// top interest categories. No interest signal means no recommendations; the
// result is never padded with unrelated content.
type RecommendItems struct {
	Interests datasources.TopInterestsLister
	Products  datasources.RecommendableProductsLister
	Articles  datasources.RecommendableArticlesLister
	// Shuffle reorders the combined list before truncation; recommendations
	// are not meant to always appear in category-then-recency order.
	// Replaceable for deterministic tests.
	Shuffle func(items []RecommendedItem)
}

// NewRecommendItems creates a properly initialized RecommendItems command.
func NewRecommendItems(
	interests datasources.TopInterestsLister,
	products datasources.RecommendableProductsLister,
	articles datasources.RecommendableArticlesLister,
) *RecommendItems {
	return &RecommendItems{
		Interests: interests,
		Products:  products,
		Articles:  articles,
		Shuffle: func(items []RecommendedItem) {
			rand.Shuffle(len(items), func(i, j int) {
				items[i], items[j] = items[j], items[i]
			})
		},
	}
}

func (c *RecommendItems) Execute(ctx context.Context, req RecommendItemsRequest) ([]RecommendedItem, error) {
	interests, err := c.Interests.TopInterests(ctx, req.UserID, RecommendTopCategories)
	if err != nil {
		return nil, fmt.Errorf("listing top interests: %w", err)
	}
	if len(interests) == 0 {
		return nil, nil
	}

	categoryIDs := make([]int64, 0, len(interests))
	for _, interest := range interests {
		categoryIDs = append(categoryIDs, interest.CategoryID)
	}

	products, err := c.Products.ListRecommendableProducts(ctx, req.UserID, categoryIDs, RecommendMaxProducts)
	if err != nil {
		return nil, fmt.Errorf("listing recommendable products: %w", err)
	}

	articles, err := c.Articles.ListRecommendableArticles(ctx, req.UserID, categoryIDs, RecommendMaxArticles)
	if err != nil {
		return nil, fmt.Errorf("listing recommendable articles: %w", err)
	}

	items := make([]RecommendedItem, 0, len(products)+len(articles))
	for i := range products {
		items = append(items, RecommendedItem{Type: domain.ContentTypeProduct, Product: &products[i]})
	}
	for i := range articles {
		items = append(items, RecommendedItem{Type: domain.ContentTypeArticle, Article: &articles[i]})
	}

	c.Shuffle(items)

	if len(items) > RecommendMaxItems {
		items = items[:RecommendMaxItems]
	}
	return items, nil
}
