package datasources

import (
	"context"
)

// SimilarProduct is a related-product hit from the similarity index.
type SimilarProduct struct {
	ProductID int64
	Score     float32
}

// SimilarityRepository serves related-content lookups from a vector index.
type SimilarityRepository interface {
	SimilarProductLister
}

// SimilarProductLister lists products similar to the given product, most
// similar first. The source product is never included in the results.
type SimilarProductLister interface {
	ListSimilarProducts(ctx context.Context, productID int64, limit int) ([]SimilarProduct, error)
}

// NullSimilarityRepository is used when no similarity index is configured.
// All lookups return empty results.
type NullSimilarityRepository struct{}

var _ SimilarityRepository = NullSimilarityRepository{}

func (NullSimilarityRepository) ListSimilarProducts(
	_ context.Context, _ int64, _ int,
) ([]SimilarProduct, error) {
	return nil, nil
}
