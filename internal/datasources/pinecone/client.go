package pinecone

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pinecone-io/go-pinecone/pinecone"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/verdantly/wellness-api/internal/datasources"
)

var _ datasources.SimilarProductLister = (*Client)(nil)

// Client serves related-product lookups from a pinecone index of product
// description vectors. Vectors are indexed out of band with the product ID
// as the vector ID and a product_id metadata field.
type Client struct {
	pinecone *pinecone.Client
	index    *pinecone.Index
}

func NewClient(
	ctx context.Context,
	apiKey string,
	indexName string,
) (*Client, error) {
	pc, err := pinecone.NewClient(pinecone.NewClientParams{
		ApiKey:     apiKey,
		Headers:    nil,
		Host:       "",
		RestClient: nil,
		SourceTag:  "",
	})
	if err != nil {
		return nil, fmt.Errorf("creating pinecone client: %w", err)
	}

	idx, err := pc.DescribeIndex(ctx, indexName)
	if err != nil {
		return nil, fmt.Errorf("retrieving pinecone index metadata [%s]: %w", indexName, err)
	}

	return &Client{
		pinecone: pc,
		index:    idx,
	}, nil
}

func (c *Client) ListSimilarProducts(
	ctx context.Context,
	productID int64,
	limit int,
) ([]datasources.SimilarProduct, error) {
	if limit > 10000 {
		return nil, fmt.Errorf("limit value too high [%d]", limit)
	}

	idxConn, err := c.pinecone.Index(pinecone.NewIndexConnParams{
		Host: c.index.Host,
	})
	if err != nil {
		return nil, fmt.Errorf("creating pinecone index connection: %w", err)
	}
	defer func() { _ = idxConn.Close() }()

	vectorID := strconv.FormatInt(productID, 10)
	fetchResp, err := idxConn.FetchVectors(ctx, []string{vectorID})
	if err != nil {
		return nil, fmt.Errorf("fetching vector for product [%d]: %w", productID, err)
	}

	vector, ok := fetchResp.Vectors[vectorID]
	if !ok || vector == nil || len(vector.Values) == 0 {
		// Product not indexed; nothing to relate it to.
		return nil, nil
	}

	filter, err := selfExclusionFilter(productID)
	if err != nil {
		return nil, err
	}

	queryResp, err := idxConn.QueryByVectorValues(ctx, &pinecone.QueryByVectorValuesRequest{
		Vector:          vector.Values,
		TopK:            uint32(limit),
		MetadataFilter:  filter,
		IncludeValues:   false,
		IncludeMetadata: false,
		SparseValues:    nil,
	})
	if err != nil {
		return nil, fmt.Errorf("querying for similar vectors: %w", err)
	}

	results := make([]datasources.SimilarProduct, 0, len(queryResp.Matches))
	for _, match := range queryResp.Matches {
		if match == nil || match.Vector == nil {
			continue
		}
		matchID, err := strconv.ParseInt(match.Vector.Id, 10, 64)
		if err != nil {
			// Index entries that aren't product IDs are skipped.
			continue
		}
		results = append(results, datasources.SimilarProduct{
			ProductID: matchID,
			Score:     match.Score,
		})
	}

	return results, nil
}

func selfExclusionFilter(productID int64) (*pinecone.MetadataFilter, error) {
	metadataMap := map[string]any{
		"product_id": map[string]any{
			"$ne": productID,
		},
	}

	filter, err := structpb.NewStruct(metadataMap)
	if err != nil {
		return nil, fmt.Errorf("creating metadata filter map: %w", err)
	}
	return filter, nil
}
