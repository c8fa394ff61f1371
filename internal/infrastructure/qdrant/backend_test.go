package qdrant

import (
	"testing"

	"github.com/kitanog/weaviate-demo/internal/domain"
	pb "github.com/qdrant/go-client/qdrant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointID(t *testing.T) {
	t.Run("is deterministic per product_id", func(t *testing.T) {
		a := pointID("prod-001")
		b := pointID("prod-001")
		assert.Equal(t, a.GetUuid(), b.GetUuid())
	})

	t.Run("differs across product_ids", func(t *testing.T) {
		a := pointID("prod-001")
		b := pointID("prod-002")
		assert.NotEqual(t, a.GetUuid(), b.GetUuid())
	})
}

func TestEmbeddingTexts(t *testing.T) {
	texts := embeddingTexts([]domain.Product{{
		Name:        "Smart Fitness Watch",
		Description: "Heart rate monitor",
		Category:    "Wearables",
		Tags:        []string{"fitness", "gps"},
	}})

	require.Len(t, texts, 1)
	assert.Contains(t, texts[0], "Smart Fitness Watch")
	assert.Contains(t, texts[0], "Heart rate monitor")
	assert.Contains(t, texts[0], "Wearables")
	assert.Contains(t, texts[0], "fitness gps")
}

func TestProductPayload(t *testing.T) {
	payload := productPayload(domain.Product{
		ProductID:   "prod-001",
		Name:        "Headphones",
		Description: "Noise-cancelling",
		Category:    "Electronics",
		Price:       199.99,
		Brand:       "AudioTech",
		Tags:        []string{"wireless", "bluetooth"},
	})

	assert.Equal(t, "prod-001", payload["product_id"].GetStringValue())
	assert.Equal(t, 199.99, payload["price"].GetDoubleValue())

	tags := payload["tags"].GetListValue().GetValues()
	require.Len(t, tags, 2)
	assert.Equal(t, "wireless", tags[0].GetStringValue())
}

func TestScoredResult(t *testing.T) {
	pt := &pb.ScoredPoint{
		Score: 0.8,
		Payload: map[string]*pb.Value{
			"product_id":  {Kind: &pb.Value_StringValue{StringValue: "prod-001"}},
			"name":        {Kind: &pb.Value_StringValue{StringValue: "Headphones"}},
			"description": {Kind: &pb.Value_StringValue{StringValue: "Noise-cancelling"}},
			"category":    {Kind: &pb.Value_StringValue{StringValue: "Electronics"}},
			"price":       {Kind: &pb.Value_DoubleValue{DoubleValue: 199.99}},
			"brand":       {Kind: &pb.Value_StringValue{StringValue: "AudioTech"}},
			"tags": {Kind: &pb.Value_ListValue{ListValue: &pb.ListValue{Values: []*pb.Value{
				{Kind: &pb.Value_StringValue{StringValue: "wireless"}},
			}}}},
		},
	}

	t.Run("keyword mode reports the cosine score", func(t *testing.T) {
		r := scoredResult(domain.ModeKeyword, pt)
		assert.Equal(t, "prod-001", r.ProductID)
		assert.Equal(t, []string{"wireless"}, r.Tags)
		require.NotNil(t, r.Metadata)
		require.NotNil(t, r.Metadata.Score)
		assert.InDelta(t, 0.8, *r.Metadata.Score, 1e-6)
	})

	t.Run("vector mode derives distance as one minus score", func(t *testing.T) {
		r := scoredResult(domain.ModeVector, pt)
		require.NotNil(t, r.Metadata)
		require.NotNil(t, r.Metadata.Distance)
		assert.InDelta(t, 0.2, *r.Metadata.Distance, 1e-6)
	})

	t.Run("hybrid mode stays bare", func(t *testing.T) {
		r := scoredResult(domain.ModeHybrid, pt)
		assert.Nil(t, r.Metadata)
	})
}
