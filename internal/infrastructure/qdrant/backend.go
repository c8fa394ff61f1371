// Package qdrant implements a vector-native search backend over the Qdrant
// gRPC API. Queries and catalog records are embedded through an injected
// Embedder; keyword and hybrid modes fall back to plain cosine similarity
// since Qdrant carries no lexical index here.
package qdrant

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/kitanog/weaviate-demo/internal/domain"
	pb "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Backend implements domain.SearchBackend using Qdrant
type Backend struct {
	conn        *grpc.ClientConn
	points      pb.PointsClient
	collections pb.CollectionsClient
	embedder    domain.Embedder
	collection  string
}

// New connects to a Qdrant instance and returns a backend bound to the
// given collection.
func New(host string, port int, collection string, embedder domain.Embedder) (*Backend, error) {
	addr := fmt.Sprintf("%s:%d", host, port)
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("qdrant connect: %w", err)
	}
	return &Backend{
		conn:        conn,
		points:      pb.NewPointsClient(conn),
		collections: pb.NewCollectionsClient(conn),
		embedder:    embedder,
		collection:  collection,
	}, nil
}

// IndexCatalog recreates the collection and upserts one point per product.
// Point IDs are derived deterministically from product_id, so records
// sharing an ID overwrite each other and the last one wins.
func (b *Backend) IndexCatalog(ctx context.Context, products []domain.Product) error {
	if len(products) == 0 {
		exists, err := b.collections.CollectionExists(ctx, &pb.CollectionExistsRequest{CollectionName: b.collection})
		if err != nil {
			return fmt.Errorf("qdrant collection check: %w", err)
		}
		if exists.GetResult().GetExists() {
			_, err = b.collections.Delete(ctx, &pb.DeleteCollection{CollectionName: b.collection})
		}
		return err
	}

	vectors, err := b.embedder.Embed(ctx, embeddingTexts(products))
	if err != nil {
		return fmt.Errorf("qdrant index: %w", err)
	}

	if err := b.recreateCollection(ctx, uint64(len(vectors[0]))); err != nil {
		return err
	}

	points := make([]*pb.PointStruct, len(products))
	for i, p := range products {
		points[i] = &pb.PointStruct{
			Id:      pointID(p.ProductID),
			Vectors: &pb.Vectors{VectorsOptions: &pb.Vectors_Vector{Vector: &pb.Vector{Data: vectors[i]}}},
			Payload: productPayload(p),
		}
	}

	if _, err := b.points.Upsert(ctx, &pb.UpsertPoints{
		CollectionName: b.collection,
		Points:         points,
	}); err != nil {
		return fmt.Errorf("qdrant upsert: %w", err)
	}

	log.Printf("[Qdrant] Indexed %d points into %q", len(points), b.collection)
	return nil
}

// Search embeds the query and runs a similarity search. Generative mode is
// not available on this backend.
func (b *Backend) Search(ctx context.Context, req domain.SearchRequest) ([]domain.SearchResult, error) {
	if req.Mode == domain.ModeRAG {
		return nil, fmt.Errorf("generative search requires the weaviate backend")
	}

	vectors, err := b.embedder.Embed(ctx, []string{req.Query})
	if err != nil {
		return nil, fmt.Errorf("qdrant embed query: %w", err)
	}

	resp, err := b.points.Search(ctx, &pb.SearchPoints{
		CollectionName: b.collection,
		Vector:         vectors[0],
		Limit:          uint64(req.Limit),
		WithPayload:    &pb.WithPayloadSelector{SelectorOptions: &pb.WithPayloadSelector_Enable{Enable: true}},
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant search: %w", err)
	}

	results := make([]domain.SearchResult, 0, len(resp.Result))
	for _, pt := range resp.Result {
		results = append(results, scoredResult(req.Mode, pt))
	}
	return results, nil
}

// Ready verifies the Qdrant connection by listing collections
func (b *Backend) Ready(ctx context.Context) error {
	if _, err := b.collections.List(ctx, &pb.ListCollectionsRequest{}); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	return nil
}

// Close releases the underlying gRPC connection
func (b *Backend) Close() error {
	return b.conn.Close()
}

// recreateCollection drops and recreates the collection so an upload
// replaces the previous catalog rather than merging into it
func (b *Backend) recreateCollection(ctx context.Context, vectorSize uint64) error {
	exists, err := b.collections.CollectionExists(ctx, &pb.CollectionExistsRequest{CollectionName: b.collection})
	if err != nil {
		return fmt.Errorf("qdrant collection check: %w", err)
	}
	if exists.GetResult().GetExists() {
		if _, err := b.collections.Delete(ctx, &pb.DeleteCollection{CollectionName: b.collection}); err != nil {
			return fmt.Errorf("qdrant collection delete: %w", err)
		}
	}

	_, err = b.collections.Create(ctx, &pb.CreateCollection{
		CollectionName: b.collection,
		VectorsConfig: &pb.VectorsConfig{
			Config: &pb.VectorsConfig_Params{
				Params: &pb.VectorParams{
					Size:     vectorSize,
					Distance: pb.Distance_Cosine,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("qdrant collection create: %w", err)
	}
	return nil
}

// pointID derives a stable UUID point ID from a product_id
func pointID(productID string) *pb.PointId {
	id := uuid.NewSHA1(uuid.NameSpaceOID, []byte(productID))
	return &pb.PointId{PointIdOptions: &pb.PointId_Uuid{Uuid: id.String()}}
}

// embeddingTexts builds one embedding input per product from its
// searchable fields
func embeddingTexts(products []domain.Product) []string {
	texts := make([]string, len(products))
	for i, p := range products {
		texts[i] = strings.Join([]string{p.Name, p.Description, p.Category, strings.Join(p.Tags, " ")}, ". ")
	}
	return texts
}

// productPayload stores the full product alongside its vector
func productPayload(p domain.Product) map[string]*pb.Value {
	tags := make([]*pb.Value, len(p.Tags))
	for i, t := range p.Tags {
		tags[i] = &pb.Value{Kind: &pb.Value_StringValue{StringValue: t}}
	}
	return map[string]*pb.Value{
		"product_id":  {Kind: &pb.Value_StringValue{StringValue: p.ProductID}},
		"name":        {Kind: &pb.Value_StringValue{StringValue: p.Name}},
		"description": {Kind: &pb.Value_StringValue{StringValue: p.Description}},
		"category":    {Kind: &pb.Value_StringValue{StringValue: p.Category}},
		"price":       {Kind: &pb.Value_DoubleValue{DoubleValue: p.Price}},
		"brand":       {Kind: &pb.Value_StringValue{StringValue: p.Brand}},
		"tags":        {Kind: &pb.Value_ListValue{ListValue: &pb.ListValue{Values: tags}}},
	}
}

// scoredResult rebuilds a product from a scored point's payload and attaches
// the annotation matching the requested mode. Cosine similarity maps onto a
// distance as 1 - score; hybrid stays bare.
func scoredResult(mode domain.Mode, pt *pb.ScoredPoint) domain.SearchResult {
	payload := pt.GetPayload()

	var tags []string
	for _, v := range payload["tags"].GetListValue().GetValues() {
		tags = append(tags, v.GetStringValue())
	}

	r := domain.SearchResult{
		Product: domain.Product{
			ProductID:   payload["product_id"].GetStringValue(),
			Name:        payload["name"].GetStringValue(),
			Description: payload["description"].GetStringValue(),
			Category:    payload["category"].GetStringValue(),
			Price:       payload["price"].GetDoubleValue(),
			Brand:       payload["brand"].GetStringValue(),
			Tags:        tags,
		},
	}

	switch mode {
	case domain.ModeKeyword:
		score := float64(pt.GetScore())
		r.Metadata = &domain.ResultMetadata{Score: &score}
	case domain.ModeVector:
		distance := 1 - float64(pt.GetScore())
		r.Metadata = &domain.ResultMetadata{Distance: &distance}
	case domain.ModeHybrid, domain.ModeRAG:
	}
	return r
}
