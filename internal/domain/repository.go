package domain

import "context"

// CatalogStore defines the interface for the session catalog.
// Uploads replace the whole catalog; there is no merge operation.
type CatalogStore interface {
	Replace(products []Product)
	Snapshot() []Product
	Len() int
	Clear()
}

// SearchBackend defines the interface for executing searches against a
// (possibly remote) retrieval service. The reference stub, the hosted
// search wrapper and the qdrant adapter all implement it.
type SearchBackend interface {
	// IndexCatalog pushes a freshly accepted catalog to the backend,
	// replacing whatever collection was there before.
	IndexCatalog(ctx context.Context, products []Product) error

	// Search executes one query in the requested mode.
	Search(ctx context.Context, req SearchRequest) ([]SearchResult, error)

	// Ready reports whether the backend can serve queries.
	Ready(ctx context.Context) error
}

// Embedder defines the interface for turning text into dense vectors.
// Vector-native backends use it to embed queries and catalog records.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}
