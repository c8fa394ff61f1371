// Package stub implements the reference in-process search backend: a naive
// substring filter over the session catalog, decorated with synthetic
// per-mode metadata. It exists for demos and tests; real deployments swap
// in the weaviate or qdrant backend.
package stub

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kitanog/weaviate-demo/internal/domain"
)

// maxResults caps the reference result list regardless of requested limit
const maxResults = 5

// Backend filters the session catalog by substring containment
type Backend struct {
	store domain.CatalogStore
	delay time.Duration
}

// New creates a stub backend reading from the given store. A non-zero delay
// simulates the latency of a remote round trip.
func New(store domain.CatalogStore, delay time.Duration) *Backend {
	return &Backend{
		store: store,
		delay: delay,
	}
}

// IndexCatalog is a no-op: the stub reads the live session store
func (b *Backend) IndexCatalog(ctx context.Context, products []domain.Product) error {
	return nil
}

// Ready always succeeds; there is nothing remote to probe
func (b *Backend) Ready(ctx context.Context) error {
	return nil
}

// Search matches products whose lowercase name, description or any tag
// contains the lowercase query, in catalog order, capped at the first 5.
func (b *Backend) Search(ctx context.Context, req domain.SearchRequest) ([]domain.SearchResult, error) {
	if b.delay > 0 {
		select {
		case <-time.After(b.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	limit := req.Limit
	if limit <= 0 || limit > maxResults {
		limit = maxResults
	}

	query := strings.ToLower(req.Query)
	results := make([]domain.SearchResult, 0, limit)

	for _, p := range b.store.Snapshot() {
		if !matches(p, query) {
			continue
		}
		results = append(results, domain.SearchResult{
			Product:  p,
			Metadata: decorate(p, req, len(results)),
		})
		if len(results) == limit {
			break
		}
	}

	return results, nil
}

// matches reports whether the lowercased query is contained in the product's
// name, description or any of its tags
func matches(p domain.Product, query string) bool {
	if strings.Contains(strings.ToLower(p.Name), query) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), query) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

// decorate builds the mode-specific metadata for the result at index i
// within the truncated result list. Keyword scores descend, vector
// distances ascend, both strictly by position.
func decorate(p domain.Product, req domain.SearchRequest, i int) *domain.ResultMetadata {
	switch req.Mode {
	case domain.ModeKeyword:
		score := 0.95 - 0.1*float64(i)
		return &domain.ResultMetadata{Score: &score}
	case domain.ModeVector:
		distance := 0.1 + 0.05*float64(i)
		return &domain.ResultMetadata{Distance: &distance}
	case domain.ModeRAG:
		return &domain.ResultMetadata{Generated: generate(p, req.Query)}
	case domain.ModeHybrid:
		// TODO: surface the fused hybrid score once a backend exposes it
		return nil
	default:
		return nil
	}
}

// generate synthesizes the RAG blurb from the matched product and the query
func generate(p domain.Product, query string) string {
	return fmt.Sprintf(
		"%s is a strong match for %q: tagged %s, it stands out in the %s category.",
		p.Name, query, strings.Join(p.Tags, ", "), strings.ToLower(p.Category),
	)
}
