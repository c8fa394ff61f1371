package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/kitanog/weaviate-demo/internal/domain"
)

// SearchServiceConfig holds query defaults for the search service
type SearchServiceConfig struct {
	DefaultLimit int
	MaxLimit     int
	DefaultAlpha float64
}

// SearchService dispatches queries to the configured search backend.
// It owns the preconditions: a blank query or an empty catalog short-circuit
// to an empty result set without touching the backend.
type SearchService struct {
	store   domain.CatalogStore
	backend domain.SearchBackend
	cfg     SearchServiceConfig
}

// NewSearchService creates a new search service with dependencies
func NewSearchService(store domain.CatalogStore, backend domain.SearchBackend, cfg SearchServiceConfig) *SearchService {
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = 5
	}
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = 50
	}
	if cfg.DefaultAlpha == 0 {
		cfg.DefaultAlpha = 0.5
	}
	return &SearchService{
		store:   store,
		backend: backend,
		cfg:     cfg,
	}
}

// Search executes one query against the backend in the requested mode.
func (s *SearchService) Search(ctx context.Context, req domain.SearchRequest) ([]domain.SearchResult, error) {
	req.Query = strings.TrimSpace(req.Query)
	if req.Query == "" || s.store.Len() == 0 {
		return []domain.SearchResult{}, nil
	}

	if req.Limit <= 0 {
		req.Limit = s.cfg.DefaultLimit
	}
	if req.Limit > s.cfg.MaxLimit {
		req.Limit = s.cfg.MaxLimit
	}
	if req.Alpha <= 0 || req.Alpha > 1 {
		req.Alpha = s.cfg.DefaultAlpha
	}

	results, err := s.backend.Search(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w (%s): %v", domain.ErrSearchFailed, req.Mode, err)
	}
	if results == nil {
		results = []domain.SearchResult{}
	}
	return results, nil
}

// Status reports catalog size and backend readiness for the status endpoint
func (s *SearchService) Status(ctx context.Context) (int, error) {
	return s.store.Len(), s.backend.Ready(ctx)
}
