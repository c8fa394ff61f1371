package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/kitanog/weaviate-demo/internal/domain"
)

// CatalogService accepts uploaded catalog documents, validates them against
// the required-field contract and publishes accepted batches to the session
// store and the configured search backend.
type CatalogService struct {
	store   domain.CatalogStore
	backend domain.SearchBackend
}

// NewCatalogService creates a new catalog service with dependencies
func NewCatalogService(store domain.CatalogStore, backend domain.SearchBackend) *CatalogService {
	return &CatalogService{
		store:   store,
		backend: backend,
	}
}

// Load parses, validates and publishes an uploaded catalog document.
// Acceptance is all-or-nothing: a single invalid record rejects the batch
// and leaves the previously loaded catalog untouched.
// Returns the number of accepted products.
func (s *CatalogService) Load(ctx context.Context, filename string, contents []byte) (int, error) {
	if !strings.HasSuffix(strings.ToLower(filename), ".json") {
		return 0, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, filename)
	}

	elements, err := decodeElements(contents)
	if err != nil {
		return 0, err
	}

	products, invalid := validateElements(elements)
	if invalid > 0 {
		return 0, &domain.SchemaError{Invalid: invalid, Total: len(elements)}
	}

	return s.publish(ctx, products)
}

// LoadSample publishes the built-in demo catalog, bypassing upload parsing.
func (s *CatalogService) LoadSample(ctx context.Context) (int, error) {
	return s.publish(ctx, domain.SampleProducts)
}

// Size returns the number of products currently loaded
func (s *CatalogService) Size() int {
	return s.store.Len()
}

// publish replaces the session catalog wholesale and re-indexes the backend
// collection. The local replace happens first: if remote indexing fails the
// catalog stays queryable through backends that read the store directly.
func (s *CatalogService) publish(ctx context.Context, products []domain.Product) (int, error) {
	s.store.Replace(products)

	if err := s.backend.IndexCatalog(ctx, products); err != nil {
		log.Printf("[Catalog] Backend indexing failed for %d products: %v", len(products), err)
		return len(products), fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}

	log.Printf("[Catalog] Loaded %d products", len(products))
	return len(products), nil
}

// decodeElements decodes the uploaded document into a slice of raw records.
// A single JSON object is normalized into a one-element slice.
func decodeElements(contents []byte) ([]json.RawMessage, error) {
	raw := bytes.TrimSpace(contents)
	if len(raw) == 0 {
		return nil, &domain.ParseError{Err: errors.New("empty document")}
	}

	if raw[0] == '[' {
		var elements []json.RawMessage
		if err := json.Unmarshal(raw, &elements); err != nil {
			return nil, &domain.ParseError{Err: err}
		}
		return elements, nil
	}

	var single json.RawMessage
	if err := json.Unmarshal(raw, &single); err != nil {
		return nil, &domain.ParseError{Err: err}
	}
	return []json.RawMessage{single}, nil
}

// validateElements checks every record for the required-field contract and
// decodes the valid ones. Records that are not JSON objects, are missing a
// required member, or fail the typed decode all count as invalid.
func validateElements(elements []json.RawMessage) ([]domain.Product, int) {
	products := make([]domain.Product, 0, len(elements))
	invalid := 0

	for _, el := range elements {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(el, &fields); err != nil {
			invalid++
			continue
		}

		missing := false
		for _, f := range domain.RequiredFields {
			if _, ok := fields[f]; !ok {
				missing = true
				break
			}
		}
		if missing {
			invalid++
			continue
		}

		var p domain.Product
		if err := json.Unmarshal(el, &p); err != nil {
			invalid++
			continue
		}
		products = append(products, p)
	}

	return products, invalid
}
