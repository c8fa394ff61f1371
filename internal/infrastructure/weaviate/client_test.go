package weaviate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kitanog/weaviate-demo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	client := NewClient("test-api-key", "https://search.example.com", 0)

	assert.NotNil(t, client)
	assert.Equal(t, "test-api-key", client.apiKey)
	assert.Equal(t, "https://search.example.com", client.baseURL)
	assert.NotNil(t, client.httpClient)
	assert.NotNil(t, client.rateLimiter)
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)
	assert.False(t, client.debug)
}

func TestExponentialBackoff(t *testing.T) {
	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{1, 500 * time.Millisecond},
		{2, 1000 * time.Millisecond},
		{3, 2000 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run("", func(t *testing.T) {
			result := exponentialBackoff(tt.attempt)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestSearch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/keyword", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var payload searchPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "bluetooth", payload.Query)
		assert.Equal(t, 5, payload.Limit)

		score := 0.82
		json.NewEncoder(w).Encode(searchResponse{
			Success:      true,
			Results:      []wireResult{{ProductID: "p1", Name: "Headphones", Score: &score}},
			TotalResults: 1,
		})
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, 0)
	results, err := client.Search(context.Background(), domain.SearchRequest{
		Query: "bluetooth",
		Mode:  domain.ModeKeyword,
		Limit: 5,
	})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "p1", results[0].ProductID)
	require.NotNil(t, results[0].Metadata)
	require.NotNil(t, results[0].Metadata.Score)
	assert.Equal(t, 0.82, *results[0].Metadata.Score)
	assert.Nil(t, results[0].Metadata.Distance)
}

func TestSearch_RetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(searchResponse{Success: true, Results: []wireResult{}})
	}))
	defer server.Close()

	client := NewClient("", server.URL, 0)
	results, err := client.Search(context.Background(), domain.SearchRequest{
		Query: "anything",
		Mode:  domain.ModeVector,
		Limit: 5,
	})

	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestSearch_DoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	client := NewClient("", server.URL, 0)
	_, err := client.Search(context.Background(), domain.SearchRequest{
		Query: "anything",
		Mode:  domain.ModeKeyword,
		Limit: 5,
	})

	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestSearch_RejectedByWrapper(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(searchResponse{Success: false, Message: "collection missing"})
	}))
	defer server.Close()

	client := NewClient("", server.URL, 0)
	_, err := client.Search(context.Background(), domain.SearchRequest{
		Query: "anything",
		Mode:  domain.ModeKeyword,
		Limit: 5,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "collection missing")
}

func TestIndexCatalog(t *testing.T) {
	t.Run("posts the product batch", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/products", r.URL.Path)

			var products []domain.Product
			require.NoError(t, json.NewDecoder(r.Body).Decode(&products))
			assert.Len(t, products, 3)

			json.NewEncoder(w).Encode(indexResponse{Success: true, ProductsAdded: 3})
		}))
		defer server.Close()

		client := NewClient("", server.URL, 0)
		err := client.IndexCatalog(context.Background(), domain.SampleProducts)
		assert.NoError(t, err)
	})

	t.Run("surfaces wrapper rejection", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(indexResponse{Success: false, Message: "schema mismatch"})
		}))
		defer server.Close()

		client := NewClient("", server.URL, 0)
		err := client.IndexCatalog(context.Background(), domain.SampleProducts)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "schema mismatch")
	})
}

func TestReady(t *testing.T) {
	t.Run("healthy wrapper", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/health", r.URL.Path)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := NewClient("", server.URL, 0)
		assert.NoError(t, client.Ready(context.Background()))
	})

	t.Run("unreachable wrapper", func(t *testing.T) {
		client := NewClient("", "http://127.0.0.1:1", time.Second)
		err := client.Ready(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrBackendUnavailable)
	})
}

func TestMapResults(t *testing.T) {
	score := 0.9
	distance := 0.2
	rows := []wireResult{{
		ProductID:        "p1",
		Name:             "Headphones",
		Score:            &score,
		Distance:         &distance,
		GeneratedContent: "blurb",
	}}

	t.Run("keyword keeps only the score", func(t *testing.T) {
		results := mapResults(domain.ModeKeyword, rows)
		require.NotNil(t, results[0].Metadata)
		assert.Equal(t, &score, results[0].Metadata.Score)
		assert.Nil(t, results[0].Metadata.Distance)
		assert.Empty(t, results[0].Metadata.Generated)
	})

	t.Run("vector keeps only the distance", func(t *testing.T) {
		results := mapResults(domain.ModeVector, rows)
		require.NotNil(t, results[0].Metadata)
		assert.Equal(t, &distance, results[0].Metadata.Distance)
		assert.Nil(t, results[0].Metadata.Score)
	})

	t.Run("rag keeps only the generated text", func(t *testing.T) {
		results := mapResults(domain.ModeRAG, rows)
		require.NotNil(t, results[0].Metadata)
		assert.Equal(t, "blurb", results[0].Metadata.Generated)
	})

	t.Run("hybrid stays bare", func(t *testing.T) {
		results := mapResults(domain.ModeHybrid, rows)
		assert.Nil(t, results[0].Metadata)
	})
}
