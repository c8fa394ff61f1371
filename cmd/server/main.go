package main

import (
	"fmt"
	"log"
	"os"

	"github.com/kitanog/weaviate-demo/config"
	httpDelivery "github.com/kitanog/weaviate-demo/internal/delivery/http"
	"github.com/kitanog/weaviate-demo/internal/domain"
	"github.com/kitanog/weaviate-demo/internal/infrastructure/catalogstore"
	"github.com/kitanog/weaviate-demo/internal/infrastructure/embedding"
	"github.com/kitanog/weaviate-demo/internal/infrastructure/qdrant"
	"github.com/kitanog/weaviate-demo/internal/infrastructure/stub"
	"github.com/kitanog/weaviate-demo/internal/infrastructure/weaviate"
	"github.com/kitanog/weaviate-demo/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting Catalog Search v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Backend: %s", cfg.Backend.Driver)

	store := catalogstore.NewMemoryStore()

	backend, err := buildBackend(cfg, store)
	if err != nil {
		log.Fatalf("Failed to initialize search backend: %v", err)
	}

	// Initialize usecase layer
	catalogService := usecase.NewCatalogService(store, backend)
	searchService := usecase.NewSearchService(store, backend, usecase.SearchServiceConfig{
		DefaultLimit: cfg.Search.Limit,
		MaxLimit:     cfg.Search.MaxLimit,
		DefaultAlpha: cfg.Search.Alpha,
	})

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(catalogService, searchService, cfg.Backend.Driver, cfg.Upload.MaxBytes)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// buildBackend wires the search backend selected by configuration
func buildBackend(cfg *config.Config, store domain.CatalogStore) (domain.SearchBackend, error) {
	switch cfg.Backend.Driver {
	case "stub":
		if cfg.Search.StubDelay > 0 {
			log.Printf("Stub backend simulating %s of latency", cfg.Search.StubDelay)
		}
		return stub.New(store, cfg.Search.StubDelay), nil

	case "weaviate":
		client := weaviate.NewClient(cfg.Weaviate.APIKey, cfg.Weaviate.BaseURL, cfg.Weaviate.Timeout)
		if cfg.Server.Environment == "development" {
			client.SetDebug(true)
			log.Printf("Weaviate client debug mode enabled")
		}
		log.Printf("Weaviate wrapper configured: %s", cfg.Weaviate.BaseURL)
		return client, nil

	case "qdrant":
		embedder, err := embedding.NewClient(cfg.Embedding.Endpoint, cfg.Embedding.APIKey, cfg.Embedding.Model)
		if err != nil {
			return nil, err
		}
		log.Printf("Qdrant configured: %s:%d collection=%s model=%s",
			cfg.Qdrant.Host, cfg.Qdrant.Port, cfg.Qdrant.Collection, cfg.Embedding.Model)
		return qdrant.New(cfg.Qdrant.Host, cfg.Qdrant.Port, cfg.Qdrant.Collection, embedder)

	default:
		return nil, fmt.Errorf("unknown backend driver: %s", cfg.Backend.Driver)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
