package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kitanog/weaviate-demo/internal/domain"
	"github.com/kitanog/weaviate-demo/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	catalog        *usecase.CatalogService
	search         *usecase.SearchService
	backendName    string
	maxUploadBytes int64
}

// NewHandler creates a new HTTP handler
func NewHandler(catalog *usecase.CatalogService, search *usecase.SearchService, backendName string, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 5 << 20
	}
	return &Handler{
		catalog:        catalog,
		search:         search,
		backendName:    backendName,
		maxUploadBytes: maxUploadBytes,
	}
}

// searchRequest is the body accepted by the search endpoints
type searchRequest struct {
	Query string  `json:"query"`
	Limit int     `json:"limit,omitempty"`
	Alpha float64 `json:"alpha,omitempty"`
}

// searchResponse is the envelope returned by the search endpoints
type searchResponse struct {
	Success      bool                  `json:"success"`
	Results      []domain.SearchResult `json:"results"`
	Query        string                `json:"query"`
	SearchType   string                `json:"search_type"`
	TotalResults int                   `json:"total_results"`
	Message      string                `json:"message,omitempty"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "catalog-search",
		"version": "1.0.0",
	})
}

// Status reports catalog size and backend readiness
func (h *Handler) Status(c *gin.Context) {
	size, err := h.search.Status(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status":  "error",
			"backend": h.backendName,
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":         "connected",
		"backend":        h.backendName,
		"total_products": size,
	})
}

// UploadCatalog accepts a catalog document as a multipart "file" part.
// The file name drives the format check; validation is all-or-nothing.
func (h *Handler) UploadCatalog(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "missing 'file' part in upload",
		})
		return
	}
	defer file.Close()

	contents, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "failed to read uploaded file: " + err.Error(),
		})
		return
	}

	count, err := h.catalog.Load(c.Request.Context(), header.Filename, contents)
	if err != nil {
		h.renderUploadError(c, count, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"message":        "catalog loaded",
		"products_added": count,
	})
}

// LoadSampleCatalog loads the built-in demo products
func (h *Handler) LoadSampleCatalog(c *gin.Context) {
	count, err := h.catalog.LoadSample(c.Request.Context())
	if err != nil {
		h.renderUploadError(c, count, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"message":        "sample catalog loaded",
		"products_added": count,
	})
}

// DownloadSample serves a one-record example document for user guidance
func (h *Handler) DownloadSample(c *gin.Context) {
	sample, err := json.MarshalIndent([]domain.Product{domain.SampleProducts[0]}, "", "  ")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="sample_products.json"`)
	c.Data(http.StatusOK, "application/json", sample)
}

// Search handles one search request in the mode named by the URL
func (h *Handler) Search(c *gin.Context) {
	mode, err := domain.ParseMode(c.Param("mode"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	var body searchRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body: " + err.Error()})
		return
	}

	if body.Alpha < 0 || body.Alpha > 1 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "alpha must be between 0 and 1"})
		return
	}

	results, err := h.search.Search(c.Request.Context(), domain.SearchRequest{
		Query: body.Query,
		Mode:  mode,
		Limit: body.Limit,
		Alpha: body.Alpha,
	})
	if err != nil {
		c.JSON(http.StatusBadGateway, searchResponse{
			Success:    false,
			Results:    []domain.SearchResult{},
			Query:      body.Query,
			SearchType: mode.String(),
			Message:    err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, searchResponse{
		Success:      true,
		Results:      results,
		Query:        body.Query,
		SearchType:   mode.String(),
		TotalResults: len(results),
	})
}

// renderUploadError maps catalog errors onto HTTP statuses
func (h *Handler) renderUploadError(c *gin.Context, count int, err error) {
	var parseErr *domain.ParseError
	var schemaErr *domain.SchemaError

	switch {
	case errors.Is(err, domain.ErrUnsupportedFormat):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	case errors.As(err, &parseErr):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	case errors.As(err, &schemaErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success":          false,
			"error":            err.Error(),
			"invalid_products": schemaErr.Invalid,
			"total_products":   schemaErr.Total,
		})
	case errors.Is(err, domain.ErrBackendUnavailable):
		// the catalog replaced locally but never reached the backend
		c.JSON(http.StatusBadGateway, gin.H{
			"success":        false,
			"error":          err.Error(),
			"products_added": count,
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
	}
}
