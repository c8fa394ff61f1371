package weaviate

import "github.com/kitanog/weaviate-demo/internal/domain"

// searchPayload is the wrapper's search request body
type searchPayload struct {
	Query string  `json:"query"`
	Limit int     `json:"limit"`
	Alpha float64 `json:"alpha,omitempty"`
}

// searchResponse is the wrapper's search response envelope
type searchResponse struct {
	Success      bool         `json:"success"`
	Results      []wireResult `json:"results"`
	Query        string       `json:"query"`
	SearchType   string       `json:"search_type"`
	TotalResults int          `json:"total_results"`
	Message      string       `json:"message,omitempty"`
}

// indexResponse is the wrapper's product-indexing response
type indexResponse struct {
	Success       bool   `json:"success"`
	ProductsAdded int    `json:"products_added"`
	Message       string `json:"message,omitempty"`
}

// wireResult is one result row as the wrapper returns it: flat product
// fields plus whichever annotation the search type produced.
type wireResult struct {
	ProductID        string   `json:"product_id"`
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	Category         string   `json:"category"`
	Price            float64  `json:"price"`
	Brand            string   `json:"brand"`
	Tags             []string `json:"tags"`
	Score            *float64 `json:"score,omitempty"`
	Distance         *float64 `json:"distance,omitempty"`
	GeneratedContent string   `json:"generated_content,omitempty"`
}

// mapResults converts wrapper rows into domain results, keeping only the
// annotation that belongs to the requested mode. Hybrid results stay bare.
func mapResults(mode domain.Mode, rows []wireResult) []domain.SearchResult {
	results := make([]domain.SearchResult, 0, len(rows))
	for _, row := range rows {
		r := domain.SearchResult{
			Product: domain.Product{
				ProductID:   row.ProductID,
				Name:        row.Name,
				Description: row.Description,
				Category:    row.Category,
				Price:       row.Price,
				Brand:       row.Brand,
				Tags:        row.Tags,
			},
		}

		switch mode {
		case domain.ModeKeyword:
			if row.Score != nil {
				r.Metadata = &domain.ResultMetadata{Score: row.Score}
			}
		case domain.ModeVector:
			if row.Distance != nil {
				r.Metadata = &domain.ResultMetadata{Distance: row.Distance}
			}
		case domain.ModeRAG:
			if row.GeneratedContent != "" {
				r.Metadata = &domain.ResultMetadata{Generated: row.GeneratedContent}
			}
		case domain.ModeHybrid:
			// the wrapper reports a fused score for hybrid, but the result
			// contract exposes no annotation for it yet
		}

		results = append(results, r)
	}
	return results
}
