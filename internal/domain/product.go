package domain

// Product represents a single catalog record as uploaded by the user
type Product struct {
	ProductID      string            `json:"product_id"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Category       string            `json:"category"`
	Price          float64           `json:"price"`
	Brand          string            `json:"brand"`
	Tags           []string          `json:"tags"`
	Specifications map[string]string `json:"specifications,omitempty"`
}

// RequiredFields lists the JSON members every uploaded record must carry.
// Records missing any of these reject the whole batch (no partial accepts).
var RequiredFields = []string{
	"product_id", "name", "description", "category", "price", "brand", "tags",
}

// ResultMetadata carries the mode-specific annotation attached to a search
// result. Exactly one field is populated, chosen by the search mode; hybrid
// results carry no metadata at all.
type ResultMetadata struct {
	Score     *float64 `json:"score,omitempty"`     // keyword: descending relevance
	Distance  *float64 `json:"distance,omitempty"`  // vector: ascending dissimilarity
	Generated string   `json:"generated,omitempty"` // rag: synthesized blurb
}

// SearchResult is a product decorated with per-mode metadata
type SearchResult struct {
	Product
	Metadata *ResultMetadata `json:"_metadata,omitempty"`
}

// SearchRequest is the request shape shared by all search backends
type SearchRequest struct {
	Query string  `json:"query"`
	Mode  Mode    `json:"mode"`
	Limit int     `json:"limit"`
	Alpha float64 `json:"alpha"` // hybrid balance: 0.0 = vector, 1.0 = keyword
}
