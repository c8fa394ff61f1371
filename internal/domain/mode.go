package domain

import "fmt"

// Mode selects the search behavior. It is a closed set so that dispatch
// switches stay exhaustive instead of silently ignoring unknown strings.
type Mode int

const (
	ModeKeyword Mode = iota
	ModeVector
	ModeHybrid
	ModeRAG
)

// Modes lists every supported mode in a stable order.
var Modes = []Mode{ModeKeyword, ModeVector, ModeHybrid, ModeRAG}

// ParseMode maps the wire representation ("keyword", "vector", "hybrid",
// "rag") to a Mode. Unknown values return an error rather than a default.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "keyword":
		return ModeKeyword, nil
	case "vector":
		return ModeVector, nil
	case "hybrid":
		return ModeHybrid, nil
	case "rag":
		return ModeRAG, nil
	default:
		return 0, fmt.Errorf("%w: unknown search mode %q", ErrInvalidRequest, s)
	}
}

func (m Mode) String() string {
	switch m {
	case ModeKeyword:
		return "keyword"
	case ModeVector:
		return "vector"
	case ModeHybrid:
		return "hybrid"
	case ModeRAG:
		return "rag"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}
