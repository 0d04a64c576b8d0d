package rag

import (
	"strings"

	"github.com/contentsuite/brandsuite/internal/model"
)

// AssembleContext formats search results as labelled blocks, keeping their order. An empty
// result set gives "", which callers must treat as missing grounding.
func AssembleContext(results []model.SearchResult) string {
	if len(results) == 0 {
		return ""
	}
	blocks := make([]string, 0, len(results))
	for _, r := range results {
		blocks = append(blocks, "[SECTION: "+r.Section+"]\n"+r.Content)
	}
	return strings.Join(blocks, "\n\n")
}
