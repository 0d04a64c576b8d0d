package rag

import "errors"

// Error kinds of the retrieval pipeline. Failures are wrapped as "%w: %w" so callers can
// match both the kind and the underlying cause with errors.Is.
var (
	ErrEmbedding          = errors.New("embedding failed")
	ErrIndexing           = errors.New("indexing failed")
	ErrSearch             = errors.New("search failed")
	ErrUnknownContentType = errors.New("unknown content type")
)
