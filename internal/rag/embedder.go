package rag

import (
	"context"
	"fmt"
)

// Dimension is the length of every stored and query vector.
const Dimension = 384

type TextEmbedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Embedder guards a model: failures come back as ErrEmbedding and every vector is
// checked against Dimension before it reaches the datastore.
type Embedder struct {
	next TextEmbedder
}

func NewEmbedder(next TextEmbedder) *Embedder {
	return &Embedder{next: next}
}

func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if e == nil || e.next == nil {
		return nil, fmt.Errorf("%w: embedder not configured", ErrEmbedding)
	}
	vec, err := e.next.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEmbedding, err)
	}
	if len(vec) != Dimension {
		return nil, fmt.Errorf("%w: got %d dimensions, want %d", ErrEmbedding, len(vec), Dimension)
	}
	return vec, nil
}
