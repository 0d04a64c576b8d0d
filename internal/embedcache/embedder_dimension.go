package embedcache

import (
	"context"
	"fmt"

	"github.com/contentsuite/brandsuite/internal/ai"
)

// WrapDimensionCheckToEmbedder rejects vectors of the wrong length so the cache layers above
// never store them. A non-positive dim disables it.
func WrapDimensionCheckToEmbedder(e ai.IEmbedder, dim int) ai.IEmbedder {
	if e == nil || dim <= 0 {
		return e
	}
	return &dimensionEmbedder{next: e, dim: dim}
}

type dimensionEmbedder struct {
	next ai.IEmbedder
	dim  int
}

func (d *dimensionEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	res, err := d.next.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	if len(res) != d.dim {
		return nil, fmt.Errorf("model %s returned %d dimensions, want %d", d.next.ModelName(), len(res), d.dim)
	}
	return res, nil
}

func (d *dimensionEmbedder) ModelName() string {
	return d.next.ModelName()
}
