package rag

import (
	"context"
	"fmt"
	"sort"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/contentsuite/brandsuite/internal/model"
)

const DefaultTopK = 3

// VectorStore is the datastore side of the search: a nearest neighbour lookup scoped to
// one manual, best match first.
type VectorStore interface {
	MatchEmbeddings(ctx context.Context, queryEmbedding []float32, manualID string, count int) ([]model.SearchResult, error)
}

type Searcher struct {
	embedder *Embedder
	store    VectorStore
}

func NewSearcher(embedder *Embedder, store VectorStore) *Searcher {
	return &Searcher{embedder: embedder, store: store}
}

// Search returns at most topK chunks of the manual ordered by similarity. A manual without
// indexed chunks gives an empty result, not an error.
func (s *Searcher) Search(ctx context.Context, query, manualID string, topK int) ([]model.SearchResult, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}
	logger := logutil.GetLogger(ctx).With(zap.String("manual_id", manualID), zap.Int("top_k", topK))
	vec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		logger.Error("embed search query failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrSearch, err)
	}
	rows, err := s.store.MatchEmbeddings(ctx, vec, manualID, topK)
	if err != nil {
		logger.Error("match embeddings failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrSearch, err)
	}
	results := make([]model.SearchResult, 0, len(rows))
	results = append(results, rows...)
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
	if len(results) > topK {
		results = results[:topK]
	}
	for _, item := range results {
		logger.Debug("semantic match", zap.String("section", item.Section), zap.Float64("similarity", item.Similarity))
	}
	return results, nil
}
