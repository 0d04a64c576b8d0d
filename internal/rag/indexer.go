package rag

import (
	"context"
	"fmt"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/contentsuite/brandsuite/internal/model"
)

type Indexer struct {
	embedder *Embedder
}

func NewIndexer(embedder *Embedder) *Indexer {
	return &Indexer{embedder: embedder}
}

// Index turns a manual into embedding records, one per chunk and in chunk order. It is
// all or nothing: on the first failure no records are returned. Persisting the records,
// and removing the previous ones, is left to the caller.
func (x *Indexer) Index(ctx context.Context, manualID string, doc *model.ManualDocument) ([]model.EmbeddingRecord, error) {
	logger := logutil.GetLogger(ctx).With(zap.String("manual_id", manualID))
	chunks := ChunkManual(doc)
	records := make([]model.EmbeddingRecord, 0, len(chunks))
	for _, chunk := range chunks {
		vec, err := x.embedder.Embed(ctx, chunk.Content)
		if err != nil {
			logger.Error("embed chunk failed", zap.String("section", chunk.Section), zap.Error(err))
			return nil, fmt.Errorf("%w: section %s: %w", ErrIndexing, chunk.Section, err)
		}
		logger.Debug("chunk embedded", zap.String("section", chunk.Section), zap.Int("chars", len(chunk.Content)))
		records = append(records, model.EmbeddingRecord{
			ManualID:  manualID,
			Content:   chunk.Content,
			Section:   chunk.Section,
			Embedding: vec,
		})
	}
	logger.Info("manual chunked and embedded", zap.Int("chunks", len(records)))
	return records, nil
}
