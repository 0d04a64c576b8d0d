package service

import (
	"context"
	"fmt"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/contentsuite/brandsuite/internal/metrics"
	"github.com/contentsuite/brandsuite/internal/model"
	appErr "github.com/contentsuite/brandsuite/internal/pkg/errors"
	"github.com/contentsuite/brandsuite/internal/rag"
)

type RAGService struct {
	manuals    ManualStore
	embeddings EmbeddingStore
	indexer    *rag.Indexer
	searcher   *rag.Searcher
}

func NewRAGService(manuals ManualStore, embeddings EmbeddingStore, embedder *rag.Embedder) *RAGService {
	return &RAGService{
		manuals:    manuals,
		embeddings: embeddings,
		indexer:    rag.NewIndexer(embedder),
		searcher:   rag.NewSearcher(embedder, embeddings),
	}
}

// IndexManual rebuilds the manual's embeddings. Old records are only replaced once every
// chunk has been embedded.
func (s *RAGService) IndexManual(ctx context.Context, manualID string) (*model.IndexReport, error) {
	logger := logutil.GetLogger(ctx).With(zap.String("manual_id", manualID))
	manual, err := requireGeneratedManual(ctx, s.manuals, manualID)
	if err != nil {
		return nil, err
	}
	records, err := s.indexer.Index(ctx, manual.ID, manual.FullManual)
	if err != nil {
		metrics.ObserveIndex(metrics.OutcomeError, 0)
		return nil, err
	}
	if err := s.embeddings.ReplaceByManual(ctx, manual.ID, records, time.Now().Unix()); err != nil {
		metrics.ObserveIndex(metrics.OutcomeError, 0)
		logger.Error("store embeddings failed", zap.Error(err))
		return nil, fmt.Errorf("%w: store records: %w", rag.ErrIndexing, err)
	}
	sections := make([]string, 0, len(records))
	for _, r := range records {
		sections = append(sections, r.Section)
	}
	metrics.ObserveIndex(metrics.OutcomeOK, len(records))
	logger.Info("manual indexed", zap.Int("chunks", len(records)))
	return &model.IndexReport{
		ManualID:      manual.ID,
		ChunksCreated: len(records),
		Sections:      sections,
	}, nil
}

func (s *RAGService) Search(ctx context.Context, query, manualID string, topK int) ([]model.SearchResult, error) {
	start := time.Now()
	results, err := s.searcher.Search(ctx, query, manualID, topK)
	switch {
	case err != nil:
		metrics.ObserveSearch(metrics.OutcomeError, start)
	case len(results) == 0:
		metrics.ObserveSearch(metrics.OutcomeEmpty, start)
	default:
		metrics.ObserveSearch(metrics.OutcomeOK, start)
	}
	return results, err
}

// Status reports the index of a manual. Sections follow manual order.
func (s *RAGService) Status(ctx context.Context, manualID string) (*model.IndexStatus, error) {
	if _, err := s.manuals.GetByID(ctx, manualID); err != nil {
		return nil, err
	}
	counts, err := s.embeddings.SectionCounts(ctx, manualID)
	if err != nil {
		return nil, err
	}
	status := &model.IndexStatus{ManualID: manualID, Sections: []string{}}
	for _, section := range rag.Sections {
		if n := counts[section]; n > 0 {
			status.Sections = append(status.Sections, section)
			status.ChunksCount += n
		}
	}
	status.HasEmbeddings = status.ChunksCount > 0
	return status, nil
}

// retrieveContext runs the policy query against an indexed manual and returns the
// assembled context block.
func (s *RAGService) retrieveContext(ctx context.Context, manualID string, policy rag.QueryPolicy) (string, error) {
	counts, err := s.embeddings.SectionCounts(ctx, manualID)
	if err != nil {
		return "", err
	}
	if len(counts) == 0 {
		return "", fmt.Errorf("%w: index the manual before generating", appErr.ErrIndexMissing)
	}
	results, err := s.Search(ctx, policy.Query, manualID, policy.TopK)
	if err != nil {
		return "", err
	}
	text := rag.AssembleContext(results)
	if text == "" {
		return "", appErr.ErrInsufficientContext
	}
	logutil.GetLogger(ctx).Debug("rag context assembled", zap.String("manual_id", manualID),
		zap.String("content_type", policy.ContentType), zap.Int("results", len(results)))
	return text, nil
}
