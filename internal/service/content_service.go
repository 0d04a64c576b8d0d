package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/contentsuite/brandsuite/internal/ai"
	"github.com/contentsuite/brandsuite/internal/metrics"
	"github.com/contentsuite/brandsuite/internal/model"
	appErr "github.com/contentsuite/brandsuite/internal/pkg/errors"
	"github.com/contentsuite/brandsuite/internal/rag"
)

const (
	defaultContentListLimit = 50
	maxContentListLimit     = 200
)

type ContentService struct {
	manuals  ManualStore
	contents ContentStore
	rag      *RAGService
	manager  *ai.Manager
}

func NewContentService(manuals ManualStore, contents ContentStore, ragService *RAGService, manager *ai.Manager) *ContentService {
	return &ContentService{manuals: manuals, contents: contents, rag: ragService, manager: manager}
}

// Generate writes new content grounded on the indexed manual. The result is stored as
// pending until someone approves or rejects it.
func (s *ContentService) Generate(ctx context.Context, manualID, contentType, additional string) (*model.GeneratedContent, error) {
	policy, err := rag.PolicyFor(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", appErr.ErrInvalid, err)
	}
	logger := logutil.GetLogger(ctx).With(zap.String("manual_id", manualID), zap.String("content_type", contentType))
	manual, err := requireGeneratedManual(ctx, s.manuals, manualID)
	if err != nil {
		return nil, err
	}
	ragContext, err := s.rag.retrieveContext(ctx, manual.ID, policy)
	if err != nil {
		metrics.ObserveGeneration(contentType, metrics.OutcomeError)
		return nil, err
	}
	start := time.Now()
	additional = strings.TrimSpace(additional)
	text, err := s.manager.GenerateContent(ctx, contentType, manual.Name, ragContext, additional)
	metrics.ObserveProvider("content", start)
	if err != nil {
		metrics.ObserveGeneration(contentType, metrics.OutcomeError)
		logger.Error("generate content failed", zap.Error(err))
		return nil, providerError(err)
	}
	now := time.Now().Unix()
	item := &model.GeneratedContent{
		ID:            newID(),
		ManualID:      manual.ID,
		ContentType:   contentType,
		UserPrompt:    additional,
		GeneratedText: text,
		Status:        model.ContentStatusPending,
		Ctime:         now,
		Mtime:         now,
	}
	if err := s.contents.Create(ctx, item); err != nil {
		metrics.ObserveGeneration(contentType, metrics.OutcomeError)
		return nil, err
	}
	metrics.ObserveGeneration(contentType, metrics.OutcomeOK)
	logger.Info("content generated", zap.String("content_id", item.ID), zap.Int("chars", len(text)))
	return item, nil
}

// List returns generated content newest first; an empty manualID lists every manual.
func (s *ContentService) List(ctx context.Context, manualID string, limit int) ([]*model.GeneratedContent, error) {
	if limit <= 0 {
		limit = defaultContentListLimit
	}
	if limit > maxContentListLimit {
		limit = maxContentListLimit
	}
	items, err := s.contents.List(ctx, manualID, limit)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*model.GeneratedContent{}
	}
	return items, nil
}

func (s *ContentService) Approve(ctx context.Context, id string) error {
	return s.setStatus(ctx, id, model.ContentStatusApproved)
}

func (s *ContentService) Reject(ctx context.Context, id string) error {
	return s.setStatus(ctx, id, model.ContentStatusRejected)
}

func (s *ContentService) setStatus(ctx context.Context, id, status string) error {
	if err := s.contents.UpdateStatus(ctx, id, status, time.Now().Unix()); err != nil {
		return err
	}
	logutil.GetLogger(ctx).Info("content status updated", zap.String("content_id", id), zap.String("status", status))
	return nil
}
