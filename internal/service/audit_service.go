package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/contentsuite/brandsuite/internal/ai"
	"github.com/contentsuite/brandsuite/internal/filestore"
	"github.com/contentsuite/brandsuite/internal/metrics"
	"github.com/contentsuite/brandsuite/internal/model"
	appErr "github.com/contentsuite/brandsuite/internal/pkg/errors"
	"github.com/contentsuite/brandsuite/internal/rag"
)

type AuditService struct {
	manuals      ManualStore
	audits       AuditStore
	rag          *RAGService
	manager      *ai.Manager
	files        filestore.Store
	maxImageSize int64
}

// NewAuditService builds the audit flow. files may be nil, audited images are then not kept.
func NewAuditService(manuals ManualStore, audits AuditStore, ragService *RAGService, manager *ai.Manager, files filestore.Store, maxImageSize int64) *AuditService {
	return &AuditService{
		manuals:      manuals,
		audits:       audits,
		rag:          ragService,
		manager:      manager,
		files:        files,
		maxImageSize: maxImageSize,
	}
}

type AuditInput struct {
	ManualID string
	Image    []byte
	MimeType string
}

func (in *AuditInput) validate(maxSize int64) error {
	in.MimeType = strings.ToLower(strings.TrimSpace(in.MimeType))
	if !strings.HasPrefix(in.MimeType, "image/") {
		return fmt.Errorf("%w: file must be an image", appErr.ErrInvalid)
	}
	if len(in.Image) == 0 {
		return fmt.Errorf("%w: image is empty", appErr.ErrInvalid)
	}
	if maxSize > 0 && int64(len(in.Image)) > maxSize {
		return fmt.Errorf("%w: image exceeds %d bytes", appErr.ErrInvalid, maxSize)
	}
	return nil
}

// Audit scores an image against the manual. The manual must be generated and indexed.
func (s *AuditService) Audit(ctx context.Context, in AuditInput) (*model.ImageAudit, error) {
	if err := in.validate(s.maxImageSize); err != nil {
		return nil, err
	}
	logger := logutil.GetLogger(ctx).With(zap.String("manual_id", in.ManualID))
	manual, err := requireGeneratedManual(ctx, s.manuals, in.ManualID)
	if err != nil {
		return nil, err
	}
	policy, err := rag.PolicyFor(model.ContentTypeImagePrompt)
	if err != nil {
		return nil, err
	}
	ragContext, err := s.rag.retrieveContext(ctx, manual.ID, policy)
	if err != nil {
		metrics.ObserveAudit(metrics.OutcomeError, 0)
		return nil, err
	}
	start := time.Now()
	verdict, err := s.manager.AuditImage(ctx, manual.Name, manual.FullManual, ragContext, in.Image, in.MimeType)
	metrics.ObserveProvider("audit", start)
	if err != nil {
		metrics.ObserveAudit(metrics.OutcomeError, 0)
		logger.Error("audit image failed", zap.Error(err))
		return nil, providerError(err)
	}
	item := &model.ImageAudit{
		ID:           newID(),
		ManualID:     manual.ID,
		ManualName:   manual.Name,
		MimeType:     in.MimeType,
		AuditVerdict: verdict,
		Ctime:        time.Now().Unix(),
	}
	item.ImageKey = s.storeImage(ctx, item.ID, in)
	if err := s.audits.Create(ctx, item); err != nil {
		metrics.ObserveAudit(metrics.OutcomeError, 0)
		return nil, err
	}
	if verdict.Fallback {
		metrics.ObserveAudit(metrics.OutcomeFallback, verdict.Score)
	} else {
		metrics.ObserveAudit(metrics.OutcomeOK, verdict.Score)
	}
	logger.Info("image audited", zap.String("audit_id", item.ID), zap.Float64("score", verdict.Score),
		zap.Bool("compliant", verdict.Compliant), zap.Bool("fallback", verdict.Fallback))
	return item, nil
}

// storeImage keeps the audited image. A storage failure does not discard the verdict, the
// audit is then saved without an image key.
func (s *AuditService) storeImage(ctx context.Context, auditID string, in AuditInput) string {
	if s.files == nil {
		return ""
	}
	key := imageKey(auditID, in.MimeType)
	if err := s.files.Save(ctx, key, bytes.NewReader(in.Image), int64(len(in.Image)), in.MimeType); err != nil {
		logutil.GetLogger(ctx).Error("store audited image failed", zap.String("key", key), zap.Error(err))
		return ""
	}
	return key
}

func (s *AuditService) ListByManual(ctx context.Context, manualID string) ([]*model.ImageAudit, error) {
	if strings.TrimSpace(manualID) == "" {
		return nil, fmt.Errorf("%w: manual_id is required", appErr.ErrInvalid)
	}
	items, err := s.audits.ListByManual(ctx, manualID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*model.ImageAudit{}
	}
	return items, nil
}

func (s *AuditService) Get(ctx context.Context, id string) (*model.ImageAudit, error) {
	return s.audits.GetByID(ctx, id)
}

// OpenImage returns the stored image of an audit along with its mime type.
func (s *AuditService) OpenImage(ctx context.Context, id string) (io.ReadCloser, string, error) {
	item, err := s.audits.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if s.files == nil || item.ImageKey == "" {
		return nil, "", appErr.ErrNotFound
	}
	rc, err := s.files.Open(ctx, item.ImageKey)
	if err != nil {
		if errors.Is(err, filestore.ErrNotFound) {
			return nil, "", appErr.ErrNotFound
		}
		return nil, "", err
	}
	return rc, item.MimeType, nil
}
