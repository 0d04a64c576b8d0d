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
)

type ManualService struct {
	manuals    ManualStore
	embeddings EmbeddingStore
	manager    *ai.Manager
}

func NewManualService(manuals ManualStore, embeddings EmbeddingStore, manager *ai.Manager) *ManualService {
	return &ManualService{manuals: manuals, embeddings: embeddings, manager: manager}
}

type ManualInput struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	ProductType    string `json:"product_type"`
	Tone           string `json:"tone"`
	TargetAudience string `json:"target_audience"`
}

func (in *ManualInput) normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.ProductType = strings.TrimSpace(in.ProductType)
	in.Tone = strings.TrimSpace(in.Tone)
	in.TargetAudience = strings.TrimSpace(in.TargetAudience)
	if in.Name == "" {
		return fmt.Errorf("%w: name is required", appErr.ErrInvalid)
	}
	return nil
}

func (in *ManualInput) toManual(doc *model.ManualDocument) *model.BrandManual {
	now := time.Now().Unix()
	return &model.BrandManual{
		ID:             newID(),
		Name:           in.Name,
		Description:    in.Description,
		ProductType:    in.ProductType,
		Tone:           in.Tone,
		TargetAudience: in.TargetAudience,
		FullManual:     doc,
		Ctime:          now,
		Mtime:          now,
	}
}

// Create stores a manual without a generated document.
func (s *ManualService) Create(ctx context.Context, input ManualInput) (*model.BrandManual, error) {
	if err := input.normalize(); err != nil {
		return nil, err
	}
	manual := input.toManual(nil)
	if err := s.manuals.Create(ctx, manual); err != nil {
		return nil, err
	}
	logutil.GetLogger(ctx).Info("brand manual created", zap.String("manual_id", manual.ID), zap.String("name", manual.Name))
	return manual, nil
}

// Generate asks the generation provider for a full manual and stores it.
func (s *ManualService) Generate(ctx context.Context, input ManualInput) (*model.BrandManual, error) {
	if err := input.normalize(); err != nil {
		return nil, err
	}
	logger := logutil.GetLogger(ctx).With(zap.String("name", input.Name))
	start := time.Now()
	doc, err := s.manager.GenerateManual(ctx, ai.ManualBrief{
		Name:           input.Name,
		Description:    input.Description,
		ProductType:    input.ProductType,
		Tone:           input.Tone,
		TargetAudience: input.TargetAudience,
	})
	metrics.ObserveProvider("manual", start)
	if err != nil {
		logger.Error("generate manual failed", zap.Error(err))
		return nil, providerError(err)
	}
	manual := input.toManual(doc)
	if err := s.manuals.Create(ctx, manual); err != nil {
		return nil, err
	}
	logger.Info("brand manual generated", zap.String("manual_id", manual.ID), zap.Duration("cost", time.Since(start)))
	return manual, nil
}

func (s *ManualService) List(ctx context.Context) ([]*model.BrandManual, error) {
	manuals, err := s.manuals.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(manuals) == 0 {
		return []*model.BrandManual{}, nil
	}
	ids := make([]string, 0, len(manuals))
	for _, m := range manuals {
		ids = append(ids, m.ID)
	}
	counts, err := s.embeddings.CountByManuals(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, m := range manuals {
		m.IndexedChunks = counts[m.ID]
	}
	return manuals, nil
}

func (s *ManualService) Get(ctx context.Context, id string) (*model.BrandManual, error) {
	manual, err := s.manuals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	counts, err := s.embeddings.CountByManuals(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	manual.IndexedChunks = counts[id]
	return manual, nil
}

// Delete removes the manual; its embeddings, content and audits go with it.
func (s *ManualService) Delete(ctx context.Context, id string) error {
	if err := s.manuals.Delete(ctx, id); err != nil {
		return err
	}
	logutil.GetLogger(ctx).Info("brand manual deleted", zap.String("manual_id", id))
	return nil
}

func requireGeneratedManual(ctx context.Context, manuals ManualStore, id string) (*model.BrandManual, error) {
	manual, err := manuals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !manual.HasContent() {
		return nil, appErr.ErrManualNotGenerated
	}
	return manual, nil
}
