package service

import (
	"context"

	"github.com/contentsuite/brandsuite/internal/model"
	"github.com/contentsuite/brandsuite/internal/rag"
)

// The stores below are satisfied by the postgres repos in internal/repo.

type ManualStore interface {
	Create(ctx context.Context, manual *model.BrandManual) error
	List(ctx context.Context) ([]*model.BrandManual, error)
	GetByID(ctx context.Context, id string) (*model.BrandManual, error)
	Delete(ctx context.Context, id string) error
}

type EmbeddingStore interface {
	rag.VectorStore
	ReplaceByManual(ctx context.Context, manualID string, records []model.EmbeddingRecord, now int64) error
	SectionCounts(ctx context.Context, manualID string) (map[string]int, error)
	CountByManuals(ctx context.Context, manualIDs []string) (map[string]int, error)
}

type ContentStore interface {
	Create(ctx context.Context, item *model.GeneratedContent) error
	List(ctx context.Context, manualID string, limit int) ([]*model.GeneratedContent, error)
	UpdateStatus(ctx context.Context, id, status string, mtime int64) error
}

type AuditStore interface {
	Create(ctx context.Context, item *model.ImageAudit) error
	ListByManual(ctx context.Context, manualID string) ([]*model.ImageAudit, error)
	GetByID(ctx context.Context, id string) (*model.ImageAudit, error)
}
