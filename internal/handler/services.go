package handler

import (
	"context"
	"io"

	"github.com/contentsuite/brandsuite/internal/model"
	"github.com/contentsuite/brandsuite/internal/service"
)

type ManualService interface {
	Create(ctx context.Context, input service.ManualInput) (*model.BrandManual, error)
	Generate(ctx context.Context, input service.ManualInput) (*model.BrandManual, error)
	List(ctx context.Context) ([]*model.BrandManual, error)
	Get(ctx context.Context, id string) (*model.BrandManual, error)
	Delete(ctx context.Context, id string) error
}

type RAGService interface {
	IndexManual(ctx context.Context, manualID string) (*model.IndexReport, error)
	Search(ctx context.Context, query, manualID string, topK int) ([]model.SearchResult, error)
	Status(ctx context.Context, manualID string) (*model.IndexStatus, error)
}

type ContentService interface {
	Generate(ctx context.Context, manualID, contentType, additional string) (*model.GeneratedContent, error)
	List(ctx context.Context, manualID string, limit int) ([]*model.GeneratedContent, error)
	Approve(ctx context.Context, id string) error
	Reject(ctx context.Context, id string) error
}

type AuditService interface {
	Audit(ctx context.Context, in service.AuditInput) (*model.ImageAudit, error)
	ListByManual(ctx context.Context, manualID string) ([]*model.ImageAudit, error)
	Get(ctx context.Context, id string) (*model.ImageAudit, error)
	OpenImage(ctx context.Context, id string) (io.ReadCloser, string, error)
}

type StatusService interface {
	Database(ctx context.Context) service.DatabaseStatus
	Vision(ctx context.Context) service.VisionStatus
}
