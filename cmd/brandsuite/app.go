package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/contentsuite/brandsuite/internal/ai"
	"github.com/contentsuite/brandsuite/internal/config"
	"github.com/contentsuite/brandsuite/internal/db"
	"github.com/contentsuite/brandsuite/internal/embedcache"
	"github.com/contentsuite/brandsuite/internal/filestore"
	"github.com/contentsuite/brandsuite/internal/rag"
	"github.com/contentsuite/brandsuite/internal/repo"
	"github.com/contentsuite/brandsuite/internal/service"
)

type app struct {
	cfg *config.Config
	db  *sql.DB

	manualRepo    *repo.ManualRepo
	embeddingRepo *repo.EmbeddingRepo
	cacheRepo     *repo.EmbeddingCacheRepo

	manuals *service.ManualService
	rag     *service.RAGService
	content *service.ContentService
	audits  *service.AuditService
	status  *service.StatusService
}

func newApp(cfg *config.Config) (*app, error) {
	conn, err := db.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.ApplyMigrations(conn); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}
	a := &app{
		cfg:           cfg,
		db:            conn,
		manualRepo:    repo.NewManualRepo(conn),
		embeddingRepo: repo.NewEmbeddingRepo(conn),
		cacheRepo:     repo.NewEmbeddingCacheRepo(conn),
	}
	manager, err := buildManager(cfg.AI)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	embedder, err := a.buildEmbedder()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	store, err := filestore.New(cfg.FileStore)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("init file store: %w", err)
	}
	contentRepo := repo.NewContentRepo(conn)
	auditRepo := repo.NewAuditRepo(conn)

	a.manuals = service.NewManualService(a.manualRepo, a.embeddingRepo, manager)
	a.rag = service.NewRAGService(a.manualRepo, a.embeddingRepo, embedder)
	a.content = service.NewContentService(a.manualRepo, contentRepo, a.rag, manager)
	a.audits = service.NewAuditService(a.manualRepo, auditRepo, a.rag, manager, store, cfg.MaxImageSize)
	a.status = service.NewStatusService(conn, manager)
	return a, nil
}

func (a *app) Close() error {
	return a.db.Close()
}

func buildManager(cfg config.AIConfig) (*ai.Manager, error) {
	logger := logutil.GetLogger(context.Background())
	entries := make([]ai.GeneratorEntry, 0, len(cfg.Generators))
	for i, item := range cfg.Generators {
		provider, err := ai.NewProvider(item.Provider, item.Data)
		if err != nil {
			return nil, fmt.Errorf("init generator %d (%s): %w", i, item.Provider, err)
		}
		name := item.Name
		if name == "" {
			name = item.Provider + ":" + item.Model
		}
		entries = append(entries, ai.GeneratorEntry{Name: name, Generator: ai.NewGenerator(provider, item.Model)})
		logger.Info("generator configured", zap.String("name", name), zap.String("model", item.Model))
	}
	visionProvider, err := ai.NewProvider(cfg.Vision.Provider, cfg.Vision.Data)
	if err != nil {
		return nil, fmt.Errorf("init vision provider: %w", err)
	}
	vision, err := ai.NewVision(visionProvider, cfg.Vision.Model)
	if err != nil {
		return nil, fmt.Errorf("init vision: %w", err)
	}
	logger.Info("vision configured", zap.String("model", vision.ModelName()))
	return ai.NewManager(ai.NewGroupGenerator(entries), vision, ai.ManagerConfig{Timeout: cfg.Timeout}), nil
}

// buildEmbedder stacks the caches over the dimension-checked provider: lru first, then postgres.
func (a *app) buildEmbedder() (*rag.Embedder, error) {
	cfg := a.cfg
	provider, err := ai.NewEmbedProvider(cfg.AI.Embedder.Provider, cfg.AI.Embedder.Data)
	if err != nil {
		return nil, fmt.Errorf("init embed provider: %w", err)
	}
	embedder := embedcache.WrapDimensionCheckToEmbedder(ai.NewEmbedder(provider, cfg.AI.Embedder.Model), rag.Dimension)
	if cfg.EmbeddingCache.DBEnabled {
		embedder = embedcache.WrapDBCacheToEmbedder(embedder, a.cacheRepo)
	}
	if cfg.EmbeddingCache.LRUSize > 0 {
		ttl := time.Duration(cfg.EmbeddingCache.LRUTTLSeconds) * time.Second
		embedder = embedcache.WrapLruCacheToEmbedder(embedder, cfg.EmbeddingCache.LRUSize, ttl)
	}
	logutil.GetLogger(context.Background()).Info("embedder configured", zap.String("model", embedder.ModelName()),
		zap.Int("lru_size", cfg.EmbeddingCache.LRUSize), zap.Bool("db_cache", cfg.EmbeddingCache.DBEnabled))
	return rag.NewEmbedder(embedder), nil
}
