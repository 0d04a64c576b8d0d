package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/contentsuite/brandsuite/internal/config"
	"github.com/contentsuite/brandsuite/internal/db"
	"github.com/contentsuite/brandsuite/internal/handler"
	"github.com/contentsuite/brandsuite/internal/job"
	"github.com/contentsuite/brandsuite/internal/middleware"
	"github.com/contentsuite/brandsuite/internal/schedule"
)

func main() {
	var (
		configPath string
		envFile    string
	)
	rootCmd := &cobra.Command{
		Use:   "brandsuite",
		Short: "brand manual generation, retrieval and audit server",
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file loaded before the config")

	load := func() (*config.Config, error) {
		if configPath == "" {
			return nil, fmt.Errorf("--config is required")
		}
		if err := config.LoadEnvFile(envFile); err != nil {
			return nil, err
		}
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		logger.Init(
			cfg.LogConfig.File,
			cfg.LogConfig.Level,
			int(cfg.LogConfig.FileCount),
			int(cfg.LogConfig.FileSize),
			int(cfg.LogConfig.KeepDays),
			cfg.LogConfig.Console,
		)
		logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))
		return cfg, nil
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the http server and background jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			a, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer a.Close()
			return runServer(a)
		},
	}

	var (
		manualID string
		all      bool
	)
	reindexCmd := &cobra.Command{
		Use:   "reindex",
		Short: "rebuild manual embeddings",
		RunE: func(cmd *cobra.Command, args []string) error {
			if (manualID == "") == !all {
				return fmt.Errorf("exactly one of --manual-id or --all is required")
			}
			cfg, err := load()
			if err != nil {
				return err
			}
			a, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer a.Close()
			return reindex(cmd.Context(), a, manualID)
		},
	}
	reindexCmd.Flags().StringVar(&manualID, "manual-id", "", "manual to reindex")
	reindexCmd.Flags().BoolVar(&all, "all", false, "reindex every generated manual")

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			conn, err := db.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer conn.Close()
			return db.ApplyMigrations(conn)
		},
	}

	rootCmd.AddCommand(runCmd, reindexCmd, migrateCmd)
	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func reindex(ctx context.Context, a *app, manualID string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logutil.GetLogger(ctx)
	ids := []string{manualID}
	if manualID == "" {
		var err error
		if ids, err = a.manualRepo.ListIDs(ctx); err != nil {
			return err
		}
	}
	failed := 0
	for _, id := range ids {
		report, err := a.rag.IndexManual(ctx, id)
		if err != nil {
			failed++
			logger.Error("reindex failed", zap.String("manual_id", id), zap.Error(err))
			continue
		}
		logger.Info("manual reindexed", zap.String("manual_id", id), zap.Int("chunks", report.ChunksCreated))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d manuals failed to reindex", failed, len(ids))
	}
	return nil
}

func runServer(a *app) error {
	cfg := a.cfg
	addr := fmt.Sprintf("0.0.0.0:%d", cfg.Port)
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.String("file_store", cfg.FileStore.Type),
		zap.Bool("schedule", cfg.Schedule.Enabled),
	)

	deps := handler.RouterDeps{
		Manuals: handler.NewManualHandler(a.manuals, a.rag),
		Content: handler.NewContentHandler(a.content),
		Audits:  handler.NewAuditHandler(a.audits, cfg.MaxImageSize),
		Status:  handler.NewStatusHandler(a.status),
	}
	engine, err := webapi.NewEngine(
		"/api/v1",
		addr,
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(cfg.CORSAllowOrigins),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Schedule.Enabled {
		scheduler := schedule.NewCronScheduler()
		if err := scheduler.AddJob(job.NewStaleIndexJob(a.manualRepo, a.rag, cfg.Schedule.StaleIndexBatch), cfg.Schedule.StaleIndexSpec); err != nil {
			return err
		}
		if cfg.EmbeddingCache.DBEnabled {
			if err := scheduler.AddJob(job.NewEmbeddingCacheCleanupJob(a.cacheRepo, cfg.EmbeddingCache.MaxAgeDays), cfg.Schedule.CacheCleanupSpec); err != nil {
				return err
			}
		}
		scheduler.Start(ctx)
		defer scheduler.Stop()
	}

	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", addr))
	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
			stop()
		}
	}()
	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}
