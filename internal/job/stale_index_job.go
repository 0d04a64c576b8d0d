package job

import (
	"context"
	"errors"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/contentsuite/brandsuite/internal/model"
)

const defaultStaleBatch = 20

type StaleLister interface {
	ListStale(ctx context.Context, limit int) ([]string, error)
}

type ManualIndexer interface {
	IndexManual(ctx context.Context, manualID string) (*model.IndexReport, error)
}

// StaleIndexJob reindexes manuals changed since their last index run. A failing manual is
// logged and retried on the next run; the others still get indexed.
type StaleIndexJob struct {
	manuals StaleLister
	indexer ManualIndexer
	batch   int
}

func NewStaleIndexJob(manuals StaleLister, indexer ManualIndexer, batch int) *StaleIndexJob {
	if batch <= 0 {
		batch = defaultStaleBatch
	}
	return &StaleIndexJob{manuals: manuals, indexer: indexer, batch: batch}
}

func (j *StaleIndexJob) Name() string {
	return "stale_index"
}

func (j *StaleIndexJob) Run(ctx context.Context) error {
	logger := logutil.GetLogger(ctx)
	ids, err := j.manuals.ListStale(ctx, j.batch)
	if err != nil {
		return err
	}
	var errs []error
	indexed := 0
	for _, id := range ids {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		report, err := j.indexer.IndexManual(ctx, id)
		if err != nil {
			logger.Error("reindex manual failed", zap.String("manual_id", id), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		indexed++
		logger.Debug("manual reindexed", zap.String("manual_id", id), zap.Int("chunks", report.ChunksCreated))
	}
	if len(ids) > 0 {
		logger.Info("stale manuals reindexed", zap.Int("found", len(ids)), zap.Int("indexed", indexed))
	}
	return errors.Join(errs...)
}
