package job

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/contentsuite/brandsuite/internal/model"
)

type fakeStale struct {
	ids   []string
	limit int
}

func (f *fakeStale) ListStale(ctx context.Context, limit int) ([]string, error) {
	f.limit = limit
	return f.ids, nil
}

type fakeIndexer struct {
	indexed []string
	fail    map[string]error
}

func (f *fakeIndexer) IndexManual(ctx context.Context, id string) (*model.IndexReport, error) {
	if err := f.fail[id]; err != nil {
		return nil, err
	}
	f.indexed = append(f.indexed, id)
	return &model.IndexReport{ManualID: id, ChunksCreated: 6}, nil
}

func TestStaleIndexJob(t *testing.T) {
	boom := errors.New("embedding failed")
	stale := &fakeStale{ids: []string{"a", "b", "c"}}
	indexer := &fakeIndexer{fail: map[string]error{"b": boom}}
	job := NewStaleIndexJob(stale, indexer, 0)
	require.Equal(t, "stale_index", job.Name())

	err := job.Run(context.Background())
	require.ErrorIs(t, err, boom)
	require.Equal(t, []string{"a", "c"}, indexer.indexed)
	require.Equal(t, defaultStaleBatch, stale.limit)

	empty := NewStaleIndexJob(&fakeStale{}, indexer, 5)
	require.NoError(t, empty.Run(context.Background()))
}

type fakeCleaner struct {
	cutoff int64
}

func (f *fakeCleaner) DeleteBefore(ctx context.Context, cutoff int64) (int64, error) {
	f.cutoff = cutoff
	return 3, nil
}

func TestEmbeddingCacheCleanupJob(t *testing.T) {
	cleaner := &fakeCleaner{}
	job := NewEmbeddingCacheCleanupJob(cleaner, 7)
	now := time.Unix(1_700_000_000, 0)
	job.now = func() time.Time { return now }
	require.NoError(t, job.Run(context.Background()))
	require.Equal(t, now.Add(-7*24*time.Hour).Unix(), cleaner.cutoff)

	require.NoError(t, NewEmbeddingCacheCleanupJob(nil, 0).Run(context.Background()))
}
