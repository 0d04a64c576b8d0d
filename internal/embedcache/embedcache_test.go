package embedcache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/contentsuite/brandsuite/internal/model"
)

type countingEmbedder struct {
	calls int
	err   error
}

func (c *countingEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return []float32{float32(len(text)), 1}, nil
}

func (c *countingEmbedder) ModelName() string {
	return "test:model"
}

type memStore struct {
	items   map[string][]float32
	saveErr error
	getErr  error
}

func (m *memStore) Get(ctx context.Context, modelName, contentHash string) ([]float32, bool, error) {
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	v, ok := m.items[modelName+"/"+contentHash]
	return v, ok, nil
}

func (m *memStore) Save(ctx context.Context, item *model.EmbeddingCache) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.items[item.ModelName+"/"+item.ContentHash] = item.Embedding
	return nil
}

func TestLruEmbedder_CachesByText(t *testing.T) {
	next := &countingEmbedder{}
	e := WrapLruCacheToEmbedder(next, 10, time.Minute)
	ctx := context.Background()
	a, err := e.Embed(ctx, "hola")
	require.NoError(t, err)
	a[0] = 99
	b, err := e.Embed(ctx, "hola")
	require.NoError(t, err)
	require.Equal(t, float32(4), b[0])
	_, err = e.Embed(ctx, "adios")
	require.NoError(t, err)
	require.Equal(t, 2, next.calls)
	require.Equal(t, "test:model", e.ModelName())
}

func TestLruEmbedder_Disabled(t *testing.T) {
	next := &countingEmbedder{}
	require.Same(t, next, WrapLruCacheToEmbedder(next, 0, time.Minute))
	require.Same(t, next, WrapLruCacheToEmbedder(next, 10, 0))
}

func TestLruEmbedder_ErrorsNotCached(t *testing.T) {
	next := &countingEmbedder{err: errors.New("down")}
	e := WrapLruCacheToEmbedder(next, 10, time.Minute)
	_, err := e.Embed(context.Background(), "hola")
	require.Error(t, err)
	next.err = nil
	_, err = e.Embed(context.Background(), "hola")
	require.NoError(t, err)
	require.Equal(t, 2, next.calls)
}

func TestDBEmbedder(t *testing.T) {
	next := &countingEmbedder{}
	store := &memStore{items: map[string][]float32{}}
	e := WrapDBCacheToEmbedder(next, store)
	ctx := context.Background()
	_, err := e.Embed(ctx, "hola")
	require.NoError(t, err)
	_, err = e.Embed(ctx, "hola")
	require.NoError(t, err)
	require.Equal(t, 1, next.calls)
	require.Len(t, store.items, 1)

	store.saveErr = errors.New("readonly")
	v, err := e.Embed(ctx, "nuevo")
	require.NoError(t, err)
	require.Len(t, v, 2)

	store.getErr = errors.New("db down")
	_, err = e.Embed(ctx, "hola")
	require.Error(t, err)
}

func TestBuildCacheKey(t *testing.T) {
	key, hash, name := buildCacheKey("  ", "x")
	require.Equal(t, "unknown", name)
	require.Len(t, hash, 64)
	require.Equal(t, "embed:unknown:"+hash, key)
}

func TestDimensionCheck_NothingCached(t *testing.T) {
	next := &countingEmbedder{}
	store := &memStore{items: map[string][]float32{}}
	e := WrapLruCacheToEmbedder(WrapDBCacheToEmbedder(WrapDimensionCheckToEmbedder(next, 384), store), 10, time.Minute)
	ctx := context.Background()
	_, err := e.Embed(ctx, "hola")
	require.Error(t, err)
	_, err = e.Embed(ctx, "hola")
	require.Error(t, err)
	require.Equal(t, 2, next.calls)
	require.Empty(t, store.items)

	ok := WrapDimensionCheckToEmbedder(next, 2)
	v, err := ok.Embed(ctx, "hola")
	require.NoError(t, err)
	require.Len(t, v, 2)
	require.Same(t, next, WrapDimensionCheckToEmbedder(next, 0))
}
