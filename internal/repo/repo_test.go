package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/contentsuite/brandsuite/internal/model"
	appErr "github.com/contentsuite/brandsuite/internal/pkg/errors"
	"github.com/contentsuite/brandsuite/internal/repo"
	"github.com/contentsuite/brandsuite/internal/testutil"
)

func unitVector(hot int) []float32 {
	v := make([]float32, 384)
	v[hot] = 1
	return v
}

func createManual(t *testing.T, manuals *repo.ManualRepo, doc *model.ManualDocument) *model.BrandManual {
	t.Helper()
	now := time.Now().Unix()
	m := &model.BrandManual{
		ID:          uuid.NewString(),
		Name:        "Quinua Crunch",
		ProductType: "snack",
		FullManual:  doc,
		Ctime:       now,
		Mtime:       now,
	}
	require.NoError(t, manuals.Create(context.Background(), m))
	return m
}

func TestManualRepo_CRUD(t *testing.T) {
	conn, cleanup := testutil.OpenTestDB(t)
	defer cleanup()
	ctx := context.Background()
	manuals := repo.NewManualRepo(conn)

	doc := &model.ManualDocument{Tone: &model.ToneSection{Description: "Divertido", ForbiddenWords: model.StringList{"aburrido"}}}
	m := createManual(t, manuals, doc)

	got, err := manuals.GetByID(ctx, m.ID)
	require.NoError(t, err)
	require.Equal(t, "Quinua Crunch", got.Name)
	require.Equal(t, "Divertido", got.FullManual.Tone.Description)

	_, err = manuals.GetByID(ctx, "not-a-uuid")
	require.ErrorIs(t, err, appErr.ErrNotFound)
	_, err = manuals.GetByID(ctx, uuid.NewString())
	require.ErrorIs(t, err, appErr.ErrNotFound)

	bare := createManual(t, manuals, nil)
	got, err = manuals.GetByID(ctx, bare.ID)
	require.NoError(t, err)
	require.Nil(t, got.FullManual)

	list, err := manuals.List(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, list)

	require.NoError(t, manuals.Delete(ctx, m.ID))
	require.ErrorIs(t, manuals.Delete(ctx, m.ID), appErr.ErrNotFound)
	require.NoError(t, manuals.Delete(ctx, bare.ID))
}

func TestEmbeddingRepo_ReplaceAndMatch(t *testing.T) {
	conn, cleanup := testutil.OpenTestDB(t)
	defer cleanup()
	ctx := context.Background()
	manuals := repo.NewManualRepo(conn)
	embeddings := repo.NewEmbeddingRepo(conn)
	m := createManual(t, manuals, &model.ManualDocument{Tone: &model.ToneSection{}})
	defer func() { _ = manuals.Delete(ctx, m.ID) }()

	empty, err := embeddings.MatchEmbeddings(ctx, unitVector(0), m.ID, 3)
	require.NoError(t, err)
	require.Empty(t, empty)

	old := []model.EmbeddingRecord{
		{ManualID: m.ID, Section: "tono_comunicacion", Content: "viejo tono", Embedding: unitVector(0)},
		{ManualID: m.ID, Section: "identidad_marca", Content: "vieja identidad", Embedding: unitVector(1)},
	}
	require.NoError(t, embeddings.ReplaceByManual(ctx, m.ID, old, time.Now().Unix()))

	fresh := []model.EmbeddingRecord{
		{ManualID: m.ID, Section: "tono_comunicacion", Content: "nuevo tono", Embedding: unitVector(0)},
	}
	require.NoError(t, embeddings.ReplaceByManual(ctx, m.ID, fresh, time.Now().Unix()))

	res, err := embeddings.MatchEmbeddings(ctx, unitVector(0), m.ID, 5)
	require.NoError(t, err)
	require.Len(t, res, 1)
	require.Equal(t, "nuevo tono", res[0].Content)
	require.InDelta(t, 1.0, res[0].Similarity, 1e-6)

	counts, err := embeddings.SectionCounts(ctx, m.ID)
	require.NoError(t, err)
	require.Equal(t, map[string]int{"tono_comunicacion": 1}, counts)

	byManual, err := embeddings.CountByManuals(ctx, []string{m.ID, uuid.NewString()})
	require.NoError(t, err)
	require.Equal(t, map[string]int{m.ID: 1}, byManual)

	stale, err := manuals.ListStale(ctx, 100)
	require.NoError(t, err)
	require.NotContains(t, stale, m.ID)
}

func TestContentAndAuditRepo(t *testing.T) {
	conn, cleanup := testutil.OpenTestDB(t)
	defer cleanup()
	ctx := context.Background()
	manuals := repo.NewManualRepo(conn)
	m := createManual(t, manuals, &model.ManualDocument{Tone: &model.ToneSection{}})
	defer func() { _ = manuals.Delete(ctx, m.ID) }()

	contents := repo.NewContentRepo(conn)
	now := time.Now().Unix()
	item := &model.GeneratedContent{
		ID: uuid.NewString(), ManualID: m.ID, ContentType: model.ContentTypeVideoScript,
		GeneratedText: "GANCHO...", Status: model.ContentStatusPending, Ctime: now, Mtime: now,
	}
	require.NoError(t, contents.Create(ctx, item))
	require.NoError(t, contents.UpdateStatus(ctx, item.ID, model.ContentStatusApproved, now+1))
	require.ErrorIs(t, contents.UpdateStatus(ctx, uuid.NewString(), model.ContentStatusApproved, now), appErr.ErrNotFound)
	list, err := contents.List(ctx, m.ID, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, model.ContentStatusApproved, list[0].Status)

	audits := repo.NewAuditRepo(conn)
	audit := &model.ImageAudit{
		ID: uuid.NewString(), ManualID: m.ID, ImageKey: "k.png", MimeType: "image/png", Ctime: now,
		AuditVerdict: model.AuditVerdict{Score: 80, Compliant: true, Analysis: "ok",
			CategoryScores: &model.CategoryScores{Colors: 20}},
	}
	require.NoError(t, audits.Create(ctx, audit))
	got, err := audits.GetByID(ctx, audit.ID)
	require.NoError(t, err)
	require.Equal(t, "Quinua Crunch", got.ManualName)
	require.Equal(t, []string{}, got.Issues)
	require.Equal(t, 20.0, got.CategoryScores.Colors)
	all, err := audits.ListByManual(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestEmbeddingCacheRepo(t *testing.T) {
	conn, cleanup := testutil.OpenTestDB(t)
	defer cleanup()
	ctx := context.Background()
	cache := repo.NewEmbeddingCacheRepo(conn)
	hash := uuid.NewString()
	_, ok, err := cache.Get(ctx, "local:default", hash)
	require.NoError(t, err)
	require.False(t, ok)
	require.NoError(t, cache.Save(ctx, &model.EmbeddingCache{ModelName: "local:default", ContentHash: hash, Embedding: []float32{0.5, 0.5}, Ctime: 1}))
	v, ok, err := cache.Get(ctx, "local:default", hash)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []float32{0.5, 0.5}, v)
	n, err := cache.DeleteBefore(ctx, 2)
	require.NoError(t, err)
	require.GreaterOrEqual(t, n, int64(1))
}
