package rag

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/contentsuite/brandsuite/internal/model"
)

type fakeEmbedder struct {
	dim    int
	failOn string
	calls  []string
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	f.calls = append(f.calls, text)
	if f.failOn != "" && strings.Contains(text, f.failOn) {
		return nil, errors.New("model exploded")
	}
	dim := f.dim
	if dim == 0 {
		dim = Dimension
	}
	vec := make([]float32, dim)
	vec[len(text)%dim] = 1
	return vec, nil
}

type fakeStore struct {
	rows      []model.SearchResult
	err       error
	lastCount int
	lastID    string
}

func (f *fakeStore) MatchEmbeddings(ctx context.Context, q []float32, manualID string, count int) ([]model.SearchResult, error) {
	f.lastCount = count
	f.lastID = manualID
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

func sampleManual() *model.ManualDocument {
	return &model.ManualDocument{
		Identity: &model.IdentitySection{Purpose: "Inspirar"},
		Tone:     &model.ToneSection{Description: "Divertido"},
		Examples: &model.ExamplesSection{GoodSocialPost: "Hola"},
	}
}

func TestEmbedder_RejectsWrongDimension(t *testing.T) {
	e := NewEmbedder(&fakeEmbedder{dim: 128})
	_, err := e.Embed(context.Background(), "hola")
	require.ErrorIs(t, err, ErrEmbedding)

	e = NewEmbedder(&fakeEmbedder{failOn: "hola"})
	_, err = e.Embed(context.Background(), "hola")
	require.ErrorIs(t, err, ErrEmbedding)

	vec, err := NewEmbedder(&fakeEmbedder{}).Embed(context.Background(), "hola")
	require.NoError(t, err)
	require.Len(t, vec, Dimension)
}

func TestIndexer_RecordsFollowChunks(t *testing.T) {
	fe := &fakeEmbedder{}
	idx := NewIndexer(NewEmbedder(fe))
	doc := sampleManual()
	records, err := idx.Index(context.Background(), "m-1", doc)
	require.NoError(t, err)
	chunks := ChunkManual(doc)
	require.Len(t, records, len(chunks))
	for i, r := range records {
		require.Equal(t, "m-1", r.ManualID)
		require.Equal(t, chunks[i].Section, r.Section)
		require.Equal(t, chunks[i].Content, r.Content)
		require.Len(t, r.Embedding, Dimension)
	}
	require.Len(t, fe.calls, len(chunks))
}

func TestIndexer_AllOrNothing(t *testing.T) {
	idx := NewIndexer(NewEmbedder(&fakeEmbedder{failOn: "Divertido"}))
	records, err := idx.Index(context.Background(), "m-1", sampleManual())
	require.Error(t, err)
	require.ErrorIs(t, err, ErrIndexing)
	require.ErrorIs(t, err, ErrEmbedding)
	require.Nil(t, records)
}

func TestIndexer_EmptyManual(t *testing.T) {
	records, err := NewIndexer(NewEmbedder(&fakeEmbedder{})).Index(context.Background(), "m-1", &model.ManualDocument{})
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestSearcher_SortsAndTruncates(t *testing.T) {
	store := &fakeStore{rows: []model.SearchResult{
		{Section: "a", Similarity: 0.2},
		{Section: "b", Similarity: 0.9},
		{Section: "c", Similarity: 0.5},
		{Section: "d", Similarity: 0.7},
	}}
	s := NewSearcher(NewEmbedder(&fakeEmbedder{}), store)
	res, err := s.Search(context.Background(), "colores", "m-1", 2)
	require.NoError(t, err)
	require.Equal(t, 2, store.lastCount)
	require.Equal(t, "m-1", store.lastID)
	require.Len(t, res, 2)
	require.Equal(t, "b", res[0].Section)
	require.Equal(t, "d", res[1].Section)
}

func TestSearcher_DefaultTopK(t *testing.T) {
	store := &fakeStore{}
	s := NewSearcher(NewEmbedder(&fakeEmbedder{}), store)
	res, err := s.Search(context.Background(), "tono", "m-1", 0)
	require.NoError(t, err)
	require.NotNil(t, res)
	require.Empty(t, res)
	require.Equal(t, DefaultTopK, store.lastCount)
}

func TestSearcher_Errors(t *testing.T) {
	s := NewSearcher(NewEmbedder(&fakeEmbedder{}), &fakeStore{err: errors.New("db down")})
	_, err := s.Search(context.Background(), "tono", "m-1", 3)
	require.ErrorIs(t, err, ErrSearch)

	s = NewSearcher(NewEmbedder(&fakeEmbedder{failOn: "tono"}), &fakeStore{})
	_, err = s.Search(context.Background(), "tono", "m-1", 3)
	require.ErrorIs(t, err, ErrSearch)
	require.ErrorIs(t, err, ErrEmbedding)
}

func TestAssembleContext(t *testing.T) {
	require.Equal(t, "", AssembleContext(nil))
	out := AssembleContext([]model.SearchResult{
		{Section: SectionTone, Content: "TONO"},
		{Section: SectionVisual, Content: "VISUAL"},
	})
	require.Equal(t, "[SECTION: tono_comunicacion]\nTONO\n\n[SECTION: elementos_visuales]\nVISUAL", out)
}

func TestPolicyFor(t *testing.T) {
	p, err := PolicyFor(model.ContentTypeImagePrompt)
	require.NoError(t, err)
	require.Equal(t, 5, p.TopK)
	for _, ct := range []string{model.ContentTypeProductDescription, model.ContentTypeVideoScript} {
		p, err := PolicyFor(ct)
		require.NoError(t, err)
		require.Equal(t, 3, p.TopK)
		require.NotEmpty(t, p.Query)
	}
	_, err = PolicyFor("tweet")
	require.ErrorIs(t, err, ErrUnknownContentType)
	require.Equal(t, []string{"image_prompt", "product_description", "video_script"}, ContentTypes())
}
