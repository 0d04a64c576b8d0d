package service

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/contentsuite/brandsuite/internal/ai"
	"github.com/contentsuite/brandsuite/internal/model"
	appErr "github.com/contentsuite/brandsuite/internal/pkg/errors"
	"github.com/contentsuite/brandsuite/internal/rag"
)

type memManuals struct {
	mu    sync.Mutex
	items map[string]*model.BrandManual
}

func newMemManuals() *memManuals {
	return &memManuals{items: map[string]*model.BrandManual{}}
}

func (m *memManuals) Create(ctx context.Context, manual *model.BrandManual) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[manual.ID]; ok {
		return appErr.ErrConflict
	}
	cp := *manual
	m.items[manual.ID] = &cp
	return nil
}

func (m *memManuals) List(ctx context.Context) ([]*model.BrandManual, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.BrandManual, 0, len(m.items))
	for _, item := range m.items {
		cp := *item
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ctime > out[j].Ctime })
	return out, nil
}

func (m *memManuals) GetByID(ctx context.Context, id string) (*model.BrandManual, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[id]
	if !ok {
		return nil, appErr.ErrNotFound
	}
	cp := *item
	return &cp, nil
}

func (m *memManuals) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return appErr.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

type memEmbeddings struct {
	mu         sync.Mutex
	records    map[string][]model.EmbeddingRecord
	replaceErr error
	lastCount  int
}

func newMemEmbeddings() *memEmbeddings {
	return &memEmbeddings{records: map[string][]model.EmbeddingRecord{}}
}

func (m *memEmbeddings) ReplaceByManual(ctx context.Context, manualID string, records []model.EmbeddingRecord, now int64) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[manualID] = append([]model.EmbeddingRecord(nil), records...)
	return nil
}

func (m *memEmbeddings) MatchEmbeddings(ctx context.Context, q []float32, manualID string, count int) ([]model.SearchResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastCount = count
	out := make([]model.SearchResult, 0)
	for i, r := range m.records[manualID] {
		var dot float64
		for k := range q {
			dot += float64(q[k]) * float64(r.Embedding[k])
		}
		out = append(out, model.SearchResult{
			ID:         r.Section + "-" + string(rune('a'+i)),
			ManualID:   manualID,
			Content:    r.Content,
			Section:    r.Section,
			Similarity: dot,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Similarity > out[j].Similarity })
	if len(out) > count {
		out = out[:count]
	}
	return out, nil
}

func (m *memEmbeddings) SectionCounts(ctx context.Context, manualID string) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[string]int{}
	for _, r := range m.records[manualID] {
		out[r.Section]++
	}
	return out, nil
}

func (m *memEmbeddings) CountByManuals(ctx context.Context, ids []string) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[string]int{}
	for _, id := range ids {
		if n := len(m.records[id]); n > 0 {
			out[id] = n
		}
	}
	return out, nil
}

type memContents struct {
	mu    sync.Mutex
	items []*model.GeneratedContent
}

func (m *memContents) Create(ctx context.Context, item *model.GeneratedContent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *item
	m.items = append(m.items, &cp)
	return nil
}

func (m *memContents) List(ctx context.Context, manualID string, limit int) ([]*model.GeneratedContent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.GeneratedContent, 0)
	for i := len(m.items) - 1; i >= 0 && len(out) < limit; i-- {
		if manualID == "" || m.items[i].ManualID == manualID {
			cp := *m.items[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memContents) UpdateStatus(ctx context.Context, id, status string, mtime int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range m.items {
		if item.ID == id {
			item.Status = status
			item.Mtime = mtime
			return nil
		}
	}
	return appErr.ErrNotFound
}

type memAudits struct {
	mu    sync.Mutex
	items []*model.ImageAudit
}

func (m *memAudits) Create(ctx context.Context, item *model.ImageAudit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *item
	m.items = append(m.items, &cp)
	return nil
}

func (m *memAudits) ListByManual(ctx context.Context, manualID string) ([]*model.ImageAudit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.ImageAudit
	for _, item := range m.items {
		if item.ManualID == manualID {
			cp := *item
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memAudits) GetByID(ctx context.Context, id string) (*model.ImageAudit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range m.items {
		if item.ID == id {
			cp := *item
			return &cp, nil
		}
	}
	return nil, appErr.ErrNotFound
}

type stubGenerator struct {
	reply string
	err   error
	calls int
	last  *ai.GenerateRequest
}

func (s *stubGenerator) Generate(ctx context.Context, req *ai.GenerateRequest) (string, error) {
	s.calls++
	s.last = req
	return s.reply, s.err
}

type stubVision struct {
	reply string
	err   error
	calls int
}

func (s *stubVision) Inspect(ctx context.Context, prompt string, image []byte, mimeType string) (string, error) {
	s.calls++
	return s.reply, s.err
}

func (s *stubVision) ModelName() string {
	return "stub-vision"
}

const sampleManualJSON = `{
	"identidad_marca": {"proposito": "Nutrir a familias activas", "valores": ["honestidad", "energía"]},
	"tono_comunicacion": {"descripcion_general": "Divertido y cercano", "palabras_prohibidas": ["aburrido"]},
	"elementos_visuales": {"colores_principales": ["#FF6B00"], "uso_logo": {"tamano_minimo": "10% del ancho"}},
	"publico_objetivo": {"demografia": {"edad": "25-40"}},
	"directrices_contenido": {"mensajes_clave": ["energía natural"]},
	"ejemplos_aplicacion": {"descripcion_producto_buena": "Crujiente y natural"}
}`

func sampleManualDoc(t *testing.T) *model.ManualDocument {
	doc := &model.ManualDocument{}
	require.NoError(t, json.Unmarshal([]byte(sampleManualJSON), doc))
	return doc
}

type fixture struct {
	manuals    *memManuals
	embeddings *memEmbeddings
	contents   *memContents
	audits     *memAudits
	generator  *stubGenerator
	vision     *stubVision
	manager    *ai.Manager
	rag        *RAGService
}

func newFixture(t *testing.T) *fixture {
	f := &fixture{
		manuals:    newMemManuals(),
		embeddings: newMemEmbeddings(),
		contents:   &memContents{},
		audits:     &memAudits{},
		generator:  &stubGenerator{},
		vision:     &stubVision{},
	}
	f.manager = ai.NewManager(f.generator, f.vision, ai.ManagerConfig{Timeout: 5})
	embedder := rag.NewEmbedder(ai.NewEmbedder(ai.NewLocalEmbedder(""), ""))
	f.rag = NewRAGService(f.manuals, f.embeddings, embedder)
	return f
}

func (f *fixture) addManual(t *testing.T, id string, doc *model.ManualDocument) *model.BrandManual {
	manual := &model.BrandManual{ID: id, Name: "Quinua Crunch", FullManual: doc, Ctime: 100, Mtime: 100}
	require.NoError(t, f.manuals.Create(context.Background(), manual))
	return manual
}
