package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/contentsuite/brandsuite/internal/model"
)

type fakeGenerator struct {
	reply string
	err   error
	last  *GenerateRequest
}

func (f *fakeGenerator) Generate(ctx context.Context, req *GenerateRequest) (string, error) {
	f.last = req
	return f.reply, f.err
}

type fakeVision struct {
	reply      string
	err        error
	lastPrompt string
	lastImage  []byte
}

func (f *fakeVision) Inspect(ctx context.Context, prompt string, image []byte, mimeType string) (string, error) {
	f.lastPrompt = prompt
	f.lastImage = image
	return f.reply, f.err
}

func (f *fakeVision) ModelName() string {
	return "fake-vision"
}

func TestManager_GenerateManual(t *testing.T) {
	gen := &fakeGenerator{reply: "```json\n{\"identidad_marca\": {\"proposito\": \"Nutrir\"}}\n```"}
	m := NewManager(gen, nil, ManagerConfig{Timeout: 5})
	doc, err := m.GenerateManual(context.Background(), ManualBrief{Name: "Quinua Crunch", ProductType: "snack"})
	require.NoError(t, err)
	require.Equal(t, "Nutrir", doc.Identity.Purpose)
	require.Equal(t, manualSystemPrompt, gen.last.System)
	require.Contains(t, gen.last.Prompt, "Nombre: Quinua Crunch")
	require.Contains(t, gen.last.Prompt, "10% del ancho")
	require.Equal(t, manualMaxTokens, gen.last.MaxTokens)

	gen.reply = "   "
	_, err = m.GenerateManual(context.Background(), ManualBrief{Name: "x"})
	require.Error(t, err)

	_, err = NewManager(nil, nil, ManagerConfig{}).GenerateManual(context.Background(), ManualBrief{})
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestContentPrompt(t *testing.T) {
	p, err := ContentPrompt(model.ContentTypeProductDescription, "Marca", "[SECTION: tono_comunicacion]\nX", "lanzamiento")
	require.NoError(t, err)
	require.Contains(t, p, "copywriter experto especializado en Marca")
	require.Contains(t, p, "[SECTION: tono_comunicacion]\nX")
	require.Contains(t, p, "CONTEXTO ADICIONAL: lanzamiento")

	p, err = ContentPrompt(model.ContentTypeVideoScript, "Marca", "ctx", "")
	require.NoError(t, err)
	require.NotContains(t, p, "CONTEXTO ADICIONAL")

	p, err = ContentPrompt(model.ContentTypeImagePrompt, "Marca", "ctx", "")
	require.NoError(t, err)
	require.Contains(t, p, "CONTEXTO ADICIONAL: Ninguno proporcionado")
	require.Contains(t, p, "al 100% con")

	_, err = ContentPrompt("tweet", "Marca", "ctx", "")
	require.Error(t, err)
}

func TestManager_AuditImage(t *testing.T) {
	vision := &fakeVision{reply: `{"compliant": true, "score": 90, "issues": [], "recommendations": [], "analysis": "ok"}`}
	m := NewManager(nil, vision, ManagerConfig{})
	doc := &model.ManualDocument{Visual: &model.VisualSection{PrimaryColors: model.StringList{"#34C759"}}}
	verdict, err := m.AuditImage(context.Background(), "Marca", doc, "[SECTION: elementos_visuales]\nV", []byte{1, 2}, "image/png")
	require.NoError(t, err)
	require.True(t, verdict.Compliant)
	require.Contains(t, vision.lastPrompt, "MANUAL DE MARCA - Marca")
	require.Contains(t, vision.lastPrompt, "#34C759")
	require.Contains(t, vision.lastPrompt, "Tamaño mínimo: No especificado")
	require.Contains(t, vision.lastPrompt, "[SECTION: elementos_visuales]\nV")
	require.Contains(t, vision.lastPrompt, "score >= 72")
	require.Equal(t, []byte{1, 2}, vision.lastImage)

	vision.reply = "sin estructura"
	verdict, err = m.AuditImage(context.Background(), "Marca", doc, "", []byte{1}, "image/png")
	require.NoError(t, err)
	require.True(t, verdict.Fallback)
	require.Equal(t, 50.0, verdict.Score)

	vision.err = errors.New("quota")
	_, err = m.AuditImage(context.Background(), "Marca", doc, "", []byte{1}, "image/png")
	require.Error(t, err)
}

func TestManager_PingVision(t *testing.T) {
	vision := &fakeVision{reply: "OK"}
	m := NewManager(nil, vision, ManagerConfig{Timeout: 1})
	reply, err := m.PingVision(context.Background())
	require.NoError(t, err)
	require.Equal(t, "OK", reply)
	require.Nil(t, vision.lastImage)
	require.Equal(t, "fake-vision", m.VisionModel())

	_, err = NewManager(nil, nil, ManagerConfig{}).PingVision(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestGroupGenerator_FallsThrough(t *testing.T) {
	failing := &fakeGenerator{err: errors.New("rate limited")}
	ok := &fakeGenerator{reply: "hola"}
	g := NewGroupGenerator([]GeneratorEntry{{Name: "a", Generator: failing}, {Name: "b", Generator: ok}})
	res, err := g.Generate(context.Background(), &GenerateRequest{Prompt: "p"})
	require.NoError(t, err)
	require.Equal(t, "hola", res)

	g = NewGroupGenerator([]GeneratorEntry{{Name: "a", Generator: failing}})
	_, err = g.Generate(context.Background(), &GenerateRequest{Prompt: "p"})
	require.EqualError(t, err, "rate limited")
	require.Nil(t, NewGroupGenerator(nil))
}

func TestRegistry(t *testing.T) {
	_, err := NewProvider("", nil)
	require.Error(t, err)
	_, err = NewProvider("nope", nil)
	require.Error(t, err)

	p, err := NewProvider(" Gemini ", map[string]interface{}{})
	require.NoError(t, err)
	require.Equal(t, "gemini", p.Name())
	_, err = NewVision(p, "gemini-2.0-flash")
	require.NoError(t, err)
	_, err = p.Generate(context.Background(), "gemini-2.0-flash", &GenerateRequest{Prompt: "x"})
	require.ErrorIs(t, err, ErrUnavailable)

	groq, err := NewProvider("groq", map[string]interface{}{})
	require.NoError(t, err)
	_, err = NewVision(groq, "llama")
	require.Error(t, err)
	_, err = groq.Generate(context.Background(), "llama", &GenerateRequest{Prompt: "x"})
	require.ErrorIs(t, err, ErrUnavailable)

	_, err = NewEmbedProvider("openai", map[string]interface{}{"api_key": "k", "dimension": 384})
	require.NoError(t, err)
}
