package rag

import (
	"fmt"
	"sort"

	"github.com/contentsuite/brandsuite/internal/model"
)

// QueryPolicy is the retrieval query run before generating one kind of content. Queries are
// phrased as full questions; the embedding model matches those better than keyword lists.
type QueryPolicy struct {
	ContentType string
	Query       string
	TopK        int
}

var policies = map[string]QueryPolicy{
	model.ContentTypeProductDescription: {
		ContentType: model.ContentTypeProductDescription,
		Query:       "¿Cuál es el tono de comunicación para descripciones? ¿Hay palabras prohibidas? ¿Puedo usar tecnicismos? ¿Qué estilo de redacción debo usar?",
		TopK:        3,
	},
	model.ContentTypeVideoScript: {
		ContentType: model.ContentTypeVideoScript,
		Query:       "¿Qué tono usar en videos? ¿Cuáles son los mensajes clave? ¿Quién es el público objetivo? ¿Cómo estructurar el contenido?",
		TopK:        3,
	},
	// Image prompts and visual audits need colors, logo rules, backgrounds and composition at
	// the same time, hence the wider top_k.
	model.ContentTypeImagePrompt: {
		ContentType: model.ContentTypeImagePrompt,
		Query:       "¿Qué colores principales y secundarios usar exactamente? ¿Cuál es el estilo fotográfico detallado? ¿Qué elementos son obligatorios y cuáles prohibidos? ¿Cómo usar el logo: tamaño mínimo, espaciado, posición? ¿Qué fondos están permitidos y prohibidos? ¿Hay reglas de composición visual? ¿Qué tipografía usar?",
		TopK:        5,
	},
}

func PolicyFor(contentType string) (QueryPolicy, error) {
	p, ok := policies[contentType]
	if !ok {
		return QueryPolicy{}, fmt.Errorf("%w: %q", ErrUnknownContentType, contentType)
	}
	return p, nil
}

// ContentTypes returns the supported content types, sorted.
func ContentTypes() []string {
	out := make([]string, 0, len(policies))
	for k := range policies {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
