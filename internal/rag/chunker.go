package rag

import (
	"fmt"
	"strings"

	"github.com/contentsuite/brandsuite/internal/model"
)

const (
	SectionIdentity   = "identidad_marca"
	SectionTone       = "tono_comunicacion"
	SectionVisual     = "elementos_visuales"
	SectionAudience   = "publico_objetivo"
	SectionGuidelines = "directrices_contenido"
	SectionExamples   = "ejemplos_aplicacion"
)

// Sections lists the section tags in chunk order.
var Sections = []string{
	SectionIdentity,
	SectionTone,
	SectionVisual,
	SectionAudience,
	SectionGuidelines,
	SectionExamples,
}

type Chunk struct {
	Section string `json:"section"`
	Content string `json:"content"`
}

// ChunkManual splits a manual into one chunk per present section, in Sections order.
func ChunkManual(doc *model.ManualDocument) []Chunk {
	chunks := make([]Chunk, 0, len(Sections))
	if doc == nil {
		return chunks
	}
	add := func(section, content string) {
		chunks = append(chunks, Chunk{Section: section, Content: strings.TrimSpace(content)})
	}
	if doc.Identity != nil {
		add(SectionIdentity, renderIdentity(doc.Identity))
	}
	if doc.Tone != nil {
		add(SectionTone, renderTone(doc.Tone))
	}
	if doc.Visual != nil {
		add(SectionVisual, renderVisual(doc.Visual))
	}
	if doc.Audience != nil {
		add(SectionAudience, renderAudience(doc.Audience))
	}
	if doc.Guidelines != nil {
		add(SectionGuidelines, renderGuidelines(doc.Guidelines))
	}
	if doc.Examples != nil {
		add(SectionExamples, renderExamples(doc.Examples))
	}
	return chunks
}

func renderIdentity(s *model.IdentitySection) string {
	var sb strings.Builder
	sb.WriteString("IDENTIDAD DE MARCA:\n")
	fmt.Fprintf(&sb, "Propósito: %s\n", s.Purpose)
	fmt.Fprintf(&sb, "Valores: %s\n", s.Values.Join())
	fmt.Fprintf(&sb, "Personalidad: %s\n", s.Personality)
	fmt.Fprintf(&sb, "Diferenciador: %s\n", s.Differentiator)
	return sb.String()
}

func renderTone(s *model.ToneSection) string {
	technical := "Prohibido"
	if s.TechnicalTerms {
		technical = "Permitido"
	}
	var sb strings.Builder
	sb.WriteString("TONO DE COMUNICACIÓN:\n")
	fmt.Fprintf(&sb, "Descripción: %s\n", s.Description)
	fmt.Fprintf(&sb, "Estilo: %s\n", s.WritingStyle)
	fmt.Fprintf(&sb, "Uso de tecnicismos: %s\n\n", technical)
	fmt.Fprintf(&sb, "Palabras permitidas: %s\n", s.AllowedWords.Join())
	fmt.Fprintf(&sb, "Palabras prohibidas: %s\n\n", s.ForbiddenWords.Join())
	fmt.Fprintf(&sb, "Ejemplos buenos:\n%s\n\n", bulletList(s.GoodExamples))
	fmt.Fprintf(&sb, "Ejemplos malos:\n%s\n", bulletList(s.BadExamples))
	return sb.String()
}

func renderVisual(s *model.VisualSection) string {
	var sb strings.Builder
	sb.WriteString("ELEMENTOS VISUALES:\n")
	fmt.Fprintf(&sb, "Colores principales: %s\n", s.PrimaryColors.Join())
	fmt.Fprintf(&sb, "Colores secundarios: %s\n", s.SecondaryColors.Join())
	fmt.Fprintf(&sb, "Tipografía principal: %s\n", s.PrimaryTypeface)
	fmt.Fprintf(&sb, "Tipografía secundaria: %s\n", s.SecondaryTypeface)
	fmt.Fprintf(&sb, "Estilo fotográfico: %s\n", s.PhotoStyle)
	fmt.Fprintf(&sb, "Iconografía: %s\n", s.Iconography)
	fmt.Fprintf(&sb, "Composición visual: %s\n", s.Composition)
	fmt.Fprintf(&sb, "Elementos obligatorios: %s\n", s.MandatoryElements.Join())
	fmt.Fprintf(&sb, "Elementos prohibidos: %s\n\n", s.ForbiddenElements.Join())
	sb.WriteString("Uso del logo:\n")
	fmt.Fprintf(&sb, "- Tamaño mínimo: %s\n", s.Logo.MinSize)
	fmt.Fprintf(&sb, "- Espaciado: %s\n", s.Logo.SpacingRule())
	fmt.Fprintf(&sb, "- Posiciones permitidas: %s\n", s.Logo.AllowedPositions.Join())
	fmt.Fprintf(&sb, "- Fondos permitidos: %s\n", s.Logo.AllowedBackgrounds.Join())
	fmt.Fprintf(&sb, "- Fondos prohibidos: %s\n", s.Logo.ForbiddenBackgrounds.Join())
	fmt.Fprintf(&sb, "- Elementos adicionales: %s\n", s.Logo.Extras)
	return sb.String()
}

func renderAudience(s *model.AudienceSection) string {
	demo := s.Demographics
	psycho := s.Psychographics
	var sb strings.Builder
	sb.WriteString("PÚBLICO OBJETIVO:\n\n")
	sb.WriteString("Demografía:\n")
	fmt.Fprintf(&sb, "- Edad: %s\n", demo.Age)
	fmt.Fprintf(&sb, "- Género: %s\n", demo.Gender)
	fmt.Fprintf(&sb, "- Ubicación: %s\n", demo.Location)
	fmt.Fprintf(&sb, "- Nivel socioeconómico: %s\n\n", demo.SocioEconomic)
	sb.WriteString("Psicografía:\n")
	fmt.Fprintf(&sb, "- Intereses: %s\n", psycho.Interests.Join())
	fmt.Fprintf(&sb, "- Valores: %s\n", psycho.Values.Join())
	fmt.Fprintf(&sb, "- Estilo de vida: %s\n\n", psycho.Lifestyle)
	fmt.Fprintf(&sb, "Pain Points: %s\n", s.PainPoints.Join())
	fmt.Fprintf(&sb, "Aspiraciones: %s\n", s.Aspirations.Join())
	return sb.String()
}

func renderGuidelines(s *model.GuidelinesSection) string {
	var sb strings.Builder
	sb.WriteString("DIRECTRICES DE CONTENIDO:\n\n")
	fmt.Fprintf(&sb, "Palabras clave SEO: %s\n", s.SEOKeywords.Join())
	fmt.Fprintf(&sb, "Mensajes clave: %s\n\n", s.KeyMessages.Join())
	fmt.Fprintf(&sb, "Tipos de contenido:\n%s\n", s.ContentTypesText())
	return sb.String()
}

func renderExamples(s *model.ExamplesSection) string {
	var sb strings.Builder
	sb.WriteString("EJEMPLOS DE APLICACIÓN:\n\n")
	fmt.Fprintf(&sb, "✅ Descripción de producto BUENA:\n%s\n\n", s.GoodProductDescription)
	fmt.Fprintf(&sb, "❌ Descripción de producto MALA:\n%s\n\n", s.BadProductDescription)
	fmt.Fprintf(&sb, "✅ Post en redes sociales BUENO:\n%s\n\n", s.GoodSocialPost)
	fmt.Fprintf(&sb, "❌ Post en redes sociales MALO:\n%s\n", s.BadSocialPost)
	return sb.String()
}

func bulletList(items model.StringList) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, "- "+item)
	}
	return strings.Join(lines, "\n")
}
