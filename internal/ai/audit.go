package ai

import (
	"fmt"
	"strings"

	"github.com/contentsuite/brandsuite/internal/model"
)

const unspecified = "No especificado"

// RenderAuditManual renders the parts of a manual an image audit is scored against.
func RenderAuditManual(brandName string, doc *model.ManualDocument) string {
	identity := &model.IdentitySection{}
	visual := &model.VisualSection{}
	tone := &model.ToneSection{}
	if doc != nil {
		if doc.Identity != nil {
			identity = doc.Identity
		}
		if doc.Visual != nil {
			visual = doc.Visual
		}
		if doc.Tone != nil {
			tone = doc.Tone
		}
	}
	logo := visual.Logo
	var sb strings.Builder
	fmt.Fprintf(&sb, "MANUAL DE MARCA - %s\n\n", brandName)
	sb.WriteString("=== IDENTIDAD DE MARCA ===\n")
	fmt.Fprintf(&sb, "Propósito: %s\n", orUnspecified(identity.Purpose))
	fmt.Fprintf(&sb, "Valores: %s\n", listOrUnspecified(identity.Values))
	fmt.Fprintf(&sb, "Personalidad: %s\n\n", orUnspecified(identity.Personality))

	sb.WriteString("=== ELEMENTOS VISUALES ===\n")
	fmt.Fprintf(&sb, "• Colores PRINCIPALES (deben aparecer): %s\n", listOrUnspecified(visual.PrimaryColors))
	fmt.Fprintf(&sb, "• Colores SECUNDARIOS (pueden aparecer): %s\n", listOrUnspecified(visual.SecondaryColors))
	fmt.Fprintf(&sb, "• Estilo fotográfico requerido: %s\n", orUnspecified(visual.PhotoStyle))
	fmt.Fprintf(&sb, "• Composición visual: %s\n", orUnspecified(visual.Composition))
	fmt.Fprintf(&sb, "• Iconografía: %s\n", orUnspecified(visual.Iconography))
	fmt.Fprintf(&sb, "• Tipografía principal: %s\n", orUnspecified(visual.PrimaryTypeface))
	fmt.Fprintf(&sb, "• Tipografía secundaria: %s\n\n", orUnspecified(visual.SecondaryTypeface))

	fmt.Fprintf(&sb, "=== ELEMENTOS OBLIGATORIOS ===\n%s\n\n", listOrUnspecified(visual.MandatoryElements))
	fmt.Fprintf(&sb, "=== ELEMENTOS PROHIBIDOS (si aparecen = fallo automático) ===\n%s\n\n", listOrUnspecified(visual.ForbiddenElements))

	sb.WriteString("=== REGLAS DE USO DEL LOGO ===\n")
	fmt.Fprintf(&sb, "• Tamaño mínimo: %s\n", orUnspecified(logo.MinSize))
	fmt.Fprintf(&sb, "• Espaciado mínimo alrededor: %s\n", orUnspecified(logo.SpacingRule()))
	fmt.Fprintf(&sb, "• Posiciones permitidas: %s\n", listOrUnspecified(logo.AllowedPositions))
	fmt.Fprintf(&sb, "• Fondos PERMITIDOS: %s\n", listOrUnspecified(logo.AllowedBackgrounds))
	fmt.Fprintf(&sb, "• Fondos PROHIBIDOS: %s\n", listOrUnspecified(logo.ForbiddenBackgrounds))
	fmt.Fprintf(&sb, "• Elementos adicionales: %s\n\n", orUnspecified(logo.Extras))

	sb.WriteString("=== TONO Y ESTILO ===\n")
	fmt.Fprintf(&sb, "%s\n", orUnspecified(tone.Description))
	fmt.Fprintf(&sb, "Palabras permitidas: %s\n", listOrUnspecified(tone.AllowedWords))
	fmt.Fprintf(&sb, "Palabras prohibidas: %s\n", listOrUnspecified(tone.ForbiddenWords))
	return sb.String()
}

func orUnspecified(v string) string {
	if strings.TrimSpace(v) == "" {
		return unspecified
	}
	return v
}

func listOrUnspecified(v model.StringList) string {
	if len(v) == 0 {
		return unspecified
	}
	return v.Join()
}
