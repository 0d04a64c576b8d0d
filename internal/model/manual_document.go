package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ManualDocument is the generated brand manual. Each section is optional; a nil section
// means the generator did not produce it.
type ManualDocument struct {
	Identity   *IdentitySection   `json:"identidad_marca,omitempty"`
	Tone       *ToneSection       `json:"tono_comunicacion,omitempty"`
	Visual     *VisualSection     `json:"elementos_visuales,omitempty"`
	Audience   *AudienceSection   `json:"publico_objetivo,omitempty"`
	Guidelines *GuidelinesSection `json:"directrices_contenido,omitempty"`
	Examples   *ExamplesSection   `json:"ejemplos_aplicacion,omitempty"`
}

func (d *ManualDocument) IsEmpty() bool {
	return d == nil || (d.Identity == nil && d.Tone == nil && d.Visual == nil &&
		d.Audience == nil && d.Guidelines == nil && d.Examples == nil)
}

type IdentitySection struct {
	Purpose        string     `json:"proposito"`
	Values         StringList `json:"valores"`
	Personality    string     `json:"personalidad"`
	Differentiator string     `json:"diferenciador"`
}

type ToneSection struct {
	Description    string     `json:"descripcion_general"`
	AllowedWords   StringList `json:"palabras_permitidas"`
	ForbiddenWords StringList `json:"palabras_prohibidas"`
	WritingStyle   string     `json:"estilo_redaccion"`
	TechnicalTerms FlexBool   `json:"uso_tecnicismos"`
	GoodExamples   StringList `json:"ejemplos_buenos"`
	BadExamples    StringList `json:"ejemplos_malos"`
}

type VisualSection struct {
	PrimaryColors     StringList `json:"colores_principales"`
	SecondaryColors   StringList `json:"colores_secundarios"`
	PrimaryTypeface   string     `json:"tipografia_principal"`
	SecondaryTypeface string     `json:"tipografia_secundaria"`
	Logo              LogoUsage  `json:"uso_logo"`
	PhotoStyle        string     `json:"estilo_fotografico"`
	Iconography       string     `json:"iconografia"`
	Composition       string     `json:"composicion_visual"`
	MandatoryElements StringList `json:"elementos_obligatorios"`
	ForbiddenElements StringList `json:"elementos_prohibidos"`
}

type LogoUsage struct {
	MinSize              string     `json:"tamano_minimo"`
	MinSpacing           string     `json:"espaciado_minimo"`
	Spacing              string     `json:"espaciado,omitempty"`
	AllowedPositions     StringList `json:"posicion_permitida"`
	AllowedBackgrounds   StringList `json:"fondos_permitidos"`
	ForbiddenBackgrounds StringList `json:"fondos_prohibidos"`
	Extras               string     `json:"elementos_adicionales"`
}

// SpacingRule returns the logo clear-space rule; older manuals used the "espaciado" key.
func (l LogoUsage) SpacingRule() string {
	if l.MinSpacing != "" {
		return l.MinSpacing
	}
	return l.Spacing
}

type AudienceSection struct {
	Demographics   Demographics   `json:"demografia"`
	Psychographics Psychographics `json:"psicografia"`
	PainPoints     StringList     `json:"pain_points"`
	Aspirations    StringList     `json:"aspiraciones"`
}

type Demographics struct {
	Age           string `json:"edad"`
	Gender        string `json:"genero"`
	Location      string `json:"ubicacion"`
	SocioEconomic string `json:"nivel_socioeconomico"`
}

type Psychographics struct {
	Interests StringList `json:"intereses"`
	Values    StringList `json:"valores"`
	Lifestyle string     `json:"estilo_vida"`
}

type GuidelinesSection struct {
	ContentTypes json.RawMessage `json:"tipos_contenido,omitempty"`
	SEOKeywords  StringList      `json:"palabras_clave_seo"`
	KeyMessages  StringList      `json:"mensajes_clave"`
}

// ContentTypesText renders tipos_contenido as indented JSON, "{}" when absent.
func (g *GuidelinesSection) ContentTypesText() string {
	raw := bytes.TrimSpace(g.ContentTypes)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "{}"
	}
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return string(raw)
	}
	return out.String()
}

type ExamplesSection struct {
	GoodProductDescription string `json:"descripcion_producto_buena"`
	BadProductDescription  string `json:"descripcion_producto_mala"`
	GoodSocialPost         string `json:"post_redes_bueno"`
	BadSocialPost          string `json:"post_redes_malo"`
}

// StringList decodes either a JSON list or a single string. Generators are not always
// consistent about which one they emit.
type StringList []string

func (s *StringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = nil
		return nil
	}
	if data[0] == '"' {
		var single string
		if err := json.Unmarshal(data, &single); err != nil {
			return err
		}
		single = strings.TrimSpace(single)
		if single == "" {
			*s = nil
			return nil
		}
		*s = StringList{single}
		return nil
	}
	var items []interface{}
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("decode string list: %w", err)
	}
	out := make(StringList, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case nil:
			continue
		case string:
			out = append(out, v)
		default:
			out = append(out, fmt.Sprint(v))
		}
	}
	*s = out
	return nil
}

// Join renders the list with ", " separators.
func (s StringList) Join() string {
	return strings.Join(s, ", ")
}

// FlexBool decodes a JSON bool, a number or a yes/no style string.
type FlexBool bool

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*b = false
		return nil
	}
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decode bool: %w", err)
	}
	switch val := v.(type) {
	case bool:
		*b = FlexBool(val)
	case float64:
		*b = val != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "true", "si", "sí", "yes", "1", "permitido":
			*b = true
		default:
			*b = false
		}
	default:
		*b = false
	}
	return nil
}
