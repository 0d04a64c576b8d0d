package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/contentsuite/brandsuite/internal/model"
)

const (
	ComplianceThreshold = 72.0

	fallbackScore   = 50.0
	missingAnalysis = "Análisis no disponible"
	fallbackIssue   = "No se pudo parsear respuesta estructurada"
	fallbackAdvice  = "Verificar formato de imagen"
)

// extractJSON pulls the JSON payload out of a model reply. Replies often come wrapped in a
// fenced block, sometimes with prose around it; the first json (or untagged) fence wins.
func extractJSON(reply string) string {
	src := []byte(strings.TrimSpace(reply))
	doc := goldmark.New().Parser().Parse(text.NewReader(src))
	var fenced []byte
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		block, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		lang := strings.ToLower(string(block.Language(src)))
		if lang != "" && lang != "json" {
			return ast.WalkSkipChildren, nil
		}
		var buf bytes.Buffer
		lines := block.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(src))
		}
		fenced = buf.Bytes()
		return ast.WalkStop, nil
	})
	payload := string(src)
	if len(bytes.TrimSpace(fenced)) > 0 {
		payload = string(fenced)
	}
	payload = strings.TrimSpace(payload)
	start := strings.Index(payload, "{")
	end := strings.LastIndex(payload, "}")
	if start >= 0 && end > start {
		payload = payload[start : end+1]
	}
	return payload
}

// ParseManual decodes a generated brand manual. Unlike audits there is no degraded result:
// a reply that is not a manual is an error.
func ParseManual(reply string) (*model.ManualDocument, error) {
	doc := &model.ManualDocument{}
	if err := json.Unmarshal([]byte(extractJSON(reply)), doc); err != nil {
		return nil, fmt.Errorf("parse brand manual: %w", err)
	}
	if doc.IsEmpty() {
		return nil, fmt.Errorf("parse brand manual: no known sections")
	}
	return doc, nil
}

// ParseAuditVerdict never fails. Unparseable replies give the fixed fallback verdict, missing
// fields get zero-ish defaults. The score is clamped to [0,100] and compliance is always
// derived from it, whatever the model claimed.
func ParseAuditVerdict(reply string) model.AuditVerdict {
	var payload struct {
		Score           interface{}           `json:"score"`
		Issues          interface{}           `json:"issues"`
		Recommendations interface{}           `json:"recommendations"`
		Analysis        *string               `json:"analysis"`
		CategoryScores  *model.CategoryScores `json:"category_scores"`
	}
	raw := strings.TrimSpace(reply)
	if err := json.Unmarshal([]byte(extractJSON(raw)), &payload); err != nil {
		return model.AuditVerdict{
			Compliant:       false,
			Score:           fallbackScore,
			Issues:          []string{fallbackIssue},
			Recommendations: []string{fallbackAdvice},
			Analysis:        raw,
			Fallback:        true,
		}
	}
	verdict := model.AuditVerdict{
		Score:           clampScore(toFloat(payload.Score)),
		Issues:          toStrings(payload.Issues),
		Recommendations: toStrings(payload.Recommendations),
		Analysis:        missingAnalysis,
		CategoryScores:  payload.CategoryScores,
	}
	if payload.Analysis != nil {
		verdict.Analysis = *payload.Analysis
	}
	verdict.Compliant = verdict.Score >= ComplianceThreshold
	return verdict
}

// toFloat reads a numeric or "80%" style value; anything unreadable, NaN or infinite is 0.
func toFloat(v interface{}) float64 {
	var f float64
	switch val := v.(type) {
	case float64:
		f = val
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(val, "%")), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func toStrings(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		switch val := item.(type) {
		case nil:
		case string:
			out = append(out, val)
		default:
			out = append(out, fmt.Sprint(val))
		}
	}
	return out
}
