package model

type AuditVerdict struct {
	Compliant       bool            `json:"compliant"`
	Score           float64         `json:"score"`
	Issues          []string        `json:"issues"`
	Recommendations []string        `json:"recommendations"`
	Analysis        string          `json:"analysis"`
	CategoryScores  *CategoryScores `json:"category_scores,omitempty"`
	// Fallback is set when the provider answer could not be parsed.
	Fallback bool `json:"fallback"`
}

type CategoryScores struct {
	Colors           float64 `json:"colors"`
	Branding         float64 `json:"branding"`
	PhotographyStyle float64 `json:"photography_style"`
	Elements         float64 `json:"elements"`
	Typography       float64 `json:"typography"`
}

type ImageAudit struct {
	ID         string `json:"id"`
	ManualID   string `json:"manual_id"`
	ManualName string `json:"manual_name"`
	ImageKey   string `json:"image_key"`
	MimeType   string `json:"mime_type"`
	AuditVerdict
	Ctime int64 `json:"ctime"`
}
