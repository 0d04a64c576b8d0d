package model

type BrandManual struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	ProductType    string          `json:"product_type"`
	Tone           string          `json:"tone"`
	TargetAudience string          `json:"target_audience"`
	FullManual     *ManualDocument `json:"full_manual"`
	IndexedChunks  int             `json:"indexed_chunks"`
	Ctime          int64           `json:"ctime"`
	Mtime          int64           `json:"mtime"`
}

// HasContent reports whether the manual carries a generated document.
func (m *BrandManual) HasContent() bool {
	return m != nil && m.FullManual != nil && !m.FullManual.IsEmpty()
}
