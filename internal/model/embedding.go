package model

// EmbeddingRecord is one indexed chunk of a manual. Records of a manual are replaced as a
// whole on every index run.
type EmbeddingRecord struct {
	ManualID  string    `json:"manual_id"`
	Content   string    `json:"content"`
	Section   string    `json:"section"`
	Embedding []float32 `json:"embedding"`
}

type SearchResult struct {
	ID         string  `json:"id"`
	ManualID   string  `json:"manual_id"`
	Content    string  `json:"content"`
	Section    string  `json:"section"`
	Similarity float64 `json:"similarity"`
}

type IndexStatus struct {
	ManualID      string   `json:"manual_id"`
	HasEmbeddings bool     `json:"has_embeddings"`
	ChunksCount   int      `json:"chunks_count"`
	Sections      []string `json:"sections"`
}

type IndexReport struct {
	ManualID      string   `json:"manual_id"`
	ChunksCreated int      `json:"chunks_created"`
	Sections      []string `json:"sections"`
}
