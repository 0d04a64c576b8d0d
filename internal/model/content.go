package model

const (
	ContentTypeProductDescription = "product_description"
	ContentTypeVideoScript        = "video_script"
	ContentTypeImagePrompt        = "image_prompt"
)

const (
	ContentStatusPending  = "pending"
	ContentStatusApproved = "approved"
	ContentStatusRejected = "rejected"
)

type GeneratedContent struct {
	ID            string `json:"id"`
	ManualID      string `json:"manual_id"`
	ContentType   string `json:"content_type"`
	UserPrompt    string `json:"user_prompt"`
	GeneratedText string `json:"generated_text"`
	Status        string `json:"status"`
	Ctime         int64  `json:"ctime"`
	Mtime         int64  `json:"mtime"`
}
