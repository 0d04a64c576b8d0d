package service

import (
	"strings"

	"github.com/google/uuid"
)

func newID() string {
	return uuid.NewString()
}

func imageKey(id, mimeType string) string {
	switch strings.ToLower(mimeType) {
	case "image/png":
		return id + ".png"
	case "image/jpeg", "image/jpg":
		return id + ".jpg"
	case "image/webp":
		return id + ".webp"
	case "image/gif":
		return id + ".gif"
	default:
		return id + ".img"
	}
}
