package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/contentsuite/brandsuite/internal/model"
	"github.com/contentsuite/brandsuite/internal/pkg/response"
)

type ContentHandler struct {
	content ContentService
}

func NewContentHandler(content ContentService) *ContentHandler {
	return &ContentHandler{content: content}
}

type generateContentRequest struct {
	ManualID          string `json:"manual_id"`
	ContentType       string `json:"content_type"`
	AdditionalContext string `json:"additional_context"`
}

func (h *ContentHandler) Generate(c *gin.Context) {
	var req generateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, "invalid request")
		return
	}
	if strings.TrimSpace(req.ManualID) == "" || strings.TrimSpace(req.ContentType) == "" {
		invalid(c, "manual_id and content_type are required")
		return
	}
	item, err := h.content.Generate(c.Request.Context(), req.ManualID, strings.TrimSpace(req.ContentType), req.AdditionalContext)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, item)
}

func (h *ContentHandler) List(c *gin.Context) {
	limit := 0
	if value := c.Query("limit"); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	items, err := h.content.List(c.Request.Context(), c.Query("manual_id"), limit)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, items)
}

func (h *ContentHandler) Approve(c *gin.Context) {
	id := c.Param("id")
	if err := h.content.Approve(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"id": id, "status": model.ContentStatusApproved})
}

func (h *ContentHandler) Reject(c *gin.Context) {
	id := c.Param("id")
	if err := h.content.Reject(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"id": id, "status": model.ContentStatusRejected})
}
