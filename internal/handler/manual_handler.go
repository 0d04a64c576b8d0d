package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/contentsuite/brandsuite/internal/pkg/response"
	"github.com/contentsuite/brandsuite/internal/rag"
	"github.com/contentsuite/brandsuite/internal/service"
)

const maxSearchTopK = 20

type ManualHandler struct {
	manuals ManualService
	rag     RAGService
}

func NewManualHandler(manuals ManualService, ragService RAGService) *ManualHandler {
	return &ManualHandler{manuals: manuals, rag: ragService}
}

func (h *ManualHandler) Create(c *gin.Context) {
	var req service.ManualInput
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, "invalid request")
		return
	}
	manual, err := h.manuals.Create(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, manual)
}

func (h *ManualHandler) Generate(c *gin.Context) {
	var req service.ManualInput
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, "invalid request")
		return
	}
	manual, err := h.manuals.Generate(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, manual)
}

func (h *ManualHandler) List(c *gin.Context) {
	manuals, err := h.manuals.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, manuals)
}

func (h *ManualHandler) Get(c *gin.Context) {
	manual, err := h.manuals.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, manual)
}

func (h *ManualHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.manuals.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"id": id, "deleted": true})
}

func (h *ManualHandler) Index(c *gin.Context) {
	report, err := h.rag.IndexManual(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, report)
}

func (h *ManualHandler) IndexStatus(c *gin.Context) {
	status, err := h.rag.Status(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, status)
}

type searchRequest struct {
	Query    string `json:"query"`
	ManualID string `json:"manual_id"`
	TopK     int    `json:"top_k"`
}

type searchResponse struct {
	Query   string      `json:"query"`
	Results interface{} `json:"results"`
	Context string      `json:"context"`
}

func (h *ManualHandler) Search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, "invalid request")
		return
	}
	req.Query = strings.TrimSpace(req.Query)
	if req.Query == "" || strings.TrimSpace(req.ManualID) == "" {
		invalid(c, "query and manual_id are required")
		return
	}
	if req.TopK <= 0 {
		req.TopK = rag.DefaultTopK
	}
	if req.TopK > maxSearchTopK {
		req.TopK = maxSearchTopK
	}
	results, err := h.rag.Search(c.Request.Context(), req.Query, req.ManualID, req.TopK)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, searchResponse{
		Query:   req.Query,
		Results: results,
		Context: rag.AssembleContext(results),
	})
}
