package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/contentsuite/brandsuite/internal/pkg/response"
)

type StatusHandler struct {
	status StatusService
}

func NewStatusHandler(status StatusService) *StatusHandler {
	return &StatusHandler{status: status}
}

func (h *StatusHandler) Database(c *gin.Context) {
	response.Success(c, h.status.Database(c.Request.Context()))
}

func (h *StatusHandler) Vision(c *gin.Context) {
	response.Success(c, h.status.Vision(c.Request.Context()))
}
