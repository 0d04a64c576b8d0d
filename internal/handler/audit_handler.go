package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/contentsuite/brandsuite/internal/pkg/errcode"
	appErr "github.com/contentsuite/brandsuite/internal/pkg/errors"
	"github.com/contentsuite/brandsuite/internal/pkg/response"
	"github.com/contentsuite/brandsuite/internal/service"
)

type AuditHandler struct {
	audits       AuditService
	maxImageSize int64
}

func NewAuditHandler(audits AuditService, maxImageSize int64) *AuditHandler {
	return &AuditHandler{audits: audits, maxImageSize: maxImageSize}
}

func (h *AuditHandler) Audit(c *gin.Context) {
	manualID := strings.TrimSpace(c.PostForm("manual_id"))
	if manualID == "" {
		invalid(c, "manual_id is required")
		return
	}
	file, err := c.FormFile("image")
	if err != nil {
		response.Error(c, errcode.ErrInvalidFile, "image is required")
		return
	}
	if h.maxImageSize > 0 && file.Size > h.maxImageSize {
		response.Error(c, errcode.ErrInvalidFile, "image exceeds "+formatUploadLimit(h.maxImageSize))
		return
	}
	data, err := readUpload(file, h.maxImageSize)
	if err != nil {
		response.Error(c, errcode.ErrInvalidFile, "failed to read image")
		return
	}
	item, err := h.audits.Audit(c.Request.Context(), service.AuditInput{
		ManualID: manualID,
		Image:    data,
		MimeType: detectMimeType(file.Header.Get("Content-Type"), data),
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, item)
}

func (h *AuditHandler) List(c *gin.Context) {
	items, err := h.audits.ListByManual(c.Request.Context(), c.Query("manual_id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, items)
}

func (h *AuditHandler) Get(c *gin.Context) {
	item, err := h.audits.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, item)
}

func (h *AuditHandler) Image(c *gin.Context) {
	rc, mimeType, err := h.audits.OpenImage(c.Request.Context(), c.Param("id"))
	if errors.Is(err, appErr.ErrNotFound) {
		c.Status(http.StatusNotFound)
		return
	}
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	defer rc.Close()
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	c.Header("Content-Type", mimeType)
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, rc)
}

func readUpload(file *multipart.FileHeader, limit int64) ([]byte, error) {
	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var r io.Reader = f
	if limit > 0 {
		r = io.LimitReader(f, limit+1)
	}
	return io.ReadAll(r)
}

// detectMimeType trusts the declared type unless the client sent a generic one.
func detectMimeType(declared string, data []byte) string {
	declared = strings.TrimSpace(declared)
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	return http.DetectContentType(data)
}
