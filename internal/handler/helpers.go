package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/contentsuite/brandsuite/internal/pkg/errcode"
	appErr "github.com/contentsuite/brandsuite/internal/pkg/errors"
	"github.com/contentsuite/brandsuite/internal/pkg/response"
	"github.com/contentsuite/brandsuite/internal/rag"
)

func handleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	requestID, _ := c.Get("request_id")
	logutil.GetLogger(c.Request.Context()).Error("request failed",
		zap.Any("request_id", requestID),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	switch {
	case errors.Is(err, appErr.ErrNotFound):
		response.Error(c, errcode.ErrNotFound, "")
	case errors.Is(err, appErr.ErrInvalid):
		response.Error(c, errcode.ErrInvalid, err.Error())
	case errors.Is(err, appErr.ErrConflict):
		response.Error(c, errcode.ErrConflict, "")
	case errors.Is(err, appErr.ErrManualNotGenerated):
		response.Error(c, errcode.ErrManualNotGenerated, "manual has no generated content")
	case errors.Is(err, appErr.ErrIndexMissing):
		response.Error(c, errcode.ErrIndexMissing, "manual is not indexed, call POST /brand-manuals/:id/embeddings first")
	case errors.Is(err, appErr.ErrInsufficientContext):
		response.Error(c, errcode.ErrInsufficientContext, "no manual context was retrieved")
	case errors.Is(err, appErr.ErrAIUnavailable):
		response.Error(c, errcode.ErrAIUnavailable, "ai provider is not configured")
	case errors.Is(err, rag.ErrEmbedding), errors.Is(err, rag.ErrIndexing), errors.Is(err, rag.ErrSearch):
		response.Error(c, errcode.ErrInternal, err.Error())
	default:
		response.Fail(c, err)
	}
}

func invalid(c *gin.Context, msg string) {
	response.Error(c, errcode.ErrInvalid, msg)
}
