package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/contentsuite/brandsuite/internal/metrics"
)

type RouterDeps struct {
	Manuals *ManualHandler
	Content *ContentHandler
	Audits  *AuditHandler
	Status  *StatusHandler
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.GET("/database/status", deps.Status.Database)
	api.GET("/vision/status", deps.Status.Vision)

	api.POST("/brand-manuals", deps.Manuals.Create)
	api.GET("/brand-manuals", deps.Manuals.List)
	api.POST("/brand-manuals/generate", deps.Manuals.Generate)
	api.POST("/brand-manuals/search", deps.Manuals.Search)
	api.GET("/brand-manuals/:id", deps.Manuals.Get)
	api.DELETE("/brand-manuals/:id", deps.Manuals.Delete)
	api.POST("/brand-manuals/:id/embeddings", deps.Manuals.Index)
	api.GET("/brand-manuals/:id/embeddings/status", deps.Manuals.IndexStatus)

	api.POST("/content/generate", deps.Content.Generate)
	api.GET("/content", deps.Content.List)
	api.POST("/content/:id/approve", deps.Content.Approve)
	api.POST("/content/:id/reject", deps.Content.Reject)

	api.POST("/audit/image", deps.Audits.Audit)
	api.GET("/audits", deps.Audits.List)
	api.GET("/audits/:id", deps.Audits.Get)
	api.GET("/audits/:id/image", deps.Audits.Image)

	api.GET("/metrics", gin.WrapH(metrics.Handler()))
}
