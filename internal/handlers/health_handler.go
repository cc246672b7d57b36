package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/textcanvas/backend/internal/config"
	"github.com/textcanvas/backend/internal/services"
)

type HealthHandler struct {
	blobs *services.BlobStore
	cfg   *config.Config
}

func NewHealthHandler(blobs *services.BlobStore, cfg *config.Config) *HealthHandler {
	return &HealthHandler{blobs: blobs, cfg: cfg}
}

// Health reports service status and storage writability
// GET /api/health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":          "healthy",
		"storageWritable": h.blobs.CheckWritable(),
		"maxUploadSize":   h.cfg.MaxUploadSize,
		"endpoints": []string{
			"GET /api/health",
			"POST /api/upload/font",
			"POST /api/upload/image",
			"POST /api/designs",
			"GET /api/designs",
			"GET /api/designs/:id",
			"GET /api/designs/:id/export.pdf",
			"DELETE /api/designs/:id",
			"DELETE /api/cleanup",
		},
	})
}
