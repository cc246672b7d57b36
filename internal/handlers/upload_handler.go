package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/textcanvas/backend/internal/config"
	"github.com/textcanvas/backend/internal/services"
)

type UploadHandler struct {
	ingest *services.IngestService
	cfg    *config.Config
}

func NewUploadHandler(ingest *services.IngestService, cfg *config.Config) *UploadHandler {
	return &UploadHandler{ingest: ingest, cfg: cfg}
}

// UploadFont handles font file uploads
// POST /api/upload/font
// Multipart form: font (required)
func (h *UploadHandler) UploadFont(c *gin.Context) {
	h.handleUpload(c, "font", services.CategoryFont, "fontUrl")
}

// UploadImage handles image file uploads
// POST /api/upload/image
// Multipart form: image (required)
func (h *UploadHandler) UploadImage(c *gin.Context) {
	h.handleUpload(c, "image", services.CategoryImage, "imageUrl")
}

func (h *UploadHandler) handleUpload(c *gin.Context, field string, category services.Category, urlKey string) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "failed to parse multipart form",
		})
		return
	}

	total := 0
	for _, headers := range form.File {
		total += len(headers)
	}
	if total > h.cfg.MaxFilesPerRequest {
		respondError(c, h.cfg.Env, services.NewResourceError(services.KindTooManyFiles,
			"too many files: %d (max: %d per request)", total, h.cfg.MaxFilesPerRequest))
		return
	}

	files := form.File[field]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": fmt.Sprintf("no file uploaded, expected multipart field %q", field),
		})
		return
	}

	asset, err := h.ingest.IngestUpload(category, files[0])
	if err != nil {
		respondError(c, h.cfg.Env, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		urlKey:         asset.PublicRef,
		"filename":     asset.Filename,
		"originalName": asset.OriginalName,
		"size":         asset.SizeBytes,
		"mimeType":     asset.MimeType,
	})
}
