package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/textcanvas/backend/internal/config"
	"github.com/textcanvas/backend/internal/models"
	"github.com/textcanvas/backend/internal/services"
)

type DesignHandler struct {
	designs *services.DesignService
	export  *services.ExportService
	cfg     *config.Config
}

func NewDesignHandler(designs *services.DesignService, export *services.ExportService, cfg *config.Config) *DesignHandler {
	return &DesignHandler{designs: designs, export: export, cfg: cfg}
}

// CreateDesign saves a rendered design
// POST /api/designs
func (h *DesignHandler) CreateDesign(c *gin.Context) {
	var input models.DesignInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "invalid request body",
		})
		return
	}

	design, err := h.designs.SaveDesign(input)
	if err != nil {
		respondError(c, h.cfg.Env, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"message":  "design saved",
		"designId": design.ID,
		"design":   design,
	})
}

// ListDesigns returns all saved designs in insertion order
// GET /api/designs
func (h *DesignHandler) ListDesigns(c *gin.Context) {
	designs, err := h.designs.ListDesigns()
	if err != nil {
		respondError(c, h.cfg.Env, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(designs),
		"designs": designs,
	})
}

// GetDesign returns one design by id
// GET /api/designs/:id
func (h *DesignHandler) GetDesign(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		// Non-numeric ids can never match a record.
		respondError(c, h.cfg.Env, services.ErrDesignNotFound)
		return
	}

	design, err := h.designs.GetDesign(id)
	if err != nil {
		respondError(c, h.cfg.Env, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"design":  design,
	})
}

// DeleteDesign removes a design and best-effort deletes its result blob
// DELETE /api/designs/:id
func (h *DesignHandler) DeleteDesign(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, h.cfg.Env, services.ErrDesignNotFound)
		return
	}

	if err := h.designs.DeleteDesign(id); err != nil {
		respondError(c, h.cfg.Env, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("design %d deleted", id),
	})
}

// ExportDesign renders a design as a PDF sheet
// GET /api/designs/:id/export.pdf
func (h *DesignHandler) ExportDesign(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, h.cfg.Env, services.ErrDesignNotFound)
		return
	}

	design, err := h.designs.GetDesign(id)
	if err != nil {
		respondError(c, h.cfg.Env, err)
		return
	}

	pdf, err := h.export.GenerateDesignPDF(design)
	if err != nil {
		respondError(c, h.cfg.Env, &services.StorageError{Op: "export design", Err: err})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"design-%d.pdf\"", id))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// Cleanup evicts designs older than ?days=N (default 7) and deletes their
// blobs best-effort
// DELETE /api/cleanup?days=N
func (h *DesignHandler) Cleanup(c *gin.Context) {
	days := h.cfg.CleanupDefaultDays
	if raw := c.Query("days"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			days = n
		}
	}

	deleted, remaining, err := h.designs.Cleanup(days)
	if err != nil {
		respondError(c, h.cfg.Env, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"deletedFiles":     deleted,
		"remainingDesigns": remaining,
	})
}
