package services

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/textcanvas/backend/internal/config"
	"github.com/textcanvas/backend/internal/models"
)

func encodePNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	return buf.Bytes()
}

func testDesign(t *testing.T, mimeType, imagePath string) *models.Design {
	t.Helper()
	return &models.Design{
		ID:           7,
		Text:         "Poster headline",
		FontSize:     48,
		FontColor:    "#ffffff",
		CanvasWidth:  800,
		CanvasHeight: 400,
		ImageURL:     "/storage/results/design-x.png",
		ImagePath:    imagePath,
		MimeType:     mimeType,
		CreatedAt:    time.Now(),
	}
}

func TestGenerateDesignPDFEmbedsResultImage(t *testing.T) {
	dir := t.TempDir()
	imagePath := filepath.Join(dir, "design-x.png")
	require.NoError(t, os.WriteFile(imagePath, encodePNG(t), 0o644))

	svc := NewExportService(&config.Config{APIUrl: "http://localhost:8080"})
	pdf, err := svc.GenerateDesignPDF(testDesign(t, "image/png", imagePath))
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
	assert.Greater(t, len(pdf), 1000)
}

func TestGenerateDesignPDFSkipsUnsupportedImageFormats(t *testing.T) {
	svc := NewExportService(&config.Config{APIUrl: "http://localhost:8080"})

	// WebP cannot be embedded and the blob is missing; the sheet still renders.
	pdf, err := svc.GenerateDesignPDF(testDesign(t, "image/webp", filepath.Join(t.TempDir(), "missing.webp")))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}
