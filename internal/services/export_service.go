package services

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
	"github.com/textcanvas/backend/internal/config"
	"github.com/textcanvas/backend/internal/models"
)

// ExportService renders a design as a printable PDF sheet.
type ExportService struct {
	cfg *config.Config
}

func NewExportService(cfg *config.Config) *ExportService { return &ExportService{cfg: cfg} }

// pdfImageType maps a stored MIME type to gofpdf's image type identifier.
// Formats gofpdf cannot embed return "".
func pdfImageType(mimeType string) string {
	switch strings.ToLower(mimeType) {
	case "image/png":
		return "PNG"
	case "image/jpeg", "image/jpg":
		return "JPG"
	case "image/gif":
		return "GIF"
	default:
		return ""
	}
}

// GenerateDesignPDF builds an A4 sheet with the design's text, metadata,
// the rendered result image when the format allows embedding, and a QR
// code linking to the public image URL.
func (s *ExportService) GenerateDesignPDF(design *models.Design) ([]byte, error) {
	imageURL := s.cfg.APIUrl + design.ImageURL

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, fmt.Sprintf("Design #%d", design.ID))
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 12)
	pdf.MultiCell(0, 6, fmt.Sprintf(
		"Text: %s\nFont size: %d\nFont color: %s\nCanvas: %dx%d\nCreated: %s",
		design.Text, design.FontSize, design.FontColor,
		design.CanvasWidth, design.CanvasHeight,
		design.CreatedAt.Format("2006-01-02 15:04:05"),
	), "", "L", false)

	// Embed the rendered image when gofpdf supports its format.
	if imgType := pdfImageType(design.MimeType); imgType != "" {
		if data, err := os.ReadFile(design.ImagePath); err == nil {
			opt := gofpdf.ImageOptions{ImageType: imgType, ReadDpi: true}
			pdf.RegisterImageOptionsReader("result", opt, bytes.NewReader(data))
			y := pdf.GetY() + 6
			pdf.ImageOptions("result", 15, y, 120, 0, false, opt, 0, "")
			pdf.SetY(y + 70)
		}
	}

	// QR code to the public image reference.
	png, err := qrcode.Encode(imageURL, qrcode.Medium, 512)
	if err != nil {
		return nil, err
	}
	opt := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
	pdf.RegisterImageOptionsReader("qr", opt, bytes.NewReader(png))
	pdf.ImageOptions("qr", 15, pdf.GetY()+6, 40, 40, false, opt, 0, "")
	pdf.SetY(pdf.GetY() + 50)
	pdf.SetFont("Arial", "", 9)
	pdf.MultiCell(0, 5, imageURL, "", "L", false)

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
