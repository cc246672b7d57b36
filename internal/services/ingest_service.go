package services

import (
	"encoding/base64"
	"io"
	"mime/multipart"
	"path/filepath"
	"sort"
	"strings"

	"github.com/textcanvas/backend/internal/config"
	"github.com/textcanvas/backend/internal/models"
	"github.com/textcanvas/backend/pkg/validation"
)

var fontExtensions = map[string]bool{
	".ttf":   true,
	".otf":   true,
	".woff":  true,
	".woff2": true,
}

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
}

// mimeToExt maps a declared data-URL MIME type to a file extension.
// Unmapped types fall back to png.
var mimeToExt = map[string]string{
	"image/png":     "png",
	"image/jpeg":    "jpg",
	"image/jpg":     "jpg",
	"image/gif":     "gif",
	"image/webp":    "webp",
	"image/bmp":     "bmp",
	"image/svg+xml": "svg",
}

// IngestService validates and lands exactly one binary payload per call,
// either from a multipart upload or from an inline base64 data URL.
type IngestService struct {
	blobs *BlobStore
	cfg   *config.Config
}

func NewIngestService(blobs *BlobStore, cfg *config.Config) *IngestService {
	return &IngestService{blobs: blobs, cfg: cfg}
}

func allowedExtensions(category Category) map[string]bool {
	switch category {
	case CategoryFont:
		return fontExtensions
	case CategoryImage:
		return imageExtensions
	default:
		return nil // any extension
	}
}

func extensionList(exts map[string]bool) string {
	list := make([]string, 0, len(exts))
	for ext := range exts {
		list = append(list, ext)
	}
	sort.Strings(list)
	return strings.Join(list, ", ")
}

// IngestUpload validates a multipart file against the category's extension
// allowlist and size limit, then stores it under a generated unique name.
// Nothing is written to disk when validation fails.
func (s *IngestService) IngestUpload(category Category, header *multipart.FileHeader) (*models.StoredAsset, error) {
	if allowed := allowedExtensions(category); allowed != nil {
		ext := strings.ToLower(filepath.Ext(header.Filename))
		if !allowed[ext] {
			return nil, newValidationError(KindUnsupportedFileType,
				"unsupported %s file type %q, allowed: %s", category, ext, extensionList(allowed))
		}
	}

	if header.Size > s.cfg.MaxUploadSize {
		return nil, NewResourceError(KindFileTooLarge,
			"file too large: %d bytes (max: %d)", header.Size, s.cfg.MaxUploadSize)
	}

	file, err := header.Open()
	if err != nil {
		return nil, &StorageError{Op: "open upload", Err: err}
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, &StorageError{Op: "read upload", Err: err}
	}

	stored, err := s.blobs.Write(category, data, header.Filename)
	if err != nil {
		return nil, &StorageError{Op: "store upload", Err: err}
	}

	return &models.StoredAsset{
		Filename:     filepath.Base(stored.Path),
		OriginalName: header.Filename,
		Path:         stored.Path,
		PublicRef:    stored.PublicRef,
		MimeType:     header.Header.Get("Content-Type"),
		SizeBytes:    int64(len(data)),
	}, nil
}

// IngestDataURL decodes a base64 data URL and stores the bytes under a
// design-<token>.<ext> name in the category's subdirectory. Malformed
// input fails before any disk write.
func (s *IngestService) IngestDataURL(dataURL string, category Category) (*models.StoredAsset, error) {
	mimeType, payload, ok := validation.ParseDataURL(dataURL)
	if !ok {
		return nil, newValidationError(KindInvalidImageFormat,
			"invalid image format, expected data:<mime-type>;base64,<payload>")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, newValidationError(KindInvalidImageFormat, "invalid base64 payload: %v", err)
	}

	ext, ok := mimeToExt[strings.ToLower(mimeType)]
	if !ok {
		ext = "png"
	}

	stored, err := s.blobs.Write(category, data, "design."+ext)
	if err != nil {
		return nil, &StorageError{Op: "image save failed", Err: err}
	}

	return &models.StoredAsset{
		Filename:  filepath.Base(stored.Path),
		Path:      stored.Path,
		PublicRef: stored.PublicRef,
		MimeType:  mimeType,
		SizeBytes: int64(len(data)),
	}, nil
}
