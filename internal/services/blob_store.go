package services

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/textcanvas/backend/internal/config"
	"github.com/textcanvas/backend/pkg/validation"
)

// Category is the logical bucket an asset belongs to. Each category maps
// to a fixed subdirectory of the storage root.
type Category string

const (
	CategoryFont   Category = "font"
	CategoryImage  Category = "image"
	CategoryTemp   Category = "temp"
	CategoryUpload Category = "upload"
	CategoryResult Category = "result"
)

// Subdir returns the storage subdirectory for the category.
func (c Category) Subdir() string {
	switch c {
	case CategoryFont:
		return "fonts"
	case CategoryImage:
		return "images"
	case CategoryTemp:
		return "temp"
	case CategoryResult:
		return "results"
	default:
		return "uploads"
	}
}

var allCategories = []Category{CategoryFont, CategoryImage, CategoryTemp, CategoryUpload, CategoryResult}

// StoredFile is the location of a written blob.
type StoredFile struct {
	Path      string // absolute path on disk
	PublicRef string // client-facing path under /storage
}

// BlobStore writes and deletes named binary files under the category
// subdirectories of the storage root.
type BlobStore struct {
	root string
}

func NewBlobStore(cfg *config.Config) *BlobStore {
	return &BlobStore{root: cfg.StoragePath}
}

// Root returns the storage root directory.
func (s *BlobStore) Root() string { return s.root }

// EnsureDirectories idempotently creates all category subdirectories.
// A failed directory is logged and does not stop the others.
func (s *BlobStore) EnsureDirectories() {
	for _, cat := range allCategories {
		dir := filepath.Join(s.root, cat.Subdir())
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Printf("WARN: failed to create storage directory %s: %v", dir, err)
		}
	}
}

// CheckWritable writes and removes a probe file in the storage root.
func (s *BlobStore) CheckWritable() bool {
	probe := filepath.Join(s.root, ".writecheck-"+uuid.New().String())
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		return false
	}
	_ = os.Remove(probe)
	return true
}

// UniqueFilename combines the suggested name's base (extension stripped)
// with a fresh random token and the original extension. Two concurrent
// writes can never produce the same name.
func UniqueFilename(suggestedName string) string {
	name := validation.SanitizeFilename(suggestedName)
	ext := strings.ToLower(filepath.Ext(name))
	base := strings.TrimSuffix(name, filepath.Ext(name))
	if base == "" || base == "." {
		base = "file"
	}
	return fmt.Sprintf("%s-%s%s", base, uuid.New().String(), ext)
}

// Write lands bytes under <root>/<category subdir>/<unique name>. The file
// is written to a temp name and renamed so readers never observe a partial
// blob.
func (s *BlobStore) Write(category Category, data []byte, suggestedName string) (*StoredFile, error) {
	dir := filepath.Join(s.root, category.Subdir())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	absPath := filepath.Join(dir, UniqueFilename(suggestedName))

	tmp := absPath + ".part"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		_ = os.Remove(tmp)
		return nil, err
	}
	if err := os.Rename(tmp, absPath); err != nil {
		_ = os.Remove(tmp)
		return nil, err
	}

	return &StoredFile{Path: absPath, PublicRef: s.PublicRef(absPath)}, nil
}

// PublicRef derives the client-facing reference for a stored path:
// "/storage/" plus the path relative to the root, always forward-slashed.
func (s *BlobStore) PublicRef(absPath string) string {
	rel, err := filepath.Rel(s.root, absPath)
	if err != nil {
		rel = filepath.Base(absPath)
	}
	return "/storage/" + filepath.ToSlash(rel)
}

// Remove deletes a blob. A missing file counts as success; any other
// failure is logged and returned so the caller can treat it as non-fatal.
func (s *BlobStore) Remove(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("WARN: failed to delete blob %s: %v", path, err)
		return err
	}
	return nil
}
