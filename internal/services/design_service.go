package services

import (
	"log"
	"strings"
	"time"

	"github.com/textcanvas/backend/internal/models"
)

// DesignService is the only component that touches both the record store
// and the blob store, keeping the two consistent: a record never references
// a blob that was not written, and deleting a record triggers a best-effort
// delete of its blob.
type DesignService struct {
	store  DesignStore
	ingest *IngestService
	blobs  *BlobStore
}

func NewDesignService(store DesignStore, ingest *IngestService, blobs *BlobStore) *DesignService {
	return &DesignService{store: store, ingest: ingest, blobs: blobs}
}

// SaveDesign validates the payload, ingests the rendered final image into
// the results category, and inserts a record referencing it. Validation
// failures happen before any disk write.
func (s *DesignService) SaveDesign(in models.DesignInput) (*models.Design, error) {
	if strings.TrimSpace(in.Text) == "" || in.FinalImage == "" {
		return nil, newValidationError(KindIncompleteData, "text and finalImage are required")
	}
	if !strings.HasPrefix(in.FinalImage, "data:image/") {
		return nil, newValidationError(KindInvalidImageFormat, "finalImage must be a data:image/... URL")
	}

	asset, err := s.ingest.IngestDataURL(in.FinalImage, CategoryResult)
	if err != nil {
		return nil, err
	}

	design, err := s.store.Insert(models.NewDesign(in, asset))
	if err != nil {
		// Do not leave a blob behind that no record references.
		_ = s.blobs.Remove(asset.Path)
		return nil, &StorageError{Op: "insert design", Err: err}
	}
	return design, nil
}

// GetDesign returns one record by id.
func (s *DesignService) GetDesign(id uint64) (*models.Design, error) {
	return s.store.Get(id)
}

// ListDesigns returns all records in insertion order.
func (s *DesignService) ListDesigns() ([]models.Design, error) {
	return s.store.List()
}

// DeleteDesign removes the record first, then deletes its result blob.
// A failed blob delete is logged, never escalated: the record is already
// gone and the orphaned blob is an accepted leak.
func (s *DesignService) DeleteDesign(id uint64) error {
	design, err := s.store.Delete(id)
	if err != nil {
		return err
	}
	if err := s.blobs.Remove(design.ImagePath); err != nil {
		log.Printf("WARN: design %d deleted but blob cleanup failed: %v", id, err)
	}
	return nil
}

// Cleanup evicts every record older than the given number of days and
// best-effort deletes their blobs. Individual blob failures do not abort
// the sweep.
func (s *DesignService) Cleanup(days int) (deleted int, remaining int, err error) {
	cutoff := time.Now().AddDate(0, 0, -days)
	evicted, remaining, err := s.store.EvictOlderThan(cutoff)
	if err != nil {
		return 0, 0, err
	}
	for _, design := range evicted {
		if err := s.blobs.Remove(design.ImagePath); err != nil {
			log.Printf("WARN: cleanup: blob delete failed for design %d: %v", design.ID, err)
		}
	}
	return len(evicted), remaining, nil
}
