package services

import (
	"sync"
	"time"

	"github.com/textcanvas/backend/internal/models"
)

// DesignStore is the record store behind the lifecycle coordinator.
// Implementations must assign strictly increasing ids that are never
// reused, even after deletes.
type DesignStore interface {
	// Insert assigns the id and timestamps and stores the record.
	Insert(design *models.Design) (*models.Design, error)
	// Get returns the record or ErrDesignNotFound.
	Get(id uint64) (*models.Design, error)
	// List returns all records in insertion order.
	List() ([]models.Design, error)
	// Delete removes and returns the record so the caller can clean up
	// its owned asset, or returns ErrDesignNotFound.
	Delete(id uint64) (*models.Design, error)
	// EvictOlderThan removes every record created before the cutoff and
	// returns the evicted records plus the surviving count.
	EvictOlderThan(cutoff time.Time) (evicted []models.Design, remaining int, err error)
}

// MemoryDesignStore keeps records in process memory: an ordered slice plus
// a monotonic next-id counter. Nothing survives a restart; the counter
// resets to 1. One mutex makes each operation a single atomic step, so
// concurrent requests never observe a torn record.
type MemoryDesignStore struct {
	mu      sync.Mutex
	designs []models.Design
	nextID  uint64
}

func NewMemoryDesignStore() *MemoryDesignStore {
	return &MemoryDesignStore{nextID: 1}
}

var _ DesignStore = (*MemoryDesignStore)(nil)

func (s *MemoryDesignStore) Insert(design *models.Design) (*models.Design, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	design.ID = s.nextID
	s.nextID++
	design.CreatedAt = now
	design.UpdatedAt = now

	s.designs = append(s.designs, *design)
	stored := s.designs[len(s.designs)-1]
	return &stored, nil
}

func (s *MemoryDesignStore) Get(id uint64) (*models.Design, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.designs {
		if s.designs[i].ID == id {
			d := s.designs[i]
			return &d, nil
		}
	}
	return nil, ErrDesignNotFound
}

func (s *MemoryDesignStore) List() ([]models.Design, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Design, len(s.designs))
	copy(out, s.designs)
	return out, nil
}

func (s *MemoryDesignStore) Delete(id uint64) (*models.Design, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.designs {
		if s.designs[i].ID == id {
			d := s.designs[i]
			s.designs = append(s.designs[:i], s.designs[i+1:]...)
			return &d, nil
		}
	}
	return nil, ErrDesignNotFound
}

func (s *MemoryDesignStore) EvictOlderThan(cutoff time.Time) ([]models.Design, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var evicted, surviving []models.Design
	for _, d := range s.designs {
		if d.CreatedAt.Before(cutoff) {
			evicted = append(evicted, d)
		} else {
			surviving = append(surviving, d)
		}
	}
	s.designs = surviving
	return evicted, len(surviving), nil
}
