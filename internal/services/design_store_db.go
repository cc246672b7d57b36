package services

import (
	"errors"
	"time"

	"github.com/textcanvas/backend/internal/models"
	"gorm.io/gorm"
)

// DBDesignStore is the durable DesignStore backed by Postgres. The
// identity column keeps ids strictly increasing and never reused, matching
// the in-memory store's contract across restarts.
type DBDesignStore struct {
	db *gorm.DB
}

func NewDBDesignStore(db *gorm.DB) *DBDesignStore {
	return &DBDesignStore{db: db}
}

var _ DesignStore = (*DBDesignStore)(nil)

func (s *DBDesignStore) Insert(design *models.Design) (*models.Design, error) {
	if err := s.db.Create(design).Error; err != nil {
		return nil, err
	}
	return design, nil
}

func (s *DBDesignStore) Get(id uint64) (*models.Design, error) {
	var design models.Design
	if err := s.db.First(&design, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDesignNotFound
		}
		return nil, err
	}
	return &design, nil
}

func (s *DBDesignStore) List() ([]models.Design, error) {
	var designs []models.Design
	if err := s.db.Order("id ASC").Find(&designs).Error; err != nil {
		return nil, err
	}
	return designs, nil
}

func (s *DBDesignStore) Delete(id uint64) (*models.Design, error) {
	design, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Delete(&models.Design{}, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return design, nil
}

func (s *DBDesignStore) EvictOlderThan(cutoff time.Time) ([]models.Design, int, error) {
	var evicted []models.Design
	if err := s.db.Where("created_at < ?", cutoff).Find(&evicted).Error; err != nil {
		return nil, 0, err
	}
	if len(evicted) > 0 {
		if err := s.db.Delete(&models.Design{}, "created_at < ?", cutoff).Error; err != nil {
			return nil, 0, err
		}
	}
	var remaining int64
	if err := s.db.Model(&models.Design{}).Count(&remaining).Error; err != nil {
		return nil, 0, err
	}
	return evicted, int(remaining), nil
}
