// Package pois provides database operations for canonical
// point-of-interest records.
//
// All mutation goes through Upsert, keyed on the source-supplied
// external id: re-importing a file updates existing records instead of
// creating duplicates, which makes whole-file retries safe.
package pois

import (
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"github.com/poihub/poi-manager/internal/entities"
)

// Repository handles all point-of-interest database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new pois repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Upsert creates the record on first sight of its external id and
// overwrites it on every later import. The internal id and creation
// timestamp of an existing record are preserved; ratings and the derived
// average are replaced wholesale (last-import-wins). The whole operation
// runs in one transaction so a concurrent writer of the same external id
// never observes a partial write.
func (r *Repository) Upsert(poi *entities.PointOfInterest) (*entities.PointOfInterest, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing entities.PointOfInterest
		result := tx.Where("external_id = ?", poi.ExternalID).First(&existing)

		if result.Error == nil {
			poi.ID = existing.ID
			poi.CreatedAt = existing.CreatedAt
			return tx.Save(poi).Error
		}
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return tx.Create(poi).Error
		}
		return result.Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert poi %q: %w", poi.ExternalID, err)
	}
	return poi, nil
}

// GetByID retrieves a record by its internal id.
func (r *Repository) GetByID(id uint) (*entities.PointOfInterest, error) {
	var poi entities.PointOfInterest
	if err := r.db.First(&poi, id).Error; err != nil {
		return nil, err
	}
	return &poi, nil
}

// GetByExternalID retrieves a record by its source-supplied id.
func (r *Repository) GetByExternalID(externalID string) (*entities.PointOfInterest, error) {
	var poi entities.PointOfInterest
	if err := r.db.Where("external_id = ?", externalID).First(&poi).Error; err != nil {
		return nil, err
	}
	return &poi, nil
}

// Lookup resolves an identifier that may be either an internal or an
// external id. External ids take precedence since they are what source
// files and their operators speak in.
func (r *Repository) Lookup(id string) (*entities.PointOfInterest, error) {
	poi, err := r.GetByExternalID(id)
	if err == nil {
		return poi, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	internalID, parseErr := strconv.ParseUint(id, 10, 64)
	if parseErr != nil {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(uint(internalID))
}

// List returns records, newest-assigned last, optionally filtered by
// category. The filter is matched against the normalized label.
func (r *Repository) List(category string) ([]entities.PointOfInterest, error) {
	query := r.db.Order("id ASC")
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var records []entities.PointOfInterest
	err := query.Find(&records).Error
	return records, err
}

// Search finds records whose name or external id contains the query
// (case-insensitive).
func (r *Repository) Search(query string) ([]entities.PointOfInterest, error) {
	pattern := "%" + query + "%"
	var records []entities.PointOfInterest
	err := r.db.
		Where("LOWER(name) LIKE LOWER(?) OR external_id LIKE ?", pattern, pattern).
		Order("id ASC").
		Find(&records).Error
	return records, err
}

// Count returns the number of stored records.
func (r *Repository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entities.PointOfInterest{}).Count(&count).Error
	return count, err
}
