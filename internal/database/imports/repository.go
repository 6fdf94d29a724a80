// Package imports persists the outcome of file-import runs so reports
// remain queryable after the queue has cleaned the task up.
package imports

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/poihub/poi-manager/internal/entities"
	"github.com/poihub/poi-manager/internal/ingest"
)

// Repository handles import-run database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new import-run repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Start records that an import of the given path has begun.
func (r *Repository) Start(path string) (*entities.ImportRun, error) {
	run := &entities.ImportRun{
		Path:      path,
		Status:    entities.ImportStatusRunning,
		StartedAt: time.Now(),
	}
	if err := r.db.Create(run).Error; err != nil {
		return nil, fmt.Errorf("failed to record import start for %s: %w", path, err)
	}
	return run, nil
}

// Complete marks a run as finished and stores its report.
func (r *Repository) Complete(run *entities.ImportRun, report *ingest.Report) error {
	now := time.Now()
	run.Status = entities.ImportStatusCompleted
	run.CompletedAt = &now
	applyReport(run, report)
	return r.db.Save(run).Error
}

// Fail marks a run as fatally failed, keeping whatever partial report
// was produced before the failure.
func (r *Repository) Fail(run *entities.ImportRun, report *ingest.Report, cause error) error {
	now := time.Now()
	run.Status = entities.ImportStatusFailed
	run.CompletedAt = &now
	if cause != nil {
		run.ErrorMessage = cause.Error()
	}
	applyReport(run, report)
	return r.db.Save(run).Error
}

// GetByID retrieves one run.
func (r *Repository) GetByID(id uint) (*entities.ImportRun, error) {
	var run entities.ImportRun
	if err := r.db.First(&run, id).Error; err != nil {
		return nil, err
	}
	return &run, nil
}

// Recent returns the most recently started runs, newest first.
func (r *Repository) Recent(limit int) ([]entities.ImportRun, error) {
	var runs []entities.ImportRun
	err := r.db.Order("started_at DESC").Limit(limit).Find(&runs).Error
	return runs, err
}

func applyReport(run *entities.ImportRun, report *ingest.Report) {
	if report == nil {
		return
	}
	run.Format = report.Format
	run.Succeeded = report.Succeeded
	run.Failed = report.Failed
	if len(report.Errors) > 0 {
		if data, err := json.Marshal(report.Errors); err == nil {
			run.Errors = string(data)
		}
	}
}
