package tasks

import (
	"context"
	"fmt"
	"log"

	"github.com/mikestefanello/backlite"

	"github.com/poihub/poi-manager/internal/entities"
	"github.com/poihub/poi-manager/internal/ingest"
)

// ImportFileTask ingests a single PoI file. One task is queued per
// submitted path; a retry re-runs the whole file, which is safe because
// ingestion is upsert-based.
type ImportFileTask struct {
	Path string `json:"path"`
}

// importQueueConfig is the tuning the import queue runs with. backlite
// reads queue configuration from the task type, not the client, so
// NewImportFileQueue records the active Config here before the queue is
// built. Set once at startup, before workers run.
var importQueueConfig = DefaultConfig()

// Config returns the queue configuration for file-import tasks.
func (t ImportFileTask) Config() backlite.QueueConfig {
	cfg := importQueueConfig
	return backlite.QueueConfig{
		Name:        "import_file",
		MaxAttempts: cfg.MaxAttempts,
		Backoff:     cfg.RetryBackoff,
		Timeout:     cfg.TaskTimeout,
		Retention: &backlite.Retention{
			Duration:   cfg.RetentionDuration,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// FileIngestor runs one file end to end. Implemented by
// ingest.Ingestor.
type FileIngestor interface {
	IngestFile(path string) (*ingest.Report, error)
}

// RunRecorder persists import outcomes. Implemented by
// imports.Repository; may be nil when run history is not wanted.
type RunRecorder interface {
	Start(path string) (*entities.ImportRun, error)
	Complete(run *entities.ImportRun, report *ingest.Report) error
	Fail(run *entities.ImportRun, report *ingest.Report, cause error) error
}

// ImportFileProcessor creates a processor function for ImportFileTask.
// Row-level errors are part of a successful run; only file-level
// failures make the task fail and retry.
func ImportFileProcessor(ingestor FileIngestor, runs RunRecorder) backlite.QueueProcessor[ImportFileTask] {
	return func(ctx context.Context, task ImportFileTask) error {
		if ingestor == nil {
			return fmt.Errorf("ingestor not configured")
		}

		var run *entities.ImportRun
		if runs != nil {
			var err error
			if run, err = runs.Start(task.Path); err != nil {
				log.Printf("[TASK] Could not record import start for %s: %v", task.Path, err)
			}
		}

		report, err := ingestor.IngestFile(task.Path)
		if err != nil {
			if runs != nil && run != nil {
				if recErr := runs.Fail(run, report, err); recErr != nil {
					log.Printf("[TASK] Could not record import failure for %s: %v", task.Path, recErr)
				}
			}
			return fmt.Errorf("import %s: %w", task.Path, err)
		}

		if runs != nil && run != nil {
			if recErr := runs.Complete(run, report); recErr != nil {
				log.Printf("[TASK] Could not record import completion for %s: %v", task.Path, recErr)
			}
		}

		if report.Failed > 0 {
			log.Printf("[TASK] Imported %s: %d succeeded, %d failed", task.Path, report.Succeeded, report.Failed)
		} else {
			log.Printf("[TASK] Imported %s: %d records", task.Path, report.Succeeded)
		}
		return nil
	}
}

// NewImportFileQueue creates a backlite queue for file-import tasks
// running with the given tuning.
func NewImportFileQueue(ingestor FileIngestor, runs RunRecorder, cfg Config) backlite.Queue {
	importQueueConfig = cfg
	return backlite.NewQueue(ImportFileProcessor(ingestor, runs))
}
