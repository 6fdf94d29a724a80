package entities

import "time"

type ImportStatus string

const (
	ImportStatusRunning   ImportStatus = "running"
	ImportStatusCompleted ImportStatus = "completed"
	ImportStatusFailed    ImportStatus = "failed"
)

// ImportRun records the outcome of one file-import task so that reports
// survive after the task itself has been cleaned up from the queue.
type ImportRun struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	Path      string       `gorm:"index;size:1024" json:"path"`
	Format    string       `gorm:"size:10" json:"format,omitempty"`
	Status    ImportStatus `gorm:"size:20;default:'running'" json:"status"`
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`

	// Errors holds the per-row error list as a JSON array.
	Errors string `gorm:"type:text" json:"errors,omitempty"`

	// ErrorMessage is set when the whole file failed, e.g. the document
	// was not parseable as its declared format.
	ErrorMessage string `gorm:"type:text" json:"error_message,omitempty"`

	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func (ImportRun) TableName() string {
	return "import_runs"
}
