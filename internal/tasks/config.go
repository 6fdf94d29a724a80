package tasks

import "time"

// Config holds tuning for the durable task queue.
type Config struct {
	// Workers is the number of concurrent import workers. Default: 4
	Workers int

	// MaxAttempts is how many times a failed file import is retried.
	// Whole-file retries are safe because ingestion is upsert-based.
	// Default: 3
	MaxAttempts int

	// RetryBackoff is the delay before a failed task runs again. Default: 30s
	RetryBackoff time.Duration

	// TaskTimeout bounds one file import; a task past it is marked
	// failed and falls under the normal retry policy. Default: 10m
	TaskTimeout time.Duration

	// ReleaseAfter is when tasks stuck on a dead worker are released
	// back to the queue. Default: 15m
	ReleaseAfter time.Duration

	// CleanupInterval is how often completed tasks are cleaned up. Default: 1h
	CleanupInterval time.Duration

	// RetentionDuration is how long completed tasks are kept. Default: 24h
	RetentionDuration time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Workers:           4,
		MaxAttempts:       3,
		RetryBackoff:      30 * time.Second,
		TaskTimeout:       10 * time.Minute,
		ReleaseAfter:      15 * time.Minute,
		CleanupInterval:   1 * time.Hour,
		RetentionDuration: 24 * time.Hour,
	}
}
