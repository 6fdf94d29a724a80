// Package scheduler periodically scans a drop directory and submits new
// or changed PoI files to the import queue.
package scheduler

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/poihub/poi-manager/internal/parsers"
	"github.com/poihub/poi-manager/internal/tasks"
)

// Submitter enqueues one file-import task. Implemented by
// tasks.Dispatcher.
type Submitter interface {
	Submit(path string) (tasks.Handle, error)
}

// ScanScheduler watches a drop directory on a cron schedule. Files with
// a supported extension are submitted once per modification: re-dropping
// an updated file re-imports it, which is safe because ingestion is
// upsert-based.
type ScanScheduler struct {
	dispatcher Submitter
	dir        string
	schedule   string

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.Mutex
	isRunning bool
	submitted map[string]time.Time // path -> mtime at last submission
}

// NewScanScheduler creates a scheduler submitting to the given
// dispatcher.
func NewScanScheduler(dispatcher Submitter, dir, schedule string) *ScanScheduler {
	return &ScanScheduler{
		dispatcher: dispatcher,
		dir:        dir,
		schedule:   schedule,
		cron:       cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
		submitted:  make(map[string]time.Time),
	}
}

// Start begins the periodic scan.
func (s *ScanScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}
	if s.dir == "" {
		return fmt.Errorf("scan directory not configured")
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.RunScan()
	})
	if err != nil {
		return fmt.Errorf("invalid scan schedule %q: %w", s.schedule, err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true
	log.Printf("Drop-directory scan started: %s (schedule %q)", s.dir, s.schedule)
	return nil
}

// Stop halts scanning and waits for a scan in flight to finish.
func (s *ScanScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.isRunning = false
	log.Printf("Drop-directory scan stopped")
}

// NextRunTime returns when the next scan will occur, or nil if the
// scheduler is not running.
func (s *ScanScheduler) NextRunTime() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}
	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

// RunScan performs one scan pass, submitting every supported file whose
// modification time is newer than its last submission.
func (s *ScanScheduler) RunScan() {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		log.Printf("Drop-directory scan: failed to read %s: %v", s.dir, err)
		return
	}

	var submitted int
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		path := filepath.Join(s.dir, entry.Name())
		if _, err := parsers.ForPath(path); err != nil {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			log.Printf("Drop-directory scan: failed to stat %s: %v", path, err)
			continue
		}

		s.mu.Lock()
		last, seen := s.submitted[path]
		s.mu.Unlock()
		if seen && !info.ModTime().After(last) {
			continue
		}

		handle, err := s.dispatcher.Submit(path)
		if err != nil {
			log.Printf("Drop-directory scan: failed to submit %s: %v", path, err)
			continue
		}

		s.mu.Lock()
		s.submitted[path] = info.ModTime()
		s.mu.Unlock()
		submitted++
		log.Printf("Drop-directory scan: submitted %s (task %s)", path, handle.TaskID)
	}

	if submitted > 0 {
		log.Printf("Drop-directory scan: %d file(s) submitted from %s", submitted, s.dir)
	}
}
