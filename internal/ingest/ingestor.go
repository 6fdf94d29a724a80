// Package ingest drives one file through the full pipeline: pick a
// parser by extension, stream records, normalize each one and upsert the
// result into the store.
package ingest

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/poihub/poi-manager/internal/entities"
	"github.com/poihub/poi-manager/internal/normalize"
	"github.com/poihub/poi-manager/internal/parsers"
)

// RowError names one row that could not be imported and why. Rows are
// 1-based, counting data rows in source order.
type RowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// RowWarning reports a recoverable defect in a row that was still
// imported, e.g. a dropped non-numeric rating entry.
type RowWarning struct {
	Row    int    `json:"row"`
	Detail string `json:"detail"`
}

// Report is the outcome of one file ingestion. A row that could not be
// imported always appears in Errors; rows are never silently dropped.
type Report struct {
	Path      string       `json:"path"`
	Format    string       `json:"format,omitempty"`
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
	Errors    []RowError   `json:"errors,omitempty"`
	Warnings  []RowWarning `json:"warnings,omitempty"`
}

// Store persists normalized records. Implemented by pois.Repository.
type Store interface {
	Upsert(poi *entities.PointOfInterest) (*entities.PointOfInterest, error)
}

// Ingestor runs whole files through parse, normalize and upsert.
type Ingestor struct {
	store Store
}

// NewIngestor creates an ingestor writing to the given store.
func NewIngestor(store Store) *Ingestor {
	return &Ingestor{store: store}
}

// IngestFile imports one file and reports per-row counts and errors.
//
// Row-level failures (normalization, store write) are recorded in the
// report and skipped; they never abort the file. A file-level failure
// (unreadable path, unsupported extension, structurally invalid
// document) returns a non-nil error along with the partial report.
// Rows are processed in source order, so a later row with a duplicate
// external id deterministically overrides an earlier one.
func (i *Ingestor) IngestFile(path string) (*Report, error) {
	report := &Report{Path: path}

	parser, err := parsers.ForPath(path)
	if err != nil {
		return report, err
	}
	report.Format = string(parser.Format())

	file, err := os.Open(path)
	if err != nil {
		return report, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	records, err := parser.Parse(file)
	if err != nil {
		return report, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	row := 0
	for {
		rec, err := records.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return report, fmt.Errorf("failed to parse %s after row %d: %w", path, row, err)
		}
		row++

		poi, warnings, err := normalize.Normalize(rec, parser.Format())
		for _, w := range warnings {
			report.Warnings = append(report.Warnings, RowWarning{Row: row, Detail: w.Detail})
		}
		if err != nil {
			report.Failed++
			report.Errors = append(report.Errors, RowError{Row: row, Reason: err.Error()})
			continue
		}

		if _, err := i.store.Upsert(poi); err != nil {
			report.Failed++
			report.Errors = append(report.Errors, RowError{Row: row, Reason: fmt.Sprintf("store write failed: %v", err)})
			continue
		}
		report.Succeeded++
	}

	log.Printf("Ingested %s (%s): %d succeeded, %d failed", path, report.Format, report.Succeeded, report.Failed)
	return report, nil
}
