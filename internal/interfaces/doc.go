// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - ingest.Store: Persist normalized records (internal/ingest/ingestor.go)
//   - http.PoIReader: Read-only record access (internal/http/pois.go)
//   - http.RunReader: Read-only import-run access (internal/http/import.go)
//   - tasks.RunRecorder: Persist import outcomes (internal/tasks/import_file.go)
//
// ## Pipeline Interfaces
//
//   - parsers.Parser: Produce raw records from one source format (internal/parsers/parser.go)
//   - parsers.RecordIterator: Stream records one at a time (internal/parsers/parser.go)
//   - tasks.FileIngestor: Run one file end to end (internal/tasks/import_file.go)
//   - scheduler.Submitter: Enqueue file-import tasks (internal/scheduler/scan.go)
//
// # Adding a New Source Format
//
// To add support for a new PoI file format:
//
//  1. Create a parser in internal/parsers/ that streams records as
//     RawRecord maps keyed by the format's native field names
//
//     var _ Parser = (*KMLParser)(nil)
//
//  2. Register its extension in parsers.ForPath
//
//  3. Add a field table for it in internal/normalize/normalize.go
//     mapping its native field names onto the canonical record
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for the cross-package checks.
package interfaces
