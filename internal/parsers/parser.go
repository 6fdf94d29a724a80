package parsers

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Format identifies one of the supported input grammars.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXML  Format = "xml"
)

// ErrUnsupportedFormat is returned when a file's extension does not map
// to any known parser.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// RawRecord is one record keyed by the source format's native field
// names. Parsers do no semantic validation; missing or malformed fields
// inside a record are the normalizer's concern.
type RawRecord map[string]any

// RecordIterator yields records one at a time so large files never need
// to be held in memory. Next returns io.EOF when the stream is
// exhausted; any other error means the file is structurally invalid and
// the rest of it cannot be read.
type RecordIterator interface {
	Next() (RawRecord, error)
}

// Parser turns one raw file into a stream of records.
//
// Implementations:
//   - CSVParser (csv.go) - header-indexed delimited rows
//   - JSONParser (json.go) - a top-level array of objects
//   - XMLParser (xml.go) - record elements under a document root
//
// Adding a new format means adding one parser here plus one field table
// in the normalize package.
type Parser interface {
	// Format reports which grammar this parser reads.
	Format() Format

	// Parse validates the document structure far enough to start
	// iterating and returns a streaming iterator over its records.
	Parse(r io.Reader) (RecordIterator, error)
}

// ForPath selects a parser by file extension.
func ForPath(path string) (Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return NewCSVParser(), nil
	case ".json":
		return NewJSONParser(), nil
	case ".xml":
		return NewXMLParser(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}
