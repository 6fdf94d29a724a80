package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSVParser reads delimited files whose first line names the columns
// (poi_id, poi_name, poi_latitude, poi_longitude, poi_category,
// poi_ratings). Column order is irrelevant; lookup goes through the
// header index.
type CSVParser struct{}

func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

func (p *CSVParser) Format() Format {
	return FormatCSV
}

func (p *CSVParser) Parse(r io.Reader) (RecordIterator, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Allow variable number of fields

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}

	return &csvIterator{reader: reader, index: index}, nil
}

type csvIterator struct {
	reader *csv.Reader
	index  map[string]int
}

func (it *csvIterator) Next() (RawRecord, error) {
	record, err := it.reader.Read()
	if err != nil {
		// io.EOF for a clean end, anything else is structural.
		return nil, err
	}

	rec := make(RawRecord, len(it.index))
	for name, idx := range it.index {
		if idx < len(record) {
			rec[name] = strings.TrimSpace(record[idx])
		}
	}
	return rec, nil
}

// Compile-time interface check
var _ Parser = (*CSVParser)(nil)
