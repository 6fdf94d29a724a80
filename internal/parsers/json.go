package parsers

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONParser reads a document holding a top-level array of objects with
// fields id, name, coordinates{latitude, longitude}, category, ratings
// and description. Objects are decoded one element at a time off the
// token stream, so the array is never loaded whole.
type JSONParser struct{}

func NewJSONParser() *JSONParser {
	return &JSONParser{}
}

func (p *JSONParser) Format() Format {
	return FormatJSON
}

func (p *JSONParser) Parse(r io.Reader) (RecordIterator, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, fmt.Errorf("expected a top-level array, got %v", tok)
	}

	return &jsonIterator{dec: dec}, nil
}

type jsonIterator struct {
	dec *json.Decoder
}

func (it *jsonIterator) Next() (RawRecord, error) {
	if !it.dec.More() {
		return nil, io.EOF
	}

	var obj map[string]any
	if err := it.dec.Decode(&obj); err != nil {
		return nil, err
	}
	return RawRecord(obj), nil
}

// Compile-time interface check
var _ Parser = (*JSONParser)(nil)
