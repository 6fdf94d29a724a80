package parsers

import (
	"encoding/xml"
	"fmt"
	"io"
)

// XMLParser reads a document whose root element contains one child
// element per record, with pid, pname, platitude, plongitude, pcategory
// and pratings children. Records are decoded off the token stream one
// element at a time.
type XMLParser struct{}

func NewXMLParser() *XMLParser {
	return &XMLParser{}
}

func (p *XMLParser) Format() Format {
	return FormatXML
}

func (p *XMLParser) Parse(r io.Reader) (RecordIterator, error) {
	dec := xml.NewDecoder(r)

	// Position the decoder just inside the document root so the
	// iterator can walk its children.
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to read document root: %w", err)
		}
		if _, ok := tok.(xml.StartElement); ok {
			return &xmlIterator{dec: dec}, nil
		}
	}
}

// xmlRecord mirrors one record element's children.
type xmlRecord struct {
	ID        string `xml:"pid"`
	Name      string `xml:"pname"`
	Latitude  string `xml:"platitude"`
	Longitude string `xml:"plongitude"`
	Category  string `xml:"pcategory"`
	Ratings   string `xml:"pratings"`
}

type xmlIterator struct {
	dec *xml.Decoder
}

func (it *xmlIterator) Next() (RawRecord, error) {
	for {
		tok, err := it.dec.Token()
		if err != nil {
			// io.EOF only happens here on a truncated document; a
			// well-formed one ends at the root's closing tag below.
			return nil, err
		}

		switch el := tok.(type) {
		case xml.StartElement:
			var rec xmlRecord
			if err := it.dec.DecodeElement(&rec, &el); err != nil {
				return nil, err
			}
			return RawRecord{
				"pid":        rec.ID,
				"pname":      rec.Name,
				"platitude":  rec.Latitude,
				"plongitude": rec.Longitude,
				"pcategory":  rec.Category,
				"pratings":   rec.Ratings,
			}, nil
		case xml.EndElement:
			// Closing tag of the document root.
			return nil, io.EOF
		}
	}
}

// Compile-time interface check
var _ Parser = (*XMLParser)(nil)
