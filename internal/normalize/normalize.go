// Package normalize converts raw per-format records into the canonical
// PointOfInterest. The per-format field tables here are the only place
// in the codebase where a format's native field names are known.
package normalize

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/poihub/poi-manager/internal/entities"
	"github.com/poihub/poi-manager/internal/parsers"
)

// Reason classifies why a row could not be normalized, or why part of it
// was dropped.
type Reason string

const (
	ReasonMissingField  Reason = "missing_field"
	ReasonInvalidGeo    Reason = "invalid_geo"
	ReasonInvalidRating Reason = "invalid_rating"
)

// Error is a row-level normalization failure. Rows that produce one are
// recorded and skipped; they never abort a file.
type Error struct {
	Reason Reason
	Field  string
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Reason, e.Field, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Field)
}

// Warning reports a recoverable defect, e.g. a non-numeric rating entry
// that was dropped without failing the row.
type Warning struct {
	Reason Reason
	Detail string
}

// fieldTable maps one format's native field names onto the canonical
// record. Nested fields use a dotted path. An empty name means the
// format does not carry that field.
type fieldTable struct {
	ExternalID  string
	Name        string
	Category    string
	Latitude    string
	Longitude   string
	Ratings     string
	Description string
}

var tables = map[parsers.Format]fieldTable{
	parsers.FormatCSV: {
		ExternalID: "poi_id",
		Name:       "poi_name",
		Category:   "poi_category",
		Latitude:   "poi_latitude",
		Longitude:  "poi_longitude",
		Ratings:    "poi_ratings",
	},
	parsers.FormatJSON: {
		ExternalID:  "id",
		Name:        "name",
		Category:    "category",
		Latitude:    "coordinates.latitude",
		Longitude:   "coordinates.longitude",
		Ratings:     "ratings",
		Description: "description",
	},
	parsers.FormatXML: {
		ExternalID: "pid",
		Name:       "pname",
		Category:   "pcategory",
		Latitude:   "platitude",
		Longitude:  "plongitude",
		Ratings:    "pratings",
	},
}

// Normalize converts a raw record into the canonical PointOfInterest.
// It is a pure function: no side effects, same input same output.
func Normalize(rec parsers.RawRecord, format parsers.Format) (*entities.PointOfInterest, []Warning, error) {
	table, ok := tables[format]
	if !ok {
		return nil, nil, fmt.Errorf("no field table for format %q", format)
	}

	externalID := strings.TrimSpace(stringValue(lookupValue(rec, table.ExternalID)))
	if externalID == "" {
		return nil, nil, &Error{Reason: ReasonMissingField, Field: table.ExternalID}
	}

	name := strings.TrimSpace(stringValue(lookupValue(rec, table.Name)))
	if name == "" {
		return nil, nil, &Error{Reason: ReasonMissingField, Field: table.Name}
	}

	lat, lon, err := normalizeGeo(rec, table)
	if err != nil {
		return nil, nil, err
	}

	ratings, warnings := normalizeRatings(lookupValue(rec, table.Ratings))

	poi := &entities.PointOfInterest{
		ExternalID:    externalID,
		Name:          name,
		Category:      NormalizeCategory(stringValue(lookupValue(rec, table.Category))),
		Latitude:      lat,
		Longitude:     lon,
		Ratings:       ratings,
		AverageRating: ratings.Average(),
		Description:   strings.TrimSpace(stringValue(lookupValue(rec, table.Description))),
	}
	return poi, warnings, nil
}

// NormalizeCategory trims and lowercases a category label so the filter
// axis stays consistent across source files.
func NormalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}

// lookupValue resolves a possibly dotted path inside a raw record.
func lookupValue(rec parsers.RawRecord, key string) any {
	if key == "" {
		return nil
	}

	var cur any = map[string]any(rec)
	for _, part := range strings.Split(key, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur, ok = m[part]
		if !ok {
			return nil
		}
	}
	return cur
}

// stringValue renders a raw value as text without losing numeric
// precision for JSON numbers.
func stringValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", val)
	}
}

func floatValue(v any) (float64, error) {
	switch val := v.(type) {
	case json.Number:
		return val.Float64()
	case float64:
		return val, nil
	case int:
		return float64(val), nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(val), 64)
	default:
		return 0, fmt.Errorf("not a number: %v", v)
	}
}

// normalizeGeo enforces the coordinate pairing rule: both present and in
// range, or both absent.
func normalizeGeo(rec parsers.RawRecord, table fieldTable) (*float64, *float64, error) {
	latRaw := strings.TrimSpace(stringValue(lookupValue(rec, table.Latitude)))
	lonRaw := strings.TrimSpace(stringValue(lookupValue(rec, table.Longitude)))

	if latRaw == "" && lonRaw == "" {
		return nil, nil, nil
	}
	if latRaw == "" || lonRaw == "" {
		return nil, nil, &Error{Reason: ReasonInvalidGeo, Field: "coordinates", Detail: "latitude and longitude must be present together"}
	}

	// ParseFloat accepts "NaN" and "Inf", and NaN slips past range
	// comparisons; reject both explicitly.
	lat, err := strconv.ParseFloat(latRaw, 64)
	if err != nil || math.IsNaN(lat) || math.IsInf(lat, 0) {
		return nil, nil, &Error{Reason: ReasonInvalidGeo, Field: table.Latitude, Detail: fmt.Sprintf("not a finite number: %q", latRaw)}
	}
	lon, err := strconv.ParseFloat(lonRaw, 64)
	if err != nil || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return nil, nil, &Error{Reason: ReasonInvalidGeo, Field: table.Longitude, Detail: fmt.Sprintf("not a finite number: %q", lonRaw)}
	}

	if lat < -90 || lat > 90 {
		return nil, nil, &Error{Reason: ReasonInvalidGeo, Field: table.Latitude, Detail: fmt.Sprintf("out of range: %v", lat)}
	}
	if lon < -180 || lon > 180 {
		return nil, nil, &Error{Reason: ReasonInvalidGeo, Field: table.Longitude, Detail: fmt.Sprintf("out of range: %v", lon)}
	}

	return &lat, &lon, nil
}

// normalizeRatings coerces the raw ratings value into a numeric list.
// Non-numeric entries are dropped with a warning, never a row failure.
// Accepted shapes: a sequence (JSON), a delimiter-separated string with
// optional {...} braces (CSV, XML), or a single number.
func normalizeRatings(raw any) (entities.RatingList, []Warning) {
	var ratings entities.RatingList
	var warnings []Warning

	appendEntry := func(entry any) {
		v, err := floatValue(entry)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			warnings = append(warnings, Warning{
				Reason: ReasonInvalidRating,
				Detail: fmt.Sprintf("dropped non-numeric rating %q", stringValue(entry)),
			})
			return
		}
		ratings = append(ratings, v)
	}

	switch val := raw.(type) {
	case nil:
	case []any:
		for _, entry := range val {
			appendEntry(entry)
		}
	case string:
		trimmed := strings.TrimSpace(val)
		trimmed = strings.TrimPrefix(trimmed, "{")
		trimmed = strings.TrimSuffix(trimmed, "}")
		if trimmed == "" {
			break
		}
		for _, entry := range strings.Split(trimmed, ",") {
			appendEntry(strings.TrimSpace(entry))
		}
	default:
		appendEntry(val)
	}

	return ratings, warnings
}
