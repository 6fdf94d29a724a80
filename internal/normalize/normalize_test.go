package normalize

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poihub/poi-manager/internal/parsers"
)

func TestNormalize_CSVRecord(t *testing.T) {
	rec := parsers.RawRecord{
		"poi_id":        "1001",
		"poi_name":      "Golden Gate Park",
		"poi_latitude":  "37.7694",
		"poi_longitude": "-122.4862",
		"poi_category":  "Park",
		"poi_ratings":   "{3.0,4.5,5.0}",
	}

	poi, warnings, err := Normalize(rec, parsers.FormatCSV)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, "1001", poi.ExternalID)
	assert.Equal(t, "Golden Gate Park", poi.Name)
	assert.Equal(t, "park", poi.Category)
	require.NotNil(t, poi.Latitude)
	require.NotNil(t, poi.Longitude)
	assert.InDelta(t, 37.7694, *poi.Latitude, 1e-9)
	assert.InDelta(t, -122.4862, *poi.Longitude, 1e-9)
	assert.Equal(t, []float64{3.0, 4.5, 5.0}, []float64(poi.Ratings))
	require.NotNil(t, poi.AverageRating)
	assert.InDelta(t, 4.1666666, *poi.AverageRating, 1e-6)
}

func TestNormalize_CrossFormatEquivalence(t *testing.T) {
	csvRec := parsers.RawRecord{
		"poi_id":        "42",
		"poi_name":      "Ocean Beach",
		"poi_latitude":  "37.7594",
		"poi_longitude": "-122.5107",
		"poi_category":  "Beach",
		"poi_ratings":   "{4,5}",
	}
	jsonRec := parsers.RawRecord{
		"id":   json.Number("42"),
		"name": "Ocean Beach",
		"coordinates": map[string]any{
			"latitude":  json.Number("37.7594"),
			"longitude": json.Number("-122.5107"),
		},
		"category": "Beach",
		"ratings":  []any{json.Number("4"), json.Number("5")},
	}
	xmlRec := parsers.RawRecord{
		"pid":        "42",
		"pname":      "Ocean Beach",
		"platitude":  "37.7594",
		"plongitude": "-122.5107",
		"pcategory":  "Beach",
		"pratings":   "4,5",
	}

	fromCSV, _, err := Normalize(csvRec, parsers.FormatCSV)
	require.NoError(t, err)
	fromJSON, _, err := Normalize(jsonRec, parsers.FormatJSON)
	require.NoError(t, err)
	fromXML, _, err := Normalize(xmlRec, parsers.FormatXML)
	require.NoError(t, err)

	assert.Equal(t, fromCSV, fromJSON)
	assert.Equal(t, fromCSV, fromXML)
}

func TestNormalize_MissingName(t *testing.T) {
	rec := parsers.RawRecord{
		"poi_id":   "5",
		"poi_name": "   ",
	}

	_, _, err := Normalize(rec, parsers.FormatCSV)
	require.Error(t, err)

	var normErr *Error
	require.True(t, errors.As(err, &normErr))
	assert.Equal(t, ReasonMissingField, normErr.Reason)
	assert.Equal(t, "poi_name", normErr.Field)
}

func TestNormalize_MissingExternalID(t *testing.T) {
	rec := parsers.RawRecord{
		"poi_name": "Nameless Place",
	}

	_, _, err := Normalize(rec, parsers.FormatCSV)

	var normErr *Error
	require.True(t, errors.As(err, &normErr))
	assert.Equal(t, ReasonMissingField, normErr.Reason)
}

func TestNormalize_LatitudeOutOfRange(t *testing.T) {
	rec := parsers.RawRecord{
		"poi_id":        "6",
		"poi_name":      "Nowhere",
		"poi_latitude":  "95",
		"poi_longitude": "10",
	}

	_, _, err := Normalize(rec, parsers.FormatCSV)

	var normErr *Error
	require.True(t, errors.As(err, &normErr))
	assert.Equal(t, ReasonInvalidGeo, normErr.Reason)
}

func TestNormalize_LongitudeWithoutLatitude(t *testing.T) {
	rec := parsers.RawRecord{
		"poi_id":        "7",
		"poi_name":      "Half a Coordinate",
		"poi_longitude": "10",
	}

	_, _, err := Normalize(rec, parsers.FormatCSV)

	var normErr *Error
	require.True(t, errors.As(err, &normErr))
	assert.Equal(t, ReasonInvalidGeo, normErr.Reason)
}

func TestNormalize_CoordinatesOptionalTogether(t *testing.T) {
	rec := parsers.RawRecord{
		"poi_id":   "8",
		"poi_name": "No Location",
	}

	poi, _, err := Normalize(rec, parsers.FormatCSV)
	require.NoError(t, err)
	assert.Nil(t, poi.Latitude)
	assert.Nil(t, poi.Longitude)
}

func TestNormalize_NonFiniteCoordinatesRejected(t *testing.T) {
	for _, coord := range []string{"NaN", "Inf", "-Inf"} {
		rec := parsers.RawRecord{
			"poi_id":        "15",
			"poi_name":      "Nowhere Finite",
			"poi_latitude":  coord,
			"poi_longitude": "10",
		}

		_, _, err := Normalize(rec, parsers.FormatCSV)

		var normErr *Error
		require.True(t, errors.As(err, &normErr), "latitude %q", coord)
		assert.Equal(t, ReasonInvalidGeo, normErr.Reason)

		rec = parsers.RawRecord{
			"poi_id":        "16",
			"poi_name":      "Nowhere Finite",
			"poi_latitude":  "10",
			"poi_longitude": coord,
		}

		_, _, err = Normalize(rec, parsers.FormatCSV)
		require.True(t, errors.As(err, &normErr), "longitude %q", coord)
		assert.Equal(t, ReasonInvalidGeo, normErr.Reason)
	}
}

func TestNormalize_NonFiniteRatingDropped(t *testing.T) {
	rec := parsers.RawRecord{
		"poi_id":      "17",
		"poi_name":    "Oddly Rated",
		"poi_ratings": "{NaN,4,Inf}",
	}

	poi, warnings, err := Normalize(rec, parsers.FormatCSV)
	require.NoError(t, err)
	assert.Len(t, warnings, 2)
	assert.Equal(t, []float64{4}, []float64(poi.Ratings))
}

func TestNormalize_UnparseableCoordinate(t *testing.T) {
	rec := parsers.RawRecord{
		"poi_id":        "9",
		"poi_name":      "Bad Geo",
		"poi_latitude":  "north-ish",
		"poi_longitude": "10",
	}

	_, _, err := Normalize(rec, parsers.FormatCSV)

	var normErr *Error
	require.True(t, errors.As(err, &normErr))
	assert.Equal(t, ReasonInvalidGeo, normErr.Reason)
}

func TestNormalize_EmptyRatingsYieldNilAverage(t *testing.T) {
	rec := parsers.RawRecord{
		"poi_id":      "10",
		"poi_name":    "Unrated",
		"poi_ratings": "",
	}

	poi, warnings, err := Normalize(rec, parsers.FormatCSV)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Empty(t, poi.Ratings)
	assert.Nil(t, poi.AverageRating)
}

func TestNormalize_ZeroRatingIsNotNil(t *testing.T) {
	rec := parsers.RawRecord{
		"poi_id":      "11",
		"poi_name":    "Rated Zero",
		"poi_ratings": "{0}",
	}

	poi, _, err := Normalize(rec, parsers.FormatCSV)
	require.NoError(t, err)
	require.NotNil(t, poi.AverageRating)
	assert.Equal(t, 0.0, *poi.AverageRating)
}

func TestNormalize_NonNumericRatingDroppedWithWarning(t *testing.T) {
	rec := parsers.RawRecord{
		"poi_id":      "12",
		"poi_name":    "Partially Rated",
		"poi_ratings": "{3,abc,5}",
	}

	poi, warnings, err := Normalize(rec, parsers.FormatCSV)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, ReasonInvalidRating, warnings[0].Reason)
	assert.Equal(t, []float64{3, 5}, []float64(poi.Ratings))
	require.NotNil(t, poi.AverageRating)
	assert.Equal(t, 4.0, *poi.AverageRating)
}

func TestNormalize_SingleNumericRating(t *testing.T) {
	rec := parsers.RawRecord{
		"poi_id":      "13",
		"poi_name":    "Once Rated",
		"poi_ratings": "4.5",
	}

	poi, _, err := Normalize(rec, parsers.FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, []float64{4.5}, []float64(poi.Ratings))
}

func TestNormalize_JSONDescriptionCarriedOver(t *testing.T) {
	rec := parsers.RawRecord{
		"id":          json.Number("14"),
		"name":        "Described",
		"description": "  A place with a description.  ",
	}

	poi, _, err := Normalize(rec, parsers.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "A place with a description.", poi.Description)
}

func TestNormalize_UnknownFormat(t *testing.T) {
	_, _, err := Normalize(parsers.RawRecord{}, parsers.Format("parquet"))
	require.Error(t, err)
}

func TestNormalizeCategory(t *testing.T) {
	assert.Equal(t, "park", NormalizeCategory("  Park "))
	assert.Equal(t, "historic site", NormalizeCategory("Historic Site"))
	assert.Equal(t, "", NormalizeCategory("   "))
}
