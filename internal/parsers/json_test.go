package parsers

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONParser_Parse(t *testing.T) {
	input := `[
		{
			"id": 2001,
			"name": "Alcatraz Island",
			"coordinates": {"latitude": 37.8267, "longitude": -122.4233},
			"category": "Historic Site",
			"ratings": [4, 5, 4.5],
			"description": "Former federal prison in the bay."
		},
		{
			"id": "2002",
			"name": "Twin Peaks",
			"coordinates": {"latitude": 37.7544, "longitude": -122.4477},
			"category": "viewpoint",
			"ratings": []
		}
	]`

	it, err := NewJSONParser().Parse(strings.NewReader(input))
	require.NoError(t, err)

	records := readAll(t, it)
	require.Len(t, records, 2)

	assert.Equal(t, json.Number("2001"), records[0]["id"])
	assert.Equal(t, "Alcatraz Island", records[0]["name"])

	coords, ok := records[0]["coordinates"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, json.Number("37.8267"), coords["latitude"])

	ratings, ok := records[0]["ratings"].([]any)
	require.True(t, ok)
	assert.Len(t, ratings, 3)

	assert.Equal(t, "2002", records[1]["id"])
	assert.Empty(t, records[1]["ratings"])
}

func TestJSONParser_RejectsNonArrayDocument(t *testing.T) {
	_, err := NewJSONParser().Parse(strings.NewReader(`{"id": 1}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "top-level array")
}

func TestJSONParser_RejectsGarbage(t *testing.T) {
	_, err := NewJSONParser().Parse(strings.NewReader("not json at all"))
	require.Error(t, err)
}

func TestJSONParser_TruncatedDocumentFailsMidStream(t *testing.T) {
	input := `[{"id": 1, "name": "A"}, {"id": 2, "name":`

	it, err := NewJSONParser().Parse(strings.NewReader(input))
	require.NoError(t, err)

	first, err := it.Next()
	require.NoError(t, err)
	assert.Equal(t, "A", first["name"])

	_, err = it.Next()
	require.Error(t, err)
}

func TestJSONParser_EmptyArray(t *testing.T) {
	it, err := NewJSONParser().Parse(strings.NewReader(`[]`))
	require.NoError(t, err)
	assert.Empty(t, readAll(t, it))
}
