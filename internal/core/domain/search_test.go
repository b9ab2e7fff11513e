package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawResult_IsPage(t *testing.T) {
	assert.True(t, RawResult{FileExtension: "aspx"}.IsPage())
	assert.False(t, RawResult{FileExtension: "pdf"}.IsPage())
	assert.False(t, RawResult{}.IsPage())
}

func TestResultBuckets_Len(t *testing.T) {
	b := ResultBuckets{
		Pages:     []FormattedResult{{}},
		Documents: []FormattedResult{{}, {}},
	}
	assert.Equal(t, 3, b.Len())
	assert.Equal(t, 0, ResultBuckets{}.Len())
}

func TestFormattedResult_JSONFlattensRawFields(t *testing.T) {
	f := FormattedResult{
		RawResult: RawResult{Title: "Report", FileExtension: "pdf", Size: 1024},
		Icon:      "file-pdf",
	}

	data, err := json.Marshal(f)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "Report", decoded["Title"])
	assert.Equal(t, "file-pdf", decoded["_icon"])
	assert.NotContains(t, decoded, "_sizeHumanReadable")
	assert.NotContains(t, decoded, "_containingFolder")
}

func TestLookupResult_NilDataMarshalsAsNull(t *testing.T) {
	r := LookupResult{Entity: Entity{Type: "domain", Value: "example.com"}}

	data, err := json.Marshal(r)
	require.NoError(t, err)

	assert.False(t, r.HasResults())
	assert.JSONEq(t, `{"entity":{"type":"domain","value":"example.com"},"data":null}`, string(data))
}
