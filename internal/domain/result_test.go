package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunReport_Record(t *testing.T) {
	report := &RunReport{Total: 6}
	for _, status := range []string{StatusSkipped, StatusSaved, StatusSaved, StatusNoResult, StatusPlanned, "unknown"} {
		report.Record(status)
	}

	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 2, report.Saved)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 1, report.Planned)
	assert.Equal(t, 5, report.Processed())
}

func TestIsEmptyPayload(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    bool
	}{
		{"no bytes", "", true},
		{"whitespace", " \n", true},
		{"null", "null", true},
		{"padded null", " null\n", true},
		{"empty object", "{}", true},
		{"spaced empty object", "{ }", true},
		{"empty array", "[]", true},
		{"empty string", `""`, true},
		{"false", "false", true},
		{"zero", "0", true},
		{"object with data", `{"data":[]}`, false},
		{"array with element", `[1]`, false},
		{"not json", `{"data":`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsEmptyPayload([]byte(tt.payload)))
		})
	}
}

func TestSearchResult_HasOffers(t *testing.T) {
	var missing *SearchResult
	assert.False(t, missing.HasOffers())
	assert.False(t, (&SearchResult{Payload: json.RawMessage("null")}).HasOffers())
	assert.True(t, (&SearchResult{Payload: json.RawMessage(`{"meta":{"count":0},"data":[]}`)}).HasOffers())
}

func TestCacheEntry_JSON(t *testing.T) {
	entry := CacheEntry{
		Tuple: Tuple{Origin: "KIX", FirstDate: "2026-04-07", Destination: "HKG", LastDate: "2026-09-23"},
		Key:   "KIX_2026-04-07_HKG_2026-09-23",
		Path:  "test/KIX_2026-04-07_HKG_2026-09-23_raw.json",
	}

	data, err := json.Marshal(entry)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "KIX", decoded["origin"])
	assert.Equal(t, "2026-09-23", decoded["lastDate"])
	assert.Equal(t, entry.Key, decoded["key"])
}
