package domain

import (
	"bytes"
	"encoding/json"
	"time"
)

// Per-tuple outcomes of a sweep.
const (
	StatusSkipped  = "skipped"
	StatusSaved    = "saved"
	StatusNoResult = "no_result"
	StatusPlanned  = "planned"
)

// SearchResult is a successful flight-offer search response.
type SearchResult struct {
	// Payload is the raw response body, persisted verbatim
	Payload json.RawMessage

	// StatusCode is the HTTP status of the response
	StatusCode int

	// FetchedAt is when the response was received
	FetchedAt time.Time
}

// HasOffers reports whether the payload carries a result worth caching.
// An empty body and the empty JSON values null, false, 0, "", {} and []
// count as no result.
func (r *SearchResult) HasOffers() bool {
	if r == nil {
		return false
	}
	return !IsEmptyPayload(r.Payload)
}

// IsEmptyPayload reports whether a raw JSON payload is empty or an empty value.
func IsEmptyPayload(payload []byte) bool {
	var compact bytes.Buffer
	if err := json.Compact(&compact, payload); err != nil {
		return len(bytes.TrimSpace(payload)) == 0
	}
	switch compact.String() {
	case "", "null", "false", "0", `""`, "{}", "[]":
		return true
	}
	return false
}

// CacheEntry describes one cached search result on disk.
type CacheEntry struct {
	Tuple
	Key        string    `json:"key"`
	Path       string    `json:"path"`
	SizeBytes  int64     `json:"sizeBytes"`
	ModifiedAt time.Time `json:"modifiedAt"`
}

// RunReport summarizes one sweep run.
type RunReport struct {
	RunID     string        `json:"runId"`
	Mode      string        `json:"mode"`
	DryRun    bool          `json:"dryRun"`
	Total     int           `json:"total"`
	Skipped   int           `json:"skipped"`
	Saved     int           `json:"saved"`
	Failed    int           `json:"failed"`
	Planned   int           `json:"planned"`
	StartedAt time.Time     `json:"startedAt"`
	Duration  time.Duration `json:"duration"`
}

// Record counts one tuple outcome.
func (r *RunReport) Record(status string) {
	switch status {
	case StatusSkipped:
		r.Skipped++
	case StatusSaved:
		r.Saved++
	case StatusNoResult:
		r.Failed++
	case StatusPlanned:
		r.Planned++
	}
}

// Processed returns how many tuples reached an outcome.
func (r *RunReport) Processed() int {
	return r.Skipped + r.Saved + r.Failed + r.Planned
}
