package http

import (
	"strings"

	"github.com/flight-search/offer-sweeper/internal/domain"
)

// ListResultsRequest holds the optional filters of GET /api/v1/results.
type ListResultsRequest struct {
	// Origin keeps only entries whose first leg departs from this airport (e.g., "KIX")
	Origin string `query:"origin"`

	// Destination keeps only entries whose last leg arrives at this airport (e.g., "HKG")
	Destination string `query:"destination"`
}

// ValidationError represents a field-level validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors holds multiple validation errors.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// Error implements the error interface.
func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return "validation failed"
	}
	return v.Errors[0].Message
}

// Add appends a field error.
func (v *ValidationErrors) Add(field, message string) {
	v.Errors = append(v.Errors, ValidationError{Field: field, Message: message})
}

// HasErrors reports whether any field failed.
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// ToMap converts the errors to a field -> message map.
func (v *ValidationErrors) ToMap() map[string]string {
	out := make(map[string]string, len(v.Errors))
	for _, e := range v.Errors {
		out[e.Field] = e.Message
	}
	return out
}

// Normalize upper-cases and trims the airport filters.
func (r *ListResultsRequest) Normalize() {
	r.Origin = strings.ToUpper(strings.TrimSpace(r.Origin))
	r.Destination = strings.ToUpper(strings.TrimSpace(r.Destination))
}

// Validate checks that any given filter is a 3-letter airport code.
func (r *ListResultsRequest) Validate() error {
	errs := &ValidationErrors{}
	if r.Origin != "" && domain.ValidateAirportCode(r.Origin) != nil {
		errs.Add("origin", "must be a 3-letter IATA airport code")
	}
	if r.Destination != "" && domain.ValidateAirportCode(r.Destination) != nil {
		errs.Add("destination", "must be a 3-letter IATA airport code")
	}
	if errs.HasErrors() {
		return errs
	}
	return nil
}

// Matches reports whether an entry passes the filters.
func (r *ListResultsRequest) Matches(t domain.Tuple) bool {
	if r.Origin != "" && t.Origin != r.Origin {
		return false
	}
	if r.Destination != "" && t.Destination != r.Destination {
		return false
	}
	return true
}
