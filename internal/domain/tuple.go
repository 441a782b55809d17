package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// KeySeparator joins the four tuple values into a cache key.
const KeySeparator = "_"

// DateLayout is the date format used for every leg date.
const DateLayout = "2006-01-02"

// airportCodeRegex matches IATA airport codes (3 uppercase letters).
var airportCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// dateRegex matches dates in YYYY-MM-DD format.
var dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// keyPartRegex matches a single cache key component.
var keyPartRegex = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

// Tuple is one concrete combination drawn from the sweep parameters.
type Tuple struct {
	Origin      string `json:"origin"`
	FirstDate   string `json:"firstDate"`
	Destination string `json:"destination"`
	LastDate    string `json:"lastDate"`
}

// Key returns the deterministic cache key, e.g. "KIX_2026-04-07_HKG_2026-09-23".
func (t Tuple) Key() string {
	return strings.Join([]string{t.Origin, t.FirstDate, t.Destination, t.LastDate}, KeySeparator)
}

func (t Tuple) String() string {
	return t.Key()
}

// ParseKey is the inverse of Tuple.Key.
func ParseKey(key string) (Tuple, error) {
	parts := strings.Split(key, KeySeparator)
	if len(parts) != 4 {
		return Tuple{}, fmt.Errorf("%w: %q must have 4 parts", ErrInvalidKey, key)
	}
	for _, p := range parts {
		if !keyPartRegex.MatchString(p) {
			return Tuple{}, fmt.Errorf("%w: %q has an invalid part %q", ErrInvalidKey, key, p)
		}
	}
	return Tuple{
		Origin:      parts[0],
		FirstDate:   parts[1],
		Destination: parts[2],
		LastDate:    parts[3],
	}, nil
}

// SweepParameters are the four independent axes of the sweep.
type SweepParameters struct {
	Origins      []string `json:"origins"`
	FirstDates   []string `json:"firstDates"`
	Destinations []string `json:"destinations"`
	LastDates    []string `json:"lastDates"`
}

// Size returns the number of tuples in the Cartesian product.
func (p SweepParameters) Size() int {
	return len(p.Origins) * len(p.FirstDates) * len(p.Destinations) * len(p.LastDates)
}

// Dates returns every first and last date, first dates first.
func (p SweepParameters) Dates() []string {
	out := make([]string, 0, len(p.FirstDates)+len(p.LastDates))
	out = append(out, p.FirstDates...)
	return append(out, p.LastDates...)
}

// Validate checks that every axis is non-empty and well formed.
// Well-formed values also guarantee distinct tuples map to distinct keys.
func (p SweepParameters) Validate() error {
	axes := []struct {
		name   string
		values []string
		check  func(string) error
	}{
		{"origins", p.Origins, ValidateAirportCode},
		{"first dates", p.FirstDates, ValidateDate},
		{"destinations", p.Destinations, ValidateAirportCode},
		{"last dates", p.LastDates, ValidateDate},
	}

	for _, axis := range axes {
		if len(axis.values) == 0 {
			return fmt.Errorf("%w: %s must not be empty", ErrInvalidParameters, axis.name)
		}
		seen := make(map[string]bool, len(axis.values))
		for _, v := range axis.values {
			if err := axis.check(v); err != nil {
				return fmt.Errorf("%s: %w", axis.name, err)
			}
			if seen[v] {
				return fmt.Errorf("%w: %s contains %q twice", ErrInvalidParameters, axis.name, v)
			}
			seen[v] = true
		}
	}
	return nil
}

// Validate checks the hub and both fixed legs.
func (it Itinerary) Validate() error {
	if err := ValidateAirportCode(it.Hub); err != nil {
		return fmt.Errorf("hub: %w", err)
	}
	if err := it.SecondLeg.Validate(); err != nil {
		return fmt.Errorf("second leg: %w", err)
	}
	if err := it.ThirdLeg.Validate(); err != nil {
		return fmt.Errorf("third leg: %w", err)
	}
	return nil
}

// Validate checks the leg's airports and date.
func (l Leg) Validate() error {
	if err := ValidateAirportCode(l.Origin); err != nil {
		return err
	}
	if err := ValidateAirportCode(l.Destination); err != nil {
		return err
	}
	if l.Origin == l.Destination {
		return fmt.Errorf("%w: origin and destination must be different", ErrInvalidParameters)
	}
	return ValidateDate(l.Date)
}

// ValidateAirportCode checks for a 3-letter uppercase IATA code.
func ValidateAirportCode(code string) error {
	if !airportCodeRegex.MatchString(code) {
		return fmt.Errorf("%w: %q is not a valid 3-letter IATA code", ErrInvalidParameters, code)
	}
	return nil
}

// ValidateDate checks for a real calendar date in YYYY-MM-DD format.
func ValidateDate(date string) error {
	if !dateRegex.MatchString(date) {
		return fmt.Errorf("%w: %q must be in YYYY-MM-DD format", ErrInvalidParameters, date)
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		return fmt.Errorf("%w: %q is not a valid date", ErrInvalidParameters, date)
	}
	return nil
}
