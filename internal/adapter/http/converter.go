package http

import (
	"path/filepath"

	"github.com/flight-search/offer-sweeper/internal/domain"
)

// ToResultEntryDTO converts a cache entry to its API form.
// Only the file name is exposed, never the server-side path.
func ToResultEntryDTO(e domain.CacheEntry) ResultEntryDTO {
	return ResultEntryDTO{
		Key:         e.Key,
		Origin:      e.Origin,
		FirstDate:   e.FirstDate,
		Destination: e.Destination,
		LastDate:    e.LastDate,
		File:        filepath.Base(e.Path),
		SizeBytes:   e.SizeBytes,
		ModifiedAt:  e.ModifiedAt,
	}
}

// ToResultListDTO converts the entries that pass the filters.
func ToResultListDTO(entries []domain.CacheEntry, filter *ListResultsRequest) ResultListDTO {
	results := make([]ResultEntryDTO, 0, len(entries))
	for _, e := range entries {
		if filter != nil && !filter.Matches(e.Tuple) {
			continue
		}
		results = append(results, ToResultEntryDTO(e))
	}
	return ResultListDTO{
		Total:   len(results),
		Results: results,
	}
}

// ToPlanEntryDTO converts a sweep tuple and its cache state.
func ToPlanEntryDTO(t domain.Tuple, cached bool) PlanEntryDTO {
	return PlanEntryDTO{
		Key:         t.Key(),
		Origin:      t.Origin,
		FirstDate:   t.FirstDate,
		Destination: t.Destination,
		LastDate:    t.LastDate,
		Cached:      cached,
	}
}
