package http

import "time"

// ResultEntryDTO describes one cached search result.
type ResultEntryDTO struct {
	Key         string    `json:"key" example:"KIX_2026-04-07_HKG_2026-09-23"`
	Origin      string    `json:"origin" example:"KIX"`
	FirstDate   string    `json:"firstDate" example:"2026-04-07"`
	Destination string    `json:"destination" example:"HKG"`
	LastDate    string    `json:"lastDate" example:"2026-09-23"`
	File        string    `json:"file" example:"KIX_2026-04-07_HKG_2026-09-23_raw.json"`
	SizeBytes   int64     `json:"sizeBytes" example:"184213"`
	ModifiedAt  time.Time `json:"modifiedAt"`
}

// ResultListDTO is the payload of GET /api/v1/results.
type ResultListDTO struct {
	Total   int              `json:"total" example:"2"`
	Results []ResultEntryDTO `json:"results"`
}

// PlanEntryDTO is one sweep tuple and whether it is already cached.
type PlanEntryDTO struct {
	Key         string `json:"key" example:"KIX_2026-04-07_HKG_2026-09-23"`
	Origin      string `json:"origin" example:"KIX"`
	FirstDate   string `json:"firstDate" example:"2026-04-07"`
	Destination string `json:"destination" example:"HKG"`
	LastDate    string `json:"lastDate" example:"2026-09-23"`
	Cached      bool   `json:"cached"`
}

// PlanDTO is the payload of GET /api/v1/plan. Tuples are in sweep order.
type PlanDTO struct {
	Total   int            `json:"total" example:"1352"`
	Cached  int            `json:"cached" example:"1200"`
	Pending int            `json:"pending" example:"152"`
	Tuples  []PlanEntryDTO `json:"tuples"`
}
