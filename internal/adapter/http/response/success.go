package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health statuses.
const (
	HealthOK          = "ok"
	HealthUnavailable = "unavailable"
)

// HealthResponse reports whether the viewer can read the cache and how much of
// the sweep it already holds.
type HealthResponse struct {
	Status        string `json:"status" example:"ok"`
	CachedResults int    `json:"cachedResults" example:"1200"`
	SweepTuples   int    `json:"sweepTuples" example:"1352"`
}

// Health writes 200 with the cache coverage.
func Health(c echo.Context, cached, tuples int) error {
	return c.JSON(http.StatusOK, &HealthResponse{
		Status:        HealthOK,
		CachedResults: cached,
		SweepTuples:   tuples,
	})
}

// Unavailable writes 503 when the cache directory cannot be read.
func Unavailable(c echo.Context) error {
	return c.JSON(http.StatusServiceUnavailable, &HealthResponse{Status: HealthUnavailable})
}
