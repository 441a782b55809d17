// Package http provides the read-only result viewer for the offer sweep.
// It lists cached search results, serves a cached payload verbatim, and shows
// the sweep plan with the cache state of every tuple.
package http

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/flight-search/offer-sweeper/internal/adapter/http/response"
	"github.com/flight-search/offer-sweeper/internal/domain"
	"github.com/flight-search/offer-sweeper/internal/infrastructure/logger"
	"github.com/flight-search/offer-sweeper/internal/sweep"
)

// ResultHandler handles HTTP requests for cached search results.
type ResultHandler struct {
	reader domain.ResultReader
	params domain.SweepParameters
	log    *logger.Logger
}

// NewResultHandler creates a ResultHandler over reader. params is the sweep
// the plan endpoint reports on.
func NewResultHandler(reader domain.ResultReader, params domain.SweepParameters, log *logger.Logger) *ResultHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &ResultHandler{
		reader: reader,
		params: params,
		log:    log,
	}
}

// ListResults handles GET /api/v1/results
//
// @Summary List cached results
// @Description List cached flight-offer search results, optionally filtered by airport
// @Tags results
// @Produce json
// @Param origin query string false "First-leg origin IATA code" example(KIX)
// @Param destination query string false "Last-leg destination IATA code" example(HKG)
// @Success 200 {object} response.Response{data=ResultListDTO}
// @Failure 400 {object} response.Response "Validation error"
// @Failure 500 {object} response.Response "Cache directory unreadable"
// @Router /api/v1/results [get]
func (h *ResultHandler) ListResults(c echo.Context) error {
	var req ListResultsRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}
	req.Normalize()

	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	entries, err := h.reader.List()
	if err != nil {
		return h.handleError(c, err)
	}

	return response.OK(c, ToResultListDTO(entries, &req))
}

// GetResult handles GET /api/v1/results/:key
//
// @Summary Get a cached result
// @Description Return the cached flight-offer search response exactly as stored
// @Tags results
// @Produce json
// @Param key path string true "Cache key ORIGIN_YYYY-MM-DD_DESTINATION_YYYY-MM-DD" example(KIX_2026-04-07_HKG_2026-09-23)
// @Success 200 {object} object "Raw flight-offer search response"
// @Failure 400 {object} response.Response "Malformed key"
// @Failure 404 {object} response.Response "Not cached"
// @Router /api/v1/results/{key} [get]
func (h *ResultHandler) GetResult(c echo.Context) error {
	data, err := h.reader.Load(c.Param("key"))
	if err != nil {
		return h.handleError(c, err)
	}
	return response.RawJSON(c, data)
}

// Plan handles GET /api/v1/plan
//
// @Summary Show the sweep plan
// @Description List every sweep tuple in iteration order with its cache state
// @Tags plan
// @Produce json
// @Success 200 {object} response.Response{data=PlanDTO}
// @Failure 500 {object} response.Response "Cache directory unreadable"
// @Router /api/v1/plan [get]
func (h *ResultHandler) Plan(c echo.Context) error {
	plan := PlanDTO{
		Total:  h.params.Size(),
		Tuples: make([]PlanEntryDTO, 0, h.params.Size()),
	}

	for t := range sweep.Tuples(h.params) {
		cached, err := h.reader.Exists(t)
		if err != nil {
			return h.handleError(c, err)
		}
		if cached {
			plan.Cached++
		}
		plan.Tuples = append(plan.Tuples, ToPlanEntryDTO(t, cached))
	}
	plan.Pending = plan.Total - plan.Cached

	return response.OK(c, plan)
}

// Health handles GET /health
//
// @Summary Health check
// @Description Report whether the cache directory is readable and how many sweep tuples it holds
// @Tags health
// @Produce json
// @Success 200 {object} response.HealthResponse
// @Failure 503 {object} response.HealthResponse "Cache directory unreadable"
// @Router /health [get]
func (h *ResultHandler) Health(c echo.Context) error {
	entries, err := h.reader.List()
	if err != nil {
		h.log.Warn().Err(err).Msg("Health check cannot read cache")
		return response.Unavailable(c)
	}
	return response.Health(c, len(entries), h.params.Size())
}

// handleValidationError handles validation errors and returns a 400 response.
func (h *ResultHandler) handleValidationError(c echo.Context, err error) error {
	var validationErrs *ValidationErrors
	if errors.As(err, &validationErrs) {
		return response.ValidationError(c, validationErrs.ToMap())
	}
	return response.BadRequest(c, err.Error())
}

// handleError maps domain errors to HTTP responses.
func (h *ResultHandler) handleError(c echo.Context, err error) error {
	switch {
	case domain.IsInvalidKey(err):
		return response.InvalidKey(c)
	case domain.IsNotCached(err):
		return response.NotCached(c)
	default:
		h.log.Error().Err(err).Str("path", c.Request().URL.Path).Msg("Cache read failed")
		return response.InternalServerError(c)
	}
}
