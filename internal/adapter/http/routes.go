package http

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers all result viewer routes.
func RegisterRoutes(e *echo.Echo, h *ResultHandler) {
	// Health check endpoint (no version prefix)
	e.GET("/health", h.Health)

	api := e.Group("/api/v1")

	results := api.Group("/results")
	results.GET("", h.ListResults)
	results.GET("/:key", h.GetResult)

	api.GET("/plan", h.Plan)
}
