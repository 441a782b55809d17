package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/flight-search/offer-sweeper/internal/infrastructure/logger"
)

// Setup registers all middleware on the Echo instance in the correct order:
//  1. RequestID, so every later log line carries the request id
//  2. RequestLogger, which logs every request
//  3. Recover, which wraps the handlers
//
// Call it before registering routes.
func Setup(e *echo.Echo, log *logger.Logger) {
	SetupWithConfig(e, log, DefaultRecoveryConfig())
}

// SetupWithConfig registers middleware with custom recovery configuration.
func SetupWithConfig(e *echo.Echo, log *logger.Logger, recoveryConfig RecoveryConfig) {
	e.Use(Chain(log, recoveryConfig)...)
}

// Chain returns the middleware as a slice for use with route groups.
func Chain(log *logger.Logger, recoveryConfig RecoveryConfig) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{
		RequestID(),
		RequestLogger(log),
		RecoverWithConfig(log, recoveryConfig),
	}
}
