// Package main is the entry point for the cached result viewer.
//
//	@title			Offer Sweeper Result Viewer API
//	@version		1.0.0
//	@description	Read-only view over cached flight-offer search results and the sweep plan.
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	// Import generated docs for swagger
	_ "github.com/flight-search/offer-sweeper/docs"

	"github.com/flight-search/offer-sweeper/internal/adapter/filecache"
	resulthttp "github.com/flight-search/offer-sweeper/internal/adapter/http"
	"github.com/flight-search/offer-sweeper/internal/adapter/http/middleware"
	"github.com/flight-search/offer-sweeper/internal/config"
	"github.com/flight-search/offer-sweeper/internal/infrastructure/logger"
)

const (
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg := config.MustLoad()
	log := logger.New(cfg.Logging)

	log.Info().
		Str(logger.FieldMode, cfg.Sweep.Mode).
		Str("output_dir", cfg.OutputDir()).
		Int("port", cfg.Server.Port).
		Msg("Configuration loaded")

	e := newServer(cfg, log)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		log.Info().Str("address", addr).Msg("Starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	gracefulShutdown(e, log)
}

// newServer builds the Echo instance with middleware and routes.
func newServer(cfg *config.Config, log *logger.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	middleware.Setup(e, log)

	store := filecache.New(cfg.OutputDir())
	handler := resulthttp.NewResultHandler(store, cfg.SweepParameters(), log)
	resulthttp.RegisterRoutes(e, handler)

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// gracefulShutdown handles graceful server shutdown on interrupt signals.
func gracefulShutdown(e *echo.Echo, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server stopped")
}
