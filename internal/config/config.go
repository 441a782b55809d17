// Package config provides application configuration management.
// It loads configuration from environment variables with support for .env files.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/currency"

	"github.com/flight-search/offer-sweeper/internal/adapter/amadeus"
	"github.com/flight-search/offer-sweeper/internal/domain"
	"github.com/flight-search/offer-sweeper/internal/infrastructure/logger"
)

// Sweep modes.
const (
	ModeTest       = "test"
	ModeProduction = "production"
)

// Default output directories per mode.
const (
	DefaultTestOutputDir       = "./test"
	DefaultProductionOutputDir = "./prod"
)

// Config holds all application configuration.
type Config struct {
	Sweep   SweepConfig
	Amadeus AmadeusConfig
	Route   RouteConfig
	Offer   OfferConfig
	Server  ServerConfig
	Logging logger.Config
}

// SweepConfig holds the sweep axes and run mode.
type SweepConfig struct {
	Mode string `env:"SWEEP_MODE" envDefault:"test"`

	// OutputDir overrides the mode's default cache directory.
	OutputDir string `env:"OUTPUT_DIR"`

	Origins      []string `env:"SWEEP_ORIGINS" envDefault:"KIX,NGO,OKA,CTS,SDJ,HKD,CNX,BKK,HAN,DAD,SGN,PEN,HKG"`
	FirstDates   []string `env:"SWEEP_FIRST_DATES" envDefault:"2026-04-07,2026-04-08"`
	Destinations []string `env:"SWEEP_DESTINATIONS" envDefault:"KIX,NGO,OKA,CTS,SDJ,HKD,CNX,BKK,HAN,DAD,SGN,PEN,HKG"`
	LastDates    []string `env:"SWEEP_LAST_DATES" envDefault:"2026-09-23,2026-09-24,2026-10-22,2026-10-23"`

	DryRun bool `env:"SWEEP_DRY_RUN" envDefault:"false"`
}

// AmadeusConfig holds the flight-offer API settings.
type AmadeusConfig struct {
	Token              string        `env:"AMADEUS_TOKEN"`
	TestEndpoint       string        `env:"AMADEUS_TEST_ENDPOINT" envDefault:"https://test.api.amadeus.com/v2/shopping/flight-offers"`
	ProductionEndpoint string        `env:"AMADEUS_PRODUCTION_ENDPOINT" envDefault:"https://api.amadeus.com/v2/shopping/flight-offers"`
	Timeout            time.Duration `env:"AMADEUS_TIMEOUT" envDefault:"60s"`
}

// RouteConfig holds the hub and the two fixed middle legs.
type RouteConfig struct {
	Hub string `env:"ITINERARY_HUB" envDefault:"TPE"`

	SecondLegOrigin      string `env:"SECOND_LEG_ORIGIN" envDefault:"TPE"`
	SecondLegDestination string `env:"SECOND_LEG_DESTINATION" envDefault:"FCO"`
	SecondLegDate        string `env:"SECOND_LEG_DATE" envDefault:"2026-07-18"`

	ThirdLegOrigin      string `env:"THIRD_LEG_ORIGIN" envDefault:"MXP"`
	ThirdLegDestination string `env:"THIRD_LEG_DESTINATION" envDefault:"TPE"`
	ThirdLegDate        string `env:"THIRD_LEG_DATE" envDefault:"2026-07-31"`
}

// OfferConfig holds the non-leg request fields.
type OfferConfig struct {
	Currency       string   `env:"OFFER_CURRENCY" envDefault:"TWD"`
	Adults         int      `env:"OFFER_ADULTS" envDefault:"2"`
	Sources        []string `env:"OFFER_SOURCES" envDefault:"GDS"`
	MaxResults     int      `env:"OFFER_MAX_RESULTS" envDefault:"250"`
	Cabin          string   `env:"OFFER_CABIN" envDefault:"ECONOMY"`
	CabinCoverage  string   `env:"OFFER_CABIN_COVERAGE" envDefault:"MOST_SEGMENTS"`
	MaxConnections int      `env:"OFFER_MAX_CONNECTIONS" envDefault:"0"`
	Carriers       []string `env:"OFFER_CARRIERS" envDefault:"BR,CI,JX"`
}

// ServerConfig holds the result viewer's HTTP server settings.
type ServerConfig struct {
	Port         int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"10s"`
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first (optional - won't fail if missing).
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics on error.
// Use this in main() where configuration is required to start.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// validate checks configuration values for correctness.
func validate(cfg *Config) error {
	if cfg.Sweep.Mode != ModeTest && cfg.Sweep.Mode != ModeProduction {
		return fmt.Errorf("SWEEP_MODE must be one of: test, production; got %q", cfg.Sweep.Mode)
	}

	if err := cfg.SweepParameters().Validate(); err != nil {
		return fmt.Errorf("sweep parameters: %w", err)
	}
	if err := cfg.Itinerary().Validate(); err != nil {
		return fmt.Errorf("itinerary: %w", err)
	}

	// Endpoints
	if cfg.Amadeus.TestEndpoint == "" || cfg.Amadeus.ProductionEndpoint == "" {
		return fmt.Errorf("AMADEUS_TEST_ENDPOINT and AMADEUS_PRODUCTION_ENDPOINT must not be empty")
	}
	if cfg.Amadeus.TestEndpoint == cfg.Amadeus.ProductionEndpoint {
		return fmt.Errorf("AMADEUS_TEST_ENDPOINT and AMADEUS_PRODUCTION_ENDPOINT must differ")
	}
	if cfg.Amadeus.Timeout <= 0 {
		return fmt.Errorf("AMADEUS_TIMEOUT must be positive")
	}

	if err := validateOffer(cfg.Offer); err != nil {
		return err
	}

	// Validate server port
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout <= 0 {
		return fmt.Errorf("SERVER_READ_TIMEOUT must be positive")
	}
	if cfg.Server.WriteTimeout <= 0 {
		return fmt.Errorf("SERVER_WRITE_TIMEOUT must be positive")
	}

	// Validate log level
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", cfg.Logging.Level)
	}

	// Validate log format
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console; got %q", cfg.Logging.Format)
	}

	return nil
}

func validateOffer(o OfferConfig) error {
	if _, err := currency.ParseISO(o.Currency); err != nil {
		return fmt.Errorf("OFFER_CURRENCY must be an ISO 4217 code, got %q", o.Currency)
	}
	if o.Adults < 1 || o.Adults > 9 {
		return fmt.Errorf("OFFER_ADULTS must be between 1 and 9, got %d", o.Adults)
	}
	if len(o.Sources) == 0 {
		return fmt.Errorf("OFFER_SOURCES must not be empty")
	}
	if o.MaxResults < 1 || o.MaxResults > 250 {
		return fmt.Errorf("OFFER_MAX_RESULTS must be between 1 and 250, got %d", o.MaxResults)
	}

	validCabins := map[string]bool{
		domain.CabinEconomy:        true,
		domain.CabinPremiumEconomy: true,
		domain.CabinBusiness:       true,
		domain.CabinFirst:          true,
	}
	if !validCabins[o.Cabin] {
		return fmt.Errorf("OFFER_CABIN must be one of: ECONOMY, PREMIUM_ECONOMY, BUSINESS, FIRST; got %q", o.Cabin)
	}

	validCoverage := map[string]bool{
		domain.CoverageMostSegments: true,
		domain.CoverageAtLeastOne:   true,
		domain.CoverageAllSegments:  true,
	}
	if !validCoverage[o.CabinCoverage] {
		return fmt.Errorf("OFFER_CABIN_COVERAGE must be one of: MOST_SEGMENTS, AT_LEAST_ONE_SEGMENT, ALL_SEGMENTS; got %q", o.CabinCoverage)
	}

	if o.MaxConnections < 0 {
		return fmt.Errorf("OFFER_MAX_CONNECTIONS must not be negative, got %d", o.MaxConnections)
	}
	for _, code := range o.Carriers {
		if len(code) != 2 {
			return fmt.Errorf("OFFER_CARRIERS entries must be 2-character airline codes, got %q", code)
		}
	}
	return nil
}

// ValidateForSweep checks the settings only the sweeper needs.
func (c *Config) ValidateForSweep() error {
	if strings.TrimSpace(c.Amadeus.Token) == "" {
		return fmt.Errorf("AMADEUS_TOKEN is required")
	}
	return nil
}

// IsProduction returns true if sweeping against the production API.
func (c *Config) IsProduction() bool {
	return c.Sweep.Mode == ModeProduction
}

// Endpoint returns the flight-offer endpoint for the current mode.
func (c *Config) Endpoint() string {
	if c.IsProduction() {
		return c.Amadeus.ProductionEndpoint
	}
	return c.Amadeus.TestEndpoint
}

// OutputDir returns OUTPUT_DIR, or the mode's default directory when unset.
func (c *Config) OutputDir() string {
	if c.Sweep.OutputDir != "" {
		return c.Sweep.OutputDir
	}
	if c.IsProduction() {
		return DefaultProductionOutputDir
	}
	return DefaultTestOutputDir
}

// AmadeusClientConfig returns the client settings for the current mode.
func (c *Config) AmadeusClientConfig() amadeus.Config {
	return amadeus.Config{
		Endpoint: c.Endpoint(),
		Token:    c.Amadeus.Token,
		Timeout:  c.Amadeus.Timeout,
	}
}

// SweepParameters returns the four sweep axes.
func (c *Config) SweepParameters() domain.SweepParameters {
	return domain.SweepParameters{
		Origins:      c.Sweep.Origins,
		FirstDates:   c.Sweep.FirstDates,
		Destinations: c.Sweep.Destinations,
		LastDates:    c.Sweep.LastDates,
	}
}

// Itinerary returns the fixed part of every request.
func (c *Config) Itinerary() domain.Itinerary {
	it := c.Route
	return domain.Itinerary{
		Hub: it.Hub,
		SecondLeg: domain.Leg{
			Origin:      it.SecondLegOrigin,
			Destination: it.SecondLegDestination,
			Date:        it.SecondLegDate,
		},
		ThirdLeg: domain.Leg{
			Origin:      it.ThirdLegOrigin,
			Destination: it.ThirdLegDestination,
			Date:        it.ThirdLegDate,
		},
	}
}

// SearchOptions returns the non-leg request fields.
func (c *Config) SearchOptions() domain.SearchOptions {
	o := c.Offer
	return domain.SearchOptions{
		Currency:       o.Currency,
		Adults:         o.Adults,
		Sources:        o.Sources,
		MaxOffers:      o.MaxResults,
		Cabin:          o.Cabin,
		CabinCoverage:  o.CabinCoverage,
		MaxConnections: o.MaxConnections,
		Carriers:       o.Carriers,
	}
}
