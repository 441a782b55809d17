// Package integration provides helpers and integration tests for the offer sweeper.
// Integration tests wire the real configuration, API client, file cache, sweep
// driver and viewer together against a fake flight-offer API.
package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/flight-search/offer-sweeper/internal/adapter/amadeus"
	"github.com/flight-search/offer-sweeper/internal/adapter/filecache"
	resulthttp "github.com/flight-search/offer-sweeper/internal/adapter/http"
	"github.com/flight-search/offer-sweeper/internal/adapter/http/middleware"
	"github.com/flight-search/offer-sweeper/internal/config"
	"github.com/flight-search/offer-sweeper/internal/domain"
	"github.com/flight-search/offer-sweeper/internal/infrastructure/logger"
	"github.com/flight-search/offer-sweeper/internal/sweep"
)

// TestToken is the bearer token the fake API accepts.
const TestToken = "integration-token"

// Env describes a small sweep run against a fake API.
type Env struct {
	Endpoint  string
	OutputDir string
	Origins   string
	Dests     string
	FirstDate string
	LastDates string
	Extra     map[string]string
}

// LoadConfig sets the environment for the run and loads the configuration
// the same way the binaries do.
func LoadConfig(t *testing.T, env Env) *config.Config {
	t.Helper()

	vars := map[string]string{
		"SWEEP_MODE":            config.ModeTest,
		"AMADEUS_TOKEN":         TestToken,
		"AMADEUS_TEST_ENDPOINT": env.Endpoint,
		"OUTPUT_DIR":            env.OutputDir,
		"SWEEP_ORIGINS":         env.Origins,
		"SWEEP_FIRST_DATES":     env.FirstDate,
		"SWEEP_DESTINATIONS":    env.Dests,
		"SWEEP_LAST_DATES":      env.LastDates,
		"SWEEP_DRY_RUN":         "false",
		"LOG_LEVEL":             "debug",
		"LOG_FORMAT":            "json",
	}
	for k, v := range env.Extra {
		vars[k] = v
	}
	for k, v := range vars {
		t.Setenv(k, v)
	}

	cfg, err := config.Load()
	require.NoError(t, err)
	require.NoError(t, cfg.ValidateForSweep())
	return cfg
}

// RunSweep performs one sweep wired the way cmd/sweeper wires it.
func RunSweep(ctx context.Context, cfg *config.Config, log *logger.Logger) (*domain.RunReport, error) {
	client := amadeus.NewClient(cfg.AmadeusClientConfig(), amadeus.WithLogger(log))
	store := filecache.New(cfg.OutputDir())

	driver := sweep.NewDriver(client, store, sweep.Config{
		Params:    cfg.SweepParameters(),
		Itinerary: cfg.Itinerary(),
		Options:   cfg.SearchOptions(),
		Mode:      cfg.Sweep.Mode,
		DryRun:    cfg.Sweep.DryRun,
	}, log)
	return driver.Run(ctx)
}

// NewJSONLogger returns a debug logger writing JSON lines to buf.
func NewJSONLogger(buf *bytes.Buffer) *logger.Logger {
	return logger.NewWithOutput(logger.Config{Level: "debug", Format: "json"}, buf)
}

// LogEntries parses every JSON log line in buf.
func LogEntries(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var entries []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		entries = append(entries, entry)
	}
	return entries
}

// TestServer wraps an Echo instance and provides helper methods for integration testing.
type TestServer struct {
	Echo  *echo.Echo
	Store *filecache.Store
}

// NewTestServer creates a viewer over the configured output directory,
// wired the way cmd/viewer wires it.
func NewTestServer(cfg *config.Config, log *logger.Logger) *TestServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	middleware.Setup(e, log)

	store := filecache.New(cfg.OutputDir())
	resulthttp.RegisterRoutes(e, resulthttp.NewResultHandler(store, cfg.SweepParameters(), log))

	return &TestServer{
		Echo:  e,
		Store: store,
	}
}

// Request represents a test HTTP request configuration.
type Request struct {
	Method string
	Path   string
	Header http.Header
}

// Response represents a test HTTP response.
type Response struct {
	Code    int
	Body    []byte
	Headers http.Header
}

// Do executes a test request and returns the response.
func (ts *TestServer) Do(req Request) Response {
	httpReq := httptest.NewRequest(req.Method, req.Path, nil)
	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}

	rec := httptest.NewRecorder()
	ts.Echo.ServeHTTP(rec, httpReq)

	return Response{
		Code:    rec.Code,
		Body:    rec.Body.Bytes(),
		Headers: rec.Header(),
	}
}

// Get makes a GET request.
func (ts *TestServer) Get(path string) Response {
	return ts.Do(Request{Method: http.MethodGet, Path: path})
}

// Data decodes the data field of a success envelope into out.
func (r *Response) Data(out interface{}) error {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(r.Body, &envelope); err != nil {
		return err
	}
	return json.Unmarshal(envelope.Data, out)
}

// ParseError parses the response body to extract error information.
func (r *Response) ParseError() (map[string]interface{}, error) {
	var errResp map[string]interface{}
	if err := json.Unmarshal(r.Body, &errResp); err != nil {
		return nil, err
	}
	return errResp, nil
}
