// Package amadeus is the flight-offer search client used by the sweep.
// It performs exactly one POST per search and never retries.
package amadeus

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/flight-search/offer-sweeper/internal/domain"
	"github.com/flight-search/offer-sweeper/internal/infrastructure/logger"
	"github.com/flight-search/offer-sweeper/internal/infrastructure/timeutil"
)

// Flight-offer search endpoints.
const (
	TestEndpoint       = "https://test.api.amadeus.com/v2/shopping/flight-offers"
	ProductionEndpoint = "https://api.amadeus.com/v2/shopping/flight-offers"
)

// DefaultTimeout bounds a single search round-trip.
const DefaultTimeout = 60 * time.Second

// maxErrorBody caps how much of an error response is kept in UpstreamError.
const maxErrorBody = 512

// Config selects the endpoint and credentials.
type Config struct {
	Endpoint string
	Token    string
	Timeout  time.Duration
}

// Client submits flight-offer searches.
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
	log        *logger.Logger
	clock      timeutil.Clock
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger used for failed searches.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithClock sets the clock used to stamp results.
func WithClock(clock timeutil.Clock) Option {
	return func(c *Client) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// NewClient creates a Client. Without WithHTTPClient it uses a plain
// *http.Client with cfg.Timeout (DefaultTimeout when zero).
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		endpoint:   cfg.Endpoint,
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.Nop(),
		clock:      timeutil.NewRealClock(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the URL searches are posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Search posts the request and returns the raw JSON response.
// Transport failures match domain.ErrTransport, non-2xx responses are
// *domain.UpstreamError, and a 2xx body that is not JSON matches
// domain.ErrInvalidPayload. Every failure is logged before it is returned.
func (c *Client) Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResult, error) {
	start := c.clock.Now()

	result, err := c.do(ctx, req)
	if err != nil {
		event := c.log.Error().
			Err(err).
			Str("endpoint", c.endpoint).
			Dur("elapsed", c.clock.Now().Sub(start))
		if t, ok := req.Tuple(); ok {
			event = event.Str(logger.FieldTuple, t.Key())
		}
		event.Msg("Flight offer search failed")
		return nil, err
	}

	c.log.Debug().
		Int("status_code", result.StatusCode).
		Int("bytes", len(result.Payload)).
		Dur("elapsed", c.clock.Now().Sub(start)).
		Msg("Flight offer search succeeded")
	return result, nil
}

func (c *Client) do(ctx context.Context, req domain.SearchRequest) (*domain.SearchResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode search request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, domain.NewTransportError(fmt.Errorf("create request: %w", err))
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.token)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, domain.NewTransportError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewTransportError(fmt.Errorf("read body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, domain.NewUpstreamError(resp.StatusCode, truncate(data, maxErrorBody))
	}

	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: %d-byte body is not JSON", domain.ErrInvalidPayload, len(data))
	}

	return &domain.SearchResult{
		Payload:    data,
		StatusCode: resp.StatusCode,
		FetchedAt:  c.clock.Now(),
	}, nil
}

// truncate trims data to at most limit bytes without splitting a UTF-8 sequence.
func truncate(data []byte, limit int) string {
	s := strings.TrimSpace(string(data))
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "…"
}

var _ domain.OfferSearcher = (*Client)(nil)
