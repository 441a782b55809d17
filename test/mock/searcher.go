// Package mock provides configurable fakes of the flight-offer search API
// for integration tests.
package mock

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/flight-search/offer-sweeper/internal/domain"
)

// DefaultPayload is a minimal offers response.
const DefaultPayload = `{"meta":{"count":1},"data":[{"type":"flight-offer","id":"1","source":"GDS"}]}`

// Searcher is an in-process domain.OfferSearcher.
// It answers every request with the configured payload unless the request's
// tuple was marked to fail, and records every request it sees.
type Searcher struct {
	mu       sync.Mutex
	payload  json.RawMessage
	err      error
	failFor  map[string]error
	delay    time.Duration
	requests []domain.SearchRequest
}

// NewSearcher creates a Searcher returning DefaultPayload.
func NewSearcher() *Searcher {
	return &Searcher{
		payload: json.RawMessage(DefaultPayload),
		failFor: make(map[string]error),
	}
}

// WithPayload sets the payload returned for successful searches.
func (s *Searcher) WithPayload(payload string) *Searcher {
	s.payload = json.RawMessage(payload)
	return s
}

// WithError makes every search fail with err.
func (s *Searcher) WithError(err error) *Searcher {
	s.err = err
	return s
}

// WithDelay makes every search wait d before answering.
func (s *Searcher) WithDelay(d time.Duration) *Searcher {
	s.delay = d
	return s
}

// FailFor makes searches for the tuple fail with err.
func (s *Searcher) FailFor(t domain.Tuple, err error) *Searcher {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failFor[t.Key()] = err
	return s
}

// Search implements domain.OfferSearcher.
func (s *Searcher) Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResult, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	delay := s.delay
	s.mu.Unlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
			return nil, domain.NewTransportError(ctx.Err())
		case <-time.After(delay):
		}
	}
	if ctx.Err() != nil {
		return nil, domain.NewTransportError(ctx.Err())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}
	if t, ok := req.Tuple(); ok {
		if err, failing := s.failFor[t.Key()]; failing {
			return nil, err
		}
	}
	return &domain.SearchResult{
		Payload:    append(json.RawMessage(nil), s.payload...),
		StatusCode: 200,
		FetchedAt:  time.Now(),
	}, nil
}

// CallCount returns the number of times Search was called.
func (s *Searcher) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// Calls returns the tuples of every request in call order.
func (s *Searcher) Calls() []domain.Tuple {
	s.mu.Lock()
	defer s.mu.Unlock()
	tuples := make([]domain.Tuple, 0, len(s.requests))
	for _, req := range s.requests {
		if t, ok := req.Tuple(); ok {
			tuples = append(tuples, t)
		}
	}
	return tuples
}

// Reset forgets recorded calls.
func (s *Searcher) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = nil
}

var _ domain.OfferSearcher = (*Searcher)(nil)
