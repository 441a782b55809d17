package mock

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/flight-search/offer-sweeper/internal/domain"
)

// Upstream is an httptest server that speaks the flight-offer search API.
// It checks the bearer token, decodes the four-leg request and answers with
// the configured payload, or with the status configured for the tuple.
type Upstream struct {
	*httptest.Server

	mu       sync.Mutex
	token    string
	payload  string
	statuses map[string]int
	bodies   map[string]string
	requests []domain.SearchRequest
}

// NewUpstream starts an Upstream accepting the given bearer token.
// The server is closed when the test ends.
func NewUpstream(t interface {
	Cleanup(func())
}, token string) *Upstream {
	u := &Upstream{
		token:    token,
		payload:  DefaultPayload,
		statuses: make(map[string]int),
		bodies:   make(map[string]string),
	}
	u.Server = httptest.NewServer(http.HandlerFunc(u.handle))
	t.Cleanup(u.Server.Close)
	return u
}

// WithPayload sets the body returned for successful searches.
func (u *Upstream) WithPayload(payload string) *Upstream {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.payload = payload
	return u
}

// RespondWith makes searches for the tuple answer with status and body.
func (u *Upstream) RespondWith(t domain.Tuple, status int, body string) *Upstream {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.statuses[t.Key()] = status
	u.bodies[t.Key()] = body
	return u
}

// Requests returns every decoded request in arrival order.
func (u *Upstream) Requests() []domain.SearchRequest {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]domain.SearchRequest(nil), u.requests...)
}

// Tuples returns the tuple of every request in arrival order.
func (u *Upstream) Tuples() []domain.Tuple {
	reqs := u.Requests()
	tuples := make([]domain.Tuple, 0, len(reqs))
	for _, req := range reqs {
		if t, ok := req.Tuple(); ok {
			tuples = append(tuples, t)
		}
	}
	return tuples
}

func (u *Upstream) handle(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if r.Header.Get("Authorization") != "Bearer "+u.token {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errors":[{"status":401,"title":"Invalid access token"}]}`))
		return
	}

	var req domain.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"errors":[{"status":400,"title":"Malformed request"}]}`))
		return
	}

	u.mu.Lock()
	u.requests = append(u.requests, req)
	status, body := http.StatusOK, u.payload
	if t, ok := req.Tuple(); ok {
		if s, configured := u.statuses[t.Key()]; configured {
			status, body = s, u.bodies[t.Key()]
		}
	}
	u.mu.Unlock()

	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
