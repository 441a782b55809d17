package domain

//go:generate mockgen -source=ports.go -destination=mock_ports.go -package=domain

import "context"

// OfferSearcher submits one flight-offer search.
// Implementations must not retry: a failed search returns an error
// matching IsUpstreamFailure and the caller decides what to do.
type OfferSearcher interface {
	Search(ctx context.Context, req SearchRequest) (*SearchResult, error)
}

// ResultStore is the write side of the result cache used by the sweep.
type ResultStore interface {
	// EnsureDir creates the cache directory if it does not exist.
	EnsureDir() error

	// Path returns the cache file path for the tuple.
	Path(t Tuple) string

	// Exists reports whether a cache file exists for the tuple.
	Exists(t Tuple) (bool, error)

	// Save persists a raw JSON payload for the tuple.
	Save(t Tuple, payload []byte) error
}

// ResultReader is the read side of the result cache used by the viewer.
type ResultReader interface {
	Exists(t Tuple) (bool, error)
	List() ([]CacheEntry, error)
	Load(key string) ([]byte, error)
}
