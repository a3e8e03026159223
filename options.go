package flapship

import (
	logadapter "github.com/veloboard/flapship/internal/adapters/log"
	"github.com/veloboard/flapship/internal/ports"
)

// Option configures optional behavior of a Flapship instance.
type Option func(*options)

// options holds the optional dependencies of a Flapship instance.
type options struct {
	httpClient ports.HTTPClient
	logger     ports.Logger
	clock      ports.Clock
	source     ports.ContentSource
	cache      ports.CacheRepository
}

// defaultOptions returns options with sensible defaults.
func defaultOptions(client ports.HTTPClient) options {
	return options{
		httpClient: client,
		logger:     logadapter.NewNoopLogger(),
		clock:      ports.SystemClock{},
	}
}

// WithHTTPClient sets a custom HTTP client for board communication.
// If not provided, a default client with the configured timeout is used.
func WithHTTPClient(client HTTPClient) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithClock injects a time source, used by tests to drive the rate gate
// deterministically.
func WithClock(clock Clock) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// WithContentSource sets the source that resolves content identities into
// lines. Required for ShowView.
func WithContentSource(source ContentSource) Option {
	return func(o *options) {
		o.source = source
	}
}

// WithCacheRepository overrides the dispatch cache implementation. When
// unset, a file repository in Config.CacheDir is used (or no cache when
// CacheDir is empty).
func WithCacheRepository(cache CacheRepository) Option {
	return func(o *options) {
		o.cache = cache
	}
}
