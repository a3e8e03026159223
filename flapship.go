// Package flapship renders short textual content onto a split-flap display.
//
// It converts resolved source lines into a 6x22 grid of flap codes,
// sanitizes the grid so a malformed payload can never reach the wire,
// enforces the board's minimum dispatch interval with a process-wide rate
// gate, classifies the board's responses, and remembers the last dispatch
// per content identity in a durable cache.
//
// Basic usage:
//
//	fs, err := flapship.New(flapship.Config{APIKey: key})
//	if err != nil {
//		log.Fatal(err)
//	}
//	outcome, err := fs.ShowMessage(ctx, flapship.Content{
//		Title:  "STAGE 12",
//		Accent: "red",
//		Lines:  []flapship.Line{{Text: "POGACAR  4:51:12"}},
//	})
//
// The embedding application decides when to render and where content comes
// from; flapship only encodes and dispatches.
package flapship

import (
	"context"
	"net/http"
	"time"

	"github.com/veloboard/flapship/internal/adapters/fs"
	httpadapter "github.com/veloboard/flapship/internal/adapters/http"
	logadapter "github.com/veloboard/flapship/internal/adapters/log"
	"github.com/veloboard/flapship/internal/app"
	"github.com/veloboard/flapship/internal/board"
	"github.com/veloboard/flapship/internal/domain"
	"github.com/veloboard/flapship/internal/ports"
	"github.com/veloboard/flapship/internal/preview"
)

// Aliases so embedding applications only import this package.
type (
	// ContentID identifies one piece of scheduled content.
	ContentID = domain.ContentID

	// Content is a render request's resolved source material.
	Content = domain.Content

	// Line is one source line with its alignment policy.
	Line = domain.Line

	// Outcome is the structured result of a dispatch attempt.
	Outcome = domain.Outcome

	// CacheRecord is the durable trace of a past dispatch.
	CacheRecord = domain.CacheRecord

	// Logger is the structured logging interface.
	Logger = ports.Logger

	// HTTPClient is the interface for making HTTP requests.
	// *http.Client satisfies this interface.
	HTTPClient = ports.HTTPClient

	// Clock is the injectable time source.
	Clock = ports.Clock

	// ContentSource resolves a content identity into source lines.
	ContentSource = ports.ContentSource

	// CacheRepository persists dispatch cache records.
	CacheRepository = ports.CacheRepository
)

// Re-exported domain errors, checkable with errors.Is.
var (
	ErrThrottled     = domain.ErrThrottled
	ErrRejected      = domain.ErrRejected
	ErrMalformedGrid = domain.ErrMalformedGrid
	ErrNoCredential  = domain.ErrNoCredential
	ErrInvalidConfig = domain.ErrInvalidConfig
	ErrNoContent     = domain.ErrNoContent
)

// Config holds the settings for a Flapship instance.
type Config struct {
	// BoardURL is the board's read-write endpoint. Empty means the
	// public endpoint.
	BoardURL string

	// APIKey is the read-write key sent with every dispatch. Required.
	APIKey string

	// DispatchInterval is the minimum spacing between calls to the
	// board. Non-positive means the 16 second default.
	DispatchInterval time.Duration

	// HTTPTimeout bounds each request. Non-positive means 15 seconds.
	HTTPTimeout time.Duration

	// Freshness is the window inside which cached content is reused
	// instead of re-fetched. Zero disables reuse.
	Freshness time.Duration

	// CacheDir is where the dispatch cache lives. Empty disables the
	// dispatch cache.
	CacheDir string

	// FallbackText is the template for the 400 fallback payload.
	// {title} and {stage} are substituted. Empty means "{title} {stage}".
	FallbackText string

	// TestMode marks every dispatch as a test dispatch: flagged to the
	// endpoint, 400 fallback disabled.
	TestMode bool
}

// Flapship is the public handle: one rate gate, one dispatcher, one render
// service. Create it once per process so every dispatch path shares the
// same gate.
type Flapship struct {
	service *app.Service
	clock   ports.Clock
}

// New creates a Flapship instance from the configuration and options.
func New(cfg Config, opts ...Option) (*Flapship, error) {
	if cfg.APIKey == "" {
		return nil, domain.ErrNoCredential
	}
	if cfg.BoardURL == "" {
		cfg.BoardURL = "https://rw.vestaboard.com"
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 15 * time.Second
	}

	o := defaultOptions(&http.Client{Timeout: cfg.HTTPTimeout})
	for _, opt := range opts {
		opt(&o)
	}

	sender := httpadapter.NewBoardSender(o.httpClient, o.logger)
	gate := app.NewGate(cfg.DispatchInterval, o.clock)
	meta := ports.SendMetadata{
		BoardURL: cfg.BoardURL,
		APIKey:   cfg.APIKey,
		Test:     cfg.TestMode,
	}
	dispatcher := app.NewDispatcher(gate, sender, meta, cfg.FallbackText, o.logger)

	cache := o.cache
	if cache == nil && cfg.CacheDir != "" {
		cache = fs.NewCacheFileRepository(cfg.CacheDir)
	}

	return &Flapship{
		service: app.NewService(dispatcher, o.source, cache, o.clock, cfg.Freshness, o.logger),
		clock:   o.clock,
	}, nil
}

// ShowView renders a scheduled content identity, fetching through the
// configured content source unless a fresh cache record can be reused.
// Requires WithContentSource.
func (f *Flapship) ShowView(ctx context.Context, view string, stage int) (Outcome, error) {
	return f.service.ShowView(ctx, view, stage)
}

// ShowMessage renders already-resolved content under the "message" identity.
func (f *Flapship) ShowMessage(ctx context.Context, content Content) (Outcome, error) {
	return f.service.ShowContent(ctx, ContentID{View: "message"}, content)
}

// ShowContent renders already-resolved content under an explicit identity.
func (f *Flapship) ShowContent(ctx context.Context, id ContentID, content Content) (Outcome, error) {
	return f.service.ShowContent(ctx, id, content)
}

// Clear dispatches an all-blank grid through the standard pipeline.
func (f *Flapship) Clear(ctx context.Context) (Outcome, error) {
	return f.service.Clear(ctx)
}

// Preview renders the exact sanitized grid for content as colored terminal
// cells, without contacting the board.
func (f *Flapship) Preview(content Content) string {
	grid := board.Sanitize(app.Compose(content, f.clock.Now()).Ints())
	return preview.Render(grid)
}

// NewConsoleLogger returns a zerolog-backed Logger writing to stderr, for
// embedders that want flapship's own console format.
func NewConsoleLogger() Logger {
	return logadapter.NewZerologAdapter()
}
