package ports

import (
	"context"

	"github.com/veloboard/flapship/internal/board"
)

// BoardSender transmits payloads to the board's remote control endpoint.
// Implementations handle serialization, HTTP communication and
// authentication; classification of the returned status is the
// dispatcher's job.
type BoardSender interface {
	// SendGrid submits a full display update. It returns the endpoint's
	// HTTP status code, or an error for transport failures that never
	// produced a status.
	SendGrid(ctx context.Context, grid board.Grid, meta SendMetadata) (int, error)

	// SendText submits the degraded plain-text fallback payload.
	SendText(ctx context.Context, text string, meta SendMetadata) (int, error)
}

// SendMetadata provides context for one send operation.
type SendMetadata struct {
	// BoardURL is the base URL of the board's read-write endpoint.
	BoardURL string

	// APIKey is the read-write key sent in the credential header.
	APIKey string

	// Test marks the dispatch as a test dispatch. Test dispatches are
	// flagged to the endpoint and never trigger the 400 fallback.
	Test bool
}
