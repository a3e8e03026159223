package ports

import (
	"context"

	"github.com/veloboard/flapship/internal/domain"
)

// ContentSource resolves a content identity into source lines. The out of
// scope scraping and selection logic lives behind this interface, so the
// core never depends on third-party page structure.
type ContentSource interface {
	// Fetch returns the content for an identity. An identity the source
	// does not know yields domain.ErrNoContent.
	Fetch(ctx context.Context, id domain.ContentID) (domain.Content, error)
}
