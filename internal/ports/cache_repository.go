package ports

import (
	"context"

	"github.com/veloboard/flapship/internal/domain"
)

// CacheRepository handles dispatch cache persistence.
// Implementations persist records durably (e.g. a JSON file) with atomic
// writes, surviving restarts of the calling process.
type CacheRepository interface {
	// Lookup retrieves the record for an identity. The boolean reports
	// presence: absence is a valid state, not an error. Errors are
	// returned only for actual read failures.
	Lookup(ctx context.Context, id domain.ContentID) (domain.CacheRecord, bool, error)

	// Record persists the record for its identity, overwriting any
	// previous one.
	Record(ctx context.Context, rec domain.CacheRecord) error
}
