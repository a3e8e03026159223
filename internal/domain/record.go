package domain

import "time"

// CacheRecord is the durable trace of the last successful dispatch for one
// content identity. It carries enough payload to re-render without going
// back to the upstream source while the record is still fresh.
// A missing record is a valid state meaning "no prior dispatch".
type CacheRecord struct {
	ID        ContentID `json:"id"`
	Content   Content   `json:"content"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FreshAt reports whether the record is still inside the freshness window
// as of now. Fresh records let the caller skip the upstream fetch; they
// never suppress the dispatch itself.
func (r CacheRecord) FreshAt(now time.Time, window time.Duration) bool {
	if r.UpdatedAt.IsZero() || window <= 0 {
		return false
	}
	return now.Sub(r.UpdatedAt) < window
}
