package domain

import "errors"

// Domain errors represent error conditions in the flapship domain.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrThrottled is returned when the board reports a rate-limit
	// violation (503). Never retried automatically: an immediate retry
	// would compound the violation.
	ErrThrottled = errors.New("flapship: board throttled the request")

	// ErrRejected is returned when the board rejects the payload (400)
	// and the one-shot text fallback also failed or was unavailable.
	ErrRejected = errors.New("flapship: board rejected the payload")

	// ErrMalformedGrid is returned when a grid reaches the dispatcher
	// without passing the sanitize gate. The network is never contacted.
	ErrMalformedGrid = errors.New("flapship: malformed grid")

	// ErrNoCredential is returned when no read-write key could be
	// resolved from flags, environment, config file or keychain.
	ErrNoCredential = errors.New("flapship: no read-write key configured")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("flapship: invalid configuration")

	// ErrNoContent is returned when the content source produced nothing
	// to show for a requested identity.
	ErrNoContent = errors.New("flapship: no content for identity")
)
