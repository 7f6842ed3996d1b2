package domain

import "errors"

var (
	// ErrDiscoveryUnavailable signals that the content store could not supply
	// a corpus. Search and recommendation requests fail as a whole, never
	// with partial results.
	ErrDiscoveryUnavailable = errors.New("discovery unavailable")
	// ErrContentNotFound signals a missing content item.
	ErrContentNotFound = errors.New("content not found")
	// ErrUnknownPool signals an unknown secondary reference pool.
	ErrUnknownPool = errors.New("unknown reference pool")
	// ErrInvalidFilter signals an invalid search filter.
	ErrInvalidFilter = errors.New("invalid filter")
)

// KeyPrefix namespaces all store keys written by the engine.
const KeyPrefix = "build24:"
