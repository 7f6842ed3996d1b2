package discovery

import "github.com/Build24-Tech/discovery-engine/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrContentNotFound      = domain.ErrContentNotFound
	ErrInvalidFilter        = domain.ErrInvalidFilter
	ErrUnknownPool          = domain.ErrUnknownPool
	ErrDiscoveryUnavailable = domain.ErrDiscoveryUnavailable
)
