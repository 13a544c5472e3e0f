package petfeed

import "github.com/kailas-cloud/petfeed/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrCollaboratorUnavailable = domain.ErrCollaboratorUnavailable
	ErrInvalidRequest          = domain.ErrInvalidRequest
	ErrNotFound                = domain.ErrNotFound
)
