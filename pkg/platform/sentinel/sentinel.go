package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) so services can translate them into domain errors.
//
// These represent factual states about resources, not validation failures.
// For validation errors, use pkg/domain-errors directly.
var (
	// ErrNotFound: the record does not exist in the store.
	ErrNotFound = errors.New("not found")
	// ErrUnavailable: the backing service is temporarily unreachable.
	ErrUnavailable = errors.New("unavailable")
)
