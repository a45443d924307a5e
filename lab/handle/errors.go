package handle

import "github.com/cockroachdb/errors"

var (
	// ErrConstructionFailed marks an allocation attempt that produced no handle.
	ErrConstructionFailed = errors.New("handle: allocation construction failed")

	// ErrReleaseFailed marks a handle whose resource could not be released.
	// The teardown guarantee no longer holds once this is returned.
	ErrReleaseFailed = errors.New("handle: resource release failed")

	// ErrNoResidency is returned by Resident for allocations that are not a
	// live mapping.
	ErrNoResidency = errors.New("handle: residency only tracked for mappings")

	// ErrDestroyed is returned when destroying a handle twice.
	ErrDestroyed = errors.New("handle: already destroyed")
)
