package objects

import "errors"

// Sentinel errors for the taxonomy defined in spec §7. Callers use
// errors.Is against these; engine-level errors wrap them with context
// via %w rather than replacing them.
var (
	// ErrNoChangesToCommit: commit invoked with an empty staging area
	// after Unchanged pruning.
	ErrNoChangesToCommit = errors.New("no changes to commit")

	// ErrConcurrentModification: the ref CAS lost the race. The
	// caller's object writes persisted but are now unreferenced.
	ErrConcurrentModification = errors.New("concurrent modification")

	// ErrNotFound: a reset target commit (or similar named lookup)
	// does not exist. Unreferenced graph lookups return (nil, nil),
	// not this error — this is reserved for operations that require
	// the target to exist.
	ErrNotFound = errors.New("not found")

	// ErrMalformedObject: deserialization failed, or a stored object
	// violates an invariant (e.g. an unrecognized tree node type).
	ErrMalformedObject = errors.New("malformed object")

	// ErrInvariant: a caller-bug-level violation — adding a blob
	// inside a leaf, descending through a leaf, a non-internal head
	// root, an empty path. These are fatal and not meant to be
	// retried.
	ErrInvariant = errors.New("invariant violation")
)
