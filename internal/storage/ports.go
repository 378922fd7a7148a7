// Package storage defines the five collaborator interfaces the engine
// consumes but never implements for production durability (spec §1,
// §6). Every method is asynchronous — it takes a context.Context and
// may suspend at any point — and failures propagate unchanged to the
// caller. Concrete implementations (in-memory, Postgres, anything
// else a host application wires up) live in sibling packages; this
// package only defines the contract.
package storage

import (
	"context"

	"github.com/caslab/casvc/internal/objects"
)

// BlobStorage persists content-addressed blobs.
type BlobStorage interface {
	Load(ctx context.Context, hash string) (*objects.Blob, error)
	Save(ctx context.Context, blob *objects.Blob) error
	Delete(ctx context.Context, hash string) error
	ListAll(ctx context.Context) ([]string, error)
}

// TreeStorage persists content-addressed tree nodes (leaves and
// internal nodes alike).
type TreeStorage interface {
	Load(ctx context.Context, hash string) (*objects.TreeNode, error)
	Save(ctx context.Context, node *objects.TreeNode) error
	Delete(ctx context.Context, hash string) error
	ListAll(ctx context.Context) ([]string, error)
}

// CommitStorage persists content-addressed commits.
type CommitStorage interface {
	Load(ctx context.Context, hash string) (*objects.Commit, error)
	Save(ctx context.Context, commit *objects.Commit) error
	Delete(ctx context.Context, hash string) error
	ListAll(ctx context.Context) ([]string, error)
}

// RefStorage manages named mutable pointers to commits. CompareAndSwap
// is the engine's sole atomicity requirement: it must be linearizable
// with respect to every other CompareAndSwap and Save call on the same
// name.
type RefStorage interface {
	Load(ctx context.Context, name string) (*objects.Ref, error)
	// Save unconditionally replaces a ref (used by reset).
	Save(ctx context.Context, ref *objects.Ref) error
	Delete(ctx context.Context, name string) error
	ListAll(ctx context.Context) ([]string, error)
	// CompareAndSwap atomically updates ref to its new value only if
	// the ref's current commit hash equals expectedPriorCommitHash.
	// An empty expectedPriorCommitHash means "the ref must not
	// currently exist". Returns true on success.
	CompareAndSwap(ctx context.Context, ref *objects.Ref, expectedPriorCommitHash string) (bool, error)
}

// StagingStorage holds the pending path-scoped edits awaiting commit.
// It is global to the engine instance, not keyed by ref (spec §9) —
// callers managing multiple refs concurrently must serialize
// themselves or supply a storage implementation partitioned per ref.
type StagingStorage interface {
	Load(ctx context.Context) ([]*objects.StagingItem, error)
	// Add replaces any existing entry at the same path.
	Add(ctx context.Context, item *objects.StagingItem) error
	Remove(ctx context.Context, path []string) error
	Clear(ctx context.Context) error
}
