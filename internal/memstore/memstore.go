// Package memstore implements all five storage ports in memory. It is
// meant for tests, demos, and short-lived processes; nothing here
// survives a restart.
package memstore

import (
	"sync"

	"github.com/caslab/casvc/internal/objects"
)

// Store bundles the five in-memory storage ports plus a Lock/Unlock
// convenience a caller can use to serialize GC against Commit, since
// the engine itself takes no internal lock (spec §4.5, §9).
type Store struct {
	mu   sync.Mutex // guards the maps; taken by every adapter call
	gcMu sync.Mutex // taken only by Lock/Unlock

	blobs   map[string]*objects.Blob
	trees   map[string]*objects.TreeNode
	commits map[string]*objects.Commit
	refs    map[string]*objects.Ref
	staging map[string]*objects.StagingItem
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		blobs:   make(map[string]*objects.Blob),
		trees:   make(map[string]*objects.TreeNode),
		commits: make(map[string]*objects.Commit),
		refs:    make(map[string]*objects.Ref),
		staging: make(map[string]*objects.StagingItem),
	}
}

// Lock acquires the store-wide caller lock. It is separate from the
// mutex the adapters take, so storage calls made while holding it do
// not block. A caller wraps a GC run (and any Commit it must not
// interleave with) in Lock/Unlock; the engine does not call this itself.
func (s *Store) Lock() { s.gcMu.Lock() }

// Unlock releases the store-wide caller lock acquired by Lock.
func (s *Store) Unlock() { s.gcMu.Unlock() }
