package memstore

import (
	"context"

	"github.com/caslab/casvc/internal/objects"
)

type refAdapter struct{ s *Store }

// Refs returns a storage.RefStorage backed by this Store.
func (s *Store) Refs() refAdapter { return refAdapter{s} }

func (a refAdapter) Load(ctx context.Context, name string) (*objects.Ref, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	return a.s.refs[name], nil
}

func (a refAdapter) Save(ctx context.Context, ref *objects.Ref) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	a.s.refs[ref.Name] = ref
	return nil
}

func (a refAdapter) Delete(ctx context.Context, name string) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	delete(a.s.refs, name)
	return nil
}

func (a refAdapter) ListAll(ctx context.Context) ([]string, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	names := make([]string, 0, len(a.s.refs))
	for n := range a.s.refs {
		names = append(names, n)
	}
	return names, nil
}

// CompareAndSwap atomically replaces the ref named ref.Name with ref
// if its current commit hash equals expectedPriorCommitHash. An empty
// expectedPriorCommitHash requires the ref to currently be absent.
func (a refAdapter) CompareAndSwap(ctx context.Context, ref *objects.Ref, expectedPriorCommitHash string) (bool, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	current, ok := a.s.refs[ref.Name]
	var currentHash string
	if ok {
		currentHash = current.CommitRef
	}
	if currentHash != expectedPriorCommitHash {
		return false, nil
	}
	a.s.refs[ref.Name] = ref
	return true, nil
}
