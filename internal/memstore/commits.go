package memstore

import (
	"context"

	"github.com/caslab/casvc/internal/objects"
)

type commitAdapter struct{ s *Store }

// Commits returns a storage.CommitStorage backed by this Store.
func (s *Store) Commits() commitAdapter { return commitAdapter{s} }

func (a commitAdapter) Load(ctx context.Context, hash string) (*objects.Commit, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	return a.s.commits[hash], nil
}

func (a commitAdapter) Save(ctx context.Context, commit *objects.Commit) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	a.s.commits[commit.Hash] = commit
	return nil
}

func (a commitAdapter) Delete(ctx context.Context, hash string) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	delete(a.s.commits, hash)
	return nil
}

func (a commitAdapter) ListAll(ctx context.Context) ([]string, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	hashes := make([]string, 0, len(a.s.commits))
	for h := range a.s.commits {
		hashes = append(hashes, h)
	}
	return hashes, nil
}
