package memstore

import (
	"context"

	"github.com/caslab/casvc/internal/objects"
)

type treeAdapter struct{ s *Store }

// Trees returns a storage.TreeStorage backed by this Store.
func (s *Store) Trees() treeAdapter { return treeAdapter{s} }

func (a treeAdapter) Load(ctx context.Context, hash string) (*objects.TreeNode, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	return a.s.trees[hash], nil
}

func (a treeAdapter) Save(ctx context.Context, node *objects.TreeNode) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	a.s.trees[node.HashOf()] = node
	return nil
}

func (a treeAdapter) Delete(ctx context.Context, hash string) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	delete(a.s.trees, hash)
	return nil
}

func (a treeAdapter) ListAll(ctx context.Context) ([]string, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	hashes := make([]string, 0, len(a.s.trees))
	for h := range a.s.trees {
		hashes = append(hashes, h)
	}
	return hashes, nil
}
