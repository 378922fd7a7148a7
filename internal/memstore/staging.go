package memstore

import (
	"context"

	"github.com/caslab/casvc/internal/objects"
)

type stagingAdapter struct{ s *Store }

// Staging returns a storage.StagingStorage backed by this Store. The
// staging area is global to the Store, not keyed by ref (spec §9).
func (s *Store) Staging() stagingAdapter { return stagingAdapter{s} }

func (a stagingAdapter) Load(ctx context.Context) ([]*objects.StagingItem, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	items := make([]*objects.StagingItem, 0, len(a.s.staging))
	for _, item := range a.s.staging {
		items = append(items, item)
	}
	return items, nil
}

func (a stagingAdapter) Add(ctx context.Context, item *objects.StagingItem) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	a.s.staging[item.PathKey()] = item
	return nil
}

func (a stagingAdapter) Remove(ctx context.Context, path []string) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	delete(a.s.staging, objects.JoinPath(path))
	return nil
}

func (a stagingAdapter) Clear(ctx context.Context) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	a.s.staging = make(map[string]*objects.StagingItem)
	return nil
}
