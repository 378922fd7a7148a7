package memstore

import (
	"context"

	"github.com/caslab/casvc/internal/objects"
)

type blobAdapter struct{ s *Store }

// Blobs returns a storage.BlobStorage backed by this Store.
func (s *Store) Blobs() blobAdapter { return blobAdapter{s} }

func (a blobAdapter) Load(ctx context.Context, hash string) (*objects.Blob, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	return a.s.blobs[hash], nil
}

func (a blobAdapter) Save(ctx context.Context, blob *objects.Blob) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	a.s.blobs[blob.Hash] = blob
	return nil
}

func (a blobAdapter) Delete(ctx context.Context, hash string) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	delete(a.s.blobs, hash)
	return nil
}

func (a blobAdapter) ListAll(ctx context.Context) ([]string, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	hashes := make([]string, 0, len(a.s.blobs))
	for h := range a.s.blobs {
		hashes = append(hashes, h)
	}
	return hashes, nil
}
