package memstore_test

import (
	"context"
	"testing"

	"github.com/caslab/casvc/internal/memstore"
	"github.com/caslab/casvc/internal/objects"
)

func TestRefCompareAndSwap(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	refs := store.Refs()

	ok, err := refs.CompareAndSwap(ctx, objects.NewRef("main", "c1"), "")
	if err != nil {
		t.Fatalf("CompareAndSwap: %v", err)
	}
	if !ok {
		t.Fatalf("expected CAS to succeed creating a new ref")
	}

	ok, err = refs.CompareAndSwap(ctx, objects.NewRef("main", "c2"), "wrong-hash")
	if err != nil {
		t.Fatalf("CompareAndSwap: %v", err)
	}
	if ok {
		t.Fatalf("expected CAS to fail against a stale expected hash")
	}

	ok, err = refs.CompareAndSwap(ctx, objects.NewRef("main", "c2"), "c1")
	if err != nil {
		t.Fatalf("CompareAndSwap: %v", err)
	}
	if !ok {
		t.Fatalf("expected CAS to succeed with the correct expected hash")
	}

	loaded, err := refs.Load(ctx, "main")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.CommitRef != "c2" {
		t.Fatalf("expected main to point at c2, got %q", loaded.CommitRef)
	}
}

func TestStagingAddRemoveClear(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	staging := store.Staging()

	_ = staging.Add(ctx, &objects.StagingItem{Path: []string{"a.txt"}, Blob: objects.NewBlob([]byte("a"))})
	_ = staging.Add(ctx, &objects.StagingItem{Path: []string{"b.txt"}, Blob: objects.NewBlob([]byte("b"))})

	items, err := staging.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 staged items, got %d", len(items))
	}

	if err := staging.Remove(ctx, []string{"a.txt"}); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	items, _ = staging.Load(ctx)
	if len(items) != 1 {
		t.Fatalf("expected 1 staged item after remove, got %d", len(items))
	}

	if err := staging.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	items, _ = staging.Load(ctx)
	if len(items) != 0 {
		t.Fatalf("expected 0 staged items after clear, got %d", len(items))
	}
}

func TestBlobStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	blobs := store.Blobs()

	blob := objects.NewBlob([]byte("payload"))
	if err := blobs.Save(ctx, blob); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := blobs.Load(ctx, blob.Hash)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded == nil || string(loaded.Content) != "payload" {
		t.Fatalf("expected round-tripped content, got %+v", loaded)
	}

	if err := blobs.Delete(ctx, blob.Hash); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	loaded, _ = blobs.Load(ctx, blob.Hash)
	if loaded != nil {
		t.Fatalf("expected blob to be gone after delete")
	}
}
