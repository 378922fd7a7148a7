package builder

import (
	"context"
	"errors"
	"testing"

	"github.com/caslab/casvc/internal/objects"
)

// memTreeStore is a minimal in-process TreeStorage stub for exercising
// the builder in isolation, without pulling in internal/memstore.
type memTreeStore struct {
	nodes map[string]*objects.TreeNode
}

func newMemTreeStore() *memTreeStore {
	return &memTreeStore{nodes: make(map[string]*objects.TreeNode)}
}

func (m *memTreeStore) Load(_ context.Context, hash string) (*objects.TreeNode, error) {
	return m.nodes[hash], nil
}

func (m *memTreeStore) Save(_ context.Context, node *objects.TreeNode) error {
	m.nodes[node.HashOf()] = node
	return nil
}

func (m *memTreeStore) Delete(_ context.Context, hash string) error {
	delete(m.nodes, hash)
	return nil
}

func (m *memTreeStore) ListAll(_ context.Context) ([]string, error) {
	hashes := make([]string, 0, len(m.nodes))
	for h := range m.nodes {
		hashes = append(hashes, h)
	}
	return hashes, nil
}

func TestBuilderSaveSingleFile(t *testing.T) {
	ctx := context.Background()
	store := newMemTreeStore()

	b, err := New(nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := b.Save(ctx, store, []string{"a.txt"}, "blobhash1"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	root, err := b.Persist(ctx, store)
	if err != nil {
		t.Fatalf("Persist: %v", err)
	}
	if root == nil || !root.IsInternal() {
		t.Fatalf("expected internal root, got %+v", root)
	}
	if len(root.Internal.ChildrenRefs) != 1 {
		t.Fatalf("expected 1 child ref, got %d", len(root.Internal.ChildrenRefs))
	}
}

func TestBuilderSaveNestedPath(t *testing.T) {
	ctx := context.Background()
	store := newMemTreeStore()

	b, _ := New(nil)
	if err := b.Save(ctx, store, []string{"dir", "sub", "file.txt"}, "h1"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	root, err := b.Persist(ctx, store)
	if err != nil {
		t.Fatalf("Persist: %v", err)
	}

	dirHash := root.Internal.ChildrenRefs[0]
	dirNode, _ := store.Load(ctx, dirHash)
	if !dirNode.IsInternal() || dirNode.Internal.Name != "dir" {
		t.Fatalf("expected dir internal node, got %+v", dirNode)
	}
	subHash := dirNode.Internal.ChildrenRefs[0]
	subNode, _ := store.Load(ctx, subHash)
	if !subNode.IsInternal() || subNode.Internal.Name != "sub" {
		t.Fatalf("expected sub internal node, got %+v", subNode)
	}
	fileHash := subNode.Internal.ChildrenRefs[0]
	fileNode, _ := store.Load(ctx, fileHash)
	if !fileNode.IsLeaf() || fileNode.Leaf.Name != "file.txt" || fileNode.Leaf.BlobRef != "h1" {
		t.Fatalf("expected leaf file.txt->h1, got %+v", fileNode)
	}
}

func TestBuilderStructuralSharingAcrossCommits(t *testing.T) {
	ctx := context.Background()
	store := newMemTreeStore()

	b1, _ := New(nil)
	_ = b1.Save(ctx, store, []string{"unchanged.txt"}, "h-unchanged")
	_ = b1.Save(ctx, store, []string{"changed.txt"}, "h-old")
	root1, err := b1.Persist(ctx, store)
	if err != nil {
		t.Fatalf("Persist 1: %v", err)
	}

	b2, err := New(root1)
	if err != nil {
		t.Fatalf("New from existing: %v", err)
	}
	if err := b2.Save(ctx, store, []string{"changed.txt"}, "h-new"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	root2, err := b2.Persist(ctx, store)
	if err != nil {
		t.Fatalf("Persist 2: %v", err)
	}

	if root1.HashOf() == root2.HashOf() {
		t.Fatalf("expected distinct roots after a real change")
	}

	var unchangedRef1, unchangedRef2 string
	for _, ref := range root1.Internal.ChildrenRefs {
		if n, _ := store.Load(ctx, ref); n.IsLeaf() && n.Leaf.Name == "unchanged.txt" {
			unchangedRef1 = ref
		}
	}
	for _, ref := range root2.Internal.ChildrenRefs {
		if n, _ := store.Load(ctx, ref); n.IsLeaf() && n.Leaf.Name == "unchanged.txt" {
			unchangedRef2 = ref
		}
	}
	if unchangedRef1 == "" || unchangedRef1 != unchangedRef2 {
		t.Fatalf("expected the untouched leaf to be shared by hash: %q vs %q", unchangedRef1, unchangedRef2)
	}
}

func TestBuilderRemoveCollapsesEmptyDirectories(t *testing.T) {
	ctx := context.Background()
	store := newMemTreeStore()

	b1, _ := New(nil)
	_ = b1.Save(ctx, store, []string{"dir", "only.txt"}, "h1")
	root1, err := b1.Persist(ctx, store)
	if err != nil {
		t.Fatalf("Persist 1: %v", err)
	}

	b2, err := New(root1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := b2.Remove(ctx, store, []string{"dir", "only.txt"}); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	root2, err := b2.Persist(ctx, store)
	if err != nil {
		t.Fatalf("Persist 2: %v", err)
	}
	if root2 != nil {
		t.Fatalf("expected a nil root after removing the only file, got %+v", root2)
	}
}

func TestBuilderRemoveNonexistentPathIsNoop(t *testing.T) {
	ctx := context.Background()
	store := newMemTreeStore()

	b, _ := New(nil)
	_ = b.Save(ctx, store, []string{"a.txt"}, "h1")
	if err := b.Remove(ctx, store, []string{"missing.txt"}); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	root, err := b.Persist(ctx, store)
	if err != nil {
		t.Fatalf("Persist: %v", err)
	}
	if len(root.Internal.ChildrenRefs) != 1 {
		t.Fatalf("expected the existing file to survive the no-op remove")
	}
}

func TestBuilderDescendingThroughLeafFails(t *testing.T) {
	ctx := context.Background()
	store := newMemTreeStore()

	b, _ := New(nil)
	if err := b.Save(ctx, store, []string{"a"}, "h1"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	err := b.Save(ctx, store, []string{"a", "b"}, "h2")
	if err == nil {
		t.Fatalf("expected an error descending through a leaf")
	}
	if !errors.Is(err, objects.ErrInvariant) {
		t.Fatalf("expected ErrInvariant, got %v", err)
	}
}

func TestBuilderBlobOntoInternalNodeFails(t *testing.T) {
	ctx := context.Background()
	store := newMemTreeStore()

	b, _ := New(nil)
	if err := b.Save(ctx, store, []string{"dir", "file"}, "h1"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	err := b.Save(ctx, store, []string{"dir"}, "h2")
	if err == nil {
		t.Fatalf("expected an error writing a blob onto an internal node")
	}
	if !errors.Is(err, objects.ErrInvariant) {
		t.Fatalf("expected ErrInvariant, got %v", err)
	}
}
