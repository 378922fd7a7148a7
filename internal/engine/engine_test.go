package engine_test

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/caslab/casvc/internal/engine"
	"github.com/caslab/casvc/internal/memstore"
	"github.com/caslab/casvc/internal/objects"
	"github.com/caslab/casvc/internal/storage"
)

// racingRefs wraps a RefStorage and runs beforeCAS once, just before
// the first CompareAndSwap goes through, so a rival writer can move the
// ref after this writer has already read its head.
type racingRefs struct {
	storage.RefStorage
	beforeCAS func()
}

func (r *racingRefs) CompareAndSwap(ctx context.Context, ref *objects.Ref, expectedPriorCommitHash string) (bool, error) {
	if f := r.beforeCAS; f != nil {
		r.beforeCAS = nil
		f()
	}
	return r.RefStorage.CompareAndSwap(ctx, ref, expectedPriorCommitHash)
}

func sha1Hex(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

func newTestEngine() *engine.Engine {
	store := memstore.New()
	return engine.New(store.Blobs(), store.Trees(), store.Commits(), store.Refs(), store.Staging())
}

// TestInitialCommit covers scenario 1 from spec §8.
func TestInitialCommit(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine()

	if err := e.Add(ctx, []string{"test.txt"}, []byte("hello world")); err != nil {
		t.Fatalf("Add: %v", err)
	}
	commit, err := e.Commit(ctx, "main", "Initial commit with test data")
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	log, err := e.Log(ctx, "main")
	if err != nil {
		t.Fatalf("Log: %v", err)
	}
	if len(log) != 1 {
		t.Fatalf("expected log length 1, got %d", len(log))
	}
	if log[0].Message != "Initial commit with test data" {
		t.Fatalf("unexpected message %q", log[0].Message)
	}
	if log[0].HasParent() {
		t.Fatalf("expected no parent on the first commit")
	}

	node, err := e.TreeLookup(ctx, commit.TreeRef, []string{"test.txt"})
	if err != nil {
		t.Fatalf("TreeLookup: %v", err)
	}
	if node == nil || !node.IsLeaf() {
		t.Fatalf("expected a leaf at test.txt, got %+v", node)
	}
	if node.Leaf.BlobRef != sha1Hex("hello world") {
		t.Fatalf("expected blob ref %s, got %s", sha1Hex("hello world"), node.Leaf.BlobRef)
	}
}

// TestMultiFileSingleCommit covers scenario 2 from spec §8.
func TestMultiFileSingleCommit(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine()

	_ = e.Add(ctx, []string{"file1.txt"}, []byte("one"))
	_ = e.Add(ctx, []string{"file2.txt"}, []byte("two"))
	_ = e.Add(ctx, []string{"dir", "file3.txt"}, []byte("three"))

	commit, err := e.Commit(ctx, "main", "three files")
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	root, err := e.TreeLookup(ctx, commit.TreeRef, nil)
	if err != nil {
		t.Fatalf("TreeLookup root: %v", err)
	}
	if root == nil || !root.IsInternal() {
		t.Fatalf("expected internal root")
	}
	if len(root.Internal.ChildrenRefs) != 3 {
		t.Fatalf("expected 3 children at root, got %d", len(root.Internal.ChildrenRefs))
	}

	for _, path := range [][]string{{"file1.txt"}, {"file2.txt"}, {"dir", "file3.txt"}} {
		node, err := e.TreeLookup(ctx, commit.TreeRef, path)
		if err != nil {
			t.Fatalf("TreeLookup %v: %v", path, err)
		}
		if node == nil {
			t.Fatalf("expected to find %v", path)
		}
	}
}

// TestDeleteFilePreservesSiblings covers scenario 3 from spec §8.
func TestDeleteFilePreservesSiblings(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine()

	_ = e.Add(ctx, []string{"file1.txt"}, []byte("one"))
	_ = e.Add(ctx, []string{"file2.txt"}, []byte("two"))
	_ = e.Add(ctx, []string{"dir", "file3.txt"}, []byte("three"))
	if _, err := e.Commit(ctx, "main", "initial"); err != nil {
		t.Fatalf("Commit 1: %v", err)
	}

	if err := e.Remove(ctx, []string{"file2.txt"}); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	commit2, err := e.Commit(ctx, "main", "delete file2")
	if err != nil {
		t.Fatalf("Commit 2: %v", err)
	}

	if node, _ := e.TreeLookup(ctx, commit2.TreeRef, []string{"file1.txt"}); node == nil {
		t.Fatalf("expected file1.txt to survive")
	}
	if node, _ := e.TreeLookup(ctx, commit2.TreeRef, []string{"dir", "file3.txt"}); node == nil {
		t.Fatalf("expected dir/file3.txt to survive")
	}
	if node, _ := e.TreeLookup(ctx, commit2.TreeRef, []string{"file2.txt"}); node != nil {
		t.Fatalf("expected file2.txt to be gone")
	}

	log, err := e.Log(ctx, "main")
	if err != nil {
		t.Fatalf("Log: %v", err)
	}
	if len(log) != 2 {
		t.Fatalf("expected log length 2, got %d", len(log))
	}
}

// TestEmptyCommitFails checks that committing with no staged changes fails.
func TestEmptyCommitFails(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine()

	_, err := e.Commit(ctx, "main", "nothing")
	if !errors.Is(err, objects.ErrNoChangesToCommit) {
		t.Fatalf("expected ErrNoChangesToCommit, got %v", err)
	}
}

// TestConcurrentModificationDetected simulates two writers racing on
// the same ref: the second commit must lose the CAS.
func TestConcurrentModificationDetected(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	e1 := engine.New(store.Blobs(), store.Trees(), store.Commits(), store.Refs(), store.Staging())
	refs2 := &racingRefs{RefStorage: store.Refs()}
	e2 := engine.New(store.Blobs(), store.Trees(), store.Commits(), refs2, memstore.New().Staging())

	_ = e1.Add(ctx, []string{"a.txt"}, []byte("a"))
	if _, err := e1.Commit(ctx, "main", "first"); err != nil {
		t.Fatalf("Commit 1: %v", err)
	}

	// Both writers observe the same head and race to commit against it:
	// e1's commit lands after e2 has read the head but before e2's CAS.
	_ = e1.Add(ctx, []string{"b.txt"}, []byte("b"))
	_ = e2.Add(ctx, []string{"c.txt"}, []byte("c"))

	var e1Err error
	refs2.beforeCAS = func() {
		_, e1Err = e1.Commit(ctx, "main", "second from e1")
	}
	_, err := e2.Commit(ctx, "main", "second from e2")
	if e1Err != nil {
		t.Fatalf("Commit from e1: %v", e1Err)
	}
	if !errors.Is(err, objects.ErrConcurrentModification) {
		t.Fatalf("expected ErrConcurrentModification, got %v", err)
	}
}

// TestGCOrphanReclamation covers scenario 5 from spec §8.
func TestGCOrphanReclamation(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine()

	_ = e.Add(ctx, []string{"f.txt"}, []byte("v1"))
	c1, _ := e.Commit(ctx, "main", "commit 1")
	_ = e.Add(ctx, []string{"f.txt"}, []byte("v2"))
	c2, _ := e.Commit(ctx, "main", "commit 2")
	_ = e.Add(ctx, []string{"f.txt"}, []byte("v3"))
	c3, err := e.Commit(ctx, "main", "commit 3")
	if err != nil {
		t.Fatalf("Commit 3: %v", err)
	}

	if err := e.Reset(ctx, "dev", c2.Hash); err != nil {
		t.Fatalf("Reset dev: %v", err)
	}
	if err := e.Reset(ctx, "main", c1.Hash); err != nil {
		t.Fatalf("Reset main: %v", err)
	}

	result, err := e.GC(ctx)
	if err != nil {
		t.Fatalf("GC: %v", err)
	}
	if result.Commits != 1 {
		t.Fatalf("expected 1 commit reclaimed, got %d", result.Commits)
	}

	if got, _ := e.GetCommit(ctx, c3.Hash); got != nil {
		t.Fatalf("expected commit 3 to be gone")
	}
	if got, _ := e.GetCommit(ctx, c1.Hash); got == nil {
		t.Fatalf("expected commit 1 to remain")
	}
	if got, _ := e.GetCommit(ctx, c2.Hash); got == nil {
		t.Fatalf("expected commit 2 to remain")
	}
}

// TestResetToPriorCommit covers scenario 6 from spec §8.
func TestResetToPriorCommit(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine()

	_ = e.Add(ctx, []string{"file.txt"}, []byte("v1"))
	c1, err := e.Commit(ctx, "main", "Commit 1")
	if err != nil {
		t.Fatalf("Commit 1: %v", err)
	}
	_ = e.Add(ctx, []string{"file.txt"}, []byte("v2"))
	if _, err := e.Commit(ctx, "main", "Commit 2"); err != nil {
		t.Fatalf("Commit 2: %v", err)
	}

	if err := e.Reset(ctx, "main", c1.Hash); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	head, err := e.GetCommitFromRef(ctx, "main")
	if err != nil {
		t.Fatalf("GetCommitFromRef: %v", err)
	}
	if head.Message != "Commit 1" {
		t.Fatalf("expected message %q, got %q", "Commit 1", head.Message)
	}

	node, err := e.TreeLookup(ctx, head.TreeRef, []string{"file.txt"})
	if err != nil {
		t.Fatalf("TreeLookup: %v", err)
	}
	if node.Leaf.BlobRef != sha1Hex("v1") {
		t.Fatalf("expected file.txt to hold v1's blob ref")
	}
}

// TestStructuralSharingBetweenCommits ensures an unmodified leaf keeps
// the same hash across commits (spec §4.2 "Structural sharing").
func TestStructuralSharingBetweenCommits(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine()

	_ = e.Add(ctx, []string{"unchanged.txt"}, []byte("same"))
	_ = e.Add(ctx, []string{"changed.txt"}, []byte("v1"))
	c1, err := e.Commit(ctx, "main", "first")
	if err != nil {
		t.Fatalf("Commit 1: %v", err)
	}

	_ = e.Add(ctx, []string{"changed.txt"}, []byte("v2"))
	c2, err := e.Commit(ctx, "main", "second")
	if err != nil {
		t.Fatalf("Commit 2: %v", err)
	}

	n1, _ := e.TreeLookup(ctx, c1.TreeRef, []string{"unchanged.txt"})
	n2, _ := e.TreeLookup(ctx, c2.TreeRef, []string{"unchanged.txt"})
	if n1.HashOf() != n2.HashOf() {
		t.Fatalf("expected unchanged.txt's node hash to be shared across commits")
	}
	if c1.TreeRef == c2.TreeRef {
		t.Fatalf("expected the tree root to differ since changed.txt differs")
	}
}
