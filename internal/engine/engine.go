// Package engine implements the L4 repository operations: add, remove,
// clear, get_staging_changes, commit, log, reset, tree_lookup,
// get_commit, get_commit_from_ref, gc, plus the supplemented Exists and
// ListRefs operations. It is the only package that sequences the L2
// storage ports and the L3 builder together.
package engine

import (
	"context"
	"fmt"

	"github.com/caslab/casvc/internal/builder"
	"github.com/caslab/casvc/internal/objects"
	"github.com/caslab/casvc/internal/storage"
)

// Engine holds references to the five storage ports a host application
// wires up. It carries no internal locking — callers running gc
// concurrently with commits on the same stores must serialize
// themselves (spec §4.5, §5).
type Engine struct {
	Blobs   storage.BlobStorage
	Trees   storage.TreeStorage
	Commits storage.CommitStorage
	Refs    storage.RefStorage
	Staging storage.StagingStorage
}

// New constructs an Engine over the given storage ports.
func New(blobs storage.BlobStorage, trees storage.TreeStorage, commits storage.CommitStorage, refs storage.RefStorage, staging storage.StagingStorage) *Engine {
	return &Engine{Blobs: blobs, Trees: trees, Commits: commits, Refs: refs, Staging: staging}
}

// Add stages a write of content at path.
func (e *Engine) Add(ctx context.Context, path []string, content []byte) error {
	if len(path) == 0 {
		return fmt.Errorf("%w: add requires a non-empty path", objects.ErrInvariant)
	}
	return e.Staging.Add(ctx, &objects.StagingItem{Path: path, Blob: objects.NewBlob(content)})
}

// Remove stages a deletion at path.
func (e *Engine) Remove(ctx context.Context, path []string) error {
	if len(path) == 0 {
		return fmt.Errorf("%w: remove requires a non-empty path", objects.ErrInvariant)
	}
	return e.Staging.Add(ctx, &objects.StagingItem{Path: path, Blob: nil})
}

// Clear discards every staged item without affecting the object graph.
func (e *Engine) Clear(ctx context.Context) error {
	return e.Staging.Clear(ctx)
}

// GetStagingChanges loads every staged item, classifies it against the
// tree at ref's head commit, drops Unchanged items from the staging
// store, and returns the rest. It never mutates the object graph.
func (e *Engine) GetStagingChanges(ctx context.Context, refName string) ([]objects.StagingChange, error) {
	items, err := e.Staging.Load(ctx)
	if err != nil {
		return nil, err
	}

	headRoot, err := e.headRoot(ctx, refName)
	if err != nil {
		return nil, err
	}

	var changes []objects.StagingChange
	for _, item := range items {
		existing, err := e.lookupInRoot(ctx, headRoot, item.Path)
		if err != nil {
			return nil, err
		}
		changeType := objects.ClassifyChange(existing, item)
		if changeType == objects.ChangeUnchanged {
			if err := e.Staging.Remove(ctx, item.Path); err != nil {
				return nil, err
			}
			continue
		}
		changes = append(changes, objects.StagingChange{
			Item: objects.Item{Path: objects.JoinPath(item.Path), Blob: item.Blob},
			Type: changeType,
		})
	}
	return changes, nil
}

// Commit executes the commit protocol from spec §4.4 against refName.
func (e *Engine) Commit(ctx context.Context, refName, message string) (*objects.Commit, error) {
	changes, err := e.GetStagingChanges(ctx, refName)
	if err != nil {
		return nil, err
	}
	if len(changes) == 0 {
		return nil, objects.ErrNoChangesToCommit
	}

	headCommit, err := e.GetCommitFromRef(ctx, refName)
	if err != nil {
		return nil, err
	}
	var expectedCommitHash string
	if headCommit != nil {
		expectedCommitHash = headCommit.Hash
	}

	headRoot, err := e.headRoot(ctx, refName)
	if err != nil {
		return nil, err
	}

	b, err := builder.New(headRoot)
	if err != nil {
		return nil, err
	}

	for _, change := range changes {
		path := objects.SplitPath(change.Item.Path)
		switch change.Type {
		case objects.ChangeAdd, objects.ChangeUpdate:
			if err := e.Blobs.Save(ctx, change.Item.Blob); err != nil {
				return nil, err
			}
			if err := b.Save(ctx, e.Trees, path, change.Item.Blob.Hash); err != nil {
				return nil, err
			}
		case objects.ChangeRemove:
			if err := b.Remove(ctx, e.Trees, path); err != nil {
				return nil, err
			}
		}
	}

	newRoot, err := b.Persist(ctx, e.Trees)
	if err != nil {
		return nil, err
	}

	var treeRef string
	if newRoot != nil {
		treeRef = newRoot.HashOf()
	}
	newCommit := objects.NewCommit(message, treeRef, expectedCommitHash)
	if err := e.Commits.Save(ctx, newCommit); err != nil {
		return nil, err
	}

	ok, err := e.Refs.CompareAndSwap(ctx, objects.NewRef(refName, newCommit.Hash), expectedCommitHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: ref %q changed concurrently", objects.ErrConcurrentModification, refName)
	}

	if err := e.Staging.Clear(ctx); err != nil {
		return nil, err
	}
	return newCommit, nil
}

// Log returns the commit chain from refName's head, newest first. An
// absent ref yields an empty list.
func (e *Engine) Log(ctx context.Context, refName string) ([]*objects.Commit, error) {
	head, err := e.GetCommitFromRef(ctx, refName)
	if err != nil {
		return nil, err
	}
	var chain []*objects.Commit
	for cur := head; cur != nil; {
		chain = append(chain, cur)
		if !cur.HasParent() {
			break
		}
		next, err := e.GetCommit(ctx, cur.PreviousCommitRef)
		if err != nil {
			return nil, err
		}
		if next == nil {
			return nil, fmt.Errorf("%w: commit %s references missing parent %s", objects.ErrMalformedObject, cur.Hash, cur.PreviousCommitRef)
		}
		cur = next
	}
	return chain, nil
}

// Reset verifies commitHash exists, then writes refName to point at it
// unconditionally, creating the ref if absent.
func (e *Engine) Reset(ctx context.Context, refName, commitHash string) error {
	commit, err := e.GetCommit(ctx, commitHash)
	if err != nil {
		return err
	}
	if commit == nil {
		return fmt.Errorf("%w: commit %s", objects.ErrNotFound, commitHash)
	}
	return e.Refs.Save(ctx, objects.NewRef(refName, commitHash))
}

// TreeLookup walks the tree rooted at treeHash one path component at a
// time, returning the final node (leaf or internal) if found.
func (e *Engine) TreeLookup(ctx context.Context, treeHash string, path []string) (*objects.TreeNode, error) {
	if treeHash == "" {
		return nil, nil
	}
	root, err := e.Trees.Load(ctx, treeHash)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, fmt.Errorf("%w: tree node %s", objects.ErrMalformedObject, treeHash)
	}
	return e.lookupInRoot(ctx, root, path)
}

// GetCommit loads a commit by hash, or (nil, nil) if absent.
func (e *Engine) GetCommit(ctx context.Context, hash string) (*objects.Commit, error) {
	if hash == "" {
		return nil, nil
	}
	return e.Commits.Load(ctx, hash)
}

// GetCommitFromRef loads refName's head commit, or (nil, nil) if the
// ref does not exist.
func (e *Engine) GetCommitFromRef(ctx context.Context, refName string) (*objects.Commit, error) {
	ref, err := e.Refs.Load(ctx, refName)
	if err != nil {
		return nil, err
	}
	if ref == nil {
		return nil, nil
	}
	return e.GetCommit(ctx, ref.CommitRef)
}

// Exists reports whether path is present in refName's head tree,
// without loading its blob content.
func (e *Engine) Exists(ctx context.Context, refName string, path []string) (bool, error) {
	root, err := e.headRoot(ctx, refName)
	if err != nil {
		return false, err
	}
	node, err := e.lookupInRoot(ctx, root, path)
	if err != nil {
		return false, err
	}
	return node != nil, nil
}

// ListRefs enumerates every stored ref name.
func (e *Engine) ListRefs(ctx context.Context) ([]string, error) {
	return e.Refs.ListAll(ctx)
}

// headRoot loads refName's head commit's tree root, if any, asserting
// it is internal per spec §4.4 step 3.
func (e *Engine) headRoot(ctx context.Context, refName string) (*objects.TreeNode, error) {
	headCommit, err := e.GetCommitFromRef(ctx, refName)
	if err != nil {
		return nil, err
	}
	if headCommit == nil || !headCommit.HasTree() {
		return nil, nil
	}
	root, err := e.Trees.Load(ctx, headCommit.TreeRef)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, fmt.Errorf("%w: tree node %s", objects.ErrMalformedObject, headCommit.TreeRef)
	}
	if !root.IsInternal() {
		return nil, fmt.Errorf("%w: head tree root %s is not internal", objects.ErrInvariant, headCommit.TreeRef)
	}
	return root, nil
}

// lookupInRoot implements tree_lookup against an already-loaded root
// node (root may be nil for an empty tree).
func (e *Engine) lookupInRoot(ctx context.Context, root *objects.TreeNode, path []string) (*objects.TreeNode, error) {
	cur := root
	for _, comp := range path {
		if cur == nil {
			return nil, nil
		}
		if cur.IsLeaf() {
			return nil, nil
		}
		var next *objects.TreeNode
		for _, ref := range cur.Internal.ChildrenRefs {
			child, err := e.Trees.Load(ctx, ref)
			if err != nil {
				return nil, err
			}
			if child == nil {
				return nil, fmt.Errorf("%w: tree node %s referenced but missing", objects.ErrMalformedObject, ref)
			}
			if child.NameOf() == comp {
				next = child
				break
			}
		}
		cur = next
	}
	return cur, nil
}
