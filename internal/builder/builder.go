// Package builder implements the tree-mutation builder: a transient
// overlay over an existing (or absent) root tree that accumulates a
// batch of path-scoped writes and deletes, then persists the result
// bottom-up with structural sharing against whatever was already
// stored (spec §4.2).
//
// A Builder is single-use: construct it, call Save/Remove any number
// of times, then call Persist once to flush. It is not safe for
// concurrent use.
package builder

import (
	"context"
	"fmt"

	"github.com/caslab/casvc/internal/objects"
	"github.com/caslab/casvc/internal/storage"
)

// Builder accumulates edits against a root overlay and flushes them to
// a TreeStorage in one Persist call.
type Builder struct {
	root *overlayNode
}

// New starts a builder over an existing root tree. root must be an
// internal node; a nil root starts from an empty repository.
func New(root *objects.TreeNode) (*Builder, error) {
	if root == nil {
		return &Builder{root: newInternalOverlay("root")}, nil
	}
	if !root.IsInternal() {
		return nil, fmt.Errorf("%w: head tree root must be an internal node", objects.ErrInvariant)
	}
	o := overlayFromExisting(root)
	o.name = "root"
	return &Builder{root: o}, nil
}

// Save records a write of blobRef at path, creating intermediate
// directories as needed. path must be non-empty. Descending through an
// existing leaf, or writing a blob directly onto an existing internal
// node, fails with ErrInvariant.
func (b *Builder) Save(ctx context.Context, trees storage.TreeStorage, path []string, blobRef string) error {
	if len(path) == 0 {
		return fmt.Errorf("%w: save requires a non-empty path", objects.ErrInvariant)
	}

	cur := b.root
	cur.touched = true
	if err := cur.ensureChildrenLoaded(ctx, trees); err != nil {
		return err
	}

	for _, comp := range path[:len(path)-1] {
		child, ok := cur.children[comp]
		if !ok {
			child = newInternalOverlay(comp)
			cur.children[comp] = child
		} else {
			if child.kind == kindLeaf {
				return fmt.Errorf("%w: cannot add to non-internal node at %q", objects.ErrInvariant, comp)
			}
			child.touched = true
			if err := child.ensureChildrenLoaded(ctx, trees); err != nil {
				return err
			}
		}
		cur = child
	}

	last := path[len(path)-1]
	if existingChild, ok := cur.children[last]; ok && existingChild.kind == kindInternal {
		return fmt.Errorf("%w: cannot add blob to non-leaf node at %q", objects.ErrInvariant, last)
	}
	cur.children[last] = &overlayNode{kind: kindLeaf, name: last, blobRef: blobRef, touched: true}
	return nil
}

// Remove records a deletion at path. Removing a path that does not
// exist is a silent no-op. path must be non-empty.
func (b *Builder) Remove(ctx context.Context, trees storage.TreeStorage, path []string) error {
	if len(path) == 0 {
		return fmt.Errorf("%w: remove requires a non-empty path", objects.ErrInvariant)
	}
	_, err := removeAt(ctx, trees, b.root, path)
	return err
}

// removeAt deletes path from node's subtree and reports whether node
// has no children left afterward, so the caller can prune it too.
func removeAt(ctx context.Context, trees storage.TreeStorage, node *overlayNode, path []string) (bool, error) {
	node.touched = true
	if err := node.ensureChildrenLoaded(ctx, trees); err != nil {
		return false, err
	}

	name := path[0]
	child, ok := node.children[name]
	if !ok {
		return len(node.children) == 0, nil
	}

	if len(path) == 1 {
		delete(node.children, name)
		return len(node.children) == 0, nil
	}

	if child.kind == kindLeaf {
		// path continues past a leaf: nothing at that deeper path exists.
		return len(node.children) == 0, nil
	}

	childEmpty, err := removeAt(ctx, trees, child, path[1:])
	if err != nil {
		return false, err
	}
	if childEmpty {
		delete(node.children, name)
	}
	return len(node.children) == 0, nil
}

// Persist flushes every touched overlay node to trees, bottom-up,
// deduplicating against whatever is already stored, and returns the
// new root. It returns (nil, nil) when the resulting tree is empty.
func (b *Builder) Persist(ctx context.Context, trees storage.TreeStorage) (*objects.TreeNode, error) {
	return b.root.persist(ctx, trees)
}
