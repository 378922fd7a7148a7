package builder

import (
	"context"
	"fmt"

	"github.com/caslab/casvc/internal/objects"
	"github.com/caslab/casvc/internal/storage"
)

type kind int

const (
	kindLeaf kind = iota
	kindInternal
)

// overlayNode is one node of the transient, mutable overlay graph the
// Builder walks during a single batch of edits. It either proxies an
// existing persisted node (existing != nil) or is brand new. Children
// of an internal overlay are only materialized on demand via
// ensureChildrenLoaded — an unmodified subtree never touches storage
// beyond the one Load that produced its own TreeNode.
type overlayNode struct {
	kind    kind
	name    string
	blobRef string // populated when kind == kindLeaf

	existing *objects.TreeNode // the persisted node this overlay mirrors, if any

	children       map[string]*overlayNode // populated when kind == kindInternal
	childrenLoaded bool
	touched        bool // true once this node was visited/modified by save or remove
}

func overlayFromExisting(node *objects.TreeNode) *overlayNode {
	if node.IsLeaf() {
		return &overlayNode{
			kind:     kindLeaf,
			name:     node.Leaf.Name,
			blobRef:  node.Leaf.BlobRef,
			existing: node,
		}
	}
	return &overlayNode{
		kind:     kindInternal,
		name:     node.Internal.Name,
		existing: node,
	}
}

func newInternalOverlay(name string) *overlayNode {
	return &overlayNode{
		kind:           kindInternal,
		name:           name,
		children:       make(map[string]*overlayNode),
		childrenLoaded: true,
		touched:        true,
	}
}

// ensureChildrenLoaded lazily materializes this internal overlay's
// immediate children from its existing persisted node. It does not
// recurse into grandchildren — those are materialized only if a later
// save/remove descends into them.
func (o *overlayNode) ensureChildrenLoaded(ctx context.Context, trees storage.TreeStorage) error {
	if o.kind != kindInternal {
		return fmt.Errorf("%w: ensureChildrenLoaded on a non-internal overlay", objects.ErrInvariant)
	}
	if o.childrenLoaded {
		return nil
	}
	o.children = make(map[string]*overlayNode)
	if o.existing != nil {
		for _, ref := range o.existing.Internal.ChildrenRefs {
			child, err := trees.Load(ctx, ref)
			if err != nil {
				return err
			}
			if child == nil {
				return fmt.Errorf("%w: tree node %s referenced but missing", objects.ErrMalformedObject, ref)
			}
			co := overlayFromExisting(child)
			o.children[co.name] = co
		}
	}
	o.childrenLoaded = true
	return nil
}

// persist recursively persists this overlay's subtree, bottom-up, and
// returns the resulting TreeNode (nil for an internal node that has no
// children left).
func (o *overlayNode) persist(ctx context.Context, trees storage.TreeStorage) (*objects.TreeNode, error) {
	if o.kind == kindLeaf {
		wire := objects.WrapLeaf(objects.NewLeafNode(o.name, o.blobRef))
		return persistDedup(ctx, trees, wire)
	}

	if !o.touched {
		// Fully unmodified: reuse the persisted node verbatim, no new
		// storage written under it.
		return o.existing, nil
	}

	if !o.childrenLoaded {
		if err := o.ensureChildrenLoaded(ctx, trees); err != nil {
			return nil, err
		}
	}

	hashes := make([]string, 0, len(o.children))
	for _, child := range o.children {
		var (
			childNode *objects.TreeNode
			err       error
		)
		if child.touched {
			childNode, err = child.persist(ctx, trees)
		} else {
			childNode = child.existing
		}
		if err != nil {
			return nil, err
		}
		if childNode == nil {
			continue
		}
		hashes = append(hashes, childNode.HashOf())
	}

	if len(hashes) == 0 {
		return nil, nil
	}

	wire := objects.WrapInternal(objects.NewInternalNode(o.name, hashes))
	return persistDedup(ctx, trees, wire)
}

// persistDedup saves wire only if no node with its hash already
// exists, implementing the builder's structural-sharing guarantee.
func persistDedup(ctx context.Context, trees storage.TreeStorage, wire *objects.TreeNode) (*objects.TreeNode, error) {
	hash := wire.HashOf()
	existing, err := trees.Load(ctx, hash)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	if err := trees.Save(ctx, wire); err != nil {
		return nil, err
	}
	return wire, nil
}
