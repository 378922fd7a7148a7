package engine

import (
	"context"
	"fmt"

	"github.com/caslab/casvc/internal/objects"
)

// GCResult carries the number of objects reclaimed by a GC pass.
type GCResult struct {
	Commits int
	Trees   int
	Blobs   int
}

// GC reclaims any commit, tree, or blob not reachable from some ref,
// per spec §4.5. It does not take an internal lock: a host application
// running GC concurrently with Commit on the same stores must
// serialize the two itself.
func (e *Engine) GC(ctx context.Context) (GCResult, error) {
	reachableCommits := make(map[string]bool)
	reachableTrees := make(map[string]bool)
	reachableBlobs := make(map[string]bool)

	refNames, err := e.Refs.ListAll(ctx)
	if err != nil {
		return GCResult{}, err
	}

	for _, name := range refNames {
		ref, err := e.Refs.Load(ctx, name)
		if err != nil {
			return GCResult{}, err
		}
		if ref == nil || ref.CommitRef == "" {
			continue
		}
		hash := ref.CommitRef
		for hash != "" && !reachableCommits[hash] {
			commit, err := e.Commits.Load(ctx, hash)
			if err != nil {
				return GCResult{}, err
			}
			if commit == nil {
				return GCResult{}, fmt.Errorf("%w: ref %q points at missing commit %s", objects.ErrMalformedObject, name, hash)
			}
			reachableCommits[hash] = true
			if commit.HasTree() {
				if err := e.markTree(ctx, commit.TreeRef, reachableTrees, reachableBlobs); err != nil {
					return GCResult{}, err
				}
			}
			hash = commit.PreviousCommitRef
		}
	}

	result := GCResult{}

	allCommits, err := e.Commits.ListAll(ctx)
	if err != nil {
		return GCResult{}, err
	}
	for _, hash := range allCommits {
		if reachableCommits[hash] {
			continue
		}
		if err := e.Commits.Delete(ctx, hash); err != nil {
			return GCResult{}, err
		}
		result.Commits++
	}

	allTrees, err := e.Trees.ListAll(ctx)
	if err != nil {
		return GCResult{}, err
	}
	for _, hash := range allTrees {
		if reachableTrees[hash] {
			continue
		}
		if err := e.Trees.Delete(ctx, hash); err != nil {
			return GCResult{}, err
		}
		result.Trees++
	}

	allBlobs, err := e.Blobs.ListAll(ctx)
	if err != nil {
		return GCResult{}, err
	}
	for _, hash := range allBlobs {
		if reachableBlobs[hash] {
			continue
		}
		if err := e.Blobs.Delete(ctx, hash); err != nil {
			return GCResult{}, err
		}
		result.Blobs++
	}

	return result, nil
}

// markTree walks a tree rooted at treeHash, marking every visited tree
// node and blob reference. Already-visited tree hashes are skipped so
// subtrees shared by structural sharing are only traversed once.
func (e *Engine) markTree(ctx context.Context, treeHash string, reachableTrees, reachableBlobs map[string]bool) error {
	if treeHash == "" || reachableTrees[treeHash] {
		return nil
	}
	node, err := e.Trees.Load(ctx, treeHash)
	if err != nil {
		return err
	}
	if node == nil {
		return fmt.Errorf("%w: tree node %s referenced but missing", objects.ErrMalformedObject, treeHash)
	}
	reachableTrees[treeHash] = true

	if node.IsLeaf() {
		reachableBlobs[node.Leaf.BlobRef] = true
		return nil
	}
	for _, childRef := range node.Internal.ChildrenRefs {
		if err := e.markTree(ctx, childRef, reachableTrees, reachableBlobs); err != nil {
			return err
		}
	}
	return nil
}
