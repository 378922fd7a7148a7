package objects

import "strings"

// StagingItem is a pending, path-scoped edit awaiting commit. Blob
// present means "write this content at this path"; Blob absent means
// "delete whatever is at this path". StagingItems are never persisted
// into the object graph — they live only in a StagingStorage.
type StagingItem struct {
	Path []string
	Blob *Blob // nil for a delete
}

// PathKey joins Path's components with "/", the canonical key a
// StagingStorage keys entries by.
func (s *StagingItem) PathKey() string {
	return JoinPath(s.Path)
}

// JoinPath joins path components into their canonical string form.
func JoinPath(path []string) string {
	return strings.Join(path, "/")
}

// SplitPath splits a canonical path string back into components.
func SplitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// IsDelete reports whether this staging item represents a deletion.
func (s *StagingItem) IsDelete() bool {
	return s.Blob == nil
}

// ChangeType classifies a StagingItem against the tree it would be
// applied on top of.
type ChangeType int

const (
	// ChangeUnchanged means the item would have no effect and is
	// dropped before commit ever sees it.
	ChangeUnchanged ChangeType = iota
	ChangeAdd
	ChangeUpdate
	ChangeRemove
)

func (c ChangeType) String() string {
	switch c {
	case ChangeAdd:
		return "add"
	case ChangeUpdate:
		return "update"
	case ChangeRemove:
		return "remove"
	default:
		return "unchanged"
	}
}

// StagingChange pairs a StagingItem with its classification against
// the current tree at the time it was computed.
type StagingChange struct {
	Item Item
	Type ChangeType
}

// Item is the display form of a StagingItem: its own struct type with
// the same Blob and with Path pre-joined into one string.
type Item struct {
	Path string
	Blob *Blob
}

// ClassifyChange determines what kind of change a staging item is
// against the current tree, per spec §3:
//
//	Add       — no existing node at path, blob present.
//	Update    — existing leaf at path, blob present, differing hash.
//	Remove    — existing node at path, blob absent.
//	Unchanged — (existing leaf with same hash and blob present) or
//	            (no existing node and no blob).
func ClassifyChange(existing *TreeNode, item *StagingItem) ChangeType {
	switch {
	case existing == nil && item.Blob != nil:
		return ChangeAdd
	case existing == nil && item.Blob == nil:
		return ChangeUnchanged
	case existing != nil && item.Blob == nil:
		return ChangeRemove
	case existing.IsLeaf() && item.Blob != nil:
		if existing.Leaf.BlobRef == item.Blob.Hash {
			return ChangeUnchanged
		}
		return ChangeUpdate
	default:
		// existing is an InternalNode and a blob is being written —
		// not a classification case on its own; callers must still
		// attempt the write, which the tree-mutation builder will
		// reject as an invariant violation.
		return ChangeUpdate
	}
}
