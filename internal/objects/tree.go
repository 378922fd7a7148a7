package objects

import "sort"

// NodeType tags the two shapes a TreeNode can take. Adding a third
// variant would be a breaking change to every exhaustive switch below.
type NodeType string

const (
	NodeTypeLeaf     NodeType = "leaf"
	NodeTypeInternal NodeType = "internal"
)

// TreeNode is the tagged sum of LeafNode and InternalNode. Exactly one
// of Leaf/Internal fields is populated, discriminated by Type.
type TreeNode struct {
	Type NodeType

	// Populated when Type == NodeTypeLeaf.
	Leaf *LeafNode
	// Populated when Type == NodeTypeInternal.
	Internal *InternalNode
}

// LeafNode represents a file at a given path component.
type LeafNode struct {
	Name    string
	BlobRef string
	Hash    string
}

// NewLeafNode constructs a LeafNode and computes its hash.
func NewLeafNode(name, blobRef string) *LeafNode {
	return &LeafNode{
		Name:    name,
		BlobRef: blobRef,
		Hash:    HashLeaf(name, blobRef),
	}
}

// InternalNode represents a directory: a named, hashed list of child
// node hashes kept sorted lexicographically by hash string so that the
// node's own hash is stable regardless of insertion order.
type InternalNode struct {
	Name         string
	ChildrenRefs []string
	Hash         string
}

// NewInternalNode constructs an InternalNode, sorting children by hash
// string before computing the node's own hash.
func NewInternalNode(name string, childrenRefs []string) *InternalNode {
	sorted := make([]string, len(childrenRefs))
	copy(sorted, childrenRefs)
	sort.Strings(sorted)
	return &InternalNode{
		Name:         name,
		ChildrenRefs: sorted,
		Hash:         HashInternal(name, sorted),
	}
}

// IsLeaf reports whether this node is a LeafNode.
func (t *TreeNode) IsLeaf() bool {
	return t != nil && t.Type == NodeTypeLeaf
}

// IsInternal reports whether this node is an InternalNode.
func (t *TreeNode) IsInternal() bool {
	return t != nil && t.Type == NodeTypeInternal
}

// HashOf returns the content hash of whichever variant is populated.
func (t *TreeNode) HashOf() string {
	switch t.Type {
	case NodeTypeLeaf:
		return t.Leaf.Hash
	case NodeTypeInternal:
		return t.Internal.Hash
	default:
		return ""
	}
}

// NameOf returns the name of whichever variant is populated.
func (t *TreeNode) NameOf() string {
	switch t.Type {
	case NodeTypeLeaf:
		return t.Leaf.Name
	case NodeTypeInternal:
		return t.Internal.Name
	default:
		return ""
	}
}

// WrapLeaf wraps a LeafNode in a TreeNode.
func WrapLeaf(l *LeafNode) *TreeNode {
	return &TreeNode{Type: NodeTypeLeaf, Leaf: l}
}

// WrapInternal wraps an InternalNode in a TreeNode.
func WrapInternal(i *InternalNode) *TreeNode {
	return &TreeNode{Type: NodeTypeInternal, Internal: i}
}
