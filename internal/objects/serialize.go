package objects

import (
	"encoding/json"
	"fmt"
)

// treeNodeWire is the canonical on-the-wire form of a TreeNode: a type
// tag plus either BlobRef (leaf) or ChildrenRefs (internal). Storage
// ports are free to choose their own physical encoding, but any JSON
// form must match this shape, and deserialization must reject unknown
// Type values rather than guess.
type treeNodeWire struct {
	Type         NodeType `json:"type"`
	Name         string   `json:"name"`
	BlobRef      string   `json:"blob_ref,omitempty"`
	ChildrenRefs []string `json:"children_refs,omitempty"`
}

// MarshalTreeNode encodes a TreeNode to its canonical JSON form.
func MarshalTreeNode(n *TreeNode) ([]byte, error) {
	switch n.Type {
	case NodeTypeLeaf:
		return json.Marshal(treeNodeWire{
			Type:    NodeTypeLeaf,
			Name:    n.Leaf.Name,
			BlobRef: n.Leaf.BlobRef,
		})
	case NodeTypeInternal:
		return json.Marshal(treeNodeWire{
			Type:         NodeTypeInternal,
			Name:         n.Internal.Name,
			ChildrenRefs: n.Internal.ChildrenRefs,
		})
	default:
		return nil, fmt.Errorf("%w: unknown tree node type %q", ErrMalformedObject, n.Type)
	}
}

// UnmarshalTreeNode decodes a TreeNode from its canonical JSON form,
// recomputing its hash rather than trusting a hash embedded on the
// wire. An unrecognized Type is a malformed object, per spec §4.1.
func UnmarshalTreeNode(data []byte) (*TreeNode, error) {
	var wire treeNodeWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedObject, err)
	}

	switch wire.Type {
	case NodeTypeLeaf:
		return WrapLeaf(NewLeafNode(wire.Name, wire.BlobRef)), nil
	case NodeTypeInternal:
		return WrapInternal(NewInternalNode(wire.Name, wire.ChildrenRefs)), nil
	default:
		return nil, fmt.Errorf("%w: unknown tree node type %q", ErrMalformedObject, wire.Type)
	}
}

// commitWire is the canonical on-the-wire form of a Commit.
type commitWire struct {
	Message           string `json:"message"`
	TreeRef           string `json:"tree_ref,omitempty"`
	PreviousCommitRef string `json:"previous_commit_ref,omitempty"`
}

// MarshalCommit encodes a Commit to its canonical JSON form.
func MarshalCommit(c *Commit) ([]byte, error) {
	return json.Marshal(commitWire{
		Message:           c.Message,
		TreeRef:           c.TreeRef,
		PreviousCommitRef: c.PreviousCommitRef,
	})
}

// UnmarshalCommit decodes a Commit from its canonical JSON form,
// recomputing its hash.
func UnmarshalCommit(data []byte) (*Commit, error) {
	var wire commitWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedObject, err)
	}
	return NewCommit(wire.Message, wire.TreeRef, wire.PreviousCommitRef), nil
}
