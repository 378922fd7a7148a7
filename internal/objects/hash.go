// Package objects defines the content-addressed object model of the
// engine: blobs, tree nodes, commits, refs, and staging items. Every
// persistent type here carries its own hash, derived deterministically
// from a canonical byte encoding, so that identical content always
// collapses to one stored instance.
package objects

import (
	"crypto/sha1"
	"encoding/hex"
)

// sha1Hex returns the lowercase hex-encoded SHA-1 digest of data.
// This is the wire contract (spec §4.1): any conforming implementation
// in any language must produce byte-identical hashes from the same
// logical inputs.
func sha1Hex(data []byte) string {
	sum := sha1.Sum(data)
	return hex.EncodeToString(sum[:])
}

// HashBlob computes the content hash of a blob's bytes.
func HashBlob(content []byte) string {
	return sha1Hex(content)
}

// HashLeaf computes the content hash of a leaf node.
func HashLeaf(name, blobRef string) string {
	return sha1Hex([]byte("leaf:" + name + ":" + blobRef))
}

// HashInternal computes the content hash of an internal node from its
// name and already-sorted child hash strings.
func HashInternal(name string, sortedChildrenRefs []string) string {
	joined := ""
	for i, ref := range sortedChildrenRefs {
		if i > 0 {
			joined += ","
		}
		joined += ref
	}
	return sha1Hex([]byte("internal:" + name + ":" + joined))
}

// HashCommit computes the content hash of a commit. Missing optional
// fields serialize as the empty string, never a sentinel or "null".
func HashCommit(message, treeRefOrEmpty, previousCommitRefOrEmpty string) string {
	return sha1Hex([]byte(message + ":" + treeRefOrEmpty + ":" + previousCommitRefOrEmpty))
}
