package objects

// Ref is a named mutable pointer to a commit. Unlike blobs, tree
// nodes, and commits, a Ref's identity is its Name, not a content
// hash — it is the one mutable handle in the object graph.
type Ref struct {
	Name      string
	CommitRef string
}

// NewRef constructs a Ref.
func NewRef(name, commitRef string) *Ref {
	return &Ref{Name: name, CommitRef: commitRef}
}
