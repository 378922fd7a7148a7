package objects

// Commit is a snapshot in the object graph: a message, an optional
// root tree, and an optional parent commit, chained through
// PreviousCommitRef. The initial commit in a history has no parent.
type Commit struct {
	Message           string
	TreeRef           string // empty when the repository has no files
	PreviousCommitRef string // empty for the first commit in a chain
	Hash              string
}

// NewCommit constructs a Commit and computes its hash. Pass the empty
// string for either optional field — never a sentinel.
func NewCommit(message, treeRef, previousCommitRef string) *Commit {
	return &Commit{
		Message:           message,
		TreeRef:           treeRef,
		PreviousCommitRef: previousCommitRef,
		Hash:              HashCommit(message, treeRef, previousCommitRef),
	}
}

// HasTree reports whether this commit has a non-empty root tree.
func (c *Commit) HasTree() bool {
	return c.TreeRef != ""
}

// HasParent reports whether this commit has a previous commit.
func (c *Commit) HasParent() bool {
	return c.PreviousCommitRef != ""
}
