package objects

// Blob is an immutable, content-addressed byte sequence. Two blobs
// with identical content collapse to the same hash and are expected to
// be stored once by a BlobStorage implementation.
type Blob struct {
	Content []byte
	Hash    string
}

// NewBlob constructs a Blob and computes its hash.
func NewBlob(content []byte) *Blob {
	return &Blob{
		Content: content,
		Hash:    HashBlob(content),
	}
}
