package pgstore

import (
	"context"
	"encoding/hex"

	"github.com/jackc/pgx/v5"
	"github.com/zeebo/blake3"

	"github.com/caslab/casvc/internal/objects"
)

type blobAdapter struct{ s *Store }

// contentDigest computes a blake3 checksum of content as a
// non-authoritative integrity check, independent of the SHA-1 content
// address that is the blob's actual identity.
func contentDigest(content []byte) string {
	sum := blake3.Sum256(content)
	return hex.EncodeToString(sum[:])
}

func (a blobAdapter) Load(ctx context.Context, hash string) (*objects.Blob, error) {
	var content []byte
	err := a.s.QueryRow(ctx, `SELECT content FROM casvc_blobs WHERE hash = $1`, hash).Scan(&content)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &objects.Blob{Content: content, Hash: hash}, nil
}

func (a blobAdapter) Save(ctx context.Context, blob *objects.Blob) error {
	digest := contentDigest(blob.Content)
	return a.s.Exec(ctx, `
		INSERT INTO casvc_blobs (hash, content, content_digest)
		VALUES ($1, $2, $3)
		ON CONFLICT (hash) DO NOTHING`,
		blob.Hash, blob.Content, digest)
}

func (a blobAdapter) Delete(ctx context.Context, hash string) error {
	return a.s.Exec(ctx, `DELETE FROM casvc_blobs WHERE hash = $1`, hash)
}

func (a blobAdapter) ListAll(ctx context.Context) ([]string, error) {
	rows, err := a.s.Query(ctx, `SELECT hash FROM casvc_blobs`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hashes []string
	for rows.Next() {
		var h string
		if err := rows.Scan(&h); err != nil {
			return nil, err
		}
		hashes = append(hashes, h)
	}
	return hashes, rows.Err()
}
