package pgstore

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/caslab/casvc/internal/objects"
)

type commitAdapter struct{ s *Store }

// Load reconstructs a Commit from its canonical JSON wire form (see
// objects.UnmarshalCommit) and rejects any row whose stored hash no
// longer matches the hash recomputed from that form.
func (a commitAdapter) Load(ctx context.Context, hash string) (*objects.Commit, error) {
	var wire []byte
	err := a.s.QueryRow(ctx,
		`SELECT wire FROM casvc_commits WHERE hash = $1`, hash,
	).Scan(&wire)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	commit, err := objects.UnmarshalCommit(wire)
	if err != nil {
		return nil, err
	}
	if commit.Hash != hash {
		return nil, fmt.Errorf("%w: commit stored at %s re-hashes to %s", objects.ErrMalformedObject, hash, commit.Hash)
	}
	return commit, nil
}

func (a commitAdapter) Save(ctx context.Context, commit *objects.Commit) error {
	wire, err := objects.MarshalCommit(commit)
	if err != nil {
		return err
	}
	return a.s.Exec(ctx, `
		INSERT INTO casvc_commits (hash, wire)
		VALUES ($1, $2)
		ON CONFLICT (hash) DO NOTHING`,
		commit.Hash, wire)
}

func (a commitAdapter) Delete(ctx context.Context, hash string) error {
	return a.s.Exec(ctx, `DELETE FROM casvc_commits WHERE hash = $1`, hash)
}

func (a commitAdapter) ListAll(ctx context.Context) ([]string, error) {
	rows, err := a.s.Query(ctx, `SELECT hash FROM casvc_commits`)
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
