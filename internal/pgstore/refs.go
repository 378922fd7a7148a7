package pgstore

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/caslab/casvc/internal/objects"
)

type refAdapter struct{ s *Store }

func (a refAdapter) Load(ctx context.Context, name string) (*objects.Ref, error) {
	var commitRef string
	err := a.s.QueryRow(ctx, `SELECT commit_ref FROM casvc_refs WHERE name = $1`, name).Scan(&commitRef)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return objects.NewRef(name, commitRef), nil
}

func (a refAdapter) Save(ctx context.Context, ref *objects.Ref) error {
	return a.s.Exec(ctx, `
		INSERT INTO casvc_refs (name, commit_ref) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET commit_ref = EXCLUDED.commit_ref`,
		ref.Name, ref.CommitRef)
}

func (a refAdapter) Delete(ctx context.Context, name string) error {
	return a.s.Exec(ctx, `DELETE FROM casvc_refs WHERE name = $1`, name)
}

func (a refAdapter) ListAll(ctx context.Context) ([]string, error) {
	rows, err := a.s.Query(ctx, `SELECT name FROM casvc_refs`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// CompareAndSwap implements the ref CAS the commit protocol depends on
// (spec §4.4) as a single conditional statement, relying on Postgres's
// row-level atomicity rather than an explicit advisory lock.
func (a refAdapter) CompareAndSwap(ctx context.Context, ref *objects.Ref, expectedPriorCommitHash string) (bool, error) {
	if expectedPriorCommitHash == "" {
		affected, err := a.s.execAffected(ctx, `
			INSERT INTO casvc_refs (name, commit_ref) VALUES ($1, $2)
			ON CONFLICT (name) DO NOTHING`,
			ref.Name, ref.CommitRef)
		if err != nil {
			return false, err
		}
		return affected == 1, nil
	}

	affected, err := a.s.execAffected(ctx, `
		UPDATE casvc_refs SET commit_ref = $1 WHERE name = $2 AND commit_ref = $3`,
		ref.CommitRef, ref.Name, expectedPriorCommitHash)
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}
