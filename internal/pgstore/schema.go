package pgstore

import "context"

// InitSchema creates the casvc tables if they do not already exist.
// Unlike the teacher's versioned migration, this schema has no history
// to carry forward — the engine's object model is stable by contract.
func (s *Store) InitSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS casvc_blobs (
			hash           TEXT PRIMARY KEY,
			content        BYTEA NOT NULL,
			content_digest TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS casvc_trees (
			hash TEXT PRIMARY KEY,
			wire JSONB NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS casvc_commits (
			hash TEXT PRIMARY KEY,
			wire JSONB NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS casvc_refs (
			name       TEXT PRIMARY KEY,
			commit_ref TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS casvc_staging (
			path_key TEXT PRIMARY KEY,
			path     TEXT[] NOT NULL,
			content  BYTEA,
			blob_hash TEXT
		)`,
	}
	for _, stmt := range statements {
		if err := s.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
