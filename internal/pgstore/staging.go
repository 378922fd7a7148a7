package pgstore

import (
	"context"

	"github.com/caslab/casvc/internal/objects"
)

type stagingAdapter struct{ s *Store }

func (a stagingAdapter) Load(ctx context.Context) ([]*objects.StagingItem, error) {
	rows, err := a.s.Query(ctx, `SELECT path, content, blob_hash FROM casvc_staging`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*objects.StagingItem
	for rows.Next() {
		var (
			path     []string
			content  []byte
			blobHash *string
		)
		if err := rows.Scan(&path, &content, &blobHash); err != nil {
			return nil, err
		}
		item := &objects.StagingItem{Path: path}
		if blobHash != nil {
			item.Blob = &objects.Blob{Content: content, Hash: *blobHash}
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (a stagingAdapter) Add(ctx context.Context, item *objects.StagingItem) error {
	var content []byte
	var blobHash *string
	if item.Blob != nil {
		content = item.Blob.Content
		h := item.Blob.Hash
		blobHash = &h
	}
	return a.s.Exec(ctx, `
		INSERT INTO casvc_staging (path_key, path, content, blob_hash)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (path_key) DO UPDATE SET path = EXCLUDED.path, content = EXCLUDED.content, blob_hash = EXCLUDED.blob_hash`,
		item.PathKey(), []string(item.Path), content, blobHash)
}

func (a stagingAdapter) Remove(ctx context.Context, path []string) error {
	return a.s.Exec(ctx, `DELETE FROM casvc_staging WHERE path_key = $1`, objects.JoinPath(path))
}

func (a stagingAdapter) Clear(ctx context.Context) error {
	return a.s.Exec(ctx, `DELETE FROM casvc_staging`)
}
