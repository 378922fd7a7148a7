package pgstore

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/caslab/casvc/internal/objects"
)

type treeAdapter struct{ s *Store }

// Load reconstructs a TreeNode from its canonical JSON wire form (see
// objects.UnmarshalTreeNode) and rejects any row whose stored hash no
// longer matches the hash recomputed from that form.
func (a treeAdapter) Load(ctx context.Context, hash string) (*objects.TreeNode, error) {
	var wire []byte
	err := a.s.QueryRow(ctx,
		`SELECT wire FROM casvc_trees WHERE hash = $1`, hash,
	).Scan(&wire)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	node, err := objects.UnmarshalTreeNode(wire)
	if err != nil {
		return nil, err
	}
	if node.HashOf() != hash {
		return nil, fmt.Errorf("%w: tree node stored at %s re-hashes to %s", objects.ErrMalformedObject, hash, node.HashOf())
	}
	return node, nil
}

func (a treeAdapter) Save(ctx context.Context, node *objects.TreeNode) error {
	wire, err := objects.MarshalTreeNode(node)
	if err != nil {
		return err
	}
	return a.s.Exec(ctx, `
		INSERT INTO casvc_trees (hash, wire)
		VALUES ($1, $2)
		ON CONFLICT (hash) DO NOTHING`,
		node.HashOf(), wire)
}

func (a treeAdapter) Delete(ctx context.Context, hash string) error {
	return a.s.Exec(ctx, `DELETE FROM casvc_trees WHERE hash = $1`, hash)
}

func (a treeAdapter) ListAll(ctx context.Context) ([]string, error) {
	rows, err := a.s.Query(ctx, `SELECT hash FROM casvc_trees`)
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
