package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/caslab/casvc/internal/objects"
	"github.com/caslab/casvc/internal/ui/styles"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <tree-hash> [path]",
		Short: "Look up a path within a tree",
		Long: `Walks the tree rooted at tree-hash along path and prints what
it finds: a directory's immediate children, or a file's blob hash.
With no path, shows the root's immediate children.

tree-hash is usually a commit's tree, obtained via "casvc refs" or
"casvc log".`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runShow,
	}
}

func runShow(cmd *cobra.Command, args []string) error {
	treeHash := args[0]
	var path []string
	if len(args) == 2 {
		path = objects.SplitPath(strings.Trim(args[1], "/"))
	}

	node, err := app.Engine.TreeLookup(cmd.Context(), treeHash, path)
	if err != nil {
		return err
	}
	if node == nil {
		fmt.Println(styles.MutedMsg("no such path"))
		return nil
	}

	switch node.Type {
	case objects.NodeTypeLeaf:
		fmt.Printf("blob %s  %s\n", styles.Hash(node.Leaf.BlobRef, false), node.Leaf.Name)
	case objects.NodeTypeInternal:
		fmt.Printf("tree %s  %s/\n", styles.Hash(node.Internal.Hash, false), node.Internal.Name)
		for _, ref := range node.Internal.ChildrenRefs {
			child, err := app.Engine.Trees.Load(cmd.Context(), ref)
			if err != nil {
				return err
			}
			if child == nil {
				continue
			}
			kind := "blob"
			if child.IsInternal() {
				kind = "tree"
			}
			fmt.Printf("  %s %s  %s\n", kind, styles.Hash(child.HashOf(), true), child.NameOf())
		}
	}
	return nil
}
