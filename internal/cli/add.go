package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/caslab/casvc/internal/objects"
	"github.com/caslab/casvc/internal/ui/styles"
)

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <tree-path> <local-file>",
		Short: "Stage a file's content at a tree path",
		Long: `Stage the content of a local file to be written at a given
path in the object tree on the next commit.

casvc has no working-directory abstraction of its own — reading the
local file here is CLI convenience sugar, not an engine feature. The
engine's Add takes raw bytes and a logical path directly.`,
		Args: cobra.ExactArgs(2),
		RunE: runAdd,
	}
}

func runAdd(cmd *cobra.Command, args []string) error {
	treePath, localFile := args[0], args[1]

	content, err := os.ReadFile(localFile)
	if err != nil {
		return fmt.Errorf("reading %s: %w", localFile, err)
	}

	path := objects.SplitPath(strings.Trim(treePath, "/"))
	if err := app.Engine.Add(cmd.Context(), path, content); err != nil {
		return err
	}

	fmt.Println(styles.SuccessMsg(fmt.Sprintf("staged %s", treePath)))
	return nil
}

func newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <tree-path>",
		Short: "Stage a deletion at a tree path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := objects.SplitPath(strings.Trim(args[0], "/"))
			if err := app.Engine.Remove(cmd.Context(), path); err != nil {
				return err
			}
			fmt.Println(styles.SuccessMsg(fmt.Sprintf("staged removal of %s", args[0])))
			return nil
		},
	}
}

func newUnstageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unstage",
		Short: "Discard every staged change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Engine.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Println(styles.SuccessMsg("staging area cleared"))
			return nil
		},
	}
}
