package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/caslab/casvc/internal/objects"
	"github.com/caslab/casvc/internal/ui/styles"
	"github.com/caslab/casvc/internal/util"
)

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <ref> <commit-hash>",
		Short: "Point a ref at a commit unconditionally",
		Long: `Moves ref to commit-hash without going through the optimistic
compare-and-swap protocol commit uses — this is an explicit rewrite,
not a compare-and-swap.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			refName, hash := args[0], args[1]
			if err := app.Engine.Reset(cmd.Context(), refName, hash); err != nil {
				if errors.Is(err, objects.ErrNotFound) {
					return util.CommitNotFoundError(hash, err)
				}
				return err
			}
			fmt.Println(styles.SuccessMsg(fmt.Sprintf("%s now points at %s", refName, styles.Hash(hash, true))))
			return nil
		},
	}
}
