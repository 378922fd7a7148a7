package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/caslab/casvc/internal/ui"
	"github.com/caslab/casvc/internal/util"
)

func newGCCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gc",
		Short: "Reclaim objects unreachable from any ref",
		Long: `Walks every ref's commit chain and, transitively, every tree
and blob it reaches, then deletes everything else. Must not run
concurrently with a commit on the same stores — on the memory backend
the CLI takes app's own lock around the run as a convenience; callers
embedding the engine directly are responsible for their own
serialization.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.lockGC()
			defer app.unlockGC()

			trace := util.NewTraceID()
			spinner := ui.NewSpinner(fmt.Sprintf("collecting garbage [%s]", util.ShortID(trace)))
			spinner.Start()

			result, err := app.Engine.GC(cmd.Context())
			if err != nil {
				spinner.Error(fmt.Sprintf("[%s] %s", util.ShortID(trace), err.Error()))
				return err
			}
			spinner.Success(fmt.Sprintf(
				"[%s] reclaimed %d commit(s), %d tree node(s), %d blob(s)",
				util.ShortID(trace), result.Commits, result.Trees, result.Blobs))
			return nil
		},
	}
}
