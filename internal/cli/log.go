package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/caslab/casvc/internal/ui/logview"
	"github.com/caslab/casvc/internal/ui/styles"
)

func newLogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log [ref]",
		Short: "Show a ref's commit history",
		Long: `Shows the commit chain from ref's head (default "main"),
newest first.

Opens an interactive pager when stdout is a terminal; use --no-pager
for plain line-per-commit output, suitable for piping.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runLog,
	}
	cmd.Flags().Bool("no-pager", false, "disable the interactive pager")
	return cmd
}

func runLog(cmd *cobra.Command, args []string) error {
	refName := refArg(args)
	noPager, _ := cmd.Flags().GetBool("no-pager")

	commits, err := app.Engine.Log(cmd.Context(), refName)
	if err != nil {
		return err
	}
	if len(commits) == 0 {
		fmt.Println(styles.MutedMsg("no commits on " + refName))
		return nil
	}

	if noPager || !term.IsTerminal(int(os.Stdout.Fd())) {
		for _, c := range commits {
			fmt.Printf("%s  %s\n", styles.Hash(c.Hash, true), firstLine(c.Message))
		}
		return nil
	}

	return logview.Run(refName, commits)
}
