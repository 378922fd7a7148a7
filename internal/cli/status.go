package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/caslab/casvc/internal/ui/styles"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status [ref]",
		Short: "Show staged changes against a ref's head tree",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runStatus,
	}
	return cmd
}

func runStatus(cmd *cobra.Command, args []string) error {
	refName := refArg(args)

	changes, err := app.Engine.GetStagingChanges(cmd.Context(), refName)
	if err != nil {
		return err
	}
	if len(changes) == 0 {
		fmt.Println(styles.MutedMsg("nothing staged against " + refName))
		return nil
	}

	fmt.Printf("Changes staged against %s:\n\n", styles.Ref(refName))
	for _, c := range changes {
		fmt.Printf("  %s %s\n", styles.StatusPrefix(c.Type.String()), c.Item.Path)
	}
	return nil
}

// refArg returns args[0] if present, else "main" — casvc has no
// concept of a default checked-out ref, so the CLI just picks a name.
func refArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "main"
}
