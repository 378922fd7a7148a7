package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/caslab/casvc/internal/ui/styles"
	"github.com/caslab/casvc/internal/ui/table"
)

func newRefsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refs",
		Short: "List every ref and the commit it points to",
		Args:  cobra.NoArgs,
		RunE:  runRefs,
	}
	cmd.Flags().Bool("json", false, "output as a JSON array")
	return cmd
}

func runRefs(cmd *cobra.Command, args []string) error {
	names, err := app.Engine.ListRefs(cmd.Context())
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Println(styles.MutedMsg("no refs"))
		return nil
	}

	columns := []string{"ref", "commit", "message"}
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		commit, err := app.Engine.GetCommitFromRef(cmd.Context(), name)
		if err != nil {
			return err
		}
		if commit == nil {
			rows = append(rows, []string{name, "(empty)", ""})
			continue
		}
		rows = append(rows, []string{name, commit.Hash, firstLine(commit.Message)})
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return table.PrintJSON(columns, rows)
	}
	table.PrintPlain(columns, rows)
	return nil
}
