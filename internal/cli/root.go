// Package cli is the command tree for casvc, a thin demo binary that
// exercises the engine package as a library — grounded on the
// teacher's internal/cli + internal/ui/styles, trimmed to the handful
// of commands that map onto the engine's actual public surface (add,
// commit, log, reset, gc, show, refs). Everything tied to remotes,
// branching/merge, container lifecycle, import/export and SQL
// passthrough has no engine operation to back it and is not carried.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/caslab/casvc/internal/config"
	"github.com/caslab/casvc/internal/ui/styles"
	"github.com/caslab/casvc/internal/util"
)

var (
	Version   = "dev"
	CommitSHA = "unknown"
)

var app *App

var rootCmd = &cobra.Command{
	Use:   "casvc",
	Short: "A content-addressed version-control engine",
	Long: `casvc is a demo CLI over a content-addressed version-control
engine: SHA-1-hashed blobs/trees/commits, a staging area, and
optimistic compare-and-swap commits against a named ref.

Pick a storage backend with --backend (memory or postgres), or set it
in the config file ($CASVC_CONFIG, or config.toml in the per-user
casvc config directory).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		if backend, _ := cmd.Flags().GetString("backend"); backend != "" {
			cfg.Core.Backend = config.Backend(backend)
		}
		if url, _ := cmd.Flags().GetString("postgres-url"); url != "" {
			cfg.Core.PostgresURL = url
		}
		if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
			os.Setenv("CASVC_NO_COLOR", "1")
		}

		a, err := newApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		app = a
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if app != nil {
			app.Close()
		}
	},
}

// Execute runs the command tree against context.Background().
func Execute() error {
	rootCmd.SetContext(context.Background())
	if err := rootCmd.Execute(); err != nil {
		var casErr *util.CasError
		if errors.As(err, &casErr) {
			fmt.Fprintln(os.Stderr, casErr.Format())
		} else {
			fmt.Fprintln(os.Stderr, styles.ErrorMsg(err.Error()))
		}
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().String("backend", "", `storage backend: "memory" or "postgres" (overrides config)`)
	rootCmd.PersistentFlags().String("postgres-url", "", "postgres connection URL (overrides config)")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")

	rootCmd.AddCommand(
		newVersionCmd(),
		newAddCmd(),
		newRmCmd(),
		newUnstageCmd(),
		newStatusCmd(),
		newCommitCmd(),
		newLogCmd(),
		newResetCmd(),
		newShowCmd(),
		newRefsCmd(),
		newGCCmd(),
	)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("casvc version %s (%s)\n", Version, CommitSHA)
		},
	}
}
