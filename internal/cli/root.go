// Package cli defines the Cobra command tree for the tmpsweep CLI.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/kstenerud/tmpsweep/internal/sweep"
	"github.com/spf13/cobra"
)

// Execute runs the root command and returns the exit code.
func Execute(ctx context.Context, version, commit, date string) int {
	rootCmd := newRootCmd(version, commit, date)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	if jsonEnabled(rootCmd) {
		writeJSONError(os.Stderr, err)
	} else {
		fmt.Fprintf(os.Stderr, "tmpsweep: %s\n", err) //nolint:errcheck // best-effort stderr write
	}

	return exitCode(err)
}

// exitCode maps an error to the process exit status.
func exitCode(err error) int {
	var usageErr *sweep.UsageError
	if errors.As(err, &usageErr) {
		return 2
	}

	var configErr *sweep.ConfigError
	if errors.As(err, &configErr) {
		return 3
	}

	return 1
}

// newRootCmd creates the root Cobra command. Run without a subcommand, it
// sweeps a directory.
func newRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tmpsweep [flags] [dir]",
		Short: "Remove stale subtrees of a scratch directory",
		Long: `Scan the entries of a scratch directory and remove the ones nobody has
touched lately. A directory is removed only if every file beneath it is
older than the threshold (by modification time and, unless --no-atime is
given, access time). One recent file keeps its whole directory.

Without [dir], sweeps $TMPSWEEP_DIR, the configured root, $HOME/tmp, or
$TMPDIR/$USER, in that order.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			slog.SetDefault(newLogger(cmd))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSweep(cmd, args)
		},
	}

	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (-v for debug)")
	rootCmd.PersistentFlags().CountP("quiet", "q", "Suppress non-essential output (-q for warn, -qq for error only)")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().Bool("json", false, "Output machine-readable JSON")

	addSweepFlags(rootCmd)
	registerCommands(rootCmd, version, commit, date)

	return rootCmd
}
