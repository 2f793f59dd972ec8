package cli

// ABOUTME: Maps -v/-q counts onto an slog text handler writing to stderr.

import (
	"log/slog"

	"github.com/spf13/cobra"
)

// logLevel converts the verbose and quiet counts into an slog level.
func logLevel(verbose, quiet int) slog.Level {
	switch {
	case verbose > 0:
		return slog.LevelDebug
	case quiet == 1:
		return slog.LevelWarn
	case quiet >= 2:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// newLogger builds the process logger from the command's flags.
func newLogger(cmd *cobra.Command) *slog.Logger {
	verbose, _ := cmd.Flags().GetCount("verbose")
	quiet, _ := cmd.Flags().GetCount("quiet")
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: logLevel(verbose, quiet)})
	return slog.New(handler)
}
