package cli

// ABOUTME: The root `tmpsweep [dir]` action: scan, report, confirm, remove.

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"time"

	"github.com/kstenerud/tmpsweep/internal/sweep"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func addSweepFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("dry-run", false, "Report only, don't remove anything")
	cmd.Flags().BoolP("yes", "y", false, "Skip confirmation prompt")
	cmd.Flags().String("threshold", "", "Minimum idle age, e.g. 21d, 36h, 2weeks (default 21d)")
	cmd.Flags().Bool("no-atime", false, "Judge staleness by modification time only")
	cmd.Flags().String("pattern", "", "Only consider entries whose name matches this regexp (default "+sweep.DefaultPattern+")")
	cmd.Flags().Bool("all", false, "Consider every directory regardless of name")
	cmd.Flags().IntP("jobs", "j", 0, "Number of directories to scan concurrently (default 1)")
}

// resolveOptions merges flags over config.yaml over built-in defaults.
func resolveOptions(cmd *cobra.Command, args []string) (sweep.Options, error) {
	cfg, err := sweep.LoadConfig()
	if err != nil {
		return sweep.Options{}, err
	}

	var arg string
	if len(args) > 0 {
		arg = args[0]
	}
	root, err := sweep.ResolveRoot(arg, cfg)
	if err != nil {
		return sweep.Options{}, err
	}

	policy, err := cfg.Policy()
	if err != nil {
		return sweep.Options{}, err
	}
	if cmd.Flags().Changed("threshold") {
		value, _ := cmd.Flags().GetString("threshold")
		threshold, err := sweep.ParseAge(value)
		if err != nil {
			return sweep.Options{}, &sweep.UsageError{Err: err}
		}
		policy.Threshold = threshold
	}
	if noAtime, _ := cmd.Flags().GetBool("no-atime"); noAtime {
		policy.ConsiderAccessTime = false
	}

	pattern, err := cfg.NamePattern()
	if err != nil {
		return sweep.Options{}, err
	}
	if cmd.Flags().Changed("pattern") {
		value, _ := cmd.Flags().GetString("pattern")
		pattern = nil
		if value != "" {
			if pattern, err = regexp.Compile(value); err != nil {
				return sweep.Options{}, sweep.NewUsageError("invalid --pattern: %w", err)
			}
		}
	}
	if all, _ := cmd.Flags().GetBool("all"); all {
		pattern = nil
	}

	jobs := max(cfg.Jobs, 1)
	if cmd.Flags().Changed("jobs") {
		jobs, _ = cmd.Flags().GetInt("jobs")
		if jobs < 1 {
			return sweep.Options{}, sweep.NewUsageError("--jobs must be at least 1")
		}
	}

	return sweep.Options{Root: root, Policy: policy, Pattern: pattern, Jobs: jobs}, nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	output := cmd.OutOrStdout()
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	yes, _ := cmd.Flags().GetBool("yes")
	isJSON := jsonEnabled(cmd)

	if !dryRun {
		if err := requireYesForJSON(cmd); err != nil {
			return err
		}
	}

	opts, err := resolveOptions(cmd, args)
	if err != nil {
		return err
	}
	slog.Debug("sweeping", "root", opts.Root, "threshold", opts.Policy.Threshold,
		"atime", opts.Policy.ConsiderAccessTime, "pattern", opts.Pattern, "jobs", opts.Jobs)

	// 1. Scan every candidate; nothing is touched yet.
	sweeper := sweep.NewSweeper(sweep.OSFilesystem{}, slog.Default())
	candidates, err := sweeper.Scan(ctx, opts)
	if err != nil {
		return err
	}

	st := newStyles(cmd)
	if !isJSON {
		printReport(output, st, candidates)
	}

	// 2. Stop if nothing qualifies or this is a dry run.
	count, _ := sweep.Removables(candidates)
	if count == 0 || dryRun {
		if isJSON {
			return writeSweepJSON(cmd, opts, candidates, dryRun)
		}
		if count == 0 {
			fmt.Fprintln(output, "Nothing to remove.") //nolint:errcheck // best-effort output
		}
		return nil
	}

	// 3. Confirm unless --yes.
	if !yes {
		if f, ok := cmd.InOrStdin().(*os.File); ok && !term.IsTerminal(int(f.Fd())) { //nolint:gosec // fd conversion is safe on all supported platforms
			return sweep.NewUsageError("stdin is not a terminal; pass --yes to remove without confirmation")
		}
		confirmed, err := sweep.ConfirmRemoval(ctx, candidates, cmd.InOrStdin(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		if !confirmed {
			return nil
		}
	}

	// 4. Remove.
	removed, err := sweeper.Remove(ctx, candidates)
	if err != nil {
		return err
	}

	failures := 0
	for _, c := range removed {
		if c.Removal == nil {
			continue
		}
		failures += len(c.Removal.Errors)
		if !isJSON {
			fmt.Fprintf(output, "%s: %s\n", c.Path, st.removal(c)) //nolint:errcheck // best-effort output
		}
	}

	if isJSON {
		if err := writeSweepJSON(cmd, opts, removed, false); err != nil {
			return err
		}
	}
	if failures > 0 {
		if failures == 1 {
			return fmt.Errorf("1 entry could not be removed")
		}
		return fmt.Errorf("%d entries could not be removed", failures)
	}
	return nil
}

// printReport writes one line per candidate.
func printReport(w io.Writer, st styles, candidates []sweep.Candidate) {
	for _, c := range candidates {
		fmt.Fprintf(w, "%s: %s\n", c.Path, st.status(c)) //nolint:errcheck // best-effort output
	}
	count, reclaim := sweep.Removables(candidates)
	if count > 0 {
		fmt.Fprintf(w, "\n%d removable, %s reclaimable\n", count, sweep.FormatSize(reclaim)) //nolint:errcheck // best-effort output
	}
}

// writeSweepJSON outputs sweep results as JSON.
func writeSweepJSON(cmd *cobra.Command, opts sweep.Options, candidates []sweep.Candidate, dryRun bool) error {
	type removalJSON struct {
		Removed int      `json:"removed"`
		Freed   uint64   `json:"freed_bytes"`
		Errors  []string `json:"errors,omitempty"`
	}
	type candidateJSON struct {
		Name             string       `json:"name"`
		Path             string       `json:"path"`
		Status           string       `json:"status"`
		ReclaimableBytes uint64       `json:"reclaimable_bytes,omitempty"`
		MostRecent       *time.Time   `json:"most_recent,omitempty"`
		Culprit          string       `json:"culprit,omitempty"`
		Reason           string       `json:"reason,omitempty"`
		Error            string       `json:"error,omitempty"`
		Removal          *removalJSON `json:"removal,omitempty"`
	}

	items := make([]candidateJSON, 0, len(candidates))
	for _, c := range candidates {
		item := candidateJSON{
			Name:             c.Name,
			Path:             c.Path,
			Status:           c.Status.String(),
			ReclaimableBytes: c.Verdict.ReclaimableBytes,
			Culprit:          c.Verdict.Culprit,
			Reason:           c.Reason,
		}
		if !c.Verdict.MostRecent.IsZero() {
			ts := c.Verdict.MostRecent
			item.MostRecent = &ts
		}
		if c.Err != nil {
			item.Error = c.Err.Error()
		}
		if c.Removal != nil {
			item.Removal = &removalJSON{Removed: c.Removal.Removed, Freed: c.Removal.Freed}
			for _, err := range c.Removal.Errors {
				item.Removal.Errors = append(item.Removal.Errors, err.Error())
			}
		}
		items = append(items, item)
	}

	return writeJSON(cmd.OutOrStdout(), map[string]any{
		"root":       opts.Root,
		"threshold":  opts.Policy.Threshold.String(),
		"dry_run":    dryRun,
		"candidates": items,
	})
}
