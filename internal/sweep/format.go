package sweep

// ABOUTME: Human-readable report lines for scanned candidates.

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatAge returns the compact age of t as seen at now, like "5m", "3h"
// or "21d".
func FormatAge(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}

// FormatSize renders a byte count in SI units ("150 B", "2.1 MB").
func FormatSize(n uint64) string {
	return humanize.Bytes(n)
}

// Line renders the one-line report for a candidate.
func (c Candidate) Line() string {
	switch c.Status {
	case StatusSkipped:
		return "skipped: " + c.Reason
	case StatusError:
		return fmt.Sprintf("error: %v, keeping", c.Err)
	case StatusEmpty:
		return "empty, removable"
	case StatusBlocked:
		return "must keep, blocked by path " + c.Verdict.Culprit
	}

	// A tree of empty subdirectories has no files and so no activity.
	if c.Verdict.MostRecent.IsZero() {
		return "empty, removable"
	}
	return fmt.Sprintf("removable, reclaims %s, most recent activity %s ago",
		FormatSize(c.Verdict.ReclaimableBytes), FormatAge(c.Verdict.MostRecent, c.ScannedAt))
}

// RemovalLine renders the outcome of deleting a candidate.
func (c Candidate) RemovalLine() string {
	if c.Removal == nil {
		return "not removed"
	}
	if n := len(c.Removal.Errors); n > 0 {
		return fmt.Sprintf("partially removed, freed %s, %d error%s", FormatSize(c.Removal.Freed), n, plural(n))
	}
	return "removed, freed " + FormatSize(c.Removal.Freed)
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
