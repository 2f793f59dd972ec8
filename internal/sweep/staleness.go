package sweep

// ABOUTME: Decides whether a single entry's timestamps are older than the
// ABOUTME: configured threshold. Unknown timestamps always count as recent.

import (
	"log/slog"
	"time"
)

// DefaultThreshold is how long a file must sit untouched before it is stale.
const DefaultThreshold = 21 * 24 * time.Hour

// Policy controls what "stale" means for one scan.
type Policy struct {
	Threshold time.Duration
	// ConsiderAccessTime requires atime to be old as well as mtime. Turn it
	// off on filesystems mounted noatime.
	ConsiderAccessTime bool
}

// DefaultPolicy returns the 21-day, mtime-and-atime policy.
func DefaultPolicy() Policy {
	return Policy{Threshold: DefaultThreshold, ConsiderAccessTime: true}
}

// IsStale reports whether meta is older than the policy threshold at now.
// A missing relevant timestamp makes the entry not stale.
func IsStale(meta Metadata, now time.Time, policy Policy) bool {
	if !olderThan(meta.ModifiedAt, now, policy.Threshold) {
		return false
	}
	if policy.ConsiderAccessTime && !olderThan(meta.AccessedAt, now, policy.Threshold) {
		return false
	}
	return true
}

func olderThan(ts, now time.Time, threshold time.Duration) bool {
	if ts.IsZero() {
		return false
	}
	return now.Sub(ts) >= threshold
}

// LatestActivity returns the most recent timestamp the policy looks at.
func (m Metadata) LatestActivity(policy Policy) time.Time {
	latest := m.ModifiedAt
	if policy.ConsiderAccessTime && m.AccessedAt.After(latest) {
		latest = m.AccessedAt
	}
	return latest
}

// Oracle reads an entry's metadata and judges it against a fixed policy and
// reference time.
type Oracle struct {
	fs     Filesystem
	policy Policy
	now    time.Time
	logger *slog.Logger
}

// NewOracle creates an Oracle that judges entries as of now.
func NewOracle(fsys Filesystem, policy Policy, now time.Time, logger *slog.Logger) *Oracle {
	return &Oracle{fs: fsys, policy: policy, now: now, logger: logger}
}

// Check reports whether path is stale, along with the metadata it read.
// If the metadata cannot be read, Check logs a warning and returns false.
func (o *Oracle) Check(path string) (bool, Metadata) {
	meta, err := o.fs.Lstat(path)
	if err != nil {
		o.logger.Warn("cannot read metadata, keeping entry", "path", path, "error", err)
		return false, Metadata{Path: path}
	}
	return IsStale(meta, o.now, o.policy), meta
}
