package sweep

// ABOUTME: Top-level driver. Scans every candidate under the root, then
// ABOUTME: deletes only the candidates whose verdict allows it.

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"time"

	"golang.org/x/sync/errgroup"
)

// Status is the outcome of scanning one candidate.
type Status int

// Candidate statuses.
const (
	StatusSkipped Status = iota
	StatusEmpty
	StatusRemovable
	StatusBlocked
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusSkipped:
		return "skipped"
	case StatusEmpty:
		return "empty"
	case StatusRemovable:
		return "removable"
	case StatusBlocked:
		return "blocked"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Removable reports whether a candidate with this status may be deleted.
func (s Status) Removable() bool {
	return s == StatusEmpty || s == StatusRemovable
}

// Candidate is one top-level entry of the swept directory.
type Candidate struct {
	Name    string
	Path    string
	Status  Status
	Verdict Verdict
	Reason  string // why it was skipped
	Err     error  // why it could not be scanned
	Stats   ScanStats
	Removal *RemoveResult

	ScannedAt time.Time // reference time for staleness and reported ages
}

// Options configures a sweep.
type Options struct {
	Root    string
	Policy  Policy
	Pattern *regexp.Regexp // nil scans every directory
	Jobs    int            // candidates scanned concurrently; <1 means 1
}

// Sweeper scans and removes candidates under a root directory.
type Sweeper struct {
	fs      Filesystem
	logger  *slog.Logger
	remover *Remover
	now     func() time.Time
}

// NewSweeper creates a Sweeper over fsys.
func NewSweeper(fsys Filesystem, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		fs:      fsys,
		logger:  logger,
		remover: NewRemover(fsys, logger),
		now:     time.Now,
	}
}

// Scan lists opts.Root and returns a verdict for every candidate, in
// directory order. Failing to list the root is an error; failing to scan a
// single candidate only marks that candidate StatusError.
func (s *Sweeper) Scan(ctx context.Context, opts Options) ([]Candidate, error) {
	entries, err := s.fs.ReadDir(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", opts.Root, err)
	}

	now := s.now()
	candidates := make([]Candidate, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Jobs, 1))

	for i, entry := range entries {
		c := &candidates[i]
		c.Name = entry.Name()
		c.Path = filepath.Join(opts.Root, entry.Name())
		c.ScannedAt = now

		switch {
		case opts.Pattern != nil && !opts.Pattern.MatchString(c.Name):
			c.Reason = fmt.Sprintf("name does not match %s", opts.Pattern)
			continue
		case !entry.IsDir():
			c.Reason = ErrNotDirectory.Error()
			continue
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			s.scanCandidate(c, opts.Policy, now)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return candidates, nil
}

func (s *Sweeper) scanCandidate(c *Candidate, policy Policy, now time.Time) {
	scanner := NewScanner(s.fs, policy, now, s.logger)
	verdict, err := scanner.CanBeRemoved(c.Path)
	c.Stats = scanner.Stats()
	if err != nil {
		s.logger.Warn("cannot scan candidate, keeping it", "path", c.Path, "error", err)
		c.Status = StatusError
		c.Err = err
		return
	}

	c.Verdict = verdict
	switch verdict.Kind {
	case AlwaysRemovable:
		c.Status = StatusEmpty
	case Removable:
		c.Status = StatusRemovable
	default:
		c.Status = StatusBlocked
	}
	s.logger.Debug("scanned candidate", "path", c.Path, "status", c.Status,
		"files", c.Stats.FilesChecked, "dirs", c.Stats.DirsListed)
}

// Remove deletes every removable candidate, one at a time, and records the
// result on it. It stops early only if ctx is cancelled.
func (s *Sweeper) Remove(ctx context.Context, candidates []Candidate) ([]Candidate, error) {
	out := make([]Candidate, len(candidates))
	copy(out, candidates)

	for i := range out {
		if !out[i].Status.Removable() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return out, err
		}
		res := s.remover.RemoveTree(out[i].Path)
		out[i].Removal = &res
		for _, err := range res.Errors {
			s.logger.Warn("removal failed", "error", err)
		}
	}
	return out, nil
}

// Removables counts the removable candidates and the bytes they hold.
func Removables(candidates []Candidate) (int, uint64) {
	var count int
	var reclaim uint64
	for _, c := range candidates {
		if c.Status.Removable() {
			count++
			reclaim += c.Verdict.ReclaimableBytes
		}
	}
	return count, reclaim
}
