package sweep

// ABOUTME: Depth-first removability scan. Folds child verdicts with And and
// ABOUTME: stops listing siblings as soon as the fold is Blocked.

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"
)

// ScanStats counts the filesystem work one scan performed.
type ScanStats struct {
	FilesChecked int
	DirsListed   int
}

// Scanner computes verdicts for subtrees. It never modifies the filesystem.
// A Scanner is not safe for concurrent use; create one per candidate.
type Scanner struct {
	fs     Filesystem
	oracle *Oracle
	policy Policy
	logger *slog.Logger
	stats  ScanStats
}

// NewScanner creates a Scanner judging staleness as of now.
func NewScanner(fsys Filesystem, policy Policy, now time.Time, logger *slog.Logger) *Scanner {
	return &Scanner{
		fs:     fsys,
		oracle: NewOracle(fsys, policy, now, logger),
		policy: policy,
		logger: logger,
	}
}

// Stats returns the work counters accumulated so far.
func (s *Scanner) Stats() ScanStats { return s.stats }

// CanBeRemoved returns the verdict for path. Errors mean the answer is
// unknown (a directory could not be listed or statted) and path must be kept.
func (s *Scanner) CanBeRemoved(path string) (Verdict, error) {
	meta, err := s.fs.Lstat(path)
	if err != nil {
		return Verdict{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if !meta.IsDir() {
		return s.checkFile(path), nil
	}
	return s.scanDir(path, meta.Device)
}

func (s *Scanner) scanDir(dir string, device uint64) (Verdict, error) {
	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		return Verdict{}, fmt.Errorf("read %s: %w", dir, err)
	}
	s.stats.DirsListed++

	if len(entries) == 0 {
		return EmptyVerdict(), nil
	}

	acc := RemovableVerdict(0, time.Time{})
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		var child Verdict
		if entry.IsDir() {
			child, err = s.scanSubdir(path, device)
			if err != nil {
				return Verdict{}, err
			}
		} else {
			child = s.checkFile(path)
		}

		acc = acc.And(child)
		if acc.IsBlocked() {
			s.logger.Debug("subtree blocked", "dir", dir, "culprit", acc.Culprit)
			return acc, nil
		}
	}
	return acc, nil
}

func (s *Scanner) scanSubdir(path string, device uint64) (Verdict, error) {
	meta, err := s.fs.Lstat(path)
	if err != nil {
		return Verdict{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if !meta.IsDir() {
		// Replaced by something else since it was listed.
		return s.checkFile(path), nil
	}
	if meta.Device != device {
		s.logger.Debug("not crossing filesystem boundary", "path", path)
		return BlockedVerdict(path), nil
	}
	return s.scanDir(path, device)
}

func (s *Scanner) checkFile(path string) Verdict {
	s.stats.FilesChecked++
	stale, meta := s.oracle.Check(path)
	if !stale {
		return BlockedVerdict(path)
	}
	return RemovableVerdict(uint64(max(meta.Size, 0)), meta.LatestActivity(s.policy)) //nolint:gosec // clamped non-negative
}
