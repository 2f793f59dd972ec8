package sweep

// ABOUTME: Best-effort post-order deletion of a subtree that stays on one
// ABOUTME: filesystem and never follows symlinks.

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// RemoveResult summarizes one RemoveTree call.
type RemoveResult struct {
	Removed int    // entries unlinked, directories included
	Freed   uint64 // bytes of regular files and links removed
	Errors  []error
}

func (r *RemoveResult) fail(path string, err error) {
	r.Errors = append(r.Errors, &RemovalError{Path: path, Err: err})
}

// Remover deletes subtrees that a Scanner has already judged removable.
type Remover struct {
	fs     Filesystem
	logger *slog.Logger
	remove func(string) error
	chmod  func(string, fs.FileMode) error
}

// NewRemover creates a Remover that deletes through the host filesystem.
func NewRemover(fsys Filesystem, logger *slog.Logger) *Remover {
	return &Remover{
		fs:     fsys,
		logger: logger,
		remove: os.Remove,
		chmod:  os.Chmod,
	}
}

// RemoveTree deletes path and everything beneath it, children before
// parents. A failure on one entry is recorded and the walk continues.
// Directories on a different device than path are left alone.
func (r *Remover) RemoveTree(path string) RemoveResult {
	var res RemoveResult
	meta, err := r.fs.Lstat(path)
	if err != nil {
		res.fail(path, err)
		return res
	}
	if meta.IsDir() {
		r.removeDir(meta, meta.Device, &res)
	} else {
		r.removeFile(meta, &res)
	}
	return res
}

func (r *Remover) removeDir(dir Metadata, device uint64, res *RemoveResult) {
	// Entries can only be unlinked from a writable, searchable directory.
	if perm := dir.Mode.Perm(); perm&0o300 != 0o300 {
		if err := r.chmod(dir.Path, perm|0o700); err != nil {
			r.logger.Debug("cannot make directory writable", "path", dir.Path, "error", err)
		}
	}

	entries, err := r.fs.ReadDir(dir.Path)
	if err != nil {
		res.fail(dir.Path, err)
		return
	}

	failed := len(res.Errors)
	for _, entry := range entries {
		path := filepath.Join(dir.Path, entry.Name())
		meta, err := r.fs.Lstat(path)
		if err != nil {
			res.fail(path, err)
			continue
		}
		switch {
		case !meta.IsDir():
			r.removeFile(meta, res)
		case meta.Device != device:
			res.fail(path, ErrCrossDevice)
		default:
			r.removeDir(meta, device, res)
		}
	}

	// A child already failed; the directory cannot be empty.
	if len(res.Errors) > failed {
		return
	}
	if err := r.remove(dir.Path); err != nil {
		res.fail(dir.Path, err)
		return
	}
	res.Removed++
}

func (r *Remover) removeFile(meta Metadata, res *RemoveResult) {
	// Chmod follows symlinks, so only regular files get the bit cleared.
	if meta.Mode.IsRegular() && meta.Mode.Perm()&0o200 == 0 {
		if err := r.chmod(meta.Path, meta.Mode.Perm()|0o200); err != nil {
			r.logger.Debug("cannot clear read-only bit", "path", meta.Path, "error", err)
		}
	}
	if err := r.remove(meta.Path); err != nil {
		res.fail(meta.Path, err)
		return
	}
	res.Removed++
	res.Freed += uint64(max(meta.Size, 0)) //nolint:gosec // clamped non-negative
}
