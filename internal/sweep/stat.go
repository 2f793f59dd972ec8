// Package sweep decides which subtrees of a scratch directory are stale
// enough to delete, and deletes them.
package sweep

// ABOUTME: Filesystem metadata lookups that never follow symlinks.
// ABOUTME: Filesystem is the seam tests use to count and fake lookups.

import (
	"io/fs"
	"os"
	"time"
)

// Metadata is the subset of lstat(2) output the sweep needs. ModifiedAt and
// AccessedAt are zero when the platform could not supply them.
type Metadata struct {
	Path       string
	Mode       fs.FileMode
	Size       int64
	ModifiedAt time.Time
	AccessedAt time.Time
	Device     uint64
}

// IsDir reports whether the entry itself is a directory. A symlink to a
// directory is not.
func (m Metadata) IsDir() bool { return m.Mode.IsDir() }

// Filesystem lists directories and reads entry metadata without following
// symlinks.
type Filesystem interface {
	ReadDir(path string) ([]fs.DirEntry, error)
	Lstat(path string) (Metadata, error)
}

// OSFilesystem is the Filesystem backed by the host operating system.
type OSFilesystem struct{}

// ReadDir returns the entries of path sorted by name.
func (OSFilesystem) ReadDir(path string) ([]fs.DirEntry, error) {
	return os.ReadDir(path)
}

// Lstat reads metadata for path itself, not its symlink target.
func (OSFilesystem) Lstat(path string) (Metadata, error) {
	return lstat(path)
}
