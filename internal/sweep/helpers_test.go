package sweep

import (
	"bytes"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const month30 = 30 * 24 * time.Hour

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// writeAgedFile creates a file of size bytes whose atime and mtime are age old.
func writeAgedFile(t *testing.T, dir, name string, size int, age time.Duration) string {
	t.Helper()
	path := writeTestFile(t, dir, name, strings.Repeat("x", size))
	setAge(t, path, age)
	return path
}

func setAge(t *testing.T, path string, age time.Duration) {
	t.Helper()
	ts := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(path, ts, ts))
}

func mkdir(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(path, 0750))
	return path
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, nil)), &buf
}

// fakeFS wraps the host filesystem, recording lookups and injecting
// failures or foreign device numbers for chosen paths.
type fakeFS struct {
	OSFilesystem

	mu         sync.Mutex
	lstats     []string
	readDirs   []string
	lstatErr   map[string]error
	readDirErr map[string]error
	device     map[string]uint64
}

func newFakeFS() *fakeFS {
	return &fakeFS{
		lstatErr:   map[string]error{},
		readDirErr: map[string]error{},
		device:     map[string]uint64{},
	}
}

func (f *fakeFS) Lstat(path string) (Metadata, error) {
	f.mu.Lock()
	f.lstats = append(f.lstats, path)
	err := f.lstatErr[path]
	dev, devOK := f.device[path]
	f.mu.Unlock()

	if err != nil {
		return Metadata{}, err
	}
	meta, err := f.OSFilesystem.Lstat(path)
	if err == nil && devOK {
		meta.Device = dev
	}
	return meta, err
}

func (f *fakeFS) ReadDir(path string) ([]fs.DirEntry, error) {
	f.mu.Lock()
	f.readDirs = append(f.readDirs, path)
	err := f.readDirErr[path]
	f.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return f.OSFilesystem.ReadDir(path)
}

func (f *fakeFS) statted(path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.lstats {
		if p == path {
			return true
		}
	}
	return false
}
