//go:build linux || darwin

package sweep

import (
	"os"
	"syscall"
)

func lstat(path string) (Metadata, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return Metadata{}, err
	}
	meta := Metadata{
		Path:       path,
		Mode:       info.Mode(),
		Size:       info.Size(),
		ModifiedAt: info.ModTime(),
	}
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		meta.AccessedAt = accessTime(st)
		meta.Device = uint64(st.Dev) //nolint:gosec // device numbers are never negative
	}
	return meta, nil
}
