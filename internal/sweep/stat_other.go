//go:build !linux && !darwin

package sweep

import "os"

// lstat falls back to os.Lstat where access times are not portable. With
// AccessedAt left zero, the default policy keeps every file; use
// ConsiderAccessTime=false on these platforms.
func lstat(path string) (Metadata, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return Metadata{}, err
	}
	return Metadata{
		Path:       path,
		Mode:       info.Mode(),
		Size:       info.Size(),
		ModifiedAt: info.ModTime(),
	}, nil
}
