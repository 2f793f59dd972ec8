package sweep

// ABOUTME: Resolves which directory to sweep when none is given.

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
)

// EnvSweepDir overrides the configured and default sweep directory.
const EnvSweepDir = "TMPSWEEP_DIR"

// DefaultRoot returns $HOME/tmp if it is a directory, otherwise
// $TMPDIR/$USER.
func DefaultRoot() (string, error) {
	if home, err := os.UserHomeDir(); err == nil {
		dir := filepath.Join(home, "tmp")
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir, nil
		}
	}

	name := os.Getenv("USER")
	if name == "" {
		u, err := user.Current()
		if err != nil {
			return "", fmt.Errorf("%w: no $HOME/tmp and no user name: %w", ErrNoRoot, err)
		}
		name = u.Username
	}
	return filepath.Join(os.TempDir(), name), nil
}

// ResolveRoot picks the sweep directory: an explicit argument first, then
// $TMPSWEEP_DIR, then the configured root, then DefaultRoot.
func ResolveRoot(arg string, cfg *Config) (string, error) {
	for _, candidate := range []string{arg, os.Getenv(EnvSweepDir), cfg.Root} {
		if candidate != "" {
			return filepath.Abs(expandTilde(candidate))
		}
	}
	return DefaultRoot()
}

// expandTilde replaces a leading ~ with the user's home directory.
func expandTilde(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
