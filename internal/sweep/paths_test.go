package sweep

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRoot_HomeTmp(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.Mkdir(filepath.Join(home, "tmp"), 0750))

	root, err := DefaultRoot()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "tmp"), root)
}

func TestDefaultRoot_FallsBackToTmpdirUser(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	tmpdir := t.TempDir()
	t.Setenv("TMPDIR", tmpdir)
	t.Setenv("USER", "alice")

	root, err := DefaultRoot()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmpdir, "alice"), root)
}

func TestResolveRoot_Precedence(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvSweepDir, "")

	cfg := &Config{Root: "~/scratch"}
	root, err := ResolveRoot("", cfg)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "scratch"), root)

	t.Setenv(EnvSweepDir, "/from/env")
	root, err = ResolveRoot("", cfg)
	require.NoError(t, err)
	assert.Equal(t, "/from/env", root)

	root, err = ResolveRoot("/from/arg", cfg)
	require.NoError(t, err)
	assert.Equal(t, "/from/arg", root)
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "tmp"), expandTilde("~/tmp"))
	assert.Equal(t, home, expandTilde("~"))
	assert.Equal(t, "/usr/local", expandTilde("/usr/local"))
}
