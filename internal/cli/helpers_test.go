package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kstenerud/tmpsweep/internal/sweep"
	"github.com/stretchr/testify/require"
)

// isolate points HOME at an empty temp dir so no real config is read.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(sweep.EnvSweepDir, "")
	return home
}

// runCLI executes the root command with the given stdin and args.
func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd("dev", "none", "unknown")
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func writeAged(t *testing.T, root, name, content string, age time.Duration) string {
	t.Helper()
	path := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	ts := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(path, ts, ts))
	return path
}

// scratchDir builds: 01 (stale, 5 bytes), 02 (one fresh file), 03 (empty),
// notes (stale but not a two-digit name).
func scratchDir(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeAged(t, root, "01/a.txt", "hello", 30*24*time.Hour)
	writeAged(t, root, "02/new.txt", "x", time.Minute)
	require.NoError(t, os.Mkdir(filepath.Join(root, "03"), 0750))
	writeAged(t, root, "notes/old.txt", "x", 30*24*time.Hour)
	return root
}
