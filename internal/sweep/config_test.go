package sweep

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// configHome points HOME at a temp dir and returns the config.yaml path.
func configHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return filepath.Join(home, ".tmpsweep", "config.yaml")
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestLoadConfig_Missing(t *testing.T) {
	configHome(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)

	policy, err := cfg.Policy()
	require.NoError(t, err)
	assert.Equal(t, DefaultPolicy(), policy)

	re, err := cfg.NamePattern()
	require.NoError(t, err)
	assert.True(t, re.MatchString("42"))
	assert.False(t, re.MatchString("420"))
}

func TestLoadConfig_Fields(t *testing.T) {
	path := configHome(t)
	writeConfig(t, path, "# scratch sweeper\nroot: /scratch\nthreshold: 2weeks\nconsider_access_time: false\npattern: \"\"\njobs: 4\n")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "/scratch", cfg.Root)
	assert.Equal(t, 4, cfg.Jobs)

	policy, err := cfg.Policy()
	require.NoError(t, err)
	assert.Equal(t, Policy{Threshold: 14 * 24 * time.Hour, ConsiderAccessTime: false}, policy)

	re, err := cfg.NamePattern()
	require.NoError(t, err)
	assert.Nil(t, re)
}

func TestLoadConfig_UnknownKey(t *testing.T) {
	path := configHome(t)
	writeConfig(t, path, "thresold: 3d\n")

	_, err := LoadConfig()
	var configErr *ConfigError
	assert.ErrorAs(t, err, &configErr)
}

func TestConfigPolicy_BadThreshold(t *testing.T) {
	_, err := (&Config{Threshold: "soon"}).Policy()
	var configErr *ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestUpdateConfigFields_CreatesFile(t *testing.T) {
	path := configHome(t)

	require.NoError(t, UpdateConfigFields(map[string]string{"threshold": "10d"}))

	data, err := os.ReadFile(path) //nolint:gosec
	require.NoError(t, err)
	assert.Equal(t, "threshold: 10d\n", string(data))

	value, found, err := GetConfigValue("threshold")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "10d", value)
}

func TestUpdateConfigFields_PreservesComments(t *testing.T) {
	path := configHome(t)
	writeConfig(t, path, "# my sweeper\nroot: /scratch # shared box\n")

	require.NoError(t, UpdateConfigFields(map[string]string{"consider_access_time": "false"}))

	data, err := os.ReadFile(path) //nolint:gosec
	require.NoError(t, err)
	assert.Contains(t, string(data), "# my sweeper")
	assert.Contains(t, string(data), "# shared box")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg.ConsiderAccessTime)
	assert.False(t, *cfg.ConsiderAccessTime)
	assert.Equal(t, "/scratch", cfg.Root)
}

func TestUpdateConfigFields_Overwrites(t *testing.T) {
	path := configHome(t)
	writeConfig(t, path, "jobs: 2\n")

	require.NoError(t, UpdateConfigFields(map[string]string{"jobs": "8"}))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Jobs)
}

func TestUpdateConfigFields_Rejects(t *testing.T) {
	configHome(t)

	for _, fields := range []map[string]string{
		{"colour": "blue"},
		{"threshold": "whenever"},
		{"jobs": "0"},
		{"consider_access_time": "maybe"},
		{"pattern": "("},
	} {
		err := UpdateConfigFields(fields)
		var usageErr *UsageError
		assert.ErrorAs(t, err, &usageErr, "fields %v", fields)
	}
}

func TestGetConfigValue_Missing(t *testing.T) {
	path := configHome(t)

	_, found, err := GetConfigValue("root")
	require.NoError(t, err)
	assert.False(t, found)

	writeConfig(t, path, "jobs: 3\n")
	_, found, err = GetConfigValue("root")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestUpdateConfigFields_CanonicalBool(t *testing.T) {
	path := configHome(t)

	for _, tc := range []struct {
		input string
		want  bool
	}{
		{"1", true},
		{"True", true},
		{"t", true},
		{"f", false},
		{"FALSE", false},
	} {
		require.NoError(t, UpdateConfigFields(map[string]string{"consider_access_time": tc.input}), tc.input)

		data, err := os.ReadFile(path) //nolint:gosec
		require.NoError(t, err)
		assert.Contains(t, string(data), "consider_access_time: "+strconv.FormatBool(tc.want), tc.input)

		cfg, err := LoadConfig()
		require.NoError(t, err, tc.input)
		policy, err := cfg.Policy()
		require.NoError(t, err)
		assert.Equal(t, tc.want, policy.ConsiderAccessTime, tc.input)
	}
}

func TestUpdateConfigFields_CanonicalJobs(t *testing.T) {
	configHome(t)

	require.NoError(t, UpdateConfigFields(map[string]string{"jobs": "+08"}))

	value, found, err := GetConfigValue("jobs")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "8", value)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Jobs)
}

func TestUpdateConfigFields_StringsStayStrings(t *testing.T) {
	configHome(t)

	require.NoError(t, UpdateConfigFields(map[string]string{
		"root":    "2024",
		"pattern": "",
	}))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "2024", cfg.Root)
	require.NotNil(t, cfg.Pattern)
	assert.Empty(t, *cfg.Pattern)

	re, err := cfg.NamePattern()
	require.NoError(t, err)
	assert.Nil(t, re)
}
