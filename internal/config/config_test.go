package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data", cfg.Paths.DataDir)
	assert.Equal(t, "reports", cfg.Paths.ReportsDir)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "console", cfg.Logging.Output)
	assert.Equal(t, 4, cfg.Load.Workers)
	assert.Empty(t, cfg.Load.Pattern)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("CEAB_PATHS_DATA_DIR", "/srv/ceab")
	t.Setenv("CEAB_LOGGING_LEVEL", "debug")
	t.Setenv("CEAB_LOAD_WORKERS", "8")
	t.Setenv("CEAB_LOAD_PATTERN", `.*\.xlsx$`)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/ceab", cfg.Paths.DataDir)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 8, cfg.Load.Workers)
	assert.Equal(t, `.*\.xlsx$`, cfg.Load.Pattern)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("paths:\n  data_dir: /mnt/measurements\nload:\n  workers: 2\n")
	require.NoError(t, os.WriteFile(path, content, 0644))
	t.Setenv("CEAB_CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/mnt/measurements", cfg.Paths.DataDir)
	assert.Equal(t, 2, cfg.Load.Workers)
	assert.Equal(t, "reports", cfg.Paths.ReportsDir, "unset values keep their defaults")
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("CEAB_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad log level", "CEAB_LOGGING_LEVEL", "verbose"},
		{"bad log output", "CEAB_LOGGING_OUTPUT", "syslog"},
		{"zero workers", "CEAB_LOAD_WORKERS", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
