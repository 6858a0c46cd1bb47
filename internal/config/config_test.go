package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jsteiner/chargelog/internal/config"
)

// clearEnv blanks every CHARGELOG_* variable so tests see only what they set.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CHARGELOG_CONFIG_PATH",
		"CHARGELOG_DB_PATH",
		"CHARGELOG_LOG_LEVEL",
		"CHARGELOG_EXPORT_DIR",
		"CHARGELOG_PAGE_SIZE",
	} {
		t.Setenv(key, "")
	}
}

// TestLoad_defaults verifies that every value has a usable default — nothing
// is required.
func TestLoad_defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "chargelog.db", cfg.DBPath)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, ".", cfg.ExportDir)
	require.Equal(t, 4, cfg.PageSize)
}

// TestLoad_envOverrides verifies that environment variables win over defaults.
func TestLoad_envOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("CHARGELOG_DB_PATH", "/data/log.db")
	t.Setenv("CHARGELOG_LOG_LEVEL", "debug")
	t.Setenv("CHARGELOG_EXPORT_DIR", "/exports")
	t.Setenv("CHARGELOG_PAGE_SIZE", "10")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "/data/log.db", cfg.DBPath)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "/exports", cfg.ExportDir)
	require.Equal(t, 10, cfg.PageSize)
}

// TestLoad_yamlFile verifies that a YAML config file overlays defaults but is
// itself overridden by env vars.
func TestLoad_yamlFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "chargelog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db_path: from-file.db\nlog_level: warn\n"), 0o644))

	t.Setenv("CHARGELOG_CONFIG_PATH", path)
	t.Setenv("CHARGELOG_LOG_LEVEL", "error")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "from-file.db", cfg.DBPath)
	require.Equal(t, "error", cfg.LogLevel, "env beats file")
}

// TestLoad_badPageSize verifies the only malformed-env failure mode.
func TestLoad_badPageSize(t *testing.T) {
	clearEnv(t)
	t.Setenv("CHARGELOG_PAGE_SIZE", "four")

	_, err := config.Load()

	require.Error(t, err)
	require.ErrorContains(t, err, "CHARGELOG_PAGE_SIZE")
}

// TestLoad_missingFile verifies a dangling CHARGELOG_CONFIG_PATH is an error
// rather than a silent fallback.
func TestLoad_missingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("CHARGELOG_CONFIG_PATH", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := config.Load()

	require.Error(t, err)
}
