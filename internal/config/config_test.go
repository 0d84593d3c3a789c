package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadFromEnvDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "prod", cfg.Env)
	require.Equal(t, "student_data.json", cfg.StoragePath)
	require.Equal(t, DriverJSON, cfg.StorageDriver)
	require.Empty(t, cfg.LogFile)
	require.False(t, cfg.SaveOnExit)
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("STORAGE_PATH", "/tmp/roster.db")
	t.Setenv("STORAGE_DRIVER", "sqlite")
	t.Setenv("SHELL_SAVE_ON_EXIT", "true")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "/tmp/roster.db", cfg.StoragePath)
	require.Equal(t, DriverSQLite, cfg.StorageDriver)
	require.True(t, cfg.Shell.SaveOnExit)
}

func TestLoadFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.yaml")
	yaml := `
env: "dev"
storage_path: "storage/data.json"
log_file: "storage/app.log"
shell:
  save_on_exit: true
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, "storage/data.json", cfg.StoragePath)
	require.Equal(t, DriverJSON, cfg.StorageDriver, "unset keys fall back to env-default")
	require.Equal(t, "storage/app.log", cfg.LogFile)
	require.True(t, cfg.SaveOnExit)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "postgres")

	_, err := Load("")
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorContains(t, err, "does not exist")
}
