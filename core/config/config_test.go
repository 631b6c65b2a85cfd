package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "bg3", cfg.Game.GameID)
	assert.Equal(t, 120, cfg.Game.ExtractTimeoutSeconds)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.False(t, cfg.Database.Enabled)
	assert.Equal(t, "profiles", cfg.Backup.Prefix)
}

func TestLoadConfig_EnvFile(t *testing.T) {
	dir := t.TempDir()
	env := "GAME_TOOL_PATH=/opt/divine/divine\nSERVER_PORT=9090\nDATABASE_ENABLED=true\nLOG_COMPRESS=false\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o644))
	t.Cleanup(func() {
		for _, k := range []string{"GAME_TOOL_PATH", "SERVER_PORT", "DATABASE_ENABLED", "LOG_COMPRESS"} {
			os.Unsetenv(k)
		}
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "/opt/divine/divine", cfg.Game.ToolPath)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.Database.Enabled)
	assert.False(t, cfg.Log.Compress)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("GAME_PROFILES_DIR", "/data/profiles")
	t.Setenv("STORAGE_BUCKET", "saves")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "/data/profiles", cfg.Game.ProfilesDir)
	assert.Equal(t, "saves", cfg.Storage.Bucket)
}

func TestGameConfig(t *testing.T) {
	g := GameConfig{ProfilesDir: "profiles", ExtractTimeoutSeconds: 5}
	assert.Equal(t, filepath.Join("profiles", "Default"), g.ProfileDir("Default"))
	assert.Equal(t, 5*time.Second, g.ExtractTimeout())
	assert.Zero(t, GameConfig{}.ExtractTimeout())
}
