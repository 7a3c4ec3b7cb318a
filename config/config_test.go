package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "wallet.json", cfg.File)
	assert.Equal(t, time.Second, cfg.SaveDelay)
	assert.Equal(t, "EGP", cfg.Currency)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.BackupBucket)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("WALLET_FILE", "/tmp/home.json")
	t.Setenv("WALLET_SAVE_DELAY", "250ms")
	t.Setenv("WALLET_CURRENCY", "usd")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "/tmp/home.json", cfg.File)
	assert.Equal(t, 250*time.Millisecond, cfg.SaveDelay)
	assert.Equal(t, "USD", cfg.Currency)
}

func TestLoad_EnvFile(t *testing.T) {
	env := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(env, []byte("WALLET_BACKUP_BUCKET=family-backups\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("WALLET_BACKUP_BUCKET") })

	cfg, err := Load(env)
	require.NoError(t, err)
	assert.Equal(t, "family-backups", cfg.BackupBucket)
}

func TestLoad_InvalidDelay(t *testing.T) {
	t.Setenv("WALLET_SAVE_DELAY", "soon")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}
