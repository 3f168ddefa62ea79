package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	// point at a nonexistent file so only defaults apply
	t.Setenv("BUILDEROS_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
	require.Equal(t, 30*time.Second, cfg.API.Timeout())
	require.Equal(t, "info", cfg.Logging.Level)
	require.Equal(t, "$", cfg.UI.CurrencySymbol)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("BUILDEROS_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("BUILDEROS_API_BASE_URL", "http://deals.internal:9000")
	t.Setenv("BUILDEROS_LOGGING_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http://deals.internal:9000", cfg.API.BaseURL)
	require.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := "[api]\nbase_url = \"http://10.0.0.5:8000\"\ntimeout_seconds = 5\n\n[ui]\ndate_format = \"2006-01-02\"\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	t.Setenv("BUILDEROS_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http://10.0.0.5:8000", cfg.API.BaseURL)
	require.Equal(t, 5*time.Second, cfg.API.Timeout())
	require.Equal(t, "2006-01-02", cfg.UI.DateFormat)
	// untouched keys keep their defaults
	require.Equal(t, "info", cfg.Logging.Level)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	t.Setenv("BUILDEROS_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	cfg.API.BaseURL = "http://example.test:8000"
	require.NoError(t, Save(cfg))

	reloaded, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http://example.test:8000", reloaded.API.BaseURL)
}
