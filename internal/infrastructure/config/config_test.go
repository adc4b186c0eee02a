package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFrom_Defaults(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "")

	cfg, err := LoadConfigFrom(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "https://api.themoviedb.org/3", cfg.TMDB.BaseURL)
	assert.Equal(t, 40, cfg.TMDB.QPS)
	assert.Equal(t, 10*time.Second, cfg.TMDB.Timeout)
	assert.Equal(t, 300*time.Millisecond, cfg.Browse.SearchDebounce)
	assert.Equal(t, 30*time.Minute, cfg.Browse.SessionTTL)
	assert.False(t, cfg.Browse.DarkTheme)
	assert.Equal(t, "w500", cfg.Images.Size)
	assert.Equal(t, "0 9 * * *", cfg.Digest.Cron)
}

func TestLoadConfigFrom_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  port: "9090"
tmdb:
  api_key: from-file
  qps: 5
browse:
  dark_theme: true
  search_debounce: 150ms
telegram:
  chat_ids: [1001, 1002]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))
	t.Setenv("MOVIEBROWSER_TMDB_LANGUAGE", "de-DE")

	cfg, err := LoadConfigFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "from-file", cfg.TMDB.APIKey)
	assert.Equal(t, 5, cfg.TMDB.QPS)
	assert.Equal(t, "de-DE", cfg.TMDB.Language)
	assert.True(t, cfg.Browse.DarkTheme)
	assert.Equal(t, 150*time.Millisecond, cfg.Browse.SearchDebounce)
	assert.Equal(t, []int64{1001, 1002}, cfg.Telegram.ChatIDs)
}

func TestLoadConfigFrom_TMDBKeyFallback(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "env-key")

	cfg, err := LoadConfigFrom(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.TMDB.APIKey)
}
