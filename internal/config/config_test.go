package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-leo/beanutils/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "en-US", cfg.Locale.Default)
	assert.False(t, cfg.Locale.Localized)
	assert.True(t, cfg.Convert.Throw)
	assert.True(t, cfg.Convert.DefaultZero)
	assert.Equal(t, 0, cfg.Convert.ArraySize)
	assert.Empty(t, cfg.Convert.DatePatterns)
}

func TestLoadConfigSources(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "beanconv.yaml"), []byte(`
log:
  level: debug
locale:
  default: de-DE
  localized: true
convert:
  array_size: 2
  date_patterns:
    - dd.MM.yyyy
    - yyyy-MM-dd
`), 0o600))
	t.Setenv("BEANCONV_LOG_FORMAT", "json")
	t.Setenv("BEANCONV_CONVERT_THROW", "false")

	cfg, err := config.LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "de-DE", cfg.Locale.Default)
	assert.True(t, cfg.Locale.Localized)
	assert.False(t, cfg.Convert.Throw)
	assert.Equal(t, 2, cfg.Convert.ArraySize)
	assert.Equal(t, []string{"dd.MM.yyyy", "yyyy-MM-dd"}, cfg.Convert.DatePatterns)
}

func TestLoadConfigInvalid(t *testing.T) {
	t.Setenv("BEANCONV_CONVERT_ARRAY_SIZE", "many")
	_, err := config.LoadConfig(t.TempDir())
	assert.Error(t, err)
}
