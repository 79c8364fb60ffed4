package gridlib_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twosigma/ngrid/internal/gridlib"
)

func TestDefaultConfig(t *testing.T) {
	cfg := gridlib.DefaultConfig()
	assert.Equal(t, 1, cfg.PrecisionMin)
	assert.Equal(t, 6, cfg.PrecisionMax)
	assert.Equal(t, 4, cfg.StrWidthMin)
	assert.Equal(t, 32, cfg.StrWidthMax)
	assert.Equal(t, "NaN", cfg.NaNString)
	assert.True(t, cfg.ShowHeader)
	assert.True(t, cfg.ShowFooter)
	assert.False(t, cfg.ShowCursor)
}

func TestLoadConfigMissing(t *testing.T) {
	cfg, err := gridlib.LoadConfig(filepath.Join(t.TempDir(), "no-such.yaml"))
	require.NoError(t, err)
	assert.Equal(t, gridlib.DefaultConfig(), cfg)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"precision_max: 8\nellipsis: '...'\nshow_cursor: true\n"), 0o644))

	cfg, err := gridlib.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.PrecisionMax)
	assert.Equal(t, "...", cfg.Ellipsis)
	assert.True(t, cfg.ShowCursor)
	// Untouched keys keep their defaults.
	assert.Equal(t, 1, cfg.PrecisionMin)
	assert.Equal(t, "NaN", cfg.NaNString)
}

func TestLoadConfigBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("precision_max: [oops\n"), 0o644))
	_, err := gridlib.LoadConfig(path)
	assert.Error(t, err)
}
