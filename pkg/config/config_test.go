package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDirs(t *testing.T) (string, string) {
	t.Helper()

	base := t.TempDir()
	t.Setenv("WALLSY_MEDIA_DIR", filepath.Join(base, "media"))
	t.Setenv("WALLSY_EFFECTS_DIR", filepath.Join(base, "effects"))
	t.Setenv("WALLSY_WALLPAPER_DIR", filepath.Join(base, "walls"))

	return t.TempDir(), base
}

func TestLoadWritesDefaultsOnFirstRun(t *testing.T) {
	dir, base := testDirs(t)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.Dir())
	assert.Equal(t, filepath.Join(base, "media"), cfg.MediaDir)
	assert.Equal(t, filepath.Join(base, "effects"), cfg.EffectsDir)
	assert.Equal(t, filepath.Join(base, "walls"), cfg.WallpaperDir)
	assert.Empty(t, cfg.WallhavenKey)
	assert.Empty(t, cfg.SetCommand)

	// config.json is created and the media dirs exist afterwards
	_, err = os.Stat(filepath.Join(dir, FileName))
	assert.NoError(t, err)
	for _, d := range []string{cfg.MediaDir, cfg.EffectsDir, cfg.WallpaperDir} {
		info, err := os.Stat(d)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestLoadReadsExistingFile(t *testing.T) {
	dir, base := testDirs(t)

	file := map[string]string{
		"wallhaven_api_key": "k3y",
		"set_command":       "feh --bg-fill {path}",
	}
	bs, err := json.Marshal(file)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), bs, 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "k3y", cfg.WallhavenKey)
	assert.Equal(t, "feh --bg-fill {path}", cfg.SetCommand)
	assert.Equal(t, filepath.Join(base, "media"), cfg.MediaDir)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir, _ := testDirs(t)

	bs, err := json.Marshal(map[string]string{"wallhaven_api_key": "from-file"})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), bs, 0644))

	t.Setenv("WALLSY_WALLHAVEN_API_KEY", "from-env")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.WallhavenKey)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	dir, _ := testDirs(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("{oops"), 0644))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestDefaultDirEnv(t *testing.T) {
	t.Setenv("WALLSY_CONFIG_DIR", "/tmp/wallsy-conf")

	dir, err := DefaultDir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/wallsy-conf", dir)
}

func TestReset(t *testing.T) {
	dir, _ := testDirs(t)

	_, err := Load(dir)
	require.NoError(t, err)

	require.NoError(t, Reset(dir))

	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}
