// pkg/config/loader_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Filesystem (t.TempDir), environment variables
// PURPOSE: Test layered configuration loading and validation

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/mcgen/pkg/errors"
)

// isolate points XDG lookups and MCGEN_CONFIG away from the developer's
// real config.
func isolate(t *testing.T) {
	t.Helper()
	t.Cleanup(xdg.Reload)
	t.Setenv(EnvConfigFile, "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, 1250, cfg.Render.SkullSize)
	assert.InDelta(t, 0.5236, cfg.Render.XRotation, 1e-4)
	assert.InDelta(t, -0.7854, cfg.Render.YRotation, 1e-4)
	assert.Equal(t, 33, cfg.Render.FrameDelay)
	assert.Equal(t, 9, cfg.Render.InventoryColumns)
	assert.Equal(t, 10*time.Second, cfg.Render.Timeout)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, ".", cfg.Output.Dir)
}

func TestLoadLayers(t *testing.T) {
	t.Run("user file overrides defaults", func(t *testing.T) {
		isolate(t)
		path := writeConfig(t, `
[render]
frame_delay = 50
timeout = "2s"

[textures]
dir = "/srv/skins"
`)
		cfg, err := Load(path, nil)
		require.NoError(t, err)
		assert.Equal(t, 50, cfg.Render.FrameDelay)
		assert.Equal(t, 2*time.Second, cfg.Render.Timeout)
		assert.Equal(t, "/srv/skins", cfg.Textures.Dir)
		assert.Equal(t, 1250, cfg.Render.SkullSize)
	})

	t.Run("MCGEN_CONFIG names the file", func(t *testing.T) {
		isolate(t)
		t.Setenv(EnvConfigFile, writeConfig(t, "[render]\nscale = 4\n"))
		cfg, err := Load("", nil)
		require.NoError(t, err)
		assert.Equal(t, 4, cfg.Render.Scale)
	})

	t.Run("xdg default file is picked up", func(t *testing.T) {
		isolate(t)
		dir := filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "mcgen")
		require.NoError(t, os.MkdirAll(dir, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[server]\naddr = \":9000\"\n"), 0644))

		cfg, err := Load("", nil)
		require.NoError(t, err)
		assert.Equal(t, ":9000", cfg.Server.Addr)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		isolate(t)
		path := writeConfig(t, "[render]\nframe_delay = 50\n")
		t.Setenv("MCGEN_RENDER_FRAME_DELAY", "70")
		t.Setenv("MCGEN_SERVER_ALLOWED_ORIGINS", "https://a.example,https://b.example")

		cfg, err := Load(path, nil)
		require.NoError(t, err)
		assert.Equal(t, 70, cfg.Render.FrameDelay)
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	})

	t.Run("overrides win over everything", func(t *testing.T) {
		isolate(t)
		t.Setenv("MCGEN_RENDER_SCALE", "3")
		cfg, err := Load("", map[string]interface{}{"render.scale": 5})
		require.NoError(t, err)
		assert.Equal(t, 5, cfg.Render.Scale)
	})
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		missing bool
		code    errors.ErrorCode
	}{
		{name: "missing explicit file", missing: true, code: errors.ErrConfigLoad},
		{name: "broken toml", content: "[render\n", code: errors.ErrConfigParse},
		{name: "bad duration", content: "[render]\ntimeout = \"soon\"\n", code: errors.ErrConfigParse},
		{name: "zero columns", content: "[render]\ninventory_columns = 0\n", code: errors.ErrConfigParse},
		{name: "negative delay", content: "[render]\nframe_delay = -1\n", code: errors.ErrConfigParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			path := filepath.Join(t.TempDir(), "absent.toml")
			if !tt.missing {
				path = writeConfig(t, tt.content)
			}
			_, err := Load(path, nil)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetErrorCode(err))
		})
	}
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "render.frame_delay", envKey("MCGEN_RENDER_FRAME_DELAY"))
	assert.Equal(t, "server.addr", envKey("MCGEN_SERVER_ADDR"))
	assert.Equal(t, "", envKey(EnvConfigFile))
	assert.Equal(t, "", envKey("MCGEN_LOG_FILE"))
}

func TestDefaultsContent(t *testing.T) {
	assert.Contains(t, Defaults(), "[render]")
	assert.Contains(t, Defaults(), "skull_size")
}
