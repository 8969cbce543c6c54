package config

import (
	"math"
	"time"

	"github.com/arthur-debert/mcgen/pkg/errors"
)

// Config is the decoded configuration.
type Config struct {
	Render   Render   `koanf:"render"`
	Textures Textures `koanf:"textures"`
	Overlays Overlays `koanf:"overlays"`
	Server   Server   `koanf:"server"`
	Output   Output   `koanf:"output"`
}

// Render holds defaults for image generation.
type Render struct {
	SkullSize        int           `koanf:"skull_size"`
	XRotation        float64       `koanf:"x_rotation"`
	YRotation        float64       `koanf:"y_rotation"`
	ZRotation        float64       `koanf:"z_rotation"`
	FrameDelay       int           `koanf:"frame_delay"`
	Scale            int           `koanf:"scale"`
	InventoryColumns int           `koanf:"inventory_columns"`
	Timeout          time.Duration `koanf:"timeout"`
}

// Textures locates item and skin textures on disk. Dir holds skins named
// <texture id>.png, Atlas and Index describe the item spritesheet.
type Textures struct {
	Dir   string `koanf:"dir"`
	Atlas string `koanf:"atlas"`
	Index string `koanf:"index"`
}

// Overlays points at an overlay table replacing the built-in one.
type Overlays struct {
	Path string `koanf:"path"`
}

// Server configures the HTTP API.
type Server struct {
	Addr           string   `koanf:"addr"`
	AllowedOrigins []string `koanf:"allowed_origins"`
}

// Output configures where generated files are written.
type Output struct {
	Dir string `koanf:"dir"`
}

// Validate rejects values no renderer can work with.
func (c *Config) Validate() error {
	switch {
	case c.Render.SkullSize < 2:
		return invalid("render.skull_size", c.Render.SkullSize)
	case c.Render.FrameDelay < 0:
		return invalid("render.frame_delay", c.Render.FrameDelay)
	case c.Render.InventoryColumns < 1:
		return invalid("render.inventory_columns", c.Render.InventoryColumns)
	case c.Render.Timeout < 0:
		return invalid("render.timeout", c.Render.Timeout)
	case math.IsNaN(c.Render.XRotation) || math.IsNaN(c.Render.YRotation) || math.IsNaN(c.Render.ZRotation):
		return errors.New(errors.ErrConfigParse, "rotations must be numbers")
	}
	return nil
}

func invalid(key string, value interface{}) error {
	return errors.Newf(errors.ErrConfigParse, "invalid value for %s: %v", key, value).
		WithDetail("key", key).
		WithDetail("value", value)
}
