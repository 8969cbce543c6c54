package generator

import (
	"context"
	"image"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/mcgen/pkg/config"
	"github.com/arthur-debert/mcgen/pkg/errors"
	"github.com/arthur-debert/mcgen/pkg/logging"
	"github.com/arthur-debert/mcgen/pkg/overlay"
	"github.com/arthur-debert/mcgen/pkg/render"
)

var log = logging.GetLogger("generator")

// Generator serves render requests. It is safe for concurrent use: all
// resources are loaded in New and only read afterwards.
type Generator struct {
	cfg      *config.Config
	overlays *overlay.Registry
	items    render.ItemSource
	skins    render.TextureSource
}

// Sources lets callers supply resources directly instead of loading them
// from the paths in the configuration. Nil fields are loaded as usual.
type Sources struct {
	Overlays *overlay.Registry
	Items    render.ItemSource
	Skins    render.TextureSource
}

// New loads the item atlas, skin directory and overlay table named in cfg.
func New(cfg *config.Config, src Sources) (*Generator, error) {
	g := &Generator{cfg: cfg, overlays: src.Overlays, items: src.Items, skins: src.Skins}

	if g.items == nil && cfg.Textures.Atlas != "" {
		sheet, err := loadSpritesheet(cfg.Textures.Atlas, cfg.Textures.Index)
		if err != nil {
			return nil, err
		}
		g.items = sheet
	}
	if g.skins == nil && cfg.Textures.Dir != "" {
		g.skins = render.DirSource{Dir: cfg.Textures.Dir}
	}
	if g.overlays == nil {
		reg, err := loadOverlays(cfg.Overlays.Path, g.items)
		if err != nil {
			return nil, err
		}
		g.overlays = reg
	}

	log.Info().
		Bool("items", g.items != nil).
		Bool("skins", g.skins != nil).
		Int("overlays", len(g.overlays.Names())).
		Msg("Generator ready")
	return g, nil
}

// Config returns the configuration the generator was built with.
func (g *Generator) Config() *config.Config { return g.cfg }

// Overlays returns the loaded overlay table.
func (g *Generator) Overlays() *overlay.Registry { return g.overlays }

func loadSpritesheet(atlasPath, indexPath string) (*render.Spritesheet, error) {
	atlas, err := os.Open(atlasPath)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot open texture atlas %s", atlasPath)
	}
	defer func() { _ = atlas.Close() }()

	index, err := os.Open(indexPath)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot open texture index %s", indexPath)
	}
	defer func() { _ = index.Close() }()

	return render.LoadSpritesheet(atlas, index)
}

// overlayImages adapts an item atlas to the overlay image lookup. Layers
// missing from the atlas load as nil; overlay.Apply reports them when used.
type overlayImages struct {
	items render.ItemSource
}

func (o overlayImages) Image(name string) (image.Image, error) {
	img, err := o.items.Image(name)
	if errors.IsErrorCode(err, errors.ErrNotFound) {
		log.Debug().Str("layer", name).Msg("Overlay layer not in atlas")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return img, nil
}

func loadOverlays(path string, items render.ItemSource) (*overlay.Registry, error) {
	var images overlay.ImageSource
	if items != nil {
		images = overlayImages{items: items}
	}
	if path == "" {
		return overlay.LoadDefaults(images)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot open overlay table %s", path)
	}
	defer func() { _ = f.Close() }()
	return overlay.LoadRegistry(f, images)
}

// run wraps one request with a request id, start and duration logging and
// the configured time budget.
func run[T any](ctx context.Context, g *Generator, operation string, fn func(logger zerolog.Logger) (T, error)) (T, error) {
	logger := logging.WithFields(map[string]interface{}{
		"component":  "generator",
		"request_id": uuid.NewString(),
		"operation":  operation,
	})
	logger.Debug().Msg("Request started")

	start := time.Now()
	defer logging.LogDuration(start, operation)
	v, err := WithTimeout(ctx, operation, g.cfg.Render.Timeout, func() (T, error) {
		return fn(logger)
	})
	if err != nil {
		logger.Warn().Err(err).Dur("elapsed", time.Since(start)).Msg("Request failed")
	}
	return v, err
}
