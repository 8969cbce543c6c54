// pkg/generator/generator_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: In-memory atlas and skins
// PURPOSE: Test the generator operations end to end over real renderers

package generator_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/mcgen/pkg/config"
	"github.com/arthur-debert/mcgen/pkg/errors"
	"github.com/arthur-debert/mcgen/pkg/generator"
	"github.com/arthur-debert/mcgen/pkg/overlay"
	"github.com/arthur-debert/mcgen/pkg/render"
)

const skinHash = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

var (
	red   = color.NRGBA{R: 255, A: 255}
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

func fill(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

func testConfig() *config.Config {
	return &config.Config{
		Render: config.Render{
			SkullSize:        64,
			XRotation:        render.DefaultXRotation,
			YRotation:        render.DefaultYRotation,
			FrameDelay:       40,
			Scale:            1,
			InventoryColumns: 9,
			Timeout:          5 * time.Second,
		},
	}
}

// testSources provides an atlas with red stone, a white leather helmet and
// its white overlay layer, plus one skin.
func testSources(t *testing.T) generator.Sources {
	t.Helper()
	atlas := image.NewNRGBA(image.Rect(0, 0, 48, 16))
	fill(atlas, image.Rect(0, 0, 16, 16), red)
	fill(atlas, image.Rect(16, 0, 32, 16), white)
	fill(atlas, image.Rect(32, 0, 48, 16), white)
	sheet, err := render.NewSpritesheet(atlas, []render.SpriteEntry{
		{Name: "stone", X: 0, Y: 0, Size: 16},
		{Name: "leather_helmet", X: 16, Y: 0, Size: 16},
		{Name: "leather_armor_overlay", X: 32, Y: 0, Size: 16},
	})
	require.NoError(t, err)

	skin := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	fill(skin, image.Rect(8, 8, 16, 16), red)
	return generator.Sources{Items: sheet, Skins: render.MapSource{skinHash: skin}}
}

func newGenerator(t *testing.T) *generator.Generator {
	t.Helper()
	g, err := generator.New(testConfig(), testSources(t))
	require.NoError(t, err)
	return g
}

func TestNewWithoutResources(t *testing.T) {
	g, err := generator.New(testConfig(), generator.Sources{})
	require.NoError(t, err)
	assert.Contains(t, g.Overlays().Names(), "leather_armor")

	_, err = g.Head(context.Background(), generator.HeadRequest{Skin: skinHash})
	assert.True(t, errors.IsErrorCode(err, errors.ErrGenerator))

	_, err = g.Item(context.Background(), generator.ItemRequest{Material: "stone"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrGenerator))
}

func TestNewMissingAtlas(t *testing.T) {
	cfg := testConfig()
	cfg.Textures.Atlas = "/nonexistent/atlas.png"
	_, err := generator.New(cfg, generator.Sources{})
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestText(t *testing.T) {
	g := newGenerator(t)

	res, err := g.Text(context.Background(), "&aHello &lworld")
	require.NoError(t, err)
	require.Len(t, res.Components, 2)
	assert.Equal(t, "Hello ", res.Components[0].Text)
	assert.Equal(t, "green", res.Components[0].Color)
	assert.True(t, res.Components[1].Bold)

	_, err = g.Text(context.Background(), "%%click:open_url:https://x")
	assert.True(t, errors.IsErrorCode(err, errors.ErrMarkup))
}

func TestTooltip(t *testing.T) {
	g := newGenerator(t)

	tests := []struct {
		name string
		req  generator.TooltipRequest
		want image.Rectangle
	}{
		{"single line", generator.TooltipRequest{Input: "&aHello"}, image.Rect(0, 0, 44, 21)},
		{"wrapped", generator.TooltipRequest{Input: "&aHello there", Width: 5}, image.Rect(0, 0, 44, 34)},
		{"lore gap", generator.TooltipRequest{Input: "Name\nLore", FirstLineGap: true}, image.Rect(0, 0, 37, 36)},
		{"padded", generator.TooltipRequest{Input: "&aHello", Padding: 2}, image.Rect(0, 0, 48, 25)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := g.Tooltip(context.Background(), tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, img.Bounds())
		})
	}

	_, err := g.Tooltip(context.Background(), generator.TooltipRequest{Input: "x", Alpha: 256})
	assert.True(t, errors.IsErrorCode(err, errors.ErrGenerator))

	_, err = g.Tooltip(context.Background(), generator.TooltipRequest{Input: "%%click:open_url:https://x"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrMarkup))
}

func TestRequestLogging(t *testing.T) {
	var buf bytes.Buffer
	previous, level := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = previous
		zerolog.SetGlobalLevel(level)
	})
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	g := newGenerator(t)
	_, err := g.Text(context.Background(), "&aHi")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"request_id"`)
	assert.Contains(t, out, `"operation":"text"`)
	assert.Contains(t, out, "Request started")
	assert.Contains(t, out, "Operation completed")
	assert.Contains(t, out, `"duration"`)
}

func TestRecipe(t *testing.T) {
	g := newGenerator(t)

	res, err := g.Recipe(context.Background(), "1,stone:5%%5,stone,enchanted%%9,stone:70")
	require.NoError(t, err)
	require.Len(t, res.Items, 3)
	assert.Equal(t, 5, res.Items[0].Amount)
	assert.Equal(t, 64, res.Items[2].Amount)
	require.NotNil(t, res.Image)
	assert.Equal(t, image.Rect(0, 0, 14+54, 14+54), res.Image.Bounds())
	assert.Equal(t, red, res.Image.NRGBAAt(8, 8))
	assert.NotEqual(t, red, res.Image.NRGBAAt(7+18+1, 7+18+1), "enchanted item carries the glint")

	_, err = g.Recipe(context.Background(), "a,stick")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid slot: a")
}

func TestRecipeWithoutAtlas(t *testing.T) {
	g, err := generator.New(testConfig(), generator.Sources{})
	require.NoError(t, err)
	res, err := g.Recipe(context.Background(), "1,stone")
	require.NoError(t, err)
	assert.Len(t, res.Items, 1)
	assert.Nil(t, res.Image)
}

func TestInventory(t *testing.T) {
	g := newGenerator(t)

	res, err := g.Inventory(context.Background(), generator.InventoryRequest{
		Input: "stone:[1-3]16%%leather_helmet,#FF0000,durability=30:5",
		Rows:  2,
	})
	require.NoError(t, err)
	assert.Len(t, res.Entries, 2)
	assert.Len(t, res.Placements, 4)
	require.NotNil(t, res.Image)
	assert.Equal(t, image.Rect(0, 0, 14+9*18, 14+2*18), res.Image.Bounds())

	// slot 5 holds the helmet tinted red by its overlay
	helmet := res.Image.NRGBAAt(7+4*18+1, 7+1)
	assert.Equal(t, uint8(255), helmet.R)
	assert.Zero(t, helmet.G)
}

func TestInventoryPlayerHead(t *testing.T) {
	g := newGenerator(t)
	res, err := g.Inventory(context.Background(), generator.InventoryRequest{
		Input:   "stone,skin=" + skinHash + ":1",
		Columns: 3,
		Rows:    1,
	})
	require.NoError(t, err)
	require.NotNil(t, res.Image)
}

func TestColor(t *testing.T) {
	g := newGenerator(t)

	tests := []struct {
		name    string
		overlay string
		spec    string
		applied bool
		colors  []string
	}{
		{"hex pair", "leather_armor", "#ff0000#00ff00", true, []string{"#FF0000", "#00FF00"}},
		{"named choice", "leather_armor", "RED", true, []string{"#B02E26", "#B02E26"}},
		{"unknown name uses overlay default twice", "leather_armor", "mauve", true, []string{"#A06540", "#A06540"}},
		{"skip without color", "firework_star", "", false, nil},
		{"normal overlay", "potion", "healing", true, []string{"#F82423"}},
		{"mapped palette", "armor_trim", "gold", true, []string{"#FFF95C", "#DEB12D", "#A17120"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := g.Color(tt.overlay, tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.applied, res.Applied)
			assert.Equal(t, tt.colors, res.Colors)
		})
	}

	_, err := g.Color("nope", "")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestItem(t *testing.T) {
	g := newGenerator(t)

	t.Run("atlas texture", func(t *testing.T) {
		res, err := g.Item(context.Background(), generator.ItemRequest{Material: "minecraft:stone"})
		require.NoError(t, err)
		assert.Equal(t, red, res.Image().NRGBAAt(0, 0))
	})

	t.Run("overlay color", func(t *testing.T) {
		res, err := g.Item(context.Background(), generator.ItemRequest{Material: "leather_helmet", Color: "#0000FF"})
		require.NoError(t, err)
		assert.Equal(t, color.NRGBA{B: 255, A: 255}, res.Image().NRGBAAt(0, 0))
	})

	t.Run("strip texture animates", func(t *testing.T) {
		strip := image.NewNRGBA(image.Rect(0, 0, 16, 32))
		fill(strip, strip.Bounds(), red)
		res, err := g.Item(context.Background(), generator.ItemRequest{Material: "custom", Texture: strip})
		require.NoError(t, err)
		require.Len(t, res.Frames, 2)
		assert.Equal(t, 40, res.Frames[0].Delay)
	})

	t.Run("unknown material", func(t *testing.T) {
		_, err := g.Item(context.Background(), generator.ItemRequest{Material: "dirt"})
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
	})
}

func TestHead(t *testing.T) {
	g := newGenerator(t)

	head, err := g.Head(context.Background(), generator.HeadRequest{Skin: skinHash})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 32, 32), head.Bounds())

	scaled, err := g.Head(context.Background(), generator.HeadRequest{Skin: skinHash, Scale: 2})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 64, 64), scaled.Bounds())

	_, err = g.Head(context.Background(), generator.HeadRequest{Skin: "Notch"})
	assert.True(t, errors.IsGeneratorFailure(err))
}

func TestOverlayRegistryOverride(t *testing.T) {
	reg, err := overlay.LoadDefaults(nil)
	require.NoError(t, err)
	src := testSources(t)
	src.Overlays = reg

	g, err := generator.New(testConfig(), src)
	require.NoError(t, err)
	assert.Same(t, reg, g.Overlays())
}
