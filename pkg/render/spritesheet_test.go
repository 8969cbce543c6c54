// pkg/render/spritesheet_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test atlas loading, sprite lookup and inventory grid composition

package render_test

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/mcgen/pkg/errors"
	"github.com/arthur-debert/mcgen/pkg/recipe"
	"github.com/arthur-debert/mcgen/pkg/render"
)

var green = color.NRGBA{G: 255, A: 255}

// testAtlas holds a red "stone" at (0,0) and a green "grass_block" at (16,0).
func testAtlas(t *testing.T) *render.Spritesheet {
	t.Helper()
	atlas := image.NewNRGBA(image.Rect(0, 0, 32, 16))
	fill(atlas, image.Rect(0, 0, 16, 16), red)
	fill(atlas, image.Rect(16, 0, 32, 16), green)

	var png bytes.Buffer
	require.NoError(t, render.EncodePNG(&png, atlas))
	index := `[{"name":"stone","x":0,"y":0,"size":16},{"name":"Grass_Block","x":16,"y":0,"size":16}]`

	sheet, err := render.LoadSpritesheet(&png, strings.NewReader(index))
	require.NoError(t, err)
	return sheet
}

func TestSpritesheet(t *testing.T) {
	sheet := testAtlas(t)

	t.Run("lookup crops the sprite", func(t *testing.T) {
		img, err := sheet.Image("grass_block")
		require.NoError(t, err)
		assert.Equal(t, image.Rect(0, 0, 16, 16), img.Bounds())
		assert.Equal(t, green, img.NRGBAAt(0, 0))
		assert.Equal(t, green, img.NRGBAAt(15, 15))
	})

	t.Run("lookups return copies", func(t *testing.T) {
		a, err := sheet.Image("stone")
		require.NoError(t, err)
		a.SetNRGBA(0, 0, green)
		b, err := sheet.Image("stone")
		require.NoError(t, err)
		assert.Equal(t, red, b.NRGBAAt(0, 0))
	})

	t.Run("names and membership", func(t *testing.T) {
		assert.Equal(t, []string{"grass_block", "stone"}, sheet.Names())
		assert.True(t, sheet.Has("STONE"))
		assert.False(t, sheet.Has("dirt"))
	})

	t.Run("unknown sprite", func(t *testing.T) {
		_, err := sheet.Image("dirt")
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
	})
}

func TestNewSpritesheetRejectsOutOfBounds(t *testing.T) {
	atlas := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	_, err := render.NewSpritesheet(atlas, []render.SpriteEntry{{Name: "big", X: 8, Y: 0, Size: 16}})
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))

	_, err = render.NewSpritesheet(atlas, []render.SpriteEntry{{Name: "empty", Size: 0}})
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestLoadSpritesheetErrors(t *testing.T) {
	_, err := render.LoadSpritesheet(strings.NewReader("not a png"), strings.NewReader("[]"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrImageDecode))

	var png bytes.Buffer
	require.NoError(t, render.EncodePNG(&png, image.NewNRGBA(image.Rect(0, 0, 1, 1))))
	_, err = render.LoadSpritesheet(&png, strings.NewReader("{"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestRenderInventory(t *testing.T) {
	sheet := testAtlas(t)

	t.Run("grid size", func(t *testing.T) {
		img, err := render.RenderInventory(nil, render.InventoryOptions{Columns: 9, Rows: 3}, sheet)
		require.NoError(t, err)
		assert.Equal(t, image.Rect(0, 0, 176, 68), img.Bounds())
	})

	t.Run("title adds a header", func(t *testing.T) {
		img, err := render.RenderInventory(nil, render.InventoryOptions{Columns: 9, Rows: 3, Title: "Chest"}, sheet)
		require.NoError(t, err)
		assert.Equal(t, image.Rect(0, 0, 176, 81), img.Bounds())
	})

	t.Run("rows follow the highest slot", func(t *testing.T) {
		placements := []recipe.Placement{{Slot: 10, Amount: 1, Material: "stone"}}
		img, err := render.RenderInventory(placements, render.InventoryOptions{Columns: 9}, sheet)
		require.NoError(t, err)
		assert.Equal(t, 2*7+2*18, img.Bounds().Dy())
	})

	t.Run("items land inside their slot", func(t *testing.T) {
		placements := []recipe.Placement{
			{Slot: 1, Amount: 1, Material: "stone"},
			{Slot: 5, Amount: 1, Material: "grass_block"},
		}
		img, err := render.RenderInventory(placements, render.InventoryOptions{Columns: 3, Rows: 3}, sheet)
		require.NoError(t, err)
		// slot 1 item starts at border + 1, slot 5 is the centre of the grid
		assert.Equal(t, red, img.NRGBAAt(8, 8))
		assert.Equal(t, green, img.NRGBAAt(7+18+1, 7+18+1))
	})

	t.Run("scale multiplies geometry", func(t *testing.T) {
		img, err := render.RenderInventory(nil, render.InventoryOptions{Columns: 3, Rows: 3, Scale: 2}, sheet)
		require.NoError(t, err)
		assert.Equal(t, image.Rect(0, 0, 2*(14+54), 2*(14+54)), img.Bounds())
	})

	t.Run("decorator sees each placement", func(t *testing.T) {
		var seen []string
		decorate := func(p recipe.Placement, texture *image.NRGBA) (*image.NRGBA, error) {
			seen = append(seen, p.Material)
			return texture, nil
		}
		placements := []recipe.Placement{{Slot: 1, Amount: 1, Material: "stone"}, {Slot: 2, Amount: 1, Material: "stone"}}
		_, err := render.RenderInventory(placements, render.InventoryOptions{Columns: 3, Decorate: decorate}, sheet)
		require.NoError(t, err)
		assert.Equal(t, []string{"stone", "stone"}, seen)
	})

	t.Run("unknown material", func(t *testing.T) {
		placements := []recipe.Placement{{Slot: 1, Amount: 1, Material: "dirt"}}
		_, err := render.RenderInventory(placements, render.InventoryOptions{Columns: 3}, sheet)
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
	})

	t.Run("no columns", func(t *testing.T) {
		_, err := render.RenderInventory(nil, render.InventoryOptions{}, sheet)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})
}
