package render

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/arthur-debert/mcgen/pkg/errors"
	"github.com/arthur-debert/mcgen/pkg/recipe"
)

var (
	panelColor     = color.NRGBA{R: 198, G: 198, B: 198, A: 255}
	slotColor      = color.NRGBA{R: 139, G: 139, B: 139, A: 255}
	slotShadow     = color.NRGBA{R: 55, G: 55, B: 55, A: 255}
	slotHighlight  = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	titleColor     = color.NRGBA{R: 63, G: 63, B: 63, A: 255}
	transparentInk = color.NRGBA{}
)

// ItemSource looks up item textures by material name. *Spritesheet
// implements it.
type ItemSource interface {
	Image(name string) (*image.NRGBA, error)
}

// Decorator may recolor or otherwise adjust the texture of a placement
// before it is drawn. It must not modify the texture it receives.
type Decorator func(p recipe.Placement, texture *image.NRGBA) (*image.NRGBA, error)

// InventoryOptions describes the grid. Rows may be zero, in which case just
// enough rows for the highest slot are drawn.
type InventoryOptions struct {
	Columns  int
	Rows     int
	Scale    int
	Title    string
	Decorate Decorator
}

// Grid geometry in unscaled pixels.
const (
	slotPixels   = 18
	itemPixels   = 16
	borderPixels = 7
	titlePixels  = 13
)

// RenderInventory draws the placements into a chest-style grid. Slots are
// numbered left to right, top to bottom, starting at 1.
func RenderInventory(placements []recipe.Placement, opts InventoryOptions, items ItemSource) (*image.NRGBA, error) {
	if opts.Columns < 1 {
		return nil, errors.New(errors.ErrInvalidInput, "inventory needs at least one column")
	}
	s := max(opts.Scale, 1)
	rows := opts.Rows
	if rows < 1 {
		highest := 1
		for _, p := range placements {
			highest = max(highest, p.Slot)
		}
		rows = (highest + opts.Columns - 1) / opts.Columns
	}

	slot, border := slotPixels*s, borderPixels*s
	top := border
	if opts.Title != "" {
		top += titlePixels * s
	}
	out := imaging.New(2*border+opts.Columns*slot, top+border+rows*slot, panelColor)

	if opts.Title != "" {
		title := renderLabel(opts.Title, titleColor, transparentInk, s)
		out = imaging.Overlay(out, title, image.Pt(border, border/2), 1)
	}

	origin := func(n int) image.Point {
		return image.Pt(border+(n%opts.Columns)*slot, top+(n/opts.Columns)*slot)
	}
	tile := slotTile(s)
	for n := 0; n < rows*opts.Columns; n++ {
		out = imaging.Paste(out, tile, origin(n))
	}

	for _, p := range placements {
		n := p.Slot - 1
		if n < 0 || n >= rows*opts.Columns {
			log.Warn().Int("slot", p.Slot).Str("material", p.Material).Msg("Slot outside inventory, skipped")
			continue
		}
		texture, err := items.Image(p.Material)
		if err != nil {
			return nil, err
		}
		texture = imaging.Resize(texture, itemPixels*s, itemPixels*s, imaging.NearestNeighbor)
		if opts.Decorate != nil {
			if texture, err = opts.Decorate(p, texture); err != nil {
				return nil, err
			}
		}
		cell := renderCell(texture, p.Amount, nil, "")
		out = imaging.Overlay(out, cell, origin(n).Add(image.Pt(s, s)), 1)
	}

	log.Debug().
		Int("columns", opts.Columns).
		Int("rows", rows).
		Int("items", len(placements)).
		Msg("Rendered inventory")
	return out, nil
}

// slotTile draws the sunken 18x18 slot frame at scale s.
func slotTile(s int) *image.NRGBA {
	size := slotPixels * s
	tile := imaging.New(size, size, slotColor)
	tile = fillRect(tile, image.Rect(0, 0, size-s, s), slotShadow)
	tile = fillRect(tile, image.Rect(0, 0, s, size-s), slotShadow)
	tile = fillRect(tile, image.Rect(s, size-s, size, size), slotHighlight)
	return fillRect(tile, image.Rect(size-s, s, size, size), slotHighlight)
}
