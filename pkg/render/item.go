package render

import (
	"image"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/arthur-debert/mcgen/pkg/errors"
	"github.com/arthur-debert/mcgen/pkg/logging"
)

var log = logging.GetLogger("render")

// DefaultFrameDelay is the per-frame delay in milliseconds used when an
// animated icon does not set one.
const DefaultFrameDelay = 33

// ItemIcon describes one item as it should appear in an inventory slot.
type ItemIcon struct {
	// Slots and Amounts are parallel. Each pair becomes one cell in the
	// rendered strip, drawn in the given order.
	Slots   []int
	Amounts []int

	Name         string
	ExtraContent string

	Base image.Image

	// Durability is a percentage. Nil or values >= 100 draw no bar.
	Durability *int

	// Frames replaces Base when set, producing an animated result.
	Frames     []image.Image
	FrameDelay int
}

// Frame is one rendered image and how long it is shown, in milliseconds.
// Delay is zero for static results.
type Frame struct {
	Image *image.NRGBA
	Delay int
}

// Result holds the frames of a rendered icon. Static icons have exactly one.
type Result struct {
	Frames []Frame
}

// Animated reports whether the result has more than one frame to play.
func (r Result) Animated() bool {
	return len(r.Frames) > 1
}

// Image returns the first frame.
func (r Result) Image() *image.NRGBA {
	if len(r.Frames) == 0 {
		return nil
	}
	return r.Frames[0].Image
}

// NormalizedName returns the item name as stored in lookups.
func (i ItemIcon) NormalizedName() string {
	return strings.ToLower(strings.TrimSpace(i.Name))
}

// Validate checks the structural invariants of the icon.
func (i ItemIcon) Validate() error {
	if len(i.Slots) != len(i.Amounts) {
		return errors.New(errors.ErrInvalidInput, "slots and amounts must have the same length").
			WithDetail("slots", len(i.Slots)).
			WithDetail("amounts", len(i.Amounts))
	}
	if i.Base == nil && len(i.Frames) == 0 {
		return errors.Generator("Item %s has no texture", i.NormalizedName())
	}
	for n, f := range i.Frames {
		if f == nil {
			return errors.Generator("Frame %d of item %s is empty", n, i.NormalizedName())
		}
	}
	return nil
}

// RenderItemIcon draws the icon once per frame. Static icons yield a single
// frame, animated icons yield len(Frames) frames in input order, all sharing
// the same delay.
func RenderItemIcon(icon ItemIcon) (Result, error) {
	if err := icon.Validate(); err != nil {
		return Result{}, err
	}

	if len(icon.Frames) == 0 {
		return Result{Frames: []Frame{{Image: composeIcon(icon, icon.Base)}}}, nil
	}

	delay := icon.FrameDelay
	if delay <= 0 {
		delay = DefaultFrameDelay
	}
	frames := make([]Frame, 0, len(icon.Frames))
	for _, f := range icon.Frames {
		frames = append(frames, Frame{Image: composeIcon(icon, f), Delay: delay})
	}

	log.Debug().
		Str("item", icon.NormalizedName()).
		Int("frames", len(frames)).
		Int("delay", delay).
		Msg("Rendered animated item")
	return Result{Frames: frames}, nil
}

// composeIcon lays out one cell per (slot, amount) pair left to right. An
// icon with no pairs still gets a single cell without an amount badge.
func composeIcon(icon ItemIcon, texture image.Image) *image.NRGBA {
	cellSize := texture.Bounds().Size()
	cells := len(icon.Amounts)
	if cells == 0 {
		cells = 1
	}

	out := image.NewNRGBA(image.Rect(0, 0, cellSize.X*cells, cellSize.Y))
	for n := 0; n < cells; n++ {
		amount := 1
		if n < len(icon.Amounts) {
			amount = icon.Amounts[n]
		}
		cell := renderCell(texture, amount, icon.Durability, icon.ExtraContent)
		out = imaging.Paste(out, cell, image.Pt(n*cellSize.X, 0))
	}
	return out
}

// renderCell draws a single slot: texture, durability bar, extra content
// badge and amount badge, in that order.
func renderCell(texture image.Image, amount int, durability *int, extra string) *image.NRGBA {
	cell := imaging.Clone(texture)
	if durability != nil {
		cell = drawDurabilityBar(cell, *durability)
	}
	if extra != "" {
		cell = drawExtraBadge(cell, extra)
	}
	if amount > 1 {
		cell = drawAmountBadge(cell, amount)
	}
	return cell
}

// scaleFactor is the size of one source pixel of a 16x16 item texture.
func scaleFactor(width int) int {
	return max(1, width/16)
}
