package render

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

var barBackground = color.NRGBA{A: 255}

// drawDurabilityBar draws the two-row damage bar near the bottom of the
// cell: a black track with a colored fill on top and a black row below it.
// Percentages at or above 100 mean an undamaged item and draw nothing.
func drawDurabilityBar(dst *image.NRGBA, percent int) *image.NRGBA {
	if percent >= 100 {
		return dst
	}
	percent = max(percent, 0)

	b := dst.Bounds()
	w, h := b.Dx(), b.Dy()
	s := scaleFactor(w)
	barWidth := w - 4*s + s
	x := b.Min.X + 2*s
	colorY := b.Min.Y + h - 3*s
	blackY := b.Min.Y + h - 2*s

	dst = fillRect(dst, image.Rect(x, colorY, x+barWidth, colorY+s), barBackground)
	dst = fillRect(dst, image.Rect(x, blackY, x+barWidth, blackY+s), barBackground)

	if percent > 0 {
		fill := barWidth * percent / 100
		dst = fillRect(dst, image.Rect(x, colorY, x+fill, colorY+s), DurabilityColor(percent))
	}
	return dst
}

// fillRect replaces the pixels of r with c.
func fillRect(dst *image.NRGBA, r image.Rectangle, c color.NRGBA) *image.NRGBA {
	if r.Empty() {
		return dst
	}
	return imaging.Paste(dst, imaging.New(r.Dx(), r.Dy(), c), r.Min)
}

// DurabilityColor fades from green at full durability through yellow at 50%
// to red when the item is about to break.
func DurabilityColor(percent int) color.NRGBA {
	percent = min(max(percent, 0), 100)
	if percent > 50 {
		return color.NRGBA{R: uint8(255 * 2 * (100 - percent) / 100), G: 255, A: 255}
	}
	return color.NRGBA{R: 255, G: uint8(255 * 2 * percent / 100), A: 255}
}

// WithDurability returns a copy of img carrying a durability bar.
func WithDurability(img image.Image, percent int) *image.NRGBA {
	return drawDurabilityBar(imaging.Clone(img), percent)
}
