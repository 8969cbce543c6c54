package render

import (
	"image"
	"image/color"
	"strconv"
	"strings"
	"unicode"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	badgeText   = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	badgeShadow = color.NRGBA{R: 63, G: 63, B: 63, A: 255}
	extraText   = color.NRGBA{R: 255, G: 170, B: 0, A: 255}
	extraShadow = color.NRGBA{R: 63, G: 42, B: 0, A: 255}
)

var badgeFace = basicfont.Face7x13

// textScale returns how many output pixels one font pixel covers on an
// icon of the given width.
func textScale(width int) int {
	return max(1, width/32)
}

// drawAmountBadge prints the stack size in the bottom-right corner.
func drawAmountBadge(dst *image.NRGBA, amount int) *image.NRGBA {
	label := renderLabel(strconv.Itoa(amount), badgeText, badgeShadow, textScale(dst.Bounds().Dx()))
	b, lb := dst.Bounds(), label.Bounds()
	return imaging.Overlay(dst, label, image.Pt(b.Max.X-lb.Dx(), b.Max.Y-lb.Dy()), 1)
}

// drawExtraBadge prints the first letter of the extra content, upper-cased,
// in the top-left corner.
func drawExtraBadge(dst *image.NRGBA, extra string) *image.NRGBA {
	r := []rune(strings.TrimSpace(extra))
	if len(r) == 0 {
		return dst
	}
	label := renderLabel(string(unicode.ToUpper(r[0])), extraText, extraShadow, textScale(dst.Bounds().Dx()))
	return imaging.Overlay(dst, label, dst.Bounds().Min, 1)
}

// renderLabel draws text with a one-pixel drop shadow at font resolution and
// scales the result up with nearest-neighbour sampling so the glyphs stay
// crisp. The label is trimmed to the glyph box, so its bottom row holds the
// shadow of the baseline.
func renderLabel(text string, fg, shadow color.NRGBA, scale int) *image.NRGBA {
	m := badgeFace.Metrics()
	ascent := m.Ascent.Ceil()
	width := font.MeasureString(badgeFace, text).Ceil() + 1
	height := ascent + 1

	canvas := image.NewNRGBA(image.Rect(0, 0, width, height))
	d := &font.Drawer{Dst: canvas, Face: badgeFace}

	d.Src = image.NewUniform(shadow)
	d.Dot = fixed.P(1, ascent+1)
	d.DrawString(text)

	d.Src = image.NewUniform(fg)
	d.Dot = fixed.P(0, ascent)
	d.DrawString(text)

	if scale == 1 {
		return canvas
	}
	return imaging.Resize(canvas, width*scale, height*scale, imaging.NearestNeighbor)
}
