package render

import (
	"image"
	"image/color"
	"unicode/utf8"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/arthur-debert/mcgen/pkg/chat"
	"github.com/arthur-debert/mcgen/pkg/errors"
)

// Tooltip limits.
const (
	DefaultTooltipAlpha = 245
	MaxTextScale        = 16
	MaxTextPadding      = 255
	MaxTooltipLines     = 256
	MaxTooltipLineRunes = 512
)

// Tooltip geometry in font pixels.
const (
	tooltipInset  = 4
	firstLineGap  = 2
	italicSlant   = 4 // rows per column of slant
	strikeOffset  = 4
	underlineDrop = 1
)

var (
	tooltipFace       = basicfont.Face7x13
	tooltipBackground = color.NRGBA{R: 18, G: 3, B: 18}
	tooltipBorder     = color.NRGBA{R: 37, G: 0, B: 94}
)

// TextOptions controls RenderText. The zero value draws a bordered tooltip
// at font resolution.
type TextOptions struct {
	// Scale multiplies every font pixel. Values below one mean one.
	Scale int
	// Alpha is the frame opacity. Zero selects DefaultTooltipAlpha.
	Alpha uint8
	// Padding is a transparent margin around the frame in font pixels.
	Padding int
	// FirstLineGap sets the first line, usually the item name, apart from
	// the lore below it.
	FirstLineGap bool
	// NoBorder leaves out the purple frame.
	NoBorder bool
	// Centered centers every line within the widest one.
	Centered bool
	// DefaultColor applies to runs without a color. Unset means gray.
	DefaultColor chat.Color
}

func (o TextOptions) normalized() TextOptions {
	o.Scale = max(o.Scale, 1)
	o.Padding = min(max(o.Padding, 0), MaxTextPadding)
	if o.Alpha == 0 {
		o.Alpha = DefaultTooltipAlpha
	}
	if !o.DefaultColor.IsSet() {
		o.DefaultColor, _ = chat.ColorByName("gray")
	}
	return o
}

// RenderText draws lines of styled runs as an item tooltip: a dark
// translucent panel with a purple frame, each glyph over its drop shadow.
// Bold runs are drawn twice one pixel apart, italic runs are sheared and
// obfuscated runs are scrambled deterministically.
func RenderText(lines [][]chat.Run, opts TextOptions) (*image.NRGBA, error) {
	if len(lines) == 0 {
		return nil, errors.Generator("No text to render")
	}
	if len(lines) > MaxTooltipLines {
		return nil, errors.Generator("Too many lines: %d", len(lines)).WithDetail("max", MaxTooltipLines)
	}
	if opts.Scale > MaxTextScale {
		return nil, errors.Generator("Invalid scale: %d", opts.Scale).WithDetail("max", MaxTextScale)
	}
	opts = opts.normalized()

	widths := make([]int, len(lines))
	widest, overhang := 0, 0
	for i, line := range lines {
		runes := 0
		for _, r := range line {
			runes += utf8.RuneCountInString(r.Text)
			widths[i] += runWidth(r)
			if r.Style.Has(chat.Italic) {
				overhang = slant(lineHeight() + 1)
			}
		}
		if runes > MaxTooltipLineRunes {
			return nil, errors.Generator("Line %d is too long", i+1).WithDetail("max", MaxTooltipLineRunes)
		}
		widest = max(widest, widths[i])
	}

	gap := 0
	if opts.FirstLineGap && len(lines) > 1 {
		gap = firstLineGap
	}
	w := 2*tooltipInset + widest + overhang + 1
	h := 2*tooltipInset + len(lines)*lineHeight() + gap
	frame := drawFrame(w, h, opts)

	top := tooltipInset
	for i, line := range lines {
		x := tooltipInset
		if opts.Centered {
			x += (widest - widths[i]) / 2
		}
		for _, r := range line {
			var advance int
			frame, advance = drawRun(frame, r, image.Pt(x, top), opts.DefaultColor)
			x += advance
		}
		top += lineHeight()
		if i == 0 {
			top += gap
		}
	}

	if opts.Padding > 0 {
		p := opts.Padding
		frame = imaging.Paste(image.NewNRGBA(image.Rect(0, 0, w+2*p, h+2*p)), frame, image.Pt(p, p))
	}
	if opts.Scale > 1 {
		b := frame.Bounds()
		frame = imaging.Resize(frame, b.Dx()*opts.Scale, b.Dy()*opts.Scale, imaging.NearestNeighbor)
	}

	log.Debug().
		Int("lines", len(lines)).
		Int("width", frame.Bounds().Dx()).
		Int("height", frame.Bounds().Dy()).
		Msg("Rendered tooltip")
	return frame, nil
}

func lineHeight() int {
	return tooltipFace.Ascent + tooltipFace.Descent
}

func slant(rows int) int {
	return (rows - 1) / italicSlant
}

// drawFrame fills the panel and draws the two-tone border. The outer ring
// leaves the corners clear.
func drawFrame(w, h int, opts TextOptions) *image.NRGBA {
	bg, border := tooltipBackground, tooltipBorder
	bg.A, border.A = opts.Alpha, opts.Alpha

	frame := image.NewNRGBA(image.Rect(0, 0, w, h))
	frame = fillRect(frame, image.Rect(1, 1, w-1, h-1), bg)
	if opts.NoBorder {
		return frame
	}
	for _, r := range []image.Rectangle{
		image.Rect(0, 1, 1, h-1),
		image.Rect(w-1, 1, w, h-1),
		image.Rect(1, 0, w-1, 1),
		image.Rect(1, h-1, w-1, h),
	} {
		frame = fillRect(frame, r, bg)
	}
	for _, r := range []image.Rectangle{
		image.Rect(1, 1, w-1, 2),
		image.Rect(1, h-2, w-1, h-1),
		image.Rect(1, 2, 2, h-2),
		image.Rect(w-2, 2, w-1, h-2),
	} {
		frame = fillRect(frame, r, border)
	}
	return frame
}

// runWidth is the advance of r in font pixels. The face is monospaced and
// bold adds one pixel per glyph.
func runWidth(r chat.Run) int {
	n := 0
	for _, c := range r.Text {
		if !zeroWidth(c) {
			n++
		}
	}
	advance := tooltipFace.Advance
	if r.Style.Has(chat.Bold) {
		advance++
	}
	return n * advance
}

// zeroWidth reports variation selectors, which only pick an emoji
// presentation and have no glyph of their own.
func zeroWidth(c rune) bool {
	return c == 0xFE0E || c == 0xFE0F
}

// drawRun draws r with its top-left corner at at and returns the new frame
// and the advance.
func drawRun(dst *image.NRGBA, r chat.Run, at image.Point, fallback chat.Color) (*image.NRGBA, int) {
	width := runWidth(r)
	if width == 0 {
		return dst, 0
	}
	ink := fallback
	if r.Color.IsSet() {
		ink = r.Color
	}
	text := r.Text
	if r.Style.Has(chat.Obfuscated) {
		text = scramble(text)
	}

	height := lineHeight()
	glyphs := image.NewNRGBA(image.Rect(0, 0, width+1, height+1))
	for _, pass := range []struct {
		ink    color.NRGBA
		offset int
	}{
		{ink.Background().RGBA(), 1},
		{ink.RGBA(), 0},
	} {
		drawGlyphs(glyphs, text, pass.ink, pass.offset, r.Style.Has(chat.Bold))
		baseline := tooltipFace.Ascent + pass.offset
		if r.Style.Has(chat.Underline) {
			glyphs = fillRect(glyphs, image.Rect(pass.offset, baseline+underlineDrop, width+pass.offset, baseline+underlineDrop+1), pass.ink)
		}
		if r.Style.Has(chat.Strikethrough) {
			glyphs = fillRect(glyphs, image.Rect(pass.offset, baseline-strikeOffset, width+pass.offset, baseline-strikeOffset+1), pass.ink)
		}
	}
	if r.Style.Has(chat.Italic) {
		glyphs = shear(glyphs)
	}
	return imaging.Overlay(dst, glyphs, at, 1), width
}

func drawGlyphs(dst *image.NRGBA, text string, ink color.NRGBA, offset int, bold bool) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(ink), Face: tooltipFace}
	advance := tooltipFace.Advance
	if bold {
		advance++
	}
	x := offset
	for _, c := range text {
		if zeroWidth(c) {
			continue
		}
		glyph := string(c)
		d.Dot = fixed.P(x, tooltipFace.Ascent+offset)
		d.DrawString(glyph)
		if bold {
			d.Dot = fixed.P(x+1, tooltipFace.Ascent+offset)
			d.DrawString(glyph)
		}
		x += advance
	}
}

// shear slants img to the right, the top row moving furthest.
func shear(img *image.NRGBA) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx()+slant(b.Dy()), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		shift := slant(b.Dy() - y)
		copy(out.Pix[y*out.Stride+shift*4:], img.Pix[y*img.Stride:y*img.Stride+b.Dx()*4])
	}
	return out
}

// scramble replaces every visible character with a printable one derived
// from its value and position, keeping the text width.
func scramble(text string) string {
	out := make([]rune, 0, len(text))
	i := 0
	for _, c := range text {
		switch {
		case zeroWidth(c):
			continue
		case c == ' ':
			out = append(out, c)
		default:
			out = append(out, rune('!'+(int(c)*31+i*17)%94))
		}
		i++
	}
	return string(out)
}
