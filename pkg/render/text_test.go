// pkg/render/text_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test tooltip geometry, frame colors, text styles and limits

package render_test

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/mcgen/pkg/chat"
	"github.com/arthur-debert/mcgen/pkg/errors"
	"github.com/arthur-debert/mcgen/pkg/render"
)

var (
	panel      = color.NRGBA{R: 18, G: 3, B: 18, A: render.DefaultTooltipAlpha}
	frameInk   = color.NRGBA{R: 37, G: 0, B: 94, A: render.DefaultTooltipAlpha}
	chatRed    = color.NRGBA{R: 0xFF, G: 0x55, B: 0x55, A: 255}
	chatShadow = color.NRGBA{R: 0x3F, G: 0x15, B: 0x15, A: 255}
	chatGray   = color.NRGBA{R: 0xAA, G: 0xAA, B: 0xAA, A: 255}
)

func named(t *testing.T, name string) chat.Color {
	t.Helper()
	c, ok := chat.ColorByName(name)
	require.True(t, ok, name)
	return c
}

func line(runs ...chat.Run) []chat.Run { return runs }

func countColor(img *image.NRGBA, c color.NRGBA, r image.Rectangle) int {
	n := 0
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if img.NRGBAAt(x, y) == c {
				n++
			}
		}
	}
	return n
}

func TestRenderTextGeometry(t *testing.T) {
	hi := chat.Run{Text: "Hi"}

	tests := []struct {
		name  string
		lines [][]chat.Run
		opts  render.TextOptions
		want  image.Rectangle
	}{
		{"single line", [][]chat.Run{line(hi)}, render.TextOptions{}, image.Rect(0, 0, 23, 21)},
		{"bold adds a pixel per glyph", [][]chat.Run{line(chat.Run{Text: "Hi", Style: chat.Bold})}, render.TextOptions{}, image.Rect(0, 0, 25, 21)},
		{"italic overhang", [][]chat.Run{line(chat.Run{Text: "Hi", Style: chat.Italic})}, render.TextOptions{}, image.Rect(0, 0, 26, 21)},
		{"variation selectors take no space", [][]chat.Run{line(chat.Run{Text: "H\uFE0Fi"})}, render.TextOptions{}, image.Rect(0, 0, 23, 21)},
		{"two lines", [][]chat.Run{line(hi), line(hi)}, render.TextOptions{}, image.Rect(0, 0, 23, 34)},
		{"first line gap", [][]chat.Run{line(hi), line(hi)}, render.TextOptions{FirstLineGap: true}, image.Rect(0, 0, 23, 36)},
		{"gap needs a second line", [][]chat.Run{line(hi)}, render.TextOptions{FirstLineGap: true}, image.Rect(0, 0, 23, 21)},
		{"padding", [][]chat.Run{line(hi)}, render.TextOptions{Padding: 3}, image.Rect(0, 0, 29, 27)},
		{"scale", [][]chat.Run{line(hi)}, render.TextOptions{Scale: 2}, image.Rect(0, 0, 46, 42)},
		{"empty line", [][]chat.Run{nil}, render.TextOptions{}, image.Rect(0, 0, 9, 21)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := render.RenderText(tt.lines, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, img.Bounds())
		})
	}
}

func TestRenderTextFrame(t *testing.T) {
	lines := [][]chat.Run{line(chat.Run{Text: "Hi"})}

	img, err := render.RenderText(lines, render.TextOptions{})
	require.NoError(t, err)
	assert.Zero(t, img.NRGBAAt(0, 0).A, "corners stay clear")
	assert.Equal(t, panel, img.NRGBAAt(0, 5), "outer ring")
	assert.Equal(t, frameInk, img.NRGBAAt(1, 5), "purple ring")
	assert.Equal(t, panel, img.NRGBAAt(2, 2), "background")

	img, err = render.RenderText(lines, render.TextOptions{NoBorder: true, Alpha: 200})
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 18, G: 3, B: 18, A: 200}, img.NRGBAAt(1, 5))
	assert.Zero(t, img.NRGBAAt(0, 5).A)

	img, err = render.RenderText(lines, render.TextOptions{Padding: 2})
	require.NoError(t, err)
	assert.Zero(t, img.NRGBAAt(1, 7).A, "padding is transparent")
	assert.Equal(t, frameInk, img.NRGBAAt(3, 7))
}

func TestRenderTextColors(t *testing.T) {
	img, err := render.RenderText([][]chat.Run{line(chat.Run{Text: "Hi", Color: named(t, "red")})}, render.TextOptions{})
	require.NoError(t, err)
	assert.Positive(t, countColor(img, chatRed, img.Bounds()), "glyphs in the run color")
	assert.Positive(t, countColor(img, chatShadow, img.Bounds()), "drop shadow a quarter as bright")

	img, err = render.RenderText([][]chat.Run{line(chat.Run{Text: "Hi"})}, render.TextOptions{})
	require.NoError(t, err)
	assert.Positive(t, countColor(img, chatGray, img.Bounds()), "uncolored text is gray")

	img, err = render.RenderText([][]chat.Run{line(chat.Run{Text: "Hi"})}, render.TextOptions{DefaultColor: named(t, "red")})
	require.NoError(t, err)
	assert.Zero(t, countColor(img, chatGray, img.Bounds()))
	assert.Positive(t, countColor(img, chatRed, img.Bounds()))
}

func TestRenderTextDecorations(t *testing.T) {
	red := named(t, "red")

	tests := []struct {
		name  string
		style chat.Style
		row   int
	}{
		{"underline below the baseline", chat.Underline, 16},
		{"strikethrough through the glyphs", chat.Strikethrough, 11},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := render.RenderText([][]chat.Run{line(chat.Run{Text: "ab", Color: red, Style: tt.style})}, render.TextOptions{})
			require.NoError(t, err)
			assert.Equal(t, 14, countColor(img, chatRed, image.Rect(4, tt.row, 18, tt.row+1)))
		})
	}
}

func TestRenderTextCentered(t *testing.T) {
	red := named(t, "red")
	lines := [][]chat.Run{
		line(chat.Run{Text: "WWWW", Color: red}),
		line(chat.Run{Text: "W", Color: red}),
	}
	// second line glyph rows, left of where a centered W starts
	left := image.Rect(0, 17, 14, 30)

	img, err := render.RenderText(lines, render.TextOptions{})
	require.NoError(t, err)
	assert.Positive(t, countColor(img, chatRed, left))

	img, err = render.RenderText(lines, render.TextOptions{Centered: true})
	require.NoError(t, err)
	assert.Zero(t, countColor(img, chatRed, left))
	assert.Positive(t, countColor(img, chatRed, image.Rect(14, 17, 22, 30)))
}

func TestRenderTextObfuscated(t *testing.T) {
	plain := [][]chat.Run{line(chat.Run{Text: "secret"})}
	hidden := [][]chat.Run{line(chat.Run{Text: "secret", Style: chat.Obfuscated})}

	a, err := render.RenderText(hidden, render.TextOptions{})
	require.NoError(t, err)
	b, err := render.RenderText(hidden, render.TextOptions{})
	require.NoError(t, err)
	p, err := render.RenderText(plain, render.TextOptions{})
	require.NoError(t, err)

	assert.Equal(t, a.Pix, b.Pix, "scrambling is deterministic")
	assert.Equal(t, p.Bounds(), a.Bounds())
	assert.NotEqual(t, p.Pix, a.Pix)
}

func TestRenderTextErrors(t *testing.T) {
	tooMany := make([][]chat.Run, render.MaxTooltipLines+1)

	tests := []struct {
		name    string
		lines   [][]chat.Run
		opts    render.TextOptions
		message string
	}{
		{"no lines", nil, render.TextOptions{}, "No text to render"},
		{"too many lines", tooMany, render.TextOptions{}, "Too many lines"},
		{"line too long", [][]chat.Run{line(chat.Run{Text: strings.Repeat("x", render.MaxTooltipLineRunes+1)})}, render.TextOptions{}, "Line 1 is too long"},
		{"scale too large", [][]chat.Run{line(chat.Run{Text: "x"})}, render.TextOptions{Scale: 1 << 30}, "Invalid scale: 1073741824"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := render.RenderText(tt.lines, tt.opts)
			require.Error(t, err)
			assert.Nil(t, img)
			assert.True(t, errors.IsErrorCode(err, errors.ErrGenerator))
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}
