// pkg/render/item_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test item icon composition, badges, durability bars and animation frames

package render_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/mcgen/pkg/errors"
	"github.com/arthur-debert/mcgen/pkg/render"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func intPtr(n int) *int { return &n }

var (
	purple = color.NRGBA{R: 120, G: 40, B: 160, A: 255}
	black  = color.NRGBA{A: 255}
)

func TestRenderItemIconStatic(t *testing.T) {
	base := solid(16, 16, purple)

	t.Run("single cell with amount one is the texture", func(t *testing.T) {
		res, err := render.RenderItemIcon(render.ItemIcon{
			Slots: []int{1}, Amounts: []int{1}, Name: "Stick", Base: base,
		})
		require.NoError(t, err)
		require.Len(t, res.Frames, 1)
		assert.False(t, res.Animated())
		assert.Equal(t, base.Pix, res.Image().Pix)
		assert.Equal(t, 0, res.Frames[0].Delay)
	})

	t.Run("one cell per slot amount pair", func(t *testing.T) {
		res, err := render.RenderItemIcon(render.ItemIcon{
			Slots: []int{1, 2, 3}, Amounts: []int{1, 1, 1}, Base: base,
		})
		require.NoError(t, err)
		assert.Equal(t, image.Rect(0, 0, 48, 16), res.Image().Bounds())
	})

	t.Run("no pairs still renders one cell", func(t *testing.T) {
		res, err := render.RenderItemIcon(render.ItemIcon{Base: base})
		require.NoError(t, err)
		assert.Equal(t, image.Rect(0, 0, 16, 16), res.Image().Bounds())
	})

	t.Run("amount badge marks bottom right only", func(t *testing.T) {
		res, err := render.RenderItemIcon(render.ItemIcon{Slots: []int{1}, Amounts: []int{5}, Base: base})
		require.NoError(t, err)
		img := res.Image()
		assert.Equal(t, purple, img.NRGBAAt(0, 0))

		changed := 0
		for y := 8; y < 16; y++ {
			for x := 8; x < 16; x++ {
				if img.NRGBAAt(x, y) != purple {
					changed++
				}
			}
		}
		assert.Greater(t, changed, 0)
	})

	t.Run("extra content badge marks top left", func(t *testing.T) {
		res, err := render.RenderItemIcon(render.ItemIcon{Base: solid(32, 32, purple), ExtraContent: "shiny"})
		require.NoError(t, err)
		img := res.Image()

		changed := 0
		for y := 0; y < 12; y++ {
			for x := 0; x < 8; x++ {
				if img.NRGBAAt(x, y) != purple {
					changed++
				}
			}
		}
		assert.Greater(t, changed, 0)
		assert.Equal(t, purple, img.NRGBAAt(31, 31))
	})

	t.Run("input texture is not modified", func(t *testing.T) {
		src := solid(16, 16, purple)
		_, err := render.RenderItemIcon(render.ItemIcon{Slots: []int{1}, Amounts: []int{64}, Base: src, Durability: intPtr(10)})
		require.NoError(t, err)
		assert.Equal(t, solid(16, 16, purple).Pix, src.Pix)
	})

	t.Run("rendering is deterministic", func(t *testing.T) {
		icon := render.ItemIcon{
			Slots: []int{1, 2}, Amounts: []int{12, 3}, Base: base,
			Durability: intPtr(37), ExtraContent: "x",
		}
		a, err := render.RenderItemIcon(icon)
		require.NoError(t, err)
		b, err := render.RenderItemIcon(icon)
		require.NoError(t, err)
		assert.Equal(t, a.Image().Pix, b.Image().Pix)
	})
}

func TestRenderItemIconDurability(t *testing.T) {
	base := solid(16, 16, purple)

	tests := []struct {
		name       string
		durability *int
		check      func(t *testing.T, img *image.NRGBA)
	}{
		{
			name:       "nil draws nothing",
			durability: nil,
			check: func(t *testing.T, img *image.NRGBA) {
				assert.Equal(t, base.Pix, img.Pix)
			},
		},
		{
			name:       "full durability draws nothing",
			durability: intPtr(100),
			check: func(t *testing.T, img *image.NRGBA) {
				assert.Equal(t, base.Pix, img.Pix)
			},
		},
		{
			name:       "half durability fills six pixels yellow",
			durability: intPtr(50),
			check: func(t *testing.T, img *image.NRGBA) {
				yellow := color.NRGBA{R: 255, G: 255, A: 255}
				for x := 2; x < 8; x++ {
					assert.Equal(t, yellow, img.NRGBAAt(x, 13), "x=%d", x)
				}
				assert.Equal(t, black, img.NRGBAAt(8, 13))
				assert.Equal(t, black, img.NRGBAAt(14, 13))
				assert.Equal(t, black, img.NRGBAAt(2, 14))
				assert.Equal(t, purple, img.NRGBAAt(15, 13))
				assert.Equal(t, purple, img.NRGBAAt(2, 12))
			},
		},
		{
			name:       "zero durability leaves a black track",
			durability: intPtr(0),
			check: func(t *testing.T, img *image.NRGBA) {
				assert.Equal(t, black, img.NRGBAAt(2, 13))
				assert.Equal(t, black, img.NRGBAAt(14, 14))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := render.RenderItemIcon(render.ItemIcon{Base: base, Durability: tt.durability})
			require.NoError(t, err)
			tt.check(t, res.Image())
		})
	}
}

func TestDurabilityColor(t *testing.T) {
	tests := []struct {
		percent int
		want    color.NRGBA
	}{
		{100, color.NRGBA{R: 0, G: 255, A: 255}},
		{75, color.NRGBA{R: 127, G: 255, A: 255}},
		{50, color.NRGBA{R: 255, G: 255, A: 255}},
		{25, color.NRGBA{R: 255, G: 127, A: 255}},
		{0, color.NRGBA{R: 255, G: 0, A: 255}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, render.DurabilityColor(tt.percent), "percent=%d", tt.percent)
	}
}

func TestRenderItemIconAnimated(t *testing.T) {
	frames := []image.Image{
		solid(16, 16, color.NRGBA{R: 255, A: 255}),
		solid(16, 16, color.NRGBA{G: 255, A: 255}),
		solid(16, 16, color.NRGBA{B: 255, A: 255}),
	}

	t.Run("frames keep order and delay", func(t *testing.T) {
		res, err := render.RenderItemIcon(render.ItemIcon{Frames: frames, FrameDelay: 50})
		require.NoError(t, err)
		require.Len(t, res.Frames, 3)
		assert.True(t, res.Animated())
		for i, f := range res.Frames {
			assert.Equal(t, 50, f.Delay)
			assert.Equal(t, frames[i].(*image.NRGBA).Pix, f.Image.Pix)
		}
	})

	t.Run("default delay", func(t *testing.T) {
		res, err := render.RenderItemIcon(render.ItemIcon{Frames: frames})
		require.NoError(t, err)
		for _, f := range res.Frames {
			assert.Equal(t, render.DefaultFrameDelay, f.Delay)
		}
	})
}

func TestRenderItemIconValidation(t *testing.T) {
	tests := []struct {
		name string
		icon render.ItemIcon
		code errors.ErrorCode
	}{
		{
			name: "mismatched slots and amounts",
			icon: render.ItemIcon{Slots: []int{1, 2}, Amounts: []int{1}, Base: solid(16, 16, purple)},
			code: errors.ErrInvalidInput,
		},
		{
			name: "no texture",
			icon: render.ItemIcon{Name: "Stone"},
			code: errors.ErrGenerator,
		},
		{
			name: "nil frame",
			icon: render.ItemIcon{Frames: []image.Image{nil}},
			code: errors.ErrGenerator,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := render.RenderItemIcon(tt.icon)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code))
		})
	}
}

func TestNormalizedName(t *testing.T) {
	assert.Equal(t, "diamond_sword", render.ItemIcon{Name: " Diamond_Sword "}.NormalizedName())
}
