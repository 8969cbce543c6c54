// internal/raster/raster_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test polygon fills, clipping and seam-free tiling of adjacent quads

package raster_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arthur-debert/mcgen/internal/raster"
)

var (
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	red   = color.NRGBA{R: 255, A: 255}
	blue  = color.NRGBA{B: 255, A: 255}
)

func countOpaque(img *image.NRGBA) int {
	n := 0
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			n++
		}
	}
	return n
}

func TestFillPolygon(t *testing.T) {
	tests := []struct {
		name   string
		size   int
		pts    []raster.Point
		opaque int
	}{
		{
			name:   "axis aligned square covers whole pixels",
			size:   8,
			pts:    []raster.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}},
			opaque: 16,
		},
		{
			name:   "degenerate polygon draws nothing",
			size:   4,
			pts:    []raster.Point{{X: 0, Y: 0}, {X: 3, Y: 3}},
			opaque: 0,
		},
		{
			name:   "clipped to bounds",
			size:   4,
			pts:    []raster.Point{{X: -5, Y: -5}, {X: 10, Y: -5}, {X: 10, Y: 10}, {X: -5, Y: 10}},
			opaque: 16,
		},
		{
			name:   "outside bounds draws nothing",
			size:   4,
			pts:    []raster.Point{{X: 10, Y: 10}, {X: 12, Y: 10}, {X: 12, Y: 12}},
			opaque: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := image.NewNRGBA(image.Rect(0, 0, tt.size, tt.size))
			raster.FillPolygon(img, tt.pts, white)
			assert.Equal(t, tt.opaque, countOpaque(img))
		})
	}
}

func TestFillPolygonEdges(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	raster.FillPolygon(img, []raster.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}}, white)
	assert.Equal(t, white, img.NRGBAAt(3, 3))
	assert.Equal(t, uint8(0), img.NRGBAAt(4, 4).A)
}

func TestFillPolygonAdjacentQuadsTile(t *testing.T) {
	// Two skewed quads sharing the edge (3.5,0)-(4.5,8).
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	raster.FillPolygon(img, []raster.Point{{X: 0, Y: 0}, {X: 3.5, Y: 0}, {X: 4.5, Y: 8}, {X: 0, Y: 8}}, red)
	raster.FillPolygon(img, []raster.Point{{X: 3.5, Y: 0}, {X: 8, Y: 0}, {X: 8, Y: 8}, {X: 4.5, Y: 8}}, blue)

	assert.Equal(t, 64, countOpaque(img))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			got := img.NRGBAAt(x, y)
			assert.Equal(t, uint8(255), got.A, "pixel %d,%d", x, y)
			assert.True(t, got == red || got == blue, "pixel %d,%d painted by exactly one quad: %v", x, y, got)
		}
	}
}

func TestFillPolygonTranslucent(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	raster.FillPolygon(img, []raster.Point{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}}, red)
	raster.FillPolygon(img, []raster.Point{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}}, color.NRGBA{B: 255, A: 128})

	got := img.NRGBAAt(0, 0)
	assert.Equal(t, uint8(255), got.A)
	assert.InDelta(t, 128, int(got.B), 2)
	assert.InDelta(t, 127, int(got.R), 2)
}
