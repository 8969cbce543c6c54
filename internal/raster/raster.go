// Package raster fills the projected texel quads of the head renderer.
// Coverage comes from the x/image vector rasterizer and is thresholded, so
// quads sharing an edge tile the plane without seams or double blending and
// the output stays byte-identical across runs.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// coverageThreshold is the mask value from which a pixel counts as inside.
const coverageThreshold = 0x80

// Point is a sub-pixel screen coordinate.
type Point struct {
	X, Y float64
}

// FillPolygon fills the polygon given by pts with c. Pixels at least half
// covered are painted, translucent colors are blended source-over.
func FillPolygon(dst *image.NRGBA, pts []Point, c color.NRGBA) {
	if len(pts) < 3 {
		return
	}
	r := polygonBounds(pts).Intersect(dst.Bounds())
	if r.Empty() {
		return
	}

	z := vector.NewRasterizer(r.Dx(), r.Dy())
	ox, oy := float64(r.Min.X), float64(r.Min.Y)
	z.MoveTo(float32(pts[0].X-ox), float32(pts[0].Y-oy))
	for _, p := range pts[1:] {
		z.LineTo(float32(p.X-ox), float32(p.Y-oy))
	}
	z.ClosePath()

	mask := image.NewAlpha(image.Rect(0, 0, r.Dx(), r.Dy()))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	covered := false
	for i, a := range mask.Pix {
		if a >= coverageThreshold {
			mask.Pix[i] = 0xff
			covered = true
		} else {
			mask.Pix[i] = 0
		}
	}
	if !covered {
		return
	}
	draw.DrawMask(dst, r, image.NewUniform(c), image.Point{}, mask, image.Point{}, draw.Over)
}

// polygonBounds returns the pixel rectangle enclosing pts. Coordinates are
// clamped before conversion so far-away points cannot overflow.
func polygonBounds(pts []Point) image.Rectangle {
	const limit = 1 << 24
	clamp := func(v float64) float64 { return math.Max(-limit, math.Min(limit, v)) }

	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return image.Rect(
		int(math.Floor(clamp(minX))), int(math.Floor(clamp(minY))),
		int(math.Ceil(clamp(maxX))), int(math.Ceil(clamp(maxY))),
	)
}
