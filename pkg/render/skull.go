package render

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/disintegration/imaging"

	"github.com/arthur-debert/mcgen/internal/raster"
	"github.com/arthur-debert/mcgen/pkg/errors"
)

// Default head rendering parameters. The head is drawn on a large canvas and
// halved afterwards to smooth the texel edges.
const (
	DefaultSkullSize = 1250
	SkullDownscale   = 2
	HatLayerOffset   = 1.06

	// MaxSkullSize caps the canvas and render scale.
	MaxSkullSize = 4096
	// MaxSkullScale caps the final resize in either direction. An upscaled
	// head is also held to MaxSkullSize pixels per side.
	MaxSkullScale = 16
)

// Default viewing angles in radians.
var (
	DefaultXRotation = math.Pi / 6
	DefaultYRotation = -math.Pi / 4
	DefaultZRotation = 0.0
)

// SkullOptions controls head projection. Zero Width, Height or RenderScale
// fall back to the defaults; rotations are used as given.
type SkullOptions struct {
	XRotation float64
	YRotation float64
	ZRotation float64

	Width       int
	Height      int
	RenderScale int

	// Scale resizes the final image: n > 0 enlarges n times, n < 0 shrinks
	// by |n|, zero keeps the native size.
	Scale int
}

// DefaultSkullOptions returns the classic three-quarter view.
func DefaultSkullOptions() SkullOptions {
	return SkullOptions{
		XRotation: DefaultXRotation,
		YRotation: DefaultYRotation,
		ZRotation: DefaultZRotation,
	}
}

func (o SkullOptions) normalized() SkullOptions {
	if o.Width <= 0 {
		o.Width = DefaultSkullSize
	}
	if o.Height <= 0 {
		o.Height = DefaultSkullSize
	}
	if o.RenderScale <= 0 {
		o.RenderScale = int(math.Round(float64(min(o.Width, o.Height)) / 4))
	}
	return o
}

type vec4 [4]float64

type face struct {
	vertices [4]int
	u, v     int
}

// skullVertices are the corners of the head cube followed by the slightly
// larger hat cube. Bit 0 of the index selects x, bit 1 y and bit 2 z; a set
// bit means +1. Screen y grows downwards and the camera looks along +z.
var skullVertices = func() [16]vec4 {
	var vs [16]vec4
	for i := 0; i < 8; i++ {
		c := vec4{-1, -1, -1, 1}
		for axis := 0; axis < 3; axis++ {
			if i&(1<<axis) != 0 {
				c[axis] = 1
			}
		}
		vs[i] = c
		vs[i+8] = vec4{c[0] * HatLayerOffset, c[1] * HatLayerOffset, c[2] * HatLayerOffset, 1}
	}
	return vs
}()

// skullFaces lists head faces then hat faces. Declaration order breaks depth
// ties, which keeps the output stable.
var skullFaces = func() [12]face {
	head := [6]face{
		{vertices: [4]int{0, 1, 3, 2}, u: 8, v: 8},  // front
		{vertices: [4]int{5, 4, 6, 7}, u: 24, v: 8}, // back
		{vertices: [4]int{4, 0, 2, 6}, u: 0, v: 8},  // right
		{vertices: [4]int{1, 5, 7, 3}, u: 16, v: 8}, // left
		{vertices: [4]int{4, 5, 1, 0}, u: 8, v: 0},  // top
		{vertices: [4]int{2, 3, 7, 6}, u: 16, v: 0}, // bottom
	}
	var fs [12]face
	for i, f := range head {
		fs[i] = f
		hat := f
		for k := range hat.vertices {
			hat.vertices[k] += 8
		}
		hat.u += 32
		fs[i+6] = hat
	}
	return fs
}()

// RenderSkull projects the head and hat layers of a 64x64 (or legacy 64x32)
// skin into an isometric icon.
func RenderSkull(skin image.Image, opts SkullOptions) (*image.NRGBA, error) {
	if skin == nil {
		return nil, errors.Generator("No skin texture provided")
	}
	size := skin.Bounds().Size()
	if size.X < 64 || size.Y < 32 {
		return nil, errors.Generator("Skin texture must be at least 64x32, got %dx%d", size.X, size.Y)
	}

	if opts.Scale > MaxSkullScale || opts.Scale < -MaxSkullScale {
		return nil, errors.Generator("Invalid scale: %d", opts.Scale).
			WithDetail("max", MaxSkullScale)
	}
	if opts.Width > MaxSkullSize || opts.Height > MaxSkullSize || opts.RenderScale > MaxSkullSize {
		return nil, errors.Generator("Invalid head size: %dx%d at render scale %d", opts.Width, opts.Height, opts.RenderScale).
			WithDetail("max", MaxSkullSize)
	}

	opts = opts.normalized()
	if side := max(opts.Width, opts.Height) / SkullDownscale; opts.Scale > 0 && side*opts.Scale > MaxSkullSize {
		return nil, errors.Generator("Invalid scale: %d", opts.Scale).
			WithDetail("max_size", MaxSkullSize)
	}
	texture := fixInvisibleColor(skin)

	projected := projectVertices(opts)
	canvas := image.NewNRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	for _, fi := range renderOrder(projected) {
		drawFace(canvas, texture, skullFaces[fi], projected)
	}

	head := imaging.Resize(canvas, opts.Width/SkullDownscale, opts.Height/SkullDownscale, imaging.Box)
	head = applyScale(head, opts.Scale)

	log.Debug().
		Int("width", head.Bounds().Dx()).
		Int("height", head.Bounds().Dy()).
		Int("scale", opts.Scale).
		Msg("Rendered player head")
	return head, nil
}

// fixInvisibleColor copies the skin and, when the pixel at (32,0) carries a
// color, clears every matching pixel of the hat area. Old skins used that
// color in place of transparency.
func fixInvisibleColor(skin image.Image) *image.NRGBA {
	out := imaging.Clone(skin)
	key := out.NRGBAAt(32, 0)
	if key.R == 0 && key.G == 0 && key.B == 0 {
		return out
	}
	for y := 0; y < 32; y++ {
		for x := 32; x < 64; x++ {
			if out.NRGBAAt(x, y) == key {
				out.SetNRGBA(x, y, color.NRGBA{})
			}
		}
	}
	return out
}

// projectVertices rotates every vertex by Rx·Ry·Rz, scales it and moves the
// origin to the canvas centre. The z component is kept as depth.
func projectVertices(opts SkullOptions) [16]vec4 {
	m := mul(mul(rotationX(opts.XRotation), rotationY(opts.YRotation)), rotationZ(opts.ZRotation))
	scale := float64(opts.RenderScale)
	cx, cy := float64(opts.Width)/2, float64(opts.Height)/2

	var out [16]vec4
	for i, v := range skullVertices {
		r := apply(m, v)
		out[i] = vec4{r[0]*scale + cx, r[1]*scale + cy, r[2], 1}
	}
	return out
}

// renderOrder sorts faces far to near by mean depth.
func renderOrder(vs [16]vec4) []int {
	depth := make([]float64, len(skullFaces))
	order := make([]int, len(skullFaces))
	for i, f := range skullFaces {
		for _, vi := range f.vertices {
			depth[i] += vs[vi][2]
		}
		depth[i] /= 4
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return depth[order[a]] > depth[order[b]]
	})
	return order
}

// drawFace paints the 8x8 texels of f as quads spanned by the face edges.
func drawFace(dst *image.NRGBA, skin *image.NRGBA, f face, vs [16]vec4) {
	v1, v2, v4 := vs[f.vertices[0]], vs[f.vertices[1]], vs[f.vertices[3]]
	du := raster.Point{X: (v2[0] - v1[0]) / 8, Y: (v2[1] - v1[1]) / 8}
	dv := raster.Point{X: (v4[0] - v1[0]) / 8, Y: (v4[1] - v1[1]) / 8}
	at := func(u, v int) raster.Point {
		return raster.Point{
			X: v1[0] + du.X*float64(u) + dv.X*float64(v),
			Y: v1[1] + du.Y*float64(u) + dv.Y*float64(v),
		}
	}

	quad := make([]raster.Point, 4)
	for v := 0; v < 8; v++ {
		for u := 0; u < 8; u++ {
			c := skin.NRGBAAt(f.u+u, f.v+v)
			if c.A == 0 {
				continue
			}
			quad[0], quad[1], quad[2], quad[3] = at(u, v), at(u+1, v), at(u+1, v+1), at(u, v+1)
			raster.FillPolygon(dst, quad, c)
		}
	}
}

func applyScale(img *image.NRGBA, scale int) *image.NRGBA {
	b := img.Bounds()
	switch {
	case scale > 0:
		return imaging.Resize(img, b.Dx()*scale, b.Dy()*scale, imaging.NearestNeighbor)
	case scale < 0:
		n := -scale
		return imaging.Resize(img, max(1, b.Dx()/n), max(1, b.Dy()/n), imaging.Box)
	default:
		return img
	}
}

type mat4 [4][4]float64

func rotationX(a float64) mat4 {
	s, c := math.Sincos(a)
	return mat4{{1, 0, 0, 0}, {0, c, -s, 0}, {0, s, c, 0}, {0, 0, 0, 1}}
}

func rotationY(a float64) mat4 {
	s, c := math.Sincos(a)
	return mat4{{c, 0, s, 0}, {0, 1, 0, 0}, {-s, 0, c, 0}, {0, 0, 0, 1}}
}

func rotationZ(a float64) mat4 {
	s, c := math.Sincos(a)
	return mat4{{c, -s, 0, 0}, {s, c, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}}
}

func mul(a, b mat4) mat4 {
	var out mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			for k := 0; k < 4; k++ {
				out[r][c] += a[r][k] * b[k][c]
			}
		}
	}
	return out
}

func apply(m mat4, v vec4) vec4 {
	var out vec4
	for r := 0; r < 4; r++ {
		for k := 0; k < 4; k++ {
			out[r] += m[r][k] * v[k]
		}
	}
	return out
}
