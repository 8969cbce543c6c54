package render

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

var glintColor = color.NRGBA{R: 128, G: 64, B: 204, A: 96}

// Glint returns a copy of img with the enchantment sheen blended over every
// visible pixel. Transparent pixels stay transparent.
func Glint(img image.Image) *image.NRGBA {
	base := imaging.Clone(img)
	sheen := image.NewNRGBA(base.Bounds())
	for i := 0; i < len(base.Pix); i += 4 {
		if base.Pix[i+3] == 0 {
			continue
		}
		copy(sheen.Pix[i:i+4], []uint8{glintColor.R, glintColor.G, glintColor.B, glintColor.A})
	}
	return imaging.Overlay(base, sheen, image.Point{}, 1)
}

// SplitFrames cuts a vertical animation strip, as used by animated item
// textures, into square frames. Images that are not a strip of at least two
// squares come back as a single frame.
func SplitFrames(strip image.Image) []image.Image {
	b := strip.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h <= w || h%w != 0 {
		return []image.Image{strip}
	}
	frames := make([]image.Image, 0, h/w)
	for y := b.Min.Y; y < b.Max.Y; y += w {
		frames = append(frames, imaging.Crop(strip, image.Rect(b.Min.X, y, b.Max.X, y+w)))
	}
	return frames
}
