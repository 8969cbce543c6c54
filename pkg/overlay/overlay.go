// Package overlay recolors item textures. An overlay is a secondary layer
// tinted and drawn on top of a base item image to show dye colors, trims
// and similar variants.
//
// Three variants exist: Normal tints a single layer with one color,
// DualLayer tints the base image and the overlay layer with a resolved
// color pair, and Mapped replaces exact source colors with palette
// entries. Apply dispatches on the concrete type.
package overlay

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/arthur-debert/mcgen/pkg/errors"
	"github.com/arthur-debert/mcgen/pkg/logging"
)

var log = logging.GetLogger("overlay")

// Kind names an overlay variant in configuration.
type Kind string

const (
	KindNormal    Kind = "normal"
	KindDualLayer Kind = "dual_layer"
	KindMapped    Kind = "mapped"
)

// Overlay is implemented by *Normal, *DualLayer and *Mapped.
type Overlay interface {
	Name() string
	Kind() Kind
	Image() image.Image
}

// Common holds what every variant shares.
type Common struct {
	OverlayName    string
	OverlayImage   image.Image
	ApplyIfNoColor bool
}

// Name returns the overlay name.
func (b Common) Name() string { return b.OverlayName }

// Image returns the overlay layer, nil when the registry was loaded
// without an image source.
func (b Common) Image() image.Image { return b.OverlayImage }

// Apply recolors base according to o and spec and returns a new buffer. The
// boolean is false when the overlay decided to skip, in which case the
// returned image is an unmodified copy of base.
func Apply(base image.Image, o Overlay, spec string) (*image.NRGBA, bool, error) {
	out := imaging.Clone(base)

	switch ov := o.(type) {
	case *DualLayer:
		pair, ok := ov.ResolveColors(spec)
		if !ok {
			return out, false, nil
		}
		layer, err := layerFor(o, out.Bounds())
		if err != nil {
			return nil, false, err
		}
		tintInPlace(out, pair.Base)
		out = imaging.Overlay(out, tintInPlace(layer, pair.Overlay), image.Point{}, 1)
	case *Normal:
		c, ok := ov.ResolveColor(spec)
		if !ok {
			return out, false, nil
		}
		layer, err := layerFor(o, out.Bounds())
		if err != nil {
			return nil, false, err
		}
		out = imaging.Overlay(out, tintInPlace(layer, c), image.Point{}, 1)
	case *Mapped:
		palette, ok := ov.ResolvePalette(spec)
		if !ok {
			return out, false, nil
		}
		layer, err := layerFor(o, out.Bounds())
		if err != nil {
			return nil, false, err
		}
		out = imaging.Overlay(out, ov.remap(layer, palette), image.Point{}, 1)
	default:
		return nil, false, errors.Generator("unsupported overlay type %T", o)
	}

	log.Debug().Str("overlay", o.Name()).Str("kind", string(o.Kind())).Str("spec", spec).Msg("Overlay applied")
	return out, true, nil
}

// Tint returns a copy of img where every non-transparent pixel is scaled
// channel-wise by c. Alpha is preserved.
func Tint(img image.Image, c color.NRGBA) *image.NRGBA {
	return tintInPlace(imaging.Clone(img), c)
}

func tintInPlace(img *image.NRGBA, c color.NRGBA) *image.NRGBA {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := img.PixOffset(x, y)
			px := img.Pix[i : i+4 : i+4]
			if px[3] == 0 {
				continue
			}
			px[0] = scale(px[0], c.R)
			px[1] = scale(px[1], c.G)
			px[2] = scale(px[2], c.B)
		}
	}
	return img
}

func scale(src, by uint8) uint8 {
	return uint8(math.Round(float64(src) / 255 * float64(by)))
}

// layerFor copies the overlay layer, resizing it to the target bounds when
// the sizes differ.
func layerFor(o Overlay, bounds image.Rectangle) (*image.NRGBA, error) {
	layer := o.Image()
	if layer == nil {
		return nil, errors.Generator("overlay %s has no image", o.Name())
	}
	if layer.Bounds().Size() == bounds.Size() {
		return imaging.Clone(layer), nil
	}
	return imaging.Resize(layer, bounds.Dx(), bounds.Dy(), imaging.NearestNeighbor), nil
}
