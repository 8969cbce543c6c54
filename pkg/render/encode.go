package render

import (
	"bytes"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"io"

	"github.com/arthur-debert/mcgen/pkg/errors"
)

// DecodeImage reads a PNG texture.
func DecodeImage(r io.Reader) (image.Image, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrImageDecode, "failed to decode PNG")
	}
	return img, nil
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return errors.Wrap(err, errors.ErrImageEncode, "failed to encode PNG")
	}
	return nil
}

// EncodeGIF writes frames as a looping animated GIF. Delays are converted
// from milliseconds to the format's hundredths of a second. Pixels with
// less than half opacity become transparent.
func EncodeGIF(w io.Writer, frames []Frame) error {
	if len(frames) == 0 {
		return errors.New(errors.ErrImageEncode, "no frames to encode")
	}
	anim := &gif.GIF{LoopCount: 0}
	for _, f := range frames {
		anim.Image = append(anim.Image, paletted(f.Image))
		anim.Delay = append(anim.Delay, max(1, (f.Delay+5)/10))
		anim.Disposal = append(anim.Disposal, gif.DisposalBackground)
	}
	if err := gif.EncodeAll(w, anim); err != nil {
		return errors.Wrap(err, errors.ErrImageEncode, "failed to encode GIF")
	}
	return nil
}

// Encode picks GIF for animated results and PNG otherwise and returns the
// bytes together with their media type.
func Encode(r Result) ([]byte, string, error) {
	var buf bytes.Buffer
	if r.Animated() {
		if err := EncodeGIF(&buf, r.Frames); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "image/gif", nil
	}
	img := r.Image()
	if img == nil {
		return nil, "", errors.New(errors.ErrImageEncode, "nothing to encode")
	}
	if err := EncodePNG(&buf, img); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), "image/png", nil
}

// gifPalette is Plan9 with its first entry replaced by full transparency.
var gifPalette = func() color.Palette {
	p := make(color.Palette, len(palette.Plan9))
	copy(p, palette.Plan9)
	p[0] = color.NRGBA{}
	return p
}()

func paletted(img *image.NRGBA) *image.Paletted {
	b := img.Bounds()
	out := image.NewPaletted(b, gifPalette)
	opaque := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.NRGBAAt(x, y)
			if c.A >= 0x80 {
				c.A = 0xff
				opaque.SetNRGBA(x, y, c)
			}
		}
	}
	draw.Draw(out, b, opaque, b.Min, draw.Src)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if opaque.NRGBAAt(x, y).A == 0 {
				out.SetColorIndex(x, y, 0)
			}
		}
	}
	return out
}
