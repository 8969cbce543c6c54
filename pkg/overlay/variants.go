package overlay

import (
	"image"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Pair is a resolved dual-layer color request.
type Pair struct {
	Overlay color.NRGBA
	Base    color.NRGBA
}

// DualLayer tints the base item image and the overlay layer separately.
type DualLayer struct {
	Common
	DefaultBaseColor    color.NRGBA
	DefaultOverlayColor color.NRGBA
	// ColorChoices is keyed by lowercase name.
	ColorChoices map[string]Pair
}

// Kind implements Overlay.
func (d *DualLayer) Kind() Kind { return KindDualLayer }

// ResolveColors turns a color spec into an overlay and base color. The
// boolean is false when spec is empty and the overlay only applies with an
// explicit color.
//
// Specs containing '#' are read as up to two hex colors, overlay first.
// Missing or unparseable tokens fall back to DefaultBaseColor. Anything
// else is a case-insensitive ColorChoices lookup; on a miss both colors
// fall back to DefaultOverlayColor.
func (d *DualLayer) ResolveColors(spec string) (Pair, bool) {
	if spec == "" && !d.ApplyIfNoColor {
		return Pair{}, false
	}

	if strings.Contains(spec, "#") {
		tokens := hexTokens(spec)
		pair := Pair{Overlay: d.DefaultBaseColor, Base: d.DefaultBaseColor}
		if len(tokens) > 0 {
			if c, err := ParseHex(tokens[0]); err == nil {
				pair.Overlay = c
			}
		}
		if len(tokens) > 1 {
			if c, err := ParseHex(tokens[1]); err == nil {
				pair.Base = c
			}
		}
		return pair, true
	}

	if pair, ok := d.ColorChoices[strings.ToLower(spec)]; ok {
		return pair, true
	}
	return Pair{Overlay: d.DefaultOverlayColor, Base: d.DefaultOverlayColor}, true
}

// Normal tints the overlay layer with a single color.
type Normal struct {
	Common
	DefaultColor color.NRGBA
	// ColorChoices is keyed by lowercase name.
	ColorChoices map[string]color.NRGBA
}

// Kind implements Overlay.
func (n *Normal) Kind() Kind { return KindNormal }

// ResolveColor picks the tint for spec: a hex literal, a named choice, or
// DefaultColor.
func (n *Normal) ResolveColor(spec string) (color.NRGBA, bool) {
	if spec == "" && !n.ApplyIfNoColor {
		return color.NRGBA{}, false
	}
	if strings.Contains(spec, "#") {
		if tokens := hexTokens(spec); len(tokens) > 0 {
			if c, err := ParseHex(tokens[0]); err == nil {
				return c, true
			}
		}
		return n.DefaultColor, true
	}
	if c, ok := n.ColorChoices[strings.ToLower(spec)]; ok {
		return c, true
	}
	return n.DefaultColor, true
}

// Mapped replaces exact source colors of the overlay layer with entries
// of a named palette, e.g. armor trim materials.
type Mapped struct {
	Common
	// Bindings maps a source RGB value (0xRRGGBB) to a palette index.
	Bindings       map[uint32]int
	Palettes       map[string][]color.NRGBA
	DefaultPalette string
}

// Kind implements Overlay.
func (m *Mapped) Kind() Kind { return KindMapped }

// ResolvePalette picks the palette named by spec, falling back to the
// default palette.
func (m *Mapped) ResolvePalette(spec string) ([]color.NRGBA, bool) {
	if spec == "" && !m.ApplyIfNoColor {
		return nil, false
	}
	if p, ok := m.Palettes[strings.ToLower(spec)]; ok {
		return p, true
	}
	p, ok := m.Palettes[m.DefaultPalette]
	return p, ok
}

// remap rewrites bound pixels of layer in place. Unbound pixels are kept.
func (m *Mapped) remap(layer *image.NRGBA, palette []color.NRGBA) *image.NRGBA {
	b := layer.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := layer.PixOffset(x, y)
			px := layer.Pix[i : i+4 : i+4]
			if px[3] == 0 {
				continue
			}
			rgb := uint32(px[0])<<16 | uint32(px[1])<<8 | uint32(px[2])
			idx, ok := m.Bindings[rgb]
			if !ok || idx < 0 || idx >= len(palette) {
				continue
			}
			px[0], px[1], px[2] = palette[idx].R, palette[idx].G, palette[idx].B
		}
	}
	return layer
}

// ParseHex parses "#rrggbb", "rrggbb" or a three digit short form.
func ParseHex(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// hexTokens splits s on every character that is not a hex digit.
func hexTokens(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f' || r >= 'A' && r <= 'F')
	})
}
