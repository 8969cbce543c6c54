package chat

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/arthur-debert/mcgen/pkg/errors"
)

// Color is either one of the sixteen legacy chat colors or a literal RGB
// value. The zero Color means "no color set".
type Color struct {
	R, G, B uint8
	// Code is the legacy formatting character, 0 for literal colors.
	Code rune
	name string
	set  bool
}

type namedColor struct {
	code rune
	name string
	hex  string
}

var legacyColors = []namedColor{
	{'0', "black", "#000000"},
	{'1', "dark_blue", "#0000AA"},
	{'2', "dark_green", "#00AA00"},
	{'3', "dark_aqua", "#00AAAA"},
	{'4', "dark_red", "#AA0000"},
	{'5', "dark_purple", "#AA00AA"},
	{'6', "gold", "#FFAA00"},
	{'7', "gray", "#AAAAAA"},
	{'8', "dark_gray", "#555555"},
	{'9', "blue", "#5555FF"},
	{'a', "green", "#55FF55"},
	{'b', "aqua", "#55FFFF"},
	{'c', "red", "#FF5555"},
	{'d', "light_purple", "#FF55FF"},
	{'e', "yellow", "#FFFF55"},
	{'f', "white", "#FFFFFF"},
}

var (
	colorsByCode = map[rune]Color{}
	colorsByName = map[string]Color{}
	namedOrder   []Color
)

func init() {
	for _, nc := range legacyColors {
		c, err := ParseHex(nc.hex)
		if err != nil {
			panic(fmt.Sprintf("chat: bad builtin color %s: %v", nc.name, err))
		}
		c.Code = nc.code
		c.name = nc.name
		colorsByCode[nc.code] = c
		colorsByName[nc.name] = c
		namedOrder = append(namedOrder, c)
	}
}

// ParseHex parses "#rrggbb", "rrggbb" or the three digit short forms into a
// literal color.
func ParseHex(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, errors.Wrapf(err, errors.ErrInvalidInput, "invalid hex color %q", s)
	}
	r, g, b := c.RGB255()
	return RGB(r, g, b), nil
}

// RGB returns a literal color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, set: true}
}

// ColorByCode resolves a legacy formatting character (0-9, a-f).
func ColorByCode(code rune) (Color, bool) {
	c, ok := colorsByCode[toLowerRune(code)]
	return c, ok
}

// ColorByName resolves a legacy color name such as "dark_blue" or "GOLD".
func ColorByName(name string) (Color, bool) {
	c, ok := colorsByName[strings.ToLower(name)]
	return c, ok
}

// ParseColor accepts a legacy color name or a hex literal.
func ParseColor(s string) (Color, error) {
	if strings.HasPrefix(s, "#") {
		return ParseHex(s)
	}
	if c, ok := ColorByName(s); ok {
		return c, nil
	}
	return Color{}, errors.Newf(errors.ErrInvalidInput, "unknown color %q", s)
}

// NamedColors returns the sixteen legacy colors in code order.
func NamedColors() []Color {
	out := make([]Color, len(namedOrder))
	copy(out, namedOrder)
	return out
}

// IsSet reports whether c carries a color.
func (c Color) IsSet() bool { return c.set }

// IsNamed reports whether c is one of the legacy colors.
func (c Color) IsNamed() bool { return c.name != "" }

// Hex returns the color as "#RRGGBB".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Name returns the legacy name, or the hex form for literal colors.
func (c Color) Name() string {
	if c.name != "" {
		return c.name
	}
	return c.Hex()
}

// String implements fmt.Stringer
func (c Color) String() string {
	if !c.set {
		return "none"
	}
	return c.Name()
}

// Background is the shadow color the game draws behind text of this color.
func (c Color) Background() Color {
	return RGB(c.R/4, c.G/4, c.B/4)
}

// RGBA converts to an opaque image color.
func (c Color) RGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// Nearest returns the legacy color closest to c in CIE94 distance. Named
// colors return themselves.
func (c Color) Nearest() Color {
	if c.name != "" {
		return c
	}
	target := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	best := namedOrder[0]
	bestDist := -1.0
	for _, n := range namedOrder {
		cand := colorful.Color{R: float64(n.R) / 255, G: float64(n.G) / 255, B: float64(n.B) / 255}
		if d := target.DistanceCIE94(cand); bestDist < 0 || d < bestDist {
			best, bestDist = n, d
		}
	}
	return best
}

func toLowerRune(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}
