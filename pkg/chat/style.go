package chat

import "strings"

// Style is a set of text decoration flags.
type Style uint8

const (
	Bold Style = 1 << iota
	Italic
	Underline
	Strikethrough
	Obfuscated
)

var styleCodes = map[rune]Style{
	'k': Obfuscated,
	'l': Bold,
	'm': Strikethrough,
	'n': Underline,
	'o': Italic,
}

var styleNames = []struct {
	flag  Style
	names []string
}{
	{Bold, []string{"bold"}},
	{Italic, []string{"italic"}},
	{Underline, []string{"underline", "underlined"}},
	{Strikethrough, []string{"strikethrough"}},
	{Obfuscated, []string{"obfuscated", "magic"}},
}

// StyleByCode resolves a legacy formatting character (k-o).
func StyleByCode(code rune) (Style, bool) {
	s, ok := styleCodes[toLowerRune(code)]
	return s, ok
}

// StyleByName resolves a style flag by name, case-insensitively.
func StyleByName(name string) (Style, bool) {
	name = strings.ToLower(name)
	for _, sn := range styleNames {
		for _, n := range sn.names {
			if n == name {
				return sn.flag, true
			}
		}
	}
	return 0, false
}

// Has reports whether every flag in f is set.
func (s Style) Has(f Style) bool { return s&f == f }

// Code returns the legacy character for a single flag.
func (s Style) Code() rune {
	for r, f := range styleCodes {
		if f == s {
			return r
		}
	}
	return 0
}

// Flags splits s into its single-flag components in a fixed order.
func (s Style) Flags() []Style {
	var out []Style
	for _, sn := range styleNames {
		if s.Has(sn.flag) {
			out = append(out, sn.flag)
		}
	}
	return out
}

// String lists the set flags, e.g. "bold|italic".
func (s Style) String() string {
	if s == 0 {
		return "plain"
	}
	var parts []string
	for _, sn := range styleNames {
		if s.Has(sn.flag) {
			parts = append(parts, sn.names[0])
		}
	}
	return strings.Join(parts, "|")
}
