package markup

import (
	"strings"

	"github.com/arthur-debert/mcgen/pkg/chat"
)

// LegacyPrefix is the formatting character used by the game client.
const LegacyPrefix = '§'

// ToComponents converts runs into neutral chat-component records.
func ToComponents(runs []chat.Run) []chat.Component {
	return chat.Components(runs)
}

// ToJSON encodes runs as a JSON array of chat components.
func ToJSON(runs []chat.Run) ([]byte, error) {
	return chat.MarshalRuns(runs)
}

// PlainText concatenates the text of every run.
func PlainText(runs []chat.Run) string {
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// ToLegacy renders runs as a legacy formatted string using prefix as the
// code character. Literal colors are mapped to the nearest legacy color and
// interaction state is dropped.
func ToLegacy(runs []chat.Run, prefix rune) string {
	var b strings.Builder
	var prev *chat.Run
	for i := range runs {
		r := runs[i]
		if prev == nil || !legacyEqual(*prev, r) {
			writeLegacyFormat(&b, prefix, r, prev != nil)
		}
		b.WriteString(r.Text)
		prev = &runs[i]
	}
	return b.String()
}

func legacyEqual(a, b chat.Run) bool {
	return legacyCode(a.Color) == legacyCode(b.Color) && a.Style == b.Style
}

// legacyCode returns the code of the nearest legacy color, 0 when unset.
func legacyCode(c chat.Color) rune {
	if !c.IsSet() {
		return 0
	}
	return c.Nearest().Code
}

func writeLegacyFormat(b *strings.Builder, prefix rune, r chat.Run, hadPrevious bool) {
	switch {
	case r.Color.IsSet():
		b.WriteRune(prefix)
		b.WriteRune(legacyCode(r.Color))
	case hadPrevious:
		b.WriteRune(prefix)
		b.WriteRune('r')
	}
	for _, f := range r.Style.Flags() {
		b.WriteRune(prefix)
		b.WriteRune(f.Code())
	}
}
