package markup

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/arthur-debert/mcgen/pkg/chat"
)

// RenderANSI renders runs for a terminal with the given color profile.
// termenv.Ascii yields plain text.
func RenderANSI(runs []chat.Run, profile termenv.Profile) string {
	renderer := lipgloss.NewRenderer(io.Discard)
	renderer.SetColorProfile(profile)

	var b strings.Builder
	for _, r := range runs {
		b.WriteString(runStyle(renderer, r).Render(r.Text))
	}
	return b.String()
}

func runStyle(renderer *lipgloss.Renderer, r chat.Run) lipgloss.Style {
	st := renderer.NewStyle()
	if r.Color.IsSet() {
		st = st.Foreground(lipgloss.Color(r.Color.Hex()))
	}
	if r.Style.Has(chat.Bold) {
		st = st.Bold(true)
	}
	if r.Style.Has(chat.Italic) {
		st = st.Italic(true)
	}
	if r.Style.Has(chat.Underline) {
		st = st.Underline(true)
	}
	if r.Style.Has(chat.Strikethrough) {
		st = st.Strikethrough(true)
	}
	if r.Style.Has(chat.Obfuscated) {
		st = st.Blink(true)
	}
	return st
}
