package markup

import (
	"strings"
	"unicode/utf8"

	"github.com/arthur-debert/mcgen/pkg/chat"
)

// Lines splits runs on newline characters. Each line keeps the formatting
// of the runs it was cut from.
func Lines(runs []chat.Run) [][]chat.Run {
	lines := [][]chat.Run{nil}
	for _, r := range runs {
		parts := strings.Split(r.Text, "\n")
		for i, p := range parts {
			if i > 0 {
				lines = append(lines, nil)
			}
			if p == "" {
				continue
			}
			piece := r
			piece.Text = p
			lines[len(lines)-1] = append(lines[len(lines)-1], piece)
		}
	}
	return lines
}

// Wrap breaks runs into lines no wider than width characters, breaking at
// spaces where possible. Explicit newlines are honoured. A width below one
// only splits on newlines.
func Wrap(runs []chat.Run, width int) [][]chat.Run {
	if width < 1 {
		return Lines(runs)
	}
	var out [][]chat.Run
	for _, line := range Lines(runs) {
		out = append(out, wrapLine(line, width)...)
	}
	return out
}

type word struct {
	pieces []chat.Run
	width  int
}

func wrapLine(line []chat.Run, width int) [][]chat.Run {
	words := splitWords(line)
	if len(words) == 0 {
		return [][]chat.Run{nil}
	}

	var out [][]chat.Run
	var cur []chat.Run
	curWidth := 0
	for _, w := range words {
		if curWidth > 0 && curWidth+1+w.width > width {
			out = append(out, cur)
			cur, curWidth = nil, 0
		}
		if curWidth > 0 {
			cur = appendText(cur, w.pieces[0], " ")
			curWidth++
		}
		for _, p := range w.pieces {
			cur = appendText(cur, p, p.Text)
		}
		curWidth += w.width
	}
	return append(out, cur)
}

// splitWords breaks a line at spaces. A word may span several runs.
func splitWords(line []chat.Run) []word {
	var words []word
	var cur word
	for _, r := range line {
		fields := strings.Split(r.Text, " ")
		for i, f := range fields {
			if i > 0 && cur.width > 0 {
				words = append(words, cur)
				cur = word{}
			}
			if f == "" {
				continue
			}
			piece := r
			piece.Text = f
			cur.pieces = append(cur.pieces, piece)
			cur.width += utf8.RuneCountInString(f)
		}
	}
	if cur.width > 0 {
		words = append(words, cur)
	}
	return words
}

func appendText(line []chat.Run, format chat.Run, text string) []chat.Run {
	if n := len(line); n > 0 && line[n-1].SameFormat(format) {
		line[n-1].Text += text
		return line
	}
	format.Text = text
	return append(line, format)
}
