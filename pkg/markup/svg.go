package markup

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/beevik/etree"

	"github.com/arthur-debert/mcgen/pkg/chat"
)

// SVGOptions controls RenderSVG.
type SVGOptions struct {
	FontSize   int
	FontFamily string
	// Shadow draws each line again offset by an eighth of the font size in
	// the darkened background color, as the game client does.
	Shadow bool
	// Background fills the canvas when set.
	Background string
}

// DefaultSVGOptions mirrors the in-game tooltip look.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		FontSize:   16,
		FontFamily: "Minecraft, monospace",
		Shadow:     true,
		Background: "#100010",
	}
}

// RenderSVG renders runs as an SVG document, one <text> element per line.
func RenderSVG(runs []chat.Run, opts SVGOptions) (string, error) {
	if opts.FontSize <= 0 {
		opts.FontSize = DefaultSVGOptions().FontSize
	}
	lines := Lines(runs)
	lineHeight := opts.FontSize * 5 / 4
	padding := opts.FontSize / 2
	width := padding*2 + longestLine(lines)*opts.FontSize*6/10
	height := padding*2 + len(lines)*lineHeight

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	svg := doc.CreateElement("svg")
	svg.CreateAttr("xmlns", "http://www.w3.org/2000/svg")
	svg.CreateAttr("width", strconv.Itoa(width))
	svg.CreateAttr("height", strconv.Itoa(height))
	svg.CreateAttr("font-family", opts.FontFamily)
	svg.CreateAttr("font-size", strconv.Itoa(opts.FontSize))

	if opts.Background != "" {
		bg := svg.CreateElement("rect")
		bg.CreateAttr("width", "100%")
		bg.CreateAttr("height", "100%")
		bg.CreateAttr("fill", opts.Background)
	}

	shadow := opts.FontSize / 8
	if shadow < 1 {
		shadow = 1
	}
	for i, line := range lines {
		y := padding + (i+1)*lineHeight - (lineHeight-opts.FontSize)
		if opts.Shadow {
			writeLine(svg, line, padding+shadow, y+shadow, true)
		}
		writeLine(svg, line, padding, y, false)
	}

	doc.Indent(2)
	return doc.WriteToString()
}

func writeLine(parent *etree.Element, line []chat.Run, x, y int, shadow bool) {
	text := parent.CreateElement("text")
	text.CreateAttr("x", strconv.Itoa(x))
	text.CreateAttr("y", strconv.Itoa(y))
	text.CreateAttr("xml:space", "preserve")
	for _, r := range line {
		span := text.CreateElement("tspan")
		fill := defaultTextColor()
		if r.Color.IsSet() {
			fill = r.Color
		}
		if shadow {
			fill = fill.Background()
		}
		span.CreateAttr("fill", fill.Hex())
		if r.Style.Has(chat.Bold) {
			span.CreateAttr("font-weight", "bold")
		}
		if r.Style.Has(chat.Italic) {
			span.CreateAttr("font-style", "italic")
		}
		if deco := decoration(r.Style); deco != "" {
			span.CreateAttr("text-decoration", deco)
		}
		if r.Click != nil {
			span.CreateAttr("data-click", fmt.Sprintf("%s:%s", r.Click.Kind, r.Click.Argument()))
		}
		if r.Hover != nil {
			span.CreateAttr("data-hover", fmt.Sprintf("%s:%s", r.Hover.Kind, r.Hover.Value))
		}
		span.SetText(r.Text)
	}
}

func decoration(s chat.Style) string {
	var parts []string
	if s.Has(chat.Underline) {
		parts = append(parts, "underline")
	}
	if s.Has(chat.Strikethrough) {
		parts = append(parts, "line-through")
	}
	return strings.Join(parts, " ")
}

func defaultTextColor() chat.Color {
	c, _ := chat.ColorByName("white")
	return c
}

func longestLine(lines [][]chat.Run) int {
	longest := 0
	for _, l := range lines {
		n := 0
		for _, r := range l {
			n += utf8.RuneCountInString(r.Text)
		}
		if n > longest {
			longest = n
		}
	}
	return longest
}
