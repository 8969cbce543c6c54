package chat

import "encoding/json"

// Run is a contiguous span of text sharing one color, style and
// interaction state.
type Run struct {
	Text  string
	Color Color
	Style Style
	Click *ClickAction
	Hover *HoverAction
}

// SameFormat reports whether r and o differ only in text.
func (r Run) SameFormat(o Run) bool {
	return r.Color == o.Color && r.Style == o.Style &&
		sameClick(r.Click, o.Click) && sameHover(r.Hover, o.Hover)
}

func sameClick(a, b *ClickAction) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func sameHover(a, b *HoverAction) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Component is the neutral chat-component record. Style flags are only
// emitted when true.
type Component struct {
	Text          string       `json:"text"`
	Color         string       `json:"color,omitempty"`
	Bold          bool         `json:"bold,omitempty"`
	Italic        bool         `json:"italic,omitempty"`
	Underlined    bool         `json:"underlined,omitempty"`
	Strikethrough bool         `json:"strikethrough,omitempty"`
	Obfuscated    bool         `json:"obfuscated,omitempty"`
	ClickEvent    *ClickAction `json:"clickEvent,omitempty"`
	HoverEvent    *HoverAction `json:"hoverEvent,omitempty"`
}

// Component converts the run into its record form.
func (r Run) Component() Component {
	c := Component{
		Text:          r.Text,
		Bold:          r.Style.Has(Bold),
		Italic:        r.Style.Has(Italic),
		Underlined:    r.Style.Has(Underline),
		Strikethrough: r.Style.Has(Strikethrough),
		Obfuscated:    r.Style.Has(Obfuscated),
		ClickEvent:    r.Click,
		HoverEvent:    r.Hover,
	}
	if r.Color.IsSet() {
		c.Color = r.Color.Name()
	}
	return c
}

// Run converts a record back into a run. Unknown color names are dropped.
func (c Component) Run() Run {
	r := Run{Text: c.Text, Click: c.ClickEvent, Hover: c.HoverEvent}
	if c.Color != "" {
		if col, err := ParseColor(c.Color); err == nil {
			r.Color = col
		}
	}
	flags := []struct {
		on   bool
		flag Style
	}{
		{c.Bold, Bold}, {c.Italic, Italic}, {c.Underlined, Underline},
		{c.Strikethrough, Strikethrough}, {c.Obfuscated, Obfuscated},
	}
	for _, f := range flags {
		if f.on {
			r.Style |= f.flag
		}
	}
	return r
}

// Components converts a run sequence into records.
func Components(runs []Run) []Component {
	out := make([]Component, len(runs))
	for i, r := range runs {
		out[i] = r.Component()
	}
	return out
}

// MarshalRuns renders runs as a JSON array of component records.
func MarshalRuns(runs []Run) ([]byte, error) {
	return json.Marshal(Components(runs))
}
