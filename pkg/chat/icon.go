package chat

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Icon is a named glyph usable inline in markup.
type Icon struct {
	Name  string `yaml:"name"`
	Glyph string `yaml:"glyph"`
}

type iconFile struct {
	Icons []Icon `yaml:"icons"`
}

//go:embed icons.yaml
var embeddedIcons []byte

var (
	icons     []Icon
	iconIndex map[string]Icon
)

func init() {
	list, err := parseIcons(embeddedIcons)
	if err != nil {
		panic(fmt.Sprintf("chat: embedded icons.yaml: %v", err))
	}
	icons = list
	iconIndex = make(map[string]Icon, len(list))
	for _, ic := range list {
		iconIndex[ic.Name] = ic
	}
}

func parseIcons(data []byte) ([]Icon, error) {
	var f iconFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	for i := range f.Icons {
		f.Icons[i].Name = strings.ToUpper(strings.TrimSpace(f.Icons[i].Name))
		if f.Icons[i].Name == "" || f.Icons[i].Glyph == "" {
			return nil, fmt.Errorf("icon %d needs a name and a glyph", i)
		}
	}
	return f.Icons, nil
}

// LookupIcon finds an icon by name, case-insensitively.
func LookupIcon(name string) (Icon, bool) {
	ic, ok := iconIndex[strings.ToUpper(name)]
	return ic, ok
}

// Icons lists every icon in declaration order.
func Icons() []Icon {
	out := make([]Icon, len(icons))
	copy(out, icons)
	return out
}

// MaxIconRepeat caps how often a single icon token repeats its glyph.
const MaxIconRepeat = 64

// Repeat returns the glyph count times. Counts below one give a single glyph
// and counts above MaxIconRepeat give MaxIconRepeat glyphs.
func (i Icon) Repeat(count int) string {
	switch {
	case count < 1:
		count = 1
	case count > MaxIconRepeat:
		count = MaxIconRepeat
	}
	return strings.Repeat(i.Glyph, count)
}
