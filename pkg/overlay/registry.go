package overlay

import (
	_ "embed"
	"image"
	"image/color"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/mcgen/pkg/errors"
)

// ImageSource resolves overlay layer images by name.
type ImageSource interface {
	Image(name string) (image.Image, error)
}

// Definition is the TOML form of a single overlay.
type Definition struct {
	Name           string              `toml:"name"`
	Kind           Kind                `toml:"kind"`
	Image          string              `toml:"image"`
	ApplyIfNoColor bool                `toml:"apply_if_no_color"`
	DefaultColor   string              `toml:"default_color"`
	DefaultBase    string              `toml:"default_base"`
	DefaultOverlay string              `toml:"default_overlay"`
	Choices        map[string][]string `toml:"choices"`
	Palettes       map[string][]string `toml:"palettes"`
	DefaultPalette string              `toml:"default_palette"`
	Bindings       map[string]int      `toml:"bindings"`
}

// File is the TOML document loaded by LoadRegistry.
type File struct {
	Overlays []Definition `toml:"overlay"`
	// Items binds item names to overlay names.
	Items map[string]string `toml:"items"`
}

// Registry is the read-only table of named overlays. It is filled once by
// LoadRegistry and never modified afterwards, so concurrent readers need no
// locking.
type Registry struct {
	overlays map[string]Overlay
	items    map[string]string
}

//go:embed defaults.toml
var defaultOverlays []byte

// LoadDefaults loads the overlay table shipped with the binary.
func LoadDefaults(images ImageSource) (*Registry, error) {
	return LoadRegistry(strings.NewReader(string(defaultOverlays)), images)
}

// LoadRegistry decodes an overlay table. When images is nil the overlays
// carry no layer image: colors still resolve but Apply fails.
func LoadRegistry(r io.Reader, images ImageSource) (*Registry, error) {
	var f File
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse overlay table")
	}

	reg := &Registry{
		overlays: make(map[string]Overlay, len(f.Overlays)),
		items:    make(map[string]string, len(f.Items)),
	}
	for _, def := range f.Overlays {
		o, err := def.build(images)
		if err != nil {
			return nil, err
		}
		key := strings.ToLower(def.Name)
		if _, dup := reg.overlays[key]; dup {
			return nil, errors.Newf(errors.ErrConfigParse, "overlay %q defined twice", def.Name)
		}
		reg.overlays[key] = o
	}
	for item, name := range f.Items {
		if _, ok := reg.overlays[strings.ToLower(name)]; !ok {
			return nil, errors.Newf(errors.ErrConfigParse, "item %q bound to unknown overlay %q", item, name)
		}
		reg.items[strings.ToLower(item)] = strings.ToLower(name)
	}

	log.Debug().Int("overlays", len(reg.overlays)).Int("items", len(reg.items)).Msg("Overlay registry loaded")
	return reg, nil
}

// Get returns the overlay with the given name.
func (r *Registry) Get(name string) (Overlay, error) {
	if o, ok := r.overlays[strings.ToLower(name)]; ok {
		return o, nil
	}
	return nil, errors.Newf(errors.ErrNotFound, "unknown overlay %q", name)
}

// ForItem returns the overlay bound to an item, if any.
func (r *Registry) ForItem(item string) (Overlay, bool) {
	name, ok := r.items[strings.ToLower(item)]
	if !ok {
		return nil, false
	}
	return r.overlays[name], true
}

// Names lists overlay names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.overlays))
	for n := range r.overlays {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (d Definition) build(images ImageSource) (Overlay, error) {
	if d.Name == "" {
		return nil, errors.New(errors.ErrConfigParse, "overlay without a name")
	}
	common := Common{OverlayName: strings.ToLower(d.Name), ApplyIfNoColor: d.ApplyIfNoColor}
	if images != nil && d.Image != "" {
		img, err := images.Image(d.Image)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "overlay %s: image %s", d.Name, d.Image)
		}
		common.OverlayImage = img
	}

	bad := func(err error) error {
		return errors.Wrapf(err, errors.ErrConfigParse, "overlay %s", d.Name)
	}

	switch d.Kind {
	case KindDualLayer:
		o := &DualLayer{Common: common, ColorChoices: make(map[string]Pair, len(d.Choices))}
		var err error
		if o.DefaultBaseColor, err = ParseHex(d.DefaultBase); err != nil {
			return nil, bad(err)
		}
		if o.DefaultOverlayColor, err = ParseHex(d.DefaultOverlay); err != nil {
			return nil, bad(err)
		}
		for name, hexes := range d.Choices {
			if len(hexes) != 2 {
				return nil, errors.Newf(errors.ErrConfigParse, "overlay %s: choice %s needs [overlay, base]", d.Name, name)
			}
			var p Pair
			if p.Overlay, err = ParseHex(hexes[0]); err != nil {
				return nil, bad(err)
			}
			if p.Base, err = ParseHex(hexes[1]); err != nil {
				return nil, bad(err)
			}
			o.ColorChoices[strings.ToLower(name)] = p
		}
		return o, nil

	case KindNormal, "":
		o := &Normal{Common: common, ColorChoices: make(map[string]color.NRGBA, len(d.Choices))}
		var err error
		if o.DefaultColor, err = ParseHex(d.DefaultColor); err != nil {
			return nil, bad(err)
		}
		for name, hexes := range d.Choices {
			if len(hexes) != 1 {
				return nil, errors.Newf(errors.ErrConfigParse, "overlay %s: choice %s needs one color", d.Name, name)
			}
			c, err := ParseHex(hexes[0])
			if err != nil {
				return nil, bad(err)
			}
			o.ColorChoices[strings.ToLower(name)] = c
		}
		return o, nil

	case KindMapped:
		o := &Mapped{
			Common:         common,
			Bindings:       make(map[uint32]int, len(d.Bindings)),
			Palettes:       make(map[string][]color.NRGBA, len(d.Palettes)),
			DefaultPalette: strings.ToLower(d.DefaultPalette),
		}
		for src, idx := range d.Bindings {
			v, err := strconv.ParseUint(strings.TrimPrefix(src, "#"), 16, 32)
			if err != nil || v > 0xffffff {
				return nil, errors.Newf(errors.ErrConfigParse, "overlay %s: bad binding color %q", d.Name, src)
			}
			o.Bindings[uint32(v)] = idx
		}
		for name, hexes := range d.Palettes {
			palette := make([]color.NRGBA, len(hexes))
			for i, h := range hexes {
				c, err := ParseHex(h)
				if err != nil {
					return nil, bad(err)
				}
				palette[i] = c
			}
			o.Palettes[strings.ToLower(name)] = palette
		}
		if _, ok := o.Palettes[o.DefaultPalette]; !ok {
			return nil, errors.Newf(errors.ErrConfigParse, "overlay %s: default palette %q not defined", d.Name, d.DefaultPalette)
		}
		return o, nil
	}

	return nil, errors.Newf(errors.ErrConfigParse, "overlay %s: unknown kind %q", d.Name, d.Kind)
}
