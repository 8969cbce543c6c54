package render

import (
	"encoding/json"
	"image"
	"io"
	"sort"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/arthur-debert/mcgen/pkg/errors"
)

// SpriteEntry locates one square texture inside an atlas.
type SpriteEntry struct {
	Name string `json:"name"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Size int    `json:"size"`
}

// Spritesheet is a read-only texture atlas. Lookups crop a fresh copy, so a
// single sheet can serve concurrent renders.
type Spritesheet struct {
	atlas   image.Image
	entries map[string]SpriteEntry
}

// LoadSpritesheet reads an atlas image and its JSON index.
func LoadSpritesheet(atlas io.Reader, index io.Reader) (*Spritesheet, error) {
	img, err := DecodeImage(atlas)
	if err != nil {
		return nil, err
	}
	var entries []SpriteEntry
	if err := json.NewDecoder(index).Decode(&entries); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse spritesheet index")
	}
	return NewSpritesheet(img, entries)
}

// NewSpritesheet indexes entries against atlas. Entries that fall outside
// the atlas are rejected.
func NewSpritesheet(atlas image.Image, entries []SpriteEntry) (*Spritesheet, error) {
	s := &Spritesheet{atlas: atlas, entries: make(map[string]SpriteEntry, len(entries))}
	b := atlas.Bounds()
	for _, e := range entries {
		r := e.rect().Add(b.Min)
		if e.Size <= 0 || !r.In(b) {
			return nil, errors.Newf(errors.ErrConfigParse, "sprite %s lies outside the atlas", e.Name).
				WithDetail("x", e.X).
				WithDetail("y", e.Y).
				WithDetail("size", e.Size)
		}
		s.entries[strings.ToLower(e.Name)] = e
	}
	log.Debug().Int("sprites", len(s.entries)).Msg("Spritesheet loaded")
	return s, nil
}

func (e SpriteEntry) rect() image.Rectangle {
	return image.Rect(e.X, e.Y, e.X+e.Size, e.Y+e.Size)
}

// Image returns a copy of the named sprite.
func (s *Spritesheet) Image(name string) (*image.NRGBA, error) {
	e, ok := s.entries[strings.ToLower(name)]
	if !ok {
		return nil, errors.Newf(errors.ErrNotFound, "no texture named %s", name)
	}
	return imaging.Crop(s.atlas, e.rect().Add(s.atlas.Bounds().Min)), nil
}

// Has reports whether the sheet holds the named sprite.
func (s *Spritesheet) Has(name string) bool {
	_, ok := s.entries[strings.ToLower(name)]
	return ok
}

// Names lists the sprites in lexical order.
func (s *Spritesheet) Names() []string {
	names := make([]string, 0, len(s.entries))
	for n := range s.entries {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Texture lets a spritesheet act as a TextureSource for skins stored in the
// same atlas.
func (s *Spritesheet) Texture(id string) (image.Image, error) {
	return s.Image(id)
}
