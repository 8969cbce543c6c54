package render

import (
	"encoding/base64"
	"encoding/json"
	"image"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/arthur-debert/mcgen/pkg/errors"
)

// TextureHost is the prefix Mojang serves skin textures under.
const TextureHost = "textures.minecraft.net/texture/"

var (
	hexTextureHash = regexp.MustCompile(`^[a-fA-F0-9]{64}$`)
	textureURL     = regexp.MustCompile(`^(?:https?://textures\.minecraft\.net/texture/)?([a-zA-Z0-9]+)$`)
	skinBase64     = regexp.MustCompile(`^([A-Za-z0-9+/]{4})*([A-Za-z0-9+/]{3}=|[A-Za-z0-9+/]{2}==)?$`)
)

// TextureSource provides skin images by texture id.
type TextureSource interface {
	Texture(id string) (image.Image, error)
}

// DirSource reads textures from <Dir>/<id>.png.
type DirSource struct {
	Dir string
}

// Texture implements TextureSource.
func (d DirSource) Texture(id string) (image.Image, error) {
	path := filepath.Join(d.Dir, id+".png")
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Generator("Could not find skin with ID: %s", id).WithDetail("path", path)
		}
		return nil, errors.Wrapf(err, errors.ErrImageDecode, "failed to open texture %s", path)
	}
	defer func() { _ = f.Close() }()
	return DecodeImage(f)
}

// MapSource serves textures from memory.
type MapSource map[string]image.Image

// Texture implements TextureSource.
func (m MapSource) Texture(id string) (image.Image, error) {
	img, ok := m[id]
	if !ok {
		return nil, errors.Generator("Could not find skin with ID: %s", id)
	}
	return img, nil
}

// ResolveSkin turns user supplied skin data into a skin image. The input may
// be a texture hash, a texture URL, a base64 textures property or an item
// NBT document in JSON form.
func ResolveSkin(input string, src TextureSource) (image.Image, error) {
	id, err := TextureID(input)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("texture", id).Msg("Resolved skin texture id")
	return src.Texture(id)
}

// TextureID extracts the texture id from any supported skin reference.
func TextureID(input string) (string, error) {
	input = strings.TrimSpace(input)
	switch {
	case input == "":
		return "", errors.Generator("No skin texture provided")
	case hexTextureHash.MatchString(input):
		return strings.ToLower(input), nil
	case strings.HasPrefix(input, "{"):
		value, err := skinFromNBT(input)
		if err != nil {
			return "", err
		}
		return TextureID(value)
	}

	if url, ok := decodeTexturesProperty(input); ok {
		return idFromURL(url)
	}
	if len(input) <= 16 {
		return "", errors.Generator("Player name lookups are not supported: %s", input)
	}
	return idFromURL(input)
}

func idFromURL(url string) (string, error) {
	m := textureURL.FindStringSubmatch(strings.TrimSpace(url))
	if m == nil {
		return "", errors.Generator("Malformed texture URL: %s", url)
	}
	return m[1], nil
}

type texturesProperty struct {
	Textures struct {
		Skin *struct {
			URL string `json:"url"`
		} `json:"SKIN"`
	} `json:"textures"`
}

// decodeTexturesProperty reads the base64 JSON value Mojang stores in a
// profile's textures property.
func decodeTexturesProperty(s string) (string, bool) {
	if len(s) <= 16 || !skinBase64.MatchString(s) {
		return "", false
	}
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return "", false
	}
	var prop texturesProperty
	if err := json.Unmarshal(raw, &prop); err != nil || prop.Textures.Skin == nil {
		return "", false
	}
	return prop.Textures.Skin.URL, true
}

type profileProperty struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Upper string `json:"Value"`
}

func (p profileProperty) value() string {
	if p.Value != "" {
		return p.Value
	}
	return p.Upper
}

type itemNBT struct {
	Tag *struct {
		SkullOwner *struct {
			Properties *struct {
				Textures []profileProperty `json:"textures"`
			} `json:"Properties"`
		} `json:"SkullOwner"`
	} `json:"tag"`
	Components map[string]json.RawMessage `json:"components"`
}

// skinFromNBT extracts the textures property from either the legacy
// tag.SkullOwner layout or the item components layout.
func skinFromNBT(doc string) (string, error) {
	var item itemNBT
	if err := json.Unmarshal([]byte(doc), &item); err != nil {
		return "", errors.Generator("Invalid item NBT: %s", err.Error())
	}

	if item.Tag != nil && item.Tag.SkullOwner != nil && item.Tag.SkullOwner.Properties != nil {
		textures := item.Tag.SkullOwner.Properties.Textures
		if len(textures) > 1 {
			return "", errors.TooManyTextures(len(textures))
		}
		if len(textures) == 1 && textures[0].value() != "" {
			return textures[0].value(), nil
		}
	}

	if raw, ok := item.Components["minecraft:profile"]; ok {
		var profile struct {
			Properties []profileProperty `json:"properties"`
		}
		if err := json.Unmarshal(raw, &profile); err != nil {
			return "", errors.Generator("Invalid minecraft:profile component: %s", err.Error())
		}
		for _, p := range profile.Properties {
			if p.Name == "textures" && p.value() != "" {
				return p.value(), nil
			}
		}
	}

	return "", errors.Generator("Item NBT does not contain a skin texture")
}
