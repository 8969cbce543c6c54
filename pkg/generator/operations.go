package generator

import (
	"context"
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/mcgen/pkg/chat"
	"github.com/arthur-debert/mcgen/pkg/errors"
	"github.com/arthur-debert/mcgen/pkg/markup"
	"github.com/arthur-debert/mcgen/pkg/overlay"
	"github.com/arthur-debert/mcgen/pkg/recipe"
	"github.com/arthur-debert/mcgen/pkg/render"
)

// Grid sizes.
const (
	RecipeColumns        = 3
	DefaultInventoryRows = 6
	TrimOverlay          = "armor_trim"
)

// TextResult is compiled markup.
type TextResult struct {
	Runs       []chat.Run       `json:"-"`
	Components []chat.Component `json:"components"`
}

// Text compiles markup into styled runs and chat components.
func (g *Generator) Text(ctx context.Context, input string) (TextResult, error) {
	return run(ctx, g, "text", func(logger zerolog.Logger) (TextResult, error) {
		runs, err := markup.Compile(input)
		if err != nil {
			return TextResult{}, err
		}
		logger.Debug().Int("runs", len(runs)).Msg("Markup compiled")
		return TextResult{Runs: runs, Components: markup.ToComponents(runs)}, nil
	})
}

// TooltipRequest renders markup as an item tooltip image.
type TooltipRequest struct {
	Input string `json:"input"`
	// Width wraps lines at this many characters when positive.
	Width        int  `json:"width,omitempty"`
	Centered     bool `json:"centered,omitempty"`
	FirstLineGap bool `json:"firstLineGap,omitempty"`
	NoBorder     bool `json:"noBorder,omitempty"`
	Padding      int  `json:"padding,omitempty"`
	// Alpha is the panel opacity, 1-255. Zero keeps the default.
	Alpha int `json:"alpha,omitempty"`
}

// Tooltip compiles markup and draws it as a tooltip panel.
func (g *Generator) Tooltip(ctx context.Context, req TooltipRequest) (*image.NRGBA, error) {
	return run(ctx, g, "tooltip", func(logger zerolog.Logger) (*image.NRGBA, error) {
		if req.Alpha < 0 || req.Alpha > 255 {
			return nil, errors.Generator("Invalid alpha: %d", req.Alpha)
		}
		runs, err := markup.Compile(req.Input)
		if err != nil {
			return nil, err
		}
		lines := markup.Wrap(runs, req.Width)
		logger.Debug().Int("lines", len(lines)).Msg("Markup wrapped")
		return render.RenderText(lines, render.TextOptions{
			Scale:        g.cfg.Render.Scale,
			Alpha:        uint8(req.Alpha),
			Padding:      req.Padding,
			FirstLineGap: req.FirstLineGap,
			NoBorder:     req.NoBorder,
			Centered:     req.Centered,
		})
	})
}

// RecipeResult is a parsed recipe and, when an item atlas is configured,
// its rendered crafting grid.
type RecipeResult struct {
	Items []recipe.Item `json:"items"`
	Image *image.NRGBA  `json:"-"`
}

// Recipe parses a recipe string and renders a 3-column grid.
func (g *Generator) Recipe(ctx context.Context, input string) (RecipeResult, error) {
	return run(ctx, g, "recipe", func(logger zerolog.Logger) (RecipeResult, error) {
		bySlot, err := recipe.Parse(input)
		if err != nil {
			return RecipeResult{}, err
		}
		res := RecipeResult{Items: recipe.Sorted(bySlot)}
		logger.Debug().Int("items", len(res.Items)).Msg("Recipe parsed")
		if g.items == nil {
			return res, nil
		}

		placements := make([]recipe.Placement, 0, len(res.Items))
		for _, it := range res.Items {
			placements = append(placements, recipe.Placement{
				Slot: it.Slot, Amount: it.Amount, Material: it.Material, Data: it.ExtraData,
			})
		}
		res.Image, err = render.RenderInventory(placements, render.InventoryOptions{
			Columns:  RecipeColumns,
			Rows:     RecipeColumns,
			Scale:    g.cfg.Render.Scale,
			Decorate: g.decorate,
		}, g.textureLookup())
		return res, err
	})
}

// InventoryRequest describes an inventory to parse and draw. Zero Columns
// and Rows fall back to the configured columns and six rows.
type InventoryRequest struct {
	Input   string `json:"input"`
	Columns int    `json:"columns,omitempty"`
	Rows    int    `json:"rows,omitempty"`
	Title   string `json:"title,omitempty"`
}

// InventoryResult carries the parsed entries, the per-slot outcome and the
// image when an item atlas is configured.
type InventoryResult struct {
	Entries    []recipe.Entry     `json:"entries"`
	Placements []recipe.Placement `json:"placements"`
	Image      *image.NRGBA       `json:"-"`
}

// Inventory parses an inventory string and renders the grid.
func (g *Generator) Inventory(ctx context.Context, req InventoryRequest) (InventoryResult, error) {
	return run(ctx, g, "inventory", func(logger zerolog.Logger) (InventoryResult, error) {
		columns := req.Columns
		if columns < 1 {
			columns = g.cfg.Render.InventoryColumns
		}
		rows := req.Rows
		if rows < 1 {
			rows = DefaultInventoryRows
		}

		entries, err := recipe.ParseInventory(req.Input, columns*rows)
		if err != nil {
			return InventoryResult{}, err
		}
		res := InventoryResult{Entries: entries, Placements: recipe.Resolve(entries)}
		logger.Debug().Int("entries", len(entries)).Int("slots", len(res.Placements)).Msg("Inventory parsed")
		if g.items == nil {
			return res, nil
		}

		res.Image, err = render.RenderInventory(res.Placements, render.InventoryOptions{
			Columns:  columns,
			Rows:     req.Rows,
			Scale:    g.cfg.Render.Scale,
			Title:    req.Title,
			Decorate: g.decorate,
		}, g.textureLookup())
		return res, err
	})
}

// ColorResult reports what an overlay makes of a color spec. Colors holds
// [overlay, base] for dual layer overlays, one color for normal overlays
// and the palette for mapped ones.
type ColorResult struct {
	Overlay string       `json:"overlay"`
	Kind    overlay.Kind `json:"kind"`
	Applied bool         `json:"applied"`
	Colors  []string     `json:"colors,omitempty"`
}

// Color resolves spec against the named overlay without drawing anything.
func (g *Generator) Color(name, spec string) (ColorResult, error) {
	o, err := g.overlays.Get(name)
	if err != nil {
		return ColorResult{}, err
	}
	res := ColorResult{Overlay: o.Name(), Kind: o.Kind()}

	switch ov := o.(type) {
	case *overlay.DualLayer:
		pair, ok := ov.ResolveColors(spec)
		if ok {
			res.Colors = hexes(pair.Overlay, pair.Base)
		}
		res.Applied = ok
	case *overlay.Normal:
		c, ok := ov.ResolveColor(spec)
		if ok {
			res.Colors = hexes(c)
		}
		res.Applied = ok
	case *overlay.Mapped:
		palette, ok := ov.ResolvePalette(spec)
		if ok {
			res.Colors = hexes(palette...)
		}
		res.Applied = ok
	}
	return res, nil
}

func hexes(cs ...color.NRGBA) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = chat.RGB(c.R, c.G, c.B).Hex()
	}
	return out
}

// ItemRequest describes a single item icon. Texture overrides the atlas
// lookup; a vertical strip texture renders as an animation. Slots may be
// omitted, in which case the amounts are numbered from one.
type ItemRequest struct {
	Material   string      `json:"material"`
	Slots      []int       `json:"slots,omitempty"`
	Amounts    []int       `json:"amounts,omitempty"`
	Durability *int        `json:"durability,omitempty"`
	Extra      string      `json:"extra,omitempty"`
	Color      string      `json:"color,omitempty"`
	Enchanted  bool        `json:"enchanted,omitempty"`
	FrameDelay int         `json:"frameDelay,omitempty"`
	Texture    image.Image `json:"-"`
}

// Item renders an item icon, applying the overlay bound to the material.
func (g *Generator) Item(ctx context.Context, req ItemRequest) (render.Result, error) {
	return run(ctx, g, "item", func(logger zerolog.Logger) (render.Result, error) {
		texture := req.Texture
		if texture == nil {
			if g.items == nil {
				return render.Result{}, errors.Generator("No texture given for item %s and no atlas configured", req.Material)
			}
			img, err := g.textureLookup().Image(req.Material)
			if err != nil {
				return render.Result{}, err
			}
			texture = img
		}

		frames := render.SplitFrames(texture)
		for i, f := range frames {
			if s := g.cfg.Render.Scale; s > 1 {
				b := f.Bounds()
				f = imaging.Resize(f, b.Dx()*s, b.Dy()*s, imaging.NearestNeighbor)
			}
			decorated, err := g.decorateTexture(req.Material, f, extras{Color: req.Color, Enchanted: req.Enchanted})
			if err != nil {
				return render.Result{}, err
			}
			frames[i] = decorated
		}

		slots := req.Slots
		if len(slots) == 0 {
			// unnumbered amounts fill consecutive slots
			for i := range req.Amounts {
				slots = append(slots, i+1)
			}
		}
		icon := render.ItemIcon{
			Slots:        slots,
			Amounts:      req.Amounts,
			Name:         req.Material,
			ExtraContent: req.Extra,
			Durability:   req.Durability,
		}
		if len(frames) > 1 {
			icon.Frames = frames
			icon.FrameDelay = req.FrameDelay
			if icon.FrameDelay <= 0 {
				icon.FrameDelay = g.cfg.Render.FrameDelay
			}
		} else {
			icon.Base = frames[0]
		}
		logger.Debug().Str("item", icon.NormalizedName()).Int("frames", len(frames)).Msg("Rendering item")
		return render.RenderItemIcon(icon)
	})
}

// HeadRequest names a skin by hash, URL, textures property or item NBT.
type HeadRequest struct {
	Skin  string `json:"skin"`
	Scale int    `json:"scale,omitempty"`
}

// Head renders an isometric player head.
func (g *Generator) Head(ctx context.Context, req HeadRequest) (*image.NRGBA, error) {
	return run(ctx, g, "head", func(logger zerolog.Logger) (*image.NRGBA, error) {
		return g.head(req.Skin, req.Scale)
	})
}

func (g *Generator) head(skinRef string, scale int) (*image.NRGBA, error) {
	if g.skins == nil {
		return nil, errors.Generator("No skin source configured")
	}
	skin, err := render.ResolveSkin(skinRef, g.skins)
	if err != nil {
		return nil, err
	}
	return render.RenderSkull(skin, g.skullOptions(scale))
}

func (g *Generator) skullOptions(scale int) render.SkullOptions {
	r := g.cfg.Render
	return render.SkullOptions{
		XRotation: r.XRotation,
		YRotation: r.YRotation,
		ZRotation: r.ZRotation,
		Width:     r.SkullSize,
		Height:    r.SkullSize,
		Scale:     scale,
	}
}

// decorate applies the extras of an inventory or recipe item.
func (g *Generator) decorate(p recipe.Placement, texture *image.NRGBA) (*image.NRGBA, error) {
	ex := parseExtras(p.Data)
	if ex.Skin != "" {
		head, err := g.head(ex.Skin, 0)
		if err != nil {
			return nil, err
		}
		b := texture.Bounds()
		texture = imaging.Resize(head, b.Dx(), b.Dy(), imaging.Box)
	}
	out, err := g.decorateTexture(p.Material, texture, ex)
	if err != nil {
		return nil, err
	}
	if ex.Durability != nil {
		return render.WithDurability(out, *ex.Durability), nil
	}
	return imaging.Clone(out), nil
}

// decorateTexture applies the item's bound overlay, an armor trim and the
// enchantment glint, in that order.
func (g *Generator) decorateTexture(material string, texture image.Image, ex extras) (image.Image, error) {
	out := texture
	// a bound overlay without a layer image only matters when a color was asked for
	if o, ok := g.overlays.ForItem(materialName(material)); ok && (o.Image() != nil || ex.Color != "") {
		img, _, err := overlay.Apply(out, o, ex.Color)
		if err != nil {
			return nil, err
		}
		out = img
	}
	if ex.Trim != "" {
		o, err := g.overlays.Get(TrimOverlay)
		if err != nil {
			return nil, err
		}
		img, _, err := overlay.Apply(out, o, ex.Trim)
		if err != nil {
			return nil, err
		}
		out = img
	}
	if ex.Enchanted {
		out = render.Glint(out)
	}
	return out, nil
}

// textureLookup strips the minecraft: namespace before asking the atlas.
func (g *Generator) textureLookup() render.ItemSource {
	return namespaced{g.items}
}

type namespaced struct {
	render.ItemSource
}

func (n namespaced) Image(name string) (*image.NRGBA, error) {
	return n.ItemSource.Image(materialName(name))
}

func materialName(material string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(material)), "minecraft:")
}
