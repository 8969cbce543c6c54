package cli

import (
	"image"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/mcgen/pkg/errors"
	"github.com/arthur-debert/mcgen/pkg/generator"
	"github.com/arthur-debert/mcgen/pkg/output"
	"github.com/arthur-debert/mcgen/pkg/render"
)

func newItemCmd(g *globals) *cobra.Command {
	var (
		req         generator.ItemRequest
		durability  int
		texturePath string
		out         string
	)

	cmd := &cobra.Command{
		Use:     "item <material>",
		Short:   MsgItemShort,
		Example: "  mcgen item diamond_sword --enchanted --durability 40\n  mcgen item leather_helmet --color '#3C44AA' --amount 1 --amount 16",
		GroupID: "render",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := g.generator()
			if err != nil {
				return err
			}
			req.Material = args[0]
			if cmd.Flags().Changed("durability") {
				req.Durability = &durability
			}
			if texturePath != "" {
				img, err := loadTexture(texturePath)
				if err != nil {
					return err
				}
				req.Texture = img
			}

			res, err := gen.Item(cmd.Context(), req)
			if err != nil {
				return err
			}
			data, mediaType, err := render.Encode(res)
			if err != nil {
				return err
			}
			if out == "" {
				out = fileStem(req.Material) + extensionFor(mediaType)
			}
			return g.write(cmd, gen, output.File{Path: out, Content: data})
		},
	}

	cmd.Flags().IntSliceVar(&req.Amounts, "amount", nil, MsgFlagAmount)
	cmd.Flags().IntSliceVar(&req.Slots, "slot", nil, MsgFlagSlot)
	cmd.Flags().IntVar(&durability, "durability", 100, MsgFlagDurab)
	cmd.Flags().StringVar(&req.Extra, "extra", "", MsgFlagExtra)
	cmd.Flags().StringVar(&req.Color, "color", "", MsgFlagColor)
	cmd.Flags().BoolVar(&req.Enchanted, "enchanted", false, MsgFlagEnchanted)
	cmd.Flags().IntVar(&req.FrameDelay, "delay", 0, MsgFlagDelay)
	cmd.Flags().StringVar(&texturePath, "texture", "", MsgFlagTexture)
	cmd.Flags().StringVarP(&out, "out", "o", "", MsgFlagOut)
	return cmd
}

func newHeadCmd(g *globals) *cobra.Command {
	var (
		req generator.HeadRequest
		out string
	)

	cmd := &cobra.Command{
		Use:     "head <skin|->",
		Short:   MsgHeadShort,
		Long:    MsgHeadLong,
		Example: "  mcgen head 7c57f9192e81eb6897c24ecd4935cfb5a731a6f9a57abb51f2b35e8b4be7ebca --scale -2",
		GroupID: "render",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			skin, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			gen, err := g.generator()
			if err != nil {
				return err
			}
			req.Skin = skin

			img, err := gen.Head(cmd.Context(), req)
			if err != nil {
				return err
			}
			data, _, err := render.Encode(render.Result{Frames: []render.Frame{{Image: img}}})
			if err != nil {
				return err
			}
			if out == "" {
				out = "head.png"
			}
			return g.write(cmd, gen, output.File{Path: out, Content: data})
		},
	}

	cmd.Flags().IntVar(&req.Scale, "scale", 0, MsgFlagScale)
	cmd.Flags().StringVarP(&out, "out", "o", "", MsgFlagOut)
	return cmd
}

func loadTexture(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrNotFound, "cannot open texture %s", path)
	}
	defer func() { _ = f.Close() }()
	return render.DecodeImage(f)
}

func fileStem(material string) string {
	name := strings.ToLower(strings.TrimSpace(material))
	name = strings.TrimPrefix(name, "minecraft:")
	return strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '_' || r == '-' {
			return r
		}
		return '_'
	}, name)
}

func extensionFor(mediaType string) string {
	if mediaType == "image/gif" {
		return ".gif"
	}
	return ".png"
}
