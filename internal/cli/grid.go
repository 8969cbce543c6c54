package cli

import (
	"bytes"
	"image"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/mcgen/pkg/errors"
	"github.com/arthur-debert/mcgen/pkg/generator"
	"github.com/arthur-debert/mcgen/pkg/output"
	"github.com/arthur-debert/mcgen/pkg/recipe"
	"github.com/arthur-debert/mcgen/pkg/render"
	"github.com/arthur-debert/mcgen/pkg/ui"
)

func newRecipeCmd(g *globals) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:     "recipe <recipe|->",
		Short:   MsgRecipeShort,
		Long:    MsgRecipeLong,
		Example: "  mcgen recipe '1,oak_planks%%4,oak_planks%%5,stick:4'",
		GroupID: "render",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			gen, err := g.generator()
			if err != nil {
				return err
			}
			res, err := gen.Recipe(cmd.Context(), input)
			if err != nil {
				return err
			}

			if out != "" {
				return g.writeImage(cmd, gen, out, "recipe", res.Image)
			}
			format, err := g.tableFormat(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if format == ui.FormatJSON {
				return ui.RenderJSON(cmd.OutOrStdout(), res)
			}
			return ui.RenderTable(cmd.OutOrStdout(), format, recipeTable(res.Items))
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", MsgFlagOut)
	return cmd
}

func recipeTable(items []recipe.Item) ui.Table {
	t := ui.Table{Title: MsgRecipeTitle, Header: []string{"Slot", "Material", "Amount", "Extra"}}
	for _, it := range items {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(it.Slot), it.Material, strconv.Itoa(it.Amount), it.ExtraData,
		})
	}
	return t
}

func newInventoryCmd(g *globals) *cobra.Command {
	var (
		req generator.InventoryRequest
		out string
	)

	cmd := &cobra.Command{
		Use:     "inventory <inventory|->",
		Short:   MsgInventoryShort,
		Long:    MsgInventoryLong,
		Example: "  mcgen inventory 'diamond_sword,enchanted:1%%cobblestone:[2-5]64' --rows 1",
		GroupID: "render",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			gen, err := g.generator()
			if err != nil {
				return err
			}
			req.Input = input
			res, err := gen.Inventory(cmd.Context(), req)
			if err != nil {
				return err
			}

			if out != "" {
				return g.writeImage(cmd, gen, out, "inventory", res.Image)
			}
			format, err := g.tableFormat(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if format == ui.FormatJSON {
				return ui.RenderJSON(cmd.OutOrStdout(), res)
			}
			return ui.RenderTable(cmd.OutOrStdout(), format, inventoryTable(req.Title, res.Placements))
		},
	}

	cmd.Flags().IntVar(&req.Columns, "columns", 0, MsgFlagColumns)
	cmd.Flags().IntVar(&req.Rows, "rows", generator.DefaultInventoryRows, MsgFlagRows)
	cmd.Flags().StringVar(&req.Title, "title", "", MsgFlagTitle)
	cmd.Flags().StringVarP(&out, "out", "o", "", MsgFlagOut)
	return cmd
}

func inventoryTable(title string, placements []recipe.Placement) ui.Table {
	if title == "" {
		title = MsgInventoryTitle
	}
	t := ui.Table{Title: title, Header: []string{"Slot", "Material", "Amount", "Extra"}}
	for _, p := range placements {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(p.Slot), p.Material, strconv.Itoa(p.Amount), p.Data,
		})
	}
	return t
}

// writeImage encodes a grid image to PNG and writes it. A nil image means
// no atlas was configured.
func (g *globals) writeImage(cmd *cobra.Command, gen *generator.Generator, path, what string, img *image.NRGBA) error {
	if img == nil {
		return errors.Newf(errors.ErrInvalidInput, MsgErrNoAtlas, what)
	}
	var buf bytes.Buffer
	if err := render.EncodePNG(&buf, img); err != nil {
		return err
	}
	return g.write(cmd, gen, output.File{Path: path, Content: buf.Bytes()})
}
