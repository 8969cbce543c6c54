package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/mcgen/pkg/overlay"
	"github.com/arthur-debert/mcgen/pkg/ui"
)

func newColorCmd(g *globals) *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:     "color <overlay> [color]",
		Short:   MsgColorShort,
		Example: "  mcgen color leather_armor '#FF0000#00FF00'\n  mcgen color armor_trim gold\n  mcgen color --list",
		GroupID: "render",
		Args:    cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := g.generator()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			format, err := g.tableFormat(w)
			if err != nil {
				return err
			}

			if list || len(args) == 0 {
				t := ui.Table{Title: MsgOverlaysTitle, Header: []string{"Name"}}
				for _, name := range gen.Overlays().Names() {
					t.Rows = append(t.Rows, []string{name})
				}
				return ui.RenderTable(w, format, t)
			}

			spec := ""
			if len(args) > 1 {
				spec = args[1]
			}
			res, err := gen.Color(args[0], spec)
			if err != nil {
				return err
			}
			if format == ui.FormatJSON {
				return ui.RenderJSON(w, res)
			}
			if !res.Applied {
				fmt.Fprintf(w, MsgNoOverlay+"\n", res.Overlay)
				return nil
			}

			t := ui.Table{
				Title:  fmt.Sprintf(MsgColorTitle, res.Overlay, res.Kind),
				Header: []string{"Layer", "Color"},
			}
			for i, c := range res.Colors {
				t.Rows = append(t.Rows, []string{layerName(res.Kind, i), c})
			}
			return ui.RenderTable(w, format, t)
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, MsgFlagList)
	return cmd
}

func layerName(kind overlay.Kind, i int) string {
	switch kind {
	case overlay.KindDualLayer:
		if i == 0 {
			return "overlay"
		}
		return "base"
	case overlay.KindMapped:
		return fmt.Sprintf("palette[%d]", i)
	default:
		return "tint"
	}
}
