package cli

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/mcgen/pkg/chat"
	"github.com/arthur-debert/mcgen/pkg/errors"
	"github.com/arthur-debert/mcgen/pkg/generator"
	"github.com/arthur-debert/mcgen/pkg/markup"
	"github.com/arthur-debert/mcgen/pkg/output"
	"github.com/arthur-debert/mcgen/pkg/ui"
)

func newTextCmd(g *globals) *cobra.Command {
	var (
		as     string
		width  int
		prefix string
		out    string
		frame  generator.TooltipRequest
	)

	cmd := &cobra.Command{
		Use:     "text <markup|->",
		Short:   MsgTextShort,
		Long:    MsgTextLong,
		Example: MsgTextExample,
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
			if strings.EqualFold(as, "png") {
				frame.Input, frame.Width = input, width
				img, err := gen.Tooltip(cmd.Context(), frame)
				if err != nil {
					return err
				}
				if out == "" {
					out = "tooltip.png"
				}
				return g.writeImage(cmd, gen, out, "tooltip", img)
			}

			res, err := gen.Text(cmd.Context(), input)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if as == "" {
				as = "json"
				if ui.DetectFormat(w) == ui.FormatTerminal {
					as = "ansi"
				}
			}

			var rendered string
			switch strings.ToLower(as) {
			case "ansi":
				rendered = renderLines(res.Runs, width, func(line []chat.Run) string {
					return markup.RenderANSI(line, ansiProfile(w))
				})
			case "plain":
				rendered = renderLines(res.Runs, width, markup.PlainText)
			case "legacy":
				code, size := utf8.DecodeRuneInString(prefix)
				if code == utf8.RuneError || size != len(prefix) {
					return errors.Newf(errors.ErrInvalidInput, MsgErrPrefix, prefix)
				}
				rendered = markup.ToLegacy(res.Runs, code)
			case "json":
				data, err := markup.ToJSON(res.Runs)
				if err != nil {
					return errors.Wrap(err, errors.ErrInternal, "failed to encode components")
				}
				rendered = string(data)
			case "svg":
				svg, err := markup.RenderSVG(res.Runs, markup.DefaultSVGOptions())
				if err != nil {
					return err
				}
				if out != "" {
					return g.write(cmd, gen, output.File{Path: out, Content: []byte(svg)})
				}
				rendered = svg
			default:
				return errors.Newf(errors.ErrInvalidInput, MsgErrTextFormat, as)
			}

			fmt.Fprintln(w, rendered)
			return nil
		},
	}

	cmd.Flags().StringVar(&as, "as", "", MsgFlagAs)
	cmd.Flags().IntVarP(&width, "width", "w", 0, MsgFlagWidth)
	cmd.Flags().StringVar(&prefix, "prefix", "&", MsgFlagPrefix)
	cmd.Flags().StringVarP(&out, "out", "o", "", MsgFlagOut)
	cmd.Flags().BoolVar(&frame.Centered, "centered", false, MsgFlagCentered)
	cmd.Flags().BoolVar(&frame.FirstLineGap, "first-line-gap", false, MsgFlagFirstLineGap)
	cmd.Flags().BoolVar(&frame.NoBorder, "no-border", false, MsgFlagNoBorder)
	cmd.Flags().IntVar(&frame.Padding, "padding", 0, MsgFlagPadding)
	cmd.Flags().IntVar(&frame.Alpha, "alpha", 0, MsgFlagAlpha)

	return cmd
}

// ansiProfile uses the terminal's profile, or true color when ANSI output
// was asked for explicitly on a pipe.
func ansiProfile(w io.Writer) termenv.Profile {
	if ui.DetectFormat(w) == ui.FormatTerminal {
		return termenv.ColorProfile()
	}
	return termenv.TrueColor
}

// renderLines wraps runs when width is positive and renders each line.
func renderLines(runs []chat.Run, width int, render func([]chat.Run) string) string {
	if width <= 0 {
		return render(runs)
	}
	lines := markup.Wrap(runs, width)
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = render(line)
	}
	return strings.Join(out, "\n")
}
