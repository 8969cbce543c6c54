// Package cli builds the mcgen command tree.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/mcgen/internal/version"
	"github.com/arthur-debert/mcgen/pkg/config"
	"github.com/arthur-debert/mcgen/pkg/errors"
	"github.com/arthur-debert/mcgen/pkg/generator"
	"github.com/arthur-debert/mcgen/pkg/logging"
	"github.com/arthur-debert/mcgen/pkg/output"
	"github.com/arthur-debert/mcgen/pkg/ui"
)

// globals holds the persistent flags shared by every command.
type globals struct {
	verbosity  int
	configPath string
	format     string
	outputDir  string
	force      bool
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	g := &globals{}

	rootCmd := &cobra.Command{
		Use:     "mcgen",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(g.verbosity)
			logging.LogCommand(cmd.Name(), args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&g.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&g.configPath, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVarP(&g.format, "format", "f", "auto", MsgFlagFormat)
	rootCmd.PersistentFlags().StringVar(&g.outputDir, "output-dir", "", MsgFlagOutputDir)
	rootCmd.PersistentFlags().BoolVar(&g.force, "force", false, MsgFlagForce)

	rootCmd.AddGroup(&cobra.Group{ID: "render", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(usageTemplate)

	rootCmd.AddCommand(newTextCmd(g))
	rootCmd.AddCommand(newRecipeCmd(g))
	rootCmd.AddCommand(newInventoryCmd(g))
	rootCmd.AddCommand(newColorCmd(g))
	rootCmd.AddCommand(newItemCmd(g))
	rootCmd.AddCommand(newHeadCmd(g))
	rootCmd.AddCommand(newServeCmd(g))
	rootCmd.AddCommand(newSyntaxCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	return rootCmd
}

// loadConfig reads the layered configuration with flag overrides applied.
func (g *globals) loadConfig(overrides map[string]interface{}) (*config.Config, error) {
	if overrides == nil {
		overrides = map[string]interface{}{}
	}
	if g.outputDir != "" {
		overrides["output.dir"] = g.outputDir
	}
	return config.Load(g.configPath, overrides)
}

func (g *globals) generator() (*generator.Generator, error) {
	cfg, err := g.loadConfig(nil)
	if err != nil {
		return nil, err
	}
	return generator.New(cfg, generator.Sources{})
}

// tableFormat returns the --format value resolved for w.
func (g *globals) tableFormat(w io.Writer) (ui.Format, error) {
	f, err := ui.ParseFormat(g.format)
	if err != nil {
		return ui.FormatAuto, err
	}
	return f.Resolve(w), nil
}

// write stores files below the configured output directory and reports
// each path on the command's output.
func (g *globals) write(cmd *cobra.Command, gen *generator.Generator, files ...output.File) error {
	written, err := output.NewWriter(gen.Config().Output.Dir).
		EnableForce(g.force).
		WriteFiles(cmd.Context(), files)
	if err != nil {
		return err
	}
	format, _ := g.tableFormat(cmd.OutOrStdout())
	for _, path := range written {
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(format, fmt.Sprintf(MsgFileWritten, path)))
		log.Info().Str("path", path).Msg("File written")
	}
	return nil
}

// readInput returns the single positional argument, or stdin when it is "-".
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 {
		return "", errors.New(errors.ErrInvalidInput, MsgErrNoInput)
	}
	if args[0] != "-" {
		return args[0], nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInvalidInput, "failed to read stdin")
	}
	input := strings.TrimRight(string(data), "\r\n")
	if input == "" {
		return "", errors.New(errors.ErrInvalidInput, MsgErrNoInput)
	}
	return input, nil
}
