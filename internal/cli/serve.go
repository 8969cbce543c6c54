package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/mcgen/pkg/generator"
	"github.com/arthur-debert/mcgen/pkg/server"
)

func newServeCmd(g *globals) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:     "serve",
		Short:   MsgServeShort,
		GroupID: "render",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := map[string]interface{}{}
			if addr != "" {
				overrides["server.addr"] = addr
			}
			cfg, err := g.loadConfig(overrides)
			if err != nil {
				return err
			}
			gen, err := generator.New(cfg, generator.Sources{})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(cmd.OutOrStdout(), MsgServerListening+"\n", cfg.Server.Addr)
			return server.New(gen).ListenAndServe(ctx, cfg.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", MsgFlagAddr)
	return cmd
}

