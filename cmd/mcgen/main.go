package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/mcgen/internal/cli"
	"github.com/arthur-debert/mcgen/pkg/ui"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.RenderError(err, ui.DetectFormat(os.Stderr)))
		os.Exit(1)
	}
}
