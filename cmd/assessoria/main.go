package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mErro:\033[0m %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "assessoria",
		Short: "Site institucional da Assessoria Parlamentar",
		Long: `assessoria serves the Assessoria Parlamentar brochure site.

Pages are rendered on the server and work without JavaScript. When the
browser supports it, a websocket session drives the contact form and the
scroll reveal animations.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a TOML config file")

	rootCmd.AddCommand(
		serveCmd(&configPath),
		contatoCmd(&configPath),
		checkCmd(&configPath),
		versionCmd(),
	)
	return rootCmd
}
