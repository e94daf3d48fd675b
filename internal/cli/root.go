package cli

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cryptoviz/pkg/buildinfo"
	"github.com/matzehuels/cryptoviz/pkg/observability"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// Configuration is loaded in PersistentPreRunE, so every subcommand sees
// the layered config (defaults, file, .env, environment) before its own
// flags are applied. The logger is attached to the command context and is
// available to helpers via loggerFromContext. With --verbose, pipeline,
// cache and stream events are logged as well.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Cryptoviz renders animated crypto dashboard charts",
		Long:         `Cryptoviz lays out radial, arc, network and candlestick charts for crypto dashboards and renders them as SVG, PNG, PDF, JSON or DOT, or streams them live over a websocket.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			if c.Logger.GetLevel() <= log.DebugLevel {
				observability.Register(observability.NewLogHooks(c.Logger))
			}
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (.toml or .yaml)")

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.renderAllCommand())
	root.AddCommand(c.chartsCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}
