package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cryptoviz/pkg/server"
)

// serveCommand creates the serve command, which runs the dashboard server
// until interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		fps     int
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the live dashboard over HTTP and websockets",
		Long: `Serve the dashboard page, the chart render API and one websocket per
chart that pushes animated frames. Resize, hover, range and mode messages
from the browser change the streamed view.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				c.Config.Server.Addr = addr
			}
			if cmd.Flags().Changed("fps") {
				c.Config.Server.FPS = fps
			}
			if err := c.Config.Validate(); err != nil {
				return err
			}
			return c.runServe(cmd.Context(), noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().IntVar(&fps, "fps", 0, "frame rate cap for live streams")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the render cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, noCache bool) error {
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	srv, err := server.New(c.Config, runner, logger)
	if err != nil {
		return err
	}

	printInfo("Dashboard at %s", StyleLink.Render(dashboardURL(c.Config.Server.Addr)))
	printDetail("Cache: %s", c.Config.Cache.Backend)
	err = srv.ListenAndServe(ctx)
	if err == nil || ctx.Err() != nil {
		printSuccess("Server stopped")
		return nil
	}
	return err
}

// dashboardURL turns a listen address into a browsable URL.
func dashboardURL(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		addr = "localhost" + addr
	}
	return fmt.Sprintf("http://%s/", addr)
}
