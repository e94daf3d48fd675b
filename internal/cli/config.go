package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// configCommand prints the effective configuration.
func (c *CLI) configCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration after layering defaults, the config file, .env
and CRYPTOVIZ_* environment variables. Secrets are masked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.Config.Path != "" {
				printDetail("# %s", c.Config.Path)
			}
			fmt.Print(c.Config.String())
			return nil
		},
	}
}
