package cli

import (
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cryptoviz/pkg/chart"
	"github.com/matzehuels/cryptoviz/pkg/market"
	"github.com/matzehuels/cryptoviz/pkg/pipeline"
	"github.com/matzehuels/cryptoviz/pkg/render/styles"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for cryptoviz.

Chart names, --range, --mode, --style, --format and --dataset complete
from the chart registry.

Bash:
  $ source <(cryptoviz completion bash)

Zsh:
  $ cryptoviz completion zsh > "${fpath[1]}/_cryptoviz"

Fish:
  $ cryptoviz completion fish > ~/.config/fish/completions/cryptoviz.fish

PowerShell:
  PS> cryptoviz completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}

// completeCharts completes chart names.
func completeCharts(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	kinds := lo.Map(chart.Kinds(), func(k chart.Kind, _ int) string { return string(k) })
	return withPrefix(kinds, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeDatasets completes the datasets of the chart named in args.
func completeDatasets(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	c, err := chart.Lookup(chart.Kind(args[0]))
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return withPrefix(c.Datasets(), toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeFormats completes comma-separated format lists.
func completeFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	head, last := "", toComplete
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		head, last = toComplete[:i+1], toComplete[i+1:]
	}
	out := lo.Map(withPrefix(pipeline.Formats(), last), func(f string, _ int) string { return head + f })
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

// registerViewCompletions wires value completion for the view flags.
func registerViewCompletions(cmd *cobra.Command) {
	fixed := func(values []string) cobra.CompletionFunc {
		return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return withPrefix(values, toComplete), cobra.ShellCompDirectiveNoFileComp
		}
	}
	ranges := lo.Map(market.Ranges(), func(r market.Range, _ int) string { return string(r) })
	_ = cmd.RegisterFlagCompletionFunc("range", fixed(ranges))
	_ = cmd.RegisterFlagCompletionFunc("mode", fixed([]string{string(market.ModeLine), string(market.ModeCandle)}))
	_ = cmd.RegisterFlagCompletionFunc("style", fixed(styles.Names()))
	_ = cmd.RegisterFlagCompletionFunc("dataset", completeDatasets)
}

func withPrefix(values []string, prefix string) []string {
	return lo.Filter(values, func(v string, _ int) bool {
		return strings.HasPrefix(strings.ToLower(v), strings.ToLower(prefix))
	})
}
