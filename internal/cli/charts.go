package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cryptoviz/pkg/anim"
	"github.com/matzehuels/cryptoviz/pkg/chart"
)

// chartsCommand lists the available charts.
func (c *CLI) chartsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "charts",
		Short: "List the available charts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(chartTable())
			printNextStep("Render one", "cryptoviz render orbit")
			return nil
		},
	}
}

// chartTable renders the chart catalog.
func chartTable() string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := lo.Map(chart.Kinds(), func(k chart.Kind, _ int) []string {
		ch, _ := chart.Lookup(k)
		ds := ch.Datasets()
		b := ch.Bounds()
		size := fmt.Sprintf("%.0f×%.0f", b.Fallback.W, b.Fallback.H)
		return []string{string(k), ch.Description(), strings.Join(ds, ", "), size, animation(ch.Preset(ds[0]))}
	})

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Chart", "Description", "Datasets", "Size", "Animation").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return StyleHighlight
			case col == 3 || col == 4:
				return StyleNumber
			}
			return StyleValue
		}).
		Render()
}

// animation summarizes a preset as degrees per second.
func animation(p anim.Preset) string {
	if p.Clock.Static() {
		return "static"
	}
	perSec := float64(1e9) / float64(p.Interval)
	if p.Clock.Rotation.Step == 0 {
		return fmt.Sprintf("sweep %.0f/s", p.Clock.Phase.Step*perSec)
	}
	return fmt.Sprintf("%.0f°/s", p.Clock.Rotation.Step*perSec)
}
