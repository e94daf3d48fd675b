package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cryptoviz/pkg/chart"
	"github.com/matzehuels/cryptoviz/pkg/pipeline"
)

// renderFlags holds the command-line flags for the render command. Flags
// left unset keep the values from the configuration.
type renderFlags struct {
	output   string // output file (single format) or base path
	formats  string // comma-separated output formats
	dataFile string // JSON file with chart.Data overrides
	noCache  bool
}

// renderCommand creates the render command for generating chart files.
func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlags
	var opts pipeline.Options

	cmd := &cobra.Command{
		Use:   "render <chart>",
		Short: "Render a chart to SVG, PNG, PDF, JSON or DOT",
		Long: `Render one chart frame.

The chart is laid out at the given rotation and phase and written to one
file per format. Without --output, files are named after the chart
(orbit.svg, orbit.png). Use --output - to write a single format to stdout.

Network charts also export DOT and a Graphviz-drawn SVG (format graph).`,
		Example: `  cryptoviz render orbit
  cryptoviz render insight --range 1W --mode candle -f svg,png
  cryptoviz render network --format dot --detailed -o network.dot
  cryptoviz render spark --data values.json`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeCharts,
		PreRun: func(cmd *cobra.Command, args []string) {
			// Config is loaded by now; copy it under any explicit flags.
			base := c.baseOptions(args[0])
			mergeUnset(cmd, &opts, base)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Chart = args[0]
			opts.Formats = parseFormats(flags.formats)
			if flags.dataFile != "" {
				d, err := readData(flags.dataFile)
				if err != nil {
					return err
				}
				opts.Data = d
			}
			return c.runRender(cmd.Context(), opts, flags)
		},
	}

	addViewFlags(cmd, &opts)
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (single format) or base path")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot, graph (comma-separated)")
	cmd.Flags().StringVar(&flags.dataFile, "data", "", "JSON file with chart data overrides (- for stdin)")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable the render cache")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)

	return cmd
}

// addViewFlags binds the frame and render flags shared by render,
// render-all and watch.
func addViewFlags(cmd *cobra.Command, opts *pipeline.Options) {
	f := cmd.Flags()
	f.StringVar(&opts.Dataset, "dataset", "", "chart dataset")
	f.Float64Var(&opts.Width, "width", 0, "container width in pixels")
	f.Float64Var(&opts.Height, "height", 0, "container height in pixels")
	f.StringVar(&opts.Range, "range", "", "time range for the insight chart")
	f.StringVar(&opts.Mode, "mode", "", "series mode: line or candle")
	f.Uint64Var(&opts.Seed, "seed", 0, "mock data seed")
	f.Float64Var(&opts.Rotation, "rotation", 0, "rotation angle in degrees")
	f.Float64Var(&opts.Phase, "phase", 0, "scan line or flow phase")
	f.IntVar(&opts.Hover, "hover", chart.NoHover, "hovered item index (-1 for none)")
	f.StringVar(&opts.HoverID, "hover-id", "", "hovered network node ID")
	f.BoolVar(&opts.ShowMA, "ma", true, "show the moving average")
	f.BoolVar(&opts.ShowPrediction, "prediction", true, "show the prediction")
	f.BoolVar(&opts.ShowVolume, "volume", true, "show volume bars")
	f.StringVar(&opts.Symbol, "symbol", "", "asset symbol label")
	f.StringVar(&opts.Style, "style", "", "visual style: cyber, neural")
	f.Float64Var(&opts.Scale, "scale", 0, "PNG scale factor")
	f.BoolVar(&opts.Interactive, "interactive", false, "embed hover data attributes in SVG")
	f.BoolVar(&opts.Watermark, "watermark", false, "add a watermark to SVG")
	f.BoolVar(&opts.Detailed, "detailed", false, "label DOT nodes with weight and category")
	registerViewCompletions(cmd)
}

// mergeUnset fills the options whose flags were not given from base.
func mergeUnset(cmd *cobra.Command, opts *pipeline.Options, base pipeline.Options) {
	changed := cmd.Flags().Changed
	if !changed("width") {
		opts.Width = base.Width
	}
	if !changed("height") {
		opts.Height = base.Height
	}
	if !changed("range") {
		opts.Range = base.Range
	}
	if !changed("mode") {
		opts.Mode = base.Mode
	}
	if !changed("seed") {
		opts.Seed = base.Seed
	}
	if !changed("style") {
		opts.Style = base.Style
	}
	if !changed("scale") {
		opts.Scale = base.Scale
	}
	if !changed("watermark") {
		opts.Watermark = base.Watermark
	}
}

// runRender executes the pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, flags renderFlags) error {
	logger := chartLogger(ctx, opts.Chart)

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	opts.Logger = logger
	start := time.Now()
	res, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if flags.output == "-" {
		if len(opts.Formats) != 1 {
			return fmt.Errorf("stdout output needs exactly one format, got %d", len(opts.Formats))
		}
		return writeOutput(os.Stdout, res.Artifacts[opts.Formats[0]])
	}

	size := 0
	for _, format := range opts.Formats {
		path := outputPath(flags.output, opts.Chart, format, len(opts.Formats))
		if err := writeFile(path, res.Artifacts[format]); err != nil {
			return err
		}
		size += len(res.Artifacts[format])
		printFile(path)
	}
	printStats(res.Stats.Items, size, elapsed, res.CacheHit)
	return nil
}

// outputPath picks the file for one format. A single format writes to
// output as given; several formats use output as a base path.
func outputPath(output, kind, format string, n int) string {
	if output == "" {
		return kind + "." + pipeline.Extension(format)
	}
	if n == 1 {
		return output
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		output = strings.TrimSuffix(output, ext)
	}
	return output + "." + pipeline.Extension(format)
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := writeOutput(f, data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeOutput(w io.Writer, data []byte) error {
	_, err := w.Write(data)
	return err
}
