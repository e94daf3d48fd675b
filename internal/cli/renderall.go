package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/cryptoviz/pkg/chart"
	"github.com/matzehuels/cryptoviz/pkg/pipeline"
)

// renderAllCommand creates the render-all command, which writes every chart
// to a directory.
func (c *CLI) renderAllCommand() *cobra.Command {
	var (
		dir      string
		formats  string
		noCache  bool
		parallel int
		opts     pipeline.Options
	)

	cmd := &cobra.Command{
		Use:     "render-all",
		Short:   "Render every chart into a directory",
		Example: `  cryptoviz render-all -d out -f svg,png`,
		Args:    cobra.NoArgs,
		PreRun: func(cmd *cobra.Command, args []string) {
			mergeUnset(cmd, &opts, c.baseOptions(""))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formats)
			return c.runRenderAll(cmd.Context(), dir, opts, noCache, parallel)
		},
	}

	addViewFlags(cmd, &opts)
	// Datasets and hover targets are chart specific.
	_ = cmd.Flags().MarkHidden("dataset")
	_ = cmd.Flags().MarkHidden("hover-id")
	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "output directory")
	cmd.Flags().StringVarP(&formats, "format", "f", "", "output format(s) (comma-separated); dot and graph are written only for charts with a network")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().IntVarP(&parallel, "parallel", "p", 4, "charts rendered at once")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)

	return cmd
}

func (c *CLI) runRenderAll(ctx context.Context, dir string, base pipeline.Options, noCache bool, parallel int) error {
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	kinds := chart.Kinds()
	spinner := newSpinner(ctx, "Rendering charts")
	spinner.SetProgress(0, len(kinds))
	spinner.Start()

	start := time.Now()
	prog := newProgress(logger)
	var done atomic.Int32
	var items, size atomic.Int64
	results := make([][]string, len(kinds))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(parallel, 1))
	for i, k := range kinds {
		g.Go(func() error {
			opts := base
			opts.Chart = string(k)
			opts.Formats = formatsFor(k, base.Formats)
			opts.Logger = chartLogger(ctx, string(k))
			if len(opts.Formats) == 0 {
				opts.Logger.Debug("no supported format")
				spinner.SetProgress(int(done.Add(1)), len(kinds))
				return nil
			}
			res, err := runner.Execute(gctx, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", k, err)
			}
			for _, format := range opts.Formats {
				path := filepath.Join(dir, string(k)+"."+pipeline.Extension(format))
				if err := writeFile(path, res.Artifacts[format]); err != nil {
					return err
				}
				size.Add(int64(len(res.Artifacts[format])))
				results[i] = append(results[i], path)
			}
			items.Add(int64(res.Stats.Items))
			spinner.SetProgress(int(done.Add(1)), len(kinds))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.StopWithSuccess(fmt.Sprintf("Rendered %d charts", len(kinds)))
	prog.done("wrote charts", "dir", dir, "charts", len(kinds))
	for _, paths := range results {
		for _, p := range paths {
			printFile(p)
		}
	}
	printStats(int(items.Load()), int(size.Load()), time.Since(start), false)
	return nil
}

// formatsFor drops the network formats for charts without a network.
func formatsFor(k chart.Kind, formats []string) []string {
	v, err := chart.NewView(k)
	if err != nil {
		return formats
	}
	if _, _, ok := chart.Network(v); ok {
		return formats
	}
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		if !slices.Contains(pipeline.NetworkFormats, f) {
			out = append(out, f)
		}
	}
	return out
}
