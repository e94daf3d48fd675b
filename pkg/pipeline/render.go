package pipeline

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/matzehuels/cryptoviz/pkg/chart"
	"github.com/matzehuels/cryptoviz/pkg/errors"
	"github.com/matzehuels/cryptoviz/pkg/observability"
	"github.com/matzehuels/cryptoviz/pkg/render"
	"github.com/matzehuels/cryptoviz/pkg/render/nodelink"
	"github.com/matzehuels/cryptoviz/pkg/render/sink"
	"github.com/matzehuels/cryptoviz/pkg/render/styles"
	"github.com/matzehuels/cryptoviz/pkg/scene"
)

// Scene validates the options and builds the frame.
func Scene(opts Options) (*scene.Scene, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return buildScene(context.Background(), opts)
}

func buildScene(ctx context.Context, opts Options) (*scene.Scene, error) {
	v, err := opts.View()
	if err != nil {
		return nil, err
	}
	start := time.Now()
	s, err := chart.Build(v)
	if err != nil {
		return nil, err
	}
	observability.Render().OnBuild(ctx, opts.Chart, len(s.Items), time.Since(start))
	return s, nil
}

// RenderFormat renders one format of a built scene. Failures carry an
// error code: UNSUPPORTED when an external tool is missing, TIMEOUT when
// ctx expires and INTERNAL_ERROR otherwise.
func RenderFormat(ctx context.Context, s *scene.Scene, format string, opts Options) ([]byte, error) {
	out, err := renderFormat(ctx, s, format, opts)
	if err != nil {
		return nil, classify(format, err)
	}
	return out, nil
}

func renderFormat(ctx context.Context, s *scene.Scene, format string, opts Options) ([]byte, error) {
	theme, ok := styles.Lookup(opts.Style)
	if !ok {
		return nil, ValidateStyle(opts.Style)
	}

	switch format {
	case FormatSVG:
		return sink.RenderSVG(s, svgOptions(theme, opts)...), nil
	case FormatPNG:
		return sink.RenderPNG(ctx, s, sink.WithSVG(svgOptions(theme, opts)...), sink.WithScale(opts.Scale))
	case FormatPDF:
		return sink.RenderPDF(ctx, s, sink.WithSVG(svgOptions(theme, opts)...))
	case FormatJSON:
		return sink.RenderJSON(s, sink.WithJSONTheme(theme), sink.WithJSONIndent())
	case FormatDOT:
		return renderDOT(opts)
	case FormatGraph:
		dot, err := renderDOT(opts)
		if err != nil {
			return nil, err
		}
		return nodelink.RenderSVG(ctx, string(dot))
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
}

func classify(format string, err error) error {
	switch {
	case errors.GetCode(err) != "":
		return err
	case stderrors.Is(err, render.ErrNoConverter):
		return errors.Wrap(errors.ErrCodeUnsupported, err, "%s output unavailable", format)
	case stderrors.Is(err, context.DeadlineExceeded):
		return errors.Wrap(errors.ErrCodeTimeout, err, "%s render timed out", format)
	case stderrors.Is(err, context.Canceled):
		return err
	}
	return errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
}

func svgOptions(theme styles.Theme, opts Options) []sink.SVGOption {
	svgOpts := []sink.SVGOption{sink.WithTheme(theme)}
	if opts.Interactive {
		svgOpts = append(svgOpts, sink.WithInteraction())
	}
	if opts.Watermark {
		svgOpts = append(svgOpts, sink.WithWatermark(DefaultWatermark))
	}
	return svgOpts
}

// renderDOT exports the chart's network. Charts with fixed node offsets
// are pinned so Graphviz keeps the dashboard arrangement.
func renderDOT(opts Options) ([]byte, error) {
	v, err := opts.View()
	if err != nil {
		return nil, err
	}
	net, scale, ok := chart.Network(v)
	if !ok {
		return nil, errors.New(errors.ErrCodeUnsupported, "chart %s has no network", opts.Chart)
	}
	dot := nodelink.ToDOT(net, nodelink.Options{
		Detailed: opts.Detailed,
		Pinned:   scale > 0,
		Scale:    scale,
	})
	return []byte(dot), nil
}
