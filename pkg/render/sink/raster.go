package sink

import (
	"context"

	"github.com/matzehuels/cryptoviz/pkg/render"
	"github.com/matzehuels/cryptoviz/pkg/scene"
)

// RasterOption configures PNG and PDF output. Both draw the SVG frame
// first and hand it to rsvg-convert.
type RasterOption func(*raster)

type raster struct {
	svg   []SVGOption
	scale float64
}

// WithSVG sets the options for the intermediate SVG.
func WithSVG(opts ...SVGOption) RasterOption {
	return func(r *raster) { r.svg = opts }
}

// WithScale sets the PNG pixel ratio. Zero keeps the default of 2.
func WithScale(s float64) RasterOption {
	return func(r *raster) {
		if s > 0 {
			r.scale = s
		}
	}
}

func newRaster(opts []RasterOption) raster {
	r := raster{scale: 2}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderPNG renders the scene as a PNG image.
func RenderPNG(ctx context.Context, s *scene.Scene, opts ...RasterOption) ([]byte, error) {
	r := newRaster(opts)
	return render.ToPNG(ctx, RenderSVG(s, r.svg...), r.scale)
}

// RenderPDF renders the scene as a single-page PDF. The scale option does
// not apply.
func RenderPDF(ctx context.Context, s *scene.Scene, opts ...RasterOption) ([]byte, error) {
	r := newRaster(opts)
	return render.ToPDF(ctx, RenderSVG(s, r.svg...))
}
