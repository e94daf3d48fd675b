package chart

import (
	"github.com/samber/lo"

	"github.com/matzehuels/cryptoviz/pkg/anim"
	"github.com/matzehuels/cryptoviz/pkg/geom"
	"github.com/matzehuels/cryptoviz/pkg/mock"
	"github.com/matzehuels/cryptoviz/pkg/scene"
	"github.com/matzehuels/cryptoviz/pkg/viewport"
)

const (
	defaultSymbol = "BTC"

	sparkInset = 1.0
)

type sparkChart struct{}

func (sparkChart) Kind() Kind { return KindSpark }

func (sparkChart) Description() string {
	return "Inline price sparkline for one asset"
}

func (sparkChart) Datasets() []string { return []string{datasetMarkets} }

func (sparkChart) Bounds() viewport.Bounds { return viewport.Spark }

func (sparkChart) Preset(string) anim.Preset { return anim.Still }

func sparkValues(v View) []float64 {
	if v.Data != nil && v.Data.Values != nil {
		return v.Data.Values
	}
	if a, ok := mock.AssetBySymbol(v.Symbol); ok {
		return a.History
	}
	return nil
}

func (sparkChart) Build(v View) *scene.Scene {
	s := scene.New(string(KindSpark), v.Size.W, v.Size.H)
	values := sparkValues(v)
	if len(values) == 0 {
		return s
	}

	pts := geom.Sparkline(values, v.Size.W-2*sparkInset, v.Size.H-2*sparkInset)
	pts = lo.Map(pts, func(p geom.Point, _ int) geom.Point {
		return geom.Point{X: p.X + sparkInset, Y: p.Y + sparkInset}
	})
	paint := scene.PaintUp
	if values[len(values)-1] < values[0] {
		paint = scene.PaintDown
	}
	s.Add(scene.Polyline(pts).WithStroke(paint, 1.5).WithID("spark-" + v.Symbol))
	return s
}
