package chart

import (
	"math"
	"strconv"

	"github.com/samber/lo"

	"github.com/matzehuels/cryptoviz/pkg/anim"
	"github.com/matzehuels/cryptoviz/pkg/geom"
	"github.com/matzehuels/cryptoviz/pkg/market"
	"github.com/matzehuels/cryptoviz/pkg/mock"
	"github.com/matzehuels/cryptoviz/pkg/scene"
	"github.com/matzehuels/cryptoviz/pkg/viewport"
)

const (
	datasetPortfolio = "portfolio"

	insightPadTop    = 40.0
	insightPadRight  = 80.0
	insightPadBottom = 40.0
	insightPadLeft   = 80.0

	insightLevels  = 8
	insightColumns = 12
	insightTicks   = 6
)

type insightChart struct{}

func (insightChart) Kind() Kind { return KindInsight }

func (insightChart) Description() string {
	return "Portfolio value as a line or candles with volume, moving average and forecast"
}

func (insightChart) Datasets() []string { return []string{datasetPortfolio} }

func (insightChart) Bounds() viewport.Bounds { return viewport.Panel }

func (insightChart) Preset(string) anim.Preset { return anim.Still }

func (insightChart) Build(v View) *scene.Scene {
	s := scene.New(string(KindInsight), v.Size.W, v.Size.H)
	frame := s.Frame()

	candleMode := v.Mode == market.ModeCandle
	withVolume := candleMode && v.ShowVolume
	bottom := insightPadBottom
	if withVolume {
		bottom += geom.VolumeBand
	}
	plot := frame.Inset(insightPadTop, insightPadRight, bottom, insightPadLeft)

	gen := mock.NewGenerator(v.Seed)
	var (
		layout  geom.SeriesLayout
		labels  []string
		tip     *scene.Tooltip
		summary market.Summary
	)
	if candleMode {
		candles := candlesFor(v, gen)
		layout = geom.NewSeriesLayout(plot, len(candles), geom.CandleRange(candles).Pad(0.98, 1.02))
		labels = lo.Map(candles, func(c market.Candle, _ int) string { return c.Label })
		drawGrid(s, layout, labels, frame.Bottom()-insightPadBottom+16)
		tip = drawCandles(s, v, layout, candles, withVolume)
		summary = market.Summarize(lo.Map(candles, func(c market.Candle, _ int) float64 { return c.Close }))
	} else {
		points := seriesFor(v, gen)
		values := market.Values(points)
		series := [][]float64{values}
		if v.ShowMA {
			series = append(series, lo.Map(points, func(p market.Point, _ int) float64 { return p.MovingAverage }))
		}
		if v.ShowPrediction {
			series = append(series, lo.Map(points, func(p market.Point, _ int) float64 { return p.Prediction }))
		}
		layout = geom.NewSeriesLayout(plot, len(points), geom.ValueRange(series...).Pad(0.98, 1.02))
		labels = lo.Map(points, func(p market.Point, _ int) string { return p.Label })
		drawGrid(s, layout, labels, frame.Bottom()-insightPadBottom+16)
		tip = drawLine(s, v, layout, points)
		summary = market.Summarize(values)
	}

	s.Add(
		scene.Text(geom.Point{X: insightPadLeft, Y: insightPadTop - 16}, "PORTFOLIO "+string(v.Range), 12).
			WithFill(scene.PaintPrimary).WithAnchor(scene.AnchorStart).WithBold(),
	)
	if len(labels) > 0 {
		s.Add(
			scene.Text(geom.Point{X: frame.Right() - insightPadRight, Y: insightPadTop - 16},
				formatPrice(summary.Last)+"  "+formatChange(summary.Change), 12).
				WithFill(upDown(summary.Change >= 0)).WithAnchor(scene.AnchorEnd).WithID("summary"),
		)
	}
	for i := range s.Items {
		if s.Items[i].Kind == scene.KindText {
			s.Items[i] = scene.FitText(s.Items[i], frame)
		}
	}
	s.Tooltip = tip
	return s
}

func seriesFor(v View, gen *mock.Generator) []market.Point {
	if v.Data != nil && v.Data.Series != nil {
		return market.WithOverlays(v.Data.Series, market.DefaultMAPeriod)
	}
	return gen.Portfolio(v.Range)
}

func candlesFor(v View, gen *mock.Generator) []market.Candle {
	if v.Data != nil && v.Data.Candles != nil {
		return v.Data.Candles
	}
	return gen.OHLC(v.Range)
}

// drawGrid adds price levels with labels on the right, vertical gridlines
// and a few date labels on the baseline y.
func drawGrid(s *scene.Scene, l geom.SeriesLayout, labels []string, y float64) {
	f := l.Frame
	for _, lv := range l.Levels(insightLevels) {
		s.Add(
			scene.Line(geom.Segment{From: geom.Point{X: f.X, Y: lv.Y}, To: geom.Point{X: f.Right(), Y: lv.Y}}).
				WithStroke(scene.PaintGrid, 0.5).WithDash("2 4"),
			scene.Text(geom.Point{X: f.Right() + 8, Y: lv.Y + 4}, formatPrice(lv.Value), 10).
				WithFill(scene.PaintMuted).WithAnchor(scene.AnchorStart),
		)
	}
	for _, x := range l.Columns(insightColumns) {
		s.Add(scene.Line(geom.Segment{From: geom.Point{X: x, Y: f.Y}, To: geom.Point{X: x, Y: f.Bottom()}}).
			WithStroke(scene.PaintGrid, 0.5).WithOpacity(0.5))
	}
	if len(labels) == 0 {
		return
	}
	ticks := min(insightTicks, len(labels))
	for k := range ticks {
		i := 0
		if ticks > 1 {
			i = int(math.Round(float64(k) * float64(len(labels)-1) / float64(ticks-1)))
		}
		s.Add(scene.Text(geom.Point{X: l.X(i), Y: y}, labels[i], 10).WithFill(scene.PaintMuted))
	}
}

// clipX trims r horizontally to f.
func clipX(r, f geom.Rect) geom.Rect {
	left := math.Max(r.X, f.X)
	right := math.Min(r.Right(), f.Right())
	return geom.Rect{X: left, Y: r.Y, W: math.Max(0, right-left), H: r.H}
}

func drawLine(s *scene.Scene, v View, l geom.SeriesLayout, points []market.Point) *scene.Tooltip {
	if len(points) == 0 {
		return nil
	}
	pts := l.Points(market.Values(points))
	paint := scene.PaintUp
	if points[len(points)-1].Value < points[0].Value {
		paint = scene.PaintDown
	}

	f := l.Frame
	hull := []geom.Point{{X: f.X, Y: f.Y}, {X: f.Right(), Y: f.Bottom()}}
	s.Add(
		scene.Path(geom.AreaPath(pts, f.Bottom()), hull...).WithFill(paint).WithOpacity(0.15),
		scene.Polyline(pts).WithStroke(paint, 2).WithGlow(),
	)
	if v.ShowMA {
		ma := l.Points(lo.Map(points, func(p market.Point, _ int) float64 { return p.MovingAverage }))
		s.Add(scene.Polyline(ma).WithStroke(scene.PaintAccent, 1.5).WithDash("4 2"))
	}
	if v.ShowPrediction {
		pred := l.Points(lo.Map(points, func(p market.Point, _ int) float64 { return p.Prediction }))
		s.Add(scene.Polyline(pred).WithStroke(scene.PaintHighlight, 1).WithDash("1 3").WithOpacity(0.8))
	}

	for i, p := range pts {
		key := strconv.Itoa(i)
		slot := clipX(geom.Rect{X: p.X - l.Slot()/2, Y: f.Y, W: l.Slot(), H: f.H}, f)
		s.Add(scene.Rect(slot).WithFill(scene.PaintNone).WithID("slot-"+key).WithData("hover", key))
	}

	i, ok := v.hovered(len(points))
	if !ok {
		return nil
	}
	drawCrosshair(s, f, pts[i])
	s.Add(scene.Circle(pts[i], 4).WithFill(paint).WithStroke(scene.PaintBackground, 2))

	lines := []scene.TooltipLine{{Label: "Value", Value: formatPrice(points[i].Value)}}
	if v.ShowMA {
		lines = append(lines, scene.TooltipLine{Label: "MA" + strconv.Itoa(market.DefaultMAPeriod), Value: formatPrice(points[i].MovingAverage)})
	}
	if v.ShowPrediction {
		lines = append(lines, scene.TooltipLine{Label: "Forecast", Value: formatPrice(points[i].Prediction)})
	}
	return &scene.Tooltip{Title: points[i].Label, Lines: lines, Anchor: pts[i]}
}

func drawCandles(s *scene.Scene, v View, l geom.SeriesLayout, candles []market.Candle, withVolume bool) *scene.Tooltip {
	f := l.Frame
	if withVolume {
		band := geom.Rect{X: f.X, Y: f.Bottom() + geom.VolumeGap, W: f.W, H: geom.VolumeBand - geom.VolumeGap}
		for _, b := range geom.VolumeBars(l, candles, band) {
			s.Add(scene.Rect(b.Rect).WithFill(upDown(b.Bullish)).WithOpacity(0.4))
		}
	}
	for _, c := range geom.Candles(l, candles) {
		paint := upDown(c.Bullish)
		key := strconv.Itoa(c.Index)
		s.Add(
			scene.Line(c.Wick).WithStroke(paint, c.WickW),
			scene.Rect(c.Body).WithFill(paint).WithStroke(paint, 1).WithID("candle-"+key).WithData("hover", key),
		)
	}

	i, ok := v.hovered(len(candles))
	if !ok {
		return nil
	}
	c := candles[i]
	at := l.Point(i, c.Close)
	drawCrosshair(s, f, at)
	return &scene.Tooltip{
		Title: c.Label,
		Lines: []scene.TooltipLine{
			{Label: "Open", Value: formatPrice(c.Open)},
			{Label: "High", Value: formatPrice(c.High)},
			{Label: "Low", Value: formatPrice(c.Low)},
			{Label: "Close", Value: formatPrice(c.Close)},
			{Label: "Volume", Value: formatVolume(c.Volume)},
		},
		Anchor: at,
	}
}

func drawCrosshair(s *scene.Scene, f geom.Rect, p geom.Point) {
	s.Add(
		scene.Line(geom.Segment{From: geom.Point{X: p.X, Y: f.Y}, To: geom.Point{X: p.X, Y: f.Bottom()}}).
			WithStroke(scene.PaintHighlight, 1).WithDash("3 3"),
		scene.Line(geom.Segment{From: geom.Point{X: f.X, Y: p.Y}, To: geom.Point{X: f.Right(), Y: p.Y}}).
			WithStroke(scene.PaintHighlight, 1).WithDash("3 3"),
	)
}

func upDown(bullish bool) string {
	if bullish {
		return scene.PaintUp
	}
	return scene.PaintDown
}
