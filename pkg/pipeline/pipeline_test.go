package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/matzehuels/cryptoviz/pkg/anim"
	"github.com/matzehuels/cryptoviz/pkg/cache"
	"github.com/matzehuels/cryptoviz/pkg/chart"
	"github.com/matzehuels/cryptoviz/pkg/errors"
	"github.com/matzehuels/cryptoviz/pkg/market"
	"github.com/matzehuels/cryptoviz/pkg/mock"
	"github.com/matzehuels/cryptoviz/pkg/render"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"dot", false},
		{"graph", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateStyle(t *testing.T) {
	tests := []struct {
		style   string
		wantErr bool
	}{
		{"cyber", false},
		{"neural", false},
		{"invalid", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateStyle(tt.style)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateStyle(%q) error = %v, wantErr %v", tt.style, err, tt.wantErr)
		}
	}
}

func TestContentType(t *testing.T) {
	for _, f := range Formats() {
		if ContentType(f) == "application/octet-stream" {
			t.Errorf("ContentType(%q) has no MIME type", f)
		}
	}
	if got := ContentType("gif"); got != "application/octet-stream" {
		t.Errorf("ContentType(gif) = %q", got)
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Hover: chart.NoHover}
	opts.SetDefaults()

	if opts.Chart != DefaultChart {
		t.Errorf("Chart = %q, want %q", opts.Chart, DefaultChart)
	}
	if opts.Style != DefaultStyle {
		t.Errorf("Style = %q, want %q", opts.Style, DefaultStyle)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale = %v, want %v", opts.Scale, DefaultScale)
	}
	if opts.Seed != mock.DefaultSeed {
		t.Errorf("Seed = %d, want %d", opts.Seed, mock.DefaultSeed)
	}
	if opts.Range != "ALL" || opts.Mode != "line" {
		t.Errorf("Range/Mode = %q/%q", opts.Range, opts.Mode)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v", opts.Formats)
	}
	if opts.Logger == nil {
		t.Error("Logger should be set")
	}

	// Idempotent
	before := opts
	opts.SetDefaults()
	if opts.Chart != before.Chart || opts.Scale != before.Scale || opts.Logger != before.Logger {
		t.Error("SetDefaults is not idempotent")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"defaults", Options{}, ""},
		{"case-insensitive chart", Options{Chart: "Orbit"}, ""},
		{"unknown chart", Options{Chart: "pie"}, errors.ErrCodeInvalidChart},
		{"unknown dataset", Options{Chart: "allocation", Dataset: "bonds"}, errors.ErrCodeInvalidDataset},
		{"bad range", Options{Chart: "insight", Range: "2Y"}, errors.ErrCodeInvalidRange},
		{"bad mode", Options{Chart: "insight", Mode: "bar"}, errors.ErrCodeInvalidMode},
		{"negative width", Options{Width: -1}, errors.ErrCodeInvalidDimensions},
		{"nan rotation", Options{Rotation: math.NaN()}, errors.ErrCodeInvalidInput},
		{"inf phase", Options{Phase: math.Inf(1)}, errors.ErrCodeInvalidInput},
		{"negative scale", Options{Scale: -2}, errors.ErrCodeInvalidInput},
		{"bad format", Options{Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"bad style", Options{Style: "retro"}, errors.ErrCodeInvalidStyle},
		{"dot on insight", Options{Chart: "insight", Formats: []string{"dot"}}, errors.ErrCodeUnsupported},
		{"dot on network", Options{Chart: "network", Formats: []string{"dot"}}, ""},
		{"graph on spark", Options{Chart: "spark", Formats: []string{"graph"}}, errors.ErrCodeUnsupported},
		{"inverted candle", Options{Chart: "insight", Mode: "candle", Data: &chart.Data{
			Candles: []market.Candle{{Open: 10, High: 9, Low: 8, Close: 9.5}},
		}}, errors.ErrCodeInvalidInput},
		{"valid candle", Options{Chart: "insight", Mode: "candle", Data: &chart.Data{
			Candles: []market.Candle{{Open: 10, High: 12, Low: 8, Close: 9.5}},
		}}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.code == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.code) {
				t.Fatalf("Validate() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestValidateNormalizes(t *testing.T) {
	opts := Options{
		Chart:   "ORBIT",
		Style:   "Neural",
		Formats: []string{"SVG", " json", "svg"},
	}
	if err := opts.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if opts.Chart != "orbit" {
		t.Errorf("Chart = %q", opts.Chart)
	}
	if opts.Style != "neural" {
		t.Errorf("Style = %q", opts.Style)
	}
	if len(opts.Formats) != 2 || opts.Formats[0] != "svg" || opts.Formats[1] != "json" {
		t.Errorf("Formats = %v", opts.Formats)
	}
}

func TestViewCarriesClock(t *testing.T) {
	opts := Options{Chart: "orbit", Rotation: 90, Phase: 0.5}
	if err := opts.Validate(); err != nil {
		t.Fatal(err)
	}
	v, err := opts.View()
	if err != nil {
		t.Fatal(err)
	}
	if v.Clock.Angle() != 90 {
		t.Errorf("Angle = %v, want 90", v.Clock.Angle())
	}
	if v.Clock.Phase.Value != 0.5 {
		t.Errorf("Phase = %v, want 0.5", v.Clock.Phase.Value)
	}
	if v.Clock.Static() {
		t.Error("orbit clock should animate")
	}
}

func TestWithClock(t *testing.T) {
	base := Options{Chart: "orbit"}
	next := base.WithClock(anim.NewClock(1).At(45))
	if next.Rotation != 45 {
		t.Errorf("Rotation = %v, want 45", next.Rotation)
	}
	if base.Rotation != 0 {
		t.Error("WithClock modified the receiver")
	}
}

func TestFrameKeyDiffersByRotation(t *testing.T) {
	k := cache.NewDefaultKeyer()
	a := Options{Chart: "orbit"}
	b := Options{Chart: "orbit", Rotation: 1}
	_ = a.Validate()
	_ = b.Validate()
	if k.FrameKey(a.FrameKeyOpts()) == k.FrameKey(b.FrameKeyOpts()) {
		t.Error("frames at different rotations share a key")
	}
}

func TestScene(t *testing.T) {
	for _, k := range chart.Kinds() {
		t.Run(string(k), func(t *testing.T) {
			s, err := Scene(Options{Chart: string(k), Hover: chart.NoHover})
			if err != nil {
				t.Fatalf("Scene() error = %v", err)
			}
			if len(s.Items) == 0 {
				t.Error("scene is empty")
			}
		})
	}
}

func TestExecuteSVG(t *testing.T) {
	c, err := cache.NewMemoryCache()
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	r := NewRunner(c, nil, nil)

	opts := Options{Chart: "allocation", Hover: chart.NoHover, Formats: []string{"svg", "json"}}
	res, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.CacheHit {
		t.Error("first run should miss")
	}
	if !bytes.HasPrefix(res.Artifacts["svg"], []byte("<svg")) {
		t.Errorf("svg artifact = %.40q", res.Artifacts["svg"])
	}
	if !json.Valid(res.Artifacts["json"]) {
		t.Error("json artifact is not valid JSON")
	}
	if res.FrameHash == "" || res.Stats.Items == 0 {
		t.Errorf("Result = %+v", res)
	}

	again, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !again.CacheHit {
		t.Error("second run should hit")
	}
	if again.FrameHash != res.FrameHash {
		t.Error("frame hash changed between runs")
	}
	if !bytes.Equal(again.Artifacts["svg"], res.Artifacts["svg"]) {
		t.Error("cached svg differs")
	}
	if again.Scene == nil || again.Stats.Items != res.Stats.Items {
		t.Error("a cache hit still builds the scene")
	}
}

func TestExecuteSkipsCacheForCallerData(t *testing.T) {
	c, err := cache.NewMemoryCache()
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	r := NewRunner(c, nil, nil)

	opts := Options{
		Chart: "spark",
		Hover: chart.NoHover,
		Data:  &chart.Data{Values: []float64{3, 2, 1}},
	}
	for range 2 {
		res, err := r.Execute(context.Background(), opts)
		if err != nil {
			t.Fatal(err)
		}
		if res.CacheHit {
			t.Error("caller data must not be served from cache")
		}
	}
	if c.Len() != 0 {
		t.Errorf("cache holds %d entries, want 0", c.Len())
	}
}

func TestExecuteDOT(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{
		Chart:   "network",
		Hover:   chart.NoHover,
		Formats: []string{"dot"},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !bytes.Contains(res.Artifacts["dot"], []byte("graph")) {
		t.Errorf("dot artifact = %q", res.Artifacts["dot"])
	}
}

func TestExecuteGraph(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{
		Chart:   "halfeye",
		Hover:   chart.NoHover,
		Formats: []string{FormatGraph},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !bytes.Contains(res.Artifacts[FormatGraph], []byte("<svg")) {
		t.Errorf("graph artifact is not SVG: %.80q", res.Artifacts[FormatGraph])
	}
}

func TestExtension(t *testing.T) {
	if got := Extension(FormatGraph); got != "graph.svg" {
		t.Errorf("Extension(graph) = %q", got)
	}
	if got := Extension(FormatPNG); got != "png" {
		t.Errorf("Extension(png) = %q", got)
	}
}

func TestExecuteInvalid(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, err := r.Execute(context.Background(), Options{Chart: "pie"})
	if !errors.Is(err, errors.ErrCodeInvalidChart) {
		t.Errorf("error = %v, want INVALID_CHART", err)
	}
}

func TestExecutePNG(t *testing.T) {
	if !render.Available() {
		t.Skip("rsvg-convert not installed")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(ctx, Options{Chart: "orbit", Hover: chart.NoHover, Formats: []string{"png"}})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !bytes.HasPrefix(res.Artifacts["png"], []byte("\x89PNG")) {
		t.Error("png artifact has no PNG signature")
	}
}

func TestRenderFormatErrorCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want errors.Code
	}{
		{"missing converter", fmt.Errorf("%w: png", render.ErrNoConverter), errors.ErrCodeUnsupported},
		{"deadline", context.DeadlineExceeded, errors.ErrCodeTimeout},
		{"sink failure", stderrors.New("broken pipe"), errors.ErrCodeInternal},
		{"already coded", errors.New(errors.ErrCodeInvalidStyle, "x"), errors.ErrCodeInvalidStyle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.GetCode(classify("png", tt.err)); got != tt.want {
				t.Errorf("code = %q, want %q", got, tt.want)
			}
		})
	}
	if err := classify("png", context.Canceled); err != context.Canceled {
		t.Errorf("canceled = %v, want context.Canceled unchanged", err)
	}
}

func TestRenderFormatUnknown(t *testing.T) {
	s, err := Scene(Options{Chart: "orbit"})
	if err != nil {
		t.Fatal(err)
	}
	_, err = RenderFormat(context.Background(), s, "gif", Options{Chart: "orbit", Style: "cyber"})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("err = %v, want INVALID_FORMAT", err)
	}
}
