package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/cryptoviz/pkg/buildinfo"
	"github.com/matzehuels/cryptoviz/pkg/chart"
	"github.com/matzehuels/cryptoviz/pkg/config"
	"github.com/matzehuels/cryptoviz/pkg/errors"
	"github.com/matzehuels/cryptoviz/pkg/pipeline"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(s.index)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string         `json:"status"`
		Build  buildinfo.Info `json:"build"`
	}{"ok", buildinfo.Get()})
}

func (s *Server) handleCharts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalog())
}

func (s *Server) handleStreams(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.streams.List())
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(chi.URLParam(r, "format"))
	opts, err := parseOptions(chi.URLParam(r, "kind"), r.URL.Query(), s.cfg.Render)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Formats = []string{format}
	opts.Logger = s.logger.With("id", RequestID(r.Context()))

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", pipeline.ContentType(format))
	w.Header().Set("X-Frame-Hash", res.FrameHash)
	if res.CacheHit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	_, _ = w.Write(res.Artifacts[format])
}

// parseOptions reads chart options from query parameters. Absent values
// fall back to the configured render defaults; the overlay toggles
// default to on.
func parseOptions(kind string, q url.Values, defaults config.Render) (pipeline.Options, error) {
	p := queryParser{q: q}
	opts := pipeline.Options{
		Chart:          kind,
		Dataset:        q.Get("dataset"),
		Width:          p.floatVal("w", defaults.Width),
		Height:         p.floatVal("h", defaults.Height),
		Range:          p.strVal("range", defaults.Range),
		Mode:           p.strVal("mode", defaults.Mode),
		Seed:           p.uintVal("seed", defaults.Seed),
		Rotation:       p.floatVal("rotation", 0),
		Phase:          p.floatVal("phase", 0),
		Hover:          p.intVal("hover", chart.NoHover),
		HoverID:        q.Get("hover_id"),
		ShowMA:         p.boolVal("ma", true),
		ShowPrediction: p.boolVal("prediction", true),
		ShowVolume:     p.boolVal("volume", true),
		Symbol:         q.Get("symbol"),
		Style:          p.strVal("style", defaults.Style),
		Scale:          p.floatVal("scale", defaults.Scale),
		Interactive:    p.boolVal("interactive", true),
		Watermark:      p.boolVal("watermark", defaults.Watermark),
		Detailed:       p.boolVal("detailed", false),
	}
	if p.err != nil {
		return opts, p.err
	}
	return opts, opts.Validate()
}

// queryParser keeps the first parse error so callers check once.
type queryParser struct {
	q   url.Values
	err error
}

func (p *queryParser) raw(key string) (string, bool) {
	if !p.q.Has(key) || p.err != nil {
		return "", false
	}
	return p.q.Get(key), true
}

func (p *queryParser) fail(key, v string) {
	p.err = errors.New(errors.ErrCodeInvalidInput, "invalid %s: %q", key, v)
}

func (p *queryParser) strVal(key, def string) string {
	if v, ok := p.raw(key); ok && v != "" {
		return v
	}
	return def
}

func (p *queryParser) floatVal(key string, def float64) float64 {
	v, ok := p.raw(key)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.fail(key, v)
		return def
	}
	return f
}

func (p *queryParser) intVal(key string, def int) int {
	v, ok := p.raw(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(key, v)
		return def
	}
	return n
}

func (p *queryParser) uintVal(key string, def uint64) uint64 {
	v, ok := p.raw(key)
	if !ok {
		return def
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		p.fail(key, v)
		return def
	}
	return n
}

func (p *queryParser) boolVal(key string, def bool) bool {
	v, ok := p.raw(key)
	if !ok {
		return def
	}
	if v == "" {
		return true
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.fail(key, v)
		return def
	}
	return b
}

type errorBody struct {
	Code      errors.Code `json:"code,omitempty"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	msg := errors.UserMessage(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err, "id", RequestID(r.Context()))
		if errors.GetCode(err) == "" {
			msg = "internal error"
		}
	}
	writeJSON(w, status, map[string]errorBody{"error": {
		Code:      errors.GetCode(err),
		Message:   msg,
		RequestID: RequestID(r.Context()),
	}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
