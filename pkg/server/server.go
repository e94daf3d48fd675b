// Package server serves cryptoviz charts over HTTP.
//
// Routes:
//
//	GET /                          dashboard page streaming every chart
//	GET /healthz                   liveness probe
//	GET /api/charts                chart catalog (JSON)
//	GET /api/charts/{kind}.{fmt}   one rendered frame, cached
//	GET /api/streams               open live streams (JSON)
//	GET /ws/{kind}                 live frames over a websocket
//
// Each websocket owns an animation driver and a resize observer; closing
// the socket stops the driver before the handler returns.
package server

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/robfig/cron/v3"

	"github.com/matzehuels/cryptoviz/pkg/buildinfo"
	"github.com/matzehuels/cryptoviz/pkg/cache"
	"github.com/matzehuels/cryptoviz/pkg/chart"
	"github.com/matzehuels/cryptoviz/pkg/config"
	"github.com/matzehuels/cryptoviz/pkg/errors"
	"github.com/matzehuels/cryptoviz/pkg/market"
	"github.com/matzehuels/cryptoviz/pkg/pipeline"
	"github.com/matzehuels/cryptoviz/pkg/render"
)

//go:embed assets
var assets embed.FS

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 10 * time.Second

// Server is the HTTP front end.
type Server struct {
	cfg     *config.Config
	runner  *pipeline.Runner
	logger  *log.Logger
	router  chi.Router
	streams *registry
	index   []byte
}

// New creates a server. The runner's cache backs the render endpoint;
// live streams bypass it.
func New(cfg *config.Config, runner *pipeline.Runner, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		cfg:     cfg,
		runner:  runner,
		logger:  logger,
		streams: newRegistry(),
	}

	index, err := renderIndex()
	if err != nil {
		return nil, err
	}
	s.index = index
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/charts", s.handleCharts)
		r.Get("/charts/{kind}.{format}", s.handleRender)
		r.Get("/streams", s.handleStreams)
	})
	r.Get("/ws/{kind}", s.handleStream)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "no route for %s", r.URL.Path))
	})
	return r
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves until ctx is cancelled, then shuts down
// gracefully and closes every open stream.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Server.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	stop, err := s.startHousekeeping(ctx)
	if err != nil {
		return err
	}
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", s.cfg.Server.Addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "streams", s.streams.Len())
	s.streams.CloseAll()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// startHousekeeping schedules cache pruning for backends that need it.
func (s *Server) startHousekeeping(ctx context.Context) (func(), error) {
	p, ok := s.runner.Cache.(cache.Pruner)
	if !s.cfg.Housekeeping.Enabled || !ok {
		return func() {}, nil
	}

	c := cron.New()
	if _, err := c.AddFunc(s.cfg.Housekeeping.Schedule, func() { s.prune(ctx, p) }); err != nil {
		return nil, err
	}
	c.Start()
	s.logger.Debug("housekeeping scheduled", "schedule", s.cfg.Housekeeping.Schedule)
	return func() { <-c.Stop().Done() }, nil
}

func (s *Server) prune(ctx context.Context, p cache.Pruner) {
	n, err := p.Prune(ctx)
	if err != nil {
		s.logger.Warn("cache prune failed", "err", err)
		return
	}
	s.logger.Info("pruned cache", "removed", n)
}

type indexData struct {
	Version string
	Charts  []chartInfo
	Ranges  []market.Range
	Script  template.JS
}

func renderIndex() ([]byte, error) {
	tmpl, err := template.ParseFS(assets, "assets/index.html")
	if err != nil {
		return nil, err
	}
	src, err := assets.ReadFile("assets/dashboard.js")
	if err != nil {
		return nil, err
	}
	script, err := render.MinifyJS(string(src), false)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, indexData{
		Version: buildinfo.Get().Version,
		Charts:  catalog(),
		Ranges:  market.Ranges(),
		Script:  template.JS(script),
	})
	return buf.Bytes(), err
}

// chartInfo describes one chart in the catalog.
type chartInfo struct {
	Kind        chart.Kind `json:"kind"`
	Description string     `json:"description"`
	Datasets    []string   `json:"datasets"`
	Width       float64    `json:"width"`
	Height      float64    `json:"height"`
	Formats     []string   `json:"formats"`
}

func catalog() []chartInfo {
	out := make([]chartInfo, 0, len(chart.Kinds()))
	for _, k := range chart.Kinds() {
		c, err := chart.Lookup(k)
		if err != nil {
			continue
		}
		formats := []string{pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatPDF, pipeline.FormatJSON}
		if _, _, ok := chart.Network(chart.View{Kind: k}); ok {
			formats = append(formats, pipeline.NetworkFormats...)
		}
		fallback := c.Bounds().Fallback
		out = append(out, chartInfo{
			Kind:        k,
			Description: c.Description(),
			Datasets:    c.Datasets(),
			Width:       fallback.W,
			Height:      fallback.H,
			Formats:     formats,
		})
	}
	return out
}
