package server

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/matzehuels/cryptoviz/pkg/anim"
	"github.com/matzehuels/cryptoviz/pkg/chart"
	"github.com/matzehuels/cryptoviz/pkg/errors"
	"github.com/matzehuels/cryptoviz/pkg/market"
	"github.com/matzehuels/cryptoviz/pkg/observability"
	"github.com/matzehuels/cryptoviz/pkg/pipeline"
	"github.com/matzehuels/cryptoviz/pkg/scene"
	"github.com/matzehuels/cryptoviz/pkg/viewport"
)

const (
	writeWait   = 10 * time.Second
	maxReadSize = 4 << 10
)

// Client message types.
const (
	MsgResize = "resize"
	MsgHover  = "hover"
	MsgRange  = "range"
	MsgMode   = "mode"
	MsgToggle = "toggle"
)

// ClientMessage is sent by the browser to change the view.
type ClientMessage struct {
	Type   string  `json:"type"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Index  *int    `json:"index,omitempty"`
	ID     string  `json:"id,omitempty"`
	Value  string  `json:"value,omitempty"`
	On     *bool   `json:"on,omitempty"`
}

// FrameMessage is one rendered frame pushed to the browser.
type FrameMessage struct {
	Type    string         `json:"type"` // "frame" or "error"
	Seq     uint64         `json:"seq,omitempty"`
	Width   float64        `json:"width,omitempty"`
	Height  float64        `json:"height,omitempty"`
	SVG     string         `json:"svg,omitempty"`
	Tooltip *scene.Tooltip `json:"tooltip,omitempty"`
	Message string         `json:"message,omitempty"`
}

// StreamInfo describes an open stream.
type StreamInfo struct {
	ID     string    `json:"id"`
	Chart  string    `json:"chart"`
	Since  time.Time `json:"since"`
	Frames uint64    `json:"frames"`
}

// stream is one websocket connection and the view it animates.
type stream struct {
	id       string
	conn     *websocket.Conn
	observer *viewport.Observer
	driver   *anim.Driver
	since    time.Time
	logger   *log.Logger

	writeMu sync.Mutex
	frames  atomic.Uint64

	mu    sync.Mutex
	opts  pipeline.Options
	dirty bool
}

func (s *Server) upgrader() websocket.Upgrader {
	u := websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 4096}
	if origins := s.cfg.Server.Origins; len(origins) > 0 {
		u.CheckOrigin = func(r *http.Request) bool {
			return slices.Contains(origins, r.Header.Get("Origin"))
		}
	}
	return u
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	opts, err := parseOptions(chi.URLParam(r, "kind"), r.URL.Query(), s.cfg.Render)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	c, err := chart.Lookup(chart.Kind(opts.Chart))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Formats = []string{pipeline.FormatSVG}

	u := s.upgrader()
	conn, err := u.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		s.logger.Warn("websocket upgrade failed", "err", err)
		return
	}

	st := &stream{
		id:       uuid.NewString(),
		conn:     conn,
		observer: viewport.NewObserverAt(c.Bounds(), viewport.Size{W: opts.Width, H: opts.Height}),
		since:    time.Now(),
		opts:     opts,
		dirty:    true,
	}
	st.logger = s.logger.With("stream", st.id, "chart", opts.Chart)

	// Explicit w/h pin the chart size until the client reports a container
	// that clamps to a different size.
	size := st.observer.Size()
	st.opts.Width, st.opts.Height = size.W, size.H
	st.observer.Subscribe(func(size viewport.Size) {
		st.mu.Lock()
		st.opts.Width, st.opts.Height = size.W, size.H
		st.dirty = true
		st.mu.Unlock()
	})

	ds := opts.Dataset
	if ds == "" {
		ds = c.Datasets()[0]
	}
	preset := c.Preset(ds)
	interval := frameInterval(preset.Interval, s.cfg.Server.FPS)
	start := preset.Clock.At(opts.Rotation).AtPhase(opts.Phase)
	st.driver = anim.NewDriver(start, interval, func(clock anim.Clock) error {
		return st.tick(r.Context(), clock)
	})

	s.streams.add(st)
	ctx := r.Context()
	observability.Stream().OnOpen(ctx, st.id, opts.Chart)
	st.logger.Debug("stream opened", "interval", interval)

	// First frame immediately, then on every tick.
	err = st.tick(ctx, start)
	if err == nil {
		st.driver.Start(ctx)
		err = st.readLoop()
	}

	st.driver.Stop()
	s.streams.remove(st.id)
	_ = conn.Close()

	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		err = nil
	}
	observability.Stream().OnClose(ctx, st.id, st.frames.Load(), err)
	st.logger.Debug("stream closed", "frames", st.frames.Load(), "err", err)
}

// frameInterval slows a preset down to the frame rate cap.
func frameInterval(preset time.Duration, fps int) time.Duration {
	if fps <= 0 {
		return preset
	}
	return max(preset, time.Second/time.Duration(fps))
}

// tick renders the view at the clock and pushes it. Frames of static
// charts are only sent when the view changed.
func (st *stream) tick(ctx context.Context, clock anim.Clock) error {
	st.mu.Lock()
	if clock.Static() && !st.dirty {
		st.mu.Unlock()
		return nil
	}
	st.dirty = false
	opts := st.opts.WithClock(clock)
	st.mu.Unlock()

	sc, err := pipeline.Scene(opts)
	if err != nil {
		return st.send(FrameMessage{Type: "error", Message: errors.UserMessage(err)})
	}
	svg, err := pipeline.RenderFormat(ctx, sc, pipeline.FormatSVG, opts)
	if err != nil {
		return err
	}

	// Only the handler and then the driver goroutine tick, never both.
	seq := st.frames.Load() + 1
	if err := st.send(FrameMessage{
		Type:    "frame",
		Seq:     seq,
		Width:   sc.Width,
		Height:  sc.Height,
		SVG:     string(svg),
		Tooltip: sc.Tooltip,
	}); err != nil {
		return err
	}
	st.frames.Store(seq)
	observability.Stream().OnFrame(ctx, st.id, len(svg))
	return nil
}

func (st *stream) send(m FrameMessage) error {
	st.writeMu.Lock()
	defer st.writeMu.Unlock()
	_ = st.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return st.conn.WriteJSON(m)
}

// readLoop applies client messages until the connection closes.
func (st *stream) readLoop() error {
	st.conn.SetReadLimit(maxReadSize)
	// The HTTP server's read timeout survives the upgrade.
	_ = st.conn.SetReadDeadline(time.Time{})
	for {
		_, data, err := st.conn.ReadMessage()
		if err != nil {
			return err
		}
		var m ClientMessage
		if err := json.Unmarshal(data, &m); err != nil {
			if err := st.send(FrameMessage{Type: "error", Message: "malformed message"}); err != nil {
				return err
			}
			continue
		}
		if err := st.apply(m); err != nil {
			if err := st.send(FrameMessage{Type: "error", Message: errors.UserMessage(err)}); err != nil {
				return err
			}
		}
	}
}

// apply updates the view from one client message.
func (st *stream) apply(m ClientMessage) error {
	if m.Type == MsgResize {
		if err := errors.ValidateDimensions(m.Width, m.Height); err != nil {
			return err
		}
		// The observer listener marks the view dirty.
		st.observer.Resize(viewport.Size{W: m.Width, H: m.Height})
		return nil
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	next := st.opts
	switch m.Type {
	case MsgHover:
		next.Hover, next.HoverID = chart.NoHover, ""
		if m.Index != nil {
			next.Hover = *m.Index
		}
		if m.ID != "" {
			if err := errors.ValidateNodeID(m.ID); err != nil {
				return err
			}
			next.HoverID = m.ID
		}
	case MsgRange:
		r, err := market.ParseRange(m.Value)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidRange, err, "invalid range")
		}
		next.Range = string(r)
	case MsgMode:
		mode, err := market.ParseMode(m.Value)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidMode, err, "invalid mode")
		}
		next.Mode = string(mode)
	case MsgToggle:
		on := m.On == nil || *m.On
		switch m.Value {
		case "ma":
			next.ShowMA = on
		case "prediction":
			next.ShowPrediction = on
		case "volume":
			next.ShowVolume = on
		default:
			return errors.New(errors.ErrCodeInvalidInput, "unknown toggle %q", m.Value)
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown message type %q", m.Type)
	}

	if next.Hover != st.opts.Hover || next.HoverID != st.opts.HoverID ||
		next.Range != st.opts.Range || next.Mode != st.opts.Mode ||
		next.ShowMA != st.opts.ShowMA || next.ShowPrediction != st.opts.ShowPrediction ||
		next.ShowVolume != st.opts.ShowVolume {
		st.opts = next
		st.dirty = true
	}
	return nil
}

func (st *stream) info() StreamInfo {
	st.mu.Lock()
	defer st.mu.Unlock()
	return StreamInfo{ID: st.id, Chart: st.opts.Chart, Since: st.since, Frames: st.frames.Load()}
}

// registry tracks open streams.
type registry struct {
	mu      sync.Mutex
	streams map[string]*stream
}

func newRegistry() *registry {
	return &registry{streams: make(map[string]*stream)}
}

func (r *registry) add(st *stream) {
	r.mu.Lock()
	r.streams[st.id] = st
	r.mu.Unlock()
}

func (r *registry) remove(id string) {
	r.mu.Lock()
	delete(r.streams, id)
	r.mu.Unlock()
}

func (r *registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.streams)
}

// List returns the open streams, oldest first.
func (r *registry) List() []StreamInfo {
	r.mu.Lock()
	out := make([]StreamInfo, 0, len(r.streams))
	for _, st := range r.streams {
		out = append(out, st.info())
	}
	r.mu.Unlock()
	slices.SortFunc(out, func(a, b StreamInfo) int { return a.Since.Compare(b.Since) })
	return out
}

// CloseAll closes every connection; each handler then stops its driver.
func (r *registry) CloseAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, st := range r.streams {
		st.writeMu.Lock()
		_ = st.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		st.writeMu.Unlock()
		_ = st.conn.Close()
	}
}
