package observability

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
)

// LogHooks writes every event to a logger at debug level.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks logging through l under the "events" prefix.
func NewLogHooks(l *log.Logger) *LogHooks {
	return &LogHooks{logger: l.WithPrefix("events")}
}

func (h *LogHooks) OnBuild(_ context.Context, chart string, items int, d time.Duration) {
	h.logger.Debug("scene built", "chart", chart, "items", items, "took", d.Round(time.Microsecond))
}

func (h *LogHooks) OnRenderStart(_ context.Context, chart string, formats []string) {
	h.logger.Debug("render start", "chart", chart, "formats", strings.Join(formats, ","))
}

func (h *LogHooks) OnRenderComplete(_ context.Context, chart string, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "chart", chart, "formats", strings.Join(formats, ","), "err", err)
		return
	}
	h.logger.Debug("render done", "chart", chart, "formats", strings.Join(formats, ","), "took", d.Round(time.Microsecond))
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "key", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "key", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "key", keyType, "size", humanize.Bytes(uint64(size)))
}

func (h *LogHooks) OnOpen(_ context.Context, id, chart string) {
	h.logger.Debug("stream open", "id", id, "chart", chart)
}

func (h *LogHooks) OnFrame(_ context.Context, id string, size int) {
	h.logger.Debug("stream frame", "id", id, "size", humanize.Bytes(uint64(size)))
}

func (h *LogHooks) OnClose(_ context.Context, id string, frames uint64, err error) {
	h.logger.Debug("stream closed", "id", id, "frames", frames, "err", err)
}
