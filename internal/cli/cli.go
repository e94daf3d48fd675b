package cli

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cryptoviz/pkg/cache"
	"github.com/matzehuels/cryptoviz/pkg/chart"
	"github.com/matzehuels/cryptoviz/pkg/config"
	"github.com/matzehuels/cryptoviz/pkg/errors"
	"github.com/matzehuels/cryptoviz/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "cryptoviz"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
	LogWarn  = log.WarnLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded before any command runs.
	Config     *config.Config
	configPath string
}

// New creates a new CLI instance with a default logger and the built-in
// configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// loadConfig replaces the built-in configuration with the layered one.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	if cfg.Path != "" {
		c.Logger.Debug("loaded config", "path", cfg.Path)
	}
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, c.Config.Keyer(), c.Logger), nil
}

// newCache opens the configured backend. A file cache without a usable
// directory degrades to no cache.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	opts := c.Config.CacheOptions()
	if opts.Backend == cache.BackendFile && opts.Dir == "" {
		c.Logger.Warn("no cache directory, caching disabled")
		return cache.NewNullCache(), nil
	}
	store, err := cache.Open(ctx, opts)
	if stderrors.Is(err, cache.ErrNetwork) {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "%s cache unreachable, retry with --no-cache", opts.Backend)
	}
	return store, err
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the file cache directory.
func (c *CLI) cacheDir() (string, error) {
	if dir := c.Config.Cache.Dir; dir != "" {
		return dir, nil
	}
	return "", fmt.Errorf("no cache directory: set cache.dir or %s_CACHE_DIR", config.EnvPrefix)
}

// =============================================================================
// Options Helpers
// =============================================================================

// baseOptions returns pipeline options seeded from the render config.
// CLI output shows every overlay and no hover selection.
func (c *CLI) baseOptions(kind string) pipeline.Options {
	r := c.Config.Render
	return pipeline.Options{
		Chart:          kind,
		Width:          r.Width,
		Height:         r.Height,
		Range:          r.Range,
		Mode:           r.Mode,
		Seed:           r.Seed,
		Style:          r.Style,
		Scale:          r.Scale,
		Watermark:      r.Watermark,
		Hover:          chart.NoHover,
		ShowMA:         true,
		ShowPrediction: true,
		ShowVolume:     true,
	}
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// readData loads chart data overrides from a JSON file; "-" reads stdin.
func readData(path string) (*chart.Data, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	var d chart.Data
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("read data %s: %w", path, err)
	}
	return &d, nil
}
