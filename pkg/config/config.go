// Package config loads cryptoviz settings.
//
// Settings are layered, later sources winning:
//
//  1. built-in defaults ([Default])
//  2. a config file, TOML (cryptoviz.toml) or YAML (cryptoviz.yaml)
//  3. a .env file in the working directory
//  4. environment variables prefixed CRYPTOVIZ_, e.g. CRYPTOVIZ_CACHE_BACKEND
//
// Command-line flags are applied by the caller on top of the result.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/cryptoviz/pkg/cache"
	"github.com/matzehuels/cryptoviz/pkg/errors"
	"github.com/matzehuels/cryptoviz/pkg/market"
	"github.com/matzehuels/cryptoviz/pkg/mock"
	"github.com/matzehuels/cryptoviz/pkg/render/styles"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "CRYPTOVIZ"

// MaxFPS caps the live stream frame rate.
const MaxFPS = 60

// SearchPaths are tried in order when no config file is named.
var SearchPaths = []string{"cryptoviz.toml", "cryptoviz.yaml", "cryptoviz.yml"}

// Config is the complete application configuration.
type Config struct {
	Server       Server       `toml:"server" yaml:"server" envconfig:"SERVER"`
	Render       Render       `toml:"render" yaml:"render" envconfig:"RENDER"`
	Cache        Cache        `toml:"cache" yaml:"cache" envconfig:"CACHE"`
	Housekeeping Housekeeping `toml:"housekeeping" yaml:"housekeeping" envconfig:"HOUSEKEEPING"`

	// Path is the file the config was read from, if any.
	Path string `toml:"-" yaml:"-" ignored:"true"`
}

// Server configures `cryptoviz serve`.
type Server struct {
	Addr         string        `toml:"addr" yaml:"addr" envconfig:"ADDR"`
	ReadTimeout  time.Duration `toml:"read_timeout" yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout time.Duration `toml:"write_timeout" yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	FPS          int           `toml:"fps" yaml:"fps" envconfig:"FPS"`
	Origins      []string      `toml:"origins" yaml:"origins" envconfig:"ORIGINS"` // websocket origins; empty allows same host only
}

// Render holds defaults for rendered charts.
type Render struct {
	Width     float64 `toml:"width" yaml:"width" envconfig:"WIDTH"`
	Height    float64 `toml:"height" yaml:"height" envconfig:"HEIGHT"`
	Style     string  `toml:"style" yaml:"style" envconfig:"STYLE"`
	Seed      uint64  `toml:"seed" yaml:"seed" envconfig:"SEED"`
	Range     string  `toml:"range" yaml:"range" envconfig:"RANGE"`
	Mode      string  `toml:"mode" yaml:"mode" envconfig:"MODE"`
	Scale     float64 `toml:"scale" yaml:"scale" envconfig:"SCALE"`
	Watermark bool    `toml:"watermark" yaml:"watermark" envconfig:"WATERMARK"`
}

// Cache selects the render cache backend.
type Cache struct {
	Backend string `toml:"backend" yaml:"backend" envconfig:"BACKEND"`
	Dir     string `toml:"dir" yaml:"dir" envconfig:"DIR"`
	Prefix  string `toml:"prefix" yaml:"prefix" envconfig:"PREFIX"` // isolates deployments sharing a backend
	Redis   Redis  `toml:"redis" yaml:"redis" envconfig:"REDIS"`
	Mongo   Mongo  `toml:"mongo" yaml:"mongo" envconfig:"MONGO"`
}

type Redis struct {
	Addr     string `toml:"addr" yaml:"addr" envconfig:"ADDR"`
	Password string `toml:"password" yaml:"password" envconfig:"PASSWORD"`
	DB       int    `toml:"db" yaml:"db" envconfig:"DB"`
}

type Mongo struct {
	URI        string `toml:"uri" yaml:"uri" envconfig:"URI"`
	Database   string `toml:"database" yaml:"database" envconfig:"DATABASE"`
	Collection string `toml:"collection" yaml:"collection" envconfig:"COLLECTION"`
}

// Housekeeping schedules cache pruning in the server.
type Housekeeping struct {
	Enabled  bool   `toml:"enabled" yaml:"enabled" envconfig:"ENABLED"`
	Schedule string `toml:"schedule" yaml:"schedule" envconfig:"SCHEDULE"` // standard 5-field cron spec or @every
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: Server{
			Addr:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			FPS:          20,
		},
		Render: Render{
			Style: "cyber",
			Seed:  mock.DefaultSeed,
			Range: string(market.DefaultRange),
			Mode:  string(market.ModeLine),
			Scale: 2,
		},
		Cache: Cache{
			Backend: cache.BackendFile,
			Dir:     DefaultCacheDir(),
			Redis:   Redis{Addr: "localhost:6379"},
			Mongo: Mongo{
				URI:        "mongodb://localhost:27017",
				Database:   "cryptoviz",
				Collection: "render_cache",
			},
		},
		Housekeeping: Housekeeping{
			Enabled:  true,
			Schedule: "@every 1h",
		},
	}
}

// DefaultCacheDir returns the XDG cache directory (~/.cache/cryptoviz/).
// It is empty when no home directory can be found.
func DefaultCacheDir() string {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, "cryptoviz")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cache", "cryptoviz")
}

// Load builds the configuration. An empty path searches SearchPaths in
// the working directory; a named file that does not exist is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = findConfig()
	}
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read .env")
	}
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "environment")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func findConfig() string {
	for _, p := range SearchPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	case ".toml", "":
		_, err = toml.Decode(string(data), c)
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "config %s: unsupported extension (use .toml or .yaml)", path)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	c.Path = path
	return nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return invalid("server.addr is required")
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		return invalid("server timeouts cannot be negative")
	}
	if c.Server.FPS < 1 || c.Server.FPS > MaxFPS {
		return invalid("server.fps must be between 1 and %d", MaxFPS)
	}

	if err := errors.ValidateDimensions(c.Render.Width, c.Render.Height); err != nil {
		return err
	}
	if _, ok := styles.Lookup(c.Render.Style); !ok {
		return invalid("render.style %q is not one of %s", c.Render.Style, strings.Join(styles.Names(), ", "))
	}
	if _, err := market.ParseRange(c.Render.Range); err != nil {
		return invalid("render.range: %v", err)
	}
	if _, err := market.ParseMode(c.Render.Mode); err != nil {
		return invalid("render.mode: %v", err)
	}
	if c.Render.Scale <= 0 {
		return invalid("render.scale must be positive")
	}

	backend := strings.ToLower(c.Cache.Backend)
	if backend != "" && !slices.Contains(cache.Backends(), backend) {
		return invalid("cache.backend %q is not one of %s", c.Cache.Backend, strings.Join(cache.Backends(), ", "))
	}
	if backend == cache.BackendRedis && c.Cache.Redis.Addr == "" {
		return invalid("cache.redis.addr is required for the redis backend")
	}
	if backend == cache.BackendMongo {
		if c.Cache.Mongo.URI == "" {
			return invalid("cache.mongo.uri is required for the mongo backend")
		}
		if err := errors.ValidateURI(c.Cache.Mongo.URI, "mongodb", "mongodb+srv"); err != nil {
			return invalid("cache.mongo.uri: %s", errors.UserMessage(err))
		}
	}

	if c.Housekeeping.Enabled {
		if _, err := cron.ParseStandard(c.Housekeeping.Schedule); err != nil {
			return invalid("housekeeping.schedule: %v", err)
		}
	}
	return nil
}

func invalid(format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidConfig, format, args...)
}

// CacheOptions converts the cache section for cache.Open.
func (c *Config) CacheOptions() cache.Options {
	return cache.Options{
		Backend: c.Cache.Backend,
		Dir:     c.Cache.Dir,
		Redis: cache.RedisOptions{
			Addr:     c.Cache.Redis.Addr,
			Password: c.Cache.Redis.Password,
			DB:       c.Cache.Redis.DB,
		},
		Mongo: cache.MongoOptions{
			URI:        c.Cache.Mongo.URI,
			Database:   c.Cache.Mongo.Database,
			Collection: c.Cache.Mongo.Collection,
		},
	}
}

// Keyer returns the cache keyer, scoped by the configured prefix.
func (c *Config) Keyer() cache.Keyer {
	if c.Cache.Prefix == "" {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(nil, c.Cache.Prefix)
}

// String renders the configuration as TOML with secrets masked.
func (c *Config) String() string {
	masked := *c
	if masked.Cache.Redis.Password != "" {
		masked.Cache.Redis.Password = "****"
	}
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(masked); err != nil {
		return fmt.Sprintf("config: %v", err)
	}
	return b.String()
}
