package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/cryptoviz/pkg/cache"
	"github.com/matzehuels/cryptoviz/pkg/errors"
)

// chdir moves the test into an empty directory so no stray config or
// .env file is picked up.
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	chdir(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Path != "" {
		t.Errorf("Path = %q, want empty", cfg.Path)
	}
	if cfg.Server.Addr != ":8080" || cfg.Server.FPS != 20 {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Cache.Backend != cache.BackendFile {
		t.Errorf("Cache.Backend = %q", cfg.Cache.Backend)
	}
}

func TestLoadTOML(t *testing.T) {
	dir := chdir(t)
	path := filepath.Join(dir, "custom.toml")
	write(t, path, `
[server]
addr = ":9000"
read_timeout = "3s"
fps = 30

[render]
style = "neural"
width = 640
height = 480

[cache]
backend = "memory"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Addr != ":9000" || cfg.Server.FPS != 30 {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Server.ReadTimeout != 3*time.Second {
		t.Errorf("ReadTimeout = %v", cfg.Server.ReadTimeout)
	}
	if cfg.Server.WriteTimeout != 30*time.Second {
		t.Errorf("WriteTimeout should keep its default, got %v", cfg.Server.WriteTimeout)
	}
	if cfg.Render.Style != "neural" || cfg.Render.Width != 640 {
		t.Errorf("Render = %+v", cfg.Render)
	}
	if cfg.Cache.Backend != "memory" {
		t.Errorf("Cache.Backend = %q", cfg.Cache.Backend)
	}
	if cfg.Path != path {
		t.Errorf("Path = %q", cfg.Path)
	}
}

func TestLoadYAMLFromSearchPath(t *testing.T) {
	dir := chdir(t)
	write(t, filepath.Join(dir, "cryptoviz.yaml"), `
render:
  range: 1M
  mode: candle
housekeeping:
  schedule: "*/15 * * * *"
`)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Render.Range != "1M" || cfg.Render.Mode != "candle" {
		t.Errorf("Render = %+v", cfg.Render)
	}
	if cfg.Housekeeping.Schedule != "*/15 * * * *" {
		t.Errorf("Schedule = %q", cfg.Housekeeping.Schedule)
	}
	if cfg.Path != "cryptoviz.yaml" {
		t.Errorf("Path = %q", cfg.Path)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := chdir(t)
	path := filepath.Join(dir, "cryptoviz.toml")
	write(t, path, "[server]\naddr = \":9000\"\n")
	t.Setenv("CRYPTOVIZ_SERVER_ADDR", ":7000")
	t.Setenv("CRYPTOVIZ_CACHE_BACKEND", "redis")
	t.Setenv("CRYPTOVIZ_CACHE_REDIS_ADDR", "cache:6379")
	t.Setenv("CRYPTOVIZ_SERVER_ORIGINS", "a.example,b.example")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Addr != ":7000" {
		t.Errorf("Addr = %q, want env value", cfg.Server.Addr)
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.Redis.Addr != "cache:6379" {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if len(cfg.Server.Origins) != 2 {
		t.Errorf("Origins = %v", cfg.Server.Origins)
	}
}

func TestDotEnv(t *testing.T) {
	dir := chdir(t)
	write(t, filepath.Join(dir, ".env"), "CRYPTOVIZ_RENDER_STYLE=neural\n")
	t.Cleanup(func() { os.Unsetenv("CRYPTOVIZ_RENDER_STYLE") })

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Render.Style != "neural" {
		t.Errorf("Style = %q, want value from .env", cfg.Render.Style)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := chdir(t)

	bad := filepath.Join(dir, "bad.toml")
	write(t, bad, "[server\n")
	ini := filepath.Join(dir, "config.ini")
	write(t, ini, "a=b\n")

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "nope.toml")},
		{"syntax error", bad},
		{"unknown extension", ini},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Load() error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"empty addr", func(c *Config) { c.Server.Addr = "" }, "server.addr"},
		{"fps zero", func(c *Config) { c.Server.FPS = 0 }, "server.fps"},
		{"fps too high", func(c *Config) { c.Server.FPS = MaxFPS + 1 }, "server.fps"},
		{"negative timeout", func(c *Config) { c.Server.ReadTimeout = -time.Second }, "timeouts"},
		{"bad style", func(c *Config) { c.Render.Style = "retro" }, "render.style"},
		{"bad range", func(c *Config) { c.Render.Range = "2Y" }, "render.range"},
		{"bad mode", func(c *Config) { c.Render.Mode = "bars" }, "render.mode"},
		{"zero scale", func(c *Config) { c.Render.Scale = 0 }, "render.scale"},
		{"negative width", func(c *Config) { c.Render.Width = -1 }, "dimensions"},
		{"bad backend", func(c *Config) { c.Cache.Backend = "s3" }, "cache.backend"},
		{"redis without addr", func(c *Config) {
			c.Cache.Backend = cache.BackendRedis
			c.Cache.Redis.Addr = ""
		}, "cache.redis.addr"},
		{"mongo without uri", func(c *Config) {
			c.Cache.Backend = cache.BackendMongo
			c.Cache.Mongo.URI = ""
		}, "cache.mongo.uri"},
		{"mongo with http uri", func(c *Config) {
			c.Cache.Backend = cache.BackendMongo
			c.Cache.Mongo.URI = "http://localhost:27017"
		}, "cache.mongo.uri"},
		{"bad schedule", func(c *Config) { c.Housekeeping.Schedule = "every hour" }, "housekeeping.schedule"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestDisabledHousekeepingSkipsSchedule(t *testing.T) {
	cfg := Default()
	cfg.Housekeeping.Enabled = false
	cfg.Housekeeping.Schedule = "not a schedule"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestCacheOptions(t *testing.T) {
	cfg := Default()
	cfg.Cache.Backend = cache.BackendRedis
	cfg.Cache.Redis.DB = 3

	opts := cfg.CacheOptions()
	if opts.Backend != cache.BackendRedis || opts.Redis.DB != 3 || opts.Redis.Addr != "localhost:6379" {
		t.Errorf("CacheOptions() = %+v", opts)
	}
	if opts.Mongo.Collection != "render_cache" {
		t.Errorf("Mongo = %+v", opts.Mongo)
	}
}

func TestKeyerPrefix(t *testing.T) {
	cfg := Default()
	key := cache.FrameKeyOpts{Chart: "orbit"}
	plain := cfg.Keyer().FrameKey(key)

	cfg.Cache.Prefix = "staging:"
	scoped := cfg.Keyer().FrameKey(key)
	if scoped != "staging:"+plain {
		t.Errorf("scoped key = %q, want prefix on %q", scoped, plain)
	}
}

func TestStringMasksPassword(t *testing.T) {
	cfg := Default()
	cfg.Cache.Redis.Password = "hunter2"
	s := cfg.String()
	if strings.Contains(s, "hunter2") {
		t.Error("String() leaks the redis password")
	}
	if !strings.Contains(s, "[server]") {
		t.Errorf("String() = %q", s)
	}
	if cfg.Cache.Redis.Password != "hunter2" {
		t.Error("String() modified the config")
	}
}
