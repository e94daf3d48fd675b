package cache

import (
	"context"
	"fmt"
	"strings"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendNone   = "none"
)

// Backends lists every backend name.
func Backends() []string {
	return []string{BackendFile, BackendMemory, BackendRedis, BackendMongo, BackendNone}
}

// Options selects and configures a backend.
type Options struct {
	Backend string
	Dir     string // file backend
	Redis   RedisOptions
	Mongo   MongoOptions
}

// Open creates the configured backend. An empty backend name means none.
func Open(ctx context.Context, opts Options) (Cache, error) {
	switch strings.ToLower(opts.Backend) {
	case "", BackendNone:
		return NewNullCache(), nil
	case BackendFile:
		if opts.Dir == "" {
			return nil, fmt.Errorf("file cache: no directory")
		}
		return NewFileCache(opts.Dir)
	case BackendMemory:
		return NewMemoryCache()
	case BackendRedis:
		return NewRedisCache(ctx, opts.Redis)
	case BackendMongo:
		return NewMongoCache(ctx, opts.Mongo)
	}
	return nil, fmt.Errorf("%w %q (must be one of %s)", ErrUnknownBackend, opts.Backend, strings.Join(Backends(), ", "))
}
