package storage

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Driver names registered by NewDefaultRegistry.
const (
	DriverFile   = "file"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// ErrDriverNotFound is returned when no factory matches the requested driver.
var ErrDriverNotFound = errors.New("storage: driver not found")

// Config selects and parameterises a storage backend.
type Config struct {
	Driver string
	// Dir is the directory used by the file driver. Path, when set, names
	// the file explicitly and wins over Dir.
	Dir    string
	Path   string
	Format Format
	Redis  RedisConfig
}

// Factory builds an adapter from config.
type Factory func(cfg Config) (Adapter, error)

// Registry stores adapter factories by driver name.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty driver registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// NewDefaultRegistry returns a registry with the file, redis and memory
// drivers.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(DriverFile, fileFactory)
	r.MustRegister(DriverRedis, redisFactory)
	r.MustRegister(DriverMemory, memoryFactory)
	return r
}

// Register adds a factory. Duplicate names return an error.
func (r *Registry) Register(name string, factory Factory) error {
	key := normalizeDriver(name)
	if key == "" {
		return fmt.Errorf("storage: driver name is required")
	}
	if factory == nil {
		return fmt.Errorf("storage: factory for %q is required", key)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[key]; exists {
		return fmt.Errorf("storage: driver %q already registered", key)
	}
	r.factories[key] = factory
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(name string, factory Factory) {
	if err := r.Register(name, factory); err != nil {
		panic(err)
	}
}

// Open builds the adapter for cfg.Driver. A blank driver selects the file
// driver.
func (r *Registry) Open(cfg Config) (Adapter, error) {
	key := normalizeDriver(cfg.Driver)
	if key == "" {
		key = DriverFile
	}

	r.mu.RLock()
	factory, ok := r.factories[key]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrDriverNotFound, key)
	}
	return factory(cfg)
}

// List returns a sorted list of driver names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a driver is registered.
func (r *Registry) Has(name string) bool {
	key := normalizeDriver(name)
	if key == "" {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[key]
	return ok
}

func normalizeDriver(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func fileFactory(cfg Config) (Adapter, error) {
	if path := strings.TrimSpace(cfg.Path); path != "" {
		return NewFileAdapterForPath(path), nil
	}
	dir := strings.TrimSpace(cfg.Dir)
	if dir == "" {
		return nil, errors.New("storage: file driver needs a directory or path")
	}
	return NewFileAdapter(dir, WithFileFormat(cfg.Format)), nil
}

func redisFactory(cfg Config) (Adapter, error) {
	if strings.TrimSpace(cfg.Redis.Addr) == "" {
		return nil, errors.New("storage: redis driver needs an address")
	}
	redisCfg := cfg.Redis
	if redisCfg.Format == "" {
		redisCfg.Format = cfg.Format
	}
	return NewRedisAdapter(NewRedisClient(redisCfg), redisCfg), nil
}

func memoryFactory(cfg Config) (Adapter, error) {
	return NewMemoryAdapter(cfg.Format), nil
}
