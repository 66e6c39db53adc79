package schema

import (
	"reflect"

	"github.com/go-logr/logr"

	"github.com/Konsultn-Engineering/reflector/cache"
)

// Config holds the settings used to build descriptors and to cache them.
type Config struct {
	// Descriptor construction
	tagName      string
	policy       AccessPolicy
	constructors *Constructors

	// Cache configuration
	cacheSize int
	onEvict   func(reflect.Type, *Descriptor)
	logger    logr.Logger
}

type Option func(*Config)

// WithTagName sets the struct tag consulted for field properties.
func WithTagName(tagName string) Option {
	return func(cfg *Config) { cfg.tagName = tagName }
}

// WithAccessPolicy sets the capability deciding which types may be
// introspected and whether unexported members may be accessed.
func WithAccessPolicy(policy AccessPolicy) Option {
	return func(cfg *Config) { cfg.policy = policy }
}

// WithConstructors sets the registry searched for constructors.
func WithConstructors(reg *Constructors) Option {
	return func(cfg *Config) { cfg.constructors = reg }
}

// WithCacheSize sets the LRU cache size for descriptors.
func WithCacheSize(size int) Option {
	return func(cfg *Config) { cfg.cacheSize = size }
}

// WithEvictionCallback sets a callback for cache eviction events.
func WithEvictionCallback(onEvict func(reflect.Type, *Descriptor)) Option {
	return func(cfg *Config) { cfg.onEvict = onEvict }
}

// WithLogger sets the logger used by the descriptor cache.
func WithLogger(logger logr.Logger) Option {
	return func(cfg *Config) { cfg.logger = logger }
}

func newConfig(options []Option) Config {
	cfg := Config{
		tagName:      DefaultTagName,
		policy:       AllowAll(),
		constructors: defaultConstructors,
		cacheSize:    cache.DefaultSize,
		logger:       logr.Discard(),
	}
	for _, opt := range options {
		opt(&cfg)
	}
	if cfg.policy == nil {
		cfg.policy = AllowAll()
	}
	if cfg.constructors == nil {
		cfg.constructors = defaultConstructors
	}
	return cfg
}

// Context builds descriptors with one configuration and memoizes one
// descriptor per type. It is safe for concurrent use; at most one descriptor
// construction per type is in flight at a time.
type Context struct {
	config Config
	tags   *TagParser
	cache  *cache.TypeCache[*Descriptor]
}

// New creates a Context with the given options.
func New(options ...Option) *Context {
	ctx := &Context{config: newConfig(options)}
	ctx.tags = NewTagParser(ctx.config.tagName)

	c, err := cache.New(func(t reflect.Type) (*Descriptor, error) {
		return buildDescriptor(t, &ctx.config, ctx.tags)
	}, cache.Config[*Descriptor]{
		Size:    ctx.config.cacheSize,
		OnEvict: ctx.config.onEvict,
		Logger:  ctx.config.logger,
	})
	if err != nil {
		// Only a nil build function fails, and ours is not nil.
		panic(err)
	}
	ctx.cache = c
	return ctx
}

// Introspect returns the descriptor for t, building it on first use.
// Pointer types are normalized to their element type.
func (ctx *Context) Introspect(t reflect.Type) (*Descriptor, error) {
	if t == nil {
		return nil, ErrNilType
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return ctx.cache.Get(t)
}

// Stats returns the descriptor cache counters.
func (ctx *Context) Stats() cache.Stats {
	return ctx.cache.Stats()
}

// ClearCache drops every cached descriptor.
func (ctx *Context) ClearCache() {
	ctx.cache.Purge()
}
