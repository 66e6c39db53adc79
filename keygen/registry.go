package keygen

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps names to generators. It is safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	generators map[string]Generator
}

var defaultRegistry = NewRegistry()

// NewRegistry returns a registry holding the uuid, ulid, snowflake (machine
// ID 1) and nanoid generators.
func NewRegistry() *Registry {
	r := &Registry{generators: make(map[string]Generator)}
	r.Register(UUIDGenerator{})
	r.Register(NewULIDGenerator())
	r.Register(NewSnowflakeGenerator(1))
	r.Register(NewNanoIDGenerator(DefaultNanoIDSize, ""))
	return r
}

// Register adds gen under gen.Name(), replacing any generator of that name.
func (r *Registry) Register(gen Generator) {
	r.mu.Lock()
	r.generators[gen.Name()] = gen
	r.mu.Unlock()
}

func (r *Registry) Get(name string) (Generator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	gen, ok := r.generators[name]
	return gen, ok
}

// Names returns the registered generator names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.generators))
	for name := range r.generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) Generate(name string) (any, error) {
	gen, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown generator type: %s", name)
	}
	return gen.Generate()
}

// Register adds gen to the process-wide registry.
func Register(gen Generator) {
	defaultRegistry.Register(gen)
}

// Lookup returns a generator from the process-wide registry.
func Lookup(name string) (Generator, bool) {
	return defaultRegistry.Get(name)
}

// Generate produces a key with a generator from the process-wide registry.
func Generate(name string) (any, error) {
	return defaultRegistry.Generate(name)
}
