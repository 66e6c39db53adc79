package schema

import (
	"reflect"
	"sync"
	"testing"

	"github.com/go-logr/logr/funcr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntrospectCaching(t *testing.T) {
	ClearCache()

	d1, err := Introspect(reflect.TypeOf(Person{}))
	require.NoError(t, err)
	d2, err := Introspect(reflect.TypeOf(&Person{}))
	require.NoError(t, err)
	d3, err := For[Person]()
	require.NoError(t, err)

	assert.True(t, d1 == d2, "Expected same instance from cache")
	assert.True(t, d1 == d3, "Expected same instance from cache")
}

func TestContextIsolation(t *testing.T) {
	a := New()
	b := New(WithAccessPolicy(PublicOnly()))

	da, err := a.Introspect(reflect.TypeOf(Person{}))
	require.NoError(t, err)
	db, err := b.Introspect(reflect.TypeOf(Person{}))
	require.NoError(t, err)
	assert.False(t, da == db, "contexts must not share descriptors")

	_, err = a.Introspect(nil)
	assert.ErrorIs(t, err, ErrNilType)
}

func TestContextFailedBuildNotCached(t *testing.T) {
	ctx := New(WithAccessPolicy(denyPolicy{}))

	_, err := ctx.Introspect(reflect.TypeOf(Person{}))
	assert.Error(t, err)
	assert.Equal(t, 0, ctx.Stats().Len)
}

func TestContextEviction(t *testing.T) {
	var evicted []reflect.Type
	var logged int
	ctx := New(
		WithCacheSize(1),
		WithEvictionCallback(func(t reflect.Type, _ *Descriptor) { evicted = append(evicted, t) }),
		WithLogger(funcr.New(func(prefix, args string) { logged++ }, funcr.Options{Verbosity: 1})),
	)

	_, err := ctx.Introspect(reflect.TypeOf(Person{}))
	require.NoError(t, err)
	_, err = ctx.Introspect(reflect.TypeOf(Switch{}))
	require.NoError(t, err)

	assert.Equal(t, []reflect.Type{reflect.TypeOf(Person{})}, evicted)
	assert.Equal(t, 1, ctx.Stats().Len)
	assert.Positive(t, logged)

	ctx.ClearCache()
	assert.Equal(t, 0, ctx.Stats().Len)
}

func TestIntrospectConcurrency(t *testing.T) {
	const numGoroutines = 10
	const numIterations = 10

	ctx := New()

	var wg sync.WaitGroup
	errors := make(chan error, numGoroutines)
	results := make(chan *Descriptor, numGoroutines*numIterations)

	// Use a barrier to ensure all goroutines start at the same time
	startBarrier := make(chan struct{})

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-startBarrier

			for j := 0; j < numIterations; j++ {
				d, err := ctx.Introspect(reflect.TypeOf(Gauge{}))
				if err != nil {
					errors <- err
					return
				}
				results <- d
			}
		}()
	}

	close(startBarrier)
	wg.Wait()
	close(errors)
	close(results)

	for err := range errors {
		t.Errorf("Concurrent introspection error: %v", err)
	}

	var first *Descriptor
	count := 0
	for d := range results {
		if first == nil {
			first = d
		}
		assert.True(t, first == d, "descriptor %d is a different instance", count)
		count++
	}
	assert.Equal(t, numGoroutines*numIterations, count)
	assert.Equal(t, uint64(1), ctx.Stats().Builds)
	assert.Equal(t, 1, ctx.Stats().Len)
}

func TestDescriptorConcurrentInvokers(t *testing.T) {
	d, err := For[Person]()
	require.NoError(t, err)
	setName, err := d.SetInvoker("name")
	require.NoError(t, err)
	getName, err := d.GetInvoker("name")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p := &Person{}
			for j := 0; j < 100; j++ {
				if err := setName.Set(p, "n"); err != nil {
					t.Errorf("set: %v", err)
					return
				}
				if _, err := getName.Get(p); err != nil {
					t.Errorf("get: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()
}
