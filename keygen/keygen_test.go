package keygen

import (
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Konsultn-Engineering/reflector/schema"
)

// =========================================================================
// Test Data Structures
// =========================================================================

type Order struct {
	ID     string
	Number int64
	Token  uuid.UUID
	ref    ulid.ULID
}

type Invoice struct {
	code string
}

func (i *Invoice) GetCode() string { return i.code }

func (i *Invoice) SetCode(code string) { i.code = "INV-" + code }

type fixedGenerator struct{ value any }

func (g fixedGenerator) Generate() (any, error) { return g.value, nil }
func (g fixedGenerator) Name() string           { return "fixed" }

// =========================================================================
// Generator Tests
// =========================================================================

func TestGenerators(t *testing.T) {
	tests := []struct {
		gen      Generator
		name     string
		expected reflect.Type
	}{
		{UUIDGenerator{}, "uuid", reflect.TypeOf(uuid.UUID{})},
		{NewULIDGenerator(), "ulid", reflect.TypeOf(ulid.ULID{})},
		{NewSnowflakeGenerator(7), "snowflake", reflect.TypeOf(int64(0))},
		{NewNanoIDGenerator(0, ""), "nanoid", reflect.TypeOf("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.gen.Name())
			a, err := tt.gen.Generate()
			require.NoError(t, err)
			b, err := tt.gen.Generate()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, reflect.TypeOf(a))
			assert.NotEqual(t, a, b)
		})
	}
}

func TestNanoIDAlphabet(t *testing.T) {
	gen := NewNanoIDGenerator(8, "ab")
	v, err := gen.Generate()
	require.NoError(t, err)
	id := v.(string)
	assert.Len(t, id, 8)
	for _, r := range id {
		assert.Contains(t, "ab", string(r))
	}
}

func TestSnowflakeLayout(t *testing.T) {
	gen := NewSnowflakeGenerator(5)
	at := SnowflakeEpoch.Add(time.Second)
	gen.now = func() time.Time { return at }

	v, err := gen.Generate()
	require.NoError(t, err)
	id := v.(int64)
	assert.Equal(t, int64(1000), id>>22)
	assert.Equal(t, int64(5), (id>>12)&0x3FF)
	assert.Equal(t, int64(0), id&0xFFF)

	v, err = gen.Generate()
	require.NoError(t, err)
	assert.Equal(t, int64(1), v.(int64)&0xFFF, "same millisecond bumps the sequence")

	at = at.Add(-time.Millisecond)
	_, err = gen.Generate()
	assert.ErrorIs(t, err, ErrClockMovedBackwards)
}

func TestSnowflakeBeforeEpoch(t *testing.T) {
	gen := NewSnowflakeGenerator(1)
	gen.now = func() time.Time { return SnowflakeEpoch.Add(-time.Millisecond) }

	_, err := gen.Generate()
	assert.ErrorIs(t, err, ErrBeforeEpoch)

	gen.now = func() time.Time { return time.UnixMilli(-1) }
	_, err = gen.Generate()
	assert.ErrorIs(t, err, ErrBeforeEpoch)

	gen.now = func() time.Time { return SnowflakeEpoch }
	v, err := gen.Generate()
	require.NoError(t, err)
	assert.Equal(t, int64(1)<<12, v.(int64))
}

func TestSnowflakeConcurrentUnique(t *testing.T) {
	gen := NewSnowflakeGenerator(1)

	var mu sync.Mutex
	seen := make(map[int64]struct{})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				v, err := gen.Generate()
				if err != nil {
					t.Errorf("generate: %v", err)
					return
				}
				mu.Lock()
				seen[v.(int64)] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Len(t, seen, 8*200)
}

// =========================================================================
// Registry Tests
// =========================================================================

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, []string{"nanoid", "snowflake", "ulid", "uuid"}, r.Names())

	_, err := r.Generate("missing")
	assert.Error(t, err)

	r.Register(fixedGenerator{value: "k"})
	v, err := r.Generate("fixed")
	require.NoError(t, err)
	assert.Equal(t, "k", v)

	gen, ok := Lookup("uuid")
	require.True(t, ok)
	assert.Equal(t, "uuid", gen.Name())

	v, err = Generate("nanoid")
	require.NoError(t, err)
	assert.Len(t, v, DefaultNanoIDSize)
}

// =========================================================================
// Assignment Tests
// =========================================================================

func TestAssign(t *testing.T) {
	d, err := schema.For[Order]()
	require.NoError(t, err)

	tests := []struct {
		name     string
		property string
		gen      Generator
		check    func(t *testing.T, o *Order, key any)
	}{
		{
			name:     "UUIDIntoString",
			property: "ID",
			gen:      UUIDGenerator{},
			check: func(t *testing.T, o *Order, key any) {
				_, err := uuid.Parse(o.ID)
				assert.NoError(t, err)
				assert.Equal(t, o.ID, key)
			},
		},
		{
			name:     "SnowflakeIntoInt64",
			property: "number",
			gen:      NewSnowflakeGenerator(2),
			check: func(t *testing.T, o *Order, key any) {
				assert.Positive(t, o.Number)
				assert.Equal(t, o.Number, key)
			},
		},
		{
			name:     "UUIDIntoUUID",
			property: "token",
			gen:      UUIDGenerator{},
			check: func(t *testing.T, o *Order, key any) {
				assert.NotEqual(t, uuid.Nil, o.Token)
				assert.Equal(t, o.Token, key)
			},
		},
		{
			name:     "ULIDIntoUnexported",
			property: "ref",
			gen:      NewULIDGenerator(),
			check: func(t *testing.T, o *Order, key any) {
				assert.NotEqual(t, ulid.ULID{}, o.ref)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &Order{}
			key, err := Assign(d, o, tt.property, tt.gen)
			require.NoError(t, err)
			tt.check(t, o, key)
		})
	}
}

func TestAssignThroughSetterMethod(t *testing.T) {
	d, err := schema.For[Invoice]()
	require.NoError(t, err)

	inv := &Invoice{}
	_, err = Assign(d, inv, "code", fixedGenerator{value: 42})
	require.NoError(t, err)
	assert.Equal(t, "INV-42", inv.code)
}

func TestAssignErrors(t *testing.T) {
	d, err := schema.For[Order]()
	require.NoError(t, err)

	_, err = Assign(d, &Order{}, "missing", UUIDGenerator{})
	var noSuch *schema.NoSuchPropertyError
	assert.ErrorAs(t, err, &noSuch)

	_, err = Assign(d, &Order{}, "number", fixedGenerator{value: []int{1}})
	assert.Error(t, err)

	_, err = Assign(d, Order{}, "number", NewSnowflakeGenerator(1))
	assert.Error(t, err, "values cannot be written")
}

func TestAssignIfZero(t *testing.T) {
	d, err := schema.For[Order]()
	require.NoError(t, err)

	o := &Order{Number: 99}
	v, written, err := AssignIfZero(d, o, "number", NewSnowflakeGenerator(1))
	require.NoError(t, err)
	assert.False(t, written)
	assert.Equal(t, int64(99), v)

	v, written, err = AssignIfZero(d, o, "token", UUIDGenerator{})
	require.NoError(t, err)
	assert.True(t, written)
	assert.Equal(t, o.Token, v)
}
