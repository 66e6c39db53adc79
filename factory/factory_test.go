package factory

import (
	"errors"
	"io"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Konsultn-Engineering/reflector/schema"
)

type Author struct {
	Name string
	Born int
}

type Book struct {
	Title string
	Pages int
}

func newFactory(t *testing.T, ctors ...any) *Default {
	t.Helper()
	reg := schema.NewConstructors()
	for _, fn := range ctors {
		require.NoError(t, reg.Register(fn))
	}
	return NewDefault(schema.New(schema.WithConstructors(reg)))
}

func TestCreate(t *testing.T) {
	f := newFactory(t)

	tests := []struct {
		name     string
		typ      reflect.Type
		expected any
	}{
		{"Struct", reflect.TypeOf(Author{}), &Author{}},
		{"PointerNormalized", reflect.TypeOf(&Author{}), &Author{}},
		{"Slice", reflect.TypeOf([]string{}), &[]string{}},
		{"Map", reflect.TypeOf(map[string]int{}), &map[string]int{}},
		{"Scalar", reflect.TypeOf(0), new(int)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := f.Create(tt.typ)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v)
		})
	}
}

func TestCreateInitializesContainers(t *testing.T) {
	f := newFactory(t)

	v, err := f.Create(reflect.TypeOf(map[string]int{}))
	require.NoError(t, err)
	m := v.(*map[string]int)
	require.NotNil(t, *m)
	(*m)["k"] = 1

	v, err = f.Create(reflect.TypeOf([]int{}))
	require.NoError(t, err)
	assert.NotNil(t, *v.(*[]int))

	v, err = f.Create(reflect.TypeOf(make(chan int)))
	require.NoError(t, err)
	assert.NotNil(t, *v.(*chan int))
}

func TestCreateUsesRegisteredConstructor(t *testing.T) {
	f := newFactory(t,
		func() *Book { return &Book{Title: "untitled"} },
		func(title string, pages int) Book { return Book{Title: title, Pages: pages} },
	)

	v, err := f.Create(reflect.TypeOf(Book{}))
	require.NoError(t, err)
	assert.Equal(t, &Book{Title: "untitled"}, v)

	v, err = f.CreateWith(reflect.TypeOf(Book{}),
		[]reflect.Type{reflect.TypeOf(""), reflect.TypeOf(0)},
		[]any{"Dune", 412})
	require.NoError(t, err)
	assert.Equal(t, &Book{Title: "Dune", Pages: 412}, v)
}

func TestCreateWithErrors(t *testing.T) {
	f := newFactory(t, func(title string) (Book, error) {
		if title == "" {
			return Book{}, errors.New("title required")
		}
		return Book{Title: title}, nil
	})

	t.Run("NoDefaultConstructor", func(t *testing.T) {
		_, err := f.Create(reflect.TypeOf(Book{}))
		var noCtor *schema.NoDefaultConstructorError
		assert.ErrorAs(t, err, &noCtor)
	})

	t.Run("NoMatchingConstructor", func(t *testing.T) {
		_, err := f.CreateWith(reflect.TypeOf(Book{}), []reflect.Type{reflect.TypeOf(0)}, []any{1})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid types (int) or values (1)")
	})

	t.Run("ConstructorFails", func(t *testing.T) {
		_, err := f.CreateWith(reflect.TypeOf(Book{}), []reflect.Type{reflect.TypeOf("")}, []any{""})
		assert.ErrorContains(t, err, "title required")
	})

	t.Run("LengthMismatch", func(t *testing.T) {
		_, err := f.CreateWith(reflect.TypeOf(Book{}), []reflect.Type{reflect.TypeOf("")}, []any{"a", "b"})
		assert.Error(t, err)
	})

	t.Run("Interface", func(t *testing.T) {
		_, err := f.Create(reflect.TypeOf((*io.Reader)(nil)).Elem())
		assert.ErrorIs(t, err, ErrInterface)
	})

	t.Run("NilType", func(t *testing.T) {
		_, err := f.Create(nil)
		assert.ErrorIs(t, err, schema.ErrNilType)
	})
}

func TestIsCollection(t *testing.T) {
	f := &Default{}
	assert.True(t, f.IsCollection(reflect.TypeOf([]int{})))
	assert.True(t, f.IsCollection(reflect.TypeOf([3]int{})))
	assert.True(t, f.IsCollection(reflect.TypeOf(&[]int{})))
	assert.False(t, f.IsCollection(reflect.TypeOf(map[string]int{})))
	assert.False(t, f.IsCollection(reflect.TypeOf(Author{})))
	assert.False(t, f.IsCollection(nil))
}

func TestNewGeneric(t *testing.T) {
	a, err := New[Author](&Default{})
	require.NoError(t, err)
	assert.Equal(t, &Author{}, a)

	_, err = New[io.Reader](&Default{})
	assert.ErrorIs(t, err, ErrInterface)
}
