package access

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tdd/internal/domain"
)

type outer struct {
	n int
	b middle
}

type middle struct {
	n int
	c inner
}

type inner struct {
	n int
}

func newOuter() outer {
	return outer{n: 14, b: middle{n: 16, c: inner{n: 18}}}
}

type calculator struct {
	factor int
}

func (c *calculator) times(n int) int { return n * c.factor }
func (c calculator) half(n int) int   { return n / 2 }
func (c *calculator) bump()           { c.factor++ }

func doubleIf(b bool) int {
	if b {
		return 14
	}
	return 0
}

var hits int

type base struct {
	id int
}

type derived struct {
	base
	name string
}

type viaPointer struct {
	*base
}

func nestedSelectors() []Selector {
	return []Selector{
		Field(func(o *outer) *middle { return &o.b }),
		Field(func(m *middle) *inner { return &m.c }),
		Field(func(o *outer) *int { return &o.n }),
		Field(func(m *middle) *int { return &m.n }),
		Field(func(i *inner) *int { return &i.n }),
	}
}

func mustRef(t *testing.T, res Result, err error) Ref {
	t.Helper()
	require.NoError(t, err)
	ref, err := res.Ref()
	require.NoError(t, err)
	return ref
}

func TestResolve_DirectField(t *testing.T) {
	sels := nestedSelectors()
	a := newOuter()

	res, err := Resolve(sels, []int{2}, &a)
	ref := mustRef(t, res, err)
	assert.Equal(t, 14, ref.Get())
	assert.False(t, ref.ReadOnly())

	require.NoError(t, ref.Set(114))
	assert.Equal(t, 114, a.n)
}

func TestResolve_NestedPathAliases(t *testing.T) {
	sels := nestedSelectors()
	a := newOuter()

	res, err := Resolve(sels, []int{0, 1, 4}, &a)
	ref := mustRef(t, res, err)
	p, err := Ptr[int](ref)
	require.NoError(t, err)
	assert.Equal(t, 18, *p)

	*p += 100
	assert.Equal(t, 118, a.b.c.n)

	again, err := Resolve(sels, []int{0, 1, 4}, &a)
	p2, err := Ptr[int](mustRef(t, again, err))
	require.NoError(t, err)
	assert.Same(t, p, p2)
	assert.Same(t, &a.b.c.n, p)
}

func TestResolve_RefAsRoot(t *testing.T) {
	sels := nestedSelectors()
	a := newOuter()

	res, err := Resolve(sels, []int{0}, &a)
	b := mustRef(t, res, err)
	res, err = Resolve(sels, []int{1}, b)
	c := mustRef(t, res, err)
	res, err = Resolve(sels, []int{3}, b)
	bn := mustRef(t, res, err)
	res, err = Resolve(sels, []int{4}, c)
	cn := mustRef(t, res, err)

	require.NoError(t, bn.Set(116))
	require.NoError(t, cn.Set(118))
	assert.Equal(t, 116, a.b.n)
	assert.Equal(t, 118, a.b.c.n)

	viaRoot, err := Resolve(sels, []int{0, 3}, &a)
	p1, err := Ptr[int](mustRef(t, viaRoot, err))
	require.NoError(t, err)
	p2, err := Ptr[int](bn)
	require.NoError(t, err)
	assert.Same(t, p1, p2)
}

func TestResolve_ValueRootIsReadOnly(t *testing.T) {
	sels := nestedSelectors()
	a := newOuter()

	res, err := Resolve(sels, []int{0, 1, 4}, a)
	ref := mustRef(t, res, err)
	assert.True(t, ref.ReadOnly())
	assert.Equal(t, 18, ref.Get())

	err = ref.Set(1)
	assert.ErrorIs(t, err, domain.ErrUsage)
	_, err = Ptr[int](ref)
	assert.ErrorIs(t, err, domain.ErrUsage)
	assert.Equal(t, 18, a.b.c.n)
}

func TestResolve_ReadOnlySelector(t *testing.T) {
	sels := []Selector{ReadOnly(Field(func(o *outer) *int { return &o.n }))}
	a := newOuter()

	res, err := Resolve(sels, []int{0}, &a)
	ref := mustRef(t, res, err)
	assert.True(t, ref.ReadOnly())
	assert.ErrorIs(t, ref.Set(3), domain.ErrUsage)
}

func TestRef_SetTypeMismatch(t *testing.T) {
	a := newOuter()
	res, err := Resolve(nestedSelectors(), []int{2}, &a)
	ref := mustRef(t, res, err)

	assert.ErrorIs(t, ref.Set("fourteen"), domain.ErrUsage)
	_, err = Ptr[string](ref)
	assert.ErrorIs(t, err, domain.ErrUsage)
}

func TestResolve_Methods(t *testing.T) {
	sels := []Selector{Method((*calculator).times), Method(calculator.half), Method((*calculator).bump)}

	t.Run("pointer receiver on pointer root", func(t *testing.T) {
		c := calculator{factor: 2}
		res, err := Resolve(sels, []int{0}, &c)
		require.NoError(t, err)
		fn, err := res.Func()
		require.NoError(t, err)
		assert.True(t, fn.Bound())

		out, err := fn.Call(7)
		require.NoError(t, err)
		assert.Equal(t, []any{14}, out)
	})

	t.Run("mutating method changes the object", func(t *testing.T) {
		c := calculator{factor: 2}
		res, err := Resolve(sels, []int{2}, &c)
		require.NoError(t, err)
		fn, err := res.Func()
		require.NoError(t, err)
		_, err = fn.Call()
		require.NoError(t, err)
		assert.Equal(t, 3, c.factor)
	})

	t.Run("value receiver on read-only root", func(t *testing.T) {
		res, err := Resolve(sels, []int{1}, calculator{})
		require.NoError(t, err)
		fn, err := res.Func()
		require.NoError(t, err)
		out, err := fn.Call(28)
		require.NoError(t, err)
		assert.Equal(t, []any{14}, out)
	})

	t.Run("pointer receiver on read-only root", func(t *testing.T) {
		_, err := Resolve(sels, []int{0}, calculator{factor: 2})
		assert.ErrorIs(t, err, domain.ErrUsage)
	})

	t.Run("wrong arity", func(t *testing.T) {
		c := calculator{factor: 2}
		res, err := Resolve(sels, []int{0}, &c)
		require.NoError(t, err)
		fn, err := res.Func()
		require.NoError(t, err)
		_, err = fn.Call()
		assert.ErrorIs(t, err, domain.ErrUsage)
		_, err = fn.Call("seven")
		assert.ErrorIs(t, err, domain.ErrUsage)
	})
}

func TestResolve_Static(t *testing.T) {
	sels := []Selector{Method((*calculator).times), Static(doubleIf), Static(&hits), Type[bool]()}

	t.Run("function without object", func(t *testing.T) {
		res, err := ResolveStatic(sels, []int{1})
		require.NoError(t, err)
		fn, err := res.Func()
		require.NoError(t, err)
		assert.False(t, fn.Bound())
		out, err := fn.Call(true)
		require.NoError(t, err)
		assert.Equal(t, []any{14}, out)
	})

	t.Run("object is ignored", func(t *testing.T) {
		c := calculator{}
		res, err := Resolve(sels, []int{1}, &c)
		require.NoError(t, err)
		assert.Equal(t, FuncResult, res.Kind())
	})

	t.Run("variable", func(t *testing.T) {
		hits = 0
		res, err := ResolveStatic(sels, []int{2})
		ref := mustRef(t, res, err)
		require.NoError(t, ref.Set(5))
		assert.Equal(t, 5, hits)
	})

	t.Run("type marker", func(t *testing.T) {
		res, err := ResolveStatic(sels, []int{3})
		require.NoError(t, err)
		assert.Equal(t, TypeResult, res.Kind())
		assert.Equal(t, reflect.TypeOf(true), res.Type())
		_, err = res.Ref()
		assert.ErrorIs(t, err, domain.ErrUsage)
	})

	t.Run("chain of static selectors", func(t *testing.T) {
		res, err := ResolveStatic(sels, []int{1, 3})
		require.NoError(t, err)
		assert.Equal(t, TypeResult, res.Kind())
	})

	t.Run("non-static member requires an object", func(t *testing.T) {
		_, err := ResolveStatic(sels, []int{0})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrNotStatic))
		assert.ErrorIs(t, err, domain.ErrUsage)

		_, err = ResolveStatic(sels, []int{0, 1})
		assert.ErrorIs(t, err, domain.ErrNotStatic)

		_, err = Resolve(sels, []int{2}, nil)
		assert.NoError(t, err)
	})
}

func TestResolve_Embedding(t *testing.T) {
	sels := []Selector{Field(func(b *base) *int { return &b.id }), Field(func(d *derived) *int { return &d.id })}

	d := derived{base: base{id: 7}, name: "d"}
	res, err := Resolve(sels, []int{0}, &d)
	ref := mustRef(t, res, err)
	require.NoError(t, ref.Set(8))
	assert.Equal(t, 8, d.id)

	res, err = Resolve(sels, []int{1}, &d)
	assert.Equal(t, 8, mustRef(t, res, err).Get())

	t.Run("embedded pointer is writable from a value root", func(t *testing.T) {
		v := viaPointer{base: &base{id: 1}}
		res, err := Resolve(sels, []int{0}, v)
		ref := mustRef(t, res, err)
		assert.False(t, ref.ReadOnly())
		require.NoError(t, ref.Set(2))
		assert.Equal(t, 2, v.id)
	})

	t.Run("nil embedded pointer", func(t *testing.T) {
		_, err := Resolve(sels, []int{0}, &viaPointer{})
		assert.ErrorIs(t, err, domain.ErrUsage)
	})
}

func TestResolve_UsageErrors(t *testing.T) {
	sels := append(nestedSelectors(), Static(doubleIf))
	a := newOuter()

	tests := []struct {
		name string
		path []int
		root any
	}{
		{"empty path", nil, &a},
		{"index out of bounds", []int{9}, &a},
		{"negative index", []int{-1}, &a},
		{"unrelated object", []int{3}, &a},
		{"field applied to a function", []int{5, 2}, &a},
		{"nil pointer root", []int{2}, (*outer)(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(sels, tt.path, tt.root)
			assert.ErrorIs(t, err, domain.ErrUsage)
		})
	}
}

func TestSelector_ConstructionErrors(t *testing.T) {
	tests := []struct {
		name string
		sel  Selector
	}{
		{"nil accessor", Field[outer, int](nil)},
		{"accessor outside the object", Field(func(*outer) *int { return &hits })},
		{"accessor returning nil", Field(func(*outer) *int { return nil })},
		{"method from nil", Method(nil)},
		{"method without receiver", Method(func() {})},
		{"static from value", Static(3)},
		{"static from nil pointer", Static((*int)(nil))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.sel.Err(), domain.ErrUsage)
			assert.ErrorIs(t, Validate([]Selector{Type[int](), tt.sel}), domain.ErrUsage)
		})
	}

	assert.NoError(t, Validate(nestedSelectors()))
}

func TestSelector_Kinds(t *testing.T) {
	assert.Equal(t, FieldSelector, Field(func(o *outer) *int { return &o.n }).Kind())
	assert.Equal(t, MethodSelector, Method((*calculator).times).Kind())
	assert.Equal(t, StaticSelector, Static(doubleIf).Kind())
	assert.Equal(t, TypeSelector, Type[int]().Kind())

	assert.False(t, Field(func(o *outer) *int { return &o.n }).IsStatic())
	assert.True(t, Static(&hits).IsStatic())
	assert.Contains(t, Method((*calculator).times).String(), "times")
}

func TestSelector_FieldNames(t *testing.T) {
	tests := []struct {
		name     string
		sel      Selector
		expected string
	}{
		{"direct", Field(func(o *outer) *int { return &o.n }), "field access.outer.n"},
		{"nested", Field(func(o *outer) *int { return &o.b.c.n }), "field access.outer.b.c.n"},
		{"promoted", Field(func(d *derived) *int { return &d.id }), "field access.derived.base.id"},
		{"through a pointer", Field(func(v *viaPointer) *int { return &v.id }), "field access.viaPointer.?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.sel.Err())
			assert.Equal(t, tt.expected, tt.sel.String())
		})
	}
}

func TestResolve_FieldThroughPointer(t *testing.T) {
	sels := []Selector{Field(func(v *viaPointer) *int { return &v.id })}

	v := viaPointer{base: &base{id: 3}}
	res, err := Resolve(sels, []int{0}, &v)
	ref := mustRef(t, res, err)
	require.NoError(t, ref.Set(4))
	assert.Equal(t, 4, v.id)

	_, err = Resolve(sels, []int{0}, &viaPointer{})
	assert.ErrorIs(t, err, domain.ErrUsage)
}
