// Package access resolves chains of member selectors against objects.
//
// A Selector is a capability. It is created where the member is visible: a
// method expression such as (*T).unexported or a field accessor such as
// func(t *T) *int { return &t.n } can only be written inside the declaring
// package. Afterwards it can be dereferenced from anywhere. This is what lets a
// test reach unexported state of the types under test.
package access

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"

	"github.com/pkg/errors"

	"tdd/internal/domain"
)

// SelectorKind identifies what a selector refers to.
type SelectorKind int

const (
	FieldSelector SelectorKind = iota
	MethodSelector
	StaticSelector
	TypeSelector
)

func (k SelectorKind) String() string {
	switch k {
	case FieldSelector:
		return "field"
	case MethodSelector:
		return "method"
	case StaticSelector:
		return "static"
	case TypeSelector:
		return "type"
	}
	return "unknown"
}

// Selector is an opaque handle to a field, method, static entity or type.
type Selector struct {
	kind     SelectorKind
	name     string
	owner    reflect.Type
	readOnly bool

	get reflect.Value

	fn      reflect.Value
	ptrRecv bool

	static reflect.Value
	typ    reflect.Type

	err error
}

// Field selects the field whose address get returns, for example
//
//	access.Field(func(w *widget) *int { return &w.size })
//
// The accessor can only be written where the field is visible, so holding the
// selector is what grants access to it. Fields of embedded structs may be
// selected the same way.
func Field[T, F any](get func(*T) *F) Selector {
	owner := reflect.TypeOf((*T)(nil)).Elem()
	s := Selector{kind: FieldSelector, owner: owner, name: owner.String() + ".?"}
	if get == nil {
		s.err = domain.NewUsageError("field", "nil accessor for %s", owner)
		return s
	}
	s.get = reflect.ValueOf(get)

	zero := reflect.New(owner)
	p, err := callAccessor(s.get, zero)
	if errors.Is(err, errNilField) {
		s.err = domain.WrapUsage("field", err, "%s", owner)
		return s
	}
	if err != nil {
		// The accessor dereferences a nil pointer of a zero T; the field is
		// reached through a pointer and checked when resolved.
		return s
	}
	base, addr := zero.Pointer(), p.Pointer()
	if addr < base || (owner.Size() > 0 && addr >= base+owner.Size()) {
		s.err = domain.NewUsageError("field", "accessor does not return a field of %s", owner)
		return s
	}
	if name := fieldName(owner, addr-base, p.Type().Elem()); name != "" {
		s.name = owner.String() + "." + name
	}
	return s
}

var errNilField = errors.New("accessor returned nil")

// callAccessor calls a field accessor on ptr and returns the field pointer.
func callAccessor(get, ptr reflect.Value) (out reflect.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("accessor panicked: %v", r)
		}
	}()
	out = get.Call([]reflect.Value{ptr})[0]
	if out.IsNil() {
		return reflect.Value{}, errNilField
	}
	return out, nil
}

// fieldName returns the dotted name of the field of t at offset off with
// type ft, or "" when there is none.
func fieldName(t reflect.Type, off uintptr, ft reflect.Type) string {
	if t.Kind() != reflect.Struct {
		return ""
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if off < f.Offset || off >= f.Offset+f.Type.Size() {
			continue
		}
		if off == f.Offset && f.Type == ft {
			return f.Name
		}
		if sub := fieldName(f.Type, off-f.Offset, ft); sub != "" {
			return f.Name + "." + sub
		}
	}
	return ""
}

// Method selects a method through its method expression, e.g. (*T).name or
// T.name. The first parameter is the receiver.
func Method(expr any) Selector {
	v := reflect.ValueOf(expr)
	s := Selector{kind: MethodSelector, fn: v}
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		s.err = domain.NewUsageError("method", "expected a method expression, got %T", expr)
		return s
	}
	s.name = funcName(v)
	t := v.Type()
	if t.NumIn() == 0 {
		s.err = domain.NewUsageError("method", "%s has no receiver parameter", s.name)
		return s
	}
	recv := t.In(0)
	if recv.Kind() == reflect.Pointer {
		s.ptrRecv = true
		recv = recv.Elem()
	}
	if recv.Kind() == reflect.Interface {
		s.err = domain.NewUsageError("method", "%s: receiver must be a concrete type, got %s", s.name, recv)
		return s
	}
	s.owner = recv
	return s
}

// Static selects a package-level function or, through a pointer, a
// package-level variable.
func Static(entity any) Selector {
	v := reflect.ValueOf(entity)
	s := Selector{kind: StaticSelector}
	switch {
	case !v.IsValid():
		s.err = domain.NewUsageError("static", "nil entity")
	case v.Kind() == reflect.Func && !v.IsNil():
		s.name = funcName(v)
		s.fn = v
	case v.Kind() == reflect.Pointer && !v.IsNil():
		s.name = "*" + v.Type().Elem().String()
		s.static = v.Elem()
	default:
		s.err = domain.NewUsageError("static", "expected a function or a non-nil pointer, got %T", entity)
	}
	return s
}

// Type selects a type. Resolving it yields the type itself, never an object.
func Type[T any]() Selector {
	t := reflect.TypeOf((*T)(nil)).Elem()
	return Selector{kind: TypeSelector, name: t.String(), typ: t}
}

// ReadOnly marks a field or static variable selector as read-only.
func ReadOnly(s Selector) Selector {
	s.readOnly = true
	return s
}

// Kind returns the selector kind.
func (s Selector) Kind() SelectorKind { return s.kind }

// IsStatic reports whether the selector can be resolved without an object.
func (s Selector) IsStatic() bool {
	return s.kind == StaticSelector || s.kind == TypeSelector
}

// Err returns the error recorded when the selector was constructed.
func (s Selector) Err() error { return s.err }

func (s Selector) String() string {
	return fmt.Sprintf("%s %s", s.kind, s.name)
}

// Validate returns the first construction error among sels.
func Validate(sels []Selector) error {
	for i, s := range sels {
		if s.err != nil {
			return domain.WrapUsage("selectors", s.err, "selector %d", i)
		}
	}
	return nil
}

func funcName(v reflect.Value) string {
	fn := runtime.FuncForPC(v.Pointer())
	if fn == nil {
		return v.Type().String()
	}
	name := fn.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, "-fm")
}
