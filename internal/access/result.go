package access

import (
	"reflect"

	"tdd/internal/domain"
)

// ResultKind identifies what a member path resolved to.
type ResultKind int

const (
	RefResult ResultKind = iota
	FuncResult
	TypeResult
)

// Result is the outcome of resolving a member path.
type Result struct {
	kind ResultKind
	ref  Ref
	fn   Func
	typ  reflect.Type
}

// Kind returns what the path resolved to.
func (r Result) Kind() ResultKind { return r.kind }

// Ref returns the referenced field or variable.
func (r Result) Ref() (Ref, error) {
	if r.kind != RefResult {
		return Ref{}, domain.NewUsageError("ref", "path does not resolve to a field or variable")
	}
	return r.ref, nil
}

// Func returns the resolved invocable.
func (r Result) Func() (Func, error) {
	if r.kind != FuncResult {
		return Func{}, domain.NewUsageError("func", "path does not resolve to a function")
	}
	return r.fn, nil
}

// Type returns the resolved type. For references it is the referenced type.
func (r Result) Type() reflect.Type {
	switch r.kind {
	case RefResult:
		return r.ref.Type()
	case FuncResult:
		return r.fn.fn.Type()
	}
	return r.typ
}

// Ref is an aliasing reference to an addressable field or variable.
type Ref struct {
	v        reflect.Value
	readOnly bool
}

// Get returns a copy of the referenced value.
func (r Ref) Get() any { return r.v.Interface() }

// Set stores x through the reference.
func (r Ref) Set(x any) error {
	if r.readOnly {
		return domain.NewUsageError("set", "%s reference is read-only", r.v.Type())
	}
	var xv reflect.Value
	if x == nil {
		xv = reflect.Zero(r.v.Type())
	} else {
		xv = reflect.ValueOf(x)
	}
	if !xv.Type().AssignableTo(r.v.Type()) {
		return domain.NewUsageError("set", "cannot assign %s to %s", xv.Type(), r.v.Type())
	}
	r.v.Set(xv)
	return nil
}

// Type returns the type of the referenced value.
func (r Ref) Type() reflect.Type { return r.v.Type() }

// ReadOnly reports whether writes through the reference are rejected.
func (r Ref) ReadOnly() bool { return r.readOnly }

// Value exposes the underlying addressable reflect.Value.
func (r Ref) Value() reflect.Value { return r.v }

// Ptr returns a typed pointer to the referenced value. Two references to the
// same member yield equal pointers.
func Ptr[V any](r Ref) (*V, error) {
	want := reflect.TypeOf((*V)(nil)).Elem()
	if r.v.Type() != want {
		return nil, domain.NewUsageError("ptr", "reference has type %s, not %s", r.v.Type(), want)
	}
	if r.readOnly {
		return nil, domain.NewUsageError("ptr", "%s reference is read-only", want)
	}
	return r.v.Addr().Interface().(*V), nil
}

// Func is a bound method or a static function.
type Func struct {
	name string
	fn   reflect.Value
	recv reflect.Value
}

// Bound reports whether the function carries a receiver.
func (f Func) Bound() bool { return f.recv.IsValid() }

// Call invokes the function and returns its results.
func (f Func) Call(args ...any) ([]any, error) {
	t := f.fn.Type()
	in := make([]reflect.Value, 0, len(args)+1)
	offset := 0
	if f.Bound() {
		in = append(in, f.recv)
		offset = 1
	}

	fixed := t.NumIn() - offset
	if t.IsVariadic() {
		fixed--
		if len(args) < fixed {
			return nil, domain.NewUsageError("call", "%s takes at least %d arguments, got %d", f.name, fixed, len(args))
		}
	} else if len(args) != fixed {
		return nil, domain.NewUsageError("call", "%s takes %d arguments, got %d", f.name, fixed, len(args))
	}

	for i, arg := range args {
		var pt reflect.Type
		if t.IsVariadic() && i >= fixed {
			pt = t.In(t.NumIn() - 1).Elem()
		} else {
			pt = t.In(i + offset)
		}
		if arg == nil {
			in = append(in, reflect.Zero(pt))
			continue
		}
		av := reflect.ValueOf(arg)
		if !av.Type().AssignableTo(pt) {
			if !av.Type().ConvertibleTo(pt) || av.Kind() != pt.Kind() {
				return nil, domain.NewUsageError("call", "%s argument %d: cannot use %s as %s", f.name, i, av.Type(), pt)
			}
			av = av.Convert(pt)
		}
		in = append(in, av)
	}

	out := f.fn.Call(in)
	results := make([]any, len(out))
	for i, v := range out {
		results[i] = v.Interface()
	}
	return results, nil
}
