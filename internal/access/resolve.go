package access

import (
	"reflect"
	"unsafe"

	"tdd/internal/domain"
)

// object is an intermediate value while walking a path.
type object struct {
	v        reflect.Value
	readOnly bool
}

// Resolve applies sels[path[0]] to root, then sels[path[1]] to that result,
// and so on. A nil root is the same as ResolveStatic.
//
// A pointer root yields writable references. A root passed by value is copied
// and everything reached from it is read-only. A Ref may be used as root.
func Resolve(sels []Selector, path []int, root any) (Result, error) {
	if root == nil {
		return ResolveStatic(sels, path)
	}
	if err := checkPath(sels, path); err != nil {
		return Result{}, err
	}
	obj, err := rootObject(root)
	if err != nil {
		return Result{}, err
	}

	var res Result
	for i, idx := range path {
		res, err = apply(sels[idx], obj)
		if err != nil {
			return Result{}, domain.WrapUsage("resolve", err, "path element %d (selector %d)", i, idx)
		}
		if i == len(path)-1 {
			break
		}
		if res.kind != RefResult {
			if next := sels[path[i+1]]; !next.IsStatic() {
				return Result{}, domain.NewUsageError("resolve", "path element %d: %s applied to a %s, not an object", i+1, next, kindName(res.kind))
			}
			obj = object{}
			continue
		}
		obj = object{v: res.ref.v, readOnly: res.ref.readOnly}
	}
	return res, nil
}

// ResolveStatic resolves a path without an object. Every selector on the path
// must be static; the result is the resolution of the last one.
func ResolveStatic(sels []Selector, path []int) (Result, error) {
	if err := checkPath(sels, path); err != nil {
		return Result{}, err
	}
	for i, idx := range path {
		if !sels[idx].IsStatic() {
			return Result{}, domain.WrapUsage("resolve", domain.ErrNotStatic, "path element %d (%s)", i, sels[idx])
		}
	}
	return apply(sels[path[len(path)-1]], object{})
}

func checkPath(sels []Selector, path []int) error {
	if len(path) == 0 {
		return domain.NewUsageError("resolve", "empty member path")
	}
	for i, idx := range path {
		if idx < 0 || idx >= len(sels) {
			return domain.NewUsageError("resolve", "path element %d: index %d out of bounds (%d selectors)", i, idx, len(sels))
		}
		if err := sels[idx].err; err != nil {
			return domain.WrapUsage("resolve", err, "path element %d", i)
		}
	}
	return nil
}

func rootObject(root any) (object, error) {
	if ref, ok := root.(Ref); ok {
		return object{v: ref.v, readOnly: ref.readOnly}, nil
	}
	rv := reflect.ValueOf(root)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return object{}, domain.NewUsageError("resolve", "nil %s root", rv.Type())
		}
		return object{v: rv.Elem()}, nil
	}
	cp := reflect.New(rv.Type()).Elem()
	cp.Set(rv)
	return object{v: cp, readOnly: true}, nil
}

func apply(sel Selector, obj object) (Result, error) {
	switch sel.kind {
	case TypeSelector:
		return Result{kind: TypeResult, typ: sel.typ}, nil
	case StaticSelector:
		if sel.fn.IsValid() {
			return Result{kind: FuncResult, fn: Func{name: sel.name, fn: sel.fn}}, nil
		}
		return Result{kind: RefResult, ref: Ref{v: sel.static, readOnly: sel.readOnly}}, nil
	}

	if !obj.v.IsValid() {
		return Result{}, domain.WrapUsage("resolve", domain.ErrNotStatic, "%s", sel)
	}
	base, readOnly, ok := locate(obj.v, obj.readOnly, sel.owner)
	if !ok {
		return Result{}, domain.NewUsageError("resolve", "%s and %s are not related", sel, obj.v.Type())
	}

	switch sel.kind {
	case FieldSelector:
		p, err := callAccessor(sel.get, base.Addr())
		if err != nil {
			return Result{}, domain.WrapUsage("resolve", err, "%s", sel)
		}
		return Result{kind: RefResult, ref: Ref{v: p.Elem(), readOnly: readOnly || sel.readOnly}}, nil
	case MethodSelector:
		recv := base
		if sel.ptrRecv {
			if readOnly {
				return Result{}, domain.NewUsageError("resolve", "read-only %s cannot call mutating %s", base.Type(), sel)
			}
			recv = base.Addr()
		}
		return Result{kind: FuncResult, fn: Func{name: sel.name, fn: sel.fn, recv: recv}}, nil
	}
	return Result{}, domain.NewUsageError("resolve", "unsupported %s", sel)
}

// locate finds the part of v whose type is owner: v itself, the target of a
// pointer, or an embedded field at any depth. Following a pointer drops
// read-only-ness since the pointee is not part of the read-only object.
func locate(v reflect.Value, readOnly bool, owner reflect.Type) (reflect.Value, bool, bool) {
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}, false, false
		}
		v = v.Elem()
		readOnly = false
	}
	if v.Type() == owner {
		return v, readOnly, true
	}
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, false, false
	}
	for i := 0; i < v.NumField(); i++ {
		if !v.Type().Field(i).Anonymous {
			continue
		}
		if found, ro, ok := locate(open(v.Field(i)), readOnly, owner); ok {
			return found, ro, true
		}
	}
	return reflect.Value{}, false, false
}

// open strips the read-only flag reflect puts on values reached through
// unexported fields. v must be addressable.
func open(v reflect.Value) reflect.Value {
	return reflect.NewAt(v.Type(), unsafe.Pointer(v.UnsafeAddr())).Elem()
}

func kindName(k ResultKind) string {
	switch k {
	case FuncResult:
		return "function"
	case TypeResult:
		return "type"
	}
	return "reference"
}
