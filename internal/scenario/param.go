package scenario

import (
	"fmt"
	"reflect"
	"strings"
)

// Param is one bound scenario parameter: a type or a value.
type Param struct {
	typ    reflect.Type
	value  any
	isType bool
}

// TypeOf returns a type parameter for T.
func TypeOf[T any]() Param {
	return Param{typ: reflect.TypeOf((*T)(nil)).Elem(), isType: true}
}

// Type wraps an existing reflect.Type as a type parameter.
func Type(t reflect.Type) Param {
	return Param{typ: t, isType: true}
}

// Value returns a value parameter.
func Value(v any) Param {
	return Param{typ: reflect.TypeOf(v), value: v}
}

// IsType reports whether the parameter binds a type rather than a value.
func (p Param) IsType() bool { return p.isType }

// Type returns the bound type, or the dynamic type of the bound value.
func (p Param) Type() reflect.Type { return p.typ }

// Value returns the bound value; nil for type parameters.
func (p Param) Value() any { return p.value }

// New allocates a zero value of the parameter's type and returns a pointer to it.
func (p Param) New() any {
	if p.typ == nil {
		return nil
	}
	return reflect.New(p.typ).Interface()
}

func (p Param) String() string {
	if p.isType {
		if p.typ == nil {
			return "<nil>"
		}
		return p.typ.String()
	}
	return fmt.Sprintf("%v", p.value)
}

// Scenario is an ordered tuple of bound parameters, one per axis slot.
type Scenario []Param

// prepend returns a new scenario with p in front; the receiver is not modified.
func (s Scenario) prepend(p Param) Scenario {
	out := make(Scenario, 0, len(s)+1)
	out = append(out, p)
	return append(out, s...)
}

func (s Scenario) String() string {
	parts := make([]string, len(s))
	for i, p := range s {
		parts[i] = p.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
