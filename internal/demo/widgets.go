// Package demo is a small suite exercising every declaration form. It is
// linked into the tdd binary so that a bare "tdd" run has something to do.
package demo

import (
	"reflect"

	"tdd"
)

type worker struct{}

func (worker) works() bool { return true }
func (worker) addChild(any) bool { return true }

type capable interface {
	works() bool
	addChild(any) bool
}

type (
	widgetA struct {
		worker
		n int
		b innerB
	}
	innerB struct {
		n int
		c innerC
	}
	innerC struct{ n int }
	widgetB struct{ worker }
	widgetC struct{ worker }
	widgetD struct{ worker }
	widgetE struct{ worker }
)

var widgets = tdd.Set(tdd.TypeOf[widgetA](), tdd.TypeOf[widgetB](), tdd.TypeOf[widgetC]())

// instance returns a usable value of the parameter's type. Pointer types get
// a freshly allocated pointee instead of nil.
func instance(p tdd.Param) any {
	v := reflect.New(p.Type()).Elem()
	if v.Kind() == reflect.Pointer {
		v.Set(reflect.New(v.Type().Elem()))
	}
	return v.Interface()
}

var _ = tdd.Test("plus", func(t *tdd.T) {
	t.Expect(14+2 == 16)
})

var _ = tdd.Test("runtime_test", func(t *tdd.T) {
	t.Expect(!t.IsConstantEvaluated())
})

var _ = tdd.CTest("constant_time_test", func(t *tdd.T) {
	t.Expect(t.IsConstantEvaluated())
})

var _ = tdd.CRTest("constant_and_runtime_test", func(t *tdd.T) {
	var a widgetA
	t.Expect(a.works())
})

var _ = tdd.Test("test_widget_a", func(t *tdd.T) {
	var a widgetA
	t.Expect(a.works())
})

var _ = tdd.Test("test_widget_b", func(t *tdd.T) {
	var b widgetB
	t.Expect(b.works())
})

var _ = tdd.Test("test_widget_c", func(t *tdd.T) {
	var c widgetC
	t.Expect(c.works())
})

var _ = tdd.Test("test_widgets1", func(t *tdd.T) {
	x, ok := instance(t.X()).(capable)
	t.Expect(ok && x.works())
}, tdd.With(widgets))

// A, *A, B, *B, C, *C
var _ = tdd.Test("test_widgets", func(t *tdd.T) {
	x, ok := instance(t.X()).(capable)
	t.Expect(ok && x.works())
}, tdd.With(tdd.AndPointer(widgets)))

// (A, D) (B, E) (C, widgetA)
var _ = tdd.Test("test_child_widgets_set", func(t *tdd.T) {
	t.Expect(len(t.Scenario()) == 2)
}, tdd.With(tdd.Parameters(
	widgets,
	tdd.Set(tdd.TypeOf[widgetD](), tdd.TypeOf[widgetE](), tdd.TypeOf[widgetA]()),
)))

// Every parent paired with every child
var _ = tdd.Test("test_child_widgets", func(t *tdd.T) {
	parent := instance(t.Param(0)).(capable)
	child := t.New(1)
	t.Expect(parent.addChild(child))
}, tdd.With(tdd.Parameters(
	tdd.ForEach(widgets),
	tdd.Set(tdd.TypeOf[widgetD](), tdd.TypeOf[widgetE](), tdd.TypeOf[widgetA]()),
)))
