package demo

import (
	"reflect"

	"tdd"
)

func newWidgetA() widgetA {
	return widgetA{n: 14, b: innerB{n: 16, c: innerC{n: 18}}}
}

type calc struct{ worker }

func (calc) times2(n int) int { return n * 2 }

func g(b bool) int {
	if b {
		return 14
	}
	return 0
}

type switchState bool

var _ = tdd.Test("test_n", func(t *tdd.T) {
	a := newWidgetA()
	t.Expect(t.Get(a, 0) == 14)
}, tdd.Members(tdd.Field(func(a *widgetA) *int { return &a.n })))

var _ = tdd.Test("test_all_n", func(t *tdd.T) {
	a := newWidgetA()
	b := tdd.Ref[innerB](t, &a, 0)
	c := tdd.Ref[innerC](t, b, 1)
	aN := tdd.Ref[int](t, &a, 2)
	bN := tdd.Ref[int](t, b, 3)
	cN := tdd.Ref[int](t, c, 4)

	t.Expect(*aN == 14)
	*aN += 100
	t.Expect(*aN == 114)
	t.Expect(*bN == 16)
	*bN += 100
	t.Expect(*bN == 116)
	t.Expect(*cN == 18)
	*cN += 100
	t.Expect(*cN == 118)

	t.Expect(aN == tdd.Ref[int](t, &a, 2))
	t.Expect(bN == tdd.Ref[int](t, &a, 0, 3))
	t.Expect(cN == tdd.Ref[int](t, &a, 0, 1, 4))
	t.Expect(a.b.c.n == 118)
}, tdd.Members(
	tdd.Field(func(a *widgetA) *innerB { return &a.b }),
	tdd.Field(func(b *innerB) *innerC { return &b.c }),
	tdd.Field(func(a *widgetA) *int { return &a.n }),
	tdd.Field(func(b *innerB) *int { return &b.n }),
	tdd.Field(func(c *innerC) *int { return &c.n }),
))

var _ = tdd.Test("test_read_only", func(t *tdd.T) {
	a := newWidgetA()
	t.Expect(t.Get(&a, 0) == 14)
	t.Expect(t.Prv(&a, 1).Type() == reflect.TypeOf(innerB{}))
}, tdd.Members(
	tdd.ReadOnly(tdd.Field(func(a *widgetA) *int { return &a.n })),
	tdd.Field(func(a *widgetA) *innerB { return &a.b }),
))

var _ = tdd.Test("test_call", func(t *tdd.T) {
	var f calc
	t.Expect(tdd.Call(t, &f, 0)(7)[0] == 14)
	t.Expect(tdd.Call(t, nil, 1)(true)[0] == 14)
}, tdd.Members(tdd.Method(calc.times2), tdd.Static(g)))

var _ = tdd.Test("test_types", func(t *tdd.T) {
	typ := t.PrvType(nil, 0)
	t.Expect(typ == reflect.TypeOf(switchState(false)))

	b := reflect.New(typ).Elem()
	b.SetBool(true)
	t.Expect(b.Bool())
}, tdd.Members(tdd.Type[switchState]()))
