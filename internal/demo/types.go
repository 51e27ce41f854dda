package demo

import (
	"fmt"
	"reflect"

	"tdd"
)

type base struct{}

type derived struct{ base }

// isBaseOf reports whether derived is b or embeds it, ignoring pointers.
func isBaseOf(b, derived reflect.Type) bool {
	for b.Kind() == reflect.Pointer {
		b = b.Elem()
	}
	for derived.Kind() == reflect.Pointer {
		derived = derived.Elem()
	}
	if b == derived {
		return true
	}
	if derived.Kind() != reflect.Struct {
		return false
	}
	for i := 0; i < derived.NumField(); i++ {
		if f := derived.Field(i); f.Anonymous && isBaseOf(b, f.Type) {
			return true
		}
	}
	return false
}

var _ = tdd.Test("test_is_base", func(t *tdd.T) {
	t.Expect(isBaseOf(t.Type(0), t.Type(1)))
}, tdd.With(tdd.Parameters(
	tdd.ForEach(tdd.AndPointer(tdd.TypeOf[base]())),
	tdd.ForEach(tdd.AndPointer(tdd.TypeOf[derived]())),
)))

type pair struct{ a, b int }

func init() {
	tdd.RegisterFormatter(func(p *tdd.Printer, s pair) *tdd.Printer {
		return p.Printf("can print in special format: [%d, %d]\n", s.a, s.b)
	})
}

var passOnPurpose = true

var _ = tdd.Test("test_print", func(t *tdd.T) {
	t.Expect(passOnPurpose).Print("can print")
})

var _ = tdd.Test("test_custom_print", func(t *tdd.T) {
	t.Expect(passOnPurpose).Print(pair{a: 14, b: 16})
})

var _ = tdd.CTest("test_const", func(t *tdd.T) {
	t.Expect(t.X().Value() == 14)
}, tdd.With(tdd.Single(14)))

// Three alternatives against two: (1, a) (2, b) (1, c)
var _ = tdd.Test("test_rotation", func(t *tdd.T) {
	n := t.Value(0).(int)
	s := t.Value(1).(string)
	t.Expect(n == 1 || n == 2).Print(n)
	t.Expect(s == "a" || s == "b" || s == "c").Print(s)
	t.Expect(fmt.Sprint(n, s) != "2 c")
}, tdd.With(tdd.Parameters(tdd.Set(1, 2), tdd.Set("a", "b", "c"))))

var _ = tdd.CRTest("test_sequences", func(t *tdd.T) {
	step := t.Value(0).(int)
	t.Expect(step%5 == 0)
	t.Expect(step >= 10 && step <= 20)
}, tdd.With(tdd.Range(10, 5, 3)))

var _ = tdd.Test("test_countdown", func(t *tdd.T) {
	n := t.Value(0).(int)
	t.Expect(n >= 1 && n <= 3)
}, tdd.With(tdd.SeqFrom(3, 1)))
