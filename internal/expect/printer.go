package expect

import (
	"fmt"
	"io"
	"reflect"
	"sync"
)

// Printer receives diagnostics chained after an assertion. The printer of a
// passing assertion discards everything.
type Printer struct {
	rec *Recorder
	idx int
	w   io.Writer
}

var silent = &Printer{}

// Verbose reports whether output is kept.
func (p *Printer) Verbose() bool { return p.w != nil }

// Write implements io.Writer so formatters can use fmt.Fprintf.
func (p *Printer) Write(b []byte) (int, error) {
	if p.w == nil {
		return len(b), nil
	}
	p.rec.appendOutput(p.idx, b)
	return p.w.Write(b)
}

// Printf writes formatted text as is.
func (p *Printer) Printf(format string, args ...any) *Printer {
	if p.w != nil {
		fmt.Fprintf(p, format, args...)
	}
	return p
}

// Print writes each value through the formatter registered for its type.
func (p *Printer) Print(values ...any) *Printer {
	if p.w == nil {
		return p
	}
	for _, v := range values {
		p = format(p, v)
	}
	return p
}

type formatFunc func(*Printer, any) *Printer

var (
	formattersMu sync.RWMutex
	formatters   = map[reflect.Type]formatFunc{}
)

// RegisterFormatter installs fn as the formatter for values of type T,
// replacing any earlier one.
func RegisterFormatter[T any](fn func(*Printer, T) *Printer) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	formattersMu.Lock()
	defer formattersMu.Unlock()
	formatters[t] = func(p *Printer, v any) *Printer { return fn(p, v.(T)) }
}

func lookupFormatter(t reflect.Type) (formatFunc, bool) {
	formattersMu.RLock()
	defer formattersMu.RUnlock()
	fn, ok := formatters[t]
	return fn, ok
}

func format(p *Printer, v any) *Printer {
	if v == nil {
		return p.Printf("%v\n", v)
	}
	if fn, ok := lookupFormatter(reflect.TypeOf(v)); ok {
		if next := fn(p, v); next != nil {
			return next
		}
		return p
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return p.Printf("%d\n", v)
	case reflect.String:
		return p.Printf("%s\n", v)
	}
	return p.Printf("%v\n", v)
}
