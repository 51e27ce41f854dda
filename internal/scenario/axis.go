package scenario

import (
	"reflect"

	"github.com/pkg/errors"

	"tdd/internal/domain"
)

var errNilItem = errors.New("nil item")

// Kind identifies how an axis combines with the scenarios accumulated so far.
type Kind int

const (
	KindNone Kind = iota
	KindSingle
	KindSet
	KindForEach
	KindSeq
	KindParameters
)

func (k Kind) String() string {
	switch k {
	case KindSingle:
		return "single"
	case KindSet:
		return "set"
	case KindForEach:
		return "for_each"
	case KindSeq:
		return "seq"
	case KindParameters:
		return "parameters"
	}
	return "none"
}

// Axis is one declared combinatorial input of a test.
//
// Items of Single, Set and ForEach may be Params, reflect.Types, nested
// Set/ForEach/Seq axes (flattened before combination) or plain values.
type Axis struct {
	kind    Kind
	items   []any
	variant func(Param) []Param

	first, step, count int
	seqErr             error

	axes []Axis
}

// Single declares exactly one option.
func Single(item any) Axis {
	return Axis{kind: KindSingle, items: []any{item}}
}

// Set declares alternatives combined by zipping with rotation.
func Set(items ...any) Axis {
	return Axis{kind: KindSet, items: items}
}

// ForEach declares options replicated against every accumulated scenario.
func ForEach(items ...any) Axis {
	return Axis{kind: KindForEach, items: items}
}

// Range declares count integers first, first+step, ... combined as a Set.
func Range(first, step, count int) Axis {
	a := Axis{kind: KindSeq, first: first, step: step, count: count}
	if count <= 0 {
		a.seqErr = domain.NewUsageError("range", "count must be positive, got %d", count)
	}
	return a
}

// Seq declares the inclusive sequence 0..last.
func Seq(last int) Axis {
	return SeqStep(0, 1, last)
}

// SeqFrom declares the inclusive sequence first..last with step 1 (or -1).
func SeqFrom(first, last int) Axis {
	if last < first {
		return SeqStep(first, -1, last)
	}
	return SeqStep(first, 1, last)
}

// SeqStep declares the inclusive sequence first, first+step, ... up to last.
func SeqStep(first, step, last int) Axis {
	if step == 0 {
		return Axis{kind: KindSeq, seqErr: domain.NewUsageError("seq", "step must not be zero")}
	}
	if (last-first)*step < 0 {
		return Axis{kind: KindSeq, seqErr: domain.NewUsageError("seq", "step %d never reaches %d from %d", step, last, first)}
	}
	span := last - first
	if span < 0 {
		span = -span
	}
	abs := step
	if abs < 0 {
		abs = -abs
	}
	return Range(first, step, 1+span/abs)
}

// Parameters declares an explicit ordered list of axes applied positionally.
func Parameters(axes ...Axis) Axis {
	return Axis{kind: KindParameters, axes: axes}
}

// Variants expands every item into itself followed by fn(item), as one Set.
func Variants(fn func(Param) []Param, items ...any) Axis {
	return Axis{kind: KindSet, items: items, variant: fn}
}

// AndPointer pairs every type item T with *T.
func AndPointer(items ...any) Axis {
	return Variants(func(p Param) []Param {
		if !p.IsType() {
			return nil
		}
		return []Param{Type(reflect.PointerTo(p.Type()))}
	}, items...)
}

// Kind returns the axis kind.
func (a Axis) Kind() Kind { return a.kind }

// Params flattens the axis into its options in declaration order.
func (a Axis) Params() ([]Param, error) {
	switch a.kind {
	case KindSeq:
		if a.seqErr != nil {
			return nil, a.seqErr
		}
		out := make([]Param, a.count)
		for i := range out {
			out[i] = Value(a.first + i*a.step)
		}
		return out, nil
	case KindSingle, KindSet, KindForEach:
	case KindParameters:
		return nil, domain.NewUsageError(a.kind.String(), "parameters cannot be nested inside another axis")
	default:
		return nil, domain.NewUsageError(a.kind.String(), "axis has no options")
	}

	var out []Param
	for i, item := range a.items {
		params, err := toParams(item)
		if err != nil {
			return nil, domain.WrapUsage(a.kind.String(), err, "item %d", i)
		}
		if a.variant == nil {
			out = append(out, params...)
			continue
		}
		for _, p := range params {
			out = append(out, p)
			out = append(out, a.variant(p)...)
		}
	}
	if len(out) == 0 {
		return nil, domain.NewUsageError(a.kind.String(), "axis must have at least one option")
	}
	return out, nil
}

func toParams(item any) ([]Param, error) {
	switch v := item.(type) {
	case nil:
		return nil, errNilItem
	case Param:
		return []Param{v}, nil
	case reflect.Type:
		return []Param{Type(v)}, nil
	case Axis:
		return v.Params()
	default:
		return []Param{Value(v)}, nil
	}
}
