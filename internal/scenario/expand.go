package scenario

import "tdd/internal/domain"

// Unwrap returns the positional axes of a test's axis descriptor: the
// children of a Parameters axis, nothing for an undeclared axis, or the axis
// itself.
func Unwrap(a Axis) []Axis {
	switch a.kind {
	case KindNone:
		return nil
	case KindParameters:
		return a.axes
	}
	return []Axis{a}
}

// Expand combines the axes into the ordered list of scenarios.
//
// The axes are folded from the last to the first, each option being placed in
// front of the scenarios accumulated so far. ForEach replicates every
// accumulated scenario once per option (option-major), so a list of ForEach
// axes yields the cross product with the leftmost axis varying slowest. Every
// other kind pairs the front of the accumulator with the front of its options
// and rotates both, max(len(acc), len(options)) times.
func Expand(axes []Axis) ([]Scenario, error) {
	acc := []Scenario{{}}
	for i := len(axes) - 1; i >= 0; i-- {
		axis := axes[i]
		if axis.kind == KindNone {
			return nil, domain.NewUsageError("expand", "axis %d is not declared", i)
		}
		params, err := axis.Params()
		if err != nil {
			return nil, domain.WrapUsage("expand", err, "axis %d", i)
		}
		if axis.kind == KindForEach {
			acc = broadcast(acc, params)
		} else {
			acc = rotate(acc, params)
		}
	}
	return acc, nil
}

func broadcast(acc []Scenario, params []Param) []Scenario {
	out := make([]Scenario, 0, len(acc)*len(params))
	for _, p := range params {
		for _, s := range acc {
			out = append(out, s.prepend(p))
		}
	}
	return out
}

func rotate(acc []Scenario, params []Param) []Scenario {
	n := len(acc)
	if len(params) > n {
		n = len(params)
	}
	out := make([]Scenario, n)
	for k := 0; k < n; k++ {
		out[k] = acc[k%len(acc)].prepend(params[k%len(params)])
	}
	return out
}
