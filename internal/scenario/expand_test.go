package scenario

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tdd/internal/domain"
)

type (
	widgetA struct{}
	widgetB struct{}
	widgetC struct{}
	widgetD struct{}
	widgetE struct{}
	widgetF struct{}
)

// render turns scenarios into comparable string tuples.
func render(scenarios []Scenario) [][]string {
	out := make([][]string, len(scenarios))
	for i, s := range scenarios {
		row := make([]string, len(s))
		for j, p := range s {
			row[j] = p.String()
		}
		out[i] = row
	}
	return out
}

func TestExpand_NoAxes(t *testing.T) {
	scenarios, err := Expand(nil)
	require.NoError(t, err)
	require.Len(t, scenarios, 1)
	assert.Empty(t, scenarios[0])
}

func TestExpand_ForEachIsRowMajor(t *testing.T) {
	scenarios, err := Expand([]Axis{ForEach(1, 2), ForEach("a", "b", "c")})
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		{"1", "a"}, {"1", "b"}, {"1", "c"},
		{"2", "a"}, {"2", "b"}, {"2", "c"},
	}, render(scenarios))
}

func TestExpand_ForEachSizesMultiply(t *testing.T) {
	tests := []struct {
		name  string
		axes  []Axis
		count int
	}{
		{"one axis", []Axis{ForEach(1, 2, 3)}, 3},
		{"two axes", []Axis{ForEach(1, 2, 3), ForEach(1, 2)}, 6},
		{"three axes", []Axis{ForEach(1, 2), ForEach(1, 2, 3), ForEach(1, 2, 3, 4)}, 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scenarios, err := Expand(tt.axes)
			require.NoError(t, err)
			assert.Len(t, scenarios, tt.count)
			for _, s := range scenarios {
				assert.Len(t, s, len(tt.axes))
			}
		})
	}
}

func TestExpand_EqualSetsZip(t *testing.T) {
	scenarios, err := Expand([]Axis{Set(1, 2, 3), Set("x", "y", "z")})
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"1", "x"}, {"2", "y"}, {"3", "z"}}, render(scenarios))
}

func TestExpand_SingletonBroadcasts(t *testing.T) {
	t.Run("singleton first", func(t *testing.T) {
		scenarios, err := Expand([]Axis{Set(7), ForEach(1, 2, 3)})
		require.NoError(t, err)
		assert.Equal(t, [][]string{{"7", "1"}, {"7", "2"}, {"7", "3"}}, render(scenarios))
	})

	t.Run("singleton last", func(t *testing.T) {
		scenarios, err := Expand([]Axis{ForEach(1, 2, 3), Single(7)})
		require.NoError(t, err)
		assert.Equal(t, [][]string{{"1", "7"}, {"2", "7"}, {"3", "7"}}, render(scenarios))
	})
}

func TestExpand_CrossProductOfTypes(t *testing.T) {
	axes := Unwrap(Parameters(
		ForEach(TypeOf[widgetA](), TypeOf[widgetB](), TypeOf[widgetC]()),
		Set(TypeOf[widgetD](), TypeOf[widgetE](), TypeOf[widgetF]()),
	))
	scenarios, err := Expand(axes)
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		{"scenario.widgetA", "scenario.widgetD"},
		{"scenario.widgetA", "scenario.widgetE"},
		{"scenario.widgetA", "scenario.widgetF"},
		{"scenario.widgetB", "scenario.widgetD"},
		{"scenario.widgetB", "scenario.widgetE"},
		{"scenario.widgetB", "scenario.widgetF"},
		{"scenario.widgetC", "scenario.widgetD"},
		{"scenario.widgetC", "scenario.widgetE"},
		{"scenario.widgetC", "scenario.widgetF"},
	}, render(scenarios))
}

func TestExpand_RotationWithUnequalSets(t *testing.T) {
	tests := []struct {
		name     string
		axes     []Axis
		expected [][]string
	}{
		{
			name:     "shorter first axis cycles",
			axes:     []Axis{Set(1, 2), Set("a", "b", "c")},
			expected: [][]string{{"1", "a"}, {"2", "b"}, {"1", "c"}},
		},
		{
			name:     "shorter last axis cycles",
			axes:     []Axis{Set(1, 2, 3, 4), Set("x", "y")},
			expected: [][]string{{"1", "x"}, {"2", "y"}, {"3", "x"}, {"4", "y"}},
		},
		{
			name:     "coprime sizes",
			axes:     []Axis{Set(1, 2, 3), Set("p", "q")},
			expected: [][]string{{"1", "p"}, {"2", "q"}, {"3", "p"}},
		},
		{
			name: "set after broadcast keeps accumulator order",
			axes: []Axis{Set(1, 2), ForEach("a", "b"), Set("x")},
			expected: [][]string{
				{"1", "a", "x"}, {"2", "b", "x"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scenarios, err := Expand(tt.axes)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, render(scenarios))
		})
	}
}

func TestExpand_NestedAxesAreFlattened(t *testing.T) {
	scenarios, err := Expand([]Axis{ForEach(Set(1, 2), 3, ForEach(4)), Set("z")})
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"1", "z"}, {"2", "z"}, {"3", "z"}, {"4", "z"}}, render(scenarios))
}

func TestExpand_Sequences(t *testing.T) {
	tests := []struct {
		name     string
		axis     Axis
		expected []string
	}{
		{"range", Range(10, 5, 3), []string{"10", "15", "20"}},
		{"seq to last", Seq(3), []string{"0", "1", "2", "3"}},
		{"seq descending", SeqFrom(3, 1), []string{"3", "2", "1"}},
		{"seq with step", SeqStep(0, 2, 5), []string{"0", "2", "4"}},
		{"single element", SeqFrom(4, 4), []string{"4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scenarios, err := Expand([]Axis{tt.axis})
			require.NoError(t, err)
			var got []string
			for _, s := range scenarios {
				got = append(got, s[0].String())
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestExpand_RangeUsesSetSemantics(t *testing.T) {
	scenarios, err := Expand([]Axis{Range(0, 1, 2), Set("a", "b", "c", "d")})
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"0", "a"}, {"1", "b"}, {"0", "c"}, {"1", "d"}}, render(scenarios))
}

func TestExpand_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		axes []Axis
	}{
		{"empty set", []Axis{Set()}},
		{"empty for_each", []Axis{ForEach()}},
		{"zero count range", []Axis{Range(0, 1, 0)}},
		{"zero step", []Axis{SeqStep(0, 0, 3)}},
		{"step away from last", []Axis{SeqStep(0, -1, 3)}},
		{"nested parameters", []Axis{Set(Parameters(Set(1)))}},
		{"nil item", []Axis{Set(1, nil)}},
		{"undeclared axis", []Axis{{}}},
		{"empty nested set", []Axis{ForEach(Set())}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Expand(tt.axes)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrUsage)
		})
	}
}

func TestAndPointer(t *testing.T) {
	params, err := AndPointer(TypeOf[widgetA](), TypeOf[widgetB](), 3).Params()
	require.NoError(t, err)
	require.Len(t, params, 5)

	assert.Equal(t, reflect.TypeOf(widgetA{}), params[0].Type())
	assert.Equal(t, reflect.TypeOf(&widgetA{}), params[1].Type())
	assert.Equal(t, reflect.TypeOf(widgetB{}), params[2].Type())
	assert.Equal(t, reflect.TypeOf(&widgetB{}), params[3].Type())
	assert.False(t, params[4].IsType())
	assert.Equal(t, 3, params[4].Value())
}

func TestUnwrap(t *testing.T) {
	assert.Nil(t, Unwrap(Axis{}))
	assert.Len(t, Unwrap(Set(1, 2)), 1)
	assert.Len(t, Unwrap(Parameters(Set(1), ForEach(2), Single(3))), 3)
}

func TestParam(t *testing.T) {
	p := TypeOf[widgetA]()
	assert.True(t, p.IsType())
	assert.Nil(t, p.Value())
	_, ok := p.New().(*widgetA)
	assert.True(t, ok)

	v := Value(14)
	assert.False(t, v.IsType())
	assert.Equal(t, reflect.TypeOf(0), v.Type())
	assert.Equal(t, "14", v.String())

	assert.Equal(t, "(14, scenario.widgetA)", Scenario{v, p}.String())
}
