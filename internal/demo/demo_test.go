package demo

import (
	"bytes"
	"context"
	"reflect"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tdd/internal/config"
	"tdd/internal/execution"
	"tdd/internal/registry"
)

func TestSuitePasses(t *testing.T) {
	color.NoColor = true
	tests := registry.Default.Tests()
	require.NotEmpty(t, tests)

	var out bytes.Buffer
	executor := execution.NewSequentialExecutor(config.New(), execution.NewRunner(nil), execution.NewPhaseScheduler(), nil, &out)
	result, err := executor.Execute(context.Background(), tests)

	require.NoError(t, err, out.String())
	assert.True(t, result.Passed(), out.String())
	assert.Equal(t, uint64(execution.Evaluations(tests)), result.Completed)
	assert.Equal(t, result.Instances, result.Done)
}

func TestSuiteInstances(t *testing.T) {
	tests := []struct {
		name      string
		instances int
	}{
		{"plus", 1},
		{"test_widgets1", 3},
		{"test_widgets", 6},
		{"test_child_widgets_set", 3},
		{"test_child_widgets", 9},
		{"test_is_base", 4},
		{"test_rotation", 3},
		{"test_sequences", 3},
		{"test_countdown", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := registry.Default.Lookup(tt.name)
			require.True(t, ok)
			assert.Equal(t, tt.instances, d.Instances())
		})
	}
}

func TestIsBaseOf(t *testing.T) {
	assert.True(t, isBaseOf(reflect.TypeOf(base{}), reflect.TypeOf(&derived{})))
	assert.True(t, isBaseOf(reflect.TypeOf(&base{}), reflect.TypeOf(base{})))
	assert.False(t, isBaseOf(reflect.TypeOf(derived{}), reflect.TypeOf(base{})))
	assert.False(t, isBaseOf(reflect.TypeOf(base{}), reflect.TypeOf(0)))
}
