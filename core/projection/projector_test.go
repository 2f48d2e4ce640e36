package projection_test

import (
	"context"
	"testing"

	"github.com/goto/siphon/core/projection"
	"github.com/goto/siphon/domain"
	"github.com/goto/siphon/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newProjector(t *testing.T) (*projection.Projector, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { provider.Shutdown(context.Background()) })
	return projection.NewProjector(log.NewNoop(), provider.Meter("test")), reader
}

func failOpenCount(t *testing.T, reader *sdkmetric.ManualReader) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "siphon.projection.fail_open" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
		}
	}
	return total
}

func record(pairs ...interface{}) domain.Record {
	r := domain.NewRecord()
	for i := 0; i+1 < len(pairs); i += 2 {
		r.Set(pairs[i].(string), pairs[i+1])
	}
	return r
}

func TestProject(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name             string
		input            domain.Record
		prefs            domain.FieldPreferenceSet
		expected         domain.Record
		expectedFellBack bool
	}{
		{
			name:     "no preferences keeps everything",
			input:    record("a", int64(1), "b", int64(2)),
			prefs:    nil,
			expected: record("a", int64(1), "b", int64(2)),
		},
		{
			name:     "excluded field is dropped",
			input:    record("a", int64(1), "b", int64(2), "c", "x"),
			prefs:    domain.FieldPreferenceSet{"b": false},
			expected: record("a", int64(1), "c", "x"),
		},
		{
			name:     "explicitly selected and unknown fields are kept",
			input:    record("a", int64(1), "b", int64(2)),
			prefs:    domain.FieldPreferenceSet{"a": true, "zzz": false},
			expected: record("a", int64(1), "b", int64(2)),
		},
		{
			name:             "every field excluded returns the original record",
			input:            record("a", int64(1), "b", int64(2)),
			prefs:            domain.FieldPreferenceSet{"a": false, "b": false},
			expected:         record("a", int64(1), "b", int64(2)),
			expectedFellBack: true,
		},
		{
			name:     "empty record stays empty",
			input:    domain.NewRecord(),
			prefs:    domain.FieldPreferenceSet{"a": false},
			expected: domain.NewRecord(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, _ := newProjector(t)
			actual, fellBack := p.Project(ctx, "api/ep", tc.input, tc.prefs)

			assert.Equal(t, tc.expectedFellBack, fellBack)
			assert.Equal(t, tc.expected.Keys(), actual.Keys())
			assert.True(t, tc.expected.Equal(actual))
		})
	}
}

func TestProject_PreservesKeyOrder(t *testing.T) {
	p, _ := newProjector(t)
	actual, _ := p.Project(context.Background(), "api/ep", record("z", 1, "m", 2, "a", 3), domain.FieldPreferenceSet{"m": false})

	assert.Equal(t, []string{"z", "a"}, actual.Keys())
}

func TestProjectAll_CountsFailOpen(t *testing.T) {
	p, reader := newProjector(t)
	records := []domain.Record{
		record("a", 1, "b", 2),
		record("a", 1, "c", 3),
		record("b", 2),
	}

	projected, fellBack := p.ProjectAll(context.Background(), "api/ep", records, domain.FieldPreferenceSet{"a": false, "b": false})

	require.Len(t, projected, 3)
	assert.Equal(t, 2, fellBack)
	assert.Equal(t, []string{"a", "b"}, projected[0].Keys())
	assert.Equal(t, []string{"c"}, projected[1].Keys())
	assert.Equal(t, []string{"b"}, projected[2].Keys())
	assert.EqualValues(t, 2, failOpenCount(t, reader))
}
