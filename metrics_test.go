// FILE: lixenwraith/unicfg/metrics_test.go
package unicfg

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	r := resolverFor(map[string]string{
		"app.store":    "s3",
		"old.interval": "bogus",
		testGate.Key:   "true",
	}, WithMetrics(m))

	target := defaultTestStore()
	_, err = NewBinder(r).Bind(testTable, &target)
	require.Error(t, err)

	_, err = r.Gate(testGate)
	require.NoError(t, err)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.resolutions.WithLabelValues("legacy")))
	// store plus the gate key
	assert.Equal(t, float64(2), testutil.ToFloat64(m.resolutions.WithLabelValues("new")))
	assert.Equal(t, float64(len(testTable)-2), testutil.ToFloat64(m.resolutions.WithLabelValues("default")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.bindingFailures.WithLabelValues("duration")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.gateDecisions.WithLabelValues(testGate.Name, "active")))

	count, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Positive(t, count)

	t.Run("DuplicateRegistration", func(t *testing.T) {
		_, err := NewMetrics(reg)
		assert.Error(t, err)
	})

	t.Run("NilRegistererAndNilMetrics", func(t *testing.T) {
		unregistered, err := NewMetrics(nil)
		require.NoError(t, err)
		assert.Len(t, unregistered.Collectors(), 3)

		var none *Metrics
		assert.NotPanics(t, func() {
			none.observeResolution(OriginNew)
			none.observeBindingFailure(KindBool)
			none.observeGate("g", GateActive)
		})
	})
}
