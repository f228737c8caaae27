// FILE: lixenwraith/unicfg/metrics.go
package unicfg

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts resolution outcomes, binding failures and gate decisions.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	resolutions     *prometheus.CounterVec
	bindingFailures *prometheus.CounterVec
	gateDecisions   *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg (skipped when reg is nil).
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "unicfg",
			Name:      "property_resolutions_total",
			Help:      "Property resolutions by winning origin (new, legacy, default).",
		}, []string{"origin"}),
		bindingFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "unicfg",
			Name:      "binding_failures_total",
			Help:      "Present property values that failed coercion, by declared kind.",
		}, []string{"kind"}),
		gateDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "unicfg",
			Name:      "gate_decisions_total",
			Help:      "Conditional activation gate evaluations by gate and resulting state.",
		}, []string{"gate", "state"}),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range m.Collectors() {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Collectors returns every collector owned by m
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.resolutions, m.bindingFailures, m.gateDecisions}
}

func (m *Metrics) observeResolution(o Origin) {
	if m == nil {
		return
	}
	m.resolutions.WithLabelValues(o.String()).Inc()
}

func (m *Metrics) observeBindingFailure(k Kind) {
	if m == nil {
		return
	}
	m.bindingFailures.WithLabelValues(k.String()).Inc()
}

func (m *Metrics) observeGate(name string, s GateState) {
	if m == nil {
		return
	}
	m.gateDecisions.WithLabelValues(name, s.String()).Inc()
}
