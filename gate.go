// FILE: lixenwraith/unicfg/gate.go
package unicfg

import (
	"go.uber.org/zap"
)

// GateState is the decision of a conditional activation gate
type GateState int

const (
	GateInactive GateState = iota
	GateActive
)

func (s GateState) String() string {
	if s == GateActive {
		return "active"
	}
	return "inactive"
}

// Gate guards construction of an optional component behind a boolean property
// resolved with the same new-over-legacy rule as any mapped field.
// An absent property keeps the component off; there is no implicit "on".
type Gate struct {
	// Name identifies the guarded component in logs and metrics
	Name string
	// Key is the canonical boolean property
	Key string
	// Legacy lists deprecated aliases, most preferred first
	Legacy []string
}

// Mapping returns the gate as a boolean mapping, for table-style validation
func (g Gate) Mapping() Mapping {
	return Mapping{Key: g.Key, Legacy: g.Legacy, Path: "enabled", Kind: KindBool}
}

// Gate evaluates g. A present but malformed boolean is a *BindingError.
func (r *Resolver) Gate(g Gate) (GateState, error) {
	state, _, err := r.GateOutcome(g)
	return state, err
}

// GateOutcome evaluates g and also returns the resolution it was decided from
func (r *Resolver) GateOutcome(g Gate) (GateState, Outcome, error) {
	outcome := r.Resolve(g.Key, g.Legacy...)
	state := GateInactive
	if outcome.Present() {
		on, err := ParseBool(outcome.Raw)
		if err != nil {
			r.metrics.observeBindingFailure(KindBool)
			return GateInactive, outcome, &BindingError{
				Key:  outcome.Key,
				Path: g.Name,
				Raw:  outcome.Raw,
				Kind: KindBool,
				Err:  err,
			}
		}
		if on {
			state = GateActive
		}
	}
	r.metrics.observeGate(g.Name, state)
	r.logger.Debug("gate evaluated",
		zap.String("gate", g.Name),
		zap.String("state", state.String()),
		zap.String("origin", outcome.Origin.String()),
		zap.String("key", outcome.Key))
	return state, outcome, nil
}

// Active reports whether g is ACTIVE
func (r *Resolver) Active(g Gate) (bool, error) {
	state, err := r.Gate(g)
	return state == GateActive, err
}

// BuildIf calls build only when g is ACTIVE. The boolean result reports whether
// build was called; on an inactive gate the zero T is returned.
func BuildIf[T any](r *Resolver, g Gate, build func() (T, error)) (T, bool, error) {
	var zero T
	active, err := r.Active(g)
	if err != nil || !active {
		return zero, false, err
	}
	v, err := build()
	if err != nil {
		return zero, true, err
	}
	return v, true, nil
}
