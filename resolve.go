// FILE: lixenwraith/unicfg/resolve.go
package unicfg

import (
	"go.uber.org/zap"
)

// Origin tells which candidate key supplied a resolved value
type Origin int

const (
	// OriginDefault means no candidate key was present; the destination keeps its default
	OriginDefault Origin = iota
	// OriginNew means the canonical key supplied the value
	OriginNew
	// OriginLegacy means a deprecated alias supplied the value
	OriginLegacy
)

func (o Origin) String() string {
	switch o {
	case OriginNew:
		return "new"
	case OriginLegacy:
		return "legacy"
	default:
		return "default"
	}
}

// Outcome is the result of resolving one canonical key and its legacy aliases.
type Outcome struct {
	Key    string // winning key, empty for OriginDefault
	Raw    string // raw value of Key
	Origin Origin
	Source string // name of the property source holding Key
}

// Present reports whether any candidate key was found
func (o Outcome) Present() bool { return o.Origin != OriginDefault }

// Resolver applies the new-over-legacy precedence rule to a property view.
type Resolver struct {
	props   *Properties
	logger  *zap.Logger
	metrics *Metrics
}

// ResolverOption configures a Resolver
type ResolverOption func(*Resolver)

// WithLogger sets the logger used to report deprecated keys (default: no-op)
func WithLogger(l *zap.Logger) ResolverOption {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithMetrics records outcomes into m
func WithMetrics(m *Metrics) ResolverOption {
	return func(r *Resolver) { r.metrics = m }
}

// NewResolver creates a resolver over props
func NewResolver(props *Properties, opts ...ResolverOption) *Resolver {
	r := &Resolver{props: props, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Properties returns the underlying property view
func (r *Resolver) Properties() *Properties { return r.props }

// Logger returns the logger the resolver reports to
func (r *Resolver) Logger() *zap.Logger { return r.logger }

// Metrics returns the collectors set with WithMetrics, or nil
func (r *Resolver) Metrics() *Metrics { return r.metrics }

// Resolve picks the value for key, falling back to legacy aliases in declared order.
//
// The canonical key wins whenever it is present in any source, even if a legacy alias
// is present in a higher priority source. Values are never merged between candidates.
// Among legacy aliases only the first present one is honored.
func (r *Resolver) Resolve(key string, legacy ...string) Outcome {
	if raw, src, ok := r.props.lookupWithSource(key); ok {
		for _, alias := range legacy {
			if r.props.Has(alias) {
				r.logger.Warn("deprecated property ignored, replacement is set",
					zap.String("key", alias),
					zap.String("replacement", key))
			}
		}
		r.metrics.observeResolution(OriginNew)
		return Outcome{Key: key, Raw: raw, Origin: OriginNew, Source: src}
	}

	for i, alias := range legacy {
		raw, src, ok := r.props.lookupWithSource(alias)
		if !ok {
			continue
		}
		r.logger.Warn("deprecated property in use",
			zap.String("key", alias),
			zap.String("replacement", key),
			zap.String("source", src))
		for _, shadowed := range legacy[i+1:] {
			if r.props.Has(shadowed) {
				r.logger.Debug("deprecated property shadowed by earlier alias",
					zap.String("key", shadowed),
					zap.String("winner", alias))
			}
		}
		r.metrics.observeResolution(OriginLegacy)
		return Outcome{Key: alias, Raw: raw, Origin: OriginLegacy, Source: src}
	}

	r.metrics.observeResolution(OriginDefault)
	return Outcome{Origin: OriginDefault}
}

// ResolveMapping resolves m's canonical key and legacy aliases
func (r *Resolver) ResolveMapping(m Mapping) Outcome {
	return r.Resolve(m.Key, m.Legacy...)
}
