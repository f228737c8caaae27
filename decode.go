// FILE: lixenwraith/unicfg/decode.go
package unicfg

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
	"go.uber.org/zap"
)

// Resolution pairs a mapping with its resolution outcome
type Resolution struct {
	Mapping Mapping
	Outcome Outcome
}

// Report lists one Resolution per mapping, in table order
type Report []Resolution

// Legacy returns the resolutions satisfied by a deprecated key
func (r Report) Legacy() Report {
	var out Report
	for _, res := range r {
		if res.Outcome.Origin == OriginLegacy {
			out = append(out, res)
		}
	}
	return out
}

// Binder populates configuration structs from mapping tables.
type Binder struct {
	resolver *Resolver
}

// NewBinder creates a binder that resolves through r
func NewBinder(r *Resolver) *Binder {
	return &Binder{resolver: r}
}

// Bind resolves and coerces every mapping of t, then assigns the results into target,
// a non-nil pointer to a struct. Fields whose keys are all absent keep their current value.
//
// Binding is all-or-nothing: every coercion failure is collected and returned joined
// under ErrBindingFailed, and target is left untouched.
func (b *Binder) Bind(t Table, target any) (Report, error) {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("bind target must be a non-nil struct pointer, got %T", target)
	}
	if err := CheckTable(t, target); err != nil {
		return nil, err
	}

	report := make(Report, 0, len(t))
	nested := make(map[string]any)
	var errs []error

	for _, m := range t {
		outcome := b.resolver.ResolveMapping(m)
		report = append(report, Resolution{Mapping: m, Outcome: outcome})
		if !outcome.Present() {
			continue
		}

		value, err := Coerce(outcome.Raw, m.Kind, m.Enum)
		if err != nil {
			b.resolver.metrics.observeBindingFailure(m.Kind)
			errs = append(errs, &BindingError{
				Key:  outcome.Key,
				Path: m.Path,
				Raw:  outcome.Raw,
				Kind: m.Kind,
				Err:  err,
			})
			continue
		}
		setNestedValue(nested, m.Path, value)
	}

	if len(errs) > 0 {
		b.resolver.logger.Error("configuration binding failed",
			zap.Int("failures", len(errs)),
			zap.Error(errors.Join(errs...)))
		return report, fmt.Errorf("%w: %w", ErrBindingFailed, errors.Join(errs...))
	}

	if err := assign(nested, rv); err != nil {
		return report, err
	}
	return report, nil
}

// assign decodes nested onto a copy of *rv and stores the copy only on success
func assign(nested map[string]any, rv reflect.Value) error {
	staged := reflect.New(rv.Elem().Type())
	staged.Elem().Set(rv.Elem())

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  staged.Interface(),
		TagName: "toml",
		// Fresh slices: a list value replaces the default list, never merges into it
		ZeroFields: true,
	})
	if err != nil {
		return fmt.Errorf("decoder creation failed: %w", err)
	}
	if err := decoder.Decode(nested); err != nil {
		return fmt.Errorf("assigning resolved values failed: %w", err)
	}

	rv.Elem().Set(staged.Elem())
	return nil
}

// Bind is a convenience for NewBinder(NewResolver(props, opts...)).Bind(t, target)
func Bind(props *Properties, t Table, target any, opts ...ResolverOption) error {
	_, err := NewBinder(NewResolver(props, opts...)).Bind(t, target)
	return err
}
