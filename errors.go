// FILE: lixenwraith/unicfg/errors.go
package unicfg

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by sources, coercion and binding.
var (
	// ErrConfigNotFound is returned when an explicitly named configuration file does not exist.
	// It is not fatal to Builder.Build, the remaining sources are still usable.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrCLIParse wraps command-line property parsing failures
	ErrCLIParse = errors.New("failed to parse command-line arguments")

	// ErrValueSize is returned when a raw property value exceeds the configured limit
	ErrValueSize = errors.New("value size exceeds maximum")

	// ErrPropertyNotFound is returned by typed getters when no source holds the key
	ErrPropertyNotFound = errors.New("property not found")

	// ErrInvalidValue matches every CoercionError and BindingError
	ErrInvalidValue = errors.New("invalid property value")

	// ErrInvalidMapping is returned when a mapping table violates its invariants
	ErrInvalidMapping = errors.New("invalid key mapping")

	// ErrBindingFailed prefixes the aggregated error returned by Binder.Bind
	ErrBindingFailed = errors.New("configuration binding failed")
)

// MaxValueSize is the default upper bound for a single raw property value
const MaxValueSize = 1024 * 1024

// CoercionError reports a raw value that could not be converted into its declared kind.
type CoercionError struct {
	Raw    string
	Kind   Kind
	Reason string
	Err    error
}

func (e *CoercionError) Error() string {
	msg := fmt.Sprintf("cannot convert %q to %s: %s", e.Raw, e.Kind, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CoercionError) Unwrap() error { return e.Err }

// Is makes every coercion failure match ErrInvalidValue.
func (e *CoercionError) Is(target error) bool {
	return target == ErrInvalidValue
}

// BindingError identifies the mapping, the key that supplied the value and the
// destination field of a failed coercion.
type BindingError struct {
	Key  string // winning key that supplied Raw
	Path string // destination field path
	Raw  string
	Kind Kind
	Err  error
}

func (e *BindingError) Error() string {
	return fmt.Sprintf("property %s (field %s): %v", e.Key, e.Path, e.Err)
}

func (e *BindingError) Unwrap() error { return e.Err }

func (e *BindingError) Is(target error) bool {
	return target == ErrInvalidValue
}

// BindingErrors extracts every *BindingError from an aggregated error.
func BindingErrors(err error) []*BindingError {
	if err == nil {
		return nil
	}
	var out []*BindingError
	var walk func(error)
	walk = func(e error) {
		if be, ok := e.(*BindingError); ok {
			out = append(out, be)
			return
		}
		switch u := e.(type) {
		case interface{ Unwrap() []error }:
			for _, inner := range u.Unwrap() {
				walk(inner)
			}
		case interface{ Unwrap() error }:
			if inner := u.Unwrap(); inner != nil {
				walk(inner)
			}
		}
	}
	walk(err)
	return out
}

// mappingError builds an ErrInvalidMapping error naming every violation
func mappingError(violations []string) error {
	if len(violations) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidMapping, strings.Join(violations, "; "))
}
