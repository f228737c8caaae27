// FILE: lixenwraith/unicfg/mapping.go
package unicfg

import (
	"fmt"
	"reflect"
	"strings"
	"time"
)

// Mapping declares how one destination field is fed from a canonical key and its legacy aliases.
type Mapping struct {
	// Key is the canonical property key
	Key string
	// Legacy lists deprecated aliases, most preferred first
	Legacy []string
	// Path is the dot-separated destination field, built from `toml` struct tags
	Path string
	// Kind is the semantic type used for coercion
	Kind Kind
	// Enum lists the declared literals for KindEnum
	Enum []string
	// Secret marks credentials whose values must not be printed
	Secret bool
}

// RedactedValue replaces secret values in printed output
const RedactedValue = "******"

// Redact returns raw, or RedactedValue when m is secret and raw is not empty
func (m Mapping) Redact(raw string) string {
	if m.Secret && raw != "" {
		return RedactedValue
	}
	return raw
}

// Table is the static list of mappings for one configuration subsystem
type Table []Mapping

// Keys returns every canonical and legacy key declared by the table
func (t Table) Keys() []string {
	var keys []string
	for _, m := range t {
		keys = append(keys, m.Key)
		keys = append(keys, m.Legacy...)
	}
	return keys
}

// Validate checks the mapping invariants that do not depend on a destination type.
func (m Mapping) Validate() error {
	return mappingError(m.violations())
}

func (m Mapping) violations() []string {
	var v []string
	if m.Key == "" {
		v = append(v, "canonical key is empty")
	} else {
		if strings.ContainsAny(m.Key[len(m.Key)-1:], ".-_") {
			v = append(v, fmt.Sprintf("canonical key %q ends with a separator", m.Key))
		}
		if !isValidKey(m.Key) {
			v = append(v, fmt.Sprintf("canonical key %q is not a dotted key", m.Key))
		}
	}
	seen := make(map[string]bool, len(m.Legacy))
	for _, alias := range m.Legacy {
		switch {
		case alias == "":
			v = append(v, fmt.Sprintf("%s: empty legacy key", m.Key))
		case alias == m.Key:
			v = append(v, fmt.Sprintf("%s: legacy key equals canonical key", m.Key))
		case seen[alias]:
			v = append(v, fmt.Sprintf("%s: duplicate legacy key %q", m.Key, alias))
		case !isValidKey(alias):
			v = append(v, fmt.Sprintf("%s: legacy key %q is not a dotted key", m.Key, alias))
		}
		seen[alias] = true
	}
	if !isValidKey(m.Path) {
		v = append(v, fmt.Sprintf("%s: invalid field path %q", m.Key, m.Path))
	}
	if m.Kind < KindString || m.Kind > KindInt64s {
		v = append(v, fmt.Sprintf("%s: unknown kind %d", m.Key, int(m.Kind)))
	}
	if m.Kind == KindEnum && len(m.Enum) == 0 {
		v = append(v, fmt.Sprintf("%s: enum mapping without literals", m.Key))
	}
	return v
}

// Validate checks every mapping plus table-wide uniqueness of canonical keys and paths.
func (t Table) Validate() error {
	return mappingError(t.violations())
}

func (t Table) violations() []string {
	var v []string
	keys := make(map[string]bool, len(t))
	paths := make(map[string]bool, len(t))
	for _, m := range t {
		v = append(v, m.violations()...)
		if keys[m.Key] {
			v = append(v, fmt.Sprintf("canonical key %q declared twice", m.Key))
		}
		if paths[m.Path] {
			v = append(v, fmt.Sprintf("field path %q declared twice", m.Path))
		}
		keys[m.Key] = true
		paths[m.Path] = true
	}
	return v
}

// CheckTable validates t and verifies that every path names a field of target
// whose Go type can hold the mapping's kind. target is a struct or pointer to struct.
func CheckTable(t Table, target any) error {
	v := t.violations()

	rt := reflect.TypeOf(target)
	for rt != nil && rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}
	if rt == nil || rt.Kind() != reflect.Struct {
		return fmt.Errorf("%w: target must be a struct or struct pointer, got %T", ErrInvalidMapping, target)
	}

	for _, m := range t {
		if !isValidKey(m.Path) {
			continue // already reported
		}
		field, err := fieldByPath(rt, m.Path)
		if err != nil {
			v = append(v, fmt.Sprintf("%s: %v", m.Key, err))
			continue
		}
		if !kindFits(m.Kind, field) {
			v = append(v, fmt.Sprintf("%s: field %s of type %s cannot hold %s", m.Key, m.Path, field, m.Kind))
		}
	}
	return mappingError(v)
}

// fieldByPath walks struct fields by `toml` tag (or field name) along a dotted path
func fieldByPath(rt reflect.Type, path string) (reflect.Type, error) {
	current := rt
	segments := strings.Split(path, ".")
	for i, segment := range segments {
		if current.Kind() != reflect.Struct {
			return nil, fmt.Errorf("path %s: %s is not a struct", path, strings.Join(segments[:i], "."))
		}
		field, ok := structFieldByKey(current, segment)
		if !ok {
			return nil, fmt.Errorf("path %s: no field %q in %s", path, segment, current)
		}
		current = field.Type
	}
	return current, nil
}

func structFieldByKey(rt reflect.Type, key string) (reflect.StructField, bool) {
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		tag := field.Tag.Get("toml")
		if tag == "-" {
			continue
		}
		name := field.Name
		if tag != "" {
			if parts := strings.Split(tag, ","); parts[0] != "" {
				name = parts[0]
			}
		}
		if name == key {
			return field, true
		}
	}
	return reflect.StructField{}, false
}

var durationType = reflect.TypeOf(time.Duration(0))

func kindFits(k Kind, t reflect.Type) bool {
	switch k {
	case KindString, KindEnum:
		return t.Kind() == reflect.String
	case KindBool:
		return t.Kind() == reflect.Bool
	case KindDuration:
		return t == durationType
	case KindInt64:
		return t != durationType && (t.Kind() == reflect.Int64 || t.Kind() == reflect.Int)
	case KindStrings:
		return t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.String
	case KindInt64s:
		return t.Kind() == reflect.Slice && t.Elem() != durationType &&
			(t.Elem().Kind() == reflect.Int64 || t.Elem().Kind() == reflect.Int)
	}
	return false
}
