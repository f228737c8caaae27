// File: lixenwraith/unicfg/type.go
package unicfg

import (
	"fmt"
	"time"
)

// String retrieves the raw value of key.
func (p *Properties) String(key string) (string, error) {
	v, ok := p.Lookup(key)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrPropertyNotFound, key)
	}
	return v, nil
}

// Bool retrieves key as a boolean ("true"/"false", any case).
func (p *Properties) Bool(key string) (bool, error) {
	v, err := p.String(key)
	if err != nil {
		return false, err
	}
	b, err := ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("property %s: %w", key, err)
	}
	return b, nil
}

// Duration retrieves key as a non-negative duration.
func (p *Properties) Duration(key string) (time.Duration, error) {
	v, err := p.String(key)
	if err != nil {
		return 0, err
	}
	d, err := ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("property %s: %w", key, err)
	}
	return d, nil
}

// Int64 retrieves key as a base-10 integer.
func (p *Properties) Int64(key string) (int64, error) {
	v, err := p.String(key)
	if err != nil {
		return 0, err
	}
	n, err := ParseInt64(v)
	if err != nil {
		return 0, fmt.Errorf("property %s: %w", key, err)
	}
	return n, nil
}

// Strings retrieves key as a comma-separated list
func (p *Properties) Strings(key string) ([]string, error) {
	v, err := p.String(key)
	if err != nil {
		return nil, err
	}
	return SplitList(v), nil
}

// Int64s retrieves key as a comma-separated list of integers
func (p *Properties) Int64s(key string) ([]int64, error) {
	v, err := p.String(key)
	if err != nil {
		return nil, err
	}
	list, err := ParseInt64List(v)
	if err != nil {
		return nil, fmt.Errorf("property %s: %w", key, err)
	}
	return list, nil
}

// Enum retrieves key as one of literals, matched case-insensitively.
func (p *Properties) Enum(key string, literals ...string) (string, error) {
	v, err := p.String(key)
	if err != nil {
		return "", err
	}
	lit, err := ParseEnum(v, literals)
	if err != nil {
		return "", fmt.Errorf("property %s: %w", key, err)
	}
	return lit, nil
}
