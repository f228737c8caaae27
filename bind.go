// FILE: lixenwraith/unicfg/bind.go
package unicfg

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Kind is the semantic type of a mapped property
type Kind int

const (
	KindString Kind = iota
	KindBool
	KindDuration
	KindInt64
	KindEnum
	KindStrings
	KindInt64s
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "boolean"
	case KindDuration:
		return "duration"
	case KindInt64:
		return "long"
	case KindEnum:
		return "enum"
	case KindStrings:
		return "list<string>"
	case KindInt64s:
		return "list<long>"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ListSeparator delimits elements of list-valued properties
const ListSeparator = ","

// Coerce converts raw into the Go value for kind:
// string, bool, time.Duration, int64, string (enum literal), []string or []int64.
// literals is only consulted for KindEnum.
func Coerce(raw string, kind Kind, literals []string) (any, error) {
	switch kind {
	case KindString:
		return raw, nil
	case KindBool:
		return ParseBool(raw)
	case KindDuration:
		return ParseDuration(raw)
	case KindInt64:
		return ParseInt64(raw)
	case KindEnum:
		return ParseEnum(raw, literals)
	case KindStrings:
		return SplitList(raw), nil
	case KindInt64s:
		return ParseInt64List(raw)
	default:
		return nil, &CoercionError{Raw: raw, Kind: kind, Reason: "unsupported kind"}
	}
}

// ParseBool accepts "true" or "false" in any letter case.
// Unlike strconv.ParseBool, "1", "t" and friends are rejected.
func ParseBool(raw string) (bool, error) {
	s := strings.TrimSpace(raw)
	switch {
	case strings.EqualFold(s, "true"):
		return true, nil
	case strings.EqualFold(s, "false"):
		return false, nil
	}
	return false, &CoercionError{Raw: raw, Kind: KindBool, Reason: "expected true or false"}
}

// ParseInt64 parses a base-10 signed 64-bit integer
func ParseInt64(raw string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		reason := "not a base-10 integer"
		if errors.Is(err, strconv.ErrRange) {
			reason = "out of range for a 64-bit integer"
		}
		return 0, &CoercionError{Raw: raw, Kind: KindInt64, Reason: reason}
	}
	return n, nil
}

var isoDuration = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+(?:\.\d+)?)S)?)?$`)

// ParseDuration accepts:
//   - Go duration syntax: "10m", "15s", "250ms", "1h30m"
//   - a day suffix: "7d"
//   - ISO-8601: "PT10M", "P1DT2H"
//   - a bare integer, read as milliseconds: "1500"
//
// Negative durations are rejected.
func ParseDuration(raw string) (time.Duration, error) {
	s := strings.TrimSpace(raw)
	fail := func(reason string) (time.Duration, error) {
		return 0, &CoercionError{Raw: raw, Kind: KindDuration, Reason: reason}
	}
	if s == "" {
		return fail("empty duration")
	}
	if strings.HasPrefix(s, "-") {
		return fail("negative duration")
	}

	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		if ms > int64(time.Duration(1<<63-1)/time.Millisecond) {
			return fail("out of range")
		}
		return time.Duration(ms) * time.Millisecond, nil
	}

	upper := strings.ToUpper(s)
	if strings.HasPrefix(upper, "P") {
		return parseISODuration(raw, upper)
	}

	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.ParseInt(days, 10, 64)
		if err != nil {
			return fail("malformed day count")
		}
		if n > int64(time.Duration(1<<63-1)/(24*time.Hour)) {
			return fail("out of range")
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return fail("expected a magnitude with a unit suffix such as 15s or 10m")
	}
	if d < 0 {
		return fail("negative duration")
	}
	return d, nil
}

func parseISODuration(raw, upper string) (time.Duration, error) {
	m := isoDuration.FindStringSubmatch(upper)
	if m == nil || upper == "P" || strings.HasSuffix(upper, "T") {
		return 0, &CoercionError{Raw: raw, Kind: KindDuration, Reason: "malformed ISO-8601 duration"}
	}
	outOfRange := &CoercionError{Raw: raw, Kind: KindDuration, Reason: "out of range"}
	var total time.Duration
	add := func(term time.Duration) bool {
		if total > math.MaxInt64-term {
			return false
		}
		total += term
		return true
	}

	units := []time.Duration{24 * time.Hour, time.Hour, time.Minute}
	for i, unit := range units {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.ParseInt(m[i+1], 10, 64)
		if err != nil {
			outOfRange.Err = err
			return 0, outOfRange
		}
		if n > int64(math.MaxInt64/unit) || !add(time.Duration(n)*unit) {
			return 0, outOfRange
		}
	}
	if m[4] != "" {
		secs, err := strconv.ParseFloat(m[4], 64)
		if err != nil {
			return 0, &CoercionError{Raw: raw, Kind: KindDuration, Reason: "malformed seconds", Err: err}
		}
		// float64(MaxInt64) rounds up to 2^63, so >= also rejects the boundary
		if secs*float64(time.Second) >= math.MaxInt64 || !add(time.Duration(secs*float64(time.Second))) {
			return 0, outOfRange
		}
	}
	return total, nil
}

// ParseEnum matches raw against literals ignoring case, with '-' and '_' treated alike.
// The declared literal is returned.
func ParseEnum(raw string, literals []string) (string, error) {
	want := normalizeEnum(raw)
	for _, lit := range literals {
		if normalizeEnum(lit) == want {
			return lit, nil
		}
	}
	return "", &CoercionError{
		Raw:    raw,
		Kind:   KindEnum,
		Reason: fmt.Sprintf("unknown literal %q, valid values are [%s]", strings.TrimSpace(raw), strings.Join(literals, ", ")),
	}
}

func normalizeEnum(s string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
}

// SplitList splits on ListSeparator and trims every element.
// Order and duplicates are preserved; blank input yields an empty, non-nil list.
func SplitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	parts := strings.Split(raw, ListSeparator)
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// ParseInt64List splits like SplitList and parses every element.
// Any malformed element fails the whole list.
func ParseInt64List(raw string) ([]int64, error) {
	parts := SplitList(raw)
	out := make([]int64, 0, len(parts))
	for i, p := range parts {
		n, err := ParseInt64(p)
		if err != nil {
			return nil, &CoercionError{
				Raw:    raw,
				Kind:   KindInt64s,
				Reason: fmt.Sprintf("element %d (%q) is not a base-10 integer", i, p),
				Err:    err,
			}
		}
		out = append(out, n)
	}
	return out, nil
}
