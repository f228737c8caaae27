// File: lixenwraith/unicfg/helper.go
package unicfg

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// flattenMap converts a nested map[string]any to a flat map[string]any with dot-notation paths.
func flattenMap(nested map[string]any, prefix string) map[string]any {
	flat := make(map[string]any)

	for key, value := range nested {
		newPath := key
		if prefix != "" {
			newPath = prefix + "." + key
		}

		// Check if the value is a map that can be further flattened
		if nestedMap, isMap := value.(map[string]any); isMap {
			for subPath, subValue := range flattenMap(nestedMap, newPath) {
				flat[subPath] = subValue
			}
		} else {
			flat[newPath] = value
		}
	}

	return flat
}

// flattenStrings flattens nested and renders every leaf as a raw property string
func flattenStrings(nested map[string]any) map[string]string {
	flat := flattenMap(nested, "")
	out := make(map[string]string, len(flat))
	for k, v := range flat {
		out[k] = stringifyValue(v)
	}
	return out
}

// stringifyValue renders a decoded file value the way it would have been written
// as a single property: scalars verbatim, arrays joined with ListSeparator.
func stringifyValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case time.Time:
		return val.Format(time.RFC3339)
	case []any:
		parts := make([]string, len(val))
		for i, e := range val {
			parts[i] = stringifyValue(e)
		}
		return strings.Join(parts, ListSeparator)
	case []string:
		return strings.Join(val, ListSeparator)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}

// setNestedValue sets a value in a nested map using a dot-notation path.
// It creates intermediate maps if they don't exist.
// If a segment exists but is not a map, it will be overwritten by a new map.
func setNestedValue(nested map[string]any, path string, value any) {
	segments := strings.Split(path, ".")
	current := nested

	for i := 0; i < len(segments)-1; i++ {
		segment := segments[i]

		next, exists := current[segment]
		if nextMap, isMap := next.(map[string]any); exists && isMap {
			current = nextMap
			continue
		}
		newMap := make(map[string]any)
		current[segment] = newMap
		current = newMap
	}

	current[segments[len(segments)-1]] = value
}

// isValidKeySegment checks if a single path segment is a valid TOML bare key part.
func isValidKeySegment(s string) bool {
	if len(s) == 0 {
		return false
	}
	// TOML bare keys are sequences of ASCII letters, ASCII digits, underscores, and dashes (A-Za-z0-9_-).
	for _, r := range s {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		if !(isLetter || isDigit || r == '_' || r == '-') {
			return false
		}
	}
	return true
}

// isValidKey checks every dot-separated segment of key
func isValidKey(key string) bool {
	if key == "" {
		return false
	}
	for _, segment := range strings.Split(key, ".") {
		if !isValidKeySegment(segment) {
			return false
		}
	}
	return true
}
