package mapping

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Stringify converts a value to its string form, treating nil and
// Undefined as the empty string. Exposed for collaborators that must
// coerce pagination signals the same way the evaluator does.
func Stringify(v any) string {
	return stringify(v)
}

// ToNumber coerces a value to a number, returning NaN when the value
// has no numeric interpretation.
func ToNumber(v any) float64 {
	return toNumber(v)
}

// undefinedValue marks the absence of a value, distinct from JSON null.
// A missing field path resolves to Undefined and is omitted from
// resolver output; an explicit null is materialized.
type undefinedValue struct{}

// Undefined is the sentinel for an absent value.
var Undefined = undefinedValue{}

// IsUndefined reports whether v is the Undefined sentinel.
func IsUndefined(v any) bool {
	_, ok := v.(undefinedValue)
	return ok
}

// isNullish reports whether v is nil or Undefined.
func isNullish(v any) bool {
	return v == nil || IsUndefined(v)
}

// isNullishOrEmptyString reports whether v is nil, Undefined or "".
func isNullishOrEmptyString(v any) bool {
	if isNullish(v) {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

// isEmptyValue reports whether v is nil, Undefined, a blank string, an
// empty array or an empty object. Used by the compact function.
func isEmptyValue(v any) bool {
	switch val := v.(type) {
	case nil, undefinedValue:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	case []any:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	default:
		return false
	}
}

// stringify converts a value to its string form. nil and Undefined
// become the empty string, matching how the mapping functions treat
// absent operands.
func stringify(v any) string {
	switch val := v.(type) {
	case nil, undefinedValue:
		return ""
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case float64:
		return formatNumber(val)
	case float32:
		return formatNumber(float64(val))
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case time.Time:
		return isoTimestamp(val)
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = stringify(item)
		}
		return strings.Join(parts, ",")
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(data)
	}
}

// formatNumber renders a float without a trailing ".0" for integral
// values (5 not 5.0).
func formatNumber(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// toNumber coerces a value to a number, returning NaN when the value
// has no numeric interpretation. Empty and blank strings coerce to 0.
func toNumber(v any) float64 {
	switch val := v.(type) {
	case nil:
		return 0
	case undefinedValue:
		return math.NaN()
	case bool:
		if val {
			return 1
		}
		return 0
	case float64:
		return val
	case float32:
		return float64(val)
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return 0
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

// isNumericLike reports whether a value is a finite number or a string
// holding one. Blank strings are not numeric.
func isNumericLike(v any) bool {
	switch val := v.(type) {
	case float64:
		return !math.IsNaN(val) && !math.IsInf(val, 0)
	case float32, int, int64:
		return true
	case string:
		if strings.TrimSpace(val) == "" {
			return false
		}
		f := toNumber(val)
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	default:
		return false
	}
}

// isFinite reports whether f is a usable finite number.
func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// truthyTokens are the string values treated as true by Truthy.
var truthyTokens = map[string]bool{
	"true": true, "1": true, "yes": true, "y": true, "on": true,
}

// Truthy coerces a value to a boolean. Strings are true only when they
// match an explicit truthy token (true/1/yes/y/on, case-insensitive);
// any other string is false, including non-empty ones.
func Truthy(v any) bool {
	switch val := v.(type) {
	case nil, undefinedValue:
		return false
	case bool:
		return val
	case float64:
		return val != 0 && !math.IsNaN(val)
	case float32:
		return val != 0
	case int:
		return val != 0
	case int64:
		return val != 0
	case string:
		return truthyTokens[strings.ToLower(strings.TrimSpace(val))]
	default:
		return true
	}
}

// valuesEqual implements the numeric-aware equality used by eq, neq and
// contains: numeric comparison when both operands look numeric, exact
// value equality for comparable scalars otherwise.
func valuesEqual(left, right any) bool {
	if isNumericLike(left) && isNumericLike(right) {
		return toNumber(left) == toNumber(right)
	}
	switch l := left.(type) {
	case nil:
		return right == nil
	case undefinedValue:
		return IsUndefined(right)
	case string:
		r, ok := right.(string)
		return ok && l == r
	case bool:
		r, ok := right.(bool)
		return ok && l == r
	default:
		// Objects and arrays compare by identity in the source
		// language; distinct decoded values are never equal.
		return false
	}
}

// compareValues orders two values: numeric difference when both look
// numeric, lexicographic comparison otherwise. Returns NaN when either
// side is nil or Undefined, so every ordering test fails.
func compareValues(left, right any) float64 {
	if isNullish(left) || isNullish(right) {
		return math.NaN()
	}
	if isNumericLike(left) && isNumericLike(right) {
		return toNumber(left) - toNumber(right)
	}
	ls, rs := stringify(left), stringify(right)
	if ls == rs {
		return 0
	}
	if ls > rs {
		return 1
	}
	return -1
}

// bracketIndex rewrites [N] array subscripts into path segments.
var bracketIndex = regexp.MustCompile(`\[(\d+)\]`)

// GetPath walks a dotted field path ("a.b[2].c") through a JSON-shaped
// value. Missing segments resolve to Undefined, never an error.
func GetPath(source any, path string) any {
	if path == "" {
		return Undefined
	}

	rewritten := bracketIndex.ReplaceAllString(path, ".$1")
	current := source
	for _, segment := range strings.Split(rewritten, ".") {
		if segment == "" {
			continue
		}
		if isNullish(current) {
			return Undefined
		}
		switch node := current.(type) {
		case map[string]any:
			value, ok := node[segment]
			if !ok {
				return Undefined
			}
			current = value
		case []any:
			index, err := strconv.Atoi(segment)
			if err != nil || index < 0 || index >= len(node) {
				return Undefined
			}
			current = node[index]
		default:
			return Undefined
		}
	}
	return current
}

// dateLayouts are the timestamp formats parseDate understands, tried in
// order.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	time.RFC1123,
	time.RFC1123Z,
}

// parseDate interprets a value as a point in time: time.Time values
// pass through, numbers are Unix epoch milliseconds, strings are tried
// against the known layouts.
func parseDate(v any) (time.Time, bool) {
	switch val := v.(type) {
	case time.Time:
		return val, true
	case float64:
		if !isFinite(val) {
			return time.Time{}, false
		}
		return time.UnixMilli(int64(val)), true
	case int:
		return time.UnixMilli(int64(val)), true
	case int64:
		return time.UnixMilli(val), true
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return time.Time{}, false
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, trimmed); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

// isoTimestamp renders a time in ISO-8601 with millisecond precision,
// normalized to UTC.
func isoTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}
