package mapping

import (
	"math"
	"regexp"
	"strings"
	"time"
)

// callFunction dispatches a parsed function call. iter and obj inspect
// their argument expressions before evaluation; every other function
// receives its arguments already evaluated against the source.
// An unknown function name resolves to Undefined, not an error.
func callFunction(name string, args []Expr, source any) any {
	switch name {
	case "iter":
		return evalIter(source, args)
	case "obj":
		return evalObj(source, args)
	}

	resolved := make([]any, len(args))
	for i, arg := range args {
		resolved[i] = arg.Eval(source)
	}

	switch name {
	case "slugify":
		return Slugify(stringify(argAt(resolved, 0)))
	case "concat":
		var b strings.Builder
		for _, v := range resolved {
			b.WriteString(stringify(v))
		}
		return b.String()
	case "lower":
		return strings.ToLower(stringify(argAt(resolved, 0)))
	case "upper":
		return strings.ToUpper(stringify(argAt(resolved, 0)))
	case "trim":
		return strings.TrimSpace(stringify(argAt(resolved, 0)))
	case "replace":
		value := stringify(argAt(resolved, 0))
		from := stringify(argAt(resolved, 1))
		to := stringify(argAt(resolved, 2))
		if from == "" {
			return value
		}
		return strings.ReplaceAll(value, from, to)
	case "truncate":
		return truncateFn(resolved)
	case "split":
		return splitFn(resolved)
	case "join":
		return joinFn(resolved)
	case "merge":
		var merged []any
		for _, v := range resolved {
			if list, ok := v.([]any); ok {
				merged = append(merged, list...)
			}
		}
		if merged == nil {
			merged = []any{}
		}
		return merged
	case "unique":
		return uniqueFn(argAt(resolved, 0))
	case "compact":
		return compactFn(argAt(resolved, 0))
	case "extract":
		return extractFn(resolved)
	case "arr":
		out := []any{}
		for _, v := range resolved {
			if !IsUndefined(v) {
				out = append(out, v)
			}
		}
		return out
	case "today", "now":
		return isoTimestamp(time.Now())
	case "date":
		return dateFn(resolved)
	case "add":
		return dateShiftFn(resolved, 1)
	case "sub":
		return dateShiftFn(resolved, -1)
	case "number":
		n := toNumber(argAt(resolved, 0))
		if math.IsNaN(n) {
			return Undefined
		}
		return n
	case "boolean":
		return Truthy(argAt(resolved, 0))
	case "default":
		value := argAt(resolved, 0)
		if isNullishOrEmptyString(value) {
			return argAt(resolved, 1)
		}
		return value
	case "if":
		if Truthy(argAt(resolved, 0)) {
			return argAt(resolved, 1)
		}
		return argAt(resolved, 2)
	case "eq":
		return valuesEqual(argAt(resolved, 0), argAt(resolved, 1))
	case "neq":
		return !valuesEqual(argAt(resolved, 0), argAt(resolved, 1))
	case "gt":
		return compareValues(argAt(resolved, 0), argAt(resolved, 1)) > 0
	case "gte":
		return compareValues(argAt(resolved, 0), argAt(resolved, 1)) >= 0
	case "lt":
		return compareValues(argAt(resolved, 0), argAt(resolved, 1)) < 0
	case "lte":
		return compareValues(argAt(resolved, 0), argAt(resolved, 1)) <= 0
	case "and":
		for _, v := range resolved {
			if !Truthy(v) {
				return false
			}
		}
		return true
	case "or":
		for _, v := range resolved {
			if Truthy(v) {
				return true
			}
		}
		return false
	case "not":
		return !Truthy(argAt(resolved, 0))
	case "coalesce":
		for _, v := range resolved {
			if !isNullishOrEmptyString(v) {
				return v
			}
		}
		return Undefined
	case "contains":
		return containsFn(argAt(resolved, 0), argAt(resolved, 1))
	case "htmlToMD":
		return HTMLToMarkdown(argAt(resolved, 0))
	case "nanoid":
		return nanoidFn(resolved)
	case "uuid":
		return generator().UUID()
	default:
		return Undefined
	}
}

// argAt returns the i-th resolved argument or Undefined when absent.
func argAt(args []any, i int) any {
	if i < 0 || i >= len(args) {
		return Undefined
	}
	return args[i]
}

// identPattern matches bare identifiers usable as obj keys.
var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]*$`)

// evalObj builds an object from its arguments. With an even argument
// count where every even-indexed argument is a quoted string or a bare
// identifier, arguments are alternating key/value pairs. Otherwise each
// argument supplies both its key (inferred from its own syntax) and its
// value.
func evalObj(source any, args []Expr) any {
	out := map[string]any{}

	if isPairForm(args) {
		for i := 0; i+1 < len(args); i += 2 {
			key := keyText(args[i])
			value := args[i+1].Eval(source)
			if !IsUndefined(value) {
				out[key] = value
			}
		}
		return out
	}

	for i, arg := range args {
		key := inferKey(arg, i)
		value := arg.Eval(source)
		if !IsUndefined(value) {
			out[key] = value
		}
	}
	return out
}

// isPairForm reports whether the obj arguments form key/value pairs.
func isPairForm(args []Expr) bool {
	if len(args) < 2 || len(args)%2 != 0 {
		return false
	}
	for i := 0; i < len(args); i += 2 {
		switch key := args[i].(type) {
		case literalExpr:
		case rawExpr:
			if !identPattern.MatchString(key.text) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// keyText extracts the key text from a pair-form key expression.
func keyText(arg Expr) string {
	switch key := arg.(type) {
	case literalExpr:
		return key.value
	case rawExpr:
		return key.text
	default:
		return ""
	}
}

// inferKey derives an object key from an argument's own expression:
// the last path segment of a field reference, the text of a quoted
// literal, or a positional "field<N>" fallback.
func inferKey(arg Expr, index int) string {
	switch e := arg.(type) {
	case pathExpr:
		if segment := lastPathSegment(e.path); segment != "" {
			return segment
		}
	case literalExpr:
		if e.value != "" {
			return e.value
		}
	}
	return "field" + formatNumber(float64(index+1))
}

// lastPathSegment returns the final segment of a dotted field path.
func lastPathSegment(path string) string {
	rewritten := bracketIndex.ReplaceAllString(path, ".$1")
	segments := strings.Split(rewritten, ".")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			return segments[i]
		}
	}
	return ""
}

// evalIter maps a template expression over a list. The template is
// evaluated against a fresh iteration scope per item; without a
// template the list passes through unchanged.
func evalIter(source any, args []Expr) any {
	if len(args) == 0 {
		return []any{}
	}

	value := args[0].Eval(source)
	list, ok := value.([]any)
	if !ok || len(list) == 0 {
		return []any{}
	}

	if len(args) < 2 {
		return list
	}

	out := []any{}
	for _, item := range list {
		scope := newIterScope(source, item)
		resolved := args[1].Eval(scope)
		if !IsUndefined(resolved) {
			out = append(out, resolved)
		}
	}
	return out
}

// truncateFn shortens text to a maximum rune length. A non-finite
// length leaves the text untouched; zero or negative yields "".
func truncateFn(args []any) any {
	text := stringify(argAt(args, 0))
	rawLength := toNumber(argAt(args, 1))
	if !isFinite(rawLength) {
		return text
	}
	maxLength := int(math.Floor(rawLength))
	if maxLength <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) > maxLength {
		return string(runes[:maxLength])
	}
	return text
}

// splitFn splits text on a separator, trimming parts and dropping
// empties. Arrays are flat-mapped; an empty separator yields a
// single-element list holding the whole text.
func splitFn(args []any) any {
	sep := ","
	if len(args) > 1 && !isNullish(args[1]) {
		sep = stringify(args[1])
	}

	value := argAt(args, 0)
	if list, ok := value.([]any); ok {
		out := []any{}
		for _, item := range list {
			out = append(out, splitOne(stringify(item), sep)...)
		}
		return out
	}
	return splitOne(stringify(value), sep)
}

// splitOne splits a single string value.
func splitOne(text, sep string) []any {
	if sep == "" {
		return []any{text}
	}
	out := []any{}
	for _, part := range strings.Split(text, sep) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// joinFn joins list elements with a separator (default ",").
func joinFn(args []any) any {
	list, _ := argAt(args, 0).([]any)
	sep := ","
	if len(args) > 1 && !isNullish(args[1]) {
		sep = stringify(args[1])
	}
	parts := make([]string, len(list))
	for i, item := range list {
		parts[i] = stringify(item)
	}
	return strings.Join(parts, sep)
}

// uniqueFn removes duplicates, keyed by string form, keeping first
// occurrences in order. nil and Undefined share the empty-string key.
func uniqueFn(value any) any {
	list, _ := value.([]any)
	seen := make(map[string]bool, len(list))
	out := []any{}
	for _, item := range list {
		key := ""
		if !isNullish(item) {
			key = stringify(item)
		}
		if !seen[key] {
			seen[key] = true
			out = append(out, item)
		}
	}
	return out
}

// compactFn drops null, undefined, blank-string, empty-array and
// empty-object elements.
func compactFn(value any) any {
	list, _ := value.([]any)
	out := []any{}
	for _, item := range list {
		if !isEmptyValue(item) {
			out = append(out, item)
		}
	}
	return out
}

// extractFn pulls fields out of a list of objects. Each spec is
// "alias:path" or a bare "path" (alias defaults to the last path
// segment). One spec produces a flat value list; several produce a
// list of objects keyed by alias.
func extractFn(args []any) any {
	list, _ := argAt(args, 0).([]any)
	specs := args[1:]
	if len(specs) == 0 {
		return []any{}
	}

	type fieldSpec struct {
		alias string
		path  string
	}
	parsed := make([]fieldSpec, 0, len(specs))
	for _, raw := range specs {
		text := strings.TrimSpace(stringify(raw))
		if text == "" {
			continue
		}
		alias, path := "", text
		if idx := strings.Index(text, ":"); idx >= 0 {
			alias = strings.TrimSpace(text[:idx])
			path = strings.TrimSpace(text[idx+1:])
		}
		path = strings.TrimPrefix(path, "$_")
		if alias == "" {
			alias = lastPathSegment(path)
		}
		parsed = append(parsed, fieldSpec{alias: alias, path: path})
	}
	if len(parsed) == 0 {
		return []any{}
	}

	if len(parsed) == 1 {
		out := []any{}
		for _, item := range list {
			value := GetPath(item, parsed[0].path)
			if !isNullishOrEmptyString(value) {
				out = append(out, value)
			}
		}
		return out
	}

	out := []any{}
	for _, item := range list {
		entry := map[string]any{}
		for _, spec := range parsed {
			value := GetPath(item, spec.path)
			if !IsUndefined(value) {
				entry[spec.alias] = value
			}
		}
		if len(entry) > 0 {
			out = append(out, entry)
		}
	}
	return out
}

// dateFn parses a value as a date (or takes the current time when the
// value is absent/falsy) and renders it as ISO-8601 or via a
// YYYY/MM/DD/HH/mm/ss token pattern from local time components.
func dateFn(args []any) any {
	value := argAt(args, 0)
	pattern := argAt(args, 1)

	var t time.Time
	if isFalsyDateInput(value) {
		t = time.Now()
	} else {
		parsed, ok := parseDate(value)
		if !ok {
			return Undefined
		}
		t = parsed
	}

	if isNullishOrEmptyString(pattern) {
		return isoTimestamp(t)
	}
	return formatDatePattern(t, stringify(pattern))
}

// isFalsyDateInput reports whether a date argument means "use now":
// absent values, empty strings, false and numeric zero.
func isFalsyDateInput(v any) bool {
	switch value := v.(type) {
	case nil, undefinedValue:
		return true
	case string:
		return value == ""
	case bool:
		return !value
	case float64:
		return value == 0 || math.IsNaN(value)
	case int:
		return value == 0
	case int64:
		return value == 0
	default:
		return false
	}
}

// formatDatePattern substitutes YYYY/MM/DD/HH/mm/ss tokens from local
// time components, zero-padded except the year.
func formatDatePattern(t time.Time, pattern string) string {
	replacer := strings.NewReplacer(
		"YYYY", formatNumber(float64(t.Year())),
		"MM", pad2(int(t.Month())),
		"DD", pad2(t.Day()),
		"HH", pad2(t.Hour()),
		"mm", pad2(t.Minute()),
		"ss", pad2(t.Second()),
	)
	return replacer.Replace(pattern)
}

// pad2 zero-pads a component to two digits.
func pad2(n int) string {
	if n < 10 {
		return "0" + formatNumber(float64(n))
	}
	return formatNumber(float64(n))
}

// dateShiftFn implements add/sub: numeric-like bases get plain
// arithmetic, everything else is parsed as a date and shifted by a
// calendar delta in the given unit (default day).
func dateShiftFn(args []any, sign float64) any {
	base := argAt(args, 0)
	amount := toNumber(argAt(args, 1))
	if !isFinite(amount) {
		return Undefined
	}
	amount *= sign

	if isNumericLike(base) {
		return toNumber(base) + amount
	}

	t, ok := parseDate(base)
	if !ok {
		return Undefined
	}

	unit := "day"
	if len(args) > 2 && !isNullishOrEmptyString(args[2]) {
		unit = strings.ToLower(strings.TrimSpace(stringify(args[2])))
	}

	n := int(amount)
	switch unit {
	case "year", "years", "y":
		t = t.AddDate(n, 0, 0)
	case "month", "months", "mo":
		t = t.AddDate(0, n, 0)
	case "hour", "hours", "h":
		t = t.Add(time.Duration(n) * time.Hour)
	case "minute", "minutes", "min", "m":
		t = t.Add(time.Duration(n) * time.Minute)
	case "second", "seconds", "sec", "s":
		t = t.Add(time.Duration(n) * time.Second)
	default: // day, days, d
		t = t.AddDate(0, 0, n)
	}
	return isoTimestamp(t)
}

// containsFn tests array membership (numeric-aware equality) or
// substring presence when the haystack is a string.
func containsFn(haystack, needle any) any {
	switch value := haystack.(type) {
	case []any:
		for _, item := range value {
			if valuesEqual(item, needle) {
				return true
			}
		}
		return false
	case string:
		if isNullish(needle) {
			return strings.Contains(value, "")
		}
		return strings.Contains(value, stringify(needle))
	default:
		return false
	}
}

// nanoidFn generates a random identifier, default length 21.
func nanoidFn(args []any) any {
	length := toNumber(argAt(args, 0))
	size := 21
	if isFinite(length) && length > 0 {
		size = int(math.Floor(length))
	}
	id, err := generator().NanoID(size)
	if err != nil {
		return Undefined
	}
	return id
}
