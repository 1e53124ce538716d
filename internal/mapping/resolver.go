package mapping

import "strings"

// ResolveMapping walks a declarative mapping tree against a source
// record and produces the output value. Object nodes recurse per key,
// array nodes resolve element-wise, scalar leaves are evaluated as
// expressions. Keys whose expression resolves to Undefined are omitted
// entirely; dotted keys are written as nested output paths.
// The source record and the mapping tree are never mutated.
func ResolveMapping(spec any, source any) any {
	switch node := spec.(type) {
	case map[string]any:
		return resolveObject(node, source)
	case []any:
		return resolveArray(node, source)
	default:
		return resolveObject(nil, source)
	}
}

// ResolveContent evaluates the body-content expression for a record.
// A non-string mapping yields empty content, as does an expression
// resolving to Undefined.
func ResolveContent(spec any, source any) string {
	expr, ok := spec.(string)
	if !ok {
		return ""
	}
	value := Evaluate(source, expr)
	if isNullish(value) {
		return ""
	}
	if text, ok := value.(string); ok {
		return text
	}
	return stringify(value)
}

// resolveObject resolves one object node of a mapping tree.
func resolveObject(node map[string]any, source any) map[string]any {
	output := map[string]any{}
	for key, rawValue := range node {
		switch child := rawValue.(type) {
		case map[string]any:
			output[key] = resolveObject(child, source)
			continue
		case []any:
			assign(output, key, resolveArray(child, source))
			continue
		}

		value := Evaluate(source, rawValue)
		if IsUndefined(value) {
			continue
		}
		assign(output, key, value)
	}
	return output
}

// resolveArray resolves one array node of a mapping tree. Undefined
// elements are dropped rather than materialized.
func resolveArray(node []any, source any) []any {
	output := []any{}
	for _, element := range node {
		switch child := element.(type) {
		case map[string]any:
			output = append(output, resolveObject(child, source))
			continue
		case []any:
			output = append(output, resolveArray(child, source))
			continue
		}

		value := Evaluate(source, element)
		if IsUndefined(value) {
			continue
		}
		output = append(output, value)
	}
	return output
}

// assign writes a resolved value into the output. A dotted key
// describes output nesting: intermediate objects are created along the
// path. Keys without dots are plain assignments.
func assign(output map[string]any, key string, value any) {
	if !strings.Contains(key, ".") {
		output[key] = value
		return
	}

	parts := []string{}
	for _, part := range strings.Split(key, ".") {
		if part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) == 0 {
		output[key] = value
		return
	}

	current := output
	for i, part := range parts {
		if i == len(parts)-1 {
			current[part] = value
			return
		}
		next, ok := current[part].(map[string]any)
		if !ok {
			next = map[string]any{}
			current[part] = next
		}
		current = next
	}
}
