package mapping

import (
	"strings"
	"sync"
)

// Expr is a parsed mapping expression. Evaluation never fails: unknown
// fields, unknown functions and malformed input all degrade to
// Undefined so that missing data surfaces as an absent field rather
// than aborting the record.
type Expr interface {
	// Eval evaluates the expression against a source value.
	Eval(source any) any
}

// pathExpr is a "$_a.b[2].c" field-path reference.
type pathExpr struct {
	path string
}

func (e pathExpr) Eval(source any) any {
	return GetPath(source, e.path)
}

// callExpr is a "$name(arg, ...)" function call. Arguments are
// expressions themselves and are evaluated against the same source.
type callExpr struct {
	name string
	args []Expr
}

func (e callExpr) Eval(source any) any {
	return callFunction(e.name, e.args, source)
}

// literalExpr is a quoted string literal.
type literalExpr struct {
	value string
}

func (e literalExpr) Eval(any) any {
	return e.value
}

// rawExpr is the fallback: any expression not matching path, call or
// quoted-literal syntax evaluates to its trimmed text verbatim.
type rawExpr struct {
	text string
}

func (e rawExpr) Eval(any) any {
	return e.text
}

// parseCache memoizes parsed expressions; mapping trees evaluate the
// same expression once per record, so parsing is done once per text.
var parseCache sync.Map // string -> Expr

// Parse turns an expression string into its parsed form. Dispatch is an
// ordered match over a closed set of syntactic forms: field path,
// function call, quoted literal, then raw literal.
func Parse(expr string) Expr {
	trimmed := strings.TrimSpace(expr)
	if cached, ok := parseCache.Load(trimmed); ok {
		return cached.(Expr)
	}
	parsed := parse(trimmed)
	parseCache.Store(trimmed, parsed)
	return parsed
}

// parse builds the expression tree for already-trimmed text.
func parse(trimmed string) Expr {
	if strings.HasPrefix(trimmed, "$_") {
		return pathExpr{path: trimmed[2:]}
	}

	if strings.HasPrefix(trimmed, "$") &&
		strings.Contains(trimmed, "(") &&
		strings.HasSuffix(trimmed, ")") {
		open := strings.Index(trimmed, "(")
		name := strings.TrimSpace(trimmed[1:open])
		inner := trimmed[open+1 : len(trimmed)-1]
		rawArgs := splitArgs(inner)
		args := make([]Expr, len(rawArgs))
		for i, raw := range rawArgs {
			args[i] = parse(strings.TrimSpace(raw))
		}
		return callExpr{name: name, args: args}
	}

	if len(trimmed) >= 2 {
		if (strings.HasPrefix(trimmed, `"`) && strings.HasSuffix(trimmed, `"`)) ||
			(strings.HasPrefix(trimmed, "'") && strings.HasSuffix(trimmed, "'")) {
			return literalExpr{value: trimmed[1 : len(trimmed)-1]}
		}
	}

	return rawExpr{text: trimmed}
}

// splitArgs splits a function argument list on top-level commas. A
// depth counter tracks nested parentheses and a quote flag tracks
// string literals, so commas inside either do not split.
func splitArgs(input string) []string {
	var args []string
	var current strings.Builder
	var quote byte
	depth := 0

	for i := 0; i < len(input); i++ {
		char := input[i]

		if quote != 0 {
			if char == quote {
				quote = 0
			}
			current.WriteByte(char)
			continue
		}

		switch char {
		case '(':
			depth++
			current.WriteByte(char)
		case ')':
			if depth > 0 {
				depth--
			}
			current.WriteByte(char)
		case '\'', '"':
			quote = char
			current.WriteByte(char)
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(current.String()))
				current.Reset()
			} else {
				current.WriteByte(char)
			}
		default:
			current.WriteByte(char)
		}
	}

	if rest := strings.TrimSpace(current.String()); rest != "" {
		args = append(args, rest)
	}

	return args
}

// Evaluate resolves a mapping value against a source record. Non-string
// values pass through unchanged (pre-resolved literals embedded in a
// mapping tree); nil resolves to Undefined.
func Evaluate(source any, expr any) any {
	if expr == nil {
		return Undefined
	}
	text, ok := expr.(string)
	if !ok {
		return expr
	}
	return Parse(text).Eval(source)
}
