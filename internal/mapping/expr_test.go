package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_FieldPath(t *testing.T) {
	expr := Parse("$_title")
	path, ok := expr.(pathExpr)
	require.True(t, ok)
	assert.Equal(t, "title", path.path)
}

func TestParse_FunctionCall(t *testing.T) {
	expr := Parse("$concat($_a, '-', $_b)")
	call, ok := expr.(callExpr)
	require.True(t, ok)
	assert.Equal(t, "concat", call.name)
	require.Len(t, call.args, 3)
	assert.IsType(t, pathExpr{}, call.args[0])
	assert.IsType(t, literalExpr{}, call.args[1])
	assert.IsType(t, pathExpr{}, call.args[2])
}

func TestParse_QuotedLiteral(t *testing.T) {
	assert.Equal(t, "hello", Parse("'hello'").Eval(nil))
	assert.Equal(t, "hello", Parse(`"hello"`).Eval(nil))
	assert.Equal(t, "", Parse("''").Eval(nil))
}

func TestParse_RawLiteralFallback(t *testing.T) {
	// Anything not matching path, call or quoted syntax is its own value
	assert.Equal(t, "plain text", Parse("plain text").Eval(nil))
	assert.Equal(t, "42", Parse("42").Eval(nil))
	assert.Equal(t, "$", Parse("$").Eval(nil))
}

func TestParse_Whitespace(t *testing.T) {
	source := map[string]any{"title": "x"}
	assert.Equal(t, "x", Evaluate(source, "  $_title  "))
}

func TestEvaluate_FieldPath(t *testing.T) {
	source := map[string]any{
		"post": map[string]any{"title": "Hello"},
	}
	assert.Equal(t, "Hello", Evaluate(source, "$_post.title"))
	assert.True(t, IsUndefined(Evaluate(source, "$_post.missing")))
}

func TestEvaluate_NonStringPassthrough(t *testing.T) {
	assert.Equal(t, 42.0, Evaluate(nil, 42.0))
	assert.Equal(t, true, Evaluate(nil, true))
	assert.True(t, IsUndefined(Evaluate(nil, nil)))
}

func TestEvaluate_NestedCalls(t *testing.T) {
	source := map[string]any{"name": "  My Post  "}
	assert.Equal(t, "my post", Evaluate(source, "$lower($trim($_name))"))
}

func TestEvaluate_UnknownFunction(t *testing.T) {
	assert.True(t, IsUndefined(Evaluate(nil, "$bogus($_x)")))
}

func TestSplitArgs_TopLevelCommas(t *testing.T) {
	assert.Equal(t, []string{"$_a", "$_b"}, splitArgs("$_a, $_b"))
}

func TestSplitArgs_NestedParens(t *testing.T) {
	args := splitArgs("$concat($_a, $_b), $_c")
	assert.Equal(t, []string{"$concat($_a, $_b)", "$_c"}, args)
}

func TestSplitArgs_QuotedCommas(t *testing.T) {
	args := splitArgs("'a, b', $_c")
	assert.Equal(t, []string{"'a, b'", "$_c"}, args)

	args = splitArgs(`"x,y", z`)
	assert.Equal(t, []string{`"x,y"`, "z"}, args)
}

func TestSplitArgs_Empty(t *testing.T) {
	assert.Empty(t, splitArgs(""))
	assert.Empty(t, splitArgs("   "))
}
