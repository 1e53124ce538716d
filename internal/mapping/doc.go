// Package mapping implements the declarative mapping language used to
// turn API records into content documents: a small expression evaluator
// (field paths, function calls, literals) and a mapping-tree resolver.
//
// Expressions are parsed once into a tree and cached; evaluation is a
// pure function of (source value, expression) except for the uuid and
// nanoid functions, which draw on an injectable identifier generator.
//
// Note: any expression that does not match path, call or quoted-literal
// syntax falls back to a verbatim literal. A misspelled "$_" prefix
// therefore silently produces a literal string, not an error.
package mapping
