package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMissingRequired_AllPresent(t *testing.T) {
	header := map[string]any{
		"id":        1.0,
		"lang":      "en",
		"title":     "T",
		"slug":      "t",
		"canonical": "/t",
		"template":  "post",
		"layout":    "default",
		"status":    "published",
	}
	assert.Empty(t, MissingRequired(header))
}

func TestMissingRequired_AbsentKeys(t *testing.T) {
	missing := MissingRequired(map[string]any{"title": "T"})
	assert.Equal(t, []string{
		"id", "lang", "slug", "canonical", "template", "layout", "status",
	}, missing)
}

func TestMissingRequired_FalsyValues(t *testing.T) {
	header := map[string]any{
		"id":        0.0,
		"lang":      "",
		"title":     false,
		"slug":      nil,
		"canonical": "/t",
		"template":  "post",
		"layout":    "default",
		"status":    "published",
	}
	assert.Equal(t, []string{"id", "lang", "title", "slug"}, MissingRequired(header))
}

func TestMissingRequired_TruthyEdgeValues(t *testing.T) {
	header := map[string]any{
		"id":        "0x", // non-empty string is present
		"lang":      true,
		"title":     -1.0,
		"slug":      "s",
		"canonical": "/s",
		"template":  "t",
		"layout":    "l",
		"status":    []any{}, // non-scalar values count as present
	}
	assert.Empty(t, MissingRequired(header))
}
