package domain

// ContentDocument is the unit handed to the content sink: one fully
// mapped record with its front matter header and body text.
// It is created once per accepted record and never mutated afterwards.
type ContentDocument struct {
	// Header is the resolved front matter (metadata) for the record.
	Header map[string]any

	// Body wraps the resolved body text.
	Body Body

	// Content duplicates Body.Content for sinks that consume a flat shape.
	Content string

	// SourcePath is the logical path of the record within the site.
	// Always non-empty for an emitted document.
	SourcePath string

	// IsValid reports that the document passed required-field validation.
	IsValid bool
}

// Body holds the body text of a content document.
type Body struct {
	// Content is the resolved body text.
	Content string
}

// RequiredHeaderKeys is the fixed set of front matter keys every record
// must resolve to a truthy value before it can be emitted.
var RequiredHeaderKeys = []string{
	"id",
	"lang",
	"title",
	"slug",
	"canonical",
	"template",
	"layout",
	"status",
}

// MissingRequired returns the required header keys that are absent or
// falsy in the given front matter, in canonical order.
func MissingRequired(header map[string]any) []string {
	var missing []string
	for _, key := range RequiredHeaderKeys {
		if isFalsy(header[key]) {
			missing = append(missing, key)
		}
	}
	return missing
}

// isFalsy mirrors loose falsiness for header values: nil, empty string,
// false and numeric zero all count as missing.
func isFalsy(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case bool:
		return !val
	case float64:
		return val == 0
	case float32:
		return val == 0
	case int:
		return val == 0
	case int64:
		return val == 0
	default:
		return false
	}
}
