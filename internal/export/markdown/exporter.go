package markdown

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/contentbridge-cli/internal/core/domain"
	"github.com/custodia-labs/contentbridge-cli/internal/mapping"
)

// DefaultExtension is appended to file names without an extension.
const DefaultExtension = ".md"

// Exporter writes one markdown artifact per content document.
type Exporter struct {
	dir          string
	nameTemplate string
}

// NewExporter creates an exporter rooted at dir. The file name
// template is either a full mapping expression or a "{token}" template;
// when empty, the document slug is used.
func NewExporter(dir, nameTemplate string) (*Exporter, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("%w: empty output directory", domain.ErrInvalidOutputTemplate)
	}
	return &Exporter{dir: filepath.Clean(dir), nameTemplate: nameTemplate}, nil
}

// Dir returns the output directory.
func (e *Exporter) Dir() string {
	return e.dir
}

// Export renders the document and writes it under the output
// directory. The raw record and the resolved front matter together form
// the template scope, front matter winning on collisions. Returns the
// written path.
func (e *Exporter) Export(doc domain.ContentDocument, record any) (string, error) {
	name, err := e.fileName(doc, record)
	if err != nil {
		return "", err
	}

	target, err := e.resolveTarget(name)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("markdown: creating output directory: %w", err)
	}

	content := Render(doc)
	if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("markdown: writing %s: %w", target, err)
	}
	return target, nil
}

// tokenPattern matches "{token}" placeholders in a file name template.
var tokenPattern = regexp.MustCompile(`\{([^{}]+)\}`)

// fileName resolves the output file name for one document.
func (e *Exporter) fileName(doc domain.ContentDocument, record any) (string, error) {
	scope := mapping.MergeScope(record, doc.Header)

	template := strings.TrimSpace(e.nameTemplate)
	var name string
	switch {
	case template == "":
		slug, _ := doc.Header["slug"].(string)
		name = slug
	case strings.Contains(template, "{"):
		name = tokenPattern.ReplaceAllStringFunc(template, func(match string) string {
			token := tokenPattern.FindStringSubmatch(match)[1]
			value := mapping.GetPath(scope, strings.TrimSpace(token))
			if mapping.IsUndefined(value) {
				return ""
			}
			return mapping.Stringify(value)
		})
	default:
		resolved := mapping.Evaluate(scope, template)
		text, ok := resolved.(string)
		if !ok {
			return "", fmt.Errorf("%w: %q", domain.ErrInvalidOutputTemplate, template)
		}
		name = text
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: resolved to empty name", domain.ErrInvalidOutputTemplate)
	}
	if filepath.Ext(name) == "" {
		name += DefaultExtension
	}
	return name, nil
}

// resolveTarget joins the file name onto the output directory and
// rejects any path that escapes it.
func (e *Exporter) resolveTarget(name string) (string, error) {
	target := filepath.Clean(filepath.Join(e.dir, name))
	rel, err := filepath.Rel(e.dir, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", domain.ErrPathEscapesOutputDir, name)
	}
	return target, nil
}

// Render produces the markdown text for a document: front matter as
// "key: value" lines between "---" delimiters, then a blank line and
// the body. Keys are sorted for deterministic output; string values are
// JSON-quoted, numbers, booleans and null are rendered verbatim, and
// composite values are JSON-encoded.
func Render(doc domain.ContentDocument) string {
	var b strings.Builder
	b.WriteString("---\n")

	keys := make([]string, 0, len(doc.Header))
	for key := range doc.Header {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(renderValue(doc.Header[key]))
		b.WriteString("\n")
	}

	b.WriteString("---\n\n")
	b.WriteString(doc.Content)
	if !strings.HasSuffix(doc.Content, "\n") {
		b.WriteString("\n")
	}
	return b.String()
}

// renderValue renders one front matter value.
func renderValue(v any) string {
	switch value := v.(type) {
	case nil:
		return "null"
	case string:
		encoded, err := json.Marshal(value)
		if err != nil {
			return strconv.Quote(value)
		}
		return string(encoded)
	case bool:
		return strconv.FormatBool(value)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	default:
		encoded, err := json.Marshal(value)
		if err != nil {
			return "null"
		}
		return string(encoded)
	}
}
