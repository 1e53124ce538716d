package mapping

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Pre-compiled regular expressions for the HTML to Markdown pipeline.
var (
	preCodeBlock = regexp.MustCompile(`(?is)<\s*pre\b[^>]*>\s*<\s*code\b[^>]*>(.*?)<\s*/\s*code>\s*<\s*/\s*pre>`)
	brTag        = regexp.MustCompile(`(?i)<\s*br\s*/?>`)
	strongTag    = regexp.MustCompile(`(?is)<\s*(?:strong|b)\b[^>]*>(.*?)<\s*/\s*(?:strong|b)>`)
	emTag        = regexp.MustCompile(`(?is)<\s*(?:em|i)\b[^>]*>(.*?)<\s*/\s*(?:em|i)>`)
	codeTag      = regexp.MustCompile(`(?is)<\s*code\b[^>]*>(.*?)<\s*/\s*code>`)
	anchorTag    = regexp.MustCompile(`(?is)<\s*a\b[^>]*href=["']([^"']+)["'][^>]*>(.*?)<\s*/\s*a>`)
	imgAltSrc    = regexp.MustCompile(`(?i)<\s*img\b[^>]*alt=["']([^"']*)["'][^>]*src=["']([^"']+)["'][^>]*/?>`)
	imgSrcAlt    = regexp.MustCompile(`(?i)<\s*img\b[^>]*src=["']([^"']+)["'][^>]*alt=["']([^"']*)["'][^>]*/?>`)
	listItemTag  = regexp.MustCompile(`(?is)<\s*li\b[^>]*>(.*?)<\s*/\s*li>`)
	listWrapTag  = regexp.MustCompile(`(?i)<\s*/?\s*(?:ul|ol)\b[^>]*>`)
	blockTag     = regexp.MustCompile(`(?is)<\s*(?:p|div)\b[^>]*>(.*?)<\s*/\s*(?:p|div)>`)
	anyTag       = regexp.MustCompile(`<[^>]+>`)
	trailingWS   = regexp.MustCompile(`[ \t]+\n`)
	multiNewline = regexp.MustCompile(`\n{3,}`)

	decimalEntity = regexp.MustCompile(`&#(\d+);`)
	hexEntity     = regexp.MustCompile(`(?i)&#x([0-9a-f]+);`)
	namedEntity   = regexp.MustCompile(`(?i)&([a-z]+);`)
)

// headingTags match <hN>...</hN> per level; Go's regexp has no
// backreferences, so each level gets its own pattern.
var headingTags = buildHeadingTags()

func buildHeadingTags() [6]*regexp.Regexp {
	var tags [6]*regexp.Regexp
	for level := 1; level <= 6; level++ {
		tags[level-1] = regexp.MustCompile(fmt.Sprintf(
			`(?is)<\s*h%d\b[^>]*>(.*?)<\s*/\s*h%d>`, level, level))
	}
	return tags
}

// namedEntities are the named HTML entities the decoder understands.
var namedEntities = map[string]string{
	"amp":  "&",
	"lt":   "<",
	"gt":   ">",
	"quot": `"`,
	"apos": "'",
	"nbsp": " ",
}

// HTMLToMarkdown performs a best-effort HTML to Markdown conversion:
// fenced code blocks, headings, inline formatting, links, images and
// list bullets are translated, remaining tags stripped, entities
// decoded, and excess blank lines collapsed.
func HTMLToMarkdown(value any) string {
	if isNullish(value) {
		return ""
	}

	markdown := strings.ReplaceAll(stringify(value), "\r\n", "\n")
	if strings.TrimSpace(markdown) == "" {
		return ""
	}

	markdown = preCodeBlock.ReplaceAllStringFunc(markdown, func(match string) string {
		code := preCodeBlock.FindStringSubmatch(match)[1]
		return "\n```\n" + strings.TrimSpace(decodeEntities(code)) + "\n```\n"
	})

	for level, tag := range headingTags {
		prefix := strings.Repeat("#", level+1)
		markdown = tag.ReplaceAllStringFunc(markdown, func(match string) string {
			content := tag.FindStringSubmatch(match)[1]
			return prefix + " " + strings.TrimSpace(stripTags(content)) + "\n\n"
		})
	}

	markdown = brTag.ReplaceAllString(markdown, "\n")
	markdown = strongTag.ReplaceAllString(markdown, "**$1**")
	markdown = emTag.ReplaceAllString(markdown, "*$1*")
	markdown = codeTag.ReplaceAllStringFunc(markdown, func(match string) string {
		content := codeTag.FindStringSubmatch(match)[1]
		return "`" + decodeEntities(strings.TrimSpace(stripTags(content))) + "`"
	})
	markdown = anchorTag.ReplaceAllStringFunc(markdown, func(match string) string {
		groups := anchorTag.FindStringSubmatch(match)
		return "[" + strings.TrimSpace(stripTags(groups[2])) + "](" + groups[1] + ")"
	})
	markdown = imgAltSrc.ReplaceAllString(markdown, "![$1]($2)")
	markdown = imgSrcAlt.ReplaceAllString(markdown, "![$2]($1)")
	markdown = listItemTag.ReplaceAllStringFunc(markdown, func(match string) string {
		content := listItemTag.FindStringSubmatch(match)[1]
		return "- " + strings.TrimSpace(stripTags(content)) + "\n"
	})
	markdown = listWrapTag.ReplaceAllString(markdown, "\n")
	markdown = blockTag.ReplaceAllStringFunc(markdown, func(match string) string {
		content := blockTag.FindStringSubmatch(match)[1]
		return strings.TrimSpace(stripTags(content)) + "\n\n"
	})
	markdown = anyTag.ReplaceAllString(markdown, "")

	markdown = decodeEntities(markdown)
	markdown = trailingWS.ReplaceAllString(markdown, "\n")
	markdown = multiNewline.ReplaceAllString(markdown, "\n\n")
	return strings.TrimSpace(markdown)
}

// stripTags removes every HTML tag from a fragment.
func stripTags(fragment string) string {
	return anyTag.ReplaceAllString(fragment, "")
}

// decodeEntities decodes numeric, hex and the supported named HTML
// entities. Unknown names and out-of-range code points pass through.
func decodeEntities(text string) string {
	text = decimalEntity.ReplaceAllStringFunc(text, func(match string) string {
		return decodeCodePoint(decimalEntity.FindStringSubmatch(match)[1], 10, match)
	})
	text = hexEntity.ReplaceAllStringFunc(text, func(match string) string {
		return decodeCodePoint(hexEntity.FindStringSubmatch(match)[1], 16, match)
	})
	return namedEntity.ReplaceAllStringFunc(text, func(match string) string {
		name := namedEntity.FindStringSubmatch(match)[1]
		if decoded, ok := namedEntities[name]; ok {
			return decoded
		}
		return match
	})
}

// decodeCodePoint converts a numeric entity value to its rune, keeping
// the original text when the code point is invalid.
func decodeCodePoint(digits string, base int, fallback string) string {
	parsed, err := strconv.ParseInt(digits, base, 64)
	if err != nil || parsed < 0 || parsed > 0x10FFFF {
		return fallback
	}
	return string(rune(parsed))
}
