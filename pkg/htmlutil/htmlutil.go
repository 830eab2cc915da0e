package htmlutil

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

var sanitizer = bluemonday.UGCPolicy()

// Sanitize cleans user-submitted HTML to prevent XSS.
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}

// ExtractText strips all tags and returns the visible text of an HTML
// fragment. Unparsable input falls back to the raw string.
func ExtractText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}

	return strings.TrimSpace(doc.Text())
}

// Summary returns the first n runes of the visible text of an HTML fragment.
func Summary(html string, n int) string {
	text := []rune(ExtractText(html))
	if len(text) <= n {
		return string(text)
	}

	return string(text[:n])
}
