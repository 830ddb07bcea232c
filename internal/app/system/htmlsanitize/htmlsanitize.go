// internal/app/system/htmlsanitize/htmlsanitize.go

// Package htmlsanitize cleans user-authored markup before it is stored
// or rendered. Suggestion descriptions and owner notes may arrive as
// rich text from an editor or as plain text typed into a textarea; both
// paths end here.
package htmlsanitize

import (
	"html"
	"html/template"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

// getPolicy builds the sanitization policy once. Base is the UGC policy
// (formatting, lists, tables, images, safe links with rel=nofollow),
// extended with class everywhere and inline style on table elements so
// editor-generated tables keep their layout.
func getPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		p := bluemonday.UGCPolicy()
		p.AllowElements("u", "s", "sub", "sup", "mark")
		p.AllowAttrs("class").Globally()
		p.AllowAttrs("style").OnElements("table", "thead", "tbody", "tfoot", "tr", "th", "td")
		policy = p
	})
	return policy
}

// Sanitize strips unsafe markup (scripts, event handlers, iframes,
// javascript: URLs) and returns the cleaned HTML.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return getPolicy().Sanitize(s)
}

// SanitizeToHTML sanitizes and marks the result safe for direct
// template interpolation.
func SanitizeToHTML(s string) template.HTML {
	return template.HTML(Sanitize(s))
}

// IsPlainText reports whether s contains no HTML tags. A lone < or >
// (as in "5 < 10") does not count as markup.
func IsPlainText(s string) bool {
	lt := strings.Index(s, "<")
	if lt == -1 {
		return true
	}
	return !strings.Contains(s[lt:], ">")
}

// PlainTextToHTML escapes s and converts it to minimal HTML: newlines
// become <br> and the whole text is wrapped in a paragraph.
func PlainTextToHTML(s string) string {
	if s == "" {
		return ""
	}
	escaped := html.EscapeString(strings.ReplaceAll(s, "\r\n", "\n"))
	return "<p>" + strings.ReplaceAll(escaped, "\n", "<br>") + "</p>"
}

// PrepareForDisplay renders stored suggestion text for a page: plain
// text is escaped and paragraph-wrapped, anything with markup is
// sanitized.
func PrepareForDisplay(s string) template.HTML {
	if IsPlainText(s) {
		return template.HTML(PlainTextToHTML(s))
	}
	return SanitizeToHTML(s)
}
