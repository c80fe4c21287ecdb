package review

import "regexp"

var (
	boldRe = regexp.MustCompile(`\*\*(.*?)\*\*`)
	codeRe = regexp.MustCompile("`([^`]+)`")
	h3Re   = regexp.MustCompile(`(?m)^### (.*)$`)
	h2Re   = regexp.MustCompile(`(?m)^## (.*)$`)
	h1Re   = regexp.MustCompile(`(?m)^# (.*)$`)
)

// RenderMarkdownLite converts the small markdown subset models tend to emit
// inside list items: **bold**, `code` and #/##/### headings at line start.
// Each rule is a single non-recursive pass; anything else is left alone.
func RenderMarkdownLite(s string) string {
	s = boldRe.ReplaceAllString(s, "<strong>$1</strong>")
	s = codeRe.ReplaceAllString(s, "<code>$1</code>")
	s = h3Re.ReplaceAllString(s, "<h3>$1</h3>")
	s = h2Re.ReplaceAllString(s, "<h2>$1</h2>")
	s = h1Re.ReplaceAllString(s, "<h1>$1</h1>")
	return s
}
