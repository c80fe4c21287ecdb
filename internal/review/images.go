package review

import (
	"regexp"
	"strings"
)

const SuggestedAlt = "Describe the image meaningfully for accessibility"

var (
	imgTagRe  = regexp.MustCompile(`(?i)<img\b[^>]*>`)
	srcAttrRe = regexp.MustCompile(`(?i)(?:^|\s)src\s*=\s*(?:"([^"]*)"|'([^']*)')`)
	altAttrRe = regexp.MustCompile(`(?i)(?:^|\s)alt\s*=\s*(?:"([^"]*)"|'([^']*)')`)
)

type ImageSuggestion struct {
	Src          string
	CurrentAlt   string
	SuggestedAlt string
}

// ExtractImageSuggestions returns one suggestion per <img> tag in html that
// has a non-empty src and an alt attribute (possibly empty), in document
// order. Tags missing either attribute are skipped.
func ExtractImageSuggestions(html string) []ImageSuggestion {
	var out []ImageSuggestion

	for _, tag := range imgTagRe.FindAllString(html, -1) {
		src, ok := attr(srcAttrRe, tag)
		if !ok || src == "" {
			continue
		}
		alt, ok := attr(altAttrRe, tag)
		if !ok {
			continue
		}
		out = append(out, ImageSuggestion{
			Src:          src,
			CurrentAlt:   alt,
			SuggestedAlt: SuggestedAlt,
		})
	}

	return out
}

func attr(re *regexp.Regexp, tag string) (string, bool) {
	m := re.FindStringSubmatchIndex(tag)
	if m == nil {
		return "", false
	}
	// group 1 is the double-quoted form, group 2 the single-quoted one
	if m[2] >= 0 {
		return tag[m[2]:m[3]], true
	}
	return tag[m[4]:m[5]], true
}

// Fragment renders the before/after comparison block shown in the
// Suggestions list.
func (s ImageSuggestion) Fragment() string {
	current := s.CurrentAlt
	if current == "" {
		current = "(empty)"
	}

	var b strings.Builder
	b.WriteString(`<div style="display:flex;align-items:center;gap:12px;margin-bottom:8px;">`)
	b.WriteString(`<img src="` + quoteAttr(s.Src) + `" alt="` + quoteAttr(s.CurrentAlt) + `" style="max-width:80px;border:1px solid #ddd;" />`)
	b.WriteString(`<div><div style="font-size:13px;"><strong>Current alt:</strong> <span style="color:#dc2626;">` + current + `</span></div>`)
	b.WriteString(`<div style="font-size:13px;"><strong>Suggested alt:</strong> <span style="color:#059669;">` + s.SuggestedAlt + `</span></div></div></div>`)
	return b.String()
}

func quoteAttr(s string) string {
	return strings.ReplaceAll(s, `"`, "&quot;")
}
