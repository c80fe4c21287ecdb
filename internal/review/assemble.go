package review

import "strings"

const fallbackOpen = `<div style="background:#f4f4f5;color:#27272a;padding:1em;border-radius:8px;">`

type block struct {
	label string
	color string
}

var (
	issuesBlock      = block{label: "Issues", color: "#dc2626"}
	suggestionsBlock = block{label: "Suggestions", color: "#2563eb"}
	ideasBlock       = block{label: "Ideas", color: "#059669"}
)

// Assemble renders the feedback HTML. Model items get markdown-lite, image
// fragments lead the Suggestions list. When seg is empty the raw reply is
// returned untouched inside a neutral block and images are not shown.
func Assemble(seg Segments, images []ImageSuggestion, raw string) string {
	if seg.Empty() {
		return fallbackOpen + raw + "</div>"
	}

	var b strings.Builder

	writeBlock(&b, issuesBlock, nil, seg.Issues)
	writeBlock(&b, suggestionsBlock, images, seg.Suggestions)
	writeBlock(&b, ideasBlock, nil, seg.Ideas)

	return b.String()
}

func writeBlock(b *strings.Builder, blk block, images []ImageSuggestion, items []string) {
	if len(images) == 0 && len(items) == 0 {
		return
	}

	b.WriteString(`<div style="margin-bottom:8px;"><strong style="color:` + blk.color + `;">` + blk.label + `:</strong>`)
	b.WriteString(`<ul style="list-style: disc inside; padding-left: 1em; color:` + blk.color + `;">`)

	for _, img := range images {
		b.WriteString(`<li style="list-style:none;">` + img.Fragment() + `</li>`)
	}
	for _, it := range items {
		b.WriteString("<li>" + RenderMarkdownLite(it) + "</li>")
	}

	b.WriteString("</ul></div>")
}
