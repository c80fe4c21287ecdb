package ai

import (
	"strings"

	"wcag-reviewer/internal/config"
)

const SystemPrompt = "You are an expert accessibility consultant specializing in WCAG and web best practices. " +
	"Always provide clear, actionable, and user-friendly feedback, focusing on practical improvements for both text and images."

const detailedIntro = `You are an accessibility expert. Review the following HTML content for WCAG (Web Content Accessibility Guidelines) compliance.

Note: The content may include HTML, including images. Only mention color or contrast issues if such information is explicitly present in the text or HTML. For any <img> tags, check if the filename is descriptive and if the alt attribute is meaningful and helpful for accessibility. Point out any images with missing, empty, or non-descriptive alt tags or filenames.

For your response, provide:
- A clear, structured list of all accessibility issues you find, with a short explanation and a concrete example or pointer for each.
- A list of at least 3 actionable, specific suggestions for improvement (especially for text and images), each with a brief rationale and, if possible, a rewritten example. Focus on what the user can do to make the text and images better for accessibility. For images, always suggest a concrete improved alt text and filename if needed.
- Any additional ideas or best practices that could further enhance accessibility, even if not strictly required by WCAG.`

const detailedOutro = `Be as specific, practical, and improvement-focused as possible. Use clear, concise language. Prioritize actionable advice in the Suggestions section.`

const conciseIntro = `You are an accessibility expert. Review the following HTML for WCAG compliance.
Only mention color or contrast when it is explicit in the HTML. For <img> tags, judge the alt text and the filename.
List the issues, at least 3 concrete suggestions, and any extra ideas. Keep every item to one or two sentences.`

// BuildPrompt renders the user prompt. format is the reply layout the
// segmenter expects; input is embedded verbatim inside a """ fence.
func BuildPrompt(input, verbosity, format string) string {
	var b strings.Builder

	if verbosity == config.VerbosityConcise {
		b.WriteString(conciseIntro)
	} else {
		b.WriteString(detailedIntro)
	}

	b.WriteString("\n\nFormat your response as:\n")
	b.WriteString(strings.TrimSpace(format))

	if verbosity != config.VerbosityConcise {
		b.WriteString("\n\n")
		b.WriteString(detailedOutro)
	}

	b.WriteString("\n\nHTML to review:\n\"\"\"")
	b.WriteString(input)
	b.WriteString("\"\"\"")

	return b.String()
}
