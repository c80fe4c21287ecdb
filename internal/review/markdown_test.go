package review

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderMarkdownLite(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Add alt text to the logo.", "Add alt text to the logo."},
		{"bold", "Use **descriptive** links", "Use <strong>descriptive</strong> links"},
		{"code", "Set `alt` on the image", "Set <code>alt</code> on the image"},
		{"h2", "## Contrast", "<h2>Contrast</h2>"},
		{"h3 before h2", "### Images", "<h3>Images</h3>"},
		{"h1", "# Summary", "<h1>Summary</h1>"},
		{"heading not at line start", "see ## this", "see ## this"},
		{"heading on second line", "intro\n## Forms", "intro\n<h2>Forms</h2>"},
		{"unclosed bold", "**oops", "**oops"},
		{"empty code", "``", "``"},
		{"mixed", "**Fix** the `img` tag", "<strong>Fix</strong> the <code>img</code> tag"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, RenderMarkdownLite(tc.in))
		})
	}
}
