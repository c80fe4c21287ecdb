package review

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Segments is the model reply split into the three feedback groups, each
// in reply order.
type Segments struct {
	Issues      []string
	Suggestions []string
	Ideas       []string
}

// Empty reports that no group was recognised in the reply.
func (s Segments) Empty() bool {
	return len(s.Issues) == 0 && len(s.Suggestions) == 0 && len(s.Ideas) == 0
}

type Segmenter interface {
	Name() string
	Segment(reply string) Segments
	// Instructions is the reply layout the prompt asks the model for.
	Instructions() string
	// Structured asks the provider for a JSON object reply.
	Structured() bool
}

func NewSegmenter(name string) (Segmenter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "heuristic":
		return HeuristicSegmenter{}, nil
	case "json":
		return JSONSegmenter{}, nil
	default:
		return nil, fmt.Errorf("unknown SEGMENTER %q (heuristic | json)", name)
	}
}

type group int

const (
	groupIssues group = iota
	groupSuggestions
	groupIdeas
)

var groupWords = [...]string{
	groupIssues:      `issues?|problems?|concerns?`,
	groupSuggestions: `suggestions?|improvements?|recommendations?`,
	groupIdeas:       `ideas?`,
}

// headings longer than this are prose, not section titles
const maxHeadingWords = 6

var (
	// synonym anywhere in a heading title
	groupWordRe [len(groupWords)]*regexp.Regexp
	// title that is just the synonym, e.g. "- Ideas"
	groupOnlyRe [len(groupWords)]*regexp.Regexp
	// "... the following issues: ..." anywhere, colon required.
	looseHeaderRe [len(groupWords)]*regexp.Regexp

	listMarkerRe    = regexp.MustCompile(`^[ \t]*(?:\d+[.)]|[-*•])[ \t]+`)
	headingDecorRe  = regexp.MustCompile(`^[ \t>#*_]*`)
	trailingDecorRe = regexp.MustCompile(`^[ \t*_]*`)
	sentencePunctRe = regexp.MustCompile(`[.!?,;](?:\s|$)`)
)

func init() {
	for g, words := range groupWords {
		groupWordRe[g] = regexp.MustCompile(`(?i)\b(?:` + words + `)\b`)
		groupOnlyRe[g] = regexp.MustCompile(`(?i)^(?:` + words + `)$`)
		looseHeaderRe[g] = regexp.MustCompile(`(?i)\b(?:` + words + `)\b[ \t*_]*:`)
	}
}

const heuristicInstructions = `Issues:
1. ...
2. ...
Suggestions:
1. ...
2. ...
3. ...
Ideas:
1. ...
2. ...`

// HeuristicSegmenter finds the Issues/Suggestions/Ideas headers in free
// text and splits the text between them into list items.
type HeuristicSegmenter struct{}

func (HeuristicSegmenter) Name() string { return "heuristic" }

func (HeuristicSegmenter) Instructions() string { return heuristicInstructions }

func (HeuristicSegmenter) Structured() bool { return false }

type header struct {
	group      group
	start, end int
}

func (HeuristicSegmenter) Segment(reply string) Segments {
	text := strings.ReplaceAll(reply, "\r\n", "\n")

	var headers []header
	for g := range groupWords {
		start, end, ok := findHeader(text, group(g))
		if !ok {
			continue
		}
		headers = append(headers, header{group: group(g), start: start, end: end})
	}

	sort.Slice(headers, func(i, j int) bool { return headers[i].start < headers[j].start })

	var out Segments
	for i, h := range headers {
		end := len(text)
		if i+1 < len(headers) {
			end = headers[i+1].start
		}
		if end < h.end {
			// a later header's match began inside this one
			continue
		}
		items := splitItems(text[h.end:end])
		switch h.group {
		case groupIssues:
			out.Issues = items
		case groupSuggestions:
			out.Suggestions = items
		case groupIdeas:
			out.Ideas = items
		}
	}

	return out
}

// findHeader returns the first heading line for g, falling back to the
// first "word:" occurrence anywhere in text.
func findHeader(text string, g group) (start, end int, ok bool) {
	off := 0
	for _, line := range strings.SplitAfter(text, "\n") {
		if n, found := headingLine(strings.TrimSuffix(line, "\n"), g); found {
			return off, off + n, true
		}
		off += len(line)
	}

	if loc := looseHeaderRe[g].FindStringIndex(text); loc != nil {
		return loc[0], loc[1], true
	}
	return 0, 0, false
}

// headingLine reports whether line titles the g section and where the
// section body starts within it. A title is a few words containing a
// synonym, with no sentence punctuation. It may be decorated with list
// markers, '#', '>' or emphasis and may end in a colon. Inline content
// after the colon is allowed unless the line is a list item.
func headingLine(line string, g group) (int, bool) {
	pos := 0
	listed := false
	if loc := listMarkerRe.FindStringIndex(line); loc != nil {
		pos, listed = loc[1], true
	}
	decor := headingDecorRe.FindString(line[pos:])
	pos += len(decor)

	rest := line[pos:]
	title, after, colon := strings.Cut(rest, ":")
	title = strings.Trim(title, " \t*_")

	if title == "" ||
		!groupWordRe[g].MatchString(title) ||
		sentencePunctRe.MatchString(title) ||
		len(strings.Fields(title)) > maxHeadingWords {
		return 0, false
	}

	inline := strings.Trim(after, " \t*_") != ""
	if listed {
		// "- Recommendation: add alt text" is an item
		if inline {
			return 0, false
		}
		if !colon && !strings.ContainsAny(decor, "#*_") && !groupOnlyRe[g].MatchString(title) {
			return 0, false
		}
	}

	if !colon {
		return len(line), true
	}
	end := pos + strings.Index(rest, ":") + 1
	return end + len(trailingDecorRe.FindString(line[end:])), true
}

// splitItems breaks a section body into items at blank lines and at lines
// starting with a list marker. Continuation lines stay with their item.
func splitItems(span string) []string {
	var (
		items []string
		cur   []string
	)

	flush := func() {
		item := strings.TrimSpace(strings.Join(cur, "\n"))
		if item != "" {
			items = append(items, item)
		}
		cur = cur[:0]
	}

	for _, line := range strings.Split(span, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		if loc := listMarkerRe.FindStringIndex(line); loc != nil {
			flush()
			line = line[loc[1]:]
		}
		cur = append(cur, strings.TrimRight(line, " \t"))
	}
	flush()

	return items
}
