package review

import (
	"strings"

	"github.com/tidwall/gjson"
)

const jsonInstructions = `Return only a JSON object, with no prose around it, of the form:
{"issues": ["..."], "suggestions": ["...", "...", "..."], "ideas": ["..."]}
Each array item is one finding as plain text. **bold** and ` + "`code`" + ` are allowed inside items.`

// JSONSegmenter asks the model for a JSON object with issues, suggestions
// and ideas arrays. Replies that are not a JSON object are handed to the
// heuristic segmenter.
type JSONSegmenter struct{}

func (JSONSegmenter) Name() string { return "json" }

func (JSONSegmenter) Instructions() string { return jsonInstructions }

func (JSONSegmenter) Structured() bool { return true }

func (JSONSegmenter) Segment(reply string) Segments {
	body := StripCodeFences(reply)
	if !gjson.Valid(body) {
		return HeuristicSegmenter{}.Segment(reply)
	}

	doc := gjson.Parse(body)
	if !doc.IsObject() {
		return HeuristicSegmenter{}.Segment(reply)
	}

	return Segments{
		Issues:      jsonItems(doc.Get("issues")),
		Suggestions: jsonItems(doc.Get("suggestions")),
		Ideas:       jsonItems(doc.Get("ideas")),
	}
}

func jsonItems(v gjson.Result) []string {
	if !v.Exists() {
		return nil
	}
	if !v.IsArray() {
		if s := strings.TrimSpace(v.String()); s != "" {
			return []string{s}
		}
		return nil
	}

	var out []string
	v.ForEach(func(_, item gjson.Result) bool {
		if s := strings.TrimSpace(item.String()); s != "" {
			out = append(out, s)
		}
		return true
	})
	return out
}

// StripCodeFences removes a surrounding ``` or ```json fence.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
