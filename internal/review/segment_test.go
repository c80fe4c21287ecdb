package review

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type SegmentSuite struct {
	suite.Suite
	seg HeuristicSegmenter
}

func (s *SegmentSuite) Test_StandardLayout() {
	reply := "Issues:\n" +
		"1. The image has no meaningful alt text.\n" +
		"2. Low contrast is mentioned in the inline style.\n" +
		"Suggestions:\n" +
		"1. Use **alt=\"Team photo\"**.\n" +
		"2. Rename `img123.jpg`.\n" +
		"3. Add a heading.\n" +
		"Ideas:\n" +
		"1. Test with a screen reader."

	got := s.seg.Segment(reply)

	s.Equal([]string{
		"The image has no meaningful alt text.",
		"Low contrast is mentioned in the inline style.",
	}, got.Issues)
	s.Equal([]string{
		"Use **alt=\"Team photo\"**.",
		"Rename `img123.jpg`.",
		"Add a heading.",
	}, got.Suggestions)
	s.Equal([]string{"Test with a screen reader."}, got.Ideas)
	s.False(got.Empty())
}

func (s *SegmentSuite) Test_HeadersInAnyOrder() {
	reply := "Ideas:\n- idea one\n\nIssues:\n- issue one\n- issue two\nRecommendations:\n- rec one"

	got := s.seg.Segment(reply)

	s.Equal([]string{"idea one"}, got.Ideas)
	s.Equal([]string{"issue one", "issue two"}, got.Issues)
	s.Equal([]string{"rec one"}, got.Suggestions)
}

func (s *SegmentSuite) Test_MarkdownDecoratedHeaders() {
	reply := "## Problems\n1) Missing lang attribute\n\n**Improvements:**\n* Add lang=\"en\"\n\n### Ideas\n• Skip link"

	got := s.seg.Segment(reply)

	s.Equal([]string{"Missing lang attribute"}, got.Issues)
	s.Equal([]string{"Add lang=\"en\""}, got.Suggestions)
	s.Equal([]string{"Skip link"}, got.Ideas)
}

func (s *SegmentSuite) Test_LooseHeaderInProse() {
	reply := "I found these concerns: the link text says click here. Suggestions: describe the target."

	got := s.seg.Segment(reply)

	s.Equal([]string{"the link text says click here."}, got.Issues)
	s.Equal([]string{"describe the target."}, got.Suggestions)
	s.Empty(got.Ideas)
}

func (s *SegmentSuite) Test_NoHeaders() {
	got := s.seg.Segment("Looks good to me, nothing to report.")

	s.True(got.Empty())
}

func (s *SegmentSuite) Test_AbsentSectionIsEmpty() {
	got := s.seg.Segment("Issues:\n1. One\nIdeas:\n1. Two")

	s.Equal([]string{"One"}, got.Issues)
	s.Empty(got.Suggestions)
	s.Equal([]string{"Two"}, got.Ideas)
}

func (s *SegmentSuite) Test_ContinuationLinesAndCRLF() {
	reply := "Issues:\r\n1. First issue\r\n   continues here\r\n2. Second\r\n"

	got := s.seg.Segment(reply)

	s.Equal([]string{"First issue\n   continues here", "Second"}, got.Issues)
}

func (s *SegmentSuite) Test_BlankLineSeparatedParagraphs() {
	got := s.seg.Segment("Suggestions:\nFirst paragraph.\n\nSecond paragraph.")

	s.Equal([]string{"First paragraph.", "Second paragraph."}, got.Suggestions)
}

func (s *SegmentSuite) Test_InlineContentAfterHeader() {
	got := s.seg.Segment("Issues: none serious\nIdeas: add captions")

	s.Equal([]string{"none serious"}, got.Issues)
	s.Equal([]string{"add captions"}, got.Ideas)
}

func (s *SegmentSuite) Test_HeadingWithExtraWords() {
	reply := "Issues Identified:\n1. Missing alt text.\n2. Vague link.\nSuggestions:\n1. Add alt.\nIdeas:\n1. Skip link."

	got := s.seg.Segment(reply)

	s.Equal([]string{"Missing alt text.", "Vague link."}, got.Issues)
	s.Equal([]string{"Add alt."}, got.Suggestions)
	s.Equal([]string{"Skip link."}, got.Ideas)
}

func (s *SegmentSuite) Test_AtxHeadingWithQualifier() {
	reply := "### Accessibility Issues\n1. Missing alt text.\n\n### Suggestions for WCAG 2.1\n1. Add alt.\n\n### Further Ideas\n1. Skip link."

	got := s.seg.Segment(reply)

	s.Equal([]string{"Missing alt text."}, got.Issues)
	s.Equal([]string{"Add alt."}, got.Suggestions)
	s.Equal([]string{"Skip link."}, got.Ideas)
}

func (s *SegmentSuite) Test_NumberedBoldHeadings() {
	reply := "1. **Issues**\n- Missing alt text.\n2. **Suggestions**\n- Add alt.\n3. **Ideas**\n- Skip link."

	got := s.seg.Segment(reply)

	s.Equal([]string{"Missing alt text."}, got.Issues)
	s.Equal([]string{"Add alt."}, got.Suggestions)
	s.Equal([]string{"Skip link."}, got.Ideas)
}

func (s *SegmentSuite) Test_ListItemWithSynonymIsNotHeading() {
	reply := "Issues:\n1. Missing alt text.\n- Recommendation: add alt text to the logo.\nSuggestions:\n1. Add alt.\nIdeas:\n1. Skip link."

	got := s.seg.Segment(reply)

	s.Equal([]string{"Missing alt text.", "Recommendation: add alt text to the logo."}, got.Issues)
	s.Equal([]string{"Add alt."}, got.Suggestions)
	s.Equal([]string{"Skip link."}, got.Ideas)
}

func (s *SegmentSuite) Test_SentenceMentioningSynonymIsNotHeading() {
	reply := "There are no serious issues here, but see below.\nSuggestions:\n1. Add alt."

	got := s.seg.Segment(reply)

	s.Empty(got.Issues)
	s.Equal([]string{"Add alt."}, got.Suggestions)
}

func (s *SegmentSuite) Test_JSONSegmenter() {
	reply := "```json\n{\"issues\":[\"a\",\" \"],\"suggestions\":[\"b\",\"c\"],\"ideas\":[]}\n```"

	got := JSONSegmenter{}.Segment(reply)

	s.Equal([]string{"a"}, got.Issues)
	s.Equal([]string{"b", "c"}, got.Suggestions)
	s.Empty(got.Ideas)
}

func (s *SegmentSuite) Test_JSONSegmenterFallsBackOnProse() {
	got := JSONSegmenter{}.Segment("Issues:\n1. x")

	s.Equal([]string{"x"}, got.Issues)
}

func (s *SegmentSuite) Test_NewSegmenter() {
	sg, err := NewSegmenter("")
	s.Require().NoError(err)
	s.Equal("heuristic", sg.Name())
	s.False(sg.Structured())

	sg, err = NewSegmenter("JSON")
	s.Require().NoError(err)
	s.True(sg.Structured())

	_, err = NewSegmenter("regex")
	s.Error(err)
}

func (s *SegmentSuite) Test_StripCodeFences() {
	s.Equal(`{"a":1}`, StripCodeFences("```json\n{\"a\":1}\n```"))
	s.Equal(`{"a":1}`, StripCodeFences("  {\"a\":1} "))
	s.Equal(`{}`, StripCodeFences("```\n{}\n```"))
}

func TestSegmentSuite(t *testing.T) {
	suite.Run(t, new(SegmentSuite))
}
