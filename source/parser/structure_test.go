package parser

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/recordlint/source"
)

const testFence = "```"

func sampleBody() string {
	return strings.Join([]string{
		"# Title",
		"",
		"<!-- key: summary -->",
		"Summary text with `inline` code and https://example.com/x.",
		"",
		"## Context",
		"<!-- key: context -->",
		"> quoted TODO",
		"",
		testFence + "yaml",
		"owner: team-a",
		testFence,
		"",
		testFence + "json",
		"[1, 2]",
		testFence,
		"",
		testFence + "yaml",
		"bad: [unclosed",
		testFence,
		"",
		"<!-- key: summary -->",
		"Second summary.",
		"",
	}, "\n")
}

func TestParseStructure_Markers(t *testing.T) {
	s := ParseStructure(sampleBody())

	require.Len(t, s.Markers, 3)
	assert.Equal(t, "summary", s.Markers[0].Key)
	assert.Equal(t, 3, s.Markers[0].Line)
	assert.Equal(t, "context", s.Markers[1].Key)
	assert.Equal(t, 7, s.Markers[1].Line)
	assert.Equal(t, "summary", s.Markers[2].Key)
	assert.Equal(t, 22, s.Markers[2].Line)
	assert.Equal(t, 2, s.MarkerCount("summary"))
}

func TestParseStructure_SectionsKeepLastOccurrence(t *testing.T) {
	s := ParseStructure(sampleBody())

	require.Contains(t, s.Sections, "summary")
	assert.Contains(t, s.Sections["summary"], "Second summary.")
	assert.NotContains(t, s.Sections["summary"], "Summary text")
	assert.Contains(t, s.Sections["context"], "owner: team-a")
}

func TestParseStructure_Headings(t *testing.T) {
	s := ParseStructure(sampleBody())

	require.Len(t, s.Headings, 2)
	assert.Equal(t, source.Heading{Text: "Title", Level: 1, Offset: 0, Line: 1}, s.Headings[0])
	assert.Equal(t, "Context", s.Headings[1].Text)
	assert.Equal(t, 2, s.Headings[1].Level)
	assert.Equal(t, 6, s.Headings[1].Line)
}

func TestParseStructure_HeadingsInsideFencesIgnored(t *testing.T) {
	body := strings.Join([]string{"# Real", testFence, "# not a heading", testFence, "## Also real", ""}, "\n")
	s := ParseStructure(body)

	require.Len(t, s.Headings, 2)
	assert.Equal(t, "Real", s.Headings[0].Text)
	assert.Equal(t, "Also real", s.Headings[1].Text)
}

func TestParseStructure_HeadingsInsideCommentsIgnored(t *testing.T) {
	body := strings.Join([]string{"# Current title", "<!--", "# Old title", "-->", "## Section", ""}, "\n")
	s := ParseStructure(body)

	require.Len(t, s.Headings, 2)
	assert.Equal(t, "Current title", s.Headings[0].Text)
	assert.Equal(t, "Section", s.Headings[1].Text)
	assert.Equal(t, 5, s.Headings[1].Line)
}

func TestParseStructure_Quotes(t *testing.T) {
	body := sampleBody()
	s := ParseStructure(body)

	require.Len(t, s.Quotes, 1)
	assert.True(t, s.Quoted(strings.Index(body, "quoted TODO")))
	assert.False(t, s.Quoted(strings.Index(body, "https://example.com")))
}

func TestParseStructure_StructuredBlocks(t *testing.T) {
	s := ParseStructure(sampleBody())

	require.Len(t, s.Blocks, 1)
	assert.Equal(t, "team-a", s.Blocks[0]["owner"])

	require.Len(t, s.BlockErrors, 2)
	assert.Equal(t, "json", s.BlockErrors[0].Language)
	assert.Equal(t, 14, s.BlockErrors[0].Line)
	assert.Equal(t, ErrNotMapping.Error(), s.BlockErrors[0].Reason)
	assert.Equal(t, "yaml", s.BlockErrors[1].Language)
}

func TestParseStructure_Exclusions(t *testing.T) {
	body := sampleBody()
	s := ParseStructure(body)

	excluded := []string{"inline", "https://example.com", "quoted TODO", "owner: team-a", "key: context"}
	for _, needle := range excluded {
		idx := strings.Index(body, needle)
		require.GreaterOrEqual(t, idx, 0, needle)
		assert.True(t, s.Excluded(idx), "expected %q to be excluded", needle)
	}

	included := []string{"Summary text", "Second summary."}
	for _, needle := range included {
		idx := strings.Index(body, needle)
		require.GreaterOrEqual(t, idx, 0, needle)
		assert.False(t, s.Excluded(idx), "expected %q to be scanned", needle)
	}
}

func TestParseStructure_TailBlockMissing(t *testing.T) {
	s := ParseStructure(sampleBody())

	assert.False(t, s.Tail.Present)
	assert.Equal(t, source.TailMissing, s.Tail.Reason)
}

func tail(payload string) string {
	return strings.Join([]string{"<!-- record:begin -->", testFence + "json", payload, testFence, "<!-- record:end -->"}, "\n")
}

func TestParseStructure_LastTailBlockWins(t *testing.T) {
	body := strings.Join([]string{
		"# Title",
		"An example of the tail format:",
		tail(`{"id": "EXAMPLE-001"}`),
		"",
		tail(`{"id": "REC-010", "class": "spec"}`),
		"",
	}, "\n")

	s := ParseStructure(body)

	require.True(t, s.Tail.Present, s.Tail.Reason)
	assert.Equal(t, "REC-010", s.Tail.Data["id"])
	assert.Equal(t, "spec", s.Tail.Data["class"])
	assert.Equal(t, 9, s.Tail.Line)
	assert.Empty(t, s.Blocks, "tail payloads are not embedded blocks")
	assert.Empty(t, s.BlockErrors)
}

func TestParseStructure_TailBlockDegrades(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		reason string
	}{
		{
			name:   "unterminated",
			body:   "<!-- record:begin -->\n" + testFence + "json\n{}\n" + testFence + "\n",
			reason: source.TailUnterminated,
		},
		{
			name:   "no payload",
			body:   "<!-- record:begin -->\nnothing here\n<!-- record:end -->\n",
			reason: source.TailNoPayload,
		},
		{
			name:   "not an object",
			body:   tail(`[1, 2, 3]`),
			reason: source.TailNotObject,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ParseStructure(tt.body)
			assert.False(t, s.Tail.Present)
			assert.Nil(t, s.Tail.Data)
			assert.Equal(t, tt.reason, s.Tail.Reason)
		})
	}
}

func TestParseStructure_TailBlockParseFailure(t *testing.T) {
	s := ParseStructure(tail(`{"id": `))

	assert.False(t, s.Tail.Present)
	assert.True(t, strings.HasPrefix(s.Tail.Reason, "parse: "), s.Tail.Reason)
}

func TestParseStructure_Deterministic(t *testing.T) {
	body := sampleBody() + tail(`{"id": "REC-011"}`)

	first := ParseStructure(body)
	second := ParseStructure(body)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("ParseStructure not deterministic (-first +second):\n%s", diff)
	}
}

func TestParseStructure_NeverPanicsOnJunk(t *testing.T) {
	inputs := []string{
		"",
		testFence,
		"<!-- record:end --><!-- record:begin -->",
		"<!-- key: -->",
		"#######\n" + testFence + "json\n{",
		"\r\n\r\n> \r\n",
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() { ParseStructure(in) }, in)
	}
}
