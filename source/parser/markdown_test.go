package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vocab "github.com/c360studio/recordlint/vocabulary/record"
)

func TestMarkdownParser_Parse_NoFrontmatter(t *testing.T) {
	p := NewMarkdownParser()

	content := `# Hello World

This is a test document.
`

	doc := p.Parse("docs/hello.md", content)

	assert.Empty(t, doc.ID)
	assert.Equal(t, "docs/hello.md", doc.Path)
	assert.Equal(t, content, doc.Raw)
	assert.Equal(t, content, doc.Body)
	assert.Equal(t, 0, doc.BodyOffset)
	assert.False(t, doc.HasFrontmatter())
	require.NotNil(t, doc.Structure)
	assert.Len(t, doc.Structure.Headings, 1)
}

func TestMarkdownParser_Parse_WithFrontmatter(t *testing.T) {
	p := NewMarkdownParser()

	content := `---
id: ADR-012
title: Use structured records
class: Decision
status: accepted
supersedes: ADR-007
change_history:
  - date: 2024-03-01
    note: Forked from ADR-007
  - not a mapping
---
# Use structured records

<!-- key: summary -->
We use structured records.
`

	doc := p.Parse("adr-012.md", content)

	assert.Equal(t, "ADR-012", doc.ID)
	assert.True(t, doc.HasFrontmatter())
	assert.Equal(t, vocab.ClassDecision, doc.Class())
	assert.Equal(t, vocab.StatusAccepted, doc.Status())
	assert.Equal(t, []string{"ADR-007"}, doc.StringList(vocab.FieldSupersedes))
	assert.Equal(t, content[doc.BodyOffset:], doc.Body)
	assert.NotContains(t, doc.Body, "---")

	history := doc.History()
	require.Len(t, history, 1)
	assert.Equal(t, "2024-03-01", history[0].Date)
	assert.Equal(t, "Forked from ADR-007", history[0].Note)

	require.Len(t, doc.Structure.Markers, 1)
	assert.Equal(t, 14, doc.BodyLine(doc.Structure.Markers[0].Line))
}

func TestMarkdownParser_Parse_WindowsLineEndings(t *testing.T) {
	p := NewMarkdownParser()

	content := "---\r\nid: REC-001\r\n---\r\n# Title\r\n"

	doc := p.Parse("test.md", content)

	assert.Equal(t, "REC-001", doc.ID)
	assert.Equal(t, "# Title\r\n", doc.Body)
	require.Len(t, doc.Structure.Headings, 1)
	assert.Equal(t, "Title", doc.Structure.Headings[0].Text)
}

func TestContentHash(t *testing.T) {
	a := ContentHash([]byte("one"))
	b := ContentHash([]byte("one"))
	c := ContentHash([]byte("two"))

	assert.Len(t, a, 64)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}
