package corpus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/recordlint/source"
)

func record(id, body string) string {
	if id == "" {
		return "---\ntitle: untitled\n---\n" + body
	}
	return "---\nid: " + id + "\ntitle: t\n---\n" + body
}

func TestBuild_IndexesByID(t *testing.T) {
	idx := Build([]source.Input{
		{Path: "b.md", Text: record("REC-002", "# B\n")},
		{Path: "a.md", Text: record("REC-001", "# A\n")},
	})

	assert.Equal(t, 2, idx.Len())
	assert.Equal(t, []string{"REC-002", "REC-001"}, idx.Order())

	doc, ok := idx.Get("REC-001")
	require.True(t, ok)
	assert.Equal(t, "a.md", doc.Path)
	assert.Equal(t, "# A\n", doc.Body)
	require.NotNil(t, doc.Structure)
	assert.Len(t, doc.Structure.Headings, 1)
}

func TestBuild_DocumentsWithoutIDAreParsedButNotIndexed(t *testing.T) {
	idx := Build([]source.Input{
		{Path: "anon.md", Text: record("", "# Anonymous\n")},
		{Path: "plain.md", Text: "# No front matter\n"},
		{Path: "a.md", Text: record("REC-001", "# A\n")},
	})

	assert.Equal(t, 1, idx.Len())
	all := idx.All()
	require.Len(t, all, 3)
	assert.Equal(t, "anon.md", all[0].Path)
	assert.Empty(t, all[0].ID)
	assert.NotNil(t, all[0].Structure)

	_, ok := idx.Get("")
	assert.False(t, ok)
}

func TestBuild_DuplicateIDLaterWins(t *testing.T) {
	idx := Build([]source.Input{
		{Path: "first.md", Text: record("REC-001", "first\n")},
		{Path: "second.md", Text: record("REC-001", "second\n")},
	})

	doc, ok := idx.Get("REC-001")
	require.True(t, ok)
	assert.Equal(t, "second.md", doc.Path)
	assert.Equal(t, []string{"REC-001"}, idx.Order())
	assert.Len(t, idx.All(), 2)
	assert.Equal(t, []Duplicate{{ID: "REC-001", Path: "first.md", ReplacedBy: "second.md"}}, idx.Duplicates())
}

func TestBuild_Empty(t *testing.T) {
	idx := Build(nil)

	assert.Equal(t, 0, idx.Len())
	assert.Empty(t, idx.Order())
	assert.Empty(t, idx.Documents())
	assert.Empty(t, idx.All())
}
