package validation

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinding_Location(t *testing.T) {
	assert.Equal(t, "a.md", Finding{Path: "a.md"}.Location())
	assert.Equal(t, "a.md:12", Finding{Path: "a.md", Line: 12}.Location())
}

func TestSort(t *testing.T) {
	findings := []Finding{
		{Severity: SeverityInfo, Code: ContentBareURL, Path: "b.md", Line: 1},
		{Severity: SeverityWarning, Code: StructEmpty, Path: "a.md", Line: 9},
		{Severity: SeverityError, Code: StructTitle, Path: "a.md", Line: 3, Message: "z"},
		{Severity: SeverityError, Code: StructTitle, Path: "a.md", Line: 3, Message: "a"},
		{Severity: SeverityError, Code: MetaRequired, Path: "a.md", Line: 7},
	}
	Sort(findings)

	want := []Finding{
		{Severity: SeverityError, Code: MetaRequired, Path: "a.md", Line: 7},
		{Severity: SeverityError, Code: StructTitle, Path: "a.md", Line: 3, Message: "a"},
		{Severity: SeverityError, Code: StructTitle, Path: "a.md", Line: 3, Message: "z"},
		{Severity: SeverityWarning, Code: StructEmpty, Path: "a.md", Line: 9},
		{Severity: SeverityInfo, Code: ContentBareURL, Path: "b.md", Line: 1},
	}
	assert.Empty(t, cmp.Diff(want, findings))
}

func TestMaxSeverity(t *testing.T) {
	_, ok := MaxSeverity(nil)
	assert.False(t, ok)

	got, ok := MaxSeverity([]Finding{{Severity: SeverityInfo}, {Severity: SeverityWarning}})
	assert.True(t, ok)
	assert.Equal(t, SeverityWarning, got)
}

func TestSummarize(t *testing.T) {
	s := Summarize(3, []Finding{
		{Severity: SeverityError},
		{Severity: SeverityWarning},
		{Severity: SeverityWarning},
		{Severity: SeverityInfo},
	})
	assert.Equal(t, Summary{Documents: 3, Errors: 1, Warnings: 2, Infos: 1}, s)
	assert.Equal(t, 4, s.Total())
}

func TestFinding_JSON(t *testing.T) {
	data, err := json.Marshal(Finding{Severity: SeverityWarning, Code: StructEmpty, Path: "a.md", Message: "m"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"severity":"warning","code":"REC-STRUCT-005","path":"a.md","message":"m"}`, string(data))
}

func TestCollector(t *testing.T) {
	c := NewCollector()
	c.Add(Finding{Path: "b.md"})
	c.Add(Finding{Path: "a.md"})

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, "b.md", c.Findings()[0].Path)
	assert.Equal(t, "a.md", c.Sorted()[0].Path)
}
