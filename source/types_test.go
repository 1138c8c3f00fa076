package source

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	vocab "github.com/c360studio/recordlint/vocabulary/record"
)

func TestDocument_StringList(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  []string
	}{
		{"absent", nil, nil},
		{"scalar", "REC-001", []string{"REC-001"}},
		{"list", []any{"REC-001", " REC-002 ", ""}, []string{"REC-001", "REC-002"}},
		{"string slice", []string{"A-001"}, []string{"A-001"}},
		{"mapping", map[string]any{"a": 1}, nil},
		{"number", 7, []string{"7"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &Document{Metadata: map[string]any{}}
			if tt.value != nil {
				doc.Metadata[vocab.FieldSupersedes] = tt.value
			}
			assert.Equal(t, tt.want, doc.StringList(vocab.FieldSupersedes))
		})
	}
}

func TestDocument_String(t *testing.T) {
	doc := &Document{Metadata: map[string]any{
		"title":   "  Padded  ",
		"created": time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC),
		"tags":    []any{"a"},
		"count":   3,
	}}

	assert.Equal(t, "Padded", doc.String("title"))
	assert.Equal(t, "2024-05-06", doc.String("created"))
	assert.Equal(t, "", doc.String("tags"))
	assert.Equal(t, "3", doc.String("count"))
	assert.Equal(t, "", doc.String("missing"))
	assert.True(t, doc.Has("count"))
	assert.False(t, doc.Has("missing"))
}

func TestStructure_Excluded(t *testing.T) {
	s := &Structure{Exclusions: []Range{{Start: 5, End: 10}, {Start: 8, End: 12}}}

	assert.False(t, s.Excluded(4))
	assert.True(t, s.Excluded(5))
	assert.True(t, s.Excluded(11))
	assert.False(t, s.Excluded(12))
}

func TestStructure_Markers(t *testing.T) {
	s := &Structure{Markers: []KeyMarker{
		{Key: "summary", Line: 2},
		{Key: "context", Line: 5},
		{Key: "summary", Line: 9},
	}}

	assert.Equal(t, 2, s.MarkerCount("summary"))
	assert.Equal(t, 0, s.MarkerCount("decision"))

	m, ok := s.FirstMarker("summary")
	assert.True(t, ok)
	assert.Equal(t, 2, m.Line)
}
