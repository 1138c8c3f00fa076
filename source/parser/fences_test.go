package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/recordlint/source"
)

func TestScanFences(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		spans    int
		unclosed bool
	}{
		{
			name:  "bare open and close",
			lines: []string{"text", testFence, "code", testFence, "after"},
			spans: 1,
		},
		{
			name:  "tagged open outside a fence",
			lines: []string{testFence + "go", "x := 1", testFence},
			spans: 1,
		},
		{
			name:  "tagged line inside a fence is content",
			lines: []string{testFence, testFence + "go", "x := 1", testFence, "after"},
			spans: 1,
		},
		{
			name:     "open fence at end of document",
			lines:    []string{"text", testFence, "code"},
			spans:    1,
			unclosed: true,
		},
		{
			name:  "two fences",
			lines: []string{testFence, "a", testFence, testFence + "json", "{}", testFence},
			spans: 2,
		},
		{
			name:  "four backticks are not a fence",
			lines: []string{"````", "text"},
			spans: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scan := ScanFences(strings.Join(tt.lines, "\n"))
			assert.Len(t, scan.Spans, tt.spans)
			assert.Equal(t, tt.unclosed, scan.Unclosed)
		})
	}
}

func TestScanFences_NestedTagExtendsToBareClose(t *testing.T) {
	body := strings.Join([]string{testFence, testFence + "go", "inner", testFence, "outside"}, "\n")
	scan := ScanFences(body)

	require.Len(t, scan.Spans, 1)
	span := scan.Spans[0]
	assert.Equal(t, 0, span.Start)
	assert.Equal(t, strings.Index(body, "outside"), span.End)
}

func TestScanFences_UnclosedSpanEndsAtEOF(t *testing.T) {
	body := "intro\n" + testFence + "\ncode\n"
	scan := ScanFences(body)

	require.Len(t, scan.Spans, 1)
	assert.Equal(t, source.Range{Start: len("intro\n"), End: len(body)}, scan.Spans[0])
	assert.Equal(t, 2, scan.UnclosedLine)
}
