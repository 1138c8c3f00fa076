package format_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/c360studio/recordlint/format"
)

func TestASCII_BasicTable(t *testing.T) {
	tb := format.NewTable(format.ASCII)
	tb.Header("Documents", "Errors")
	tb.Row(12, 3)
	out := tb.String()

	assert.Contains(t, out, "Documents")
	assert.Contains(t, out, "12")
	assert.Contains(t, out, "───", "ASCII mode uses box-drawing characters")
	assert.Equal(t, 1, tb.Len())
}

func TestMarkdown_WithFooter(t *testing.T) {
	tb := format.NewTable(format.Markdown)
	tb.Header("Code", "Count")
	tb.Row("REC-META-001", 2)
	tb.Footer("TOTAL", 2)
	out := tb.String()

	assert.Contains(t, out, "| Code")
	assert.Contains(t, out, "---")
	assert.Contains(t, out, "TOTAL")
}

func TestColumns_RightAlign(t *testing.T) {
	tb := format.NewTable(format.ASCII)
	tb.Header("Name", "Value")
	tb.Row("findings", 12345)
	tb.Columns(format.ColumnConfig{Number: 2, Align: format.AlignRight})

	assert.Contains(t, tb.String(), "12345")
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "abc", format.Truncate("abc", 5))
	assert.Equal(t, "ab...", format.Truncate("abcdefgh", 5))
	assert.Equal(t, "ab", format.Truncate("abcdefgh", 2))
	assert.Equal(t, "déc...", format.Truncate("décision", 6))

	assert.Equal(t, "1 finding", format.Plural(1, "finding"))
	assert.Equal(t, "0 findings", format.Plural(0, "finding"))

	assert.Equal(t, "250ms", format.FmtDuration(250*time.Millisecond))
	assert.Equal(t, "5s", format.FmtDuration(5*time.Second))
	assert.Equal(t, "2m 5s", format.FmtDuration(125*time.Second))

	assert.Equal(t, "-", format.LineRef(0))
	assert.Equal(t, "42", format.LineRef(42))
}
