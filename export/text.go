package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/c360studio/recordlint/format"
)

// maxMessageRunes bounds a message cell in the markdown findings table.
const maxMessageRunes = 160

// WriteText writes a summary table followed by findings grouped by file.
func WriteText(w io.Writer, r *Report) error {
	var sb strings.Builder

	sb.WriteString(summaryTable(r, format.ASCII))
	sb.WriteString("\n" + summaryLine(r) + "\n\n")

	if r.Clean() {
		sb.WriteString(cleanMessage + "\n")
		_, err := io.WriteString(w, sb.String())
		return err
	}

	for i, f := range r.Findings {
		if i == 0 || f.Path != r.Findings[i-1].Path {
			if i > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(f.Path + "\n")
		}
		fmt.Fprintf(&sb, "  %-7s %-15s %5s  %s\n",
			f.Severity, f.Code, format.LineRef(f.Line), f.Message)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteMarkdown writes the summary and findings as markdown tables.
func WriteMarkdown(w io.Writer, r *Report) error {
	var sb strings.Builder

	sb.WriteString("## Record lint\n\n")
	sb.WriteString(summaryTable(r, format.Markdown))
	sb.WriteString("\n\n" + summaryLine(r) + "\n\n")

	if r.Clean() {
		sb.WriteString(cleanMessage + "\n")
	} else {
		tb := format.NewTable(format.Markdown)
		tb.Header("Location", "Severity", "Code", "Message")
		for _, f := range r.Findings {
			msg := format.Truncate(f.Message, maxMessageRunes)
			tb.Row(f.Location(), f.Severity, f.Code, strings.ReplaceAll(msg, "|", "\\|"))
		}
		sb.WriteString(tb.String())
		sb.WriteString("\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// summaryLine reads e.g. "Checked 3 documents in 12ms: 2 findings".
func summaryLine(r *Report) string {
	return fmt.Sprintf("Checked %s in %s: %s",
		format.Plural(r.Stats.Documents, "document"),
		format.FmtDuration(r.Duration),
		format.Plural(len(r.Findings), "finding"))
}

func summaryTable(r *Report, mode format.Mode) string {
	s := r.Summary()
	tb := format.NewTable(mode)
	tb.Header("Documents", "Files with findings", "Errors", "Warnings", "Info")
	tb.Row(s.Documents, len(r.Files()), s.Errors, s.Warnings, s.Infos)
	tb.Columns(
		format.ColumnConfig{Number: 1, Align: format.AlignRight},
		format.ColumnConfig{Number: 2, Align: format.AlignRight},
		format.ColumnConfig{Number: 3, Align: format.AlignRight},
		format.ColumnConfig{Number: 4, Align: format.AlignRight},
		format.ColumnConfig{Number: 5, Align: format.AlignRight},
	)
	return tb.String()
}
