package validation

import (
	"fmt"
	"strings"

	"github.com/c360studio/recordlint/corpus"
	"github.com/c360studio/recordlint/graph"
	"github.com/c360studio/recordlint/source"
)

// Context is what a rule sees. In the per-document phase Doc is set; in the
// post-run phase Doc is nil and Graph is set. Index is always set and must
// not be modified.
type Context struct {
	Doc   *source.Document
	Index *corpus.Index
	Graph *graph.Graph
}

// Path returns the document path, or "" in the post-run phase.
func (c *Context) Path() string {
	if c.Doc == nil {
		return ""
	}
	return c.Doc.Path
}

// Structure returns the document structure, never nil.
func (c *Context) Structure() *source.Structure {
	if c.Doc == nil || c.Doc.Structure == nil {
		return &source.Structure{Sections: map[string]string{}}
	}
	return c.Doc.Structure
}

// Metadata returns the document front matter, never nil.
func (c *Context) Metadata() map[string]any {
	if c.Doc == nil || c.Doc.Metadata == nil {
		return map[string]any{}
	}
	return c.Doc.Metadata
}

// Line converts a body line to a document line.
func (c *Context) Line(bodyLine int) int {
	if c.Doc == nil {
		return 0
	}
	return c.Doc.BodyLine(bodyLine)
}

// FieldLine returns the line of a top-level front-matter field in the current
// document. It falls back to line 1 when the field is not found in existing
// front matter and to 0 when there is none.
func (c *Context) FieldLine(field string) int {
	return fieldLine(c.Doc, field)
}

func fieldLine(doc *source.Document, field string) int {
	if doc == nil || doc.BodyOffset == 0 {
		return 0
	}
	prefix := field + ":"
	for i, line := range strings.Split(doc.Raw[:doc.BodyOffset], "\n") {
		if strings.HasPrefix(line, prefix) {
			return i + 1
		}
	}
	return 1
}

// Reporter turns rule reports into findings on the caller's Sink.
type Reporter struct {
	sink Sink
	path string
}

// NewReporter creates a reporter attributing findings to path.
func NewReporter(sink Sink, path string) *Reporter {
	return &Reporter{sink: sink, path: path}
}

// Report emits a finding for code. Severity comes from the code table; an
// empty message falls back to the code title. It fails only when code is not
// declared.
func (r *Reporter) Report(code Code, line int, message string) error {
	return r.ReportAt(r.path, code, line, message)
}

// Reportf is Report with a formatted message.
func (r *Reporter) Reportf(code Code, line int, format string, args ...any) error {
	return r.ReportAt(r.path, code, line, fmt.Sprintf(format, args...))
}

// ReportAt emits a finding attributed to path instead of the reporter's own.
func (r *Reporter) ReportAt(path string, code Code, line int, message string) error {
	d, err := Lookup(code)
	if err != nil {
		return err
	}
	if message == "" {
		message = d.Title
	}
	r.sink.Add(Finding{
		Severity: d.Severity,
		Code:     code,
		Path:     path,
		Line:     line,
		Message:  message,
	})
	return nil
}
