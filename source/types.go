// Package source provides the data model for linted records.
package source

import (
	"fmt"
	"strings"
	"time"

	vocab "github.com/c360studio/recordlint/vocabulary/record"
)

// Input is one raw document handed to the core by a loader.
type Input struct {
	// Path is the document path as shown in findings.
	Path string `json:"path"`

	// Text is the raw file content.
	Text string `json:"-"`
}

// Document represents a parsed record with its content and metadata.
type Document struct {
	// ID is the record identifier from front matter. Empty when absent.
	ID string `json:"id"`

	// Path is the document path.
	Path string `json:"path"`

	// Raw is the unmodified document content.
	Raw string `json:"-"`

	// Metadata contains parsed front matter. Never nil.
	Metadata map[string]any `json:"metadata,omitempty"`

	// Body is the content after front matter.
	Body string `json:"-"`

	// BodyOffset is the byte offset of Body within Raw.
	BodyOffset int `json:"body_offset"`

	// Structure is the parsed body structure.
	Structure *Structure `json:"-"`
}

// HasFrontmatter returns true if the document has parsed front matter.
func (d *Document) HasFrontmatter() bool {
	return len(d.Metadata) > 0
}

// Has reports whether field is present in front matter with a non-nil value.
func (d *Document) Has(field string) bool {
	v, ok := d.Metadata[field]
	return ok && v != nil
}

// String returns a scalar front-matter field as a trimmed string.
// Non-string scalars are formatted; lists and mappings return "".
func (d *Document) String(field string) string {
	return Scalar(d.Metadata[field])
}

// StringList returns a front-matter field as a list of strings.
// A scalar value is treated as a one-element list. Empty entries are dropped.
func (d *Document) StringList(field string) []string {
	switch v := d.Metadata[field].(type) {
	case nil:
		return nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s := Scalar(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case []string:
		out := make([]string, 0, len(v))
		for _, s := range v {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		if s := Scalar(v); s != "" {
			return []string{s}
		}
		return nil
	}
}

// Class returns the declared document class.
func (d *Document) Class() vocab.ClassType {
	return vocab.ClassType(strings.ToLower(d.String(vocab.FieldClass)))
}

// Status returns the declared lifecycle status.
func (d *Document) Status() vocab.StatusType {
	return vocab.StatusType(strings.ToLower(d.String(vocab.FieldStatus)))
}

// HistoryEntry is one change-history item from front matter.
type HistoryEntry struct {
	Date string
	Note string
}

// History returns the well-formed change-history entries.
// Malformed entries are skipped; a dedicated rule reports them.
func (d *Document) History() []HistoryEntry {
	items, ok := d.Metadata[vocab.FieldChangeHistory].([]any)
	if !ok {
		return nil
	}
	var entries []HistoryEntry
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		entries = append(entries, HistoryEntry{
			Date: Scalar(m[vocab.HistoryDate]),
			Note: Scalar(m[vocab.HistoryNote]),
		})
	}
	return entries
}

// BodyLine converts a 1-based line number within Body to a line number in Raw.
func (d *Document) BodyLine(bodyLine int) int {
	if bodyLine <= 0 {
		return 0
	}
	return strings.Count(d.Raw[:d.BodyOffset], "\n") + bodyLine
}

// Scalar formats a front-matter scalar as a trimmed string.
// Lists and mappings return "".
func Scalar(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case time.Time:
		return t.Format(time.DateOnly)
	case []any, map[string]any:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

// KeyMarker is one occurrence of an inline section marker.
type KeyMarker struct {
	Key    string `json:"key"`
	Offset int    `json:"offset"`
	Line   int    `json:"line"`
}

// Heading is one markdown ATX heading.
type Heading struct {
	Text   string `json:"text"`
	Level  int    `json:"level"`
	Offset int    `json:"offset"`
	Line   int    `json:"line"`
}

// Range is a half-open byte interval [Start, End).
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Contains reports whether offset falls within the range.
func (r Range) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}

// BlockError records an embedded structured block that was dropped.
type BlockError struct {
	Language string `json:"language"`
	Line     int    `json:"line"`
	Reason   string `json:"reason"`
}

// TailBlock is the optional trailing machine-readable block.
// When Present is false, Reason says why.
type TailBlock struct {
	Present bool           `json:"present"`
	Data    map[string]any `json:"data,omitempty"`
	Line    int            `json:"line,omitempty"`
	Reason  string         `json:"reason,omitempty"`
}

// Tail-block absence reasons.
const (
	TailMissing      = "missing"
	TailUnterminated = "unterminated"
	TailNoPayload    = "no payload"
	TailNotObject    = "not an object"
)

// FenceScan is the result of balanced fence scanning.
type FenceScan struct {
	// Spans are the fenced regions including their fence lines.
	Spans []Range `json:"spans,omitempty"`

	// Unclosed is true when a fence was still open at end of document.
	Unclosed bool `json:"unclosed"`

	// UnclosedLine is the line of the fence left open.
	UnclosedLine int `json:"unclosed_line,omitempty"`
}

// Structure is the single-pass parse of a document body.
// Offsets and lines are relative to the body.
type Structure struct {
	Markers     []KeyMarker       `json:"markers"`
	Headings    []Heading         `json:"headings"`
	Blocks      []map[string]any  `json:"blocks,omitempty"`
	BlockErrors []BlockError      `json:"block_errors,omitempty"`
	Tail        TailBlock         `json:"tail"`
	Exclusions  []Range           `json:"exclusions,omitempty"`
	Quotes      []Range           `json:"quotes,omitempty"`
	Sections    map[string]string `json:"sections"`
	Fences      FenceScan         `json:"fences"`
}

// Excluded reports whether offset falls inside any exclusion range.
func (s *Structure) Excluded(offset int) bool {
	for _, r := range s.Exclusions {
		if r.Contains(offset) {
			return true
		}
	}
	return false
}

// Quoted reports whether offset falls on a blockquote line.
func (s *Structure) Quoted(offset int) bool {
	for _, r := range s.Quotes {
		if r.Contains(offset) {
			return true
		}
	}
	return false
}

// InFence reports whether offset falls inside a balanced fence span.
func (s *Structure) InFence(offset int) bool {
	for _, r := range s.Fences.Spans {
		if r.Contains(offset) {
			return true
		}
	}
	return false
}

// MarkerCount returns how many times key occurs as a marker.
func (s *Structure) MarkerCount(key string) int {
	n := 0
	for _, m := range s.Markers {
		if m.Key == key {
			n++
		}
	}
	return n
}

// FirstMarker returns the first marker with key.
func (s *Structure) FirstMarker(key string) (KeyMarker, bool) {
	for _, m := range s.Markers {
		if m.Key == key {
			return m, true
		}
	}
	return KeyMarker{}, false
}
