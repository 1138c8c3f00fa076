// Package export writes lint results as text, markdown, JSONL or JSON reports.
package export

import (
	"fmt"
	"sort"
	"strings"
)

// Format is a report serialization.
type Format string

const (
	// FormatText is a terminal report with a summary table.
	FormatText Format = "text"

	// FormatMarkdown is a markdown report suitable for pull-request comments.
	FormatMarkdown Format = "markdown"

	// FormatJSONL writes one JSON record per finding.
	FormatJSONL Format = "jsonl"

	// FormatJSON writes a single JSON document.
	FormatJSON Format = "json"
)

// FormatInfo provides metadata about a report format.
type FormatInfo struct {
	// Name is the format identifier.
	Name Format

	// MIMEType is the standard MIME type.
	MIMEType string

	// Extension is the file extension (with dot).
	Extension string

	// Description describes the format.
	Description string
}

// Formats contains metadata for all supported formats.
var Formats = map[Format]FormatInfo{
	FormatText: {
		Name:        FormatText,
		MIMEType:    "text/plain",
		Extension:   ".txt",
		Description: "Summary table followed by findings grouped by file",
	},
	FormatMarkdown: {
		Name:        FormatMarkdown,
		MIMEType:    "text/markdown",
		Extension:   ".md",
		Description: "Markdown summary and findings tables",
	},
	FormatJSONL: {
		Name:        FormatJSONL,
		MIMEType:    "application/jsonl",
		Extension:   ".jsonl",
		Description: "One JSON record per finding, or a single CLEAN record",
	},
	FormatJSON: {
		Name:        FormatJSON,
		MIMEType:    "application/json",
		Extension:   ".json",
		Description: "Run id, summary and findings in one JSON document",
	},
}

// GetFormatInfo returns metadata for a format.
func GetFormatInfo(format Format) (FormatInfo, bool) {
	info, ok := Formats[format]
	return info, ok
}

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := Formats[f]; !ok {
		return "", fmt.Errorf("unknown format %q (expected one of %s)", name, strings.Join(ListFormats(), ", "))
	}
	return f, nil
}

// ListFormats returns all format names, sorted.
func ListFormats() []string {
	names := make([]string, 0, len(Formats))
	for f := range Formats {
		names = append(names, string(f))
	}
	sort.Strings(names)
	return names
}
