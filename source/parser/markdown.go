// Package parser turns raw record text into a front-matter mapping and an
// addressable body structure.
package parser

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/c360studio/recordlint/source"
	vocab "github.com/c360studio/recordlint/vocabulary/record"
)

// MarkdownParser parses markdown records with optional YAML front matter.
type MarkdownParser struct{}

// NewMarkdownParser creates a new markdown parser.
func NewMarkdownParser() *MarkdownParser {
	return &MarkdownParser{}
}

// Parse parses a record, extracting front matter, body and structure.
// Parsing never fails; malformed input degrades to empty constructs.
func (p *MarkdownParser) Parse(path, text string) *source.Document {
	meta, offset := ExtractFrontmatter(text)

	doc := &source.Document{
		Path:       path,
		Raw:        text,
		Metadata:   meta,
		Body:       text[offset:],
		BodyOffset: offset,
	}
	doc.ID = doc.String(vocab.FieldID)
	doc.Structure = ParseStructure(doc.Body)

	return doc
}

// ContentHash computes a SHA256 hash of the content.
func ContentHash(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}
