// Package corpus builds the document index that rules resolve cross-record
// references against, and loads records from disk for it.
package corpus

import (
	"github.com/c360studio/recordlint/source"
	"github.com/c360studio/recordlint/source/parser"
)

// Duplicate records a document displaced from the index by a later document
// declaring the same id.
type Duplicate struct {
	ID         string
	Path       string // displaced document
	ReplacedBy string // document now holding the id
}

// Index maps record ids to parsed documents. It is built once per run and is
// read-only afterwards.
type Index struct {
	byID       map[string]*source.Document
	order      []string
	all        []*source.Document
	duplicates []Duplicate
}

// Build parses every input and indexes the documents that declare an id.
// Documents without an id are parsed and kept in All, but cannot be resolved
// by id. When two inputs declare the same id, the later one wins.
func Build(inputs []source.Input) *Index {
	p := parser.NewMarkdownParser()
	idx := &Index{
		byID: make(map[string]*source.Document, len(inputs)),
		all:  make([]*source.Document, 0, len(inputs)),
	}

	for _, in := range inputs {
		doc := p.Parse(in.Path, in.Text)
		idx.all = append(idx.all, doc)
		if doc.ID == "" {
			continue
		}
		if prev, ok := idx.byID[doc.ID]; ok {
			idx.duplicates = append(idx.duplicates, Duplicate{ID: doc.ID, Path: prev.Path, ReplacedBy: doc.Path})
		} else {
			idx.order = append(idx.order, doc.ID)
		}
		idx.byID[doc.ID] = doc
	}

	return idx
}

// Get returns the document indexed under id.
func (x *Index) Get(id string) (*source.Document, bool) {
	doc, ok := x.byID[id]
	return doc, ok
}

// Len returns the number of indexed ids.
func (x *Index) Len() int {
	return len(x.byID)
}

// Order returns indexed ids in first-insertion order.
func (x *Index) Order() []string {
	out := make([]string, len(x.order))
	copy(out, x.order)
	return out
}

// Documents returns the indexed documents in Order.
func (x *Index) Documents() []*source.Document {
	out := make([]*source.Document, 0, len(x.order))
	for _, id := range x.order {
		out = append(out, x.byID[id])
	}
	return out
}

// All returns every parsed document in input order, including documents
// without an id and documents displaced by a duplicate id.
func (x *Index) All() []*source.Document {
	out := make([]*source.Document, len(x.all))
	copy(out, x.all)
	return out
}

// Duplicates returns the documents displaced by a later duplicate id.
func (x *Index) Duplicates() []Duplicate {
	out := make([]Duplicate, len(x.duplicates))
	copy(out, x.duplicates)
	return out
}
