// Package graph builds the supersedes relationship graph over indexed records
// and analyses it for cycles, fan-out and forks.
package graph

import (
	"github.com/c360studio/recordlint/source"
	vocab "github.com/c360studio/recordlint/vocabulary/record"
)

// Graph holds the forward ("supersedes") and reverse ("superseded by")
// adjacency over known record ids. It is built fresh each run.
type Graph struct {
	// Nodes are the known ids in index order.
	Nodes []string

	// Forward maps an id to the known ids it claims to supersede.
	Forward map[string][]string

	// Reverse maps an id to the known ids that claim to supersede it.
	Reverse map[string][]string
}

// Build constructs the graph from indexed documents, given in index order.
// Edges pointing at ids outside docs are dropped; repeated targets collapse
// to one edge.
func Build(docs []*source.Document) *Graph {
	g := &Graph{
		Nodes:   make([]string, 0, len(docs)),
		Forward: make(map[string][]string, len(docs)),
		Reverse: make(map[string][]string),
	}

	known := make(map[string]bool, len(docs))
	for _, doc := range docs {
		if doc.ID == "" || known[doc.ID] {
			continue
		}
		known[doc.ID] = true
		g.Nodes = append(g.Nodes, doc.ID)
	}

	for _, doc := range docs {
		if !known[doc.ID] || g.Forward[doc.ID] != nil {
			continue
		}
		seen := make(map[string]bool)
		targets := []string{}
		for _, target := range doc.StringList(vocab.FieldSupersedes) {
			if !known[target] || seen[target] {
				continue
			}
			seen[target] = true
			targets = append(targets, target)
		}
		g.Forward[doc.ID] = targets
	}

	for _, id := range g.Nodes {
		for _, target := range g.Forward[id] {
			g.Reverse[target] = append(g.Reverse[target], id)
		}
	}

	return g
}

// Edges returns the total number of forward edges.
func (g *Graph) Edges() int {
	n := 0
	for _, targets := range g.Forward {
		n += len(targets)
	}
	return n
}
