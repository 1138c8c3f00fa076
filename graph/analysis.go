package graph

import (
	"strings"

	"github.com/c360studio/recordlint/source"
	vocab "github.com/c360studio/recordlint/vocabulary/record"
)

// HasCycle reports whether the forward graph contains any cycle.
//
// Every node is used as a DFS root so disjoint cycles anywhere are found.
// The returned id is not a cycle member: it is the first node in index order
// with an outgoing edge, which is where a cycle finding is attributed.
func (g *Graph) HasCycle() (bool, string) {
	visited := make(map[string]bool, len(g.Nodes))
	onStack := make(map[string]bool)

	var visit func(id string) bool
	visit = func(id string) bool {
		visited[id] = true
		onStack[id] = true
		for _, next := range g.Forward[id] {
			if onStack[next] {
				return true
			}
			if !visited[next] && visit(next) {
				return true
			}
		}
		onStack[id] = false
		return false
	}

	found := false
	for _, id := range g.Nodes {
		if !visited[id] && visit(id) {
			found = true
			break
		}
	}
	if !found {
		return false, ""
	}

	for _, id := range g.Nodes {
		if len(g.Forward[id]) > 0 {
			return true, id
		}
	}
	return true, ""
}

// FanOut is a base record claimed as superseded by several records.
type FanOut struct {
	Base        string
	Descendants []string
}

// FanOuts returns every base with at least threshold descendants, in index order.
func (g *Graph) FanOuts(threshold int) []FanOut {
	var out []FanOut
	for _, id := range g.Nodes {
		if desc := g.Reverse[id]; len(desc) >= threshold {
			out = append(out, FanOut{Base: id, Descendants: append([]string(nil), desc...)})
		}
	}
	return out
}

// Fork is a record that supersedes two or more records.
type Fork struct {
	Doc       *source.Document
	Targets   []string
	Rationale bool
}

// Forks returns the documents declaring two or more distinct supersedes
// targets. Targets are the declared set, known or not, in declaration order.
// Rationale is true when a change-history note mentions one of
// vocab.ForkKeywords.
func Forks(docs []*source.Document) []Fork {
	var out []Fork
	for _, doc := range docs {
		targets := distinct(doc.StringList(vocab.FieldSupersedes))
		if len(targets) < 2 {
			continue
		}
		out = append(out, Fork{
			Doc:       doc,
			Targets:   targets,
			Rationale: hasForkRationale(doc.History()),
		})
	}
	return out
}

func distinct(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func hasForkRationale(history []source.HistoryEntry) bool {
	for _, entry := range history {
		note := strings.ToLower(entry.Note)
		for _, kw := range vocab.ForkKeywords {
			if strings.Contains(note, kw) {
				return true
			}
		}
	}
	return false
}
