package validation

import (
	"strings"

	"github.com/c360studio/recordlint/graph"
	vocab "github.com/c360studio/recordlint/vocabulary/record"
)

// fanOutThreshold is the number of descendants that makes a fan-out.
const fanOutThreshold = 2

var graphRules = []Rule{
	{GraphFanOut, checkFanOut},
	{GraphCycle, checkCycle},
	{GraphFork, checkForks},
}

func checkFanOut(c *Context, r *Reporter) error {
	for _, f := range c.Graph.FanOuts(fanOutThreshold) {
		doc, ok := c.Index.Get(f.Base)
		if !ok {
			continue
		}
		if err := r.ReportAt(doc.Path, GraphFanOut, 0,
			f.Base+" is superseded by "+strings.Join(f.Descendants, ", ")+"; history diverges here"); err != nil {
			return err
		}
	}
	return nil
}

func checkCycle(c *Context, r *Reporter) error {
	found, at := c.Graph.HasCycle()
	if !found {
		return nil
	}
	doc, ok := c.Index.Get(at)
	if !ok {
		return nil
	}
	return r.ReportAt(doc.Path, GraphCycle, fieldLine(doc, vocab.FieldSupersedes),
		"supersedes relationships form a cycle")
}

func checkForks(c *Context, r *Reporter) error {
	for _, f := range graph.Forks(c.Index.Documents()) {
		if f.Rationale {
			continue
		}
		if err := r.ReportAt(f.Doc.Path, GraphFork, fieldLine(f.Doc, vocab.FieldSupersedes),
			f.Doc.ID+" supersedes "+strings.Join(f.Targets, ", ")+
				" but no change_history note explains the fork"); err != nil {
			return err
		}
	}
	return nil
}
