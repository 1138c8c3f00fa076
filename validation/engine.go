// Package validation lints a corpus of records. Rules run in two phases: a
// per-document phase gated by the applicability policy, then a post-run phase
// over the link graph of the whole index.
package validation

import (
	"fmt"
	"log/slog"

	"github.com/c360studio/recordlint/corpus"
	"github.com/c360studio/recordlint/graph"
	"github.com/c360studio/recordlint/source"
)

// RuleFunc evaluates one rule. It returns an error only when reporting fails.
type RuleFunc func(c *Context, r *Reporter) error

// Rule pairs a code with the function that checks it.
type Rule struct {
	Code  Code
	Check RuleFunc
}

// Stats describes one run.
type Stats struct {
	Documents int `json:"documents"`
	Evaluated int `json:"evaluated"`
	Skipped   int `json:"skipped"`
	Findings  int `json:"findings"`
}

// Engine runs rules over an index.
type Engine struct {
	// DocumentRules run once per document, in order.
	DocumentRules []Rule

	// PostRunRules run once per run after every document, in order.
	PostRunRules []Rule

	logger *slog.Logger
}

// NewEngine creates an engine with the default rulebook.
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		DocumentRules: documentRules(),
		PostRunRules:  postRunRules(),
		logger:        logger,
	}
}

// Rules returns both phases, per-document rules first.
func (e *Engine) Rules() []Rule {
	out := make([]Rule, 0, len(e.DocumentRules)+len(e.PostRunRules))
	out = append(out, e.DocumentRules...)
	return append(out, e.PostRunRules...)
}

// Run evaluates every rule against idx and sends findings to sink. It stops
// at the first rule error, which is always fatal.
func (e *Engine) Run(idx *corpus.Index, sink Sink) (Stats, error) {
	var stats Stats
	counting := SinkFunc(func(f Finding) {
		stats.Findings++
		sink.Add(f)
	})

	for _, doc := range idx.All() {
		stats.Documents++
		class := doc.Class()
		ctx := &Context{Doc: doc, Index: idx}
		rep := NewReporter(counting, doc.Path)

		for _, rule := range e.DocumentRules {
			if !IsBootstrap(rule.Code) && !Applies(class, rule.Code) {
				stats.Skipped++
				e.logger.Debug("Rule skipped", "code", rule.Code, "path", doc.Path, "class", class)
				continue
			}
			stats.Evaluated++
			if err := rule.Check(ctx, rep); err != nil {
				return stats, fmt.Errorf("rule %s on %s: %w", rule.Code, doc.Path, err)
			}
		}
	}

	ctx := &Context{Index: idx, Graph: graph.Build(idx.Documents())}
	rep := NewReporter(counting, "")
	for _, rule := range e.PostRunRules {
		stats.Evaluated++
		if err := rule.Check(ctx, rep); err != nil {
			return stats, fmt.Errorf("rule %s: %w", rule.Code, err)
		}
	}

	e.logger.Debug("Lint run complete",
		"documents", stats.Documents,
		"evaluated", stats.Evaluated,
		"skipped", stats.Skipped,
		"findings", stats.Findings)

	return stats, nil
}

// Run evaluates the default rulebook against idx.
func Run(idx *corpus.Index, sink Sink, logger *slog.Logger) (Stats, error) {
	return NewEngine(logger).Run(idx, sink)
}

// Lint indexes inputs, runs the default rulebook and returns sorted findings.
func Lint(inputs []source.Input, logger *slog.Logger) ([]Finding, Stats, error) {
	c := NewCollector()
	stats, err := Run(corpus.Build(inputs), c, logger)
	if err != nil {
		return nil, stats, err
	}
	return c.Sorted(), stats, nil
}

func documentRules() []Rule {
	var rules []Rule
	rules = append(rules, metaRules...)
	rules = append(rules, structureRules...)
	rules = append(rules, linkRules...)
	rules = append(rules, contentRules...)
	rules = append(rules, decisionRules...)
	return rules
}

func postRunRules() []Rule {
	return append([]Rule(nil), graphRules...)
}
