package validation

import "sync"

// Sink receives findings from a run.
type Sink interface {
	Add(f Finding)
}

// Collector is a Sink that keeps findings in memory. It is safe for
// concurrent use.
type Collector struct {
	mu       sync.Mutex
	findings []Finding
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Add appends a finding.
func (c *Collector) Add(f Finding) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.findings = append(c.findings, f)
}

// Findings returns a copy of the collected findings in arrival order.
func (c *Collector) Findings() []Finding {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Finding, len(c.findings))
	copy(out, c.findings)
	return out
}

// Sorted returns a sorted copy of the collected findings.
func (c *Collector) Sorted() []Finding {
	out := c.Findings()
	Sort(out)
	return out
}

// Len returns the number of collected findings.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.findings)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(f Finding)

// Add calls fn(f).
func (fn SinkFunc) Add(f Finding) {
	fn(f)
}
