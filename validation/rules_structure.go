package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/c360studio/recordlint/source"
	vocab "github.com/c360studio/recordlint/vocabulary/record"
)

var headingLine = regexp.MustCompile(`^ {0,3}#{1,6}\s`)

// tailFields are mirrored between front matter and the tail block.
var tailFields = []string{vocab.FieldID, vocab.FieldClass, vocab.FieldStatus}

var structureRules = []Rule{
	{StructRequired, checkRequiredMarkers},
	{StructDuplicate, checkDuplicateMarkers},
	{StructUnknown, checkUnknownMarkers},
	{StructOrder, checkMarkerOrder},
	{StructEmpty, checkEmptySections},
	{StructTitle, checkTitle},
	{StructHeadingSkip, checkHeadingLevels},
	{StructTailMissing, checkTailMissing},
	{StructTailInvalid, checkTailInvalid},
	{StructTailMismatch, checkTailMismatch},
	{StructFence, checkFences},
	{StructBlockDropped, checkDroppedBlocks},
}

func checkRequiredMarkers(c *Context, r *Reporter) error {
	s := c.Structure()
	for _, key := range vocab.RequiredMarkers[c.Doc.Class()] {
		if s.MarkerCount(key) > 0 {
			continue
		}
		if err := r.Reportf(StructRequired, 0,
			"missing required section marker <!-- key: %s --> for class %s", key, c.Doc.Class()); err != nil {
			return err
		}
	}
	return nil
}

func checkDuplicateMarkers(c *Context, r *Reporter) error {
	s := c.Structure()
	seen := make(map[string]int)
	for _, m := range s.Markers {
		seen[m.Key]++
		if seen[m.Key] != 2 {
			continue
		}
		if err := r.Reportf(StructDuplicate, c.Line(m.Line),
			"section marker %q appears %d times; the last occurrence wins", m.Key, s.MarkerCount(m.Key)); err != nil {
			return err
		}
	}
	return nil
}

func checkUnknownMarkers(c *Context, r *Reporter) error {
	seen := make(map[string]bool)
	for _, m := range c.Structure().Markers {
		if vocab.MarkerRank(m.Key) >= 0 || seen[m.Key] {
			continue
		}
		seen[m.Key] = true
		if err := r.Reportf(StructUnknown, c.Line(m.Line), "unknown section marker %q", m.Key); err != nil {
			return err
		}
	}
	return nil
}

func checkMarkerOrder(c *Context, r *Reporter) error {
	var prev source.KeyMarker
	prevRank := -1
	seen := make(map[string]bool)
	for _, m := range c.Structure().Markers {
		rank := vocab.MarkerRank(m.Key)
		if rank < 0 || seen[m.Key] {
			continue
		}
		seen[m.Key] = true
		if rank < prevRank {
			return r.Reportf(StructOrder, c.Line(m.Line),
				"section %q should come before %q", m.Key, prev.Key)
		}
		prev, prevRank = m, rank
	}
	return nil
}

func checkEmptySections(c *Context, r *Reporter) error {
	s := c.Structure()
	reported := make(map[string]bool)
	for _, m := range s.Markers {
		if reported[m.Key] {
			continue
		}
		content, ok := s.Sections[m.Key]
		if !ok || !isBlankSection(content) {
			continue
		}
		reported[m.Key] = true
		last := m
		for _, other := range s.Markers {
			if other.Key == m.Key {
				last = other
			}
		}
		if err := r.Reportf(StructEmpty, c.Line(last.Line), "section %q is empty", m.Key); err != nil {
			return err
		}
	}
	return nil
}

// isBlankSection reports whether content holds nothing but whitespace and
// headings.
func isBlankSection(content string) bool {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || headingLine.MatchString(line+" ") {
			continue
		}
		return false
	}
	return true
}

func checkTitle(c *Context, r *Reporter) error {
	var titles []source.Heading
	for _, h := range c.Structure().Headings {
		if h.Level == 1 {
			titles = append(titles, h)
		}
	}
	switch len(titles) {
	case 1:
		return nil
	case 0:
		return r.Report(StructTitle, 0, "document has no level-1 heading")
	default:
		return r.Reportf(StructTitle, c.Line(titles[1].Line),
			"document has %d level-1 headings; expected exactly one", len(titles))
	}
}

func checkHeadingLevels(c *Context, r *Reporter) error {
	headings := c.Structure().Headings
	for i := 1; i < len(headings); i++ {
		prev, cur := headings[i-1].Level, headings[i].Level
		if cur <= prev+1 {
			continue
		}
		if err := r.Reportf(StructHeadingSkip, c.Line(headings[i].Line),
			"heading %q jumps from level %d to level %d", headings[i].Text, prev, cur); err != nil {
			return err
		}
	}
	return nil
}

func checkTailMissing(c *Context, r *Reporter) error {
	tail := c.Structure().Tail
	if tail.Present || tail.Reason != source.TailMissing {
		return nil
	}
	return r.Report(StructTailMissing, 0, "no <!-- record:begin --> tail block")
}

func checkTailInvalid(c *Context, r *Reporter) error {
	tail := c.Structure().Tail
	if tail.Present || tail.Reason == source.TailMissing {
		return nil
	}
	return r.Reportf(StructTailInvalid, c.Line(tail.Line), "tail block malformed: %s", tail.Reason)
}

func checkTailMismatch(c *Context, r *Reporter) error {
	tail := c.Structure().Tail
	if !tail.Present {
		return nil
	}
	line := c.Line(tail.Line)
	for _, field := range tailFields {
		want := c.Doc.String(field)
		got, ok := tail.Data[field]
		var msg string
		switch {
		case !ok:
			msg = fmt.Sprintf("tail block has no %q field", field)
		case !tailValueMatches(field, source.Scalar(got), want):
			msg = fmt.Sprintf("tail block %s %q does not match front matter %q", field, source.Scalar(got), want)
		default:
			continue
		}
		if err := r.Report(StructTailMismatch, line, msg); err != nil {
			return err
		}
	}
	return nil
}

// tailValueMatches compares ids exactly and enumerations case-insensitively.
func tailValueMatches(field, got, want string) bool {
	if field == vocab.FieldID {
		return got == want
	}
	return strings.EqualFold(got, want)
}

func checkFences(c *Context, r *Reporter) error {
	fences := c.Structure().Fences
	if !fences.Unclosed {
		return nil
	}
	return r.Report(StructFence, c.Line(fences.UnclosedLine), "code fence opened here is never closed")
}

func checkDroppedBlocks(c *Context, r *Reporter) error {
	for _, be := range c.Structure().BlockErrors {
		if err := r.Reportf(StructBlockDropped, c.Line(be.Line),
			"%s block dropped: %s", be.Language, be.Reason); err != nil {
			return err
		}
	}
	return nil
}
