package parser

import (
	"strings"

	"github.com/c360studio/recordlint/source"
)

const fenceMarker = "```"

// fence is one balanced fenced region found by scanFences.
type fence struct {
	span        source.Range // opening fence line through closing fence line
	content     source.Range // text between the fence lines
	lang        string       // lower-cased tag of the opening line, "" when bare
	openLine    int
	closedAtEOF bool
}

// fenceLine classifies a line. It reports whether the line is a fence line,
// and if so whether it carries a language tag.
func fenceLine(line string) (isFence bool, lang string) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, fenceMarker) {
		return false, ""
	}
	rest := trimmed[len(fenceMarker):]
	if rest == "" {
		return true, ""
	}
	if strings.Contains(rest, "`") {
		return false, ""
	}
	fields := strings.Fields(rest)
	return true, strings.ToLower(fields[0])
}

// scanFences walks body line by line and returns the balanced fenced regions.
//
// A bare ``` line opens a fence, or closes the open one. A tagged ```lang line
// opens a fence when none is open and is ordinary content inside an open
// fence. A fence still open at end of document is closed there.
func scanFences(body string, lines *lineIndex) []fence {
	var (
		fences []fence
		stack  []fence
	)

	for pos := 0; pos < len(body); {
		line, next, _ := nextLine(body, pos)
		isFence, lang := fenceLine(line)
		if isFence {
			switch {
			case len(stack) == 0:
				stack = append(stack, fence{
					span:     source.Range{Start: pos},
					content:  source.Range{Start: next},
					lang:     lang,
					openLine: lines.lineAt(pos),
				})
			case lang == "":
				open := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				open.content.End = pos
				open.span.End = next
				fences = append(fences, open)
			}
		}
		pos = next
	}

	for len(stack) > 0 {
		open := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		open.content.End = len(body)
		open.span.End = len(body)
		open.closedAtEOF = true
		fences = append(fences, open)
	}

	return fences
}

// ScanFences runs the balanced fence scan over body. It is the basis of
// example-only scanning: callers inspect only text inside the returned spans.
func ScanFences(body string) source.FenceScan {
	return fenceScan(scanFences(body, newLineIndex(body)))
}

func fenceScan(fences []fence) source.FenceScan {
	var scan source.FenceScan
	for _, f := range fences {
		scan.Spans = append(scan.Spans, f.span)
		if f.closedAtEOF {
			scan.Unclosed = true
			scan.UnclosedLine = f.openLine
		}
	}
	return scan
}

// lineIndex maps byte offsets to 1-based line numbers.
type lineIndex struct {
	starts []int
}

func newLineIndex(text string) *lineIndex {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{starts: starts}
}

func (li *lineIndex) lineAt(offset int) int {
	lo, hi := 0, len(li.starts)
	for lo < hi {
		mid := (lo + hi) / 2
		if li.starts[mid] <= offset {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}
