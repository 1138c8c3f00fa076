package parser

import (
	"errors"
	"regexp"
	"strings"

	"github.com/c360studio/recordlint/source"
)

// Regex patterns for structural parsing.
var (
	markerPattern     = regexp.MustCompile(`(?i)<!--\s*key:\s*([a-z0-9_-]+)\s*-->`)
	headingPattern    = regexp.MustCompile(`^ {0,3}(#{1,6})\s+(.+?)\s*#*\s*$`)
	inlineCodePattern = regexp.MustCompile("`[^`\n]+`")
	bareURLPattern    = regexp.MustCompile("https?://[^\\s<>()\\[\\]\"'`]+")
	htmlCommentRe     = regexp.MustCompile(`(?s)<!--.*?-->`)
	tailBeginPattern  = regexp.MustCompile(`(?i)<!--\s*record:begin\s*-->`)
	tailEndPattern    = regexp.MustCompile(`(?i)<!--\s*record:end\s*-->`)
	tailJSONPattern   = regexp.MustCompile("(?s)```json[ \\t]*\\r?\\n(.*?)\\r?\\n[ \\t]*```")
	blockquotePattern = regexp.MustCompile(`^ {0,3}>`)
)

// tailRegion is one begin/end sentinel pair.
type tailRegion struct {
	begin int // offset of the begin sentinel
	inner source.Range
	end   int // offset just past the end sentinel
}

// ParseStructure parses a document body in a single pass and never fails.
// Irregular constructs (malformed blocks, unmatched sentinels, unbalanced
// fences) degrade to absent for that construct only.
func ParseStructure(body string) *source.Structure {
	lines := newLineIndex(body)
	fences := scanFences(body, lines)
	regions, unterminated := findTailRegions(body)

	s := &source.Structure{
		Markers:  findMarkers(body, lines),
		Sections: splitSections(body),
		Fences:   fenceScan(fences),
		Tail:     parseTail(body, lines, regions, unterminated),
	}

	for _, f := range fences {
		s.Exclusions = append(s.Exclusions, f.span)
		if f.lang == "" || insideTail(regions, f.span.Start) {
			continue
		}
		if _, ok := Languages.Lookup(f.lang); !ok {
			continue
		}
		m, err := Languages.DecodeMapping(f.lang, []byte(body[f.content.Start:f.content.End]))
		if err != nil {
			s.BlockErrors = append(s.BlockErrors, source.BlockError{
				Language: f.lang,
				Line:     f.openLine,
				Reason:   err.Error(),
			})
			continue
		}
		s.Blocks = append(s.Blocks, m)
	}

	comments := htmlCommentRe.FindAllStringIndex(body, -1)
	for pos := 0; pos < len(body); {
		line, next, _ := nextLine(body, pos)
		if inSpans(fences, pos) || inComment(comments, pos) {
			pos = next
			continue
		}
		if m := headingPattern.FindStringSubmatch(strings.TrimRight(line, "\r")); m != nil {
			s.Headings = append(s.Headings, source.Heading{
				Text:   m[2],
				Level:  len(m[1]),
				Offset: pos,
				Line:   lines.lineAt(pos),
			})
		} else if blockquotePattern.MatchString(line) {
			quote := source.Range{Start: pos, End: next}
			s.Exclusions = append(s.Exclusions, quote)
			s.Quotes = append(s.Quotes, quote)
		}
		pos = next
	}

	for _, re := range []*regexp.Regexp{inlineCodePattern, bareURLPattern} {
		for _, loc := range re.FindAllStringIndex(body, -1) {
			s.Exclusions = append(s.Exclusions, source.Range{Start: loc[0], End: loc[1]})
		}
	}
	for _, loc := range comments {
		s.Exclusions = append(s.Exclusions, source.Range{Start: loc[0], End: loc[1]})
	}

	return s
}

// findMarkers records every key marker in document order, duplicates included.
func findMarkers(body string, lines *lineIndex) []source.KeyMarker {
	var markers []source.KeyMarker
	for _, loc := range markerPattern.FindAllStringSubmatchIndex(body, -1) {
		markers = append(markers, source.KeyMarker{
			Key:    strings.ToLower(body[loc[2]:loc[3]]),
			Offset: loc[0],
			Line:   lines.lineAt(loc[0]),
		})
	}
	return markers
}

// splitSections maps each key to the raw text between its marker and the
// next marker. A repeated key keeps the content of its last occurrence.
func splitSections(body string) map[string]string {
	sections := make(map[string]string)
	locs := markerPattern.FindAllStringSubmatchIndex(body, -1)
	for i, loc := range locs {
		end := len(body)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		sections[strings.ToLower(body[loc[2]:loc[3]])] = body[loc[1]:end]
	}
	return sections
}

// findTailRegions pairs each begin sentinel with the first end sentinel after
// it. It also reports whether any begin sentinel was left without an end.
func findTailRegions(body string) ([]tailRegion, bool) {
	begins := tailBeginPattern.FindAllStringIndex(body, -1)
	ends := tailEndPattern.FindAllStringIndex(body, -1)

	var (
		regions      []tailRegion
		unterminated bool
	)
	for i, b := range begins {
		limit := len(body)
		if i+1 < len(begins) {
			limit = begins[i+1][0]
		}
		matched := false
		for _, e := range ends {
			if e[0] >= b[1] && e[0] < limit {
				regions = append(regions, tailRegion{
					begin: b[0],
					inner: source.Range{Start: b[1], End: e[0]},
					end:   e[1],
				})
				matched = true
				break
			}
		}
		if !matched {
			unterminated = true
		}
	}
	return regions, unterminated
}

// parseTail decodes the last complete tail region. Earlier regions are
// treated as illustrative.
func parseTail(body string, lines *lineIndex, regions []tailRegion, unterminated bool) source.TailBlock {
	if len(regions) == 0 {
		if unterminated {
			return source.TailBlock{Reason: source.TailUnterminated}
		}
		return source.TailBlock{Reason: source.TailMissing}
	}

	last := regions[len(regions)-1]
	line := lines.lineAt(last.begin)
	inner := body[last.inner.Start:last.inner.End]

	m := tailJSONPattern.FindStringSubmatch(inner)
	if m == nil {
		return source.TailBlock{Line: line, Reason: source.TailNoPayload}
	}

	data, err := Languages.DecodeMapping("json", []byte(m[1]))
	if err != nil {
		if errors.Is(err, ErrNotMapping) {
			return source.TailBlock{Line: line, Reason: source.TailNotObject}
		}
		return source.TailBlock{Line: line, Reason: "parse: " + err.Error()}
	}
	return source.TailBlock{Present: true, Data: data, Line: line}
}

func insideTail(regions []tailRegion, offset int) bool {
	for _, r := range regions {
		if offset >= r.begin && offset < r.end {
			return true
		}
	}
	return false
}

// inComment reports whether offset lies strictly inside an HTML comment, so
// that a line opening a comment is still scanned.
func inComment(comments [][]int, offset int) bool {
	for _, c := range comments {
		if offset > c[0] && offset < c[1] {
			return true
		}
	}
	return false
}

func inSpans(fences []fence, offset int) bool {
	for _, f := range fences {
		if f.span.Contains(offset) {
			return true
		}
	}
	return false
}
