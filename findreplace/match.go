package findreplace

import "strings"

// Span is a byte range [Start, End) within document text, used when
// reporting highlight regions.
type Span struct {
	Start, End int
}

// Match is one located occurrence of a query. The match list is ordered by
// document open order, then left to right within a document. It is fully
// recomputed whenever the query, options, or scope changes or the engine
// itself mutates text; edits made outside the engine leave it silently
// stale.
type Match struct {
	Doc   Document
	Start int
	End   int
	Text  string

	// Capture-group results for regex matches; caps[0] is the whole match.
	caps []capture
}

// ResultRow is the display projection of a Match: line number, surrounding
// line text, and the match's offset within that line. It is derived from the
// match and document content, never independently authoritative.
type ResultRow struct {
	Match
	Line     int // 1-based
	LineText string
	Col      int // byte offset of the match within its line
}

// NewResultRow derives the display projection for a match from its
// document's current text.
func NewResultRow(m Match) ResultRow {
	text := m.Doc.Text()
	start := m.Start
	if start > len(text) {
		start = len(text)
	}

	line, lineStart := 0, 0
	for i := 0; i < start; i++ {
		if text[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}

	lineEnd := len(text)
	if nl := strings.IndexByte(text[lineStart:], '\n'); nl >= 0 {
		lineEnd = lineStart + nl
	}

	return ResultRow{
		Match:    m,
		Line:     line + 1,
		LineText: text[lineStart:lineEnd],
		Col:      start - lineStart,
	}
}
