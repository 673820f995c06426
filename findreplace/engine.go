package findreplace

import "fmt"

// Document is the capability the engine needs from one open document. The
// concrete editor document satisfies it directly; the engine never inspects
// anything beyond this surface.
type Document interface {
	Title() string
	Text() string
	Cursor() int
	SetCursor(pos int)
	SelectedRange() (start, end int, ok bool)
	ReplaceSpan(start, end int, text string)
	BeginGroup()
	EndGroup()
}

// Host is the document collection the engine operates over, injected at
// construction. Documents are enumerated in open order.
type Host interface {
	ActiveDocument() Document
	Documents() []Document
}

// Engine locates and replaces occurrences of a query across the host's
// documents. All operations run synchronously on the calling goroutine and
// report through the optional callbacks:
//
//   - StatusFunc receives the human-readable outcome of each operation
//     (found / not found / wrapped / replaced N / pattern error).
//   - MatchesFunc receives the result-row projection after each find-all
//     pass, for populating a results view.
//   - HighlightFunc receives the match spans per document, with the index of
//     the current match within those spans (-1 when none is current), so a
//     consumer can render the all-matches highlight distinctly from the
//     current-match indicator.
//
// The match list is recomputed wholesale by every operation; text edits made
// outside the engine's own replace operations leave it silently stale.
type Engine struct {
	host Host

	StatusFunc    func(msg string)
	MatchesFunc   func(rows []ResultRow)
	HighlightFunc func(doc Document, spans []Span, current int)

	matches []Match
}

// New creates an engine over the given document host.
func New(host Host) *Engine {
	return &Engine{host: host}
}

// Matches returns the most recently computed match list.
func (e *Engine) Matches() []Match {
	return e.matches
}

// Results returns the display projection of the current match list.
func (e *Engine) Results() []ResultRow {
	rows := make([]ResultRow, 0, len(e.matches))
	for _, m := range e.matches {
		rows = append(rows, NewResultRow(m))
	}
	return rows
}

// Invalidate drops the match list. Hosts may call it after edits the engine
// did not perform; nothing calls it automatically.
func (e *Engine) Invalidate() {
	e.matches = nil
}

// FindAll recomputes the full match list across the scope, highlights every
// match, publishes result rows, and moves the active document's cursor to
// its first match.
func (e *Engine) FindAll(query string, opts Options, scope *Scope) []Match {
	mt, ok := e.prepare(query, opts)
	if !ok {
		return nil
	}

	e.matches = e.collect(mt, scope)
	e.publishHighlights(scope, Match{}, false)

	if len(e.matches) == 0 {
		e.status("Not found")
		e.reportMatches(nil)
		return nil
	}

	e.reportMatches(e.Results())
	e.status(fmt.Sprintf("Found %d occurrence(s)", len(e.matches)))

	if active := e.host.ActiveDocument(); active != nil {
		for _, m := range e.matches {
			if m.Doc == active {
				active.SetCursor(m.Start)
				break
			}
		}
	}
	return e.matches
}

// FindNext searches forward from the cursor in the active document. Every
// match in scope is still highlighted as a side effect, but navigation only
// considers the active document. When nothing is found forward the search
// wraps to the start of the document and retries once.
func (e *Engine) FindNext(query string, opts Options, scope *Scope) (Match, bool) {
	mt, ok := e.prepare(query, opts)
	if !ok {
		return Match{}, false
	}

	e.matches = e.collect(mt, scope)
	if len(e.matches) == 0 {
		e.publishHighlights(scope, Match{}, false)
		e.status("Not found")
		return Match{}, false
	}

	active := e.host.ActiveDocument()
	cursor := active.Cursor()

	var found Match
	var have, wrapped bool
	for _, m := range e.matches {
		if m.Doc == active && m.Start > cursor {
			found, have = m, true
			break
		}
	}
	if !have {
		// Wrap to the beginning of the active document and retry once.
		for _, m := range e.matches {
			if m.Doc == active {
				found, have, wrapped = m, true, true
				break
			}
		}
	}

	if !have {
		e.publishHighlights(scope, Match{}, false)
		e.status("Not found")
		return Match{}, false
	}

	e.publishHighlights(scope, found, true)
	active.SetCursor(found.Start)
	if wrapped {
		e.status("Wrapped to beginning")
	} else {
		e.status("")
	}
	return found, true
}

// FindPrevious searches backward from the cursor in the active document,
// wrapping to the document end when nothing is found before the cursor.
func (e *Engine) FindPrevious(query string, opts Options, scope *Scope) (Match, bool) {
	mt, ok := e.prepare(query, opts)
	if !ok {
		return Match{}, false
	}

	e.matches = e.collect(mt, scope)
	if len(e.matches) == 0 {
		e.publishHighlights(scope, Match{}, false)
		e.status("Not found")
		return Match{}, false
	}

	active := e.host.ActiveDocument()
	cursor := active.Cursor()

	var found Match
	var have, wrapped bool
	for i := len(e.matches) - 1; i >= 0; i-- {
		m := e.matches[i]
		if m.Doc == active && m.Start < cursor {
			found, have = m, true
			break
		}
	}
	if !have {
		// Wrap to the end of the active document and retry once.
		for i := len(e.matches) - 1; i >= 0; i-- {
			if e.matches[i].Doc == active {
				found, have, wrapped = e.matches[i], true, true
				break
			}
		}
	}

	if !have {
		e.publishHighlights(scope, Match{}, false)
		e.status("Not found")
		return Match{}, false
	}

	e.publishHighlights(scope, found, true)
	active.SetCursor(found.Start)
	if wrapped {
		e.status("Wrapped to end")
	} else {
		e.status("")
	}
	return found, true
}

// prepare validates the query and compiles the matcher, reporting an empty
// query or a malformed pattern through the status callback. A pattern error
// yields zero matches, never a failure that propagates.
func (e *Engine) prepare(query string, opts Options) (matcher, bool) {
	if query == "" {
		e.status("Please enter text to find")
		return nil, false
	}
	mt, err := compileQuery(query, opts)
	if err != nil {
		e.status(fmt.Sprintf("Invalid pattern: %v", err))
		e.matches = nil
		e.reportMatches(nil)
		return nil, false
	}
	return mt, true
}

// scopeDocs returns the documents an operation considers, in open order.
func (e *Engine) scopeDocs(scope *Scope) []Document {
	if scope != nil && scope.Kind == ScopeAllDocuments {
		return e.host.Documents()
	}
	active := e.host.ActiveDocument()
	if active == nil {
		return nil
	}
	return []Document{active}
}

// window returns the byte window of a document the scope restricts to.
func (e *Engine) window(doc Document, scope *Scope) (from, to int) {
	if scope != nil && scope.Kind == ScopeSelection && doc == e.host.ActiveDocument() {
		return clampWindow(doc.Text(), scope.Start, scope.End)
	}
	return 0, len(doc.Text())
}

func (e *Engine) collect(mt matcher, scope *Scope) []Match {
	var matches []Match
	for _, doc := range e.scopeDocs(scope) {
		text := doc.Text()
		from, to := e.window(doc, scope)
		for _, s := range mt.all(text, from, to) {
			matches = append(matches, Match{
				Doc:   doc,
				Start: s.start,
				End:   s.end,
				Text:  text[s.start:s.end],
				caps:  s.caps,
			})
		}
	}
	return matches
}

// publishHighlights pushes the per-document match spans to the highlight
// callback. current marks which span is the current match, so the consumer
// can render it in a distinct color from the all-matches highlight.
func (e *Engine) publishHighlights(scope *Scope, current Match, haveCurrent bool) {
	if e.HighlightFunc == nil {
		return
	}
	for _, doc := range e.scopeDocs(scope) {
		var spans []Span
		cur := -1
		for _, m := range e.matches {
			if m.Doc != doc {
				continue
			}
			if haveCurrent && current.Doc == doc && current.Start == m.Start && current.End == m.End {
				cur = len(spans)
			}
			spans = append(spans, Span{Start: m.Start, End: m.End})
		}
		e.HighlightFunc(doc, spans, cur)
	}
}

func (e *Engine) status(msg string) {
	if e.StatusFunc != nil {
		e.StatusFunc(msg)
	}
}

func (e *Engine) reportMatches(rows []ResultRow) {
	if e.MatchesFunc != nil {
		e.MatchesFunc(rows)
	}
}
