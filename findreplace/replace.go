package findreplace

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ReplaceCurrent replaces the next match at or after the cursor in the
// active document, wrapping to the start once if nothing lies ahead. In
// regex mode the replacement is a substitution template: \1, \2, ... expand
// to the text captured by that match, \\ is a literal backslash, and \0 is
// the whole match. A template error falls back to inserting the replacement
// text literally; the match is still replaced, never half-mutated.
//
// After replacing, the match list is recomputed and the cursor advances to
// the next remaining match (wrapping if necessary), or stays at the
// replacement point if none remain.
func (e *Engine) ReplaceCurrent(query, replacement string, opts Options, scope *Scope) bool {
	opts = opts.normalized()
	mt, ok := e.prepare(query, opts)
	if !ok {
		return false
	}

	e.matches = e.collect(mt, scope)
	active := e.host.ActiveDocument()
	cursor := active.Cursor()

	var target Match
	var have bool
	for _, m := range e.matches {
		if m.Doc == active && m.Start >= cursor {
			target, have = m, true
			break
		}
	}
	if !have {
		// Try from the beginning.
		for _, m := range e.matches {
			if m.Doc == active {
				target, have = m, true
				break
			}
		}
	}
	if !have {
		e.publishHighlights(scope, Match{}, false)
		e.status("Not found")
		return false
	}

	newText := replacement
	if opts.Regex {
		if expanded, err := expandTemplate(replacement, target.caps); err == nil {
			newText = expanded
		}
	}

	active.ReplaceSpan(target.Start, target.End, newText)
	adjustWindow(scope, target, len(newText))

	// The text changed, so the match list is stale: recompute.
	e.matches = e.collect(mt, scope)
	e.publishHighlights(scope, Match{}, false)
	e.reportMatches(e.Results())

	replaceEnd := target.Start + len(newText)
	if len(e.matches) == 0 {
		active.SetCursor(replaceEnd)
		e.status("Replaced last occurrence")
		return true
	}

	for _, m := range e.matches {
		if m.Doc == active && m.Start >= replaceEnd {
			active.SetCursor(m.Start)
			e.status("Replaced 1 occurrence")
			return true
		}
	}
	// No more matches after this position in the active document: wrap.
	for _, m := range e.matches {
		if m.Doc == active {
			active.SetCursor(m.Start)
			e.status("Replaced 1 occurrence - Wrapped to beginning")
			return true
		}
	}

	// Remaining matches are all in other documents.
	active.SetCursor(replaceEnd)
	e.status("Replaced 1 occurrence")
	return true
}

// ReplaceAll replaces every match in every scope document and returns the
// total replacement count. Each document's replacements form one undo group.
//
// Regex-mode replacement applies matches in reverse order within a document
// so earlier offsets stay valid while later ones are rewritten. Literal-mode
// replacement runs forward, advancing the search cursor past each inserted
// span, which also prevents refinding a replacement that happens to contain
// the query.
func (e *Engine) ReplaceAll(query, replacement string, opts Options, scope *Scope) int {
	opts = opts.normalized()
	mt, ok := e.prepare(query, opts)
	if !ok {
		return 0
	}

	total := 0
	active := e.host.ActiveDocument()
	for _, doc := range e.scopeDocs(scope) {
		from, to := e.window(doc, scope)

		doc.BeginGroup()
		var count, delta int
		if opts.Regex {
			count, delta = replaceAllRegex(doc, mt, replacement, from, to)
		} else {
			count, delta = replaceAllLiteral(doc, mt, replacement, from, to)
		}
		doc.EndGroup()

		if scope != nil && scope.Kind == ScopeSelection && doc == active {
			scope.End += delta
		}
		total += count
	}

	// Replacements invalidated the match list; highlights are cleared.
	e.matches = nil
	for _, doc := range e.scopeDocs(scope) {
		if e.HighlightFunc != nil {
			e.HighlightFunc(doc, nil, -1)
		}
	}
	e.reportMatches(nil)

	if total > 0 {
		e.status(fmt.Sprintf("Replaced %d occurrence(s)", total))
	} else {
		e.status("Not found")
	}
	return total
}

// replaceAllRegex collects all matches against a snapshot of the document
// text, then applies them last to first. This ordering is load-bearing:
// rewriting from the right keeps every earlier match's offsets valid.
func replaceAllRegex(doc Document, mt matcher, replacement string, from, to int) (count, delta int) {
	spans := mt.all(doc.Text(), from, to)
	for i := len(spans) - 1; i >= 0; i-- {
		s := spans[i]
		newText := replacement
		if expanded, err := expandTemplate(replacement, s.caps); err == nil {
			newText = expanded
		}
		doc.ReplaceSpan(s.start, s.end, newText)
		delta += len(newText) - (s.end - s.start)
	}
	return len(spans), delta
}

// replaceAllLiteral replaces forward, re-searching after each replacement
// from just past the inserted text, with the window end shifted by the
// accumulated length delta.
func replaceAllLiteral(doc Document, mt matcher, replacement string, from, to int) (count, delta int) {
	pos := from
	end := to
	for {
		spans := mt.all(doc.Text(), pos, end)
		if len(spans) == 0 {
			break
		}
		s := spans[0]
		doc.ReplaceSpan(s.start, s.end, replacement)
		d := len(replacement) - (s.end - s.start)
		end += d
		delta += d
		pos = s.start + len(replacement)
		count++
	}
	return count, delta
}

// adjustWindow shifts a selection scope's end offset when a replacement
// inside the window changed the text length.
func adjustWindow(scope *Scope, replaced Match, newLen int) {
	if scope == nil || scope.Kind != ScopeSelection {
		return
	}
	if replaced.Start >= scope.Start && replaced.End <= scope.End {
		scope.End += newLen - (replaced.End - replaced.Start)
	}
}

// expandTemplate expands \N backreferences in a substitution template using
// the captures of one match. Errors (a dangling backslash, an unknown
// escape, a reference to a missing or unmatched group) are reported to the
// caller, which falls back to the literal template text.
func expandTemplate(tmpl string, caps []capture) (string, error) {
	var b strings.Builder
	for i := 0; i < len(tmpl); {
		c := tmpl[i]
		if c != '\\' {
			b.WriteByte(c)
			i++
			continue
		}
		if i+1 >= len(tmpl) {
			return "", errors.New("dangling backslash at end of replacement")
		}
		next := tmpl[i+1]
		switch {
		case next == '\\':
			b.WriteByte('\\')
			i += 2
		case next >= '0' && next <= '9':
			j := i + 1
			for j < len(tmpl) && j < i+3 && tmpl[j] >= '0' && tmpl[j] <= '9' {
				j++
			}
			num, _ := strconv.Atoi(tmpl[i+1 : j])
			if num >= len(caps) {
				return "", fmt.Errorf("invalid group reference \\%d", num)
			}
			if !caps[num].matched {
				return "", fmt.Errorf("unmatched group \\%d", num)
			}
			b.WriteString(caps[num].text)
			i = j
		default:
			return "", fmt.Errorf("bad escape \\%c in replacement", next)
		}
	}
	return b.String(), nil
}
