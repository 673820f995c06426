package findreplace

import (
	"unicode"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
	"golang.org/x/text/language"
	xsearch "golang.org/x/text/search"
)

type capture struct {
	text    string
	matched bool
}

type matchSpan struct {
	start, end int // byte offsets
	caps       []capture
}

// matcher finds all non-overlapping occurrences of a compiled query within a
// byte window of the text.
type matcher interface {
	all(text string, from, to int) []matchSpan
}

// compileQuery selects the match engine for the query: the literal substring
// matcher, or regexp2 when the regex flag is set. regexp2 is used rather
// than the standard library engine because it is a backtracking engine with
// the lookaround and backreference semantics search dialogs conventionally
// expose.
func compileQuery(query string, opts Options) (matcher, error) {
	opts = opts.normalized()
	if opts.Regex {
		flags := regexp2.None
		if !opts.CaseSensitive {
			flags |= regexp2.IgnoreCase
		}
		re, err := regexp2.Compile(query, flags)
		if err != nil {
			return nil, err
		}
		return &regexMatcher{re: re}, nil
	}

	m := xsearch.New(language.Und)
	if !opts.CaseSensitive {
		m = xsearch.New(language.Und, xsearch.IgnoreCase)
	}
	return &literalMatcher{
		pat:       m.CompileString(query),
		length:    len(query),
		wholeWord: opts.WholeWord,
	}, nil
}

// literalMatcher performs substring search with optional case folding and
// whole-word filtering.
type literalMatcher struct {
	pat       *xsearch.Pattern
	length    int
	wholeWord bool
}

func (lm *literalMatcher) all(text string, from, to int) []matchSpan {
	if lm.length == 0 {
		return nil
	}
	from, to = clampWindow(text, from, to)

	var spans []matchSpan
	off := from
	for off < to {
		start, end := lm.pat.IndexString(text[off:to])
		if start < 0 {
			break
		}
		s, e := off+start, off+end
		if lm.wholeWord && !wholeWordAt(text, s, e) {
			off = s + 1
			continue
		}
		spans = append(spans, matchSpan{start: s, end: e})
		if e == s {
			e++
		}
		off = e
	}
	return spans
}

// wholeWordAt reports whether the match at [start, end) is not adjacent to a
// word-constituent character on either side. Word characters are letters,
// digits, and underscore.
func wholeWordAt(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if isWordRune(r) {
			return false
		}
	}
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// regexMatcher wraps a compiled regexp2 pattern. regexp2 reports rune
// positions, so matches are translated back to byte offsets through a
// per-pass rune index.
type regexMatcher struct {
	re *regexp2.Regexp
}

func (rm *regexMatcher) all(text string, from, to int) []matchSpan {
	from, to = clampWindow(text, from, to)
	window := text[from:to]

	runes := []rune(window)
	byteAt := make([]int, len(runes)+1)
	off := 0
	for i, r := range runes {
		byteAt[i] = off
		off += utf8.RuneLen(r)
	}
	byteAt[len(runes)] = off

	var spans []matchSpan
	m, err := rm.re.FindRunesMatch(runes)
	for err == nil && m != nil {
		caps := make([]capture, 0, m.GroupCount())
		for _, g := range m.Groups() {
			caps = append(caps, capture{
				text:    g.String(),
				matched: len(g.Captures) > 0,
			})
		}
		spans = append(spans, matchSpan{
			start: from + byteAt[m.Index],
			end:   from + byteAt[m.Index+m.Length],
			caps:  caps,
		})

		prev := m
		m, err = rm.re.FindNextMatch(prev)
		if m != nil && m.Index == prev.Index && m.Length == 0 {
			break
		}
	}
	return spans
}

func clampWindow(text string, from, to int) (int, int) {
	if from < 0 {
		from = 0
	}
	if to > len(text) {
		to = len(text)
	}
	if to < from {
		to = from
	}
	return from, to
}
