package markdown

import (
	"regexp"
	"sort"
)

// headerRe matches ATX headings: one to six hashes followed by whitespace.
// Seven or more hashes fail the match entirely (no backtracked partial
// heading).
var headerRe = regexp.MustCompile(`^(#{1,6})\s`)

// HighlightBlock computes the style runs for one block of text (a line or
// paragraph as segmented by the host). It is pure and deterministic: runs
// are always regenerated wholesale from the current text, never patched.
//
// Order of evaluation: escape scan, then the block-level rules (header,
// blockquote — mutually exclusive, and either one suppresses all inline
// formatting), then the inline passes. Each inline pass skips candidates
// overlapping regions claimed by an earlier pass.
func HighlightBlock(text string) []Run {
	if text == "" {
		return nil
	}

	esc := escapeOffsets(text)

	// Block-level rules claim the whole block.
	if m := headerRe.FindStringSubmatch(text); m != nil && !esc[0] {
		style := Header3Plus
		switch len(m[1]) {
		case 1:
			style = Header1
		case 2:
			style = Header2
		}
		return []Run{{Start: 0, Len: len(text), Style: style}}
	}
	if text[0] == '>' && !esc[0] {
		return []Run{{Start: 0, Len: len(text), Style: Blockquote}}
	}

	claims := &claimSet{}
	runs := codePass(text, esc, claims)
	runs = append(runs, regexPass(text, esc, claims, boldItalicRes, BoldItalic)...)
	runs = append(runs, regexPass(text, esc, claims, boldRes, Bold)...)
	runs = append(runs, italicPass(text, esc, claims)...)

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Start < runs[j].Start
	})
	return runs
}

// escapeOffsets walks the block left to right: a backslash marks the
// following character as escaped and the scan advances past both, so a
// doubled backslash escapes itself rather than its neighbour.
func escapeOffsets(text string) map[int]bool {
	esc := make(map[int]bool)
	for i := 0; i < len(text); {
		if text[i] == '\\' && i+1 < len(text) {
			esc[i+1] = true
			i += 2
			continue
		}
		i++
	}
	return esc
}
