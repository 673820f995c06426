package markdown

import "regexp"

var (
	boldItalicRes = []*regexp.Regexp{
		regexp.MustCompile(`\*\*\*(.+?)\*\*\*`),
		regexp.MustCompile(`___(.+?)___`),
	}
	boldRes = []*regexp.Regexp{
		regexp.MustCompile(`\*\*(.+?)\*\*`),
		regexp.MustCompile(`__(.+?)__`),
	}
)

// codePass claims inline code spans: an unescaped backtick through the next
// unescaped backtick, both delimiters included. An unterminated backtick is
// left unstyled and the scan continues past it.
func codePass(text string, esc map[int]bool, claims *claimSet) []Run {
	var runs []Run
	i := 0
	for i < len(text) {
		if text[i] != '`' || esc[i] {
			i++
			continue
		}
		j := i + 1
		for j < len(text) && (text[j] != '`' || esc[j]) {
			j++
		}
		if j >= len(text) {
			// No closing backtick.
			i++
			continue
		}
		claims.add(i, j+1)
		runs = append(runs, Run{Start: i, Len: j + 1 - i, Style: Code})
		i = j + 1
	}
	return runs
}

// regexPass applies delimiter regexes for one style category, skipping any
// match whose start is escaped or that overlaps a region an earlier pass
// already claimed.
func regexPass(text string, esc map[int]bool, claims *claimSet, res []*regexp.Regexp, style Style) []Run {
	var runs []Run
	for _, re := range res {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			start, end := loc[0], loc[1]
			if esc[start] || claims.overlaps(start, end) {
				continue
			}
			claims.add(start, end)
			runs = append(runs, Run{Start: start, Len: end - start, Style: style})
		}
	}
	return runs
}

// italicPass hand-scans for single * and _ emphasis. A lone delimiter must
// not be mistaken for part of ** or ***, so a candidate is rejected when the
// character immediately before or after it is the same delimiter. Spans that
// overlap claimed regions are skipped; a successful match claims the full
// span, both delimiters included.
func italicPass(text string, esc map[int]bool, claims *claimSet) []Run {
	var runs []Run
	for _, d := range []byte{'*', '_'} {
		i := 0
		for i < len(text) {
			if text[i] != d || esc[i] || claims.contains(i) || adjacentSame(text, i, d) {
				i++
				continue
			}

			// Candidate opener; seek a closing delimiter under the same rules.
			close := -1
			for j := i + 1; j < len(text); j++ {
				if text[j] == d && !esc[j] && !claims.contains(j) && !adjacentSame(text, j, d) {
					close = j
					break
				}
			}
			if close < 0 {
				i++
				continue
			}
			if claims.overlaps(i, close+1) {
				i++
				continue
			}

			claims.add(i, close+1)
			runs = append(runs, Run{Start: i, Len: close + 1 - i, Style: Italic})
			i = close + 1
		}
	}
	return runs
}

func adjacentSame(text string, i int, d byte) bool {
	if i > 0 && text[i-1] == d {
		return true
	}
	if i+1 < len(text) && text[i+1] == d {
		return true
	}
	return false
}
