package editor

// Selection represents a text selection as two byte offsets into document
// text. Anchor is where the selection started, Cursor is where it currently
// extends to; either order is valid.
type Selection struct {
	Anchor, Cursor int
}

// Active reports whether the selection covers a non-empty range.
func (s *Selection) Active() bool {
	return s.Anchor != s.Cursor
}

// Ordered returns the selection bounds in ascending order (start, end).
func (s *Selection) Ordered() (start, end int) {
	if s.Anchor <= s.Cursor {
		return s.Anchor, s.Cursor
	}
	return s.Cursor, s.Anchor
}

// Length returns the number of bytes the selection covers.
func (s *Selection) Length() int {
	start, end := s.Ordered()
	return end - start
}

// Contains reports whether the byte offset falls inside the selection.
func (s *Selection) Contains(pos int) bool {
	start, end := s.Ordered()
	return pos >= start && pos < end
}

// Text extracts the selected substring from content, clamping out-of-range
// bounds.
func (s *Selection) Text(content string) string {
	start, end := s.Ordered()
	if start < 0 {
		start = 0
	}
	if end > len(content) {
		end = len(content)
	}
	if start >= end {
		return ""
	}
	return content[start:end]
}

// Clear collapses the selection so that Anchor equals Cursor.
func (s *Selection) Clear() {
	s.Anchor = s.Cursor
}
