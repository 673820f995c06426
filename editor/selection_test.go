package editor

import "testing"

func TestSelectionActive(t *testing.T) {
	s := Selection{Anchor: 0, Cursor: 0}
	if s.Active() {
		t.Error("empty selection should not be active")
	}

	s.Cursor = 5
	if !s.Active() {
		t.Error("selection with different anchor and cursor should be active")
	}
}

func TestSelectionOrdered(t *testing.T) {
	// Forward selection
	s := Selection{Anchor: 2, Cursor: 8}
	start, end := s.Ordered()
	if start != 2 || end != 8 {
		t.Errorf("Ordered() = (%d, %d), want (2, 8)", start, end)
	}

	// Backward selection
	s = Selection{Anchor: 10, Cursor: 3}
	start, end = s.Ordered()
	if start != 3 || end != 10 {
		t.Errorf("Ordered() = (%d, %d), want (3, 10)", start, end)
	}
}

func TestSelectionLength(t *testing.T) {
	s := Selection{Anchor: 10, Cursor: 3}
	if s.Length() != 7 {
		t.Errorf("Length() = %d, want 7", s.Length())
	}

	s = Selection{Anchor: 4, Cursor: 4}
	if s.Length() != 0 {
		t.Errorf("Length() = %d, want 0", s.Length())
	}
}

func TestSelectionContains(t *testing.T) {
	s := Selection{Anchor: 8, Cursor: 2}
	for _, pos := range []int{2, 5, 7} {
		if !s.Contains(pos) {
			t.Errorf("Contains(%d) = false, want true", pos)
		}
	}
	// End is exclusive, positions outside are out.
	for _, pos := range []int{1, 8, 20} {
		if s.Contains(pos) {
			t.Errorf("Contains(%d) = true, want false", pos)
		}
	}
}

func TestSelectionText(t *testing.T) {
	content := "hello, world!"

	// Forward selection
	s := Selection{Anchor: 0, Cursor: 5}
	if got := s.Text(content); got != "hello" {
		t.Errorf("Text() = %q, want %q", got, "hello")
	}

	// Backward selection
	s = Selection{Anchor: 13, Cursor: 7}
	if got := s.Text(content); got != "world!" {
		t.Errorf("Text() = %q, want %q", got, "world!")
	}

	// Empty selection
	s = Selection{Anchor: 3, Cursor: 3}
	if got := s.Text(content); got != "" {
		t.Errorf("Text() = %q, want empty", got)
	}
}

func TestSelectionTextBoundsClamp(t *testing.T) {
	content := "short"

	s := Selection{Anchor: 0, Cursor: 100}
	if got := s.Text(content); got != "short" {
		t.Errorf("Text() = %q, want %q", got, "short")
	}

	s = Selection{Anchor: -5, Cursor: 3}
	if got := s.Text(content); got != "sho" {
		t.Errorf("Text() = %q, want %q", got, "sho")
	}
}

func TestSelectionClear(t *testing.T) {
	s := Selection{Anchor: 2, Cursor: 10}
	s.Clear()
	if s.Active() {
		t.Error("selection should not be active after Clear")
	}
	if s.Anchor != 10 {
		t.Errorf("after Clear, Anchor=%d, want 10", s.Anchor)
	}
}
