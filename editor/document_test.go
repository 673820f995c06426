package editor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/odvcencio/quill/markdown"
)

func TestNewDocumentEmpty(t *testing.T) {
	d := NewDocument()
	if d.Text() != "" {
		t.Errorf("new document text = %q, want empty", d.Text())
	}
	if !d.Untitled() {
		t.Error("new document should be untitled")
	}
	if d.Dirty() {
		t.Error("new document should not be dirty")
	}
	if d.Title() != "untitled" {
		t.Errorf("Title() = %q, want %q", d.Title(), "untitled")
	}
}

func TestDocumentIDStable(t *testing.T) {
	d := NewDocument()
	id := d.ID()
	d.SetText("changed")
	if d.ID() != id {
		t.Error("document ID changed after edit")
	}
	if NewDocument().ID() == id {
		t.Error("two documents share an ID")
	}
}

func TestDocumentDirty(t *testing.T) {
	d := NewDocument()
	d.SetText("hello")
	if !d.Dirty() {
		t.Error("document should be dirty after SetText")
	}

	// Reverting to the saved text clears dirty.
	d.SetText("")
	if d.Dirty() {
		t.Error("document should be clean after reverting text")
	}
}

func TestDocumentOpenSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "note.md")
	if err := os.WriteFile(path, []byte("# Hello\n"), 0644); err != nil {
		t.Fatal(err)
	}

	d := NewDocument()
	if err := d.Open(path); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if d.Text() != "# Hello\n" {
		t.Errorf("Text() = %q after open", d.Text())
	}
	if d.Untitled() || d.Dirty() {
		t.Error("opened document should be titled and clean")
	}
	if d.Title() != "note.md" {
		t.Errorf("Title() = %q, want note.md", d.Title())
	}

	d.SetText("# Hello\nworld\n")
	if !d.Dirty() {
		t.Error("document should be dirty after edit")
	}
	if err := d.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if d.Dirty() {
		t.Error("document should be clean after save")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "# Hello\nworld\n" {
		t.Errorf("file content = %q after save", data)
	}
}

func TestDocumentSaveUntitled(t *testing.T) {
	d := NewDocument()
	d.SetText("content")
	if err := d.Save(); err == nil {
		t.Error("Save on an untitled document should fail")
	}

	path := filepath.Join(t.TempDir(), "saved.md")
	if err := d.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	if d.Untitled() || d.Dirty() {
		t.Error("document should be titled and clean after SaveAs")
	}
}

func TestDocumentCursorClamp(t *testing.T) {
	d := NewDocument()
	d.SetText("abcde")

	d.SetCursor(3)
	if d.Cursor() != 3 {
		t.Errorf("Cursor() = %d, want 3", d.Cursor())
	}
	d.SetCursor(-4)
	if d.Cursor() != 0 {
		t.Errorf("Cursor() = %d, want 0", d.Cursor())
	}
	d.SetCursor(99)
	if d.Cursor() != 5 {
		t.Errorf("Cursor() = %d, want 5", d.Cursor())
	}

	// Shrinking the text pulls the cursor back in range.
	d.SetText("ab")
	if d.Cursor() != 2 {
		t.Errorf("Cursor() = %d after shrink, want 2", d.Cursor())
	}
}

func TestDocumentSelection(t *testing.T) {
	d := NewDocument()
	d.SetText("hello, world")

	if _, _, ok := d.SelectedRange(); ok {
		t.Error("new document should have no selection")
	}

	// Backward selection comes out ordered.
	d.Select(12, 7)
	start, end, ok := d.SelectedRange()
	if !ok || start != 7 || end != 12 {
		t.Errorf("SelectedRange() = (%d, %d, %v), want (7, 12, true)", start, end, ok)
	}
	if d.SelectedText() != "world" {
		t.Errorf("SelectedText() = %q, want %q", d.SelectedText(), "world")
	}

	d.ClearSelection()
	if _, _, ok := d.SelectedRange(); ok {
		t.Error("selection should be gone after ClearSelection")
	}
}

func TestDocumentReplaceSpan(t *testing.T) {
	d := NewDocument()
	d.SetText("the quick fox")

	d.ReplaceSpan(4, 9, "slow")
	if d.Text() != "the slow fox" {
		t.Errorf("Text() = %q, want %q", d.Text(), "the slow fox")
	}
	if d.Cursor() != 8 {
		t.Errorf("Cursor() = %d, want 8 (end of insertion)", d.Cursor())
	}

	// Swapped and out-of-range bounds are normalized.
	d.ReplaceSpan(12, 9, "cat")
	if d.Text() != "the slow cat" {
		t.Errorf("Text() = %q, want %q", d.Text(), "the slow cat")
	}
	d.ReplaceSpan(8, 99, " hat")
	if d.Text() != "the slow hat" {
		t.Errorf("Text() = %q, want %q", d.Text(), "the slow hat")
	}
}

func TestDocumentUndoRedo(t *testing.T) {
	d := NewDocument()
	d.SetText("abc")

	d.ReplaceSpan(1, 2, "XY")
	d.ReplaceSpan(0, 1, "z")
	if d.Text() != "zXYc" {
		t.Fatalf("Text() = %q, want zXYc", d.Text())
	}

	if !d.Undo() {
		t.Fatal("Undo returned false")
	}
	if d.Text() != "aXYc" {
		t.Errorf("Text() = %q after first undo, want aXYc", d.Text())
	}
	if !d.Undo() {
		t.Fatal("Undo returned false")
	}
	if d.Text() != "abc" {
		t.Errorf("Text() = %q after second undo, want abc", d.Text())
	}
	if d.Undo() {
		t.Error("Undo on empty stack should return false")
	}

	if !d.Redo() {
		t.Fatal("Redo returned false")
	}
	if d.Text() != "aXYc" {
		t.Errorf("Text() = %q after redo, want aXYc", d.Text())
	}
	if !d.Redo() {
		t.Fatal("Redo returned false")
	}
	if d.Text() != "zXYc" {
		t.Errorf("Text() = %q after second redo, want zXYc", d.Text())
	}
	if d.Redo() {
		t.Error("Redo on empty stack should return false")
	}
}

func TestDocumentUndoGroup(t *testing.T) {
	d := NewDocument()
	d.SetText("aaa bbb aaa")

	// Replace both "aaa" occurrences inside one group, back to front.
	d.BeginGroup()
	d.ReplaceSpan(8, 11, "cc")
	d.ReplaceSpan(0, 3, "cc")
	d.EndGroup()
	if d.Text() != "cc bbb cc" {
		t.Fatalf("Text() = %q, want %q", d.Text(), "cc bbb cc")
	}

	// A single undo reverses the whole group.
	if !d.Undo() {
		t.Fatal("Undo returned false")
	}
	if d.Text() != "aaa bbb aaa" {
		t.Errorf("Text() = %q after undo, want original", d.Text())
	}
	if d.Undo() {
		t.Error("only one undo group should exist")
	}

	if !d.Redo() {
		t.Fatal("Redo returned false")
	}
	if d.Text() != "cc bbb cc" {
		t.Errorf("Text() = %q after redo, want %q", d.Text(), "cc bbb cc")
	}
}

func TestDocumentEmptyGroupNotRecorded(t *testing.T) {
	d := NewDocument()
	d.SetText("abc")

	d.BeginGroup()
	d.EndGroup()
	if d.Undo() {
		t.Error("an empty group should not land on the undo stack")
	}

	// Unbalanced EndGroup is a no-op.
	d.EndGroup()
	d.ReplaceSpan(0, 1, "x")
	if d.Text() != "xbc" {
		t.Errorf("Text() = %q, want xbc", d.Text())
	}
}

func TestDocumentNewEditClearsRedo(t *testing.T) {
	d := NewDocument()
	d.SetText("abc")
	d.ReplaceSpan(0, 1, "x")
	d.Undo()
	d.ReplaceSpan(2, 3, "y")
	if d.Redo() {
		t.Error("a fresh edit should clear the redo stack")
	}
}

func TestDocumentBlocks(t *testing.T) {
	d := NewDocument()
	if d.BlockCount() != 1 {
		t.Errorf("empty document BlockCount() = %d, want 1", d.BlockCount())
	}

	d.SetText("# Title\n\n> quote")
	if d.BlockCount() != 3 {
		t.Errorf("BlockCount() = %d, want 3", d.BlockCount())
	}
	want := []string{"# Title", "", "> quote"}
	for i, w := range want {
		if got := d.BlockText(i); got != w {
			t.Errorf("BlockText(%d) = %q, want %q", i, got, w)
		}
	}
	if d.BlockText(-1) != "" || d.BlockText(3) != "" {
		t.Error("out-of-range BlockText should return empty")
	}
}

func TestDocumentLineAt(t *testing.T) {
	d := NewDocument()
	d.SetText("one\ntwo\nthree")

	cases := []struct {
		offset, line, lineStart int
	}{
		{0, 0, 0},
		{3, 0, 0},
		{4, 1, 4},
		{7, 1, 4},
		{8, 2, 8},
		{13, 2, 8},
		{99, 2, 8},
	}
	for _, c := range cases {
		line, start := d.LineAt(c.offset)
		if line != c.line || start != c.lineStart {
			t.Errorf("LineAt(%d) = (%d, %d), want (%d, %d)",
				c.offset, line, start, c.line, c.lineStart)
		}
	}
}

func TestDocumentStylesNotDirty(t *testing.T) {
	d := NewDocument()
	d.SetText("**bold**")
	saved := d.Dirty()

	d.ApplyStyles(0, []markdown.Run{{Start: 0, Len: 8, Style: markdown.Bold}})
	if d.Dirty() != saved {
		t.Error("ApplyStyles changed dirty status")
	}
	if len(d.Styles(0)) != 1 {
		t.Errorf("Styles(0) has %d runs, want 1", len(d.Styles(0)))
	}

	d.ClearStyles(0)
	if d.Dirty() != saved {
		t.Error("ClearStyles changed dirty status")
	}
	if d.Styles(0) != nil {
		t.Error("Styles(0) should be nil after ClearStyles")
	}
}

func TestDocumentStyledBlocks(t *testing.T) {
	d := NewDocument()
	d.SetText("a\nb\nc")
	d.ApplyStyles(0, []markdown.Run{{Start: 0, Len: 1, Style: markdown.Code}})
	d.ApplyStyles(2, []markdown.Run{{Start: 0, Len: 1, Style: markdown.Code}})
	// Empty runs remove the entry.
	d.ApplyStyles(1, nil)

	blocks := d.StyledBlocks()
	if len(blocks) != 2 {
		t.Errorf("StyledBlocks() has %d entries, want 2", len(blocks))
	}
}
