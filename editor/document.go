package editor

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/odvcencio/quill/markdown"
)

// editOp records a single edit for undo/redo support.
type editOp struct {
	offset  int
	oldText string
	newText string
}

// editGroup is a run of edits undone and redone as one unit. Replace-all
// produces one group per document; a lone edit is a group of one.
type editGroup []editOp

// Document manages the text content and editing state of a single open file.
// Formatting runs are stored alongside the text but never participate in
// dirty tracking: applying or clearing styles must not mark a document
// modified.
type Document struct {
	id        uuid.UUID
	path      string // absolute path, or "" if untitled
	text      string // current text content
	savedText string // text at last save/open (for dirty comparison)

	undoStack []editGroup
	redoStack []editGroup
	pending   editGroup // open group while grouping > 0
	grouping  int

	cursor int
	sel    Selection

	styles map[int][]markdown.Run // block index -> style runs
}

// NewDocument creates a new empty, untitled document.
func NewDocument() *Document {
	return &Document{
		id:     uuid.New(),
		styles: make(map[int][]markdown.Run),
	}
}

// ID returns the document's stable identity, assigned at creation.
func (d *Document) ID() uuid.UUID {
	return d.id
}

// Open reads the file at path into the document, replacing any existing
// content. The stored path is converted to an absolute path.
func (d *Document) Open(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return err
	}

	d.path = absPath
	d.text = string(data)
	d.savedText = d.text
	d.cursor = 0
	d.sel = Selection{}
	d.styles = make(map[int][]markdown.Run)
	return nil
}

// Save writes the current text to the stored path.
// Returns an error if the document has no path (untitled).
func (d *Document) Save() error {
	if d.path == "" {
		return errors.New("document has no path; use SaveAs")
	}
	if err := os.WriteFile(d.path, []byte(d.text), 0644); err != nil {
		return err
	}
	d.savedText = d.text
	return nil
}

// SaveAs writes the current text to the given path, updates the stored path,
// and marks the document as clean.
func (d *Document) SaveAs(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	if err := os.WriteFile(absPath, []byte(d.text), 0644); err != nil {
		return err
	}

	d.path = absPath
	d.savedText = d.text
	return nil
}

// Path returns the absolute file path, or "" if the document is untitled.
func (d *Document) Path() string {
	return d.path
}

// Text returns the current text content of the document.
func (d *Document) Text() string {
	return d.text
}

// SetText replaces the document's text content wholesale, bypassing the undo
// stack. Dirty status is computed by comparing the current text with the
// saved text.
func (d *Document) SetText(text string) {
	d.text = text
	d.clampCursor()
}

// Dirty reports whether the document's text differs from the last
// saved/opened text.
func (d *Document) Dirty() bool {
	return d.text != d.savedText
}

// Untitled reports whether the document has no associated file path.
func (d *Document) Untitled() bool {
	return d.path == ""
}

// Title returns the base filename, or "untitled" if the document has no path.
func (d *Document) Title() string {
	if d.path == "" {
		return "untitled"
	}
	return filepath.Base(d.path)
}

// Cursor returns the current cursor position as a byte offset.
func (d *Document) Cursor() int {
	return d.cursor
}

// SetCursor moves the cursor, clamping it into [0, len(text)].
func (d *Document) SetCursor(pos int) {
	d.cursor = pos
	d.clampCursor()
}

func (d *Document) clampCursor() {
	if d.cursor < 0 {
		d.cursor = 0
	}
	if d.cursor > len(d.text) {
		d.cursor = len(d.text)
	}
}

// Select sets the selection to the given anchor and cursor offsets.
func (d *Document) Select(anchor, cursor int) {
	d.sel = Selection{Anchor: anchor, Cursor: cursor}
}

// ClearSelection collapses the selection.
func (d *Document) ClearSelection() {
	d.sel.Clear()
}

// SelectedRange returns the ordered selection bounds. ok is false when the
// selection is empty.
func (d *Document) SelectedRange() (start, end int, ok bool) {
	if !d.sel.Active() {
		return 0, 0, false
	}
	start, end = d.sel.Ordered()
	return start, end, true
}

// SelectedText returns the currently selected substring.
func (d *Document) SelectedText() string {
	return d.sel.Text(d.text)
}

// BeginGroup opens an undo group: every edit until the matching EndGroup is
// undone and redone as a single unit. Calls nest.
func (d *Document) BeginGroup() {
	d.grouping++
}

// EndGroup closes the current undo group, pushing it onto the undo stack.
// Unbalanced calls are a no-op.
func (d *Document) EndGroup() {
	if d.grouping == 0 {
		return
	}
	d.grouping--
	if d.grouping == 0 && len(d.pending) > 0 {
		d.undoStack = append(d.undoStack, d.pending)
		d.pending = nil
	}
}

// ReplaceSpan replaces the text at [start, end) with newText, recording the
// edit on the undo stack and clearing the redo stack. The cursor is left at
// the end of the inserted text.
func (d *Document) ReplaceSpan(start, end int, newText string) {
	if start < 0 {
		start = 0
	}
	if end > len(d.text) {
		end = len(d.text)
	}
	if end < start {
		start, end = end, start
	}

	op := editOp{
		offset:  start,
		oldText: d.text[start:end],
		newText: newText,
	}
	if d.grouping > 0 {
		d.pending = append(d.pending, op)
	} else {
		d.undoStack = append(d.undoStack, editGroup{op})
	}
	d.redoStack = nil

	d.text = d.text[:start] + newText + d.text[end:]
	d.cursor = start + len(newText)
}

// Undo reverses the most recent edit group. Returns true if a group was
// undone, false if the undo stack is empty.
func (d *Document) Undo() bool {
	if len(d.undoStack) == 0 {
		return false
	}
	group := d.undoStack[len(d.undoStack)-1]
	d.undoStack = d.undoStack[:len(d.undoStack)-1]

	// Reverse each edit, newest first.
	for i := len(group) - 1; i >= 0; i-- {
		op := group[i]
		d.text = d.text[:op.offset] + op.oldText + d.text[op.offset+len(op.newText):]
	}
	d.redoStack = append(d.redoStack, group)
	d.clampCursor()
	return true
}

// Redo reapplies the most recently undone edit group. Returns true if a
// group was redone, false if the redo stack is empty.
func (d *Document) Redo() bool {
	if len(d.redoStack) == 0 {
		return false
	}
	group := d.redoStack[len(d.redoStack)-1]
	d.redoStack = d.redoStack[:len(d.redoStack)-1]

	for _, op := range group {
		d.text = d.text[:op.offset] + op.newText + d.text[op.offset+len(op.oldText):]
	}
	d.undoStack = append(d.undoStack, group)
	d.clampCursor()
	return true
}

// BlockCount returns the number of newline-delimited blocks. An empty
// document has one (empty) block.
func (d *Document) BlockCount() int {
	return strings.Count(d.text, "\n") + 1
}

// BlockText returns the text of the block at the given index, without its
// trailing newline. Out-of-range indices return "".
func (d *Document) BlockText(i int) string {
	blocks := strings.Split(d.text, "\n")
	if i < 0 || i >= len(blocks) {
		return ""
	}
	return blocks[i]
}

// LineAt maps a byte offset to its 0-based line index and the byte offset at
// which that line starts.
func (d *Document) LineAt(offset int) (line, lineStart int) {
	if offset > len(d.text) {
		offset = len(d.text)
	}
	for i := 0; i < offset; i++ {
		if d.text[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	return line, lineStart
}

// ApplyStyles stores the style runs for a block. This is formatting only: it
// does not touch the text and therefore never affects Dirty.
func (d *Document) ApplyStyles(block int, runs []markdown.Run) {
	if len(runs) == 0 {
		delete(d.styles, block)
		return
	}
	d.styles[block] = runs
}

// ClearStyles removes the style runs for a block.
func (d *Document) ClearStyles(block int) {
	delete(d.styles, block)
}

// Styles returns the style runs currently stored for a block.
func (d *Document) Styles(block int) []markdown.Run {
	return d.styles[block]
}

// StyledBlocks returns the indices of blocks that currently carry style runs.
func (d *Document) StyledBlocks() []int {
	out := make([]int, 0, len(d.styles))
	for i := range d.styles {
		out = append(out, i)
	}
	return out
}
