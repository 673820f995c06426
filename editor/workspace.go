package editor

import "path/filepath"

// Workspace tracks open documents in tab order and which one is active.
// It is pure data management — no UI dependency. Document order is open
// order; search operations that span all documents iterate in this order.
type Workspace struct {
	docs   []*Document
	active int // index of active document, or -1 if none
}

// NewWorkspace creates a Workspace with no open documents.
func NewWorkspace() *Workspace {
	return &Workspace{
		active: -1,
	}
}

// Count returns the number of open documents.
func (w *Workspace) Count() int {
	return len(w.docs)
}

// Active returns the index of the active document, or -1 if there are no
// open documents.
func (w *Workspace) Active() int {
	return w.active
}

// ActiveDocument returns the currently active document, or nil if there are
// no open documents.
func (w *Workspace) ActiveDocument() *Document {
	if w.active < 0 || w.active >= len(w.docs) {
		return nil
	}
	return w.docs[w.active]
}

// Document returns the document at the given index, or nil if the index is
// out of range.
func (w *Workspace) Document(index int) *Document {
	if index < 0 || index >= len(w.docs) {
		return nil
	}
	return w.docs[index]
}

// Documents returns all open documents in open order.
func (w *Workspace) Documents() []*Document {
	return w.docs
}

// NewUntitled creates a new empty, untitled document, appends it, sets it as
// the active document, and returns its index.
func (w *Workspace) NewUntitled() int {
	doc := NewDocument()
	w.docs = append(w.docs, doc)
	w.active = len(w.docs) - 1
	return w.active
}

// Open opens the file at path. If a document with the same absolute path is
// already open, it switches to that document instead of opening a duplicate.
// The new (or existing) document is set as active. Returns the index and any
// error from opening the file.
func (w *Workspace) Open(path string) (int, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return -1, err
	}

	// Check for an existing document with the same path.
	for i, doc := range w.docs {
		if doc.Path() == absPath {
			w.active = i
			return i, nil
		}
	}

	// Open into a new document.
	doc := NewDocument()
	if err := doc.Open(absPath); err != nil {
		return -1, err
	}

	w.docs = append(w.docs, doc)
	w.active = len(w.docs) - 1
	return w.active, nil
}

// SetActive switches the active document to the given index. If the index is
// out of range, this is a no-op.
func (w *Workspace) SetActive(index int) {
	if index < 0 || index >= len(w.docs) {
		return
	}
	w.active = index
}

// Close removes the document at the given index. If the index is out of
// range, this is a no-op. After removal the active index is adjusted:
//   - If the closed document was before the active one, active shifts down.
//   - If the closed document was the active one (or active is now out of
//     range), active is clamped to the last valid index.
//   - If no documents remain, active becomes -1.
func (w *Workspace) Close(index int) {
	if index < 0 || index >= len(w.docs) {
		return
	}

	w.docs = append(w.docs[:index], w.docs[index+1:]...)

	if len(w.docs) == 0 {
		w.active = -1
		return
	}

	if index < w.active {
		// Closed a document before the active one: shift active down.
		w.active--
	} else if index == w.active {
		// Closed the active document: clamp to valid range.
		if w.active >= len(w.docs) {
			w.active = len(w.docs) - 1
		}
	}
	// If index > w.active, active stays the same (still valid).
}
