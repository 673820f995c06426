package findreplace

// Options controls how a query is evaluated.
//
// WholeWord applies to literal searches only: it and Regex are mutually
// exclusive, and enabling Regex forces WholeWord off.
type Options struct {
	CaseSensitive bool
	WholeWord     bool
	Regex         bool
}

func (o Options) normalized() Options {
	if o.Regex {
		o.WholeWord = false
	}
	return o
}

// ScopeKind selects the document set an operation considers.
type ScopeKind int

const (
	ScopeCurrentDocument ScopeKind = iota
	ScopeAllDocuments
	ScopeSelection
)

// Scope is the document set and, for selection scope, the captured byte
// window an operation is restricted to. The window is snapshotted when the
// scope is created; replace operations inside the window shift End by each
// replacement's length delta so later matches are judged against the
// original intended boundary rather than a stale absolute offset.
type Scope struct {
	Kind ScopeKind

	// Captured selection window; only meaningful for ScopeSelection.
	Start, End int
}

// CurrentDocument scopes an operation to the active document.
func CurrentDocument() *Scope {
	return &Scope{Kind: ScopeCurrentDocument}
}

// AllDocuments scopes an operation to every open document, in open order.
func AllDocuments() *Scope {
	return &Scope{Kind: ScopeAllDocuments}
}

// SelectionIn captures the document's current selection as a search window.
// When the document has no active selection, the scope falls back to the
// current document.
func SelectionIn(doc Document) *Scope {
	if doc == nil {
		return CurrentDocument()
	}
	start, end, ok := doc.SelectedRange()
	if !ok {
		return CurrentDocument()
	}
	return &Scope{Kind: ScopeSelection, Start: start, End: end}
}
