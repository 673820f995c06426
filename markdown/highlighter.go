package markdown

// BlockSource provides read access to the host document's blocks. The
// highlighter receives it explicitly at construction; it never discovers its
// document by walking a widget hierarchy.
type BlockSource interface {
	BlockCount() int
	BlockText(i int) string
}

// StyleSink receives computed formatting. Implementations must treat applied
// styles as formatting only: pushing runs must never mark the document
// modified or show up as a text mutation.
type StyleSink interface {
	ApplyStyles(block int, runs []Run)
	ClearStyles(block int)
}

// Highlighter re-derives style runs for a document's blocks as they change.
// Enable and Disable are idempotent; disabling discards every style and no
// cached state survives, so re-enabling recomputes everything from scratch.
type Highlighter struct {
	src     BlockSource
	sink    StyleSink
	enabled bool
}

// NewHighlighter binds a highlighter to a block source and style sink.
func NewHighlighter(src BlockSource, sink StyleSink) *Highlighter {
	return &Highlighter{src: src, sink: sink}
}

// Enabled reports whether highlighting is currently active.
func (h *Highlighter) Enabled() bool {
	return h.enabled
}

// Enable turns highlighting on and highlights every block. Enabling twice is
// a no-op.
func (h *Highlighter) Enable() {
	if h.enabled {
		return
	}
	h.enabled = true
	for i := 0; i < h.src.BlockCount(); i++ {
		h.sink.ApplyStyles(i, HighlightBlock(h.src.BlockText(i)))
	}
}

// Disable turns highlighting off and clears every block's styles. Disabling
// when already off is a no-op.
func (h *Highlighter) Disable() {
	if !h.enabled {
		return
	}
	h.enabled = false
	for i := 0; i < h.src.BlockCount(); i++ {
		h.sink.ClearStyles(i)
	}
}

// BlockChanged recomputes the runs for a single edited block. A no-op while
// highlighting is disabled.
func (h *Highlighter) BlockChanged(i int) {
	if !h.enabled {
		return
	}
	h.sink.ApplyStyles(i, HighlightBlock(h.src.BlockText(i)))
}

// Refresh rehighlights every block, for hosts whose block count changed in
// ways they did not track per-block.
func (h *Highlighter) Refresh() {
	if !h.enabled {
		return
	}
	for i := 0; i < h.src.BlockCount(); i++ {
		h.sink.ApplyStyles(i, HighlightBlock(h.src.BlockText(i)))
	}
}
