package markdown

// Style identifies the visual treatment of a run. A run carries exactly one
// style; runs within a block never overlap.
type Style int

const (
	Header1 Style = iota
	Header2
	Header3Plus // three or more hashes
	Bold
	Italic
	BoldItalic
	Blockquote
	Code
)

var styleNames = map[Style]string{
	Header1:     "header1",
	Header2:     "header2",
	Header3Plus: "header3+",
	Bold:        "bold",
	Italic:      "italic",
	BoldItalic:  "bold-italic",
	Blockquote:  "blockquote",
	Code:        "code",
}

func (s Style) String() string {
	if name, ok := styleNames[s]; ok {
		return name
	}
	return "unknown"
}

// Run is a contiguous styled span within a block. Start and Len are byte
// offsets into the block's text. Delimiters are included in the span.
type Run struct {
	Start int
	Len   int
	Style Style
}

// End returns the byte offset one past the run.
func (r Run) End() int {
	return r.Start + r.Len
}
