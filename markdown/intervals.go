package markdown

import "sort"

type span struct {
	start, end int // half-open [start, end)
}

// claimSet accumulates the regions already claimed by earlier highlight
// passes. Later passes consult it before accepting a candidate match, so
// category precedence is decided by pass order rather than position.
type claimSet struct {
	spans []span // kept sorted by start; non-overlapping
}

// add inserts a claimed region, keeping the set sorted. The caller is
// responsible for checking overlaps first.
func (c *claimSet) add(start, end int) {
	i := sort.Search(len(c.spans), func(i int) bool {
		return c.spans[i].start >= start
	})
	c.spans = append(c.spans, span{})
	copy(c.spans[i+1:], c.spans[i:])
	c.spans[i] = span{start: start, end: end}
}

// overlaps reports whether [start, end) intersects any claimed region.
func (c *claimSet) overlaps(start, end int) bool {
	i := sort.Search(len(c.spans), func(i int) bool {
		return c.spans[i].end > start
	})
	return i < len(c.spans) && c.spans[i].start < end
}

// contains reports whether the single position is inside a claimed region.
func (c *claimSet) contains(pos int) bool {
	return c.overlaps(pos, pos+1)
}
