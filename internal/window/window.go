// Package window computes which slice of an unbounded logical row list is
// actually rendered in a scrollable viewport. Compute is a pure function
// of its inputs and is safe to call at arbitrarily high frequency.
package window

import "triage-cli/internal/rows"

// Metrics tunes the windowing arithmetic.
type Metrics struct {
	// EstimateHeight is used for any row without a measured height.
	EstimateHeight int
	// Overscan is the number of extra rows rendered beyond each end of
	// the visible range to reduce flicker during fast scrolling.
	Overscan int
}

func (m Metrics) withDefaults() Metrics {
	if m.EstimateHeight <= 0 {
		m.EstimateHeight = 1
	}
	if m.Overscan < 0 {
		m.Overscan = 0
	}
	return m
}

// Measurer reports a measured height for a row index. ok=false falls back
// to the estimate; measurement is best-effort and drift from estimates is
// an accepted approximation, not a correctness bug.
type Measurer func(index int) (height int, ok bool)

// RowInfo is one rendered row with its resolved geometry plus the block
// metadata the presentation layer needs for spacing: a folder header and
// its expanded members visually connect, standalone rows carry a margin.
type RowInfo struct {
	Index  int
	Offset int
	Height int

	InBlock     bool
	LastInBlock bool
}

// Window is the render plan for one frame.
type Window struct {
	// Start and End bound the rendered range [Start, End).
	Start int
	End   int
	Rows  []RowInfo
	// TotalHeight is the scrollable height of the whole sequence,
	// including unrendered rows (estimated where unmeasured).
	TotalHeight int
}

func (w Window) Empty() bool { return w.Start >= w.End }

// Compute resolves the rendered range for the given scroll offset and
// viewport height. A zero or negative viewport (container not yet sized)
// yields an empty window rather than an error.
func Compute(rs []rows.Row, measure Measurer, scrollOffset, viewportHeight int, m Metrics) Window {
	m = m.withDefaults()
	if viewportHeight <= 0 || len(rs) == 0 {
		return Window{}
	}
	if scrollOffset < 0 {
		scrollOffset = 0
	}

	heights := make([]int, len(rs))
	offsets := make([]int, len(rs))
	total := 0
	for i := range rs {
		h := m.EstimateHeight
		if measure != nil {
			if mh, ok := measure(i); ok && mh > 0 {
				h = mh
			}
		}
		heights[i] = h
		offsets[i] = total
		total += h
	}

	// First row whose bottom edge is past the scroll offset.
	start := len(rs)
	for i := range rs {
		if offsets[i]+heights[i] > scrollOffset {
			start = i
			break
		}
	}
	// One past the last row whose top edge is inside the viewport.
	end := start
	for end < len(rs) && offsets[end] < scrollOffset+viewportHeight {
		end++
	}

	start -= m.Overscan
	end += m.Overscan
	if start < 0 {
		start = 0
	}
	if end > len(rs) {
		end = len(rs)
	}
	if start >= end {
		return Window{TotalHeight: total}
	}

	out := Window{Start: start, End: end, TotalHeight: total, Rows: make([]RowInfo, 0, end-start)}
	for i := start; i < end; i++ {
		out.Rows = append(out.Rows, RowInfo{
			Index:       i,
			Offset:      offsets[i],
			Height:      heights[i],
			InBlock:     inBlock(rs, i),
			LastInBlock: lastInBlock(rs[i]),
		})
	}
	return out
}

// inBlock reports whether the row belongs to an expanded-folder block: an
// expanded header with at least one visible member, or a member row.
func inBlock(rs []rows.Row, i int) bool {
	r := rs[i]
	if r.Kind == rows.KindFolder {
		return r.Expanded && r.Visible > 0
	}
	return r.InFolder
}

func lastInBlock(r rows.Row) bool {
	if r.Kind == rows.KindFolder {
		// A header with no visible members closes its own block.
		return r.Expanded && r.Visible == 0
	}
	return r.InFolder && r.LastInGroup
}

// OffsetFor returns the absolute offset of a row index, estimating any
// unmeasured heights, so callers can keep a cursor visible by adjusting
// scroll position.
func OffsetFor(rs []rows.Row, measure Measurer, index int, m Metrics) (offset, height int) {
	m = m.withDefaults()
	if index < 0 {
		return 0, 0
	}
	if index >= len(rs) {
		index = len(rs) - 1
	}
	for i := 0; i <= index; i++ {
		h := m.EstimateHeight
		if measure != nil {
			if mh, ok := measure(i); ok && mh > 0 {
				h = mh
			}
		}
		if i == index {
			return offset, h
		}
		offset += h
	}
	return offset, 0
}
