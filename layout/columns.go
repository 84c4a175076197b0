package layout

import (
	"github.com/tsawler/reflow/bitmap"
)

// Status bits returned by the column height and gap test.
const (
	colLeftShort  = 1
	colRightShort = 2
	colGapTooWide = 4
)

// ColumnSplit is the result of one divider search.
type ColumnSplit struct {
	// Regions holds, in reading order, an optional full-width region above
	// the columns followed by the left and right columns. When no divider
	// was found it holds the single full-width region.
	Regions []PageRegion

	// Found reports whether a column pair was emitted.
	Found bool

	// Divider is the first column of the whitespace shaft and GapWidth its
	// width. Top and Bottom are the rows the shaft spans.
	Divider  int
	GapWidth int
	Top      int
	Bottom   int
}

// LastRow returns the last row covered by the emitted regions.
func (s ColumnSplit) LastRow() int {
	r2 := -1
	for _, pr := range s.Regions {
		r2 = max(r2, pr.R2)
	}
	return r2
}

// Center returns the middle column of the divider shaft.
func (s ColumnSplit) Center() int {
	return s.Divider + s.GapWidth/2
}

// shaftMemo remembers, per divider column, the rows holding the ink that
// made a shaft fail. A later span that contains those rows cannot be clear
// if that ink already exceeds its own limit.
type shaftMemo struct {
	base   int
	rowmin []int
	rowmax []int
	ink    []int
}

func newShaftMemo(c1, c2 int) *shaftMemo {
	n := c2 - c1 + 1
	m := &shaftMemo{
		base:   c1,
		rowmin: make([]int, n),
		rowmax: make([]int, n),
		ink:    make([]int, n),
	}
	for i := range m.rowmin {
		m.rowmin[i] = -1
	}
	return m
}

func (m *shaftMemo) knownBlocked(d, top, bottom, limit int) bool {
	i := d - m.base
	if i < 0 || i >= len(m.rowmin) || m.rowmin[i] < 0 {
		return false
	}
	return top <= m.rowmin[i] && bottom >= m.rowmax[i] && m.ink[i] > limit
}

func (m *shaftMemo) record(d, rowmin, rowmax, ink int) {
	i := d - m.base
	if i < 0 || i >= len(m.rowmin) {
		return
	}
	m.rowmin[i], m.rowmax[i], m.ink[i] = rowmin, rowmax, ink
}

// FindColumnDivider searches a region for a vertical whitespace shaft that
// splits its upper part into two columns, each at least the minimum column
// height tall. The region is trimmed.
//
// Candidate spans run from the outermost text rows inward. For each span
// the shaft position is tried centre-out across the configured fraction of
// the width; a clear shaft is nudged by up to one gap width to its
// clearest position before the two columns are checked.
func (a *Analyzer) FindColumnDivider(r *Region) ColumnSplit {
	full := func() ColumnSplit {
		return ColumnSplit{Regions: []PageRegion{{Region: *r, FullWidth: true}}, Divider: -1}
	}
	if a.config.NormalizedMaxColumns() <= 1 {
		a.Trim(r, TrimEdges)
		return full()
	}

	bi := a.FindRows(r, a.config.ColumnRowGapHeightIn)
	if r.Empty() || len(bi.Rows) == 0 {
		return full()
	}

	n := len(bi.Rows)
	minH := a.px(a.config.MinColumnHeightIn)
	width := r.Width()
	middle := width / 2
	dm := 1 + int(float64(width)*a.config.ColumnGapRange/2)
	gapW := max(a.px(a.config.MinColumnGapIn), 1)
	memo := newShaftMemo(r.C1, r.C2)

	for itop := 0; itop < n; itop++ {
		if bi.Rows[n-1].R2-bi.Rows[itop].R1+1 < minH {
			break
		}
		for ibot := n - 1; ibot >= itop; ibot-- {
			top, bottom := bi.Rows[itop].R1, bi.Rows[ibot].R2
			if bottom-top+1 < minH {
				break
			}
			cols, d, ok := a.searchDivider(r, top, bottom, middle, dm, gapW, minH, memo)
			if !ok {
				continue
			}
			split := ColumnSplit{Found: true, Divider: d, GapWidth: gapW, Top: top, Bottom: bottom}
			if itop > 0 {
				above := r.Sub(r.C1, r.R1, r.C2, bi.Rows[itop-1].R2)
				a.Trim(&above, TrimEdges)
				split.Regions = append(split.Regions, PageRegion{Region: above, FullWidth: true})
			}
			split.Regions = append(split.Regions, PageRegion{Region: cols[0]}, PageRegion{Region: cols[1]})
			return split
		}
	}
	return full()
}

// searchDivider looks for a clear shaft for one row span. It returns the
// trimmed left and right columns and the shaft's first column.
func (a *Analyzer) searchDivider(r *Region, top, bottom, middle, dm, gapW, minH int, memo *shaftMemo) ([2]Region, int, bool) {
	limit := a.shaftLimit(bottom - top + 1)
	for i := 0; i < dm; i = nextOffset(i) {
		d := r.C1 + middle + i
		if d < r.C1 || d+gapW-1 > r.C2 {
			continue
		}
		if memo.knownBlocked(d, top, bottom, limit) {
			continue
		}
		shaft := r.Sub(d, top, d+gapW-1, bottom)
		if a.IsClear(&shaft) == 0 {
			rowmin, rowmax, ink := a.shaftInkRows(&shaft)
			memo.record(d, rowmin, rowmax, ink)
			continue
		}

		best := a.clearestShaft(r, d, top, bottom, gapW)
		status, cols := a.columnHeightAndGapTest(r, top, bottom, best, gapW, minH)
		if status&colLeftShort != 0 {
			continue
		}
		if status&colRightShort != 0 {
			break
		}
		if status&colGapTooWide != 0 {
			continue
		}
		return cols, best, true
	}
	return [2]Region{}, -1, false
}

// nextOffset walks 0, 1, -1, 2, -2, ... away from the centre.
func nextOffset(i int) int {
	if i > 0 {
		return -i
	}
	return -i + 1
}

// shaftLimit is the number of dark pixels a shaft of the given height in
// pixels may hold and still count as whitespace.
func (a *Analyzer) shaftLimit(height int) int {
	return int(a.config.ColumnGapThreshold*float64(height) + 0.5)
}

// IsClear tests whether the region is a whitespace shaft. It returns 0 when
// the ink exceeds the column gap threshold for its height, otherwise the
// ink count plus one, so that a larger value means a dirtier but still
// acceptable shaft.
func (a *Analyzer) IsClear(shaft *Region) int {
	if shaft.Empty() {
		return 0
	}
	limit := a.shaftLimit(shaft.Height())
	n := bitmap.DarkCount(shaft.Bitmap, shaft.C1, shaft.R1, shaft.C2, shaft.R2, shaft.BGColor, limit)
	if n > limit {
		return 0
	}
	return n + 1
}

func (a *Analyzer) shaftInkRows(shaft *Region) (rowmin, rowmax, ink int) {
	rows := a.scratch.Rows(shaft.Height())
	bitmap.Histogram(shaft.Bitmap, shaft.C1, shaft.R1, shaft.C2, shaft.R2, shaft.BGColor, nil, rows)
	rowmin, rowmax = -1, -1
	for i, c := range rows {
		if c == 0 {
			continue
		}
		if rowmin < 0 {
			rowmin = shaft.R1 + i
		}
		rowmax = shaft.R1 + i
		ink += c
	}
	return rowmin, rowmax, ink
}

// clearestShaft moves a clear shaft at d by up to one gap width either way
// to the position holding the least ink.
func (a *Analyzer) clearestShaft(r *Region, d, top, bottom, gapW int) int {
	shaft := r.Sub(d, top, d+gapW-1, bottom)
	best, bestCount := d, a.IsClear(&shaft)
	for dd := d - gapW; dd <= d+gapW && bestCount > 1; dd++ {
		if dd == d || dd < r.C1 || dd+gapW-1 > r.C2 {
			continue
		}
		s := r.Sub(dd, top, dd+gapW-1, bottom)
		c := a.IsClear(&s)
		if c > 0 && c < bestCount {
			best, bestCount = dd, c
		}
	}
	return best
}

// columnHeightAndGapTest trims the two columns either side of the shaft and
// reports which of them is too short, or whether they are too far apart.
func (a *Analyzer) columnHeightAndGapTest(r *Region, top, bottom, d, gapW, minH int) (int, [2]Region) {
	status := 0
	left := r.Sub(r.C1, top, d-1, bottom)
	a.Trim(&left, TrimEdges)
	if left.Empty() || left.Height() < minH {
		status |= colLeftShort
	}
	right := r.Sub(d+gapW, top, r.C2, bottom)
	a.Trim(&right, TrimEdges)
	if right.Empty() || right.Height() < minH {
		status |= colRightShort
	}
	if status == 0 && right.C1-left.C2-1 > a.px(a.config.MaxColumnGapIn) {
		status |= colGapTooWide
	}
	return status, [2]Region{left, right}
}
