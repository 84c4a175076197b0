package layout

import (
	"sort"
)

// TextRow is one entry of a BreakInfo: a text row when produced by
// FindRows, a word piece when produced by FindWords.
type TextRow struct {
	C1, R1 int
	C2, R2 int

	RowBase   int
	CapHeight int
	LCHeight  int
	H5050     int

	// Gap is the whitespace after this entry: rows below it (text rows) or
	// columns to its right (words).
	Gap int

	// RowHeight is the baseline-to-baseline distance to the previous row,
	// or the pitch to the next word for word pieces.
	RowHeight int

	Hyphen Hyphen
}

// Width returns the number of columns spanned.
func (t TextRow) Width() int {
	return t.C2 - t.C1 + 1
}

// Height returns the number of rows spanned.
func (t TextRow) Height() int {
	return t.R2 - t.R1 + 1
}

// FontSize is the row's text height estimate: cap height plus lowercase
// height.
func (t TextRow) FontSize() int {
	if t.CapHeight <= 0 || t.LCHeight <= 0 {
		return t.Height()
	}
	return t.CapHeight + t.LCHeight
}

func rowFromRegion(r Region) TextRow {
	return TextRow{
		C1:        r.C1,
		R1:        r.R1,
		C2:        r.C2,
		R2:        r.R2,
		RowBase:   r.RowBase,
		CapHeight: r.CapHeight,
		LCHeight:  r.LCHeight,
		H5050:     r.H5050,
		Hyphen:    r.Hyphen,
	}
}

// BreakInfo is an ordered list of rows or words found inside a region.
type BreakInfo struct {
	Rows []TextRow

	// MeanRowHeight is the average height of text rows, excluding
	// figure-sized rows.
	MeanRowHeight int

	// Centered is set by the justification analysis when most rows are
	// centred in the region.
	Centered bool
}

// Len returns the number of entries.
func (bi *BreakInfo) Len() int {
	return len(bi.Rows)
}

// ComputeRowGaps fills Gap and RowHeight for text rows in row order. r2 is
// the bottom of the enclosing region.
func (bi *BreakInfo) ComputeRowGaps(r2 int) {
	n := len(bi.Rows)
	for i := 0; i < n; i++ {
		row := &bi.Rows[i]
		base := row.RowBase
		if base < row.R1 {
			base = row.R2
		}
		if i < n-1 {
			row.Gap = bi.Rows[i+1].R1 - base - 1
		} else {
			row.Gap = r2 - base
		}
		if i == 0 {
			row.RowHeight = row.R2 - row.R1
		} else {
			prev := bi.Rows[i-1].RowBase
			if prev < bi.Rows[i-1].R1 {
				prev = bi.Rows[i-1].R2
			}
			row.RowHeight = base - prev
		}
	}
}

// ComputeColGaps fills Gap and RowHeight for word pieces in column order.
// c2 is the right edge of the enclosing row.
func (bi *BreakInfo) ComputeColGaps(c2 int) {
	n := len(bi.Rows)
	for i := 0; i < n; i++ {
		w := &bi.Rows[i]
		if i < n-1 {
			w.Gap = bi.Rows[i+1].C1 - w.C2 - 1
			w.RowHeight = bi.Rows[i+1].C1 - w.C1
		} else {
			w.Gap = c2 - w.C2
			w.RowHeight = w.C2 - w.C1
		}
	}
}

// SortByRow restores top-to-bottom order.
func (bi *BreakInfo) SortByRow() {
	sort.SliceStable(bi.Rows, func(i, j int) bool { return bi.Rows[i].R1 < bi.Rows[j].R1 })
}

// SortByCol restores left-to-right order.
func (bi *BreakInfo) SortByCol() {
	sort.SliceStable(bi.Rows, func(i, j int) bool { return bi.Rows[i].C1 < bi.Rows[j].C1 })
}

// SortByGap orders entries by ascending gap. Callers must re-establish
// position order with SortByRow or SortByCol afterwards.
func (bi *BreakInfo) SortByGap() {
	sort.SliceStable(bi.Rows, func(i, j int) bool { return bi.Rows[i].Gap < bi.Rows[j].Gap })
}

// Scratch holds per-analysis working buffers that are reused between calls.
type Scratch struct {
	cols []int
	rows []int
}

// Cols returns a column buffer of length n, growing the backing array
// when needed. The contents are undefined.
func (s *Scratch) Cols(n int) []int {
	if cap(s.cols) < n {
		s.cols = make([]int, n)
	}
	return s.cols[:n]
}

// Rows returns a row buffer of length n.
func (s *Scratch) Rows(n int) []int {
	if cap(s.rows) < n {
		s.rows = make([]int, n)
	}
	return s.rows[:n]
}
