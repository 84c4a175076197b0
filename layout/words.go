package layout

import (
	"github.com/tsawler/reflow/bitmap"
)

// FindWords splits one text row into word pieces. The region is trimmed
// and measured first; pieces inherit its metrics. Gaps narrower than the
// configured word spacing are closed, so the pieces are words rather than
// letters. Pieces are returned in column order with Gap filled in.
func (a *Analyzer) FindWords(r *Region) *BreakInfo {
	bi := &BreakInfo{}
	if !r.HasMetrics() {
		a.Trim(r, TrimEdges|TrimMetrics)
	}
	if r.Empty() {
		return bi
	}

	nc := r.Width()
	cols := make([]int, nc)
	bitmap.Histogram(r.Bitmap, r.C1, r.R1, r.C2, r.R2, r.BGColor, cols, nil)

	pt := max(int(a.config.WordGapThresholdIn*float64(a.config.DPI)+0.5), 1)
	start := -1
	for j := 0; j <= nc; j++ {
		ink := j < nc && cols[j] >= pt
		if ink {
			if start < 0 {
				start = j
			}
			continue
		}
		if start < 0 {
			continue
		}
		bi.Rows = append(bi.Rows, TextRow{
			C1:        r.C1 + start,
			R1:        r.R1,
			C2:        r.C1 + j - 1,
			R2:        r.R2,
			RowBase:   r.RowBase,
			CapHeight: r.CapHeight,
			LCHeight:  r.LCHeight,
			H5050:     r.H5050,
		})
		start = -1
	}
	bi.ComputeColGaps(r.C2)

	thresh := a.WordGapThreshold(r.LCHeight)
	merged := bi.Rows[:0]
	for _, w := range bi.Rows {
		if n := len(merged); n > 0 && merged[n-1].Gap < thresh {
			prev := &merged[n-1]
			prev.C2 = w.C2
			prev.Gap = w.Gap
			continue
		}
		merged = append(merged, w)
	}
	bi.Rows = merged
	bi.ComputeColGaps(r.C2)

	if r.Hyphen.Found && len(bi.Rows) > 0 {
		bi.Rows = attachHyphen(bi.Rows, r.Hyphen, a.config.Direction.LeftToRight())
		bi.ComputeColGaps(r.C2)
	}
	return bi
}

// attachHyphen hands the hyphen to the trailing word, folding a hyphen that
// was split off as a piece of its own back into that word.
func attachHyphen(words []TextRow, h Hyphen, ltr bool) []TextRow {
	n := len(words)
	if ltr {
		if n > 1 && words[n-1].C1 >= h.Ch {
			words[n-2].C2 = words[n-1].C2
			words = words[:n-1]
			n--
		}
		words[n-1].Hyphen = h
		return words
	}
	if n > 1 && words[0].C2 <= h.Ch {
		words[1].C1 = words[0].C1
		words = words[1:]
	}
	words[0].Hyphen = h
	return words
}

// WordGapThreshold is the narrowest gap, in pixels, that separates two
// words on a row with the given lowercase height.
func (a *Analyzer) WordGapThreshold(lcheight int) int {
	if lcheight <= 0 {
		lcheight = a.px(0.06)
	}
	return max(int(a.config.WordSpacing*float64(lcheight)+0.5), 1)
}

// WordBoxes returns the word rectangles of every text row in a region,
// each trimmed vertically to its own ink. Rows that look like figures are
// skipped.
func (a *Analyzer) WordBoxes(r Region) []TextRow {
	rows := a.FindRows(&r, -1)
	var out []TextRow
	for _, row := range rows.Rows {
		if a.IsFigure(row) {
			continue
		}
		rr := r.Sub(row.C1, row.R1, row.C2, row.R2)
		rr.RowBase, rr.CapHeight, rr.LCHeight, rr.H5050 = row.RowBase, row.CapHeight, row.LCHeight, row.H5050
		words := a.FindWords(&rr)
		for _, w := range words.Rows {
			wr := r.Sub(w.C1, w.R1, w.C2, w.R2)
			a.Trim(&wr, TrimTop|TrimBottom)
			w.R1, w.R2 = wr.R1, wr.R2
			out = append(out, w)
		}
	}
	return out
}
