package layout

import (
	"github.com/tsawler/reflow/bitmap"
)

// Row segmentation constants. Lengths are in inches.
const (
	apertureDivisor = 13.7

	minRowHeightFloorIn = 0.04
	minRowHeightCeilIn  = 0.13

	figureMinHeightIn        = 0.75
	figureMaxCaptionGapIn    = 0.16
	figureMaxCaptionHeightIn = 0.5

	// A smoothed row whose ink is at most this multiple of the row gap
	// threshold is blank.
	blankRowRatio = 1.0
)

// FindRows splits a region into text rows separated by blank rows. The
// region is trimmed first. apertureIn is the vertical smoothing window in
// inches; a negative value selects a window that narrows as the current
// text row grows, so that tightly set lines still separate.
//
// Every returned row is trimmed and carries metrics. Rows are in top to
// bottom order with Gap and RowHeight filled in.
func (a *Analyzer) FindRows(r *Region, apertureIn float64) *BreakInfo {
	bi := &BreakInfo{}
	a.Trim(r, TrimEdges)
	if r.Empty() {
		return bi
	}

	nr := r.Height()
	rows := make([]int, nr)
	bitmap.Histogram(r.Bitmap, r.C1, r.R1, r.C2, r.R2, r.BGColor, nil, rows)
	blank := a.blankRows(rows, r.Width(), apertureIn)

	floor := max(a.px(minRowHeightFloorIn), 1)
	ceil := max(a.px(minRowHeightCeilIn), floor)
	rhmin := floor
	total, count := 0, 0

	start, last := -1, -1
	closeRow := func() {
		sub := r.Sub(r.C1, r.R1+start, r.C2, r.R1+last)
		a.Trim(&sub, TrimEdges|TrimMetrics)
		if !sub.Empty() {
			bi.Rows = append(bi.Rows, rowFromRegion(sub))
			total += sub.Height()
			count++
			rhmin = min(max(total/count/3, floor), ceil)
		}
		start, last = -1, -1
	}

	for i := 0; i < nr; i++ {
		if !blank[i] {
			if start < 0 {
				start = i
			}
			last = i
			continue
		}
		if start < 0 {
			continue
		}
		// Short runs such as accents or the dots of a leader wait for the
		// row they belong to, unless the whitespace after them is as tall
		// as a text row.
		if last-start+1 >= rhmin || i-last >= rhmin {
			closeRow()
		}
	}
	if start >= 0 {
		closeRow()
	}

	bi.Rows = a.mergeFigureCaptions(bi.Rows)
	bi.ComputeRowGaps(r.R2)
	bi.MeanRowHeight = a.meanTextRowHeight(bi.Rows)
	return bi
}

// blankRows smooths the row histogram over the aperture and marks the
// rows whose smoothed ink stays under the row gap threshold.
func (a *Analyzer) blankRows(rows []int, width int, apertureIn float64) []bool {
	dpi := float64(a.config.DPI)
	nr := len(rows)
	blank := make([]bool, nr)

	apMax := max(int(dpi/72+0.5), 2)
	fixed := 0
	if apertureIn >= 0 {
		fixed = max(int(apertureIn*dpi+0.5), 1)
	}
	// Allowed dark pixels per row, proportional to the row width.
	perRow := a.config.RowGapThreshold * float64(width)

	run := 0
	for i := 0; i < nr; i++ {
		ap := fixed
		if ap == 0 {
			ap = int(dpi/(apertureDivisor*float64(max(run, 1))) + 0.5)
			ap = min(max(ap, 2), apMax)
		}
		i1 := max(i-ap/2, 0)
		i2 := min(i1+ap-1, nr-1)
		sum := 0
		for k := i1; k <= i2; k++ {
			sum += rows[k]
		}
		pt := perRow * float64(i2-i1+1)
		if pt < 1 {
			pt = 1
		}
		blank[i] = float64(sum)/pt <= blankRowRatio
		if blank[i] {
			run = 0
		} else {
			run++
		}
	}
	return blank
}

// mergeFigureCaptions folds short rows that sit just below a tall row into
// it, so that a figure and its caption move as one unit.
func (a *Analyzer) mergeFigureCaptions(rows []TextRow) []TextRow {
	figH := a.px(figureMinHeightIn)
	capGap := a.px(figureMaxCaptionGapIn)
	capH := a.px(figureMaxCaptionHeightIn)

	out := make([]TextRow, 0, len(rows))
	fig := -1
	for _, row := range rows {
		if fig >= 0 {
			f := &out[fig]
			if row.R1-f.R2-1 <= capGap && row.Height() <= capH {
				f.C1 = min(f.C1, row.C1)
				f.C2 = max(f.C2, row.C2)
				f.R2 = row.R2
				f.RowBase = row.RowBase
				f.Hyphen = Hyphen{}
				continue
			}
			fig = -1
		}
		out = append(out, row)
		if row.Height() >= figH {
			fig = len(out) - 1
		}
	}
	return out
}

func (a *Analyzer) meanTextRowHeight(rows []TextRow) int {
	figH := a.px(figureMinHeightIn)
	total, n := 0, 0
	for _, row := range rows {
		if row.Height() >= figH {
			continue
		}
		total += row.Height()
		n++
	}
	if n == 0 {
		for _, row := range rows {
			total += row.Height()
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return total / n
}
