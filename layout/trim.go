package layout

import (
	"math"
	"sort"

	"github.com/tsawler/reflow/bitmap"
)

// TrimFlags selects which edges Trim moves and what it measures.
type TrimFlags uint

const (
	TrimLeft TrimFlags = 1 << iota
	TrimRight
	TrimTop
	TrimBottom

	// TrimMetrics measures baseline and letter heights after trimming.
	TrimMetrics

	// TrimHyphen also runs hyphen detection. It implies every edge and
	// TrimMetrics.
	TrimHyphen

	TrimEdges = TrimLeft | TrimRight | TrimTop | TrimBottom
)

// Margin gaps in points: ink closer than this to the first real content is
// kept. The trailing side of a line gets the wider allowance so that
// punctuation after the last word survives.
const (
	leadingGapPts  = 2.0
	trailingGapPts = 4.0
	verticalGapPts = 4.0
)

// Letter-height sanity window for lcheight/capheight.
const (
	minLCCapRatio  = 0.55
	maxLCCapRatio  = 0.85
	lcCapFallback  = 0.72
	maxTrimPasses  = 4
	metricInkShare = 20
)

// Trim shrinks a region to its ink, ignoring specks smaller than the
// configured defect size, and optionally measures letter metrics.
// Trimming an already trimmed region leaves it unchanged.
func (a *Analyzer) Trim(r *Region, flags TrimFlags) {
	if flags&TrimHyphen != 0 {
		flags |= TrimEdges | TrimMetrics
	}
	if r.Empty() {
		return
	}
	r.resetMetrics()

	for pass := 0; pass < maxTrimPasses && flags&TrimEdges != 0; pass++ {
		c1, r1, c2, r2 := r.C1, r.R1, r.C2, r.R2
		a.trimEdges(r, flags)
		if r.C1 == c1 && r.R1 == r1 && r.C2 == c2 && r.R2 == r2 {
			break
		}
	}

	if flags&TrimMetrics != 0 {
		rows := a.scratch.Rows(r.Height())
		bitmap.Histogram(r.Bitmap, r.C1, r.R1, r.C2, r.R2, r.BGColor, nil, rows)
		a.measure(r, rows)
	}
	if flags&TrimHyphen != 0 {
		a.DetectHyphen(r)
	}
}

func (a *Analyzer) trimEdges(r *Region, flags TrimFlags) {
	cols := a.scratch.Cols(r.Width())
	rows := a.scratch.Rows(r.Height())
	bitmap.Histogram(r.Bitmap, r.C1, r.R1, r.C2, r.R2, r.BGColor, cols, rows)

	leftGap, rightGap := leadingGapPts, trailingGapPts
	if !a.config.Direction.LeftToRight() {
		leftGap, rightGap = trailingGapPts, leadingGapPts
	}

	c1, r1 := r.C1, r.R1
	if flags&TrimLeft != 0 {
		r.C1 = a.trimTo(cols, c1, r.C1, r.C2, leftGap)
	}
	if flags&TrimRight != 0 {
		r.C2 = a.trimTo(cols, c1, r.C2, r.C1, rightGap)
	}
	if flags&TrimTop != 0 {
		r.R1 = a.trimTo(rows, r1, r.R1, r.R2, verticalGapPts)
	}
	if flags&TrimBottom != 0 {
		r.R2 = a.trimTo(rows, r1, r.R2, r.R1, verticalGapPts)
	}
}

// trimTo walks count from index from toward to and returns the first index
// that starts real content. count[i-base] is the ink at index i. Dark runs
// whose accumulated ink stays under the defect level are noise, unless
// one lies within gaplenPts of the content, in which case it is kept.
func (a *Analyzer) trimTo(count []int, base, from, to int, gaplenPts float64) int {
	dpi := float64(a.config.DPI)
	igaplen := int(gaplenPts * dpi / 72)
	if igaplen < 1 {
		igaplen = 1
	}
	d := a.config.DefectSizePts * dpi / 72
	dlevel := int(math.Pi/4*d*d + 0.5)
	if dlevel < 1 {
		dlevel = 1
	}

	step := 1
	if to < from {
		step = -1
	}
	defectStart, lastDefect := -1, -1
	dcount := 0
	for i := from; i != to; i += step {
		c := count[i-base]
		if c <= 0 {
			dcount = 0
			continue
		}
		if dcount == 0 {
			if defectStart >= 0 {
				lastDefect = defectStart
			}
			defectStart = i
		}
		dcount += c
		if dcount >= dlevel {
			if lastDefect >= 0 && abs(defectStart-lastDefect) <= igaplen {
				return lastDefect
			}
			return defectStart
		}
	}
	if defectStart < 0 {
		return to
	}
	if lastDefect >= 0 && abs(defectStart-lastDefect) <= igaplen {
		return lastDefect
	}
	return defectStart
}

// measure computes baseline and letter heights from the row ink histogram
// of the trimmed region.
func (a *Analyzer) measure(r *Region, rows []int) {
	maxcount := 0
	for _, c := range rows {
		if c > maxcount {
			maxcount = c
		}
	}
	if maxcount == 0 {
		return
	}

	half := maxcount / 2
	base := len(rows) - 1
	for base > 0 && rows[base] <= half {
		base--
	}
	r.RowBase = r.R1 + base

	top := 0
	for top < base && rows[top] <= half {
		top++
	}
	r.LCHeight = base - top + 1
	r.H5050 = r.LCHeight

	low := maxcount / metricInkShare
	top = 0
	for top < base && rows[top] <= low {
		top++
	}
	r.CapHeight = base - top + 1

	if r.CapHeight <= 0 {
		return
	}
	f := float64(r.LCHeight) / float64(r.CapHeight)
	if f < minLCCapRatio || f > maxLCCapRatio {
		if h2 := height2(rows); h2 > 0 {
			r.CapHeight = h2
		}
		if r.LCHeight > r.CapHeight {
			r.LCHeight = int(lcCapFallback*float64(r.CapHeight) + 0.5)
		}
	}
}

// height2 returns the extent of the rows whose ink exceeds the value found
// one third of the way through the sorted histogram.
func height2(rows []int) int {
	n := len(rows)
	if n == 0 {
		return 0
	}
	sorted := append([]int(nil), rows...)
	sort.Ints(sorted)
	thresh := sorted[n/3]

	i1, i2 := -1, -1
	for i, c := range rows {
		if c > thresh {
			if i1 < 0 {
				i1 = i
			}
			i2 = i
		}
	}
	if i1 < 0 {
		return 0
	}
	return i2 - i1 + 1
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
