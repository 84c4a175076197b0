package layout

// Hyphen shape limits, as fractions of the lowercase letter height unless
// noted otherwise.
const (
	hyphenBandMargin   = 0.04
	hyphenMinAspect    = 0.08
	hyphenMaxAspect    = 0.75
	hyphenMinCenter    = 0.35
	hyphenMaxCenter    = 0.92
	hyphenMaxThickness = 0.4
	hyphenMinLCHeight  = 4
)

// DetectHyphen looks for a hyphen at the trailing end of a trimmed text
// row and records it in r.Hyphen. The region must carry metrics.
//
// A hyphen is a short horizontal dash: every column of it holds exactly one
// thin dark run inside the letter band, it sits between 35% and 92% of the
// lowercase height above the baseline, and whitespace separates it from the
// word it follows.
func (a *Analyzer) DetectHyphen(r *Region) {
	r.Hyphen = Hyphen{}
	if !a.config.HyphenDetect || r.Empty() || r.Width() < 3 {
		return
	}
	if r.LCHeight < hyphenMinLCHeight || r.RowBase < r.R1 || r.CapHeight <= 0 {
		return
	}

	lc := float64(r.LCHeight)
	margin := int(hyphenBandMargin*lc + 0.5)
	rmin := max(r.RowBase-r.CapHeight-margin, r.R1)
	rmax := min(r.RowBase+margin, r.R2)
	maxThick := int(hyphenMaxThickness*lc + 0.5)
	if maxThick < 1 {
		maxThick = 1
	}

	start, end, step := r.C2, r.C1-1, -1
	if !a.config.Direction.LeftToRight() {
		start, end, step = r.C1, r.C2+1, 1
	}

	j := start
	for j != end && !a.columnHasInk(r, j, rmin, rmax) {
		j += step
	}
	if j == end {
		return
	}

	top, bottom := rmax+1, rmin-1
	length := 0
	for ; j != end; j += step {
		t, b, runs := a.columnRuns(r, j, rmin, rmax)
		if runs == 0 {
			break
		}
		if runs > 1 {
			return
		}
		nt, nb := min(top, t), max(bottom, b)
		if nb-nt+1 > maxThick {
			return
		}
		top, bottom = nt, nb
		length++
	}
	if j == end || length < 2 {
		return
	}
	leading := j - step

	aspect := float64(bottom-top+1) / float64(length)
	if aspect < hyphenMinAspect || aspect > hyphenMaxAspect {
		return
	}
	center := (float64(r.RowBase) - float64(top+bottom)/2) / lc
	if center < hyphenMinCenter || center > hyphenMaxCenter {
		return
	}

	// The word the hyphen belongs to must follow the gap.
	for j != end && !a.columnHasInk(r, j, r.R1, r.R2) {
		j += step
	}
	if j == end {
		return
	}

	r.Hyphen = Hyphen{
		Found: true,
		Ch:    leading,
		C2:    j,
		R1:    top,
		R2:    bottom,
	}
}

func (a *Analyzer) columnHasInk(r *Region, col, r1, r2 int) bool {
	b := r.Bitmap
	for y := r1; y <= r2; y++ {
		if int(b.Gray[y*b.Width+col]) < r.BGColor {
			return true
		}
	}
	return false
}

// columnRuns returns the extent of the ink in column col between r1 and r2
// and the number of separate dark runs found there.
func (a *Analyzer) columnRuns(r *Region, col, r1, r2 int) (top, bottom, runs int) {
	b := r.Bitmap
	top, bottom = -1, -1
	inRun := false
	for y := r1; y <= r2; y++ {
		dark := int(b.Gray[y*b.Width+col]) < r.BGColor
		if dark {
			if !inRun {
				runs++
				inRun = true
			}
			if top < 0 {
				top = y
			}
			bottom = y
			continue
		}
		inRun = false
	}
	return top, bottom, runs
}
