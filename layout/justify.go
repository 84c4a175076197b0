package layout

import (
	"sort"
)

// Justification analysis constants. Fractions of the text height unless
// noted otherwise.
const (
	lineSpacingFactor     = 1.16
	indentMinFraction     = 0.5
	indentMaxIn           = 1.2
	indentMaxWidthShare   = 0.25
	centerOffsetFraction  = 0.5
	looseCenterFraction   = 1.5
	flushOffsetFraction   = 0.5
	flushOffsetMaxIn      = 0.1
	raggedShortLineShare  = 0.25
	fontChangeRatio       = 1.5
	leftBias              = 0.01
	plausibleCapMinFactor = 0.67
	plausibleCapMaxFactor = 1.5
)

// LineInfo describes how one source text row sits inside its block.
type LineInfo struct {
	// LeftOffset and RightOffset are the distances in pixels from the
	// block's left and right edges.
	LeftOffset  int
	RightOffset int

	Indented  bool
	Centered  bool
	Just      Justification
	ShortLine bool

	// FontChange is set when the next row's text height differs from this
	// one by more than half again.
	FontChange bool
}

// BlockLayout is the justification summary of a block of text rows.
type BlockLayout struct {
	// FontSize is the median cap height plus the median lowercase height.
	FontSize  int
	CapHeight int
	LCHeight  int

	// SourceLineSpacing is the median baseline distance in the source and
	// LineSpacing the spacing output lines should use.
	SourceLineSpacing int
	LineSpacing       int

	RaggedRight bool
	Centered    bool
	Just        Justification
	FullJustify bool

	Lines []LineInfo
}

// AnalyzeJustification classifies every row of bi, which must come from
// FindRows on r, as indented, centred, left or right aligned and works out
// the font size and line spacing of the block. It also sets bi.Centered.
func (a *Analyzer) AnalyzeJustification(r *Region, bi *BreakInfo) *BlockLayout {
	bl := &BlockLayout{Lines: make([]LineInfo, len(bi.Rows))}
	if len(bi.Rows) == 0 {
		bl.Just = a.resolveJust(JustifyLeft)
		return bl
	}

	plausible := a.plausibleRows(bi.Rows)
	caps := make([]int, 0, len(plausible))
	lcs := make([]int, 0, len(plausible))
	for _, i := range plausible {
		caps = append(caps, bi.Rows[i].CapHeight)
		lcs = append(lcs, bi.Rows[i].LCHeight)
	}
	bl.CapHeight = median(caps)
	bl.LCHeight = median(lcs)
	bl.FontSize = bl.CapHeight + bl.LCHeight
	if bl.FontSize <= 0 {
		bl.FontSize = max(bi.MeanRowHeight, 1)
	}

	bl.SourceLineSpacing = a.sourceLineSpacing(bi.Rows, plausible)
	bl.LineSpacing = a.targetLineSpacing(bl.FontSize, bl.SourceLineSpacing)

	th := float64(bl.FontSize)
	width := r.Width()
	centeredCount, flushCount := 0, 0
	for i, row := range bi.Rows {
		li := &bl.Lines[i]
		li.LeftOffset = row.C1 - r.C1
		li.RightOffset = r.C2 - row.C2
		if a.strictlyCentered(li, th) {
			centeredCount++
		}
		if float64(li.RightOffset) < flushOffsetFraction*th && li.RightOffset < a.px(flushOffsetMaxIn) {
			flushCount++
		}
	}
	n := len(bi.Rows)
	bl.Centered = n > 1 && centeredCount > n/2
	bi.Centered = bl.Centered
	bl.RaggedRight = flushCount <= n/2

	lefts, rights := 0, 0
	for i, row := range bi.Rows {
		li := &bl.Lines[i]
		lo, ro := float64(li.LeftOffset), float64(li.RightOffset)
		li.Indented = lo > indentMinFraction*th && lo < float64(a.px(indentMaxIn)) && lo < indentMaxWidthShare*float64(width)
		switch {
		case a.strictlyCentered(li, th):
			li.Centered = true
		case bl.Centered && li.LeftOffset > 0 && li.RightOffset > 0 && float64(abs(li.LeftOffset-li.RightOffset)) <= looseCenterFraction*th:
			li.Centered = true
		}
		switch {
		case li.Centered:
			li.Just = JustifyCenter
		case lo <= ro*(1+leftBias):
			li.Just = JustifyLeft
		default:
			li.Just = JustifyRight
		}
		if li.Indented && li.Just == JustifyRight {
			li.Just = JustifyLeft
		}
		if li.Just == JustifyLeft {
			lefts++
		} else if li.Just == JustifyRight {
			rights++
		}

		if bl.RaggedRight {
			li.ShortLine = ro > raggedShortLineShare*float64(width)
		} else {
			li.ShortLine = ro > flushOffsetFraction*th
		}

		if i < n-1 {
			li.FontChange = fontChanged(row.FontSize(), bi.Rows[i+1].FontSize())
		}
	}

	switch {
	case bl.Centered:
		bl.Just = a.resolveJust(JustifyCenter)
	case rights > lefts:
		bl.Just = a.resolveJust(JustifyRight)
	default:
		bl.Just = a.resolveJust(JustifyLeft)
	}
	switch a.config.FullJustify {
	case ToggleOn:
		bl.FullJustify = true
	case ToggleOff:
		bl.FullJustify = false
	default:
		bl.FullJustify = !bl.RaggedRight && !bl.Centered
	}
	return bl
}

// strictlyCentered: both margins are significant and roughly equal.
func (a *Analyzer) strictlyCentered(li *LineInfo, th float64) bool {
	lo, ro := li.LeftOffset, li.RightOffset
	if float64(lo) <= centerOffsetFraction*th || float64(ro) <= centerOffsetFraction*th {
		return false
	}
	return float64(abs(lo-ro)) <= centerOffsetFraction*float64(max(lo, ro))
}

func (a *Analyzer) resolveJust(detected Justification) Justification {
	if a.config.Justification != JustifyAuto {
		return a.config.Justification
	}
	return detected
}

// plausibleRows returns the indices of rows that look like ordinary text:
// measured, not figure sized, and with a cap height near the median.
func (a *Analyzer) plausibleRows(rows []TextRow) []int {
	figH := a.px(figureMinHeightIn)
	var idx, caps []int
	for i, row := range rows {
		if row.CapHeight <= 0 || row.LCHeight <= 0 || row.Height() >= figH || row.Width() < row.Height() {
			continue
		}
		idx = append(idx, i)
		caps = append(caps, row.CapHeight)
	}
	if len(idx) == 0 {
		for i, row := range rows {
			if row.CapHeight > 0 && row.LCHeight > 0 {
				idx = append(idx, i)
			}
		}
		return idx
	}
	mc := float64(median(caps))
	out := idx[:0]
	for _, i := range idx {
		c := float64(rows[i].CapHeight)
		if c >= plausibleCapMinFactor*mc && c <= plausibleCapMaxFactor*mc {
			out = append(out, i)
		}
	}
	return out
}

func (a *Analyzer) sourceLineSpacing(rows []TextRow, plausible []int) int {
	var d []int
	for k := 1; k < len(plausible); k++ {
		i, j := plausible[k-1], plausible[k]
		if j != i+1 {
			continue
		}
		if s := rows[j].RowBase - rows[i].RowBase; s > 0 {
			d = append(d, s)
		}
	}
	return median(d)
}

// targetLineSpacing applies the vertical spacing policy: a negative setting
// caps the source spacing, a positive one forces a multiple of the font
// size.
func (a *Analyzer) targetLineSpacing(fontSize, source int) int {
	v := a.config.VerticalLineSpacing
	natural := int(float64(fontSize)*lineSpacingFactor + 0.5)
	if v > 0 {
		return max(int(v*float64(fontSize)+0.5), 1)
	}
	if source <= 0 {
		return natural
	}
	if v < 0 {
		if limit := int(-v*float64(fontSize)*lineSpacingFactor + 0.5); source > limit {
			return limit
		}
	}
	return source
}

func fontChanged(a, b int) bool {
	if a <= 0 || b <= 0 {
		return false
	}
	hi, lo := max(a, b), min(a, b)
	return float64(hi)/float64(lo) > fontChangeRatio
}

func median(v []int) int {
	if len(v) == 0 {
		return 0
	}
	s := append([]int(nil), v...)
	sort.Ints(s)
	return s[len(s)/2]
}
