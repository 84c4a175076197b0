package layout

// Block is a run of text rows separated from its neighbours by an unusually
// large vertical gap.
type Block struct {
	Region Region

	// Rows are the block's text rows with gaps relative to the block.
	Rows *BreakInfo

	// GapAfter is the source whitespace below the block, in pixels.
	GapAfter int
}

// minBreakGapIn is the smallest gap that may separate two blocks regardless
// of the median.
const minBreakGapIn = 0.02

// VerticalBlocks splits a region into blocks wherever the gap below a row
// exceeds the vertical break threshold times the median row gap. With the
// threshold disabled, or fewer than three rows, the region is one block.
// The region is trimmed.
func (a *Analyzer) VerticalBlocks(r *Region) []Block {
	bi := a.FindRows(r, -1)
	if len(bi.Rows) == 0 {
		return nil
	}

	n := len(bi.Rows)
	thresh := a.config.VerticalBreakThreshold
	breakAfter := make([]bool, n)
	if thresh > 0 && n > 2 {
		gaps := make([]int, 0, n-1)
		for _, row := range bi.Rows[:n-1] {
			gaps = append(gaps, row.Gap)
		}
		limit := max(int(thresh*float64(median(gaps))+0.5), a.px(minBreakGapIn))
		for i, row := range bi.Rows[:n-1] {
			breakAfter[i] = row.Gap > limit
		}
	}
	// Figures always stand alone.
	for i, row := range bi.Rows {
		if !a.IsFigure(row) {
			continue
		}
		breakAfter[i] = true
		if i > 0 {
			breakAfter[i-1] = true
		}
	}
	breakAfter[n-1] = true

	var blocks []Block
	first := 0
	for i := 0; i < n; i++ {
		if !breakAfter[i] {
			continue
		}
		rows := append([]TextRow(nil), bi.Rows[first:i+1]...)
		c1, c2 := rows[0].C1, rows[0].C2
		for _, row := range rows[1:] {
			c1 = min(c1, row.C1)
			c2 = max(c2, row.C2)
		}
		br := r.Sub(c1, rows[0].R1, c2, rows[len(rows)-1].R2)
		sub := &BreakInfo{Rows: rows}
		sub.ComputeRowGaps(br.R2)
		sub.MeanRowHeight = a.meanTextRowHeight(rows)

		gapAfter := 0
		if i < n-1 {
			gapAfter = bi.Rows[i+1].R1 - bi.Rows[i].R2 - 1
		}
		blocks = append(blocks, Block{Region: br, Rows: sub, GapAfter: gapAfter})
		first = i + 1
	}
	return blocks
}
