package model

// Word is one recognised word placed on an output page. Its box and
// baseline are in output page pixels.
type Word struct {
	Text string
	BBox BBox

	// Baseline is the Y coordinate of the text baseline.
	Baseline float64

	// LineHeight is the cap height plus lowercase height of the source row
	// the word came from, scaled to the page. The PDF text layer derives
	// its font size from it.
	LineHeight float64
}

// Translate returns the word moved by (dx, dy).
func (w Word) Translate(dx, dy float64) Word {
	w.BBox = w.BBox.Translate(dx, dy)
	w.Baseline += dy
	return w
}

// Scale returns the word with every coordinate multiplied by s.
func (w Word) Scale(s float64) Word {
	w.BBox = w.BBox.Scale(s)
	w.Baseline *= s
	w.LineHeight *= s
	return w
}
