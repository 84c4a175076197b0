package wrap

// State is the running output state carried from one emitted line to the
// next across regions, blocks and columns of a page.
type State struct {
	// LastScale is the source-to-canvas scale of the last region added to
	// the current block, 0 at a block boundary. Rows copied without
	// wrapping continue at this scale so a block shrunk to fit the canvas
	// keeps one text size.
	LastScale float64

	// HasLine is set once anything has been emitted.
	HasLine bool

	// LastDescent is the number of source rows below the baseline of the
	// last emitted line.
	LastDescent int

	// LineSpacing is the baseline spacing of the wrapped block in
	// progress, 0 when the next line starts a new block.
	LineSpacing int

	// PendingGap is whitespace, in source pixels, owed before the next
	// output line.
	PendingGap int

	// FontChange is set when the last row ended on a font size change.
	FontChange bool
}
