// Package wrap re-flows text rows into lines of a new width.
//
// A text row is cut into words by the layout analyzer and the words are
// appended, one at a time, to a [Buffer] that holds the output line under
// construction. When the next word would not fit in the configured width the
// buffer is flushed to a [Target] (normally a *pages.Canvas) and a new line
// starts with that word. A line never refuses its first word, so a single
// word wider than the line is emitted on its own.
//
// Hyphens found at the end of a row are handled specially: the gap to the
// next word is always zero and the hyphen is erased when a word is joined
// after it, so "recon-" followed by "struct" becomes "reconstruct". A
// hyphen left at the end of an output line is kept.
//
//	engine := wrap.NewEngine(wrap.DefaultConfig(), analyzer, canvas, &state, 300)
//	for i := range rows.Rows {
//	    engine.AddRow(&rowRegions[i], block.Lines[i], block)
//	}
//	engine.EndBlock(gapBelow)
//
// Lines flushed because they were full may be fully justified: the widest
// inter-word gaps are stretched until the line reaches the target width.
package wrap
