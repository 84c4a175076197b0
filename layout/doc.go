// Package layout finds the structure of a rasterized page: margins, text
// rows, words, column pairs, paragraph justification and trailing hyphens.
//
// All analysis works on [Region] values, rectangular windows onto a
// grayscale [bitmap.Bitmap], and is driven by ink histograms: a pixel is
// ink when it is darker than the region's background threshold.
//
// # Analyzer
//
// The [Analyzer] owns the thresholds and reusable scratch buffers:
//
//	a := layout.NewAnalyzer()
//	r := a.Region(bmp)
//	a.Trim(&r, layout.TrimEdges|layout.TrimMetrics)
//
// Use [NewAnalyzerWithConfig] to change thresholds. Lengths in [Config] are
// in inches of the source page and are converted with the source DPI.
//
// # Operations
//
//   - [Analyzer.Trim] shrinks a region to its ink, ignoring specks smaller
//     than the defect size, and measures baseline and letter heights
//   - [Analyzer.FindRows] splits a region into text rows
//   - [Analyzer.FindWords] splits one text row into words
//   - [Analyzer.FindColumnDivider] looks for a whitespace shaft separating
//     two columns
//   - [Analyzer.VerticalBlocks] splits a column at unusually large gaps
//   - [Analyzer.AnalyzeJustification] classifies rows as indented, centred,
//     left or right aligned and derives the block's line spacing
//   - [Analyzer.DetectHyphen] recognises a hyphen ending a row
//
// # Concurrency
//
// An Analyzer reuses its scratch buffers between calls. Use one Analyzer per
// goroutine.
package layout
