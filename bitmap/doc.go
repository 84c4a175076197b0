// Package bitmap provides the pixel buffers the reflow engine analyzes and
// composes, plus the ink histogram primitive every layout heuristic is
// built on.
//
// # Bitmaps
//
// A [Bitmap] always carries an 8-bit gray plane; colour sources also keep
// an RGB plane that is copied alongside the gray plane but never analyzed:
//
//	b := bitmap.FromImage(img, false)
//	line := b.Crop(c1, r1, c2, r2)
//	half := line.Scale(line.Width/2, line.Height/2)
//
// # Histograms
//
// [Histogram] counts, per column and per row, the pixels darker than a
// threshold inside an inclusive rectangle:
//
//	cols := make([]int, c2-c1+1)
//	rows := make([]int, r2-r1+1)
//	bitmap.Histogram(b, c1, r1, c2, r2, 192, cols, rows)
package bitmap
