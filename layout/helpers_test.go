package layout

import (
	"testing"

	"github.com/tsawler/reflow/bitmap"
)

// Synthetic glyph geometry used throughout the layout tests.
const (
	testLC  = 30
	testCap = 44
)

// drawLine draws a line of synthetic words between x1 and x2 and returns the
// last inked column. Letters are 6 px wide on an 8 px pitch, five to a word,
// with 16 px between words; every third letter has an ascender.
func drawLine(b *bitmap.Bitmap, x1, x2, baseline, lc, capHeight int) int {
	x, last, k := x1, -1, 0
	for x+5 <= x2 {
		b.FillRect(x, baseline-lc+1, x+5, baseline, 0)
		if k%3 == 0 {
			b.FillRect(x, baseline-capHeight+1, x+1, baseline-lc, 0)
		}
		last = x + 5
		k++
		if k%5 == 0 {
			x += 22
		} else {
			x += 8
		}
	}
	return last
}

// newTestAnalyzer returns an analyzer with default thresholds at 300 dpi.
func newTestAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	a := NewAnalyzer()
	if a.Config().DPI != 300 {
		t.Fatalf("Expected default DPI 300, got %d", a.Config().DPI)
	}
	return a
}
