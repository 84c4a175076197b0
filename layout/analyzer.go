package layout

import (
	"github.com/tsawler/reflow/bitmap"
)

// Analyzer runs the layout heuristics over regions of a source bitmap. It
// owns scratch buffers, so a single Analyzer must not be shared between
// goroutines.
type Analyzer struct {
	config  Config
	scratch Scratch
}

// NewAnalyzer creates an analyzer with default thresholds.
func NewAnalyzer() *Analyzer {
	return &Analyzer{config: DefaultConfig()}
}

// NewAnalyzerWithConfig creates an analyzer with custom thresholds.
func NewAnalyzerWithConfig(config Config) *Analyzer {
	if config.DPI <= 0 {
		config.DPI = DefaultConfig().DPI
	}
	if config.WhiteThreshold <= 0 {
		config.WhiteThreshold = DefaultConfig().WhiteThreshold
	}
	return &Analyzer{config: config}
}

// Config returns the analyzer's thresholds.
func (a *Analyzer) Config() Config {
	return a.config
}

// Region returns a region covering the whole bitmap, using the configured
// background threshold.
func (a *Analyzer) Region(b *bitmap.Bitmap) Region {
	return NewRegion(b, a.config.WhiteThreshold)
}

func (a *Analyzer) px(inches float64) int {
	return a.config.Pixels(inches)
}

// IsFigure reports whether a row looks like a picture rather than a line of
// text and so must never be re-wrapped.
func (a *Analyzer) IsFigure(row TextRow) bool {
	h := row.Height()
	w := row.Width()
	if w <= 0 || h <= 0 {
		return false
	}
	if h < a.px(a.config.NoWrapHeightIn) {
		return false
	}
	return float64(h)/float64(w) >= a.config.NoWrapAspectRatio
}
