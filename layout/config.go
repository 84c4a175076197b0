package layout

import (
	"github.com/tsawler/reflow/text"
)

// Justification is the horizontal placement of an output line.
type Justification int

const (
	// JustifyAuto follows whatever the source line looks like.
	JustifyAuto Justification = iota
	JustifyLeft
	JustifyCenter
	JustifyRight
)

// String returns a string representation of the justification
func (j Justification) String() string {
	switch j {
	case JustifyLeft:
		return "left"
	case JustifyCenter:
		return "center"
	case JustifyRight:
		return "right"
	default:
		return "auto"
	}
}

// Toggle is a tri-state on/off/auto setting.
type Toggle int

const (
	ToggleAuto Toggle = iota
	ToggleOff
	ToggleOn
)

// Config holds the thresholds the layout heuristics run with. All lengths
// are in inches of the source page unless the name says otherwise.
type Config struct {
	// DPI is the resolution the source bitmap was rasterized at.
	// Default: 300
	DPI int

	// WhiteThreshold is the gray level at or above which a pixel counts
	// as background.
	// Default: 192
	WhiteThreshold int

	// DefectSizePts is the diameter, in points, below which isolated ink
	// is treated as noise while trimming margins.
	// Default: 0.75
	DefectSizePts float64

	// RowGapThreshold is the number of dark pixels a row may hold per
	// pixel of its width before it stops counting as blank. It is a ratio
	// and does not depend on the DPI.
	// Default: 0.006
	RowGapThreshold float64

	// ColumnGapThreshold is the number of dark pixels a column divider
	// may hold per pixel of its height. Like RowGapThreshold it is a ratio.
	// Default: 0.005
	ColumnGapThreshold float64

	// WordGapThresholdIn is the ink allowed in a column between two words,
	// in inches. Unlike the row and column ratios it scales with the DPI.
	// Default: 0.0015
	WordGapThresholdIn float64

	// ColumnRowGapHeightIn is the fixed smoothing aperture used when rows
	// are segmented for the column search.
	// Default: 1/72
	ColumnRowGapHeightIn float64

	// MinColumnGapIn is the narrowest whitespace shaft accepted as a
	// column divider.
	// Default: 0.1
	MinColumnGapIn float64

	// MaxColumnGapIn is the widest gap allowed between two trimmed columns.
	// Default: 1.5
	MaxColumnGapIn float64

	// MinColumnHeightIn is the minimum height of each column of a pair.
	// Default: 1.5
	MinColumnHeightIn float64

	// ColumnGapRange is the fraction of the region width, centred on the
	// middle, searched for a divider.
	// Default: 0.33
	ColumnGapRange float64

	// ColumnOffsetMax is the fraction of the region width a divider may
	// drift and still continue the same two-column thread.
	// Default: 0.2
	ColumnOffsetMax float64

	// MaxColumns is 1, 2 or 4; larger values are treated as 4.
	// Default: 2
	MaxColumns int

	// WordSpacing is the minimum word gap as a fraction of the lowercase
	// letter height.
	// Default: 0.375
	WordSpacing float64

	// HyphenDetect enables trailing hyphen detection.
	// Default: true
	HyphenDetect bool

	// Direction is the reading direction of the source text.
	// Default: text.LTR
	Direction text.Direction

	// VerticalLineSpacing caps (negative) or forces (positive) the output
	// line spacing as a multiple of the font size.
	// Default: -1.2
	VerticalLineSpacing float64

	// VerticalBreakThreshold splits a column into blocks wherever a row gap
	// exceeds this multiple of the median gap. Zero or less disables it.
	// Default: 1.75
	VerticalBreakThreshold float64

	// MaxVerticalGapIn caps the whitespace copied between blocks.
	// Default: 0.25
	MaxVerticalGapIn float64

	// Justification overrides the detected line justification.
	// Default: JustifyAuto
	Justification Justification

	// FullJustify controls stretching of wrapped lines to both margins.
	// Default: ToggleAuto
	FullJustify Toggle

	// NoWrapAspectRatio and NoWrapHeightIn describe rows that look like
	// figures (taller than wide enough and tall enough); those rows are
	// never re-wrapped.
	// Default: 0.2 and 0.55
	NoWrapAspectRatio float64
	NoWrapHeightIn    float64
}

// DefaultConfig returns the thresholds tuned for 300 dpi scans of
// ordinary book and journal pages.
func DefaultConfig() Config {
	return Config{
		DPI:                    300,
		WhiteThreshold:         192,
		DefectSizePts:          0.75,
		RowGapThreshold:        0.006,
		ColumnGapThreshold:     0.005,
		WordGapThresholdIn:     0.0015,
		ColumnRowGapHeightIn:   1.0 / 72.0,
		MinColumnGapIn:         0.1,
		MaxColumnGapIn:         1.5,
		MinColumnHeightIn:      1.5,
		ColumnGapRange:         0.33,
		ColumnOffsetMax:        0.2,
		MaxColumns:             2,
		WordSpacing:            0.375,
		HyphenDetect:           true,
		Direction:              text.LTR,
		VerticalLineSpacing:    -1.2,
		VerticalBreakThreshold: 1.75,
		MaxVerticalGapIn:       0.25,
		Justification:          JustifyAuto,
		FullJustify:            ToggleAuto,
		NoWrapAspectRatio:      0.2,
		NoWrapHeightIn:         0.55,
	}
}

// Pixels converts a length in source inches to pixels, rounding to nearest.
func (c Config) Pixels(inches float64) int {
	return int(inches*float64(c.DPI) + 0.5)
}

// NormalizedMaxColumns maps the configured column count onto the supported
// set: anything above 2 becomes 4, anything below 1 becomes 1.
func (c Config) NormalizedMaxColumns() int {
	switch {
	case c.MaxColumns <= 1:
		return 1
	case c.MaxColumns == 2:
		return 2
	default:
		return 4
	}
}
