package pages

// Config describes the output device and page composition.
type Config struct {
	// Width and Height of the device screen in pixels.
	Width  int
	Height int

	// DPI of the device screen.
	DPI int

	// Margins inside the device page, in inches.
	MarginLeft   float64
	MarginTop    float64
	MarginRight  float64
	MarginBottom float64

	// FitToPage controls breaks past the page height. 0 never exceeds the
	// text area; a positive value lets a page hold up to that percentage
	// more rows, shrunk to fit; a negative value allows any overflow.
	FitToPage int

	// Color keeps an RGB plane in the output pages.
	Color bool

	// CornerMarks draws a small dot in each page corner so readers that
	// auto-crop white borders leave the page size alone.
	CornerMarks bool

	// GoodBreakFraction is the blank run height, as a fraction of the
	// text width, that makes a preferred break.
	GoodBreakFraction float64

	// WhiteThreshold is the gray level at or above which a pixel is
	// background.
	WhiteThreshold int
}

// DefaultConfig returns a configuration for a 6" e-reader screen.
func DefaultConfig() Config {
	return Config{
		Width:             560,
		Height:            735,
		DPI:               167,
		MarginLeft:        0.02,
		MarginTop:         0.02,
		MarginRight:       0.02,
		MarginBottom:      0.02,
		GoodBreakFraction: 0.01,
		WhiteThreshold:    192,
	}
}

func (c Config) px(inches float64) int {
	return int(inches*float64(c.DPI) + 0.5)
}

// TextWidth returns the width of the area inside the margins in pixels.
func (c Config) TextWidth() int {
	return max(c.Width-c.px(c.MarginLeft)-c.px(c.MarginRight), 1)
}

// TextHeight returns the height of the area inside the margins in pixels.
func (c Config) TextHeight() int {
	return max(c.Height-c.px(c.MarginTop)-c.px(c.MarginBottom), 1)
}

// goodBreakRows is the minimum height of a preferred blank run.
func (c Config) goodBreakRows() int {
	return max(int(c.GoodBreakFraction*float64(c.TextWidth())+0.5), 1)
}

// overflowRows is the number of rows a page may hold past TextHeight, or
// -1 when unlimited.
func (c Config) overflowRows() int {
	switch {
	case c.FitToPage < 0:
		return -1
	case c.FitToPage == 0:
		return 0
	}
	return c.TextHeight() * c.FitToPage / 100
}
