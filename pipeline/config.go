package pipeline

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/tsawler/reflow/layout"
	"github.com/tsawler/reflow/ocr"
	"github.com/tsawler/reflow/pages"
	"github.com/tsawler/reflow/wrap"
)

// Margins are lengths in inches on each side of a page.
type Margins struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// Config aggregates the settings of every stage. It is read once by New
// and not consulted again, so it may be reused for other pipelines.
type Config struct {
	// Layout holds the analysis thresholds. Layout.DPI must match the
	// resolution the source pages are rasterized at.
	Layout layout.Config

	// Wrap controls line assembly.
	Wrap wrap.Config

	// Pages describes the output device.
	Pages pages.Config

	// SourceMargins are ignored on every source page, e.g. to drop running
	// heads and page numbers.
	// Default: none
	SourceMargins Margins

	// OCR recognizes the text of every output word. When Recognizer is nil
	// a Tesseract client is created, which fails unless built with -tags
	// ocr.
	// Default: false
	OCR bool

	// Recognizer is used when OCR is set.
	Recognizer ocr.Recognizer

	// MaxRegions bounds the number of regions the column search may
	// produce for one source page. The search stops with a warning when it
	// is reached.
	// Default: 500
	MaxRegions int

	// Logger receives diagnostics. Default: a logger that discards
	// everything.
	Logger logrus.FieldLogger
}

// DefaultConfig returns the defaults of every stage.
func DefaultConfig() Config {
	return Config{
		Layout:     layout.DefaultConfig(),
		Wrap:       wrap.DefaultConfig(),
		Pages:      pages.DefaultConfig(),
		MaxRegions: 500,
	}
}

// discardLogger returns a logger that writes nowhere.
func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
