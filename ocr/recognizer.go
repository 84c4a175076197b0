package ocr

import (
	"errors"
	"image"
)

// ErrOCRNotEnabled is returned when OCR functions are called but OCR support
// was not compiled in. Rebuild with -tags ocr to enable OCR support.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Recognizer turns the image of a single word into text. The canvas calls
// it once per word box when OCR is enabled.
type Recognizer interface {
	Recognize(img image.Image) (string, error)
}

// RecognizerFunc adapts an ordinary function to the Recognizer interface.
type RecognizerFunc func(img image.Image) (string, error)

// Recognize calls f(img).
func (f RecognizerFunc) Recognize(img image.Image) (string, error) {
	return f(img)
}

// PageSegMode represents page segmentation modes for OCR.
// These control how Tesseract analyzes the page layout.
type PageSegMode int

// Page segmentation modes, numbered as Tesseract numbers them.
const (
	PSM_OSD_ONLY               PageSegMode = 0  // Orientation and script detection only
	PSM_AUTO_OSD               PageSegMode = 1  // Automatic with OSD
	PSM_AUTO_ONLY              PageSegMode = 2  // Automatic, no OSD or OCR
	PSM_AUTO                   PageSegMode = 3  // Fully automatic (default)
	PSM_SINGLE_COLUMN          PageSegMode = 4  // Single column of variable sizes
	PSM_SINGLE_BLOCK_VERT_TEXT PageSegMode = 5  // Single uniform block of vertically aligned text
	PSM_SINGLE_BLOCK           PageSegMode = 6  // Single uniform block of text
	PSM_SINGLE_LINE            PageSegMode = 7  // Single text line
	PSM_SINGLE_WORD            PageSegMode = 8  // Single word
	PSM_CIRCLE_WORD            PageSegMode = 9  // Single word in a circle
	PSM_SINGLE_CHAR            PageSegMode = 10 // Single character
	PSM_SPARSE_TEXT            PageSegMode = 11 // Find as much text as possible
	PSM_SPARSE_TEXT_OSD        PageSegMode = 12 // Sparse text with OSD
	PSM_RAW_LINE               PageSegMode = 13 // Treat image as single text line
)

// Config holds the recognition settings applied when a client is created.
type Config struct {
	// Language is one or more Tesseract language codes joined by "+".
	// Default: "eng"
	Language string

	// PageSegMode tells Tesseract what kind of image it is given.
	// Default: PSM_SINGLE_WORD, since the canvas hands over one word at a time.
	PageSegMode PageSegMode
}

// DefaultConfig returns the settings used by New.
func DefaultConfig() Config {
	return Config{
		Language:    "eng",
		PageSegMode: PSM_SINGLE_WORD,
	}
}
