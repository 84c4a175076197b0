package rasterize

import (
	"errors"
	"fmt"
	"os"

	"github.com/tsawler/reflow/bitmap"
	"github.com/tsawler/reflow/format"
	"github.com/tsawler/reflow/model"
)

var (
	// ErrUnsupportedFormat is returned for inputs no rasterizer can handle.
	ErrUnsupportedFormat = errors.New("rasterize: unsupported format")

	// ErrPageRange is returned when a page index is outside the source.
	ErrPageRange = errors.New("rasterize: page index out of range")

	// ErrNoPages is returned when a source holds no pages.
	ErrNoPages = errors.New("rasterize: source has no pages")

	// ErrFitzNotEnabled is returned when a document needs MuPDF but the
	// package was built without the fitz tag.
	ErrFitzNotEnabled = errors.New("document rendering not enabled: build with -tags fitz")
)

// Source is a paged document that can be rendered to bitmaps.
type Source interface {
	// PageCount returns the number of pages.
	PageCount() int

	// Page renders the zero-based page index at dpi. When color is false
	// the returned bitmap has no RGB plane.
	Page(index int, dpi float64, color bool) (*bitmap.Bitmap, error)

	// Close releases any resources held by the source.
	Close() error
}

// MetadataSource is implemented by sources that carry document metadata.
type MetadataSource interface {
	Metadata() model.Metadata
}

// Open selects a rasterizer for path. Directories are treated as a sequence
// of page images in name order.
func Open(path string) (Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open source: %w", err)
	}
	if info.IsDir() {
		return OpenDir(path)
	}

	f := format.Detect(path)
	if f == format.Unknown {
		f, err = sniff(path)
		if err != nil {
			return nil, err
		}
	}

	switch {
	case f.IsImage():
		return NewImageSource(path)
	case f == format.Fax:
		return OpenFax(path)
	case f == format.DJVU:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
	case f.IsDocument():
		return openDocument(path)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// sniff detects the format of a file whose extension is not recognized.
func sniff(path string) (format.Format, error) {
	file, err := os.Open(path)
	if err != nil {
		return format.Unknown, fmt.Errorf("failed to open source: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return format.Unknown, fmt.Errorf("failed to stat source: %w", err)
	}
	f, err := format.DetectFromReader(file, info.Size())
	if err != nil {
		return format.Unknown, fmt.Errorf("failed to detect format: %w", err)
	}
	return f, nil
}

// scaleToDPI resamples b, captured at srcX by srcY dots per inch, to dpi.
// Differences under one percent are ignored.
func scaleToDPI(b *bitmap.Bitmap, srcX, srcY, dpi float64) *bitmap.Bitmap {
	if dpi <= 0 || srcX <= 0 || srcY <= 0 {
		return b
	}
	sx, sy := dpi/srcX, dpi/srcY
	if abs(sx-1) < 0.01 && abs(sy-1) < 0.01 {
		return b
	}
	w := int(float64(b.Width)*sx + 0.5)
	h := int(float64(b.Height)*sy + 0.5)
	return b.Scale(max(w, 1), max(h, 1))
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func checkIndex(index, count int) error {
	if index < 0 || index >= count {
		return fmt.Errorf("%w: %d of %d", ErrPageRange, index, count)
	}
	return nil
}
