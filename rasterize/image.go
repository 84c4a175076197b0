package rasterize

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/tsawler/reflow/bitmap"
	"github.com/tsawler/reflow/format"
)

// DefaultImageDPI is the resolution assumed for page images, which rarely
// record a trustworthy one.
const DefaultImageDPI = 300

// ImageSource serves one page per image file.
type ImageSource struct {
	// Files are the page images in page order.
	Files []string

	// DPI is the resolution the images were scanned at.
	DPI float64
}

// NewImageSource returns a single-page source for one image file.
func NewImageSource(path string) (*ImageSource, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	return &ImageSource{Files: []string{path}, DPI: DefaultImageDPI}, nil
}

// OpenDir returns a source over every image file in dir, sorted by name.
func OpenDir(dir string) (*ImageSource, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !format.Detect(e.Name()).IsImage() {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoPages, dir)
	}
	sort.Strings(files)
	return &ImageSource{Files: files, DPI: DefaultImageDPI}, nil
}

// PageCount returns the number of image files.
func (s *ImageSource) PageCount() int {
	return len(s.Files)
}

// Page decodes the image for index and scales it from the source DPI to dpi.
func (s *ImageSource) Page(index int, dpi float64, color bool) (*bitmap.Bitmap, error) {
	if err := checkIndex(index, len(s.Files)); err != nil {
		return nil, err
	}
	img, err := decodeFile(s.Files[index])
	if err != nil {
		return nil, err
	}
	src := s.DPI
	if src <= 0 {
		src = DefaultImageDPI
	}
	return scaleToDPI(bitmap.FromImage(img, color), src, src, dpi), nil
}

// Close is a no-op; files are opened per page.
func (s *ImageSource) Close() error {
	return nil
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}
	return img, nil
}
