package rasterize

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tsawler/reflow/bitmap"
	"github.com/tsawler/reflow/internal/filters"
)

// Resolution of a fine-mode fax page.
const (
	FaxDPIX = 204
	FaxDPIY = 196
)

// FaxSource is a single page of raw CCITT fax data.
type FaxSource struct {
	page *bitmap.Bitmap
}

// OpenFax decodes a raw fax file. Files ending in .g3 use Group 3 coding;
// all others are read as Group 4.
func OpenFax(path string) (*FaxSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fax: %w", err)
	}
	group4 := !strings.EqualFold(filepath.Ext(path), ".g3")
	return NewFaxSource(data, filters.FaxWidth, group4)
}

// NewFaxSource decodes fax data of the given line width.
func NewFaxSource(data []byte, columns int, group4 bool) (*FaxSource, error) {
	img, err := filters.FaxImage(data, columns, group4)
	if err != nil {
		return nil, err
	}
	if img.Bounds().Dy() == 0 {
		return nil, ErrNoPages
	}
	return &FaxSource{page: bitmap.FromImage(img, false)}, nil
}

// PageCount always returns 1.
func (s *FaxSource) PageCount() int {
	return 1
}

// Page returns the decoded page scaled to dpi.
func (s *FaxSource) Page(index int, dpi float64, color bool) (*bitmap.Bitmap, error) {
	if err := checkIndex(index, 1); err != nil {
		return nil, err
	}
	b := scaleToDPI(s.page, FaxDPIX, FaxDPIY, dpi)
	if b == s.page {
		b = b.Clone()
	}
	if color {
		c := bitmap.New(b.Width, b.Height, true)
		bitmap.Blit(c, 0, 0, b, 0, 0, b.Width-1, b.Height-1)
		b = c
	}
	return b, nil
}

// Close releases the decoded page.
func (s *FaxSource) Close() error {
	s.page = nil
	return nil
}
