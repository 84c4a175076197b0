package layout

import (
	"image"

	"github.com/tsawler/reflow/bitmap"
)

// Region is a rectangular window onto a source bitmap. Bounds are inclusive
// pixel coordinates. The metrics fields are only meaningful after a Trim
// with TrimMetrics; until then they are -1.
type Region struct {
	Bitmap *bitmap.Bitmap

	C1, R1 int
	C2, R2 int

	// RowBase is the baseline row (absolute bitmap row).
	RowBase int

	// CapHeight and LCHeight are the capital and lowercase letter heights
	// in pixels, measured up from RowBase.
	CapHeight int
	LCHeight  int

	// H5050 is the height of the band holding the densest ink.
	H5050 int

	// BGColor is the gray threshold: pixels darker than this are ink.
	BGColor int

	Hyphen Hyphen
}

// NewRegion returns a region covering the whole bitmap.
func NewRegion(b *bitmap.Bitmap, bgcolor int) Region {
	r := Region{
		Bitmap:  b,
		C1:      0,
		R1:      0,
		C2:      b.Width - 1,
		R2:      b.Height - 1,
		BGColor: bgcolor,
	}
	r.resetMetrics()
	return r
}

// Width returns the number of columns in the region.
func (r Region) Width() int {
	return r.C2 - r.C1 + 1
}

// Height returns the number of rows in the region.
func (r Region) Height() int {
	return r.R2 - r.R1 + 1
}

// Empty reports whether the region has no pixels.
func (r Region) Empty() bool {
	return r.Bitmap == nil || r.C2 < r.C1 || r.R2 < r.R1
}

// Rect returns the bounds as an image.Rectangle (exclusive max).
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.C1, r.R1, r.C2+1, r.R2+1)
}

// Sub returns a region of the same bitmap with new bounds and cleared
// metrics. Bounds are clipped to the bitmap.
func (r Region) Sub(c1, r1, c2, r2 int) Region {
	s := Region{
		Bitmap:  r.Bitmap,
		C1:      max(c1, 0),
		R1:      max(r1, 0),
		C2:      c2,
		R2:      r2,
		BGColor: r.BGColor,
	}
	if r.Bitmap != nil {
		s.C2 = min(c2, r.Bitmap.Width-1)
		s.R2 = min(r2, r.Bitmap.Height-1)
	}
	s.resetMetrics()
	return s
}

func (r *Region) resetMetrics() {
	r.RowBase = -1
	r.CapHeight = -1
	r.LCHeight = -1
	r.H5050 = -1
	r.Hyphen = Hyphen{}
}

// HasMetrics reports whether baseline and letter heights have been measured.
func (r Region) HasMetrics() bool {
	return r.RowBase >= 0 && r.LCHeight > 0
}

// Hyphen records a trailing hyphen found on a text row. Columns are absolute.
type Hyphen struct {
	Found bool

	// Ch is the hyphen column nearest the preceding text.
	Ch int

	// C2 is the edge of the word text the hyphen follows. When the hyphen
	// is erased the row ends here.
	C2 int

	// R1 and R2 are the hyphen's top and bottom rows.
	R1, R2 int
}

// PageRegion is one output region of the column search. FullWidth regions
// span the whole parent; the others are one half of a column pair.
type PageRegion struct {
	Region
	FullWidth bool
}
