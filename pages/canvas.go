package pages

import (
	"github.com/tsawler/reflow/bitmap"
	"github.com/tsawler/reflow/layout"
	"github.com/tsawler/reflow/model"
	"github.com/tsawler/reflow/ocr"
)

// growthFactor is how much the canvas grows when it runs out of rows.
const growthFactor = 1.4

// RegionAdd is one rectangle of a source bitmap to append to the canvas.
type RegionAdd struct {
	// Source holds the pixels; (C1,R1)-(C2,R2) is the inclusive rectangle.
	Source         *bitmap.Bitmap
	C1, R1, C2, R2 int

	// DPI is the resolution of Source.
	DPI float64

	// Scale overrides the source-to-canvas factor when positive. It is
	// still reduced when the region would not fit the canvas width.
	Scale float64

	// Just places the region when it is narrower than the canvas.
	Just layout.Justification

	// Words are word boxes in Source coordinates to recognize.
	Words []layout.TextRow
}

// Canvas is the growable bitmap that holds output rows waiting to be
// paginated.
type Canvas struct {
	Bitmap *bitmap.Bitmap

	// DPI of the canvas, equal to the device DPI.
	DPI int

	// Rows is the first unwritten row.
	Rows int

	// Published counts the pages taken from the canvas so far.
	Published int

	// TotalAppended counts every row ever appended. PublishedRows counts
	// the rows handed to pages.
	TotalAppended int
	PublishedRows int

	// WordCount counts the words registered in the overlay.
	WordCount int

	// Words holds recognized words in canvas coordinates.
	Words []model.Word

	// OCRFailures counts word boxes the recognizer returned an error for.
	OCRFailures int

	recognizer ocr.Recognizer
}

// NewCanvas returns an empty canvas as wide as the text area of cfg. rec may
// be nil to skip word recognition.
func NewCanvas(cfg Config, rec ocr.Recognizer) *Canvas {
	return &Canvas{
		Bitmap:     bitmap.New(cfg.TextWidth(), cfg.TextHeight()*3/2, cfg.Color),
		DPI:        cfg.DPI,
		recognizer: rec,
	}
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int {
	return c.Bitmap.Width
}

// ensure grows the bitmap so that n more rows fit after Rows.
func (c *Canvas) ensure(n int) {
	need := c.Rows + n
	if need <= c.Bitmap.Height {
		return
	}
	h := max(int(float64(c.Bitmap.Height)*growthFactor), need)
	c.Bitmap.Resize(h)
}

// AddGap appends blank rows for a gap of srcPixels at srcDPI and returns the
// number of canvas rows added.
func (c *Canvas) AddGap(srcPixels int, srcDPI float64) int {
	if srcPixels <= 0 || srcDPI <= 0 {
		return 0
	}
	n := int(float64(srcPixels)*float64(c.DPI)/srcDPI + 0.5)
	c.AddRows(n)
	return n
}

// AddRows appends n blank canvas rows.
func (c *Canvas) AddRows(n int) {
	if n <= 0 {
		return
	}
	c.ensure(n)
	c.Bitmap.FillRect(0, c.Rows, c.Bitmap.Width-1, c.Rows+n-1, bitmap.White)
	c.Rows += n
	c.TotalAppended += n
}

// AddRegion scales ra to the canvas resolution, places it according to its
// justification and registers its words. It returns the scale applied, or 0
// when the region is degenerate and nothing was added.
func (c *Canvas) AddRegion(ra RegionAdd) float64 {
	w, h := ra.C2-ra.C1+1, ra.R2-ra.R1+1
	if ra.Source == nil || w <= 0 || h <= 0 {
		return 0
	}

	scale := ra.Scale
	if scale <= 0 {
		scale = 1
		if ra.DPI > 0 {
			scale = float64(c.DPI) / ra.DPI
		}
	}
	if float64(w)*scale > float64(c.Width()) {
		scale = float64(c.Width()) / float64(w)
	}
	dw := max(int(float64(w)*scale+0.5), 1)
	dh := max(int(float64(h)*scale+0.5), 1)
	dw = min(dw, c.Width())

	src := ra.Source.Crop(ra.C1, ra.R1, ra.C2, ra.R2)
	if dw != w || dh != h {
		src = src.Scale(dw, dh)
	}

	x := 0
	switch ra.Just {
	case layout.JustifyCenter:
		x = (c.Width() - dw) / 2
	case layout.JustifyRight:
		x = c.Width() - dw
	}

	c.ensure(dh)
	top := c.Rows
	c.Bitmap.FillRect(0, top, c.Width()-1, top+dh-1, bitmap.White)
	bitmap.Blit(c.Bitmap, x, top, src, 0, 0, dw-1, dh-1)
	c.Rows += dh
	c.TotalAppended += dh

	c.registerWords(ra, scale, x, top)
	return scale
}

// registerWords recognizes every word box of ra and records the result in
// canvas coordinates. Boxes with no recognized text are dropped.
func (c *Canvas) registerWords(ra RegionAdd, scale float64, x, top int) {
	if c.recognizer == nil {
		return
	}
	for _, wb := range ra.Words {
		c1, r1 := max(wb.C1, ra.C1), max(wb.R1, ra.R1)
		c2, r2 := min(wb.C2, ra.C2), min(wb.R2, ra.R2)
		if c2 < c1 || r2 < r1 {
			continue
		}
		text, err := c.recognizer.Recognize(ra.Source.Crop(c1, r1, c2, r2).Image())
		if err != nil {
			c.OCRFailures++
			continue
		}
		if text == "" {
			continue
		}
		base := wb.RowBase
		if base < r1 || base > r2 {
			base = r2
		}
		box := model.NewBBoxFromPixels(c1-ra.C1, r1-ra.R1, c2-ra.C1, r2-ra.R1).Scale(scale)
		word := model.Word{
			Text:       text,
			BBox:       box.Translate(float64(x), float64(top)),
			Baseline:   float64(top) + float64(base-ra.R1+1)*scale,
			LineHeight: float64(r2-r1+1) * scale,
		}
		c.Words = append(c.Words, word)
		c.WordCount++
	}
}

// Consume removes the first n rows, shifting the rest up. Words above the
// cut are discarded and the others move with their rows.
func (c *Canvas) Consume(n int) {
	if n <= 0 {
		return
	}
	n = min(n, c.Rows)
	c.Bitmap.DropRows(n)
	c.Rows -= n

	kept := c.Words[:0]
	for _, w := range c.Words {
		if w.BBox.Top() < float64(n) {
			continue
		}
		kept = append(kept, w.Translate(0, -float64(n)))
	}
	c.Words = kept
}

// wordsAbove returns the words whose top lies above row n.
func (c *Canvas) wordsAbove(n int) []model.Word {
	var out []model.Word
	for _, w := range c.Words {
		if w.BBox.Top() < float64(n) {
			out = append(out, w)
		}
	}
	return out
}

// rowBlank reports whether canvas row y holds no ink.
func (c *Canvas) rowBlank(y, thresh int) bool {
	return bitmap.RowBlank(c.Bitmap, y, 0, c.Width()-1, thresh)
}
