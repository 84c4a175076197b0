package pages

import (
	"github.com/tsawler/reflow/bitmap"
	"github.com/tsawler/reflow/model"
)

// goodBreakNearFraction bounds how far above the page limit a preferred
// break may lie, as a fraction of the limit.
const goodBreakNearFraction = 0.75

// Paginator cuts a canvas into device pages.
type Paginator struct {
	config Config
}

// NewPaginator returns a paginator for cfg.
func NewPaginator(cfg Config) *Paginator {
	if cfg.WhiteThreshold <= 0 {
		cfg.WhiteThreshold = 192
	}
	return &Paginator{config: cfg}
}

// Config returns the paginator configuration.
func (p *Paginator) Config() Config {
	return p.config
}

// breakCandidates tracks the best breaks on each side of the limit.
type breakCandidates struct {
	goodUnder, anyUnder int // largest break <= limit
	goodOver, anyOver   int // smallest break > limit
}

// BreakPoint returns the row at which to end the next page. Breaks land in
// blank runs after the first ink; the preference order is the lowest
// preferred run within the page (if it reaches the bottom quarter), then
// the lowest run of any size within the page, then the first preferred run
// past maxRows, then the first run of any size past it. Runs past maxRows
// are only scanned when FitToPage allows an overflow. With no run at all
// the page is cut at the scan height.
func (p *Paginator) BreakPoint(c *Canvas, maxRows int) int {
	if c.Rows <= maxRows {
		return c.Rows
	}
	scan := maxRows
	switch over := p.config.overflowRows(); {
	case over < 0:
		scan = c.Rows
	case over > 0:
		scan = min(maxRows+over, c.Rows)
	}

	good := p.config.goodBreakRows()
	cand := breakCandidates{goodUnder: -1, anyUnder: -1, goodOver: -1, anyOver: -1}

	// A break is only considered after some content, so a page never
	// starts and ends in the same blank run.
	ink := false
	for r := 0; r <= scan && r < c.Rows; {
		if !c.rowBlank(r, p.config.WhiteThreshold) {
			ink = true
			r++
			continue
		}
		start := r
		for r < c.Rows && c.rowBlank(r, p.config.WhiteThreshold) {
			r++
		}
		end := r - 1
		if !ink {
			continue
		}
		isGood := end-start+1 >= good
		if start <= maxRows {
			bp := min(end+1, maxRows)
			cand.anyUnder = bp
			if isGood {
				cand.goodUnder = bp
			}
			continue
		}
		if start > scan {
			break
		}
		if cand.anyOver < 0 {
			cand.anyOver = start
		}
		if isGood && cand.goodOver < 0 {
			cand.goodOver = start
		}
	}

	switch {
	case cand.goodUnder >= 0 && float64(cand.goodUnder) >= goodBreakNearFraction*float64(maxRows):
		return cand.goodUnder
	case cand.anyUnder > 0:
		return cand.anyUnder
	case cand.goodOver > 0:
		return cand.goodOver
	case cand.anyOver > 0:
		return cand.anyOver
	}
	return scan
}

// Publish renders finished pages from the top of c. Without final it only
// publishes while more than a page of rows is waiting; with final it also
// emits the remainder.
func (p *Paginator) Publish(c *Canvas, final bool) []*model.Page {
	limit := p.config.TextHeight()
	var pages []*model.Page
	for c.Rows > limit || (final && c.Rows > 0) {
		bp := p.BreakPoint(c, limit)
		if bp <= 0 {
			bp = min(limit, c.Rows)
		}
		pages = append(pages, p.render(c, bp))
		c.PublishedRows += bp
		c.Consume(bp)
	}
	return pages
}

// render copies the first rows of c into a device-sized page.
func (p *Paginator) render(c *Canvas, rows int) *model.Page {
	cfg := p.config
	img := bitmap.New(cfg.Width, cfg.Height, cfg.Color)
	ml, mt := cfg.px(cfg.MarginLeft), cfg.px(cfg.MarginTop)

	content := c.Bitmap
	scale := 1.0
	if rows > cfg.TextHeight() {
		scale = float64(cfg.TextHeight()) / float64(rows)
		w := max(int(float64(c.Width())*scale+0.5), 1)
		content = c.Bitmap.Crop(0, 0, c.Width()-1, rows-1).Scale(w, cfg.TextHeight())
		rows = cfg.TextHeight()
	}
	// Shrunk content stays centred horizontally.
	dx := ml + (cfg.TextWidth()-content.Width)/2
	if content == c.Bitmap {
		dx = ml
	}
	bitmap.Blit(img, dx, mt, content, 0, 0, content.Width-1, rows-1)

	if cfg.CornerMarks {
		drawCornerMarks(img)
	}

	c.Published++
	page := model.NewPage(img, cfg.DPI)
	page.Number = c.Published
	for _, w := range c.wordsAbove(int(float64(rows)/scale + 0.5)) {
		page.AddWord(w.Scale(scale).Translate(float64(dx), float64(mt)))
	}
	return page
}

// drawCornerMarks darkens a single pixel in each corner of img.
func drawCornerMarks(img *bitmap.Bitmap) {
	x2, y2 := img.Width-1, img.Height-1
	for _, pt := range [4][2]int{{0, 0}, {x2, 0}, {0, y2}, {x2, y2}} {
		img.SetGray(pt[0], pt[1], 0)
	}
}
