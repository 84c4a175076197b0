package pages

import (
	"testing"

	"github.com/tsawler/reflow/bitmap"
)

// inkRows fills canvas rows [r1, r2] with a dark band across most of the
// width, leaving the outermost columns white.
func inkRows(c *Canvas, r1, r2 int) {
	c.Bitmap.FillRect(5, r1, c.Width()-6, r2, 0)
}

func newFilledCanvas(cfg Config, rows int) *Canvas {
	c := NewCanvas(cfg, nil)
	c.AddRows(rows)
	return c
}

func darkPixels(b *bitmap.Bitmap) int {
	return bitmap.DarkCount(b, 0, 0, b.Width-1, b.Height-1, 192, -1)
}

func TestBreakPointPrefersBlankRun(t *testing.T) {
	cfg := testConfig()
	c := newFilledCanvas(cfg, 500)
	inkRows(c, 0, 389)
	inkRows(c, 410, 499)

	bp := NewPaginator(cfg).BreakPoint(c, 400)
	if bp < 390 || bp > 410 {
		t.Errorf("Expected break in [390, 410], got %d", bp)
	}
}

func TestBreakPointChoosesLowestRunUnderLimit(t *testing.T) {
	cfg := testConfig()
	c := newFilledCanvas(cfg, 500)
	// Text lines 12 rows tall with 3 blank rows between them, and a
	// paragraph gap at 117-149 too far up the page to be preferred.
	for y := 0; y < 500; y += 15 {
		if y >= 120 && y < 150 {
			continue
		}
		inkRows(c, y, min(y+11, 499))
	}

	bp := NewPaginator(cfg).BreakPoint(c, 400)
	if bp > 400 {
		t.Fatalf("Expected a break within the page, got %d", bp)
	}
	if !c.rowBlank(bp-1, 192) {
		t.Errorf("Expected the page to end on a blank row, got %d", bp)
	}
	if bp < 380 {
		t.Errorf("Expected the lowest small gap near 400 to win over the far paragraph gap, got %d", bp)
	}
}

func TestBreakPointHardCutAndOverflow(t *testing.T) {
	cfg := testConfig()
	c := newFilledCanvas(cfg, 500)
	inkRows(c, 0, 449)

	if bp := NewPaginator(cfg).BreakPoint(c, 400); bp != 400 {
		t.Errorf("Expected a hard cut at 400, got %d", bp)
	}

	cfg.FitToPage = -1
	if bp := NewPaginator(cfg).BreakPoint(c, 400); bp != 450 {
		t.Errorf("Expected overflow to the blank run at 450, got %d", bp)
	}

	cfg.FitToPage = 10
	if bp := NewPaginator(cfg).BreakPoint(c, 400); bp != 440 {
		t.Errorf("Expected a hard cut at the 10%% overflow limit, got %d", bp)
	}
}

func TestBreakPointShortCanvas(t *testing.T) {
	cfg := testConfig()
	c := newFilledCanvas(cfg, 120)
	if bp := NewPaginator(cfg).BreakPoint(c, 400); bp != 120 {
		t.Errorf("Expected the whole canvas, got %d", bp)
	}
}

func TestPublishConservesRows(t *testing.T) {
	cfg := testConfig()
	c := NewCanvas(cfg, nil)
	for i := 0; i < 60; i++ {
		c.AddRows(7)
		start := c.Rows
		c.AddRows(13 + i%5)
		inkRows(c, start, c.Rows-1)
	}
	appendedInk := darkPixels(c.Bitmap)
	p := NewPaginator(cfg)

	pages := p.Publish(c, false)
	if len(pages) == 0 {
		t.Fatal("Expected full pages to be published")
	}
	if c.Rows > cfg.TextHeight() {
		t.Errorf("Expected at most a page of rows left, got %d", c.Rows)
	}
	if c.PublishedRows+c.Rows != c.TotalAppended {
		t.Errorf("Expected %d published + %d waiting = %d", c.PublishedRows, c.Rows, c.TotalAppended)
	}

	pages = append(pages, p.Publish(c, true)...)
	if c.Rows != 0 {
		t.Errorf("Expected an empty canvas after the final publish, got %d", c.Rows)
	}
	if c.PublishedRows != c.TotalAppended {
		t.Errorf("Expected all %d rows published, got %d", c.TotalAppended, c.PublishedRows)
	}

	pageInk := 0
	for i, pg := range pages {
		if pg.Number != i+1 {
			t.Errorf("Expected page %d to be numbered %d, got %d", i, i+1, pg.Number)
		}
		if pg.Width() != cfg.Width || pg.Height() != cfg.Height {
			t.Errorf("Expected %dx%d page, got %dx%d", cfg.Width, cfg.Height, pg.Width(), pg.Height())
		}
		pageInk += darkPixels(pg.Image)
	}
	if pageInk != appendedInk {
		t.Errorf("Expected %d ink pixels across pages, got %d", appendedInk, pageInk)
	}
	if c.Published != len(pages) {
		t.Errorf("Expected %d published pages, got %d", len(pages), c.Published)
	}
}

func TestPublishMarginsAndCornerMarks(t *testing.T) {
	cfg := testConfig()
	cfg.MarginLeft = 0.2
	cfg.MarginTop = 0.1
	cfg.CornerMarks = true
	c := NewCanvas(cfg, nil)
	c.AddRows(20)
	c.Bitmap.FillRect(0, 0, 0, 0, 0)

	pages := NewPaginator(cfg).Publish(c, true)
	if len(pages) != 1 {
		t.Fatalf("Expected one page, got %d", len(pages))
	}
	img := pages[0].Image
	if img.GrayAt(30, 15) != 0 {
		t.Error("Expected the canvas origin to land at the margins")
	}
	if img.GrayAt(cfg.Width-1, cfg.Height-1) != 0 || img.GrayAt(0, 0) != 0 {
		t.Error("Expected corner marks")
	}
}
