package pipeline

import (
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/tsawler/reflow/bitmap"
	"github.com/tsawler/reflow/model"
	"github.com/tsawler/reflow/ocr"
	"github.com/tsawler/reflow/pages"
	"github.com/tsawler/reflow/text"
)

// drawWords draws n words of the given letter count starting at x: letters
// 6 px wide on an 8 px pitch, 16 px between words, lowercase height 20 and
// an ascender on every third letter. It returns the last inked column.
func drawWords(b *bitmap.Bitmap, x, baseline, n, letters int) int {
	last := -1
	for w := 0; w < n; w++ {
		for k := 0; k < letters; k++ {
			b.FillRect(x, baseline-19, x+5, baseline, 0)
			if k%3 == 0 {
				b.FillRect(x, baseline-29, x+1, baseline-20, 0)
			}
			last = x + 5
			x += 8
		}
		x += 14
	}
	return last
}

// twoColumnPage returns a 300 dpi page with 21 rows in each of two columns.
// Left column words have five letters, right column words three.
func twoColumnPage() *bitmap.Bitmap {
	b := bitmap.New(1000, 1400, false)
	for y := 100; y <= 1300; y += 60 {
		drawWords(b, 50, y, 7, 5)
		drawWords(b, 531, y, 10, 3)
	}
	return b
}

// widthRecognizer names a word by its width so that tests can tell the
// columns apart.
var widthRecognizer = ocr.RecognizerFunc(func(img image.Image) (string, error) {
	if img.Bounds().Dx() > 30 {
		return "L", nil
	}
	return "R", nil
})

// fourColumnPage returns a 300 dpi page with 21 rows in each of four
// columns 60 px apart. Words have two letters in the first column, three
// in the second, four in the third and five in the fourth.
func fourColumnPage() *bitmap.Bitmap {
	b := bitmap.New(1400, 1400, false)
	for y := 100; y <= 1300; y += 60 {
		drawWords(b, 50, y, 10, 2)
		drawWords(b, 394, y, 8, 3)
		drawWords(b, 742, y, 6, 4)
		drawWords(b, 1062, y, 5, 5)
	}
	return b
}

// columnRecognizer names a word of fourColumnPage after its column.
var columnRecognizer = ocr.RecognizerFunc(func(img image.Image) (string, error) {
	switch w := img.Bounds().Dx(); {
	case w < 18:
		return "A", nil
	case w < 26:
		return "B", nil
	case w < 34:
		return "C", nil
	}
	return "D", nil
})

// runs collapses repeated letters: "AABBBA" becomes "ABA".
func runs(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if i == 0 || s[i] != s[i-1] {
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}

type collector struct {
	pages []*model.Page
	err   error
}

func (c *collector) WritePage(pg *model.Page) error {
	if c.err != nil {
		return c.err
	}
	c.pages = append(c.pages, pg)
	return nil
}

func (c *collector) words() string {
	var sb strings.Builder
	for _, pg := range c.pages {
		for _, w := range pg.Words {
			sb.WriteString(w.Text)
		}
	}
	return sb.String()
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Pages = pages.Config{
		Width:             600,
		Height:            800,
		DPI:               150,
		GoodBreakFraction: 0.01,
		WhiteThreshold:    192,
	}
	cfg.Wrap.MaxRegionWidthIn = 4
	return cfg
}

func TestNewValidatesConfig(t *testing.T) {
	if _, err := New(testConfig(), nil); err == nil {
		t.Error("Expected an error for a nil writer")
	}

	cfg := testConfig()
	cfg.Layout.DPI = 0
	if _, err := New(cfg, &collector{}); err == nil {
		t.Error("Expected an error for a zero source dpi")
	}

	cfg = testConfig()
	cfg.Pages.Height = 0
	if _, err := New(cfg, &collector{}); err == nil {
		t.Error("Expected an error for a zero height device")
	}

	cfg = testConfig()
	cfg.MaxRegions = 0
	p, err := New(cfg, &collector{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if p.Config().MaxRegions != DefaultConfig().MaxRegions {
		t.Errorf("Expected default region limit, got %d", p.Config().MaxRegions)
	}
}

func TestPipelineConservesRows(t *testing.T) {
	out := &collector{}
	p, err := New(testConfig(), out)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	for page := 1; page <= 3; page++ {
		if err := p.AddPage(twoColumnPage(), page); err != nil {
			t.Fatalf("AddPage(%d) failed: %v", page, err)
		}
	}
	if err := p.Finish(); err != nil {
		t.Fatalf("Finish failed: %v", err)
	}

	c := p.Canvas()
	if c.Rows != 0 {
		t.Errorf("Expected an empty canvas after Finish, got %d rows", c.Rows)
	}
	if c.PublishedRows != c.TotalAppended {
		t.Errorf("Expected every appended row published, got %d of %d", c.PublishedRows, c.TotalAppended)
	}
	if len(out.pages) == 0 || p.PagesWritten() != len(out.pages) {
		t.Fatalf("Expected pages written, got %d (counted %d)", len(out.pages), p.PagesWritten())
	}
	for i, pg := range out.pages {
		if pg.Number != i+1 {
			t.Errorf("Expected page %d numbered %d, got %d", i, i+1, pg.Number)
		}
		if pg.Width() != 600 || pg.Height() != 800 {
			t.Errorf("Page %d: expected 600x800, got %dx%d", i+1, pg.Width(), pg.Height())
		}
	}
	if len(p.Warnings()) != 0 {
		t.Errorf("Expected no warnings, got %s", FormatWarnings(p.Warnings()))
	}
	if err := p.AddPage(twoColumnPage(), 4); err == nil {
		t.Error("Expected an error adding a page after Finish")
	}
}

func TestPipelineReadingOrder(t *testing.T) {
	tests := []struct {
		name      string
		direction text.Direction
		first     string
	}{
		{"left to right", text.LTR, "L"},
		{"right to left", text.RTL, "R"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Layout.Direction = tt.direction
			cfg.OCR = true
			cfg.Recognizer = widthRecognizer

			out := &collector{}
			p, err := New(cfg, out)
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			if err := p.AddPage(twoColumnPage(), 1); err != nil {
				t.Fatalf("AddPage failed: %v", err)
			}
			if err := p.Finish(); err != nil {
				t.Fatalf("Finish failed: %v", err)
			}

			got := out.words()
			if n := strings.Count(got, "L"); n != 21*7 {
				t.Errorf("Expected %d left column words, got %d", 21*7, n)
			}
			if n := strings.Count(got, "R"); n != 21*10 {
				t.Errorf("Expected %d right column words, got %d", 21*10, n)
			}
			second := "R"
			if tt.first == "R" {
				second = "L"
			}
			if strings.Contains(strings.TrimLeft(got, tt.first), tt.first) {
				t.Errorf("Expected every %s word before the first %s word", tt.first, second)
			}
		})
	}
}

func TestPipelineFourColumns(t *testing.T) {
	tests := []struct {
		name       string
		maxColumns int
		want       string
	}{
		{"four columns", 4, "ABCD"},
		{"two columns", 2, strings.Repeat("AB", 21) + strings.Repeat("CD", 21)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Layout.MaxColumns = tt.maxColumns
			cfg.OCR = true
			cfg.Recognizer = columnRecognizer

			out := &collector{}
			p, err := New(cfg, out)
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			if err := p.AddPage(fourColumnPage(), 1); err != nil {
				t.Fatalf("AddPage failed: %v", err)
			}
			if err := p.Finish(); err != nil {
				t.Fatalf("Finish failed: %v", err)
			}

			got := out.words()
			for letter, n := range map[string]int{"A": 21 * 10, "B": 21 * 8, "C": 21 * 6, "D": 21 * 5} {
				if c := strings.Count(got, letter); c != n {
					t.Errorf("Expected %d %s words, got %d", n, letter, c)
				}
			}
			if r := runs(got); r != tt.want {
				t.Errorf("Expected reading order %q, got %q", tt.want, r)
			}
		})
	}
}

func TestPipelineRegionOverflow(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	cfg := testConfig()
	cfg.MaxRegions = 1
	cfg.Logger = logger

	out := &collector{}
	p, err := New(cfg, out)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := p.AddPage(twoColumnPage(), 7); err != nil {
		t.Fatalf("AddPage failed: %v", err)
	}
	if err := p.Finish(); err != nil {
		t.Fatalf("Finish failed: %v", err)
	}

	warnings := p.Warnings()
	if len(warnings) != 1 || warnings[0].Type != WarningRegionOverflow || warnings[0].Page != 7 {
		t.Fatalf("Expected one region overflow warning for page 7, got %v", warnings)
	}
	if len(out.pages) == 0 {
		t.Error("Expected the page content to be kept after an overflow")
	}

	var logged bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel && e.Data["page"] == 7 {
			logged = true
		}
	}
	if !logged {
		t.Error("Expected the warning to be logged")
	}
}

func TestPipelineSourceMargins(t *testing.T) {
	b := bitmap.New(1000, 1400, false)
	drawWords(b, 50, 100, 5, 5)

	cfg := testConfig()
	cfg.SourceMargins = Margins{Top: 0.5}
	out := &collector{}
	p, err := New(cfg, out)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := p.AddPage(b, 1); err != nil {
		t.Fatalf("AddPage failed: %v", err)
	}
	if err := p.Finish(); err != nil {
		t.Fatalf("Finish failed: %v", err)
	}
	if len(out.pages) != 0 {
		t.Errorf("Expected text inside the margin to be ignored, got %d pages", len(out.pages))
	}
}

func TestPipelineBlankAndNilPages(t *testing.T) {
	out := &collector{}
	p, err := New(testConfig(), out)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := p.AddPage(nil, 1); err != nil {
		t.Errorf("Expected a nil page to be skipped, got %v", err)
	}
	if err := p.AddPage(bitmap.New(500, 500, false), 2); err != nil {
		t.Errorf("Expected a blank page to be skipped, got %v", err)
	}
	if err := p.Finish(); err != nil {
		t.Fatalf("Finish failed: %v", err)
	}
	if len(out.pages) != 0 {
		t.Errorf("Expected no pages, got %d", len(out.pages))
	}
}

func TestPipelineWriterError(t *testing.T) {
	boom := errors.New("disk full")
	out := &collector{err: boom}
	p, err := New(testConfig(), out)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := p.AddPage(twoColumnPage(), 1); err != nil && !errors.Is(err, boom) {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := p.Finish(); !errors.Is(err, boom) {
		t.Errorf("Expected the writer error, got %v", err)
	}
}

func TestSkipPage(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	cfg := testConfig()
	cfg.Logger = logger
	p, err := New(cfg, &collector{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	p.SkipPage(3, errors.New("corrupt page"))
	w := p.Warnings()
	if len(w) != 1 || w[0].Type != WarningPageSkipped || w[0].Page != 3 {
		t.Fatalf("Unexpected warnings %v", w)
	}
	if got := FormatWarnings(w); got != "page 3: page skipped: corrupt page" {
		t.Errorf("Unexpected formatting %q", got)
	}
	if e := hook.LastEntry(); e == nil || e.Level != logrus.WarnLevel || e.Message != "corrupt page" {
		t.Errorf("Expected a warn entry, got %v", e)
	}
}

func TestFormatWarnings(t *testing.T) {
	if FormatWarnings(nil) != "" {
		t.Error("Expected an empty string for no warnings")
	}
	got := FormatWarnings([]Warning{
		{Type: WarningOCRFailed, Page: 2, Message: "2 words could not be recognized"},
		{Type: WarningRegionOverflow, Message: "too many"},
	})
	want := "page 2: ocr failed: 2 words could not be recognized\nregion overflow: too many"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}
