package model

import (
	"testing"

	"github.com/tsawler/reflow/bitmap"
)

// ============================================================================
// Geometry Tests
// ============================================================================

func TestBBoxEdges(t *testing.T) {
	bbox := NewBBox(10, 20, 100, 50)

	if bbox.Left() != 10 {
		t.Errorf("Left() = %v, want 10", bbox.Left())
	}
	if bbox.Right() != 110 {
		t.Errorf("Right() = %v, want 110", bbox.Right())
	}
	if bbox.Top() != 20 {
		t.Errorf("Top() = %v, want 20", bbox.Top())
	}
	if bbox.Bottom() != 70 {
		t.Errorf("Bottom() = %v, want 70", bbox.Bottom())
	}
}

func TestNewBBoxFromPixels(t *testing.T) {
	got := NewBBoxFromPixels(10, 20, 19, 24)
	want := BBox{10, 20, 10, 5}
	if got != want {
		t.Errorf("NewBBoxFromPixels() = %+v, want %+v", got, want)
	}
}

func TestBBoxContainsAndIntersects(t *testing.T) {
	bbox := NewBBox(0, 0, 100, 100)

	if !bbox.Contains(Point{50, 50}) {
		t.Error("Expected centre point to be inside")
	}
	if bbox.Contains(Point{50, 101}) {
		t.Error("Expected point below the box to be outside")
	}
	if !bbox.Intersects(NewBBox(50, 50, 100, 100)) {
		t.Error("Expected overlapping boxes to intersect")
	}
	if bbox.Intersects(NewBBox(200, 0, 10, 10)) {
		t.Error("Expected distant boxes not to intersect")
	}
}

func TestBBoxUnion(t *testing.T) {
	a := NewBBox(0, 0, 10, 10)
	b := NewBBox(20, 5, 10, 10)
	got := a.Union(b)
	want := BBox{0, 0, 30, 15}
	if got != want {
		t.Errorf("Union() = %+v, want %+v", got, want)
	}
	if got := (BBox{}).Union(b); got != b {
		t.Errorf("Union with empty box = %+v, want %+v", got, b)
	}
}

func TestBBoxTranslateScale(t *testing.T) {
	b := NewBBox(10, 20, 30, 40)
	if got := b.Translate(5, -5); got != (BBox{15, 15, 30, 40}) {
		t.Errorf("Translate() = %+v", got)
	}
	if got := b.Scale(0.5); got != (BBox{5, 10, 15, 20}) {
		t.Errorf("Scale() = %+v", got)
	}
}

// ============================================================================
// Word Tests
// ============================================================================

func TestWordTranslateScale(t *testing.T) {
	w := Word{Text: "reflow", BBox: NewBBox(10, 10, 50, 20), Baseline: 28, LineHeight: 20}

	moved := w.Translate(100, 50)
	if moved.BBox.X != 110 || moved.BBox.Y != 60 || moved.Baseline != 78 {
		t.Errorf("Translate() = %+v", moved)
	}
	if moved.LineHeight != 20 {
		t.Errorf("Translate() changed line height to %v", moved.LineHeight)
	}

	scaled := w.Scale(2)
	if scaled.BBox.Width != 100 || scaled.Baseline != 56 || scaled.LineHeight != 40 {
		t.Errorf("Scale() = %+v", scaled)
	}
}

// ============================================================================
// Page Tests
// ============================================================================

func TestPageDimensions(t *testing.T) {
	p := NewPage(bitmap.New(600, 800, false), 200)
	if p.Width() != 600 || p.Height() != 800 {
		t.Errorf("Expected 600x800, got %dx%d", p.Width(), p.Height())
	}
	if p.WidthPoints() != 216 || p.HeightPoints() != 288 {
		t.Errorf("Expected 216x288 pt, got %vx%v", p.WidthPoints(), p.HeightPoints())
	}

	empty := &Page{}
	if empty.Width() != 0 || empty.HeightPoints() != 0 {
		t.Error("Expected zero size for a page without an image")
	}
}

func TestPageExtractText(t *testing.T) {
	p := NewPage(bitmap.New(600, 800, false), 200)
	p.AddWord(Word{Text: "world", BBox: NewBBox(120, 10, 60, 20), Baseline: 28, LineHeight: 20})
	p.AddWord(Word{Text: "hello", BBox: NewBBox(40, 11, 60, 20), Baseline: 29, LineHeight: 20})
	p.AddWord(Word{Text: "again", BBox: NewBBox(40, 50, 60, 20), Baseline: 68, LineHeight: 20})

	if got, want := p.ExtractText(), "hello world\nagain"; got != want {
		t.Errorf("ExtractText() = %q, want %q", got, want)
	}
}

// ============================================================================
// Document Tests
// ============================================================================

func TestDocumentPages(t *testing.T) {
	doc := NewDocument()
	if doc.PageCount() != 0 {
		t.Errorf("Expected 0 pages, got %d", doc.PageCount())
	}

	p1 := NewPage(bitmap.New(10, 10, false), 100)
	p1.AddWord(Word{Text: "one", Baseline: 5, LineHeight: 4})
	p2 := NewPage(bitmap.New(10, 10, false), 100)
	doc.AddPage(p1)
	doc.AddPage(p2)

	if p2.Number != 2 {
		t.Errorf("Expected second page numbered 2, got %d", p2.Number)
	}
	if doc.Pages[0] != p1 || p1.Number != 1 {
		t.Error("Expected the first page added to be page 1")
	}
	if doc.WordCount() != 1 {
		t.Errorf("Expected 1 word, got %d", doc.WordCount())
	}
	if got := doc.ExtractText(); got != "one\n\n" {
		t.Errorf("ExtractText() = %q", got)
	}
}

func TestMetadataIsEmpty(t *testing.T) {
	if !(Metadata{}).IsEmpty() {
		t.Error("Expected zero metadata to be empty")
	}
	if (Metadata{Title: "x"}).IsEmpty() {
		t.Error("Expected metadata with a title not to be empty")
	}
}
