package layout

import (
	"testing"

	"github.com/tsawler/reflow/bitmap"
)

func TestFindRows_Coverage(t *testing.T) {
	a := newTestAnalyzer(t)
	b := bitmap.New(600, 500, false)
	baselines := []int{100, 170, 240, 310, 380}
	for _, y := range baselines {
		drawLine(b, 40, 560, y, testLC, testCap)
	}

	r := a.Region(b)
	bi := a.FindRows(&r, -1)

	if bi.Len() != len(baselines) {
		t.Fatalf("Expected %d rows, got %d", len(baselines), bi.Len())
	}
	if r.R1 != bi.Rows[0].R1 || r.R2 != bi.Rows[bi.Len()-1].R2 {
		t.Errorf("Expected rows to span the trimmed region %d-%d, got %d-%d",
			r.R1, r.R2, bi.Rows[0].R1, bi.Rows[bi.Len()-1].R2)
	}
	for i, row := range bi.Rows {
		if row.RowBase != baselines[i] {
			t.Errorf("Row %d: expected baseline %d, got %d", i, baselines[i], row.RowBase)
		}
		if row.R1 != baselines[i]-testCap+1 || row.R2 != baselines[i] {
			t.Errorf("Row %d: expected rows %d-%d, got %d-%d", i, baselines[i]-testCap+1, baselines[i], row.R1, row.R2)
		}
		if row.C1 < r.C1 || row.C2 > r.C2 {
			t.Errorf("Row %d: columns %d-%d outside region %d-%d", i, row.C1, row.C2, r.C1, r.C2)
		}
		if i > 0 && row.R1 <= bi.Rows[i-1].R2 {
			t.Errorf("Row %d overlaps the previous row", i)
		}
		if i < bi.Len()-1 {
			if want := 70 - testCap; row.Gap != want {
				t.Errorf("Row %d: expected gap %d, got %d", i, want, row.Gap)
			}
		}
		if i > 0 && row.RowHeight != 70 {
			t.Errorf("Row %d: expected row height 70, got %d", i, row.RowHeight)
		}
	}
	if bi.Rows[bi.Len()-1].Gap != 0 {
		t.Errorf("Expected last gap 0, got %d", bi.Rows[bi.Len()-1].Gap)
	}
	if bi.MeanRowHeight != testCap {
		t.Errorf("Expected mean row height %d, got %d", testCap, bi.MeanRowHeight)
	}
}

func TestFindRows_Empty(t *testing.T) {
	a := newTestAnalyzer(t)
	b := bitmap.New(200, 200, false)
	r := a.Region(b)
	if bi := a.FindRows(&r, -1); bi.Len() != 0 {
		t.Errorf("Expected no rows on a blank page, got %d", bi.Len())
	}
}

func TestFindRows_FigureCaptionMerge(t *testing.T) {
	a := newTestAnalyzer(t)
	b := bitmap.New(800, 900, false)
	// A 300 px (1 in) tall figure followed 20 px lower by a caption line.
	b.FillRect(100, 100, 700, 399, 0)
	drawLine(b, 150, 650, 420+testCap-1, testLC, testCap)
	// A body line well below.
	drawLine(b, 100, 700, 700, testLC, testCap)

	r := a.Region(b)
	bi := a.FindRows(&r, -1)
	if bi.Len() != 2 {
		t.Fatalf("Expected figure+caption and body rows, got %d rows", bi.Len())
	}
	fig := bi.Rows[0]
	if fig.R1 != 100 || fig.R2 != 420+testCap-1 {
		t.Errorf("Expected merged figure rows 100-%d, got %d-%d", 420+testCap-1, fig.R1, fig.R2)
	}
	if !a.IsFigure(fig) {
		t.Error("Expected merged row to be treated as a figure")
	}
	if a.IsFigure(bi.Rows[1]) {
		t.Error("Expected body row not to be a figure")
	}
}

func TestFindWords(t *testing.T) {
	a := newTestAnalyzer(t)
	b := bitmap.New(400, 120, false)
	// Three words of five letters.
	last := drawLine(b, 20, 20+3*54-17, 80, testLC, testCap)

	r := a.Region(b)
	bi := a.FindWords(&r)
	if bi.Len() != 3 {
		t.Fatalf("Expected 3 words, got %d", bi.Len())
	}
	for i, w := range bi.Rows {
		if want := 20 + i*54; w.C1 != want {
			t.Errorf("Word %d: expected C1 %d, got %d", i, want, w.C1)
		}
		if i < 2 && w.Gap != 16 {
			t.Errorf("Word %d: expected gap 16, got %d", i, w.Gap)
		}
		if w.RowBase != 80 {
			t.Errorf("Word %d: expected baseline 80, got %d", i, w.RowBase)
		}
	}
	if bi.Rows[2].C2 != last {
		t.Errorf("Expected last word to end at %d, got %d", last, bi.Rows[2].C2)
	}
}

func TestBreakInfo_Sorts(t *testing.T) {
	bi := &BreakInfo{Rows: []TextRow{
		{C1: 30, R1: 0, Gap: 5},
		{C1: 10, R1: 20, Gap: 1},
		{C1: 20, R1: 10, Gap: 3},
	}}
	bi.SortByGap()
	if bi.Rows[0].Gap != 1 || bi.Rows[2].Gap != 5 {
		t.Errorf("Expected ascending gaps, got %d,%d,%d", bi.Rows[0].Gap, bi.Rows[1].Gap, bi.Rows[2].Gap)
	}
	bi.SortByCol()
	if bi.Rows[0].C1 != 10 || bi.Rows[2].C1 != 30 {
		t.Errorf("Expected column order, got %d,%d,%d", bi.Rows[0].C1, bi.Rows[1].C1, bi.Rows[2].C1)
	}
	bi.SortByRow()
	if bi.Rows[0].R1 != 0 || bi.Rows[2].R1 != 20 {
		t.Errorf("Expected row order, got %d,%d,%d", bi.Rows[0].R1, bi.Rows[1].R1, bi.Rows[2].R1)
	}
}
