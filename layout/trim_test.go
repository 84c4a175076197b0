package layout

import (
	"testing"

	"github.com/tsawler/reflow/bitmap"
)

func TestTrim_IgnoresSpecksAndIsIdempotent(t *testing.T) {
	a := newTestAnalyzer(t)
	b := bitmap.New(600, 400, false)
	last := drawLine(b, 100, 500, 200, testLC, testCap)
	// Single-pixel specks far from the text are noise.
	b.SetGray(10, 10, 0)
	b.SetGray(590, 390, 0)

	r := a.Region(b)
	a.Trim(&r, TrimEdges)

	if r.C1 != 100 {
		t.Errorf("Expected C1 100, got %d", r.C1)
	}
	if r.C2 != last {
		t.Errorf("Expected C2 %d, got %d", last, r.C2)
	}
	if r.R1 != 200-testCap+1 {
		t.Errorf("Expected R1 %d, got %d", 200-testCap+1, r.R1)
	}
	if r.R2 != 200 {
		t.Errorf("Expected R2 200, got %d", r.R2)
	}

	again := r
	a.Trim(&again, TrimEdges)
	if again.C1 != r.C1 || again.C2 != r.C2 || again.R1 != r.R1 || again.R2 != r.R2 {
		t.Errorf("Expected second trim to keep (%d,%d)-(%d,%d), got (%d,%d)-(%d,%d)",
			r.C1, r.R1, r.C2, r.R2, again.C1, again.R1, again.C2, again.R2)
	}
}

func TestTrim_KeepsNearbyPunctuation(t *testing.T) {
	a := newTestAnalyzer(t)
	b := bitmap.New(400, 200, false)
	drawLine(b, 100, 300, 100, testLC, testCap)
	// A 2x2 dot 4 px left of the text is under the defect level but within
	// the leading gap, so it survives.
	b.FillRect(94, 99, 95, 100, 0)

	r := a.Region(b)
	a.Trim(&r, TrimLeft)
	if r.C1 != 94 {
		t.Errorf("Expected C1 94, got %d", r.C1)
	}
}

func TestTrim_Metrics(t *testing.T) {
	a := newTestAnalyzer(t)
	b := bitmap.New(600, 300, false)
	drawLine(b, 50, 550, 150, testLC, testCap)

	r := a.Region(b)
	a.Trim(&r, TrimEdges|TrimMetrics)

	if r.RowBase != 150 {
		t.Errorf("Expected RowBase 150, got %d", r.RowBase)
	}
	if r.LCHeight != testLC {
		t.Errorf("Expected LCHeight %d, got %d", testLC, r.LCHeight)
	}
	if r.CapHeight != testCap {
		t.Errorf("Expected CapHeight %d, got %d", testCap, r.CapHeight)
	}
	if !r.HasMetrics() {
		t.Error("Expected region to report metrics")
	}
}

func TestTrim_BlankRegion(t *testing.T) {
	a := newTestAnalyzer(t)
	b := bitmap.New(100, 80, false)
	r := a.Region(b)
	a.Trim(&r, TrimEdges|TrimMetrics)

	if r.Width() != 1 || r.Height() != 1 {
		t.Errorf("Expected blank region to collapse to 1x1, got %dx%d", r.Width(), r.Height())
	}
	if r.HasMetrics() {
		t.Error("Expected no metrics on a blank region")
	}
}

func TestHeight2(t *testing.T) {
	tests := []struct {
		name string
		rows []int
		want int
	}{
		{"empty", nil, 0},
		{"flat", []int{5, 5, 5, 5}, 0},
		{"core band", []int{0, 1, 9, 9, 9, 1, 0}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := height2(tt.rows); got != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, got)
			}
		})
	}
}
