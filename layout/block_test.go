package layout

import (
	"testing"

	"github.com/tsawler/reflow/bitmap"
)

func TestVerticalBlocks_SplitsAtLargeGap(t *testing.T) {
	a := newTestAnalyzer(t)
	b := bitmap.New(600, 900, false)
	for _, y := range []int{100, 170, 240, 510, 580, 650} {
		drawLine(b, 40, 560, y, testLC, testCap)
	}

	r := a.Region(b)
	blocks := a.VerticalBlocks(&r)
	if len(blocks) != 2 {
		t.Fatalf("Expected 2 blocks, got %d", len(blocks))
	}
	if blocks[0].Rows.Len() != 3 || blocks[1].Rows.Len() != 3 {
		t.Errorf("Expected 3 rows per block, got %d and %d", blocks[0].Rows.Len(), blocks[1].Rows.Len())
	}
	if blocks[0].Region.R2 != 240 || blocks[1].Region.R1 != 510-testCap+1 {
		t.Errorf("Unexpected block bounds: first ends %d, second starts %d", blocks[0].Region.R2, blocks[1].Region.R1)
	}
	if want := 510 - testCap + 1 - 240 - 1; blocks[0].GapAfter != want {
		t.Errorf("Expected gap after first block %d, got %d", want, blocks[0].GapAfter)
	}
	if blocks[1].GapAfter != 0 {
		t.Errorf("Expected no gap after the last block, got %d", blocks[1].GapAfter)
	}
}

func TestVerticalBlocks_Disabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.VerticalBreakThreshold = 0
	a := NewAnalyzerWithConfig(cfg)
	b := bitmap.New(600, 900, false)
	for _, y := range []int{100, 170, 240, 510, 580, 650} {
		drawLine(b, 40, 560, y, testLC, testCap)
	}

	r := a.Region(b)
	if blocks := a.VerticalBlocks(&r); len(blocks) != 1 {
		t.Errorf("Expected a single block with breaking disabled, got %d", len(blocks))
	}
}

func TestWordBoxes(t *testing.T) {
	a := newTestAnalyzer(t)
	b := bitmap.New(400, 300, false)
	drawLine(b, 20, 20+2*54-17, 80, testLC, testCap)
	drawLine(b, 20, 20+3*54-17, 160, testLC, testCap)

	boxes := a.WordBoxes(a.Region(b))
	if len(boxes) != 5 {
		t.Fatalf("Expected 5 word boxes, got %d", len(boxes))
	}
	// The first word of each line has an ascender; its box starts at the
	// cap height.
	if boxes[0].R1 != 80-testCap+1 || boxes[0].R2 != 80 {
		t.Errorf("Expected first box rows %d-80, got %d-%d", 80-testCap+1, boxes[0].R1, boxes[0].R2)
	}
	if boxes[2].RowBase != 160 {
		t.Errorf("Expected second line baseline 160, got %d", boxes[2].RowBase)
	}
}
