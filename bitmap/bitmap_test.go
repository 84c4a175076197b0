package bitmap

import (
	"image"
	"image/color"
	"testing"
)

func TestNewIsWhite(t *testing.T) {
	b := New(4, 3, true)
	for i, v := range b.Gray {
		if v != White {
			t.Fatalf("Expected white gray pixel at %d, got %d", i, v)
		}
	}
	if len(b.RGB) != 3*4*3 {
		t.Errorf("Expected RGB plane of %d bytes, got %d", 36, len(b.RGB))
	}
	if !b.IsColor() {
		t.Error("Expected colour bitmap")
	}
}

func TestFromImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	img.Set(1, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	b := FromImage(img, true)
	if b.Width != 2 || b.Height != 1 {
		t.Fatalf("Expected 2x1, got %dx%d", b.Width, b.Height)
	}
	if b.RGB[0] != 255 || b.RGB[1] != 0 || b.RGB[2] != 0 {
		t.Errorf("Expected red first pixel, got %v", b.RGB[:3])
	}
	if b.Gray[0] != 76 {
		t.Errorf("Expected luminance 76 for red, got %d", b.Gray[0])
	}
	if b.Gray[1] != 255 {
		t.Errorf("Expected white second pixel, got %d", b.Gray[1])
	}

	g := image.NewGray(image.Rect(5, 5, 8, 7))
	g.SetGray(6, 6, color.Gray{Y: 10})
	gb := FromImage(g, false)
	if gb.GrayAt(1, 1) != 10 {
		t.Errorf("Expected offset bounds to be honoured, got %d", gb.GrayAt(1, 1))
	}
	if gb.IsColor() {
		t.Error("Expected gray bitmap")
	}
}

func TestGrayAtOutOfRange(t *testing.T) {
	b := New(2, 2, false)
	b.Fill(0)
	if b.GrayAt(-1, 0) != White || b.GrayAt(0, 5) != White {
		t.Error("Expected out of range reads to be white")
	}
}

func TestFillRectClips(t *testing.T) {
	b := New(5, 5, true)
	b.FillRect(-2, 3, 10, 10, 0)
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			want := uint8(White)
			if y >= 3 {
				want = 0
			}
			if b.GrayAt(x, y) != want {
				t.Fatalf("Pixel (%d,%d): expected %d, got %d", x, y, want, b.GrayAt(x, y))
			}
		}
	}
	if b.RGB[3*(4*5+4)] != 0 {
		t.Error("Expected RGB plane to be filled too")
	}
}

func TestCropAndBlit(t *testing.T) {
	src := New(10, 10, false)
	src.FillRect(2, 2, 4, 4, 0)

	c := src.Crop(2, 2, 5, 5)
	if c.Width != 4 || c.Height != 4 {
		t.Fatalf("Expected 4x4 crop, got %dx%d", c.Width, c.Height)
	}
	if c.GrayAt(0, 0) != 0 || c.GrayAt(3, 3) != White {
		t.Error("Crop copied the wrong pixels")
	}

	dst := New(6, 6, true)
	Blit(dst, 4, 4, src, 2, 2, 4, 4)
	if dst.GrayAt(4, 4) != 0 || dst.GrayAt(5, 5) != 0 {
		t.Error("Expected blit to copy into the corner")
	}
	if dst.RGB[3*(4*6+4)+1] != 0 {
		t.Error("Expected gray source replicated into RGB")
	}

	empty := src.Crop(5, 5, 4, 4)
	if empty.Width != 0 || empty.Height != 0 {
		t.Errorf("Expected empty crop, got %dx%d", empty.Width, empty.Height)
	}
}

func TestResizeAndDropRows(t *testing.T) {
	b := New(3, 4, false)
	for y := 0; y < 4; y++ {
		b.FillRect(0, y, 2, y, uint8(y*10))
	}

	b.DropRows(1)
	if b.Height != 4 {
		t.Fatalf("Expected height unchanged, got %d", b.Height)
	}
	if b.GrayAt(0, 0) != 10 || b.GrayAt(0, 2) != 30 {
		t.Errorf("Expected rows shifted up, got %d and %d", b.GrayAt(0, 0), b.GrayAt(0, 2))
	}
	if b.GrayAt(0, 3) != White {
		t.Errorf("Expected freed row to be white, got %d", b.GrayAt(0, 3))
	}

	b.Resize(6)
	if b.Height != 6 || len(b.Gray) != 18 {
		t.Fatalf("Expected 6 rows, got %d (%d bytes)", b.Height, len(b.Gray))
	}
	if b.GrayAt(0, 0) != 10 || b.GrayAt(0, 5) != White {
		t.Error("Expected resize to keep rows and whiten new ones")
	}
}

func TestScale(t *testing.T) {
	b := New(100, 50, false)
	b.FillRect(0, 0, 49, 49, 0)

	s := b.Scale(50, 25)
	if s.Width != 50 || s.Height != 25 {
		t.Fatalf("Expected 50x25, got %dx%d", s.Width, s.Height)
	}
	if s.GrayAt(5, 10) > 10 {
		t.Errorf("Expected dark left half, got %d", s.GrayAt(5, 10))
	}
	if s.GrayAt(45, 10) < 245 {
		t.Errorf("Expected white right half, got %d", s.GrayAt(45, 10))
	}
}

func TestHistogram(t *testing.T) {
	b := New(5, 4, false)
	b.FillRect(1, 1, 2, 2, 0)
	b.SetGray(4, 3, 100)

	cols := make([]int, 5)
	rows := make([]int, 4)
	Histogram(b, 0, 0, 4, 3, 192, cols, rows)

	wantCols := []int{0, 2, 2, 0, 1}
	wantRows := []int{0, 2, 2, 1}
	for i := range wantCols {
		if cols[i] != wantCols[i] {
			t.Errorf("Column %d: expected %d, got %d", i, wantCols[i], cols[i])
		}
	}
	for i := range wantRows {
		if rows[i] != wantRows[i] {
			t.Errorf("Row %d: expected %d, got %d", i, wantRows[i], rows[i])
		}
	}

	if n := DarkCount(b, 0, 0, 4, 3, 192, -1); n != 5 {
		t.Errorf("Expected 5 dark pixels, got %d", n)
	}
	if n := DarkCount(b, 0, 0, 4, 3, 192, 1); n != 2 {
		t.Errorf("Expected early exit at limit+1, got %d", n)
	}
	if !RowBlank(b, 0, 0, 4, 192) || RowBlank(b, 3, 0, 4, 192) {
		t.Error("RowBlank misreported")
	}
}
