package rasterize

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writePNG writes a w x h white image with a black square in the corner.
func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	for y := 0; y < h/4; y++ {
		for x := 0; x < w/4; x++ {
			img.SetGray(x, y, color.Gray{})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestOpenImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.png")
	writePNG(t, path, 300, 400)

	src, err := Open(path)
	require.NoError(t, err)
	defer src.Close()

	assert.Equal(t, 1, src.PageCount())

	b, err := src.Page(0, DefaultImageDPI, false)
	require.NoError(t, err)
	assert.Equal(t, 300, b.Width)
	assert.Equal(t, 400, b.Height)
	assert.False(t, b.IsColor())
	assert.Equal(t, uint8(0), b.GrayAt(10, 10))
	assert.Equal(t, uint8(255), b.GrayAt(200, 300))

	half, err := src.Page(0, DefaultImageDPI/2, true)
	require.NoError(t, err)
	assert.Equal(t, 150, half.Width)
	assert.Equal(t, 200, half.Height)
	assert.True(t, half.IsColor())

	_, err = src.Page(1, DefaultImageDPI, false)
	assert.ErrorIs(t, err, ErrPageRange)
}

func TestOpenSniffsUnknownExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scan.dat")
	writePNG(t, path, 40, 40)

	src, err := Open(path)
	require.NoError(t, err)
	b, err := src.Page(0, 0, false)
	require.NoError(t, err)
	assert.Equal(t, 40, b.Width)
}

func TestOpenDir(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "002.png"), 20, 30)
	writePNG(t, filepath.Join(dir, "001.png"), 10, 30)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	src, err := Open(dir)
	require.NoError(t, err)
	require.Equal(t, 2, src.PageCount())

	first, err := src.Page(0, DefaultImageDPI, false)
	require.NoError(t, err)
	assert.Equal(t, 10, first.Width, "pages are ordered by file name")

	_, err = OpenDir(t.TempDir())
	assert.ErrorIs(t, err, ErrNoPages)
}

func TestOpenErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Open(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)

	djvu := filepath.Join(dir, "book.djvu")
	require.NoError(t, os.WriteFile(djvu, []byte("AT&TFORM"), 0o644))
	_, err = Open(djvu)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	junk := filepath.Join(dir, "junk.bin")
	require.NoError(t, os.WriteFile(junk, []byte("nothing to see"), 0o644))
	_, err = Open(junk)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestParsePDFDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"D:20230405103000Z", time.Date(2023, 4, 5, 10, 30, 0, 0, time.UTC)},
		{"D:20230405103000Z00'00'", time.Date(2023, 4, 5, 10, 30, 0, 0, time.UTC)},
		{"D:20230405", time.Date(2023, 4, 5, 0, 0, 0, 0, time.UTC)},
		{"2021", time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"", time.Time{}},
		{"yesterday", time.Time{}},
	}
	for _, tt := range tests {
		got := parsePDFDate(tt.in)
		assert.True(t, got.Equal(tt.want), "parsePDFDate(%q) = %v, want %v", tt.in, got, tt.want)
	}

	withZone := parsePDFDate("D:20230405103000+02'00'")
	assert.True(t, withZone.Equal(time.Date(2023, 4, 5, 8, 30, 0, 0, time.UTC)))
}

func TestSplitKeywords(t *testing.T) {
	assert.Equal(t, []string{"scan", "reflow", "e-reader"}, splitKeywords(" scan, reflow;e-reader ,"))
	assert.Nil(t, splitKeywords(""))
}
