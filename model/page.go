package model

import (
	"sort"
	"strings"

	"github.com/tsawler/reflow/bitmap"
)

// Page is one finished output page: a device-sized bitmap plus the words
// placed on it.
type Page struct {
	Number int // 1-indexed output page number
	Image  *bitmap.Bitmap
	DPI    int
	Words  []Word
}

// NewPage creates a new page around an image
func NewPage(img *bitmap.Bitmap, dpi int) *Page {
	return &Page{
		Image: img,
		DPI:   dpi,
		Words: make([]Word, 0),
	}
}

// Width returns the page width in pixels.
func (p *Page) Width() int {
	if p.Image == nil {
		return 0
	}
	return p.Image.Width
}

// Height returns the page height in pixels.
func (p *Page) Height() int {
	if p.Image == nil {
		return 0
	}
	return p.Image.Height
}

// WidthPoints returns the page width in PDF points.
func (p *Page) WidthPoints() float64 {
	return pixelsToPoints(p.Width(), p.DPI)
}

// HeightPoints returns the page height in PDF points.
func (p *Page) HeightPoints() float64 {
	return pixelsToPoints(p.Height(), p.DPI)
}

func pixelsToPoints(px, dpi int) float64 {
	if dpi <= 0 {
		return 0
	}
	return float64(px) * 72 / float64(dpi)
}

// AddWord adds a word to the page
func (p *Page) AddWord(w Word) {
	p.Words = append(p.Words, w)
}

// Lines groups the page's words into lines, top to bottom, each ordered
// left to right. Words whose baselines lie within half a line height of
// the line's first word share the line.
func (p *Page) Lines() [][]Word {
	if len(p.Words) == 0 {
		return nil
	}
	words := append([]Word(nil), p.Words...)
	sort.SliceStable(words, func(i, j int) bool {
		if words[i].Baseline != words[j].Baseline {
			return words[i].Baseline < words[j].Baseline
		}
		return words[i].BBox.X < words[j].BBox.X
	})

	var lines [][]Word
	for _, w := range words {
		if n := len(lines); n > 0 {
			ref := lines[n-1][0]
			tol := ref.LineHeight / 2
			if tol <= 0 {
				tol = ref.BBox.Height / 2
			}
			if w.Baseline-ref.Baseline <= tol {
				lines[n-1] = append(lines[n-1], w)
				continue
			}
		}
		lines = append(lines, []Word{w})
	}
	for _, line := range lines {
		sort.SliceStable(line, func(a, b int) bool { return line[a].BBox.X < line[b].BBox.X })
	}
	return lines
}

// ExtractText returns the page's words as lines of text, top to bottom.
func (p *Page) ExtractText() string {
	lines := p.Lines()
	var sb strings.Builder
	for i, line := range lines {
		for j, w := range line {
			if j > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(w.Text)
		}
		if i < len(lines)-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
