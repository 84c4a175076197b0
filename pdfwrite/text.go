package pdfwrite

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode/utf16"

	"github.com/tsawler/reflow/model"
)

// Text layer constants.
const (
	// glyphHeight is the height used for every glyph, in points per point
	// of font size. A uniform height keeps selection boxes consistent.
	glyphHeight = 0.65

	// sizeStep rounds font sizes to steps of this many decades around the
	// median so that nearby words share a size.
	sizeStep = 0.25

	// heightFactor shrinks the font height; short glyphs select better in
	// most readers.
	heightFactor = 0.5

	minFontSize = 0.5
)

// textWidth returns the width of s in points per point of font size.
func textWidth(s string, cm *charMap) float64 {
	w := 0.0
	for _, r := range s {
		w += glyphWidth(cm.lookup(r).code)
	}
	return max(w, 0.01)
}

// fontHeight returns the unrounded font size that makes a word as tall as
// its box.
func fontHeight(w model.Word, dpi float64) float64 {
	return 72 * w.BBox.Height / dpi / glyphHeight
}

// medianFontSize returns the median of the word font sizes, at least
// minFontSize.
func medianFontSize(words []model.Word, dpi float64) float64 {
	if len(words) == 0 {
		return 1
	}
	sizes := make([]float64, len(words))
	for i, w := range words {
		sizes[i] = fontHeight(w, dpi)
	}
	sort.Float64s(sizes)
	return max(sizes[len(sizes)/2], minFontSize)
}

// roundSize snaps size to the nearest logarithmic step around median.
func roundSize(size, median float64) float64 {
	size = max(size, minFontSize)
	rat := min(max(size/median, 1e-3), 1e5)
	steps := math.Floor(math.Log10(rat)/sizeStep + 0.5)
	return median * math.Pow(10, steps*sizeStep)
}

// textLayer returns the content stream operators that draw words as
// invisible text on a page of the given height in points.
func textLayer(words []model.Word, dpi, pageHeight float64, cm *charMap) string {
	var sb strings.Builder
	sb.WriteString("BT\n3 Tr\n")
	median := medianFontSize(words, dpi)
	lastFont, lastSize := -1, -1.0
	for _, w := range words {
		if strings.TrimSpace(w.Text) == "" {
			continue
		}
		// Trim the trailing side bearing from the box before fitting.
		wordw := w.BBox.Width - w.LineHeight/2
		if w.BBox.Width/10 < w.LineHeight/2 {
			wordw = 0.9 * w.BBox.Width
		}
		sizeW := 72 * wordw / dpi / textWidth(w.Text, cm)
		sizeH := heightFactor * roundSize(fontHeight(w, dpi), median)
		scale := sizeW / sizeH

		x := 72 * w.BBox.X / dpi
		y := pageHeight - 72*w.Baseline/dpi
		open := false
		first := true
		for _, r := range w.Text {
			g := cm.lookup(r)
			if g.font != lastFont || math.Abs(sizeH-lastSize) > 0.01 {
				if open {
					sb.WriteString("> Tj\n")
					open = false
				}
				fmt.Fprintf(&sb, "/F%d %.2f Tf\n", g.font, sizeH)
				lastFont, lastSize = g.font, sizeH
			}
			if first {
				fmt.Fprintf(&sb, "%.4f 0 0 1 %.2f %.2f Tm\n", scale, x, y)
				first = false
			}
			if !open {
				sb.WriteByte('<')
				open = true
			}
			fmt.Fprintf(&sb, "%02X", g.code)
		}
		if open {
			sb.WriteString("> Tj\n")
		}
	}
	sb.WriteString("ET\n")
	return sb.String()
}

// toUnicodeCMap returns the ToUnicode CMap program for extra font f.
func toUnicodeCMap(f int, entries []cmapEntry) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "/CIDInit /ProcSet findresource begin\n"+
		"12 dict begin\n"+
		"begincmap\n"+
		"/CIDSystemInfo\n"+
		"<< /Registry (UC%03d)\n"+
		"/Ordering (T42UV)\n"+
		"/Supplement 0\n"+
		">> def\n"+
		"/CMapName /UC%03d def\n"+
		"/CMapType 2 def\n"+
		"1 begincodespacerange\n"+
		"<00> <FF>\n"+
		"endcodespacerange\n"+
		"%d beginbfchar\n", f, f, len(entries))
	for _, e := range entries {
		fmt.Fprintf(&sb, "<%02X> <", e.code)
		for _, u := range utf16.Encode([]rune{e.r}) {
			fmt.Fprintf(&sb, "%04X", u)
		}
		sb.WriteString(">\n")
	}
	sb.WriteString("endbfchar\n" +
		"endcmap\n" +
		"CMapName currentdict /CMap defineresource pop\n" +
		"end\n" +
		"end\n")
	return sb.String()
}
