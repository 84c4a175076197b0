package pdfwrite

import (
	"sort"

	"golang.org/x/text/encoding/charmap"
)

// helveticaWidths are the Helvetica advance widths, in thousandths of the
// font size, for codes 32 to 126.
var helveticaWidths = [95]int{
	278, 278, 355, 556, 556, 889, 667, 191, 333, 333, 389, 584, 278, 333, 278, 278, // space - /
	556, 556, 556, 556, 556, 556, 556, 556, 556, 556, 278, 278, 584, 584, 584, 556, // 0 - ?
	1015, 667, 667, 722, 722, 667, 611, 778, 722, 278, 500, 667, 556, 833, 722, 778, // @ - O
	667, 778, 722, 667, 611, 722, 667, 944, 667, 667, 611, 278, 278, 278, 469, 556, // P - _
	333, 556, 556, 500, 556, 556, 278, 556, 556, 222, 222, 500, 222, 833, 556, 556, // ` - o
	556, 556, 333, 500, 278, 556, 500, 722, 500, 500, 500, 334, 260, 334, 584, // p - ~
}

// meanWidth stands in for codes outside the table.
const meanWidth = 556

// glyphWidth returns the Helvetica width of code c in text space units per
// point of font size.
func glyphWidth(c byte) float64 {
	if c >= 32 && c <= 126 {
		return float64(helveticaWidths[c-32]) / 1000
	}
	return meanWidth / 1000.0
}

// standInCodes are the glyph codes borrowed for characters Helvetica cannot
// show: wide glyphs that sit on the baseline, so selection boxes look
// reasonable.
const standInCodes = "ABCDEFGHKLMNOPRSTUVWXYZ0123456789abcdehkmnosuvwxz"

// glyph is a font number (1 for the WinAnsi font) and a code in it.
type glyph struct {
	font int
	code byte
}

// charMap assigns stand-in glyphs to characters outside WinAnsiEncoding.
// Each extra font holds len(standInCodes) characters.
type charMap struct {
	runes  []rune
	glyphs map[rune]glyph
}

func newCharMap() *charMap {
	return &charMap{glyphs: make(map[rune]glyph)}
}

// winAnsi returns the WinAnsiEncoding code for r.
func winAnsi(r rune) (byte, bool) {
	if r < 32 {
		return 0, false
	}
	b, ok := charmap.Windows1252.EncodeRune(r)
	if !ok || b < 32 {
		return 0, false
	}
	return b, true
}

// add registers every character of s that needs a stand-in.
func (m *charMap) add(s string) {
	for _, r := range s {
		if _, ok := winAnsi(r); ok {
			continue
		}
		if _, ok := m.glyphs[r]; ok {
			continue
		}
		n := len(m.runes)
		m.runes = append(m.runes, r)
		m.glyphs[r] = glyph{font: 2 + n/len(standInCodes), code: standInCodes[n%len(standInCodes)]}
	}
}

// lookup returns the glyph drawing r. Unknown characters become a space.
func (m *charMap) lookup(r rune) glyph {
	if b, ok := winAnsi(r); ok {
		return glyph{font: 1, code: b}
	}
	if g, ok := m.glyphs[r]; ok {
		return g
	}
	return glyph{font: 1, code: ' '}
}

// fonts returns the number of extra fonts needed.
func (m *charMap) fonts() int {
	return (len(m.runes) + len(standInCodes) - 1) / len(standInCodes)
}

// cmapEntry maps a glyph code to the character it stands for.
type cmapEntry struct {
	code byte
	r    rune
}

// entries returns the code mappings of extra font f (2 and up) in code
// order.
func (m *charMap) entries(f int) []cmapEntry {
	var out []cmapEntry
	for _, r := range m.runes {
		if g := m.glyphs[r]; g.font == f {
			out = append(out, cmapEntry{code: g.code, r: r})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].code < out[j].code })
	return out
}
