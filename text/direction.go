package text

import "unicode"

// Direction is the order in which a text line is read.
type Direction int

const (
	// LTR is left-to-right reading (Latin, Cyrillic, CJK, ...).
	LTR Direction = iota
	// RTL is right-to-left reading (Arabic, Hebrew, ...).
	RTL
	// Neutral marks text with no strongly directional characters.
	Neutral
)

// String returns "LTR", "RTL" or "Neutral".
func (d Direction) String() string {
	switch d {
	case LTR:
		return "LTR"
	case RTL:
		return "RTL"
	case Neutral:
		return "Neutral"
	default:
		return "Unknown"
	}
}

// LeftToRight reports whether lines are read starting at the left edge.
// Neutral is treated as left-to-right.
func (d Direction) LeftToRight() bool {
	return d != RTL
}

// rtlScripts are the scripts whose characters are strongly right-to-left.
var rtlScripts = []*unicode.RangeTable{
	unicode.Arabic,
	unicode.Hebrew,
	unicode.Syriac,
	unicode.Thaana,
	unicode.Nko,
}

// CharDirection returns the inherent direction of r. Digits, punctuation,
// spaces and symbols are Neutral.
func CharDirection(r rune) Direction {
	if unicode.IsDigit(r) || unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r) {
		return Neutral
	}
	if unicode.IsOneOf(rtlScripts, r) {
		return RTL
	}
	return LTR
}

// DetectDirection returns the dominant direction of s by counting strongly
// directional characters. Ties go to LTR; strings with no strong characters
// are Neutral.
func DetectDirection(s string) Direction {
	ltr, rtl := 0, 0
	for _, r := range s {
		switch CharDirection(r) {
		case LTR:
			ltr++
		case RTL:
			rtl++
		}
	}
	switch {
	case ltr == 0 && rtl == 0:
		return Neutral
	case rtl > ltr:
		return RTL
	default:
		return LTR
	}
}
