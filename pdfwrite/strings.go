package pdfwrite

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/tsawler/reflow/internal/filters"
)

// pdfDocSpecial holds the PDFDocEncoding code points that differ from
// Latin-1.
var pdfDocSpecial = map[rune]byte{
	0x02d8: 0x18, 0x02c7: 0x19, 0x02c6: 0x1a, 0x02d9: 0x1b,
	0x02dd: 0x1c, 0x02db: 0x1d, 0x02da: 0x1e, 0x02dc: 0x1f,
	0x2022: 0x80, 0x2020: 0x81, 0x2021: 0x82, 0x2026: 0x83,
	0x2014: 0x84, 0x2013: 0x85, 0x0192: 0x86, 0x2044: 0x87,
	0x2039: 0x88, 0x203a: 0x89, 0x2212: 0x8a, 0x2030: 0x8b,
	0x201e: 0x8c, 0x201c: 0x8d, 0x201d: 0x8e, 0x2018: 0x8f,
	0x2019: 0x90, 0x201a: 0x91, 0x2122: 0x92, 0xfb01: 0x93,
	0xfb02: 0x94, 0x0141: 0x95, 0x0152: 0x96, 0x0160: 0x97,
	0x0178: 0x98, 0x017d: 0x99, 0x0131: 0x9a, 0x0142: 0x9b,
	0x0153: 0x9c, 0x0161: 0x9d, 0x017e: 0x9e, 0x20ac: 0xa0,
}

// pdfDocByte returns the PDFDocEncoding byte for r.
func pdfDocByte(r rune) (byte, bool) {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return byte(r), true
	case r >= 0x20 && r <= 0x7e:
		return byte(r), true
	}
	if b, ok := pdfDocSpecial[r]; ok {
		return b, true
	}
	if r == 0xa0 || r == 0xad {
		return 0, false
	}
	if r > 0xa0 && r <= 0xff {
		return charmap.ISO8859_1.EncodeRune(r)
	}
	return 0, false
}

// textString formats s as a PDF text string: a literal string in
// PDFDocEncoding when every character has a code there, otherwise a hex
// string of UTF-16BE with a byte order mark.
func textString(s string) string {
	var sb strings.Builder
	sb.WriteByte('(')
	for _, r := range s {
		b, ok := pdfDocByte(r)
		if !ok {
			return utf16String(s)
		}
		switch {
		case b == '(' || b == ')' || b == '\\':
			sb.WriteByte('\\')
			sb.WriteByte(b)
		case b >= 32 && b <= 126:
			sb.WriteByte(b)
		default:
			fmt.Fprintf(&sb, "\\%03o", b)
		}
	}
	sb.WriteByte(')')
	return sb.String()
}

func utf16String(s string) string {
	enc := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder()
	data, err := enc.Bytes([]byte(strings.ToValidUTF8(s, "\uFFFD")))
	if err != nil {
		return "<FEFF>"
	}
	return "<" + string(filters.ASCIIHexEncode(data)) + ">"
}

// dateString formats t as a PDF date, D:YYYYMMDDHHmmSS+HH'mm'.
func dateString(t time.Time) string {
	_, offset := t.Zone()
	sign := byte('+')
	if offset < 0 {
		sign = '-'
		offset = -offset
	}
	if offset == 0 {
		return "(D:" + t.Format("20060102150405") + "Z00'00')"
	}
	return fmt.Sprintf("(D:%s%c%02d'%02d')", t.Format("20060102150405"), sign, offset/3600, offset/60%60)
}
