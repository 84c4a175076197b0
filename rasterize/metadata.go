package rasterize

import (
	"strings"
	"time"
)

// pdfDateLayouts are the D:YYYYMMDDHHmmSSOHH'mm' prefixes seen in practice,
// longest first.
var pdfDateLayouts = []string{
	"20060102150405-07'00'",
	"20060102150405-0700",
	"20060102150405Z",
	"20060102150405",
	"200601021504",
	"2006010215",
	"20060102",
	"200601",
	"2006",
}

// parsePDFDate parses a PDF date string. It returns the zero time when the
// string matches no known layout.
func parsePDFDate(s string) time.Time {
	s = strings.TrimPrefix(strings.TrimSpace(s), "D:")
	if strings.HasSuffix(s, "Z00'00'") {
		s = strings.TrimSuffix(s, "00'00'")
	}
	for _, layout := range pdfDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// splitKeywords splits a keyword list on commas or semicolons.
func splitKeywords(s string) []string {
	var out []string
	for _, k := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' }) {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}
