package pipeline

import (
	"fmt"
	"strings"
)

// WarningType classifies a non-fatal problem.
type WarningType int

const (
	// WarningPageSkipped means a source page could not be read.
	WarningPageSkipped WarningType = iota
	// WarningRegionOverflow means the column search of a page produced too
	// many regions and was cut short.
	WarningRegionOverflow
	// WarningOCRFailed means the recognizer returned errors for some words.
	WarningOCRFailed
)

// String returns a string representation of the warning type
func (t WarningType) String() string {
	switch t {
	case WarningPageSkipped:
		return "page skipped"
	case WarningRegionOverflow:
		return "region overflow"
	case WarningOCRFailed:
		return "ocr failed"
	default:
		return "unknown"
	}
}

// Warning is a problem that did not stop the conversion.
type Warning struct {
	Type WarningType

	// Page is the 1-based source page, 0 when not tied to a page.
	Page int

	Message string
}

// String formats the warning for display.
func (w Warning) String() string {
	if w.Page > 0 {
		return fmt.Sprintf("page %d: %s: %s", w.Page, w.Type, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Type, w.Message)
}

// FormatWarnings joins warnings into one line each. It returns an empty
// string for no warnings.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
