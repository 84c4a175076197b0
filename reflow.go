// Package reflow re-lays out scanned or rendered document pages for small
// screens. Source pages are rasterized, cut into columns, text rows and
// words, re-wrapped to the width of the target device and packed into new
// device-sized pages, which are written as a PDF.
//
// Basic usage:
//
//	n, warnings, err := reflow.Open("paper.pdf").WriteFile("paper_k2.pdf")
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", reflow.FormatWarnings(warnings))
//	}
//	log.Printf("wrote %d pages", n)
//
// With options:
//
//	_, _, err := reflow.Open("paper.pdf").
//	    Device(reflow.Devices["kpw"]).
//	    Columns(2).
//	    Pages(1, 2, 3).
//	    WriteFile("paper_kpw.pdf")
//
// The lower-level packages (rasterize, pipeline, pdfwrite) can be used
// directly when the page bitmaps come from somewhere else.
package reflow

import (
	"errors"

	"github.com/tsawler/reflow/pipeline"
	"github.com/tsawler/reflow/rasterize"
)

// ErrNoPages is returned when a conversion produces no output pages, for
// example because every source page was blank or unreadable.
var ErrNoPages = errors.New("reflow: no output pages")

// Warning is a non-fatal problem met while converting.
type Warning = pipeline.Warning

// FormatWarnings returns warnings one per line.
func FormatWarnings(warnings []Warning) string {
	return pipeline.FormatWarnings(warnings)
}

// Open returns a Converter for the file or image directory at path. The
// source is opened by the first terminal operation and closed when it
// returns.
//
// Example:
//
//	_, _, err := reflow.Open("scan.tif").WriteFile("scan.pdf")
func Open(path string) *Converter {
	return &Converter{
		path:    path,
		options: defaultOptions(),
	}
}

// FromSource returns a Converter over an already-opened source. The caller
// remains responsible for closing it.
//
// Example:
//
//	src, err := rasterize.OpenDir("pages/")
//	if err != nil {
//	    // handle error
//	}
//	defer src.Close()
//	pages, _, err := reflow.FromSource(src).Render()
func FromSource(src rasterize.Source) *Converter {
	return &Converter{
		source:     src,
		sourceOpen: true,
		options:    defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil.
//
// Example:
//
//	count := reflow.Must(reflow.Open("paper.pdf").PageCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustConvert wraps a terminal operation, panics if the error is non-nil
// and discards the warnings.
//
// Example:
//
//	pages := reflow.MustConvert(reflow.Open("scan.png").Render())
func MustConvert[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
