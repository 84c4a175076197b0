// Package pdfwrite writes bitmap pages to a PDF file.
//
// Every page becomes one image XObject drawn over the whole media box.
// Images are stored Flate compressed at 8, 4, 2 or 1 bits per component,
// or as JPEG when a quality is given. A small thumbnail is written with each
// page for readers that show a page strip.
//
// When a page carries recognized words they are written as an invisible
// Helvetica text layer (render mode 3) positioned over the word images, so
// the text can be searched, selected and copied. Characters outside
// WinAnsiEncoding are drawn with extra copies of Helvetica whose ToUnicode
// maps send stand-in glyph codes back to the real characters.
//
//	w, err := pdfwrite.Create("out.pdf")
//	if err != nil {
//	    return err
//	}
//	for _, page := range pages {
//	    if err := w.AddPage(page, pdfwrite.DefaultPageOptions()); err != nil {
//	        return err
//	    }
//	}
//	return w.Finish(model.Metadata{Title: "Reflowed"})
//
// The writer produces PDF 1.3 with a classic cross-reference table. Objects
// are streamed as pages are added; only the object offsets are kept in
// memory.
package pdfwrite
