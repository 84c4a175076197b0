// Package model holds the output-side data structures: reflowed pages, the
// words placed on them, and document metadata.
//
// # Document Structure
//
// The [Document] type collects the pages produced from one source:
//
//	doc := model.NewDocument()
//	doc.Metadata.Title = "My Document"
//	doc.AddPage(page)
//
// Each [Page] carries a device-sized [bitmap.Bitmap] and, when OCR is
// enabled, the [Word] values positioned on it.
//
// # Geometry
//
// [BBox] and [Point] use image coordinates: the origin is the top-left
// corner and Y grows downward. Writers that need a bottom-left origin,
// such as the PDF writer, flip the Y axis themselves.
package model
