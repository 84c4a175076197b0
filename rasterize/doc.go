// Package rasterize turns source documents into page bitmaps.
//
// A Source yields one grayscale (optionally colour) bitmap per page at a
// requested resolution:
//
//	src, err := rasterize.Open("scan.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer src.Close()
//
//	for i := 0; i < src.PageCount(); i++ {
//	    bmp, err := src.Page(i, 300, false)
//	    ...
//	}
//
// # Supported Inputs
//
// Image files (PNG, JPEG, GIF, TIFF, BMP, WebP) and directories of image
// files are decoded directly, one image per page. Raw CCITT fax files
// (.g3, .g4, .fax) are decoded as 1728 pixel wide pages at 204x196 dpi.
//
// PDF, XPS, EPUB and CBZ documents are rendered with MuPDF through go-fitz.
// This requires cgo and is only compiled in with the fitz build tag:
//
//	go build -tags fitz
//
// Without the tag, opening such a document returns ErrFitzNotEnabled.
// DjVu is recognized but not rendered and returns ErrUnsupportedFormat.
package rasterize
