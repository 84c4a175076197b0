//go:build fitz

package rasterize

import (
	"fmt"

	"github.com/gen2brain/go-fitz"

	"github.com/tsawler/reflow/bitmap"
	"github.com/tsawler/reflow/model"
)

// DocumentSource renders PDF, XPS, EPUB and CBZ pages with MuPDF.
type DocumentSource struct {
	doc *fitz.Document
}

func openDocument(path string) (Source, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	if doc.NumPage() == 0 {
		doc.Close()
		return nil, ErrNoPages
	}
	return &DocumentSource{doc: doc}, nil
}

// PageCount returns the number of pages in the document.
func (s *DocumentSource) PageCount() int {
	return s.doc.NumPage()
}

// Page renders the page at dpi.
func (s *DocumentSource) Page(index int, dpi float64, color bool) (*bitmap.Bitmap, error) {
	if err := checkIndex(index, s.doc.NumPage()); err != nil {
		return nil, err
	}
	img, err := s.doc.ImageDPI(index, dpi)
	if err != nil {
		return nil, fmt.Errorf("failed to render page %d: %w", index+1, err)
	}
	return bitmap.FromImage(img, color), nil
}

// Metadata returns the document information MuPDF reports.
func (s *DocumentSource) Metadata() model.Metadata {
	m := s.doc.Metadata()
	return model.Metadata{
		Title:        m["title"],
		Author:       m["author"],
		Subject:      m["subject"],
		Keywords:     splitKeywords(m["keywords"]),
		Creator:      m["creator"],
		Producer:     m["producer"],
		CreationDate: parsePDFDate(m["creationDate"]),
		ModDate:      parsePDFDate(m["modDate"]),
	}
}

// Close releases the MuPDF document.
func (s *DocumentSource) Close() error {
	return s.doc.Close()
}
