//go:build !fitz

package rasterize

func openDocument(path string) (Source, error) {
	return nil, ErrFitzNotEnabled
}
