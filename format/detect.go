// Package format identifies the kind of source a page stream comes from.
package format

import (
	"archive/zip"
	"bytes"
	"io"
	"path/filepath"
	"strings"
)

// Format represents a supported source format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PDF indicates a PDF document.
	PDF
	// XPS indicates an OpenXPS / XPS document.
	XPS
	// EPUB indicates an EPUB e-book.
	EPUB
	// CBZ indicates a comic book archive of page images.
	CBZ
	// DJVU indicates a DjVu document.
	DJVU
	// PNG indicates a PNG image.
	PNG
	// JPEG indicates a JPEG image.
	JPEG
	// TIFF indicates a TIFF image.
	TIFF
	// BMP indicates a Windows bitmap.
	BMP
	// GIF indicates a GIF image.
	GIF
	// WebP indicates a WebP image.
	WebP
	// Fax indicates raw CCITT Group 3 or Group 4 fax data.
	Fax
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PDF:
		return "PDF"
	case XPS:
		return "XPS"
	case EPUB:
		return "EPUB"
	case CBZ:
		return "CBZ"
	case DJVU:
		return "DJVU"
	case PNG:
		return "PNG"
	case JPEG:
		return "JPEG"
	case TIFF:
		return "TIFF"
	case BMP:
		return "BMP"
	case GIF:
		return "GIF"
	case WebP:
		return "WebP"
	case Fax:
		return "Fax"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case PDF:
		return ".pdf"
	case XPS:
		return ".xps"
	case EPUB:
		return ".epub"
	case CBZ:
		return ".cbz"
	case DJVU:
		return ".djvu"
	case PNG:
		return ".png"
	case JPEG:
		return ".jpg"
	case TIFF:
		return ".tif"
	case BMP:
		return ".bmp"
	case GIF:
		return ".gif"
	case WebP:
		return ".webp"
	case Fax:
		return ".g4"
	default:
		return ""
	}
}

// IsImage reports whether the format is a single raster image decoded
// directly rather than rendered.
func (f Format) IsImage() bool {
	switch f {
	case PNG, JPEG, TIFF, BMP, GIF, WebP:
		return true
	}
	return false
}

// IsDocument reports whether the format needs a document renderer to
// produce page bitmaps.
func (f Format) IsDocument() bool {
	switch f {
	case PDF, XPS, EPUB, CBZ, DJVU:
		return true
	}
	return false
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return PDF
	case ".xps", ".oxps":
		return XPS
	case ".epub":
		return EPUB
	case ".cbz":
		return CBZ
	case ".djvu", ".djv":
		return DJVU
	case ".png":
		return PNG
	case ".jpg", ".jpeg":
		return JPEG
	case ".tif", ".tiff":
		return TIFF
	case ".bmp":
		return BMP
	case ".gif":
		return GIF
	case ".webp":
		return WebP
	case ".g3", ".g4", ".fax":
		return Fax
	default:
		return Unknown
	}
}

// DetectFromMagic checks file magic bytes to determine format.
// This provides more reliable detection than extension-based detection.
// ZIP containers and raw fax data carry no usable magic, so they return
// Unknown; use DetectFromReader for ZIP files.
func DetectFromMagic(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, []byte("%PDF")):
		return PDF
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return PNG
	case bytes.HasPrefix(data, []byte{0xFF, 0xD8, 0xFF}):
		return JPEG
	case bytes.HasPrefix(data, []byte("II*\x00")), bytes.HasPrefix(data, []byte("MM\x00*")):
		return TIFF
	case bytes.HasPrefix(data, []byte("GIF87a")), bytes.HasPrefix(data, []byte("GIF89a")):
		return GIF
	case len(data) >= 12 && bytes.Equal(data[:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")):
		return WebP
	case bytes.HasPrefix(data, []byte("AT&TFORM")):
		return DJVU
	case len(data) >= 14 && data[0] == 'B' && data[1] == 'M':
		return BMP
	}
	return Unknown
}

func isZIP(data []byte) bool {
	return bytes.HasPrefix(data, []byte("PK\x03\x04"))
}

// DetectFromReader inspects the content to determine format. It can
// distinguish the ZIP-based formats (EPUB, XPS, CBZ).
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, 512)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	magic = magic[:n]

	if isZIP(magic) {
		return detectZIPFormat(r, size)
	}
	return DetectFromMagic(magic), nil
}

// detectZIPFormat inspects a ZIP archive to determine if it's EPUB, XPS or
// an archive of page images.
func detectZIPFormat(r io.ReaderAt, size int64) (Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}

	// EPUB has a mimetype file at the start
	for _, f := range zr.File {
		if f.Name == "mimetype" {
			rc, err := f.Open()
			if err == nil {
				data := make([]byte, 256)
				n, _ := rc.Read(data)
				rc.Close()
				if strings.Contains(string(data[:n]), "application/epub+zip") {
					return EPUB, nil
				}
			}
		}
	}

	images := 0
	for _, f := range zr.File {
		name := strings.ToLower(f.Name)
		switch {
		case strings.HasSuffix(name, ".fdseq"), strings.HasSuffix(name, ".fpage"):
			return XPS, nil
		case Detect(name).IsImage():
			images++
		}
	}
	if images > 0 {
		return CBZ, nil
	}
	return Unknown, nil
}
