package pdfwrite

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/tsawler/reflow/model"
)

// ErrClosed is returned when a writer is used after Finish.
var ErrClosed = errors.New("pdfwrite: writer is finished")

// Reserved object numbers.
const (
	catalogObject = 1
	pagesObject   = 2
)

// DefaultProducer is written to the Info dictionary when the metadata
// names no producer.
const DefaultProducer = "reflow"

// PageOptions controls how a page is encoded.
type PageOptions struct {
	// Quality selects JPEG compression at this quality (1-100). Zero or
	// less stores the image losslessly with Flate.
	// Default: 0
	Quality int

	// BitDepth is 8, 4, 2 or 1 bits per component for Flate images. Other
	// values mean 8.
	// Default: 8
	BitDepth int

	// Thumbnail adds a page thumbnail.
	// Default: true
	Thumbnail bool

	// Text writes the page words as an invisible, selectable text layer.
	// Default: true
	Text bool
}

// DefaultPageOptions returns lossless 8-bit pages with thumbnails and text.
func DefaultPageOptions() PageOptions {
	return PageOptions{
		BitDepth:  8,
		Thumbnail: true,
		Text:      true,
	}
}

// countingWriter tracks the byte offset and the first write error.
type countingWriter struct {
	w   *bufio.Writer
	n   int64
	err error
}

func (c *countingWriter) Write(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err := c.w.Write(p)
	c.n += int64(n)
	c.err = err
	return n, err
}

func (c *countingWriter) printf(format string, args ...interface{}) {
	fmt.Fprintf(c, format, args...)
}

// Writer streams pages into a PDF file.
type Writer struct {
	out     *countingWriter
	closer  io.Closer
	offsets []int64
	pages   []int
	images  int
	done    bool

	// now supplies the modification date.
	now func() time.Time
}

// NewWriter starts a PDF on w. Nothing is complete until Finish.
func NewWriter(w io.Writer) (*Writer, error) {
	pw := &Writer{
		out:     &countingWriter{w: bufio.NewWriter(w)},
		offsets: make([]int64, pagesObject),
		now:     time.Now,
	}
	// The binary comment marks the file as 8-bit for transfer tools.
	pw.out.printf("%%PDF-1.3\n%%\xe2\xe3\xcf\xd3\n")
	if pw.out.err != nil {
		return nil, fmt.Errorf("failed to write PDF header: %w", pw.out.err)
	}
	return pw, nil
}

// Create creates (or truncates) the named file and starts a PDF in it. The
// file is closed by Finish.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	w, err := NewWriter(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	w.closer = f
	return w, nil
}

// PageCount returns the number of pages added so far.
func (w *Writer) PageCount() int {
	return len(w.pages)
}

// WritePage adds page with the default options.
func (w *Writer) WritePage(page *model.Page) error {
	return w.AddPage(page, DefaultPageOptions())
}

// newObject reserves the next object number.
func (w *Writer) newObject() int {
	w.offsets = append(w.offsets, 0)
	return len(w.offsets)
}

// beginObject records the offset of object n and writes its header.
func (w *Writer) beginObject(n int) {
	w.offsets[n-1] = w.out.n
	w.out.printf("%d 0 obj\n", n)
}

// writeStream writes object n as a stream with the given extra dictionary
// entries.
func (w *Writer) writeStream(n int, dict string, data []byte) {
	w.beginObject(n)
	w.out.printf("<<\n%s/Length %d\n>>\nstream\n", dict, len(data))
	w.out.Write(data)
	w.out.printf("\nendstream\nendobj\n")
}

// AddPage writes page as a full-page image plus, optionally, its words as
// invisible text. The page size in points follows from the image size and
// page.DPI.
func (w *Writer) AddPage(page *model.Page, opts PageOptions) error {
	if w.done {
		return ErrClosed
	}
	if page == nil || page.Image == nil || page.Image.Width == 0 || page.Image.Height == 0 {
		return fmt.Errorf("pdfwrite: page has no image")
	}
	dpi := float64(page.DPI)
	if dpi <= 0 {
		dpi = 72
	}
	img := page.Image
	pw := float64(img.Width) * 72 / dpi
	ph := float64(img.Height) * 72 / dpi

	main, err := encodeImage(img, opts.Quality, opts.BitDepth)
	if err != nil {
		return err
	}
	var thumb *imageStream
	if opts.Thumbnail {
		if thumb, err = encodeImage(thumbnail(img), 0, 8); err != nil {
			return err
		}
	}

	var cm *charMap
	if opts.Text && len(page.Words) > 0 {
		cm = newCharMap()
		for _, word := range page.Words {
			cm.add(word.Text)
		}
	}

	pageObj := w.newObject()
	var cmapObjs []int
	if cm != nil {
		for i := 0; i < cm.fonts(); i++ {
			cmapObjs = append(cmapObjs, w.newObject())
		}
	}
	contentsObj := w.newObject()
	imageObj := w.newObject()
	thumbObj := 0
	if thumb != nil {
		thumbObj = w.newObject()
	}
	w.images++

	var res strings.Builder
	if cm != nil {
		res.WriteString("    /Font << /F1 << /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")
		for i, obj := range cmapObjs {
			fmt.Fprintf(&res, "\n             /F%d << /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding /ToUnicode %d 0 R >>", i+2, obj)
		}
		res.WriteString(" >>\n")
	}
	procSet := "/ImageB"
	if img.IsColor() {
		procSet = "/ImageC"
	}
	fmt.Fprintf(&res, "    /XObject << /Im%d %d 0 R >>\n    /ProcSet [ /PDF /Text %s ]\n", w.images, imageObj, procSet)

	w.beginObject(pageObj)
	w.out.printf("<<\n/Type /Page\n/Parent %d 0 R\n/Resources\n    <<\n%s    >>\n", pagesObject, res.String())
	w.out.printf("/MediaBox [0 0 %.1f %.1f]\n/CropBox [0 0 %.1f %.1f]\n/Contents %d 0 R\n", pw, ph, pw, ph, contentsObj)
	if thumbObj > 0 {
		w.out.printf("/Thumb %d 0 R\n", thumbObj)
	}
	w.out.printf(">>\nendobj\n")

	for i, obj := range cmapObjs {
		w.writeStream(obj, "", []byte(toUnicodeCMap(i+1, cm.entries(i+2))))
	}

	var content strings.Builder
	fmt.Fprintf(&content, "q\n%.1f 0 0 %.1f 0 0 cm\n/Im%d Do\nQ\n", pw, ph, w.images)
	if cm != nil {
		content.WriteString(textLayer(page.Words, dpi, ph, cm))
	}
	w.writeStream(contentsObj, "", []byte(content.String()))

	w.writeImage(imageObj, main, true)
	if thumb != nil {
		w.writeImage(thumbObj, thumb, false)
	}

	if w.out.err != nil {
		return fmt.Errorf("failed to write page %d: %w", len(w.pages)+1, w.out.err)
	}
	w.pages = append(w.pages, pageObj)
	return nil
}

// writeImage writes an image stream. Thumbnails carry no type entries and
// use an array filter.
func (w *Writer) writeImage(n int, is *imageStream, xobject bool) {
	var dict strings.Builder
	if xobject {
		dict.WriteString("/Type /XObject\n/Subtype /Image\n")
		fmt.Fprintf(&dict, "/Filter %s\n", is.filter)
	} else {
		fmt.Fprintf(&dict, "/Filter [ %s ]\n", is.filter)
	}
	if is.decodeParms != "" {
		if xobject {
			fmt.Fprintf(&dict, "/DecodeParms %s\n", is.decodeParms)
		} else {
			fmt.Fprintf(&dict, "/DecodeParms [ %s ]\n", is.decodeParms)
		}
	}
	fmt.Fprintf(&dict, "/Width %d\n/Height %d\n/ColorSpace %s\n/BitsPerComponent %d\n",
		is.width, is.height, is.colorSpace, is.bpc)
	w.writeStream(n, dict.String(), is.data)
}

// Finish writes the page tree, the Info dictionary built from meta and the
// cross-reference table. A file opened by Create is closed. The writer
// cannot be used afterwards.
func (w *Writer) Finish(meta model.Metadata) error {
	if w.done {
		return ErrClosed
	}
	w.done = true

	w.beginObject(pagesObject)
	w.out.printf("<<\n/Type /Pages\n/Kids [")
	for _, p := range w.pages {
		w.out.printf(" %d 0 R", p)
	}
	w.out.printf(" ]\n/Count %d\n>>\nendobj\n", len(w.pages))

	w.beginObject(catalogObject)
	w.out.printf("<<\n/Type /Catalog\n/Pages %d 0 R\n>>\nendobj\n", pagesObject)

	info := w.newObject()
	w.beginObject(info)
	w.out.printf("<<\n%s>>\nendobj\n", w.infoEntries(meta))

	xref := w.out.n
	// Some readers need the space before each line break.
	w.out.printf("xref\n0 %d\n0000000000 65535 f \n", len(w.offsets)+1)
	for _, off := range w.offsets {
		w.out.printf("%010d 00000 n \n", off)
	}
	w.out.printf("trailer\n<<\n/Size %d\n/Info %d 0 R\n/Root %d 0 R\n>>\nstartxref\n%d\n%%%%EOF\n",
		len(w.offsets)+1, info, catalogObject, xref)

	err := w.out.err
	if ferr := w.out.w.Flush(); err == nil && ferr != nil {
		err = ferr
	}
	if w.closer != nil {
		if cerr := w.closer.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}
	if err != nil {
		return fmt.Errorf("failed to finish PDF: %w", err)
	}
	return nil
}

// infoEntries returns the Info dictionary body.
func (w *Writer) infoEntries(meta model.Metadata) string {
	var sb strings.Builder
	entry := func(key, value string) {
		if value != "" {
			fmt.Fprintf(&sb, "/%s %s\n", key, textString(value))
		}
	}
	entry("Title", meta.Title)
	entry("Author", meta.Author)
	entry("Subject", meta.Subject)
	entry("Keywords", strings.Join(meta.Keywords, ", "))
	entry("Creator", meta.Creator)
	producer := meta.Producer
	if producer == "" {
		producer = DefaultProducer
	}
	entry("Producer", producer)

	now := w.now()
	created := meta.CreationDate
	if created.IsZero() {
		created = now
	}
	modified := meta.ModDate
	if modified.IsZero() {
		modified = now
	}
	fmt.Fprintf(&sb, "/CreationDate %s\n/ModDate %s\n", dateString(created), dateString(modified))
	return sb.String()
}
