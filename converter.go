package reflow

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/tsawler/reflow/layout"
	"github.com/tsawler/reflow/model"
	"github.com/tsawler/reflow/ocr"
	"github.com/tsawler/reflow/pdfwrite"
	"github.com/tsawler/reflow/pipeline"
	"github.com/tsawler/reflow/rasterize"
	"github.com/tsawler/reflow/text"
	"github.com/tsawler/reflow/wrap"
)

// Converter provides a fluent interface for reflowing a document. Each
// configuration method returns a new Converter instance, so a partially
// configured Converter can be shared and extended safely.
type Converter struct {
	// Source
	path       string
	source     rasterize.Source
	ownsSource bool // true if we opened the source and should close it
	sourceOpen bool

	// Configuration
	options ConvertOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Converter with a deep copy of options.
func (c *Converter) clone() *Converter {
	return &Converter{
		path:       c.path,
		source:     c.source,
		ownsSource: c.ownsSource,
		sourceOpen: c.sourceOpen,
		options:    c.options.clone(),
		err:        c.err,
	}
}

// with returns a clone with fn applied to its options.
func (c *Converter) with(fn func(o *ConvertOptions)) *Converter {
	newConv := c.clone()
	fn(&newConv.options)
	return newConv
}

// fail returns a clone carrying err unless an earlier error is pending.
func (c *Converter) fail(err error) *Converter {
	newConv := c.clone()
	if newConv.err == nil {
		newConv.err = err
	}
	return newConv
}

// ensureSource opens the source if not already open.
func (c *Converter) ensureSource() error {
	if c.sourceOpen {
		return nil
	}
	if c.path == "" {
		return fmt.Errorf("no source specified")
	}
	src, err := rasterize.Open(c.path)
	if err != nil {
		return err
	}
	c.source = src
	c.ownsSource = true
	c.sourceOpen = true
	return nil
}

// Close releases the source if the Converter opened it. It is safe to call
// Close multiple times.
func (c *Converter) Close() error {
	if c.ownsSource && c.source != nil {
		err := c.source.Close()
		c.source = nil
		c.ownsSource = false
		c.sourceOpen = false
		return err
	}
	return nil
}

// ============================================================================
// Configuration Methods (return new Converter instance)
// ============================================================================

// Pages selects the source pages to convert (1-indexed). Multiple calls
// are cumulative.
func (c *Converter) Pages(pages ...int) *Converter {
	return c.with(func(o *ConvertOptions) {
		o.pages = append(o.pages, pages...)
	})
}

// PageRange selects a range of source pages (1-indexed, inclusive).
func (c *Converter) PageRange(start, end int) *Converter {
	return c.with(func(o *ConvertOptions) {
		for i := start; i <= end; i++ {
			o.pages = append(o.pages, i)
		}
	})
}

// Device sets the output screen.
//
// Example:
//
//	_, _, err := reflow.Open("doc.pdf").Device(reflow.Devices["kbg"]).WriteFile("out.pdf")
func (c *Converter) Device(d Device) *Converter {
	if d.Width <= 0 || d.Height <= 0 || d.DPI <= 0 {
		return c.fail(fmt.Errorf("invalid device %q: %dx%d at %d dpi", d.Name, d.Width, d.Height, d.DPI))
	}
	return c.with(func(o *ConvertOptions) {
		o.config.Pages.Width = d.Width
		o.config.Pages.Height = d.Height
		o.config.Pages.DPI = d.DPI
	})
}

// DeviceNamed sets the output screen to one of the Devices presets.
func (c *Converter) DeviceNamed(name string) *Converter {
	d, ok := Devices[name]
	if !ok {
		return c.fail(fmt.Errorf("unknown device %q", name))
	}
	return c.Device(d)
}

// Margins sets the blank border of every output page, in inches.
func (c *Converter) Margins(left, top, right, bottom float64) *Converter {
	return c.with(func(o *ConvertOptions) {
		o.config.Pages.MarginLeft = left
		o.config.Pages.MarginTop = top
		o.config.Pages.MarginRight = right
		o.config.Pages.MarginBottom = bottom
	})
}

// IgnoreSourceMargins drops the given border of every source page, in
// inches. Useful for running heads and page numbers.
func (c *Converter) IgnoreSourceMargins(left, top, right, bottom float64) *Converter {
	return c.with(func(o *ConvertOptions) {
		o.config.SourceMargins = pipeline.Margins{Left: left, Top: top, Right: right, Bottom: bottom}
	})
}

// SourceDPI sets the resolution source pages are rendered at. Image
// sources are resampled to it.
// Default: 300
func (c *Converter) SourceDPI(dpi int) *Converter {
	if dpi <= 0 {
		return c.fail(fmt.Errorf("invalid source dpi %d", dpi))
	}
	return c.with(func(o *ConvertOptions) {
		o.config.Layout.DPI = dpi
	})
}

// Columns sets the largest number of columns looked for on a source page.
// Values above 2 search for up to 4.
// Default: 2
func (c *Converter) Columns(n int) *Converter {
	if n < 1 {
		return c.fail(fmt.Errorf("invalid column count %d", n))
	}
	return c.with(func(o *ConvertOptions) {
		o.config.Layout.MaxColumns = n
	})
}

// RightToLeft reads columns and words right to left.
func (c *Converter) RightToLeft() *Converter {
	return c.with(func(o *ConvertOptions) {
		o.config.Layout.Direction = text.RTL
	})
}

// NoWrap copies text rows unchanged instead of re-wrapping them.
func (c *Converter) NoWrap() *Converter {
	return c.with(func(o *ConvertOptions) {
		o.config.Wrap.Mode = wrap.ModeOff
	})
}

// UnwrapShortLines joins short lines into the paragraph around them as
// well.
func (c *Converter) UnwrapShortLines() *Converter {
	return c.with(func(o *ConvertOptions) {
		o.config.Wrap.Mode = wrap.ModeUnwrapShort
	})
}

// MaxWidth bounds the width of a re-wrapped line, in inches of source.
func (c *Converter) MaxWidth(inches float64) *Converter {
	return c.with(func(o *ConvertOptions) {
		o.config.Wrap.MaxRegionWidthIn = inches
	})
}

// Justify forces the placement of every output line.
func (c *Converter) Justify(j layout.Justification) *Converter {
	return c.with(func(o *ConvertOptions) {
		o.config.Layout.Justification = j
	})
}

// FullJustify turns full justification of wrapped lines on or off. The
// default decides per block.
func (c *Converter) FullJustify(on bool) *Converter {
	return c.with(func(o *ConvertOptions) {
		o.config.Layout.FullJustify = layout.ToggleOff
		if on {
			o.config.Layout.FullJustify = layout.ToggleOn
		}
	})
}

// LineSpacing sets the output line spacing as a multiple of the font
// size. A negative value keeps the source spacing up to that limit.
// Default: -1.2
func (c *Converter) LineSpacing(v float64) *Converter {
	return c.with(func(o *ConvertOptions) {
		o.config.Layout.VerticalLineSpacing = v
	})
}

// FitToPage lets a page hold up to percent more rows than fit, shrinking
// it to the screen. A negative percent allows any overflow.
func (c *Converter) FitToPage(percent int) *Converter {
	return c.with(func(o *ConvertOptions) {
		o.config.Pages.FitToPage = percent
	})
}

// Color keeps colour in the output. Pages are gray by default.
func (c *Converter) Color() *Converter {
	return c.with(func(o *ConvertOptions) {
		o.config.Pages.Color = true
	})
}

// CornerMarks marks the corners of every output page.
func (c *Converter) CornerMarks() *Converter {
	return c.with(func(o *ConvertOptions) {
		o.config.Pages.CornerMarks = true
	})
}

// OCR recognizes every output word with Tesseract and writes an invisible
// text layer. It needs a build with -tags ocr.
func (c *Converter) OCR() *Converter {
	return c.with(func(o *ConvertOptions) {
		o.config.OCR = true
	})
}

// Recognizer recognizes output words with r instead of Tesseract.
func (c *Converter) Recognizer(r ocr.Recognizer) *Converter {
	return c.with(func(o *ConvertOptions) {
		o.config.OCR = true
		o.config.Recognizer = r
	})
}

// JPEG stores output pages as JPEG at the given quality (1-100) instead
// of lossless Flate.
func (c *Converter) JPEG(quality int) *Converter {
	if quality < 1 || quality > 100 {
		return c.fail(fmt.Errorf("invalid JPEG quality %d", quality))
	}
	return c.with(func(o *ConvertOptions) {
		o.page.Quality = quality
	})
}

// BitDepth sets the bits per component of lossless output images: 1, 2, 4
// or 8.
func (c *Converter) BitDepth(bits int) *Converter {
	switch bits {
	case 1, 2, 4, 8:
	default:
		return c.fail(fmt.Errorf("invalid bit depth %d", bits))
	}
	return c.with(func(o *ConvertOptions) {
		o.page.BitDepth = bits
	})
}

// NoThumbnails leaves page thumbnails out of the PDF.
func (c *Converter) NoThumbnails() *Converter {
	return c.with(func(o *ConvertOptions) {
		o.page.Thumbnail = false
	})
}

// NoText leaves the recognized text layer out of the PDF.
func (c *Converter) NoText() *Converter {
	return c.with(func(o *ConvertOptions) {
		o.page.Text = false
	})
}

// Metadata overrides fields of the document information. Empty fields keep
// the values read from the source.
func (c *Converter) Metadata(meta model.Metadata) *Converter {
	return c.with(func(o *ConvertOptions) {
		o.meta = meta
		o.meta.Keywords = append([]string(nil), meta.Keywords...)
	})
}

// Logger sends pipeline diagnostics to l.
func (c *Converter) Logger(l logrus.FieldLogger) *Converter {
	return c.with(func(o *ConvertOptions) {
		o.config.Logger = l
	})
}

// Configure applies fn to the full pipeline configuration for settings
// without a method of their own.
//
// Example:
//
//	conv := reflow.Open("doc.pdf").Configure(func(cfg *pipeline.Config) {
//	    cfg.Layout.WordSpacing = 0.25
//	})
func (c *Converter) Configure(fn func(cfg *pipeline.Config)) *Converter {
	return c.with(func(o *ConvertOptions) {
		fn(&o.config)
	})
}

// ============================================================================
// Terminal Operations
// ============================================================================

// PageCount returns the number of pages in the source.
func (c *Converter) PageCount() (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	if err := c.ensureSource(); err != nil {
		return 0, err
	}
	defer c.Close()
	return c.source.PageCount(), nil
}

// Render converts the selected pages and returns the device pages.
func (c *Converter) Render() ([]*model.Page, []Warning, error) {
	var out []*model.Page
	_, warnings, err := c.convert(pipeline.PageWriterFunc(func(page *model.Page) error {
		out = append(out, page)
		return nil
	}))
	if err != nil {
		return nil, warnings, err
	}
	return out, warnings, nil
}

// Write converts the selected pages into a PDF written to w and returns
// the number of device pages.
func (c *Converter) Write(w io.Writer) (int, []Warning, error) {
	if c.err != nil {
		return 0, nil, c.err
	}
	pdf, err := pdfwrite.NewWriter(w)
	if err != nil {
		return 0, nil, err
	}
	return c.writePDF(pdf)
}

// WriteFile converts the selected pages into a PDF file at path. The file
// is removed again if the conversion fails.
//
// Example:
//
//	n, warnings, err := reflow.Open("scan.pdf").DeviceNamed("kpw").WriteFile("scan_kpw.pdf")
func (c *Converter) WriteFile(path string) (int, []Warning, error) {
	if c.err != nil {
		return 0, nil, c.err
	}
	pdf, err := pdfwrite.Create(path)
	if err != nil {
		return 0, nil, err
	}
	n, warnings, err := c.writePDF(pdf)
	if err != nil {
		os.Remove(path)
		return 0, warnings, err
	}
	return n, warnings, nil
}

func (c *Converter) writePDF(pdf *pdfwrite.Writer) (int, []Warning, error) {
	opts := c.options.page
	meta, warnings, err := c.convert(pipeline.PageWriterFunc(func(page *model.Page) error {
		return pdf.AddPage(page, opts)
	}))
	if err != nil {
		// Releases a file opened by Create.
		pdf.Finish(model.Metadata{})
		return 0, warnings, err
	}
	if err := pdf.Finish(meta); err != nil {
		return 0, warnings, err
	}
	return pdf.PageCount(), warnings, nil
}

// convert runs every selected source page through a pipeline that writes
// to pw and returns the output metadata.
func (c *Converter) convert(pw pipeline.PageWriter) (model.Metadata, []Warning, error) {
	if c.err != nil {
		return model.Metadata{}, nil, c.err
	}
	if err := c.ensureSource(); err != nil {
		return model.Metadata{}, nil, err
	}
	defer c.Close()

	indices, err := c.resolvePages()
	if err != nil {
		return model.Metadata{}, nil, err
	}

	cfg := c.options.config
	p, err := pipeline.New(cfg, pw)
	if err != nil {
		return model.Metadata{}, nil, err
	}

	dpi := float64(cfg.Layout.DPI)
	for _, index := range indices {
		bmp, err := c.source.Page(index, dpi, cfg.Pages.Color)
		if err != nil {
			p.SkipPage(index+1, err)
			continue
		}
		if err := p.AddPage(bmp, index+1); err != nil {
			p.Finish()
			return model.Metadata{}, p.Warnings(), err
		}
	}
	if err := p.Finish(); err != nil {
		return model.Metadata{}, p.Warnings(), err
	}
	if p.PagesWritten() == 0 {
		return model.Metadata{}, p.Warnings(), ErrNoPages
	}

	var srcMeta model.Metadata
	if ms, ok := c.source.(rasterize.MetadataSource); ok {
		srcMeta = ms.Metadata()
	}
	return c.options.metadata(srcMeta), p.Warnings(), nil
}

// resolvePages returns the 0-based indices of the selected pages.
func (c *Converter) resolvePages() ([]int, error) {
	count := c.source.PageCount()
	if count == 0 {
		return nil, rasterize.ErrNoPages
	}
	if c.options.pages == nil {
		indices := make([]int, count)
		for i := range indices {
			indices[i] = i
		}
		return indices, nil
	}

	indices := make([]int, 0, len(c.options.pages))
	for _, p := range c.options.pages {
		if p < 1 || p > count {
			return nil, fmt.Errorf("page %d out of range (document has %d pages)", p, count)
		}
		indices = append(indices, p-1)
	}
	return indices, nil
}
