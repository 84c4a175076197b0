package pipeline

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/tsawler/reflow/bitmap"
	"github.com/tsawler/reflow/layout"
	"github.com/tsawler/reflow/model"
	"github.com/tsawler/reflow/ocr"
	"github.com/tsawler/reflow/pages"
	"github.com/tsawler/reflow/wrap"
)

// State is the running state threaded through every region of a document:
// the last scale factor, the descent of the last line, the whitespace owed
// before the next line and the pending font change.
type State = wrap.State

// PageWriter receives finished device pages in order.
type PageWriter interface {
	WritePage(page *model.Page) error
}

// PageWriterFunc adapts an ordinary function to the PageWriter interface.
type PageWriterFunc func(page *model.Page) error

// WritePage calls f(page).
func (f PageWriterFunc) WritePage(page *model.Page) error {
	return f(page)
}

// Pipeline converts source pages into device pages.
type Pipeline struct {
	config    Config
	analyzer  *layout.Analyzer
	canvas    *pages.Canvas
	paginator *pages.Paginator
	engine    *wrap.Engine
	state     State
	writer    PageWriter
	log       logrus.FieldLogger
	closer    io.Closer

	// Per source page.
	page        int
	regions     int
	overflowed  bool
	ocrFailures int

	warnings []Warning
	written  int
	finished bool
}

// New returns a pipeline that hands its pages to w.
func New(config Config, w PageWriter) (*Pipeline, error) {
	if w == nil {
		return nil, fmt.Errorf("pipeline: nil page writer")
	}
	if config.Layout.DPI <= 0 {
		return nil, fmt.Errorf("pipeline: invalid source dpi %d", config.Layout.DPI)
	}
	if config.Pages.Width <= 0 || config.Pages.Height <= 0 || config.Pages.DPI <= 0 {
		return nil, fmt.Errorf("pipeline: invalid device %dx%d at %d dpi",
			config.Pages.Width, config.Pages.Height, config.Pages.DPI)
	}
	if config.MaxRegions <= 0 {
		config.MaxRegions = DefaultConfig().MaxRegions
	}
	if config.Logger == nil {
		config.Logger = discardLogger()
	}

	p := &Pipeline{
		config:    config,
		analyzer:  layout.NewAnalyzerWithConfig(config.Layout),
		paginator: pages.NewPaginator(config.Pages),
		writer:    w,
		log:       config.Logger,
	}

	var rec ocr.Recognizer
	if config.OCR {
		rec = config.Recognizer
		if rec == nil {
			client, err := ocr.New()
			if err != nil {
				return nil, fmt.Errorf("failed to start OCR: %w", err)
			}
			rec, p.closer = client, client
		}
		p.config.Wrap.WordBoxes = true
	}

	p.canvas = pages.NewCanvas(config.Pages, rec)
	p.engine = wrap.NewEngine(p.config.Wrap, p.analyzer, p.canvas, &p.state, float64(config.Layout.DPI))
	p.engine.SetColor(config.Pages.Color)
	return p, nil
}

// Config returns the configuration the pipeline runs with.
func (p *Pipeline) Config() Config {
	return p.config
}

// State returns the running state.
func (p *Pipeline) State() *State {
	return &p.state
}

// Canvas returns the canvas rows are collected on.
func (p *Pipeline) Canvas() *pages.Canvas {
	return p.canvas
}

// Warnings returns the warnings recorded so far.
func (p *Pipeline) Warnings() []Warning {
	return append([]Warning(nil), p.warnings...)
}

// PagesWritten returns the number of device pages handed to the writer.
func (p *Pipeline) PagesWritten() int {
	return p.written
}

// AddPage reflows one source page. pageNumber is 1-based and only used
// for diagnostics. Full device pages are written before it returns; the
// rest waits for more text or for Finish.
func (p *Pipeline) AddPage(bmp *bitmap.Bitmap, pageNumber int) error {
	if p.finished {
		return fmt.Errorf("pipeline: page %d added after Finish", pageNumber)
	}
	p.page = pageNumber
	p.regions = 0
	p.overflowed = false
	log := p.log.WithField("page", pageNumber)

	if bmp == nil || bmp.Width == 0 || bmp.Height == 0 {
		log.Debug("empty source page")
		return nil
	}
	r := p.cropMargins(p.analyzer.Region(bmp))
	if r.Empty() {
		log.Debug("source page is blank inside the margins")
		return nil
	}
	log.WithFields(logrus.Fields{
		"cols": r.Width(),
		"rows": r.Height(),
	}).Debug("adding source page")

	p.multicolumnAdd(r, 0)

	if n := p.canvas.OCRFailures - p.ocrFailures; n > 0 {
		p.ocrFailures = p.canvas.OCRFailures
		p.warn(Warning{
			Type:    WarningOCRFailed,
			Page:    pageNumber,
			Message: fmt.Sprintf("%d words could not be recognized", n),
		})
	}
	return p.publish(false)
}

// SkipPage records that a source page could not be read.
func (p *Pipeline) SkipPage(pageNumber int, err error) {
	p.warn(Warning{
		Type:    WarningPageSkipped,
		Page:    pageNumber,
		Message: err.Error(),
	})
}

// Finish flushes the line in progress and writes every remaining row. The
// pipeline accepts no pages afterwards. A Tesseract client created by New
// is closed.
func (p *Pipeline) Finish() error {
	if p.finished {
		return nil
	}
	p.finished = true
	p.engine.EndBlock(0)
	err := p.publish(true)
	if p.closer != nil {
		if cerr := p.closer.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close OCR client: %w", cerr)
		}
	}
	return err
}

func (p *Pipeline) publish(final bool) error {
	for _, pg := range p.paginator.Publish(p.canvas, final) {
		p.log.WithFields(logrus.Fields{
			"page":  p.page,
			"out":   pg.Number,
			"words": len(pg.Words),
		}).Debug("publishing device page")
		if err := p.writer.WritePage(pg); err != nil {
			return fmt.Errorf("failed to write page %d: %w", pg.Number, err)
		}
		p.written++
	}
	return nil
}

func (p *Pipeline) warn(w Warning) {
	p.warnings = append(p.warnings, w)
	p.log.WithFields(logrus.Fields{
		"page": w.Page,
		"type": w.Type.String(),
	}).Warn(w.Message)
}

// cropMargins removes the configured source margins from r.
func (p *Pipeline) cropMargins(r layout.Region) layout.Region {
	m := p.config.SourceMargins
	if m == (Margins{}) {
		return r
	}
	px := p.config.Layout.Pixels
	return r.Sub(r.C1+px(m.Left), r.R1+px(m.Top), r.C2-px(m.Right), r.R2-px(m.Bottom))
}

// verticallyBreak splits r into blocks at large row gaps and wraps each
// block. The whitespace below a block is carried to the next line, capped
// at the configured maximum.
func (p *Pipeline) verticallyBreak(r layout.Region) {
	blocks := p.analyzer.VerticalBlocks(&r)
	if len(blocks) == 0 {
		return
	}
	p.log.WithFields(logrus.Fields{
		"page":   p.page,
		"region": r.Rect().String(),
		"blocks": len(blocks),
	}).Debug("vertical break")

	maxGap := p.config.Layout.Pixels(p.config.Layout.MaxVerticalGapIn)
	for _, b := range blocks {
		p.addBlock(b)
		p.engine.EndBlock(min(b.GapAfter, maxGap))
	}
}

// addBlock wraps the rows of one block.
func (p *Pipeline) addBlock(b layout.Block) {
	bl := p.analyzer.AnalyzeJustification(&b.Region, b.Rows)
	for i, row := range b.Rows.Rows {
		rr := b.Region.Sub(row.C1, row.R1, row.C2, row.R2)
		rr.RowBase = row.RowBase
		rr.CapHeight = row.CapHeight
		rr.LCHeight = row.LCHeight
		rr.H5050 = row.H5050
		p.engine.AddRow(&rr, bl.Lines[i], bl)
	}
}
