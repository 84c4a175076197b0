package wrap

import (
	"sort"

	"github.com/tsawler/reflow/layout"
	"github.com/tsawler/reflow/pages"
)

// Target receives finished lines and the whitespace between them.
// *pages.Canvas implements it.
type Target interface {
	AddRegion(ra pages.RegionAdd) float64
	AddGap(srcPixels int, srcDPI float64) int
}

// Engine wraps text rows into lines and hands them to a target.
type Engine struct {
	config   Config
	analyzer *layout.Analyzer
	target   Target
	state    *State
	buf      *Buffer
	dpi      float64
}

// NewEngine returns an engine writing to target. dpi is the resolution of
// the source rows; state is shared with the caller and may be nil.
func NewEngine(config Config, analyzer *layout.Analyzer, target Target, state *State, dpi float64) *Engine {
	if state == nil {
		state = &State{}
	}
	ac := analyzer.Config()
	return &Engine{
		config:   config,
		analyzer: analyzer,
		target:   target,
		state:    state,
		buf:      NewBuffer(!ac.Direction.LeftToRight(), false),
		dpi:      dpi,
	}
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.config
}

// State returns the running output state.
func (e *Engine) State() *State {
	return e.state
}

// Buffer returns the line under construction.
func (e *Engine) Buffer() *Buffer {
	return e.buf
}

// Capacity returns the line width in source pixels.
func (e *Engine) Capacity() int {
	return max(int(e.config.MaxRegionWidthIn*e.dpi+0.5), 1)
}

// SetColor makes subsequent lines keep an RGB plane. It only takes effect
// on an empty buffer.
func (e *Engine) SetColor(color bool) {
	if e.buf.Empty() {
		e.buf.color = color
	}
}

// AddRow wraps one text row. r must cover the row and carry its metrics;
// li and bl are the row's entry and summary from the justification
// analysis of its block.
func (e *Engine) AddRow(r *layout.Region, li layout.LineInfo, bl *layout.BlockLayout) {
	if r.Empty() {
		return
	}
	row := layout.TextRow{C1: r.C1, R1: r.R1, C2: r.C2, R2: r.R2}
	if e.config.Mode == ModeOff || e.analyzer.IsFigure(row) {
		e.Flush(false)
		e.addDirect(r, li.Just, 0)
		return
	}

	if r.HasMetrics() {
		e.analyzer.DetectHyphen(r)
	} else {
		e.analyzer.Trim(r, layout.TrimEdges|layout.TrimMetrics|layout.TrimHyphen)
	}

	just := bl.Just
	if li.Centered && !bl.Centered {
		just = layout.JustifyCenter
	}
	if !e.buf.Empty() && (li.Indented || e.state.FontChange || just != e.buf.Just) {
		e.Flush(false)
	}
	e.state.FontChange = false

	words := e.analyzer.FindWords(r)
	if len(words.Rows) == 0 {
		return
	}
	capacity := e.Capacity()
	rtl := e.buf.rtl
	n := len(words.Rows)
	// Words are added in reading order; right to left that is from the
	// last piece of the row to the first.
	for k := 0; k < n; k++ {
		i := k
		if rtl {
			i = n - 1 - k
		}
		w := words.Rows[i]
		gap := 0
		switch {
		case k > 0 && rtl:
			gap = w.Gap
		case k > 0:
			gap = words.Rows[i-1].Gap
		case !e.buf.Empty():
			gap = e.joinGap(words, r.LCHeight)
		case li.Indented && rtl:
			gap = li.RightOffset
		case li.Indented:
			gap = li.LeftOffset
		}
		if e.buf.EndsInHyphen() {
			gap = 0
		}

		p := Piece{
			Source:   r.Bitmap,
			C1:       w.C1,
			R1:       r.R1,
			C2:       w.C2,
			R2:       r.R2,
			RowBase:  r.RowBase,
			LCHeight: r.LCHeight,
			Hyphen:   w.Hyphen,
		}
		if !e.buf.Empty() && gap+p.Width() > e.buf.Remaining(capacity) {
			e.Flush(true)
			gap = 0
		}
		if e.buf.Empty() {
			e.buf.Just = just
			e.buf.FullJustify = bl.FullJustify
		}
		e.buf.Add(p, gap)
		e.buf.LineSpacing = max(e.buf.LineSpacing, bl.LineSpacing)
	}

	short := li.ShortLine && e.config.Mode != ModeUnwrapShort
	if short || li.FontChange {
		e.Flush(false)
	}
	e.state.FontChange = li.FontChange
}

// joinGap is the gap placed between the end of the buffer and the first
// word of a new source row: the median word gap of the row, or a typical
// word space when the row holds a single word.
func (e *Engine) joinGap(words *layout.BreakInfo, lcheight int) int {
	n := len(words.Rows)
	if n > 1 {
		gaps := make([]int, 0, n-1)
		for _, w := range words.Rows[:n-1] {
			gaps = append(gaps, w.Gap)
		}
		sort.Ints(gaps)
		return gaps[len(gaps)/2]
	}
	return e.analyzer.WordGapThreshold(lcheight) * 4 / 3
}

// Flush emits the buffered line. allowFull permits full justification; it
// is false for the last line of a paragraph.
func (e *Engine) Flush(allowFull bool) {
	if e.buf.Empty() {
		return
	}
	line, words := e.buf.Bitmap(), e.buf.Words()
	capacity := e.Capacity()
	if allowFull && e.buf.FullJustify && line.Width < capacity {
		minGap := e.analyzer.WordGapThreshold(e.buf.LCHeight())
		line, words = FullyJustify(line, words, capacity, minGap, e.config.MaxJustifyExpansion)
	}
	ra := pages.RegionAdd{
		Source: line,
		C1:     0,
		R1:     0,
		C2:     line.Width - 1,
		R2:     line.Height - 1,
		DPI:    e.dpi,
		Just:   e.buf.Just,
	}
	if e.config.WordBoxes {
		ra.Words = append([]layout.TextRow(nil), words...)
	}
	e.emit(ra, e.buf.Baseline(), e.buf.LineSpacing)
	e.buf.Reset()
}

// AddRegion flushes any pending line and copies r to the target unchanged
// apart from scaling.
func (e *Engine) AddRegion(r *layout.Region, just layout.Justification) {
	e.Flush(false)
	if r.Empty() {
		return
	}
	e.addDirect(r, just, 0)
}

func (e *Engine) addDirect(r *layout.Region, just layout.Justification, lineSpacing int) {
	base := r.Height() - 1
	if r.RowBase >= r.R1 && r.RowBase <= r.R2 {
		base = r.RowBase - r.R1
	}
	ra := pages.RegionAdd{
		Source: r.Bitmap,
		C1:     r.C1,
		R1:     r.R1,
		C2:     r.C2,
		R2:     r.R2,
		DPI:    e.dpi,
		Just:   just,
		Scale:  e.state.LastScale,
	}
	if e.config.WordBoxes {
		ra.Words = e.analyzer.WordBoxes(*r)
	}
	e.emit(ra, base, lineSpacing)
}

// EndBlock flushes the line in progress and owes gap source pixels of
// whitespace before whatever is emitted next. The next block starts at its
// natural scale.
func (e *Engine) EndBlock(gap int) {
	e.Flush(false)
	e.state.PendingGap = max(e.state.PendingGap, gap)
	e.state.LineSpacing = 0
	e.state.LastScale = 0
}

// emit adds the whitespace owed before a line and then the line itself.
// Consecutive wrapped lines of a block are spaced so that their baselines
// are lineSpacing apart.
func (e *Engine) emit(ra pages.RegionAdd, baseline, lineSpacing int) {
	gap := e.state.PendingGap
	if e.state.HasLine && e.state.LineSpacing > 0 && lineSpacing > 0 {
		gap = max(lineSpacing-e.state.LastDescent-baseline-1, 0)
	}
	if gap > 0 {
		e.target.AddGap(gap, e.dpi)
	}
	e.state.PendingGap = 0

	if scale := e.target.AddRegion(ra); scale > 0 {
		e.state.LastScale = scale
	}
	e.state.HasLine = true
	e.state.LastDescent = ra.R2 - ra.R1 - baseline
	e.state.LineSpacing = lineSpacing
}
