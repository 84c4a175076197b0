package wrap

import (
	"github.com/tsawler/reflow/bitmap"
	"github.com/tsawler/reflow/layout"
)

// Piece is one word of a source row.
type Piece struct {
	Source         *bitmap.Bitmap
	C1, R1, C2, R2 int

	// RowBase is the absolute baseline row of the source text row.
	RowBase int

	LCHeight int

	// Hyphen is set on the last word of a row ending in a hyphen. Its
	// columns are absolute.
	Hyphen layout.Hyphen
}

// Width returns the number of columns of the piece.
func (p Piece) Width() int {
	return p.C2 - p.C1 + 1
}

// Height returns the number of rows of the piece.
func (p Piece) Height() int {
	return p.R2 - p.R1 + 1
}

// baseline returns the baseline offset from R1, falling back to the last
// row when the baseline is unknown.
func (p Piece) baseline() int {
	if p.RowBase < p.R1 || p.RowBase > p.R2 {
		return p.Height() - 1
	}
	return p.RowBase - p.R1
}

// hyphenState locates a trailing hyphen inside the buffer.
type hyphenState struct {
	found bool

	// consumed is the buffer width not counting the hyphen.
	consumed int

	// cut is the first column removed (left to right) or the number of
	// leading columns removed (right to left) when the hyphen is erased.
	cut int
}

// Buffer assembles one output line from word pieces. The zero value is
// not usable; create buffers with NewBuffer.
type Buffer struct {
	bmp      *bitmap.Bitmap
	baseline int
	words    []layout.TextRow
	hyphen   hyphenState
	lcheight int

	rtl   bool
	color bool

	// LineSpacing is the largest baseline spacing requested by any row
	// contributing to the line.
	LineSpacing int

	// Just and FullJustify are the placement of the line once flushed.
	Just        layout.Justification
	FullJustify bool
}

// NewBuffer returns an empty buffer. rtl places each new piece to the left
// of the previous ones.
func NewBuffer(rtl, color bool) *Buffer {
	return &Buffer{rtl: rtl, color: color}
}

// Empty reports whether no piece has been added since the last reset.
func (b *Buffer) Empty() bool {
	return b.bmp == nil
}

// Width returns the current line width in source pixels.
func (b *Buffer) Width() int {
	if b.bmp == nil {
		return 0
	}
	return b.bmp.Width
}

// Height returns the current line height in source pixels.
func (b *Buffer) Height() int {
	if b.bmp == nil {
		return 0
	}
	return b.bmp.Height
}

// Baseline returns the baseline row inside the buffer bitmap.
func (b *Buffer) Baseline() int {
	return b.baseline
}

// LCHeight returns the largest lowercase height of the pieces.
func (b *Buffer) LCHeight() int {
	return b.lcheight
}

// Bitmap returns the assembled line, nil when empty.
func (b *Buffer) Bitmap() *bitmap.Bitmap {
	return b.bmp
}

// Words returns the word rectangles in buffer coordinates, in the order
// they were added.
func (b *Buffer) Words() []layout.TextRow {
	return b.words
}

// EndsInHyphen reports whether the last piece added ends in a hyphen.
func (b *Buffer) EndsInHyphen() bool {
	return b.hyphen.found
}

// Remaining returns how many more columns fit into a line of capacity
// columns. A trailing hyphen does not count as used.
func (b *Buffer) Remaining(capacity int) int {
	used := b.Width()
	if b.hyphen.found {
		used = b.hyphen.consumed
	}
	return capacity - used
}

// Reset empties the buffer.
func (b *Buffer) Reset() {
	*b = Buffer{rtl: b.rtl, color: b.color}
}

// Add appends p after a gap of gap columns. On an empty buffer a positive
// gap becomes leading whitespace (an indent). After a hyphen the gap is
// always zero and the hyphen is erased first.
func (b *Buffer) Add(p Piece, gap int) {
	if p.Source == nil || p.Width() <= 0 || p.Height() <= 0 {
		return
	}
	gap = max(gap, 0)
	if b.hyphen.found {
		b.eraseHyphen()
		gap = 0
	}

	oldW, oldH, oldBase := b.Width(), b.Height(), b.baseline
	pb := p.baseline()
	above, below := pb, p.Height()-1-pb
	if b.bmp != nil {
		above = max(above, oldBase)
		below = max(below, oldH-1-oldBase)
	}
	nb := bitmap.New(oldW+gap+p.Width(), above+below+1, b.color)

	oldX, newX := 0, oldW+gap
	if b.rtl {
		oldX, newX = p.Width()+gap, 0
	}
	if b.bmp != nil {
		oldY := above - oldBase
		bitmap.Blit(nb, oldX, oldY, b.bmp, 0, 0, oldW-1, oldH-1)
		for i := range b.words {
			shiftRow(&b.words[i], oldX, oldY)
		}
	}
	newY := above - pb
	bitmap.Blit(nb, newX, newY, p.Source, p.C1, p.R1, p.C2, p.R2)
	b.words = append(b.words, layout.TextRow{
		C1:       newX,
		R1:       newY,
		C2:       newX + p.Width() - 1,
		R2:       newY + p.Height() - 1,
		RowBase:  above,
		LCHeight: p.LCHeight,
	})

	b.bmp = nb
	b.baseline = above
	b.lcheight = max(b.lcheight, p.LCHeight)

	b.hyphen = hyphenState{}
	if h := p.Hyphen; h.Found && h.Ch >= p.C1 && h.Ch <= p.C2 {
		b.hyphen.found = true
		if b.rtl {
			b.hyphen.consumed = nb.Width - (newX + h.Ch - p.C1 + 1)
			b.hyphen.cut = newX + h.C2 - p.C1
		} else {
			b.hyphen.consumed = newX + h.Ch - p.C1
			b.hyphen.cut = newX + h.C2 - p.C1 + 1
		}
	}
}

// eraseHyphen removes the hyphen and the whitespace before it.
func (b *Buffer) eraseHyphen() {
	h := b.hyphen
	b.hyphen = hyphenState{}
	w := b.bmp.Width
	if b.rtl {
		if h.cut <= 0 || h.cut >= w {
			return
		}
		b.bmp = b.bmp.Crop(h.cut, 0, w-1, b.bmp.Height-1)
		for i := range b.words {
			shiftRow(&b.words[i], -h.cut, 0)
			b.words[i].C1 = max(b.words[i].C1, 0)
		}
		return
	}
	if h.cut <= 0 || h.cut >= w {
		return
	}
	b.bmp = b.bmp.Crop(0, 0, h.cut-1, b.bmp.Height-1)
	for i := range b.words {
		b.words[i].C2 = min(b.words[i].C2, h.cut-1)
	}
}

func shiftRow(t *layout.TextRow, dx, dy int) {
	t.C1 += dx
	t.C2 += dx
	t.R1 += dy
	t.R2 += dy
	t.RowBase += dy
}
