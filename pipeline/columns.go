package pipeline

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/tsawler/reflow/layout"
)

// columnThreadGapIn is the largest vertical gap, in inches, between two
// column pairs that still continue the same pair of columns. Together with
// layout.Config.ColumnOffsetMax it lets a divider wander down the page but
// not jump.
const columnThreadGapIn = 0.28

// segment is one horizontal slice of a page: either a full-width region or
// a pair of columns.
type segment struct {
	full        layout.Region
	left, right layout.Region
	pair        bool
	center      int
}

func (s segment) top() int {
	if !s.pair {
		return s.full.R1
	}
	return min(s.left.R1, s.right.R1)
}

func (s segment) bottom() int {
	if !s.pair {
		return s.full.R2
	}
	return max(s.left.R2, s.right.R2)
}

// multicolumnAdd finds the column layout of r and adds its regions in
// reading order. level counts the column searches above this one; each
// level doubles the number of columns.
func (p *Pipeline) multicolumnAdd(r layout.Region, level int) {
	segs := p.findSegments(r)
	width := r.Width()

	var thread []segment
	for _, s := range segs {
		if !s.pair {
			p.addThread(thread, level)
			thread = nil
			p.verticallyBreak(s.full)
			continue
		}
		if len(thread) > 0 && !p.continuesThread(thread[len(thread)-1], s, width) {
			p.addThread(thread, level)
			thread = nil
		}
		thread = append(thread, s)
	}
	p.addThread(thread, level)
}

// findSegments runs the divider search down r until no more column pairs
// are found. The search stops early, with a warning, once the page holds
// too many regions; whatever is left of r is then added as a single
// region.
func (p *Pipeline) findSegments(r layout.Region) []segment {
	var segs []segment
	remaining := r
	for !remaining.Empty() {
		split := p.analyzer.FindColumnDivider(&remaining)
		if remaining.Empty() {
			break
		}
		if p.regions+len(split.Regions) > p.config.MaxRegions {
			if !p.overflowed {
				p.overflowed = true
				p.warn(Warning{
					Type:    WarningRegionOverflow,
					Page:    p.page,
					Message: fmt.Sprintf("column search stopped after %d regions", p.regions),
				})
			}
			segs = append(segs, segment{full: remaining})
			break
		}
		p.regions += len(split.Regions)

		if !split.Found {
			segs = append(segs, segment{full: split.Regions[0].Region})
			break
		}
		p.log.WithFields(logrus.Fields{
			"page":    p.page,
			"region":  remaining.Rect().String(),
			"divider": split.Divider,
			"rows":    fmt.Sprintf("%d-%d", split.Top, split.Bottom),
		}).Debug("column split")

		n := len(split.Regions)
		for _, pr := range split.Regions[:n-2] {
			segs = append(segs, segment{full: pr.Region})
		}
		segs = append(segs, segment{
			left:   split.Regions[n-2].Region,
			right:  split.Regions[n-1].Region,
			pair:   true,
			center: split.Center(),
		})

		last := split.LastRow()
		if last < remaining.R1 {
			break
		}
		remaining = remaining.Sub(remaining.C1, last+1, remaining.C2, remaining.R2)
	}
	return segs
}

// continuesThread reports whether next carries on the column pair of prev:
// the divider has not drifted too far and the gap between them is small.
func (p *Pipeline) continuesThread(prev, next segment, width int) bool {
	drift := next.center - prev.center
	if drift < 0 {
		drift = -drift
	}
	if float64(drift) > p.config.Layout.ColumnOffsetMax*float64(width) {
		return false
	}
	gap := next.top() - prev.bottom() - 1
	return gap <= p.config.Layout.Pixels(columnThreadGapIn)
}

// addThread adds a run of column pairs: the whole first column, then the
// whole second. Columns are searched again while the configured column
// count allows it.
func (p *Pipeline) addThread(thread []segment, level int) {
	if len(thread) == 0 {
		return
	}
	first, second := p.threadColumn(thread, true), p.threadColumn(thread, false)
	if !p.config.Layout.Direction.LeftToRight() {
		first, second = second, first
	}
	for _, col := range []layout.Region{first, second} {
		if level+1 < p.config.Layout.NormalizedMaxColumns()/2 {
			p.multicolumnAdd(col, level+1)
		} else {
			p.verticallyBreak(col)
		}
	}
}

// threadColumn returns the union of the left or right columns of a thread.
func (p *Pipeline) threadColumn(thread []segment, left bool) layout.Region {
	pick := func(s segment) layout.Region {
		if left {
			return s.left
		}
		return s.right
	}
	u := pick(thread[0])
	c1, r1, c2, r2 := u.C1, u.R1, u.C2, u.R2
	for _, s := range thread[1:] {
		c := pick(s)
		c1, r1 = min(c1, c.C1), min(r1, c.R1)
		c2, r2 = max(c2, c.C2), max(r2, c.R2)
	}
	return u.Sub(c1, r1, c2, r2)
}
