package wrap

import (
	"sort"

	"github.com/tsawler/reflow/bitmap"
	"github.com/tsawler/reflow/layout"
)

// stretchGapFraction selects the gaps that take part in full justification:
// those at least this fraction of the widest gap.
const stretchGapFraction = 0.5

// FullyJustify widens line to target columns by stretching its word gaps.
// Only the cluster of widest gaps is stretched (gaps of at least half the
// widest one, and no narrower than minGap), each in proportion to its
// width. The line is returned unchanged when it is already wide enough,
// has no eligible gap, or would need more than maxExpansion times the
// eligible whitespace. words are the word rectangles of line; the returned
// rectangles match the returned bitmap.
func FullyJustify(line *bitmap.Bitmap, words []layout.TextRow, target, minGap int, maxExpansion float64) (*bitmap.Bitmap, []layout.TextRow) {
	extra := target - line.Width
	if extra <= 0 || len(words) < 2 {
		return line, words
	}

	order := append([]layout.TextRow(nil), words...)
	sort.SliceStable(order, func(i, j int) bool { return order[i].C1 < order[j].C1 })

	gaps := make([]int, len(order)-1)
	widest := 0
	for i := range gaps {
		gaps[i] = order[i+1].C1 - order[i].C2 - 1
		widest = max(widest, gaps[i])
	}
	total := 0
	for i, g := range gaps {
		if float64(g) < stretchGapFraction*float64(widest) || g < minGap || g <= 0 {
			gaps[i] = 0
			continue
		}
		total += g
	}
	if total == 0 {
		return line, words
	}
	if maxExpansion > 0 && float64(extra) > maxExpansion*float64(total) {
		return line, words
	}

	// Columns added after each word of order.
	add := make([]int, len(gaps))
	given, last := 0, -1
	for i, g := range gaps {
		if g == 0 {
			continue
		}
		add[i] = extra * g / total
		given += add[i]
		last = i
	}
	add[last] += extra - given

	out := bitmap.New(target, line.Height, line.IsColor())
	shifts := make([]int, len(order))
	start, shift := 0, 0
	for i := range order {
		shifts[i] = shift
		if i == len(gaps) || add[i] == 0 {
			continue
		}
		end := order[i].C2
		bitmap.Blit(out, start+shift, 0, line, start, 0, end, line.Height-1)
		shift += add[i]
		start = end + 1
	}
	bitmap.Blit(out, start+shift, 0, line, start, 0, line.Width-1, line.Height-1)

	moved := make([]layout.TextRow, len(words))
	for i, w := range words {
		for j, o := range order {
			if o == w {
				w.C1 += shifts[j]
				w.C2 += shifts[j]
				break
			}
		}
		moved[i] = w
	}
	return out, moved
}
