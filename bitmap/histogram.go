package bitmap

// Histogram counts the pixels darker than thresh inside the inclusive
// rectangle (c1,r1)-(c2,r2). colcount[j] receives the count for column c1+j
// and rowcount[i] the count for row r1+i. Either slice may be nil; when
// non-nil it must hold at least c2-c1+1 (resp. r2-r1+1) entries.
func Histogram(b *Bitmap, c1, r1, c2, r2, thresh int, colcount, rowcount []int) {
	nc := c2 - c1 + 1
	nr := r2 - r1 + 1
	if nc <= 0 || nr <= 0 {
		return
	}
	if colcount != nil {
		for j := 0; j < nc; j++ {
			colcount[j] = 0
		}
	}
	for i := 0; i < nr; i++ {
		row := b.Gray[(r1+i)*b.Width+c1 : (r1+i)*b.Width+c2+1]
		n := 0
		for j, v := range row {
			if int(v) < thresh {
				n++
				if colcount != nil {
					colcount[j]++
				}
			}
		}
		if rowcount != nil {
			rowcount[i] = n
		}
	}
}

// DarkCount returns the number of pixels darker than thresh inside the
// inclusive rectangle. It stops counting once limit is exceeded when limit
// is non-negative, returning limit+1.
func DarkCount(b *Bitmap, c1, r1, c2, r2, thresh, limit int) int {
	n := 0
	for y := r1; y <= r2; y++ {
		row := b.Gray[y*b.Width+c1 : y*b.Width+c2+1]
		for _, v := range row {
			if int(v) < thresh {
				n++
			}
		}
		if limit >= 0 && n > limit {
			return limit + 1
		}
	}
	return n
}

// RowBlank reports whether row y has no pixel darker than thresh between
// columns c1 and c2 inclusive.
func RowBlank(b *Bitmap, y, c1, c2, thresh int) bool {
	row := b.Gray[y*b.Width+c1 : y*b.Width+c2+1]
	for _, v := range row {
		if int(v) < thresh {
			return false
		}
	}
	return true
}
