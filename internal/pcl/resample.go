package pcl

// Resampler maps output rows onto source rows with integer error
// accumulation, so a page of any height selects rows without drift.
type Resampler struct {
	outHeight int
	div       int
	mod       int
	errval    int
	line      int
	last      int
}

// NewResampler prepares the mapping of imageHeight source rows onto
// outHeight output rows. Both heights are clamped to at least 1.
func NewResampler(imageHeight, outHeight int) *Resampler {
	imageHeight, outHeight = max(imageHeight, 1), max(outHeight, 1)
	return &Resampler{
		outHeight: outHeight,
		div:       imageHeight / outHeight,
		mod:       imageHeight % outHeight,
		last:      -1,
	}
}

// Next returns the source row for the next output row. fetch is false when
// the row equals the previously returned one and the cached copy can be
// reused.
func (r *Resampler) Next() (row int, fetch bool) {
	row = r.line
	fetch = row != r.last
	r.last = row

	r.errval += r.mod
	r.line += r.div
	if r.errval >= r.outHeight {
		r.errval -= r.outHeight
		r.line++
	}
	return row, fetch
}
