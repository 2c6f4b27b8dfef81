package pcl

// BlankLines tracks runs of empty output rows.
//
// The first blank row of a run is still sent as raster data; some firmware
// mishandles a page that starts with a vertical move. Later blank rows are
// counted and replaced by one skip command.
type BlankLines struct {
	count int
}

// Row records one output row. emit reports whether the row's raster data
// must be written; skip, when positive, is the number of rows to skip
// before it.
func (b *BlankLines) Row(blank bool) (emit bool, skip int) {
	if blank {
		b.count++
		return b.count == 1, 0
	}
	skip = b.Flush()
	return true, skip
}

// Flush ends the current run and returns the rows still to be skipped.
func (b *BlankLines) Flush() (skip int) {
	if b.count > 1 {
		skip = b.count - 1
	}
	b.count = 0
	return skip
}

// Pending returns the number of blank rows seen in the current run.
func (b *BlankLines) Pending() int { return b.count }
