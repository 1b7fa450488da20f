package grid

// DefaultMaxScanRows bounds how many rows below the starting row the
// free-slot search examines before giving up and appending below all
// existing content. The cap is a pragmatic ceiling, not a derived
// invariant, so it is configurable via [SearchOptions].
const DefaultMaxScanRows = 20

// SearchOptions tunes the free-slot search.
type SearchOptions struct {
	// MaxScanRows is the number of rows scanned past the starting row
	// before falling back to bottom-append. Zero or negative means
	// DefaultMaxScanRows.
	MaxScanRows int
}

func (o SearchOptions) maxScanRows() int {
	if o.MaxScanRows <= 0 {
		return DefaultMaxScanRows
	}
	return o.MaxScanRows
}

// FindSlot returns the top-left-most position at or below startY where a
// w-by-h rectangle fits within [0, columns) without overlapping any of
// the placed widgets. Rows are scanned from startY upward through
// startY+MaxScanRows; within each row, columns are scanned left to
// right, so lower rows win over lower columns.
//
// If no slot exists in the scanned region, FindSlot returns a rectangle
// at column zero on the first row below all placed widgets and reports
// found == false. The fallback guarantees termination and a well-defined
// result even in pathologically dense layouts; it is a designed
// degenerate case, not an error.
//
// A rectangle wider than the grid is clamped to the full column count
// before searching so the result is always in bounds.
func FindSlot(placed []Widget, w, h, columns, startY int, opts SearchOptions) (r Rect, found bool) {
	if columns < 1 {
		columns = 1
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if w > columns {
		w = columns
	}
	if startY < 0 {
		startY = 0
	}

	for y := startY; y <= startY+opts.maxScanRows(); y++ {
		for x := 0; x+w <= columns; x++ {
			candidate := Rect{X: x, Y: y, W: w, H: h}
			if fits(candidate, placed) {
				return candidate, true
			}
		}
	}

	bottom := 0
	for _, p := range placed {
		if b := p.Rect.Bottom(); b > bottom {
			bottom = b
		}
	}
	return Rect{X: 0, Y: bottom, W: w, H: h}, false
}

// fits reports whether candidate overlaps none of the placed widgets.
func fits(candidate Rect, placed []Widget) bool {
	for _, p := range placed {
		if Overlaps(candidate, p.Rect) {
			return false
		}
	}
	return true
}
