package grid

import (
	"math"
	"slices"
)

// RecoverLayout re-packs every widget for a new column count. It is the
// transform behind panel toggles and breakpoint crossings.
//
// When newColumns equals oldColumns the input slice is returned
// unchanged: a no-op transform is a true no-op, not a re-pack that
// happens to reproduce its input.
//
// Otherwise widgets are processed in (row, column) order so vertical
// reading order survives the transform. Each widget's width and x are
// scaled by newColumns/oldColumns, rounded, and clamped into bounds;
// text widgets always come out spanning the full row. Any collision the
// scaling introduces is resolved with the free-slot search against the
// widgets already recovered, never against the stale pre-scale set.
//
// The output always satisfies the snapshot invariants for newColumns,
// has exactly the input's widgets and IDs, and preserves relative
// vertical order. The input is not assumed valid: overlapping widgets
// from corrupted state are pushed apart by the same collision step.
func RecoverLayout(widgets []Widget, newColumns, oldColumns int, opts SearchOptions) []Widget {
	if newColumns == oldColumns || newColumns < 1 || oldColumns < 1 {
		return widgets
	}

	ordered := slices.Clone(widgets)
	slices.SortFunc(ordered, CompareWidgets)

	scale := float64(newColumns) / float64(oldColumns)
	out := make([]Widget, 0, len(ordered))

	for _, wd := range ordered {
		desired := scaleRect(wd.Rect, scale, newColumns)
		if wd.Kind == KindText {
			// Text blocks span the full row at every column count.
			desired.X = 0
			desired.W = newColumns
		}

		if !fits(desired, out) {
			desired, _ = FindSlot(out, desired.W, desired.H, newColumns, desired.Y, opts)
		}

		wd.Rect = desired
		out = append(out, wd)
	}
	return out
}

// scaleRect maps a rectangle from the old column space into the new one.
// Width is rounded and clamped to [1, columns]; x is rounded and then
// pushed left just enough to keep the rectangle in bounds.
func scaleRect(r Rect, scale float64, columns int) Rect {
	w := int(math.Round(float64(r.W) * scale))
	if w < 1 {
		w = 1
	}
	if w > columns {
		w = columns
	}

	x := int(math.Round(float64(r.X) * scale))
	if x+w > columns {
		x = columns - w
	}
	if x < 0 {
		x = 0
	}

	return Rect{X: x, Y: r.Y, W: w, H: r.H}
}
