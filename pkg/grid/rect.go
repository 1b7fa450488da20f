package grid

import "cmp"

// Rect is an axis-aligned rectangle in grid-cell units. X and Y are the
// top-left cell coordinates, W and H are spans. A usable rectangle has
// W >= 1 and H >= 1; the zero value is not a valid widget rectangle.
type Rect struct {
	X int `json:"x" bson:"x"`
	Y int `json:"y" bson:"y"`
	W int `json:"w" bson:"w"`
	H int `json:"h" bson:"h"`
}

// Right returns the first column to the right of the rectangle (X + W).
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the first row below the rectangle (Y + H).
func (r Rect) Bottom() int { return r.Y + r.H }

// Overlaps reports whether a and b share at least one grid cell.
// Rectangles that merely touch edges (a.Right() == b.X) do not overlap.
func Overlaps(a, b Rect) bool {
	if a.X >= b.Right() || a.Right() <= b.X {
		return false
	}
	if a.Y >= b.Bottom() || a.Bottom() <= b.Y {
		return false
	}
	return true
}

// ComparePosition orders rectangles by row first, then by column.
// It is the single ordering contract shared by the recovery transform and
// the tests: "A above B" means ComparePosition(A, B) < 0.
func ComparePosition(a, b Rect) int {
	if c := cmp.Compare(a.Y, b.Y); c != 0 {
		return c
	}
	return cmp.Compare(a.X, b.X)
}
