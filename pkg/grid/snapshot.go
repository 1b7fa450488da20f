package grid

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrZeroSpan is returned by [Snapshot.Validate] when a widget has a
	// width or height below one cell.
	ErrZeroSpan = errors.New("widget span must be at least one cell")

	// ErrOutOfBounds is returned by [Snapshot.Validate] when a widget lies
	// outside [0, columns) horizontally or above row zero.
	ErrOutOfBounds = errors.New("widget outside grid bounds")

	// ErrWidgetOverlap is returned by [Snapshot.Validate] when two widgets
	// share at least one grid cell.
	ErrWidgetOverlap = errors.New("widgets overlap")

	// ErrDuplicateWidgetID is returned by [Snapshot.Validate] when two
	// widgets carry the same identifier.
	ErrDuplicateWidgetID = errors.New("duplicate widget ID")

	// ErrWidgetNotFound is returned by snapshot lookups and the engine
	// when the requested widget ID is not in the snapshot.
	ErrWidgetNotFound = errors.New("widget not found")
)

// Snapshot is the full set of placed widgets at one instant. It is a
// value: operations return new snapshots and never mutate the receiver's
// backing slice.
type Snapshot struct {
	Widgets []Widget `json:"widgets" bson:"widgets"`
}

// Len returns the number of widgets in the snapshot.
func (s Snapshot) Len() int { return len(s.Widgets) }

// Find returns the widget with the given ID, if present.
func (s Snapshot) Find(id string) (Widget, bool) {
	for _, w := range s.Widgets {
		if w.ID == id {
			return w, true
		}
	}
	return Widget{}, false
}

// With returns a new snapshot with w appended, or with the existing
// widget of the same ID replaced.
func (s Snapshot) With(w Widget) Snapshot {
	out := make([]Widget, 0, len(s.Widgets)+1)
	replaced := false
	for _, existing := range s.Widgets {
		if existing.ID == w.ID {
			out = append(out, w)
			replaced = true
			continue
		}
		out = append(out, existing)
	}
	if !replaced {
		out = append(out, w)
	}
	return Snapshot{Widgets: out}
}

// Without returns a new snapshot with the widget of the given ID removed.
// Removing an absent ID is a no-op copy.
func (s Snapshot) Without(id string) Snapshot {
	out := make([]Widget, 0, len(s.Widgets))
	for _, w := range s.Widgets {
		if w.ID != id {
			out = append(out, w)
		}
	}
	return Snapshot{Widgets: out}
}

// Sorted returns the widgets ordered by [CompareWidgets] (row, column,
// then ID) without modifying the snapshot.
func (s Snapshot) Sorted() []Widget {
	out := slices.Clone(s.Widgets)
	slices.SortFunc(out, CompareWidgets)
	return out
}

// MaxBottom returns the first empty row below all widgets (zero for an
// empty snapshot).
func (s Snapshot) MaxBottom() int {
	bottom := 0
	for _, w := range s.Widgets {
		if b := w.Rect.Bottom(); b > bottom {
			bottom = b
		}
	}
	return bottom
}

// Validate checks the snapshot invariants for the given column count:
// every widget spans at least one cell, lies within [0, columns)
// horizontally and at or below row zero, IDs are unique, and no two
// widgets overlap. It returns the first violation found, wrapped with the
// offending widget IDs.
func (s Snapshot) Validate(columns int) error {
	seen := make(map[string]struct{}, len(s.Widgets))
	for _, w := range s.Widgets {
		if _, dup := seen[w.ID]; dup {
			return fmt.Errorf("widget %q: %w", w.ID, ErrDuplicateWidgetID)
		}
		seen[w.ID] = struct{}{}

		if w.Rect.W < 1 || w.Rect.H < 1 {
			return fmt.Errorf("widget %q: %w", w.ID, ErrZeroSpan)
		}
		if w.Rect.X < 0 || w.Rect.Y < 0 || w.Rect.Right() > columns {
			return fmt.Errorf("widget %q at (%d,%d) span %dx%d in %d columns: %w",
				w.ID, w.Rect.X, w.Rect.Y, w.Rect.W, w.Rect.H, columns, ErrOutOfBounds)
		}
	}

	for i := 0; i < len(s.Widgets); i++ {
		for j := i + 1; j < len(s.Widgets); j++ {
			if Overlaps(s.Widgets[i].Rect, s.Widgets[j].Rect) {
				return fmt.Errorf("widgets %q and %q: %w",
					s.Widgets[i].ID, s.Widgets[j].ID, ErrWidgetOverlap)
			}
		}
	}
	return nil
}
