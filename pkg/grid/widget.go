package grid

// Kind is the semantic widget type. It drives the default size-class
// policy and the full-width rule for text blocks.
type Kind string

// Widget kinds supported by the dashboard.
const (
	KindText  Kind = "text"
	KindChart Kind = "chart"
	KindKPI   Kind = "kpi"
	KindTable Kind = "table"
)

// IsValid reports whether k is one of the known widget kinds.
func (k Kind) IsValid() bool {
	switch k {
	case KindText, KindChart, KindKPI, KindTable:
		return true
	}
	return false
}

// Widget is a placed dashboard widget: a rectangle plus an opaque
// identifier and a semantic kind. Widgets are plain values; the engine
// never mutates one in place.
type Widget struct {
	ID   string `json:"id" bson:"id"`
	Kind Kind   `json:"kind" bson:"kind"`
	Rect Rect   `json:"rect" bson:"rect"`
}

// CompareWidgets orders widgets by their rectangle position (row, then
// column). Ties beyond position are broken by ID so sorts are stable
// across runs even for malformed snapshots with stacked widgets.
func CompareWidgets(a, b Widget) int {
	if c := ComparePosition(a.Rect, b.Rect); c != 0 {
		return c
	}
	if a.ID < b.ID {
		return -1
	}
	if a.ID > b.ID {
		return 1
	}
	return 0
}
