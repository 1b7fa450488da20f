package grid

// SizeClass is a semantic widget size, independent of pixels. The set is
// closed and versioned with the application; unknown classes fall back to
// DefaultSizeClass rather than failing.
type SizeClass string

// Size classes known to the catalog.
const (
	SizeChartS      SizeClass = "chart-s"
	SizeChartM      SizeClass = "chart-m"
	SizeChartL      SizeClass = "chart-l"
	SizeChartXL     SizeClass = "chart-xl"
	SizeKPI         SizeClass = "kpi"
	SizeTextCompact SizeClass = "text-compact"
	SizeTextTall    SizeClass = "text-tall"
)

// DefaultSizeClass is the fallback for unknown size classes: the smallest
// chart size, which fits every breakpoint.
const DefaultSizeClass = SizeChartS

// Dimensions is a widget span in grid cells.
type Dimensions struct {
	W int
	H int
}

// sizeCatalog maps every size class to its dimensions per breakpoint,
// indexed by [Breakpoint]. It is initialized once and never extended at
// runtime; SizeFor is total over SizeClass x Breakpoint because of the
// DefaultSizeClass fallback.
var sizeCatalog = map[SizeClass][breakpointCount]Dimensions{
	//                 xxs     xs      sm      md      lg      xl
	SizeChartS:      {{2, 2}, {2, 2}, {3, 2}, {4, 2}, {4, 2}, {4, 2}},
	SizeChartM:      {{2, 3}, {4, 3}, {4, 3}, {5, 3}, {6, 3}, {6, 3}},
	SizeChartL:      {{2, 4}, {4, 4}, {6, 4}, {8, 4}, {8, 4}, {8, 4}},
	SizeChartXL:     {{2, 5}, {4, 5}, {6, 5}, {10, 5}, {12, 5}, {12, 5}},
	SizeKPI:         {{2, 1}, {2, 1}, {2, 1}, {2, 1}, {3, 1}, {3, 1}},
	SizeTextCompact: {{2, 2}, {4, 2}, {6, 2}, {10, 2}, {12, 2}, {12, 2}},
	SizeTextTall:    {{2, 4}, {4, 4}, {6, 4}, {10, 4}, {12, 4}, {12, 4}},
}

// kindSizeClasses lists the candidate size classes per widget kind,
// ordered largest to smallest. The creation policy picks the first whose
// catalog width fits the current column count.
//
// The lists deliberately stop short of the largest catalog entries:
// charts start at chart-m so a new chart takes half a wide row rather
// than most of it, while tables start at chart-l because tabular data
// needs the horizontal room. chart-l and chart-xl remain reachable for
// charts via an explicit resize.
var kindSizeClasses = map[Kind][]SizeClass{
	KindChart: {SizeChartM, SizeChartS},
	KindTable: {SizeChartL, SizeChartM, SizeChartS},
	KindKPI:   {SizeKPI},
	KindText:  {SizeTextCompact},
}

// SizeFor returns the catalog dimensions for a size class at a
// breakpoint, clamping the width down to maxColumns when the looked-up
// width exceeds it (height is never altered by the clamp). Unknown
// classes resolve to DefaultSizeClass, so SizeFor is a total function.
// A maxColumns of zero or less means no clamp.
func SizeFor(class SizeClass, bp Breakpoint, maxColumns int) Dimensions {
	row, ok := sizeCatalog[class]
	if !ok {
		row = sizeCatalog[DefaultSizeClass]
	}
	if bp < 0 || bp >= breakpointCount {
		bp = BreakpointLG
	}
	d := row[bp]
	if maxColumns > 0 && d.W > maxColumns {
		d.W = maxColumns
	}
	return d
}

// ClassForKind chooses the size class for a newly created widget of the
// given kind: the largest candidate whose catalog width fits within
// columns at the breakpoint, or DefaultSizeClass when none fit.
func ClassForKind(kind Kind, bp Breakpoint, columns int) SizeClass {
	for _, class := range kindSizeClasses[kind] {
		if SizeFor(class, bp, 0).W <= columns {
			return class
		}
	}
	return DefaultSizeClass
}
