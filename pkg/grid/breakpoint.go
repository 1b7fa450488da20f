package grid

// Breakpoint is a named viewport-width tier. Each tier fixes the column
// count and selects a row in the size-class dimension catalog.
type Breakpoint int

// Breakpoints ordered from narrowest to widest. Column counts are
// monotonically non-decreasing across this order.
const (
	BreakpointXXS Breakpoint = iota
	BreakpointXS
	BreakpointSM
	BreakpointMD
	BreakpointLG
	BreakpointXL

	breakpointCount
)

// Pixel-width thresholds for each breakpoint, checked widest-first by
// Resolve.
const (
	widthXL = 1536
	widthLG = 1200
	widthMD = 1024
	widthSM = 768
	widthXS = 480
)

// String returns the breakpoint's short name (xxs through xl).
func (b Breakpoint) String() string {
	switch b {
	case BreakpointXXS:
		return "xxs"
	case BreakpointXS:
		return "xs"
	case BreakpointSM:
		return "sm"
	case BreakpointMD:
		return "md"
	case BreakpointLG:
		return "lg"
	case BreakpointXL:
		return "xl"
	default:
		return "unknown"
	}
}

// Columns returns the grid column count for the breakpoint.
func (b Breakpoint) Columns() int {
	switch b {
	case BreakpointXXS:
		return 2
	case BreakpointXS:
		return 4
	case BreakpointSM:
		return 6
	case BreakpointMD:
		return 10
	case BreakpointLG, BreakpointXL:
		return 12
	default:
		return 12
	}
}

// Resolve maps an available pixel width to a breakpoint. It is a pure
// step function over fixed thresholds; panel state never reaches this
// function, only the already-reduced width does.
func Resolve(availableWidthPx int) Breakpoint {
	switch {
	case availableWidthPx >= widthXL:
		return BreakpointXL
	case availableWidthPx >= widthLG:
		return BreakpointLG
	case availableWidthPx >= widthMD:
		return BreakpointMD
	case availableWidthPx >= widthSM:
		return BreakpointSM
	case availableWidthPx >= widthXS:
		return BreakpointXS
	default:
		return BreakpointXXS
	}
}

// PanelWidths holds the pixel widths subtracted from the window when the
// corresponding side panel is open. These two constants are the only
// configuration surface between panel state and breakpoint resolution.
type PanelWidths struct {
	Main      int
	Secondary int
}

// DefaultPanelWidths matches the dashboard's chat panel and the narrower
// inspector panel.
var DefaultPanelWidths = PanelWidths{Main: 480, Secondary: 320}

func (p PanelWidths) main() int {
	if p.Main <= 0 {
		return DefaultPanelWidths.Main
	}
	return p.Main
}

func (p PanelWidths) secondary() int {
	if p.Secondary <= 0 {
		return DefaultPanelWidths.Secondary
	}
	return p.Secondary
}

// Environment is the derived grid environment: the window width and the
// open/closed state of the two side panels. It is recomputed whenever
// the viewport or a panel changes, never stored.
type Environment struct {
	WindowWidthPx      int  `json:"window_width_px"`
	MainPanelOpen      bool `json:"main_panel_open"`
	SecondaryPanelOpen bool `json:"secondary_panel_open"`
}

// AvailableWidth returns the window width minus the widths of any open
// panels, floored at zero.
func (e Environment) AvailableWidth(p PanelWidths) int {
	w := e.WindowWidthPx
	if e.MainPanelOpen {
		w -= p.main()
	}
	if e.SecondaryPanelOpen {
		w -= p.secondary()
	}
	if w < 0 {
		w = 0
	}
	return w
}

// Breakpoint resolves the environment to its active breakpoint.
func (e Environment) Breakpoint(p PanelWidths) Breakpoint {
	return Resolve(e.AvailableWidth(p))
}
