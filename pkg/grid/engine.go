package grid

import (
	"github.com/charmbracelet/log"
)

// Config tunes the placement engine.
type Config struct {
	// Search configures the free-slot scan.
	Search SearchOptions

	// Panels supplies the pixel widths of the two side panels for
	// breakpoint resolution. Zero fields fall back to DefaultPanelWidths.
	Panels PanelWidths
}

// Engine is the placement orchestrator. It ties the breakpoint resolver,
// size catalog, free-slot search, and recovery transform together on the
// three layout triggers: widget creation, explicit resize, and
// environment change.
//
// The engine is pure apart from logging: every operation takes a
// Snapshot value and returns a new one, so callers can persist or
// broadcast each result wholesale. A single Engine is safe for
// concurrent use since it holds no mutable layout state.
type Engine struct {
	cfg    Config
	logger *log.Logger
}

// New creates an engine. A nil logger falls back to log.Default().
func New(cfg Config, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{cfg: cfg, logger: logger}
}

// MaxScanRows returns the effective row ceiling for the free-slot scan.
func (e *Engine) MaxScanRows() int {
	if e.cfg.Search.MaxScanRows > 0 {
		return e.cfg.Search.MaxScanRows
	}
	return DefaultMaxScanRows
}

// Resolve returns the active breakpoint for an environment using the
// engine's configured panel widths.
func (e *Engine) Resolve(env Environment) Breakpoint {
	return env.Breakpoint(e.cfg.Panels)
}

// Place adds a widget to the snapshot. When class is empty, the size
// class is chosen by the creation policy: the largest candidate for the
// kind whose catalog width fits the breakpoint's column count. Text
// widgets always span the full row regardless of catalog entry. The
// widget lands in the top-left-most free slot searched from row zero.
func (e *Engine) Place(snap Snapshot, id string, kind Kind, class SizeClass, bp Breakpoint) (Snapshot, Widget) {
	columns := bp.Columns()
	if class == "" {
		class = ClassForKind(kind, bp, columns)
	}
	dims := e.dimsFor(kind, class, bp, columns)

	rect, found := FindSlot(snap.Widgets, dims.W, dims.H, columns, 0, e.cfg.Search)
	if !found {
		e.logger.Debug("no free slot in scanned region, appending below content",
			"widget", id, "kind", kind, "columns", columns, "row", rect.Y)
	}

	w := Widget{ID: id, Kind: kind, Rect: rect}
	return snap.With(w), w
}

// Resize assigns a new size class to an existing widget. Dimensions come
// from the catalog for the active breakpoint; the new rectangle is
// searched from the widget's current row so it stays as close to its old
// position as the layout allows. Returns ErrWidgetNotFound when the ID
// is not in the snapshot.
func (e *Engine) Resize(snap Snapshot, id string, class SizeClass, bp Breakpoint) (Snapshot, error) {
	current, ok := snap.Find(id)
	if !ok {
		return snap, ErrWidgetNotFound
	}

	columns := bp.Columns()
	dims := e.dimsFor(current.Kind, class, bp, columns)

	others := snap.Without(id)
	rect, found := FindSlot(others.Widgets, dims.W, dims.H, columns, current.Rect.Y, e.cfg.Search)
	if !found {
		e.logger.Debug("no free slot in scanned region, appending below content",
			"widget", id, "row", rect.Y)
	}

	current.Rect = rect
	return others.With(current), nil
}

// Recover re-packs the snapshot for a column-count change. Equal column
// counts return the snapshot unchanged. Malformed input (overlapping or
// out-of-bounds widgets, typically from corrupted persisted state) is
// logged at warn level and repaired best-effort; only the output is
// guaranteed valid.
func (e *Engine) Recover(snap Snapshot, newColumns, oldColumns int) Snapshot {
	if err := snap.Validate(oldColumns); err != nil {
		e.logger.Warn("recovering from malformed snapshot", "err", err,
			"widgets", snap.Len(), "columns", oldColumns)
	}
	if newColumns == oldColumns {
		return snap
	}
	return Snapshot{Widgets: RecoverLayout(snap.Widgets, newColumns, oldColumns, e.cfg.Search)}
}

// dimsFor resolves catalog dimensions for a widget, applying the
// full-width rule for text kinds.
func (e *Engine) dimsFor(kind Kind, class SizeClass, bp Breakpoint, columns int) Dimensions {
	dims := SizeFor(class, bp, columns)
	if kind == KindText {
		dims.W = columns
	}
	return dims
}
