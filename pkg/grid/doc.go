// Package grid implements the responsive widget grid positioning engine
// for dashgrid dashboards.
//
// The engine places rectangular widgets on a column-based coordinate grid,
// keeps them from overlapping, and re-flows the whole layout whenever the
// number of available columns changes (a side panel opened or closed, or
// the viewport crossed a breakpoint).
//
// # Components
//
// The package is organized around a handful of small, pure building blocks:
//
//   - Rect and Overlaps: integer-cell geometry (rect.go)
//   - FindSlot: greedy top-left free-slot search (slot.go)
//   - SizeFor: the size-class dimension catalog (sizes.go)
//   - Resolve and Environment: pixel-width to breakpoint mapping (breakpoint.go)
//   - RecoverLayout: the column-change re-pack transform (recover.go)
//   - Engine: the per-widget placement orchestrator (engine.go)
//
// # Value Semantics
//
// Snapshots are immutable values. Every operation takes a Snapshot and
// returns a new one; rectangles are never mutated in place. This makes
// each layout change a wholesale, atomic replacement that external
// persistence and rendering can consume safely.
//
// # Determinism
//
// All placement is deterministic: the same snapshot, environment, and
// intent always produce the same output. There is no randomness and no
// time dependence, so layouts are reproducible and cacheable.
package grid
