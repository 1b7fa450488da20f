// Package dashboard orchestrates layout operations against persistence,
// caching, and realtime broadcast.
//
// The Runner is the single entry point used by the CLI, the HTTP API,
// and the TUI. It owns the sequencing of every mutation:
//
//  1. Load the stored reference layout
//  2. Recover it to the active breakpoint's column count if needed
//  3. Apply the mutation through the placement engine
//  4. Persist the result as the new reference layout
//  5. Broadcast the new snapshot to connected clients
//
// Environment changes are read-only: the recovered layout is a derived
// artifact, cached by the hash of the reference snapshot plus the column
// transition, and never written back to the store.
package dashboard

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/dashgrid/pkg/cache"
	"github.com/matzehuels/dashgrid/pkg/errors"
	"github.com/matzehuels/dashgrid/pkg/grid"
	"github.com/matzehuels/dashgrid/pkg/observability"
	"github.com/matzehuels/dashgrid/pkg/realtime"
	"github.com/matzehuels/dashgrid/pkg/store"
)

// Runner encapsulates dashboard operations with persistence and caching.
//
// The Runner is stateless except for its collaborators - it doesn't hold
// layout state between calls. Multiple goroutines can safely use the
// same Runner for different dashboards; concurrent mutations of the same
// dashboard are last-writer-wins, matching the store semantics.
type Runner struct {
	Engine    *grid.Engine
	Store     store.Store
	Cache     cache.Cache
	Keyer     cache.Keyer
	Publisher realtime.Publisher
	Logger    *log.Logger
}

// NewRunner creates a runner with the given collaborators.
// Nil collaborators fall back to safe defaults: an engine with default
// config, an in-memory store, caching disabled, and no broadcasting.
func NewRunner(engine *grid.Engine, st store.Store, c cache.Cache, keyer cache.Keyer, pub realtime.Publisher, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	if engine == nil {
		engine = grid.New(grid.Config{}, logger)
	}
	if st == nil {
		st = store.NewMemoryStore()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if pub == nil {
		pub = realtime.NewNoopPublisher()
	}
	return &Runner{
		Engine:    engine,
		Store:     st,
		Cache:     c,
		Keyer:     keyer,
		Publisher: pub,
		Logger:    logger,
	}
}

// Layout is a resolved view of a dashboard for one environment.
type Layout struct {
	DashboardID string          `json:"dashboard_id"`
	Breakpoint  grid.Breakpoint `json:"breakpoint"`
	Columns     int             `json:"columns"`
	Snapshot    grid.Snapshot   `json:"snapshot"`
	CacheHit    bool            `json:"cache_hit"`
}

// Snapshot returns the stored reference layout for a dashboard.
// Returns a DASHBOARD_NOT_FOUND error when the dashboard doesn't exist.
func (r *Runner) Snapshot(ctx context.Context, dashboardID string) (*store.Record, error) {
	rec, err := r.load(ctx, dashboardID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errors.New(errors.ErrCodeDashboardNotFound, "dashboard %q not found", dashboardID)
	}
	return rec, nil
}

// List returns the IDs of all stored dashboards.
func (r *Runner) List(ctx context.Context) ([]string, error) {
	return r.Store.List(ctx)
}

// CreateWidget places a new widget on a dashboard and persists the
// result. A missing dashboard is created on first use. When class is
// empty, the size class is chosen by the creation policy for the kind.
// The widget ID is generated.
func (r *Runner) CreateWidget(ctx context.Context, dashboardID string, kind grid.Kind, class grid.SizeClass, env grid.Environment) (*store.Record, grid.Widget, error) {
	if !kind.IsValid() {
		return nil, grid.Widget{}, errors.New(errors.ErrCodeInvalidKind, "unknown widget kind: %s", kind)
	}

	start := time.Now()
	observability.Layout().OnPlaceStart(ctx, dashboardID, string(kind))

	rec, snap, bp, _, err := r.working(ctx, dashboardID, env)
	if err != nil {
		observability.Layout().OnPlaceComplete(ctx, dashboardID, string(kind), time.Since(start), err)
		return nil, grid.Widget{}, err
	}

	snap, widget := r.Engine.Place(snap, uuid.NewString(), kind, class, bp)
	rec.Snapshot = snap
	rec.Columns = bp.Columns()

	if err := r.save(ctx, rec); err != nil {
		observability.Layout().OnPlaceComplete(ctx, dashboardID, string(kind), time.Since(start), err)
		return nil, grid.Widget{}, err
	}
	observability.Layout().OnPlaceComplete(ctx, dashboardID, string(kind), time.Since(start), nil)

	r.Logger.Info("placed widget",
		"dashboard", dashboardID,
		"widget", widget.ID,
		"kind", kind,
		"rect", widget.Rect,
		"duration", time.Since(start))

	r.broadcast(ctx, rec)
	return rec, widget, nil
}

// ResizeWidget assigns a new size class to an existing widget and
// persists the result.
func (r *Runner) ResizeWidget(ctx context.Context, dashboardID, widgetID string, class grid.SizeClass, env grid.Environment) (*store.Record, error) {
	if err := errors.ValidateWidgetID(widgetID); err != nil {
		return nil, err
	}

	rec, snap, bp, created, err := r.working(ctx, dashboardID, env)
	if err != nil {
		return nil, err
	}
	if created {
		return nil, errors.New(errors.ErrCodeDashboardNotFound, "dashboard %q not found", dashboardID)
	}

	snap, err = r.Engine.Resize(snap, widgetID, class, bp)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeWidgetNotFound, err, "widget %q not in dashboard %q", widgetID, dashboardID)
	}
	rec.Snapshot = snap
	rec.Columns = bp.Columns()

	if err := r.save(ctx, rec); err != nil {
		return nil, err
	}

	r.Logger.Info("resized widget",
		"dashboard", dashboardID,
		"widget", widgetID,
		"class", class)

	r.broadcast(ctx, rec)
	return rec, nil
}

// RemoveWidget deletes a widget from a dashboard and persists the
// result. Remaining widgets keep their positions; the grid does not
// re-pack on removal.
func (r *Runner) RemoveWidget(ctx context.Context, dashboardID, widgetID string) (*store.Record, error) {
	if err := errors.ValidateWidgetID(widgetID); err != nil {
		return nil, err
	}

	rec, err := r.Snapshot(ctx, dashboardID)
	if err != nil {
		return nil, err
	}
	if _, ok := rec.Snapshot.Find(widgetID); !ok {
		return nil, errors.New(errors.ErrCodeWidgetNotFound, "widget %q not in dashboard %q", widgetID, dashboardID)
	}

	rec.Snapshot = rec.Snapshot.Without(widgetID)
	if err := r.save(ctx, rec); err != nil {
		return nil, err
	}

	r.Logger.Info("removed widget", "dashboard", dashboardID, "widget", widgetID)

	r.broadcast(ctx, rec)
	return rec, nil
}

// DeleteDashboard removes a dashboard and its stored layout.
func (r *Runner) DeleteDashboard(ctx context.Context, dashboardID string) error {
	if err := r.Store.Delete(ctx, dashboardID); err != nil {
		observability.Store().OnError(ctx, dashboardID, err)
		return err
	}
	r.Logger.Info("deleted dashboard", "dashboard", dashboardID)
	return nil
}

// EnvironmentChanged resolves the layout for a new environment. The
// stored reference layout is recovered to the active breakpoint's
// column count; the result is cached but never written back to the
// store, so widening the window again restores original positions from
// the reference.
func (r *Runner) EnvironmentChanged(ctx context.Context, dashboardID string, env grid.Environment) (*Layout, error) {
	rec, err := r.Snapshot(ctx, dashboardID)
	if err != nil {
		return nil, err
	}

	bp := r.Engine.Resolve(env)
	columns := bp.Columns()

	layout := &Layout{
		DashboardID: dashboardID,
		Breakpoint:  bp,
		Columns:     columns,
		Snapshot:    rec.Snapshot,
	}
	if columns == rec.Columns {
		return layout, nil
	}

	snap, hit, err := r.recover(ctx, dashboardID, rec, columns)
	if err != nil {
		return nil, err
	}
	layout.Snapshot = snap
	layout.CacheHit = hit
	return layout, nil
}

// working loads a dashboard (creating an empty record on first use) and
// recovers its snapshot to the environment's column count so mutations
// always operate at the active breakpoint.
func (r *Runner) working(ctx context.Context, dashboardID string, env grid.Environment) (rec *store.Record, snap grid.Snapshot, bp grid.Breakpoint, created bool, err error) {
	bp = r.Engine.Resolve(env)
	columns := bp.Columns()

	rec, err = r.load(ctx, dashboardID)
	if err != nil {
		return nil, grid.Snapshot{}, bp, false, err
	}
	if rec == nil {
		rec = &store.Record{DashboardID: dashboardID, Columns: columns}
		return rec, grid.Snapshot{}, bp, true, nil
	}

	snap = rec.Snapshot
	if rec.Columns != 0 && rec.Columns != columns {
		snap, _, err = r.recover(ctx, dashboardID, rec, columns)
		if err != nil {
			return nil, grid.Snapshot{}, bp, false, err
		}
	}
	return rec, snap, bp, false, nil
}

// recover runs the layout recovery transform with caching. Recovery is
// deterministic, so the result is keyed by the hash of the reference
// snapshot plus the column transition.
func (r *Runner) recover(ctx context.Context, dashboardID string, rec *store.Record, newColumns int) (grid.Snapshot, bool, error) {
	start := time.Now()
	observability.Layout().OnRecoverStart(ctx, rec.Snapshot.Len(), newColumns, rec.Columns)

	if err := rec.Snapshot.Validate(rec.Columns); err != nil {
		observability.Layout().OnRepair(ctx, dashboardID, rec.Snapshot.Len())
	}

	snapData, err := json.Marshal(rec.Snapshot)
	if err != nil {
		observability.Layout().OnRecoverComplete(ctx, rec.Snapshot.Len(), time.Since(start), err)
		return grid.Snapshot{}, false, errors.Wrap(errors.ErrCodeInternal, err, "marshal snapshot")
	}
	key := r.Keyer.RecoveryKey(cache.Hash(snapData), cache.RecoveryKeyOpts{
		NewColumns:  newColumns,
		OldColumns:  rec.Columns,
		MaxScanRows: r.Engine.MaxScanRows(),
	})

	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		var cached grid.Snapshot
		if err := json.Unmarshal(data, &cached); err == nil {
			observability.Cache().OnCacheHit(ctx, "recovery")
			observability.Layout().OnRecoverComplete(ctx, cached.Len(), time.Since(start), nil)
			return cached, true, nil
		}
		// Corrupt entry - fall through to recompute
	}
	observability.Cache().OnCacheMiss(ctx, "recovery")

	recovered := r.Engine.Recover(rec.Snapshot, newColumns, rec.Columns)

	if data, err := json.Marshal(recovered); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLRecovery); err != nil {
			r.Logger.Debug("cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "recovery", len(data))
		}
	}

	observability.Layout().OnRecoverComplete(ctx, recovered.Len(), time.Since(start), nil)

	r.Logger.Info("recovered layout",
		"dashboard", dashboardID,
		"widgets", recovered.Len(),
		"columns", newColumns,
		"from_columns", rec.Columns,
		"duration", time.Since(start))

	return recovered, false, nil
}

func (r *Runner) load(ctx context.Context, dashboardID string) (*store.Record, error) {
	start := time.Now()
	rec, err := r.Store.Get(ctx, dashboardID)
	if err != nil {
		observability.Store().OnError(ctx, dashboardID, err)
		return nil, err
	}
	observability.Store().OnLoad(ctx, dashboardID, rec != nil, time.Since(start))
	return rec, nil
}

func (r *Runner) save(ctx context.Context, rec *store.Record) error {
	start := time.Now()
	rec.UpdatedAt = time.Now().UTC()
	if err := r.Store.Set(ctx, rec); err != nil {
		observability.Store().OnError(ctx, rec.DashboardID, err)
		return errors.Wrap(errors.ErrCodeStore, err, "save dashboard %q", rec.DashboardID)
	}
	observability.Store().OnSave(ctx, rec.DashboardID, rec.Snapshot.Len(), time.Since(start))
	return nil
}

// broadcast publishes the new snapshot. Broadcast failures are logged
// but never fail the mutation that produced the snapshot.
func (r *Runner) broadcast(ctx context.Context, rec *store.Record) {
	err := r.Publisher.Publish(ctx, realtime.Event{
		DashboardID: rec.DashboardID,
		Columns:     rec.Columns,
		Snapshot:    rec.Snapshot,
	})
	if err != nil {
		r.Logger.Warn("broadcast failed", "dashboard", rec.DashboardID, "err", err)
	}
}
