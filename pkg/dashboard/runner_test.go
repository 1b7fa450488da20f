package dashboard

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dashgrid/pkg/cache"
	"github.com/matzehuels/dashgrid/pkg/errors"
	"github.com/matzehuels/dashgrid/pkg/grid"
	"github.com/matzehuels/dashgrid/pkg/realtime"
	"github.com/matzehuels/dashgrid/pkg/store"
)

// wideEnv resolves to the lg breakpoint (12 columns) with both panels closed.
var wideEnv = grid.Environment{WindowWidthPx: 1280}

// narrowEnv resolves to the xs breakpoint (4 columns).
var narrowEnv = grid.Environment{WindowWidthPx: 600}

func testRunner(t *testing.T) *Runner {
	t.Helper()
	logger := log.New(io.Discard)
	return NewRunner(grid.New(grid.Config{}, logger), store.NewMemoryStore(), nil, nil, nil, logger)
}

func TestNewRunnerNilSafe(t *testing.T) {
	r := NewRunner(nil, nil, nil, nil, nil, nil)
	if r.Engine == nil || r.Store == nil || r.Cache == nil || r.Keyer == nil || r.Publisher == nil || r.Logger == nil {
		t.Error("NewRunner should default all nil collaborators")
	}
}

func TestCreateWidget(t *testing.T) {
	ctx := context.Background()
	r := testRunner(t)

	rec, w1, err := r.CreateWidget(ctx, "dash-1", grid.KindChart, "", wideEnv)
	if err != nil {
		t.Fatalf("CreateWidget error: %v", err)
	}
	if w1.ID == "" {
		t.Error("widget ID should be generated")
	}
	// Default chart class at lg is chart-m (6x3), placed top-left.
	if w1.Rect != (grid.Rect{X: 0, Y: 0, W: 6, H: 3}) {
		t.Errorf("first chart rect = %+v, want (0,0,6,3)", w1.Rect)
	}
	if rec.Columns != 12 {
		t.Errorf("record columns = %d, want 12", rec.Columns)
	}

	// Second chart fills the remaining half of the row.
	_, w2, err := r.CreateWidget(ctx, "dash-1", grid.KindChart, "", wideEnv)
	if err != nil {
		t.Fatalf("CreateWidget error: %v", err)
	}
	if w2.Rect != (grid.Rect{X: 6, Y: 0, W: 6, H: 3}) {
		t.Errorf("second chart rect = %+v, want (6,0,6,3)", w2.Rect)
	}

	// Text spans the full row regardless of catalog width.
	_, w3, err := r.CreateWidget(ctx, "dash-1", grid.KindText, "", wideEnv)
	if err != nil {
		t.Fatalf("CreateWidget error: %v", err)
	}
	if w3.Rect.X != 0 || w3.Rect.W != 12 {
		t.Errorf("text rect = %+v, want full width at x=0", w3.Rect)
	}

	// The persisted snapshot is valid for its column count.
	rec, err = r.Snapshot(ctx, "dash-1")
	if err != nil {
		t.Fatalf("Snapshot error: %v", err)
	}
	if err := rec.Snapshot.Validate(rec.Columns); err != nil {
		t.Errorf("persisted snapshot invalid: %v", err)
	}
}

func TestCreateWidgetInvalidKind(t *testing.T) {
	r := testRunner(t)
	_, _, err := r.CreateWidget(context.Background(), "dash-1", "sparkline", "", wideEnv)
	if !errors.Is(err, errors.ErrCodeInvalidKind) {
		t.Errorf("expected INVALID_KIND, got %v", err)
	}
}

func TestResizeWidget(t *testing.T) {
	ctx := context.Background()
	r := testRunner(t)

	_, w, err := r.CreateWidget(ctx, "dash-1", grid.KindChart, "", wideEnv)
	if err != nil {
		t.Fatalf("CreateWidget error: %v", err)
	}

	rec, err := r.ResizeWidget(ctx, "dash-1", w.ID, grid.SizeChartL, wideEnv)
	if err != nil {
		t.Fatalf("ResizeWidget error: %v", err)
	}
	got, ok := rec.Snapshot.Find(w.ID)
	if !ok {
		t.Fatal("resized widget missing from snapshot")
	}
	// chart-l at lg is 8x4.
	if got.Rect.W != 8 || got.Rect.H != 4 {
		t.Errorf("resized rect = %+v, want 8x4", got.Rect)
	}
}

func TestResizeWidgetNotFound(t *testing.T) {
	ctx := context.Background()
	r := testRunner(t)

	// Missing dashboard
	_, err := r.ResizeWidget(ctx, "nope", "w1", grid.SizeChartS, wideEnv)
	if !errors.Is(err, errors.ErrCodeDashboardNotFound) {
		t.Errorf("expected DASHBOARD_NOT_FOUND, got %v", err)
	}

	// Missing widget
	if _, _, err := r.CreateWidget(ctx, "dash-1", grid.KindChart, "", wideEnv); err != nil {
		t.Fatalf("CreateWidget error: %v", err)
	}
	_, err = r.ResizeWidget(ctx, "dash-1", "ghost", grid.SizeChartS, wideEnv)
	if !errors.Is(err, errors.ErrCodeWidgetNotFound) {
		t.Errorf("expected WIDGET_NOT_FOUND, got %v", err)
	}
}

func TestRemoveWidget(t *testing.T) {
	ctx := context.Background()
	r := testRunner(t)

	_, w1, _ := r.CreateWidget(ctx, "dash-1", grid.KindChart, "", wideEnv)
	_, w2, _ := r.CreateWidget(ctx, "dash-1", grid.KindChart, "", wideEnv)

	rec, err := r.RemoveWidget(ctx, "dash-1", w1.ID)
	if err != nil {
		t.Fatalf("RemoveWidget error: %v", err)
	}
	if rec.Snapshot.Len() != 1 {
		t.Fatalf("snapshot has %d widgets after removal, want 1", rec.Snapshot.Len())
	}

	// Remaining widgets keep their positions; no re-pack.
	got, _ := rec.Snapshot.Find(w2.ID)
	if got.Rect != w2.Rect {
		t.Errorf("remaining widget moved: %+v, want %+v", got.Rect, w2.Rect)
	}

	_, err = r.RemoveWidget(ctx, "dash-1", w1.ID)
	if !errors.Is(err, errors.ErrCodeWidgetNotFound) {
		t.Errorf("removing twice should be WIDGET_NOT_FOUND, got %v", err)
	}
}

func TestEnvironmentChanged(t *testing.T) {
	ctx := context.Background()
	r := testRunner(t)

	_, w1, _ := r.CreateWidget(ctx, "dash-1", grid.KindChart, "", wideEnv)
	_, w2, _ := r.CreateWidget(ctx, "dash-1", grid.KindChart, "", wideEnv)

	// Same breakpoint: reference layout returned untouched.
	layout, err := r.EnvironmentChanged(ctx, "dash-1", wideEnv)
	if err != nil {
		t.Fatalf("EnvironmentChanged error: %v", err)
	}
	if layout.Breakpoint != grid.BreakpointLG || layout.Columns != 12 {
		t.Errorf("layout = %s/%d, want lg/12", layout.Breakpoint, layout.Columns)
	}
	if got, _ := layout.Snapshot.Find(w1.ID); got.Rect != w1.Rect {
		t.Errorf("same-breakpoint layout should be unchanged")
	}

	// Narrower viewport: both 6-wide charts shrink to 2 wide on one row.
	layout, err = r.EnvironmentChanged(ctx, "dash-1", narrowEnv)
	if err != nil {
		t.Fatalf("EnvironmentChanged error: %v", err)
	}
	if layout.Columns != 4 {
		t.Fatalf("columns = %d, want 4", layout.Columns)
	}
	if err := layout.Snapshot.Validate(4); err != nil {
		t.Errorf("recovered layout invalid: %v", err)
	}
	g1, _ := layout.Snapshot.Find(w1.ID)
	g2, _ := layout.Snapshot.Find(w2.ID)
	if g1.Rect != (grid.Rect{X: 0, Y: 0, W: 2, H: 3}) {
		t.Errorf("w1 recovered rect = %+v, want (0,0,2,3)", g1.Rect)
	}
	if g2.Rect != (grid.Rect{X: 2, Y: 0, W: 2, H: 3}) {
		t.Errorf("w2 recovered rect = %+v, want (2,0,2,3)", g2.Rect)
	}

	// Environment changes never overwrite the stored reference layout.
	rec, _ := r.Snapshot(ctx, "dash-1")
	if rec.Columns != 12 {
		t.Errorf("stored columns = %d, want 12", rec.Columns)
	}
	if got, _ := rec.Snapshot.Find(w2.ID); got.Rect != w2.Rect {
		t.Error("reference layout should survive environment changes")
	}
}

func TestEnvironmentChangedCaching(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	logger := log.New(io.Discard)
	r := NewRunner(grid.New(grid.Config{}, logger), store.NewMemoryStore(), fc, nil, nil, logger)

	if _, _, err := r.CreateWidget(ctx, "dash-1", grid.KindChart, "", wideEnv); err != nil {
		t.Fatalf("CreateWidget error: %v", err)
	}

	first, err := r.EnvironmentChanged(ctx, "dash-1", narrowEnv)
	if err != nil {
		t.Fatalf("EnvironmentChanged error: %v", err)
	}
	if first.CacheHit {
		t.Error("first recovery should be a cache miss")
	}

	second, err := r.EnvironmentChanged(ctx, "dash-1", narrowEnv)
	if err != nil {
		t.Fatalf("EnvironmentChanged error: %v", err)
	}
	if !second.CacheHit {
		t.Error("second recovery should hit the cache")
	}
	if len(second.Snapshot.Widgets) != len(first.Snapshot.Widgets) {
		t.Error("cached recovery should match computed recovery")
	}
	for i, w := range first.Snapshot.Sorted() {
		if second.Snapshot.Sorted()[i] != w {
			t.Errorf("cached widget %d = %+v, want %+v", i, second.Snapshot.Sorted()[i], w)
		}
	}
}

func TestEnvironmentChangedNotFound(t *testing.T) {
	r := testRunner(t)
	_, err := r.EnvironmentChanged(context.Background(), "nope", wideEnv)
	if !errors.Is(err, errors.ErrCodeDashboardNotFound) {
		t.Errorf("expected DASHBOARD_NOT_FOUND, got %v", err)
	}
}

func TestMutationAtNarrowBreakpoint(t *testing.T) {
	ctx := context.Background()
	r := testRunner(t)

	if _, _, err := r.CreateWidget(ctx, "dash-1", grid.KindChart, "", wideEnv); err != nil {
		t.Fatalf("CreateWidget error: %v", err)
	}

	// Mutating at a narrower breakpoint re-bases the reference layout.
	rec, _, err := r.CreateWidget(ctx, "dash-1", grid.KindKPI, "", narrowEnv)
	if err != nil {
		t.Fatalf("CreateWidget error: %v", err)
	}
	if rec.Columns != 4 {
		t.Errorf("columns after narrow mutation = %d, want 4", rec.Columns)
	}
	if err := rec.Snapshot.Validate(4); err != nil {
		t.Errorf("re-based snapshot invalid: %v", err)
	}
}

func TestDeleteDashboard(t *testing.T) {
	ctx := context.Background()
	r := testRunner(t)

	if _, _, err := r.CreateWidget(ctx, "dash-1", grid.KindChart, "", wideEnv); err != nil {
		t.Fatalf("CreateWidget error: %v", err)
	}
	if err := r.DeleteDashboard(ctx, "dash-1"); err != nil {
		t.Fatalf("DeleteDashboard error: %v", err)
	}
	if _, err := r.Snapshot(ctx, "dash-1"); !errors.Is(err, errors.ErrCodeDashboardNotFound) {
		t.Errorf("expected DASHBOARD_NOT_FOUND after delete, got %v", err)
	}
}

// capturingPublisher records published events for assertions.
type capturingPublisher struct {
	events []realtime.Event
}

func (p *capturingPublisher) Publish(ctx context.Context, ev realtime.Event) error {
	p.events = append(p.events, ev)
	return nil
}

func (p *capturingPublisher) Close() error { return nil }

func TestMutationsBroadcast(t *testing.T) {
	ctx := context.Background()
	pub := &capturingPublisher{}
	logger := log.New(io.Discard)
	r := NewRunner(grid.New(grid.Config{}, logger), store.NewMemoryStore(), nil, nil, pub, logger)

	_, w, err := r.CreateWidget(ctx, "dash-1", grid.KindChart, "", wideEnv)
	if err != nil {
		t.Fatalf("CreateWidget error: %v", err)
	}
	if _, err := r.RemoveWidget(ctx, "dash-1", w.ID); err != nil {
		t.Fatalf("RemoveWidget error: %v", err)
	}

	if len(pub.events) != 2 {
		t.Fatalf("published %d events, want 2", len(pub.events))
	}
	if pub.events[0].DashboardID != "dash-1" || pub.events[0].Snapshot.Len() != 1 {
		t.Errorf("first event = %+v, want full snapshot for dash-1", pub.events[0])
	}
	if pub.events[1].Snapshot.Len() != 0 {
		t.Errorf("second event should carry the emptied snapshot")
	}
}
