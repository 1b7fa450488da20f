// Package realtime broadcasts layout changes to connected clients.
//
// Every mutation that produces a new snapshot publishes the full
// snapshot on a per-dashboard channel. Subscribers (other server
// instances, websocket fan-out layers) re-render from the snapshot;
// no incremental diffs are sent, so a dropped message is healed by the
// next one.
package realtime

import (
	"context"
	"time"

	"github.com/matzehuels/dashgrid/pkg/grid"
)

// Event is the payload published for every layout change.
type Event struct {
	DashboardID string        `json:"dashboard_id"`
	Columns     int           `json:"columns"`
	Snapshot    grid.Snapshot `json:"snapshot"`
	PublishedAt time.Time     `json:"published_at"`
}

// Publisher is the interface for layout change broadcasting.
type Publisher interface {
	// Publish broadcasts a layout change for a dashboard.
	Publish(ctx context.Context, event Event) error

	// Close releases publisher resources.
	Close() error
}

// NoopPublisher discards all events.
// Used when realtime broadcasting is disabled.
type NoopPublisher struct{}

// NewNoopPublisher creates a publisher that discards events.
func NewNoopPublisher() Publisher {
	return &NoopPublisher{}
}

// Publish does nothing.
func (p *NoopPublisher) Publish(ctx context.Context, event Event) error { return nil }

// Close does nothing.
func (p *NoopPublisher) Close() error { return nil }

var _ Publisher = (*NoopPublisher)(nil)
