// Package store provides snapshot persistence for dashboards.
//
// This package defines an interface for layout storage with
// implementations for different backends:
//   - memory: In-memory storage for development/testing
//   - file: File-based storage for CLI applications
//   - mongo: MongoDB-backed storage for production deployments
//
// A store maps a dashboard ID to its most recent layout snapshot. The
// snapshot saved here is always the reference layout: recovered layouts
// produced for narrower viewports are derived artifacts and belong in
// the cache, not the store.
package store

import (
	"context"
	"time"

	"github.com/matzehuels/dashgrid/pkg/grid"
)

// Record wraps a persisted snapshot with its metadata.
type Record struct {
	DashboardID string        `json:"dashboard_id" bson:"_id"`
	Columns     int           `json:"columns" bson:"columns"`
	Snapshot    grid.Snapshot `json:"snapshot" bson:"snapshot"`
	UpdatedAt   time.Time     `json:"updated_at" bson:"updated_at"`
}

// Store is the interface for snapshot storage backends.
type Store interface {
	// Get retrieves the record for a dashboard.
	// Returns nil, nil if the dashboard doesn't exist.
	Get(ctx context.Context, dashboardID string) (*Record, error)

	// Set stores a record, replacing any previous one for the same dashboard.
	Set(ctx context.Context, rec *Record) error

	// Delete removes a dashboard's record.
	// Deleting a missing dashboard is not an error.
	Delete(ctx context.Context, dashboardID string) error

	// List returns the IDs of all stored dashboards.
	List(ctx context.Context) ([]string, error)

	// Close releases backend resources.
	Close() error
}
