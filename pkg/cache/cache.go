// Package cache provides byte-level caching for computed layouts.
//
// Layout recovery is deterministic, so a recovered snapshot can be keyed
// by the hash of its input snapshot plus the column transition and reused
// across sessions and instances. The package defines a small Cache
// interface with three implementations:
//   - FileCache: on-disk cache for CLI usage
//   - RedisCache: shared cache for multi-instance deployments
//   - NullCache: caching disabled
//
// Keys are produced by a Keyer so callers never concatenate raw strings;
// the DefaultKeyer hashes all components with SHA-256.
package cache

import (
	"context"
	"time"
)

// Cache TTLs per artifact type. Recovery results are pure functions of
// their key, so the TTL only bounds disk growth, not staleness.
const (
	TTLRecovery = 7 * 24 * time.Hour
	TTLSnapshot = time.Hour
)

// Cache is the interface implemented by all cache backends.
// Get returns (data, hit, error); a miss is not an error.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// RecoveryKeyOpts captures everything that influences a recovery result
// besides the snapshot itself.
type RecoveryKeyOpts struct {
	NewColumns  int
	OldColumns  int
	MaxScanRows int
}

// Keyer generates cache keys for the different cached artifact types.
type Keyer interface {
	// RecoveryKey keys a recovered layout by the hash of the input
	// snapshot and the column transition.
	RecoveryKey(snapshotHash string, opts RecoveryKeyOpts) string

	// SnapshotKey keys a rendered or serialized snapshot artifact.
	SnapshotKey(dashboardID, format string) string
}

// DefaultKeyer is the standard Keyer implementation.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// RecoveryKey generates a key for a recovered layout.
func (k *DefaultKeyer) RecoveryKey(snapshotHash string, opts RecoveryKeyOpts) string {
	return hashKey("recovery", snapshotHash, opts.NewColumns, opts.OldColumns, opts.MaxScanRows)
}

// SnapshotKey generates a key for a snapshot artifact.
func (k *DefaultKeyer) SnapshotKey(dashboardID, format string) string {
	return hashKey("snapshot", dashboardID, format)
}

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation,
// so different users or workspaces get separate cache namespaces.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// RecoveryKey generates a prefixed key for a recovered layout.
func (k *ScopedKeyer) RecoveryKey(snapshotHash string, opts RecoveryKeyOpts) string {
	return k.prefix + k.inner.RecoveryKey(snapshotHash, opts)
}

// SnapshotKey generates a prefixed key for a snapshot artifact.
func (k *ScopedKeyer) SnapshotKey(dashboardID, format string) string {
	return k.prefix + k.inner.SnapshotKey(dashboardID, format)
}

// Ensure implementations satisfy Keyer.
var (
	_ Keyer = (*DefaultKeyer)(nil)
	_ Keyer = (*ScopedKeyer)(nil)
)
