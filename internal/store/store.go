// Package store persists user preferences: which markets the viewer has
// selected and any per-market open/close time overrides.
package store

import (
	"context"

	"github.com/can-finance/tradingclocks/internal/domain"
)

// PrefStore persists and retrieves viewer preferences. Implementations must
// be safe for concurrent use by the API handlers.
type PrefStore interface {
	// SaveTimeOverride inserts or replaces the override for a market.
	SaveTimeOverride(ctx context.Context, marketID string, ov domain.TimeOverride) error

	// DeleteTimeOverride removes the override for a market.
	DeleteTimeOverride(ctx context.Context, marketID string) error

	// TimeOverrides returns all stored overrides keyed by market id.
	TimeOverrides(ctx context.Context) (map[string]domain.TimeOverride, error)

	// SetSelected replaces the set of selected market ids.
	SetSelected(ctx context.Context, marketIDs []string) error

	// Selected returns the selected market ids, sorted.
	Selected(ctx context.Context) ([]string, error)

	// Close releases the underlying resources.
	Close() error
}
