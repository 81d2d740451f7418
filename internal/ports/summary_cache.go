package ports

import (
	"context"
	"time"

	"aguaruta-service/internal/domain"
)

// Port: a cache for per-truck summaries keyed by date range.
// Implementations may lose entries at any time; callers must treat a miss
// as "recompute".
type SummaryCache interface {
	// Get returns the cached summary for the range and whether it was present.
	Get(ctx context.Context, desde, hasta time.Time) ([]domain.TruckSummary, bool, error)

	// Put stores the summary for the range.
	Put(ctx context.Context, desde, hasta time.Time, s []domain.TruckSummary) error

	// Invalidate drops all cached summaries. Called after every insert since
	// a new record can land in any cached range.
	Invalidate(ctx context.Context) error
}
