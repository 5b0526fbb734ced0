package usage

import (
	"context"
	"time"

	"github.com/lookingup/lookingup-api/internal/domain"
)

// Repository defines the data access contract for usage metering.
type Repository interface {
	// AppendAudit inserts one usage log entry. Entries are write-once.
	AppendAudit(ctx context.Context, entry *domain.AuditEntry) error

	// IncrementDailyUsage atomically adds the deltas to the user's counters
	// for the given day, creating the row if needed. Atomicity is the
	// store's responsibility (a single stored procedure call).
	IncrementDailyUsage(ctx context.Context, userID string, day time.Time, deltas domain.UsageDeltas) error

	// ReadDailyUsage returns the user's counters for the given day, or
	// (nil, nil) when no row exists yet.
	ReadDailyUsage(ctx context.Context, userID string, day time.Time) (*domain.UsageRecord, error)
}
