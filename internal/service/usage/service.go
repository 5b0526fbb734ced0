package usage

import (
	"context"
	"fmt"
	"time"

	"github.com/lookingup/lookingup-api/internal/domain"
)

// Service implements usage metering on top of a Repository.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a usage meter backed by the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Day truncates t to its UTC calendar day. All counters key on this value, so
// the daily reset is implicit: a new day is simply a new row.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Record appends one audit entry for a completed operation.
func (s *Service) Record(ctx context.Context, userID, keyID string, op domain.Operation, itemCount int, success bool) error {
	if itemCount < 0 {
		return fmt.Errorf("item count must be non-negative, got %d", itemCount)
	}
	return s.repo.AppendAudit(ctx, &domain.AuditEntry{
		UserID:    userID,
		KeyID:     keyID,
		Operation: op,
		ItemCount: itemCount,
		Success:   success,
	})
}

// Increment adds the deltas to the user's counters for the current UTC day.
func (s *Service) Increment(ctx context.Context, userID string, deltas domain.UsageDeltas) error {
	if deltas.Verify < 0 || deltas.Find < 0 {
		return fmt.Errorf("deltas must be non-negative: %+v", deltas)
	}
	return s.repo.IncrementDailyUsage(ctx, userID, Day(s.now()), deltas)
}

// Today returns the user's counters for the current UTC day. A user with no
// activity gets a zero-valued record, never a missing one.
func (s *Service) Today(ctx context.Context, userID string) (*domain.UsageRecord, error) {
	day := Day(s.now())
	rec, err := s.repo.ReadDailyUsage(ctx, userID, day)
	if err != nil {
		return nil, fmt.Errorf("read daily usage: %w", err)
	}
	if rec == nil {
		return &domain.UsageRecord{UserID: userID, Day: day}, nil
	}
	return rec, nil
}
