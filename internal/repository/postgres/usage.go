package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lookingup/lookingup-api/internal/domain"
)

// UsageRepo implements usage.Repository against PostgreSQL. Daily counter
// increments go through the increment_daily_usage stored procedure so that
// concurrent requests for the same user and day serialize in the database.
type UsageRepo struct{ db *sql.DB }

// NewUsageRepo creates a Postgres-backed usage repository.
func NewUsageRepo(db *sql.DB) *UsageRepo { return &UsageRepo{db: db} }

func (r *UsageRepo) AppendAudit(ctx context.Context, entry *domain.AuditEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO usage_logs (id, user_id, api_key_id, operation_type, email_count, success, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`, entry.ID, entry.UserID, entry.KeyID, entry.Operation, entry.ItemCount, entry.Success)
	if err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}
	return nil
}

func (r *UsageRepo) IncrementDailyUsage(ctx context.Context, userID string, day time.Time, deltas domain.UsageDeltas) error {
	_, err := r.db.ExecContext(ctx,
		`SELECT increment_daily_usage($1, $2, $3, $4)`,
		userID, day.Format("2006-01-02"), deltas.Verify, deltas.Find)
	if err != nil {
		return fmt.Errorf("increment daily usage: %w", err)
	}
	return nil
}

func (r *UsageRepo) ReadDailyUsage(ctx context.Context, userID string, day time.Time) (*domain.UsageRecord, error) {
	rec := domain.UsageRecord{UserID: userID, Day: day}
	err := r.db.QueryRowContext(ctx, `
		SELECT verify_count, find_count, total_count
		FROM daily_usage
		WHERE user_id = $1 AND date = $2
	`, userID, day.Format("2006-01-02")).Scan(&rec.VerifyCount, &rec.FindCount, &rec.TotalCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read daily usage: %w", err)
	}
	return &rec, nil
}
