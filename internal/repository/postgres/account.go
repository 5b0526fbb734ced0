// Package postgres implements the service repository interfaces against
// PostgreSQL via database/sql and lib/pq.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lookingup/lookingup-api/internal/domain"
)

// AccountRepo implements auth.Repository against PostgreSQL.
type AccountRepo struct{ db *sql.DB }

// NewAccountRepo creates a Postgres-backed account repository.
func NewAccountRepo(db *sql.DB) *AccountRepo { return &AccountRepo{db: db} }

func (r *AccountRepo) FindActiveKey(ctx context.Context, keyHash string) (*domain.APIKey, error) {
	var k domain.APIKey
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, key_hash, key_prefix, name, is_active, expires_at, last_used_at, created_at
		FROM api_keys
		WHERE key_hash = $1
		  AND is_active = true
		  AND (expires_at IS NULL OR expires_at > NOW())
	`, keyHash).Scan(&k.ID, &k.UserID, &k.KeyHash, &k.KeyPrefix, &k.Name, &k.Active, &k.ExpiresAt, &k.LastUsedAt, &k.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find active key: %w", err)
	}
	return &k, nil
}

func (r *AccountRepo) FindSubscription(ctx context.Context, userID string) (*domain.Subscription, error) {
	var s domain.Subscription
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, plan_type, status
		FROM subscriptions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, userID).Scan(&s.UserID, &s.Plan, &s.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find subscription: %w", err)
	}
	return &s, nil
}

func (r *AccountRepo) TouchKeyLastUsed(ctx context.Context, keyID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE api_keys SET last_used_at = NOW() WHERE id = $1`, keyID)
	if err != nil {
		return fmt.Errorf("touch key last used: %w", err)
	}
	return nil
}
