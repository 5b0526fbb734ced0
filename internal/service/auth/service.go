package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/lookingup/lookingup-api/internal/domain"
	"github.com/lookingup/lookingup-api/internal/pkg/logger"
)

// Service implements credential authentication and plan authorization.
// It is safe for concurrent use; the only state is the repository handle.
type Service struct {
	repo Repository
}

// NewService creates an auth service backed by the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// HashKey reduces a raw API key to its stored SHA-256 hex digest.
func HashKey(rawKey string) string {
	sum := sha256.Sum256([]byte(rawKey))
	return hex.EncodeToString(sum[:])
}

// Authenticate resolves a raw API key to an authorization context.
//
// Decision order: digest lookup, subscription existence, plan tier, status.
// Store failures surface as ErrStoreUnavailable so callers can retry instead
// of treating an outage as a rejected key. On success the key's last-used
// timestamp is stamped in the background; a failure there never changes the
// authentication outcome.
func (s *Service) Authenticate(ctx context.Context, rawKey string) (*domain.AuthContext, error) {
	if rawKey == "" {
		return nil, ErrInvalidCredential
	}

	key, err := s.repo.FindActiveKey(ctx, HashKey(rawKey))
	if err != nil {
		return nil, fmt.Errorf("%w: key lookup: %v", ErrStoreUnavailable, err)
	}
	if key == nil {
		return nil, ErrInvalidCredential
	}

	sub, err := s.repo.FindSubscription(ctx, key.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: subscription lookup: %v", ErrStoreUnavailable, err)
	}
	if sub == nil {
		return nil, ErrNoSubscription
	}
	if sub.Plan != domain.PlanPro {
		return nil, ErrPlanNotAllowed
	}
	if sub.Status != domain.StatusActive && sub.Status != domain.StatusTrial {
		return nil, ErrSubscriptionInactive
	}

	// Detached from the request context: the touch should survive the
	// response being written and must not block it.
	go func(keyID string) {
		touchCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.repo.TouchKeyLastUsed(touchCtx, keyID); err != nil {
			logger.Warn("key last-used update failed", "key_id", keyID, "error", err)
		}
	}(key.ID)

	return &domain.AuthContext{
		UserID:       key.UserID,
		KeyID:        key.ID,
		Subscription: *sub,
	}, nil
}
