package auth

import (
	"context"

	"github.com/lookingup/lookingup-api/internal/domain"
)

// Repository defines the data access contract for credential resolution.
type Repository interface {
	// FindActiveKey looks up an API key by its SHA-256 digest. Only active,
	// unexpired keys match. Returns (nil, nil) when no key matches.
	FindActiveKey(ctx context.Context, keyHash string) (*domain.APIKey, error)

	// FindSubscription returns the user's subscription, or (nil, nil) when
	// the user has none.
	FindSubscription(ctx context.Context, userID string) (*domain.Subscription, error)

	// TouchKeyLastUsed stamps the key's last-used time. Best effort; the
	// caller ignores failures.
	TouchKeyLastUsed(ctx context.Context, keyID string) error
}
