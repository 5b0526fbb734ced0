package auth

import "errors"

// Sentinel errors for the auth service layer. Callers must be able to tell a
// rejected credential apart from a store that could not be reached: the first
// is final, the second is retryable.
var (
	ErrInvalidCredential    = errors.New("invalid API key")
	ErrNoSubscription       = errors.New("no subscription")
	ErrPlanNotAllowed       = errors.New("API access requires Pro plan")
	ErrSubscriptionInactive = errors.New("subscription not active")
	ErrStoreUnavailable     = errors.New("store unavailable")
)
