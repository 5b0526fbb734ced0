package domain

import "time"

// Plan enumerates subscription plan tiers.
type Plan string

const (
	PlanFree Plan = "free"
	PlanPro  Plan = "pro"
)

// SubscriptionStatus enumerates subscription lifecycle states.
type SubscriptionStatus string

const (
	StatusActive   SubscriptionStatus = "active"
	StatusTrial    SubscriptionStatus = "trial"
	StatusPastDue  SubscriptionStatus = "past_due"
	StatusCanceled SubscriptionStatus = "canceled"
)

// APIKey represents a caller credential. The raw key is never stored; only a
// SHA-256 hash and a short prefix for identification are persisted.
type APIKey struct {
	ID         string     `json:"id" db:"id"`
	UserID     string     `json:"user_id" db:"user_id"`
	KeyHash    string     `json:"-" db:"key_hash"`
	KeyPrefix  string     `json:"key_prefix" db:"key_prefix"`
	Name       string     `json:"name" db:"name"`
	Active     bool       `json:"is_active" db:"is_active"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty" db:"expires_at"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty" db:"last_used_at"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}

// Subscription represents a user's billing plan. Read-only from the API's
// perspective; plan changes happen in the billing system.
type Subscription struct {
	UserID string             `json:"user_id" db:"user_id"`
	Plan   Plan               `json:"plan_type" db:"plan_type"`
	Status SubscriptionStatus `json:"status" db:"status"`
}

// APIAccessible reports whether this subscription grants programmatic access.
// Only Pro plans with an active or trial status may call the API.
func (s Subscription) APIAccessible() bool {
	return s.Plan == PlanPro && (s.Status == StatusActive || s.Status == StatusTrial)
}

// AuthContext is the resolved authorization for one request. It lives for the
// duration of the request and is never persisted.
type AuthContext struct {
	UserID       string
	KeyID        string
	Subscription Subscription
}

// Operation enumerates billable API operations.
type Operation string

const (
	OpVerify     Operation = "verify"
	OpBulkVerify Operation = "bulk_verify"
	OpFind       Operation = "find"
)

// AuditEntry is one append-only usage log record per completed operation.
type AuditEntry struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	KeyID     string    `json:"api_key_id" db:"api_key_id"`
	Operation Operation `json:"operation_type" db:"operation_type"`
	ItemCount int       `json:"email_count" db:"email_count"`
	Success   bool      `json:"success" db:"success"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// UsageRecord holds per-user counters for one UTC calendar day. Day boundaries
// are implicit: records are keyed by date, never reset in place.
type UsageRecord struct {
	UserID      string    `json:"user_id" db:"user_id"`
	Day         time.Time `json:"date" db:"date"`
	VerifyCount int       `json:"verify_count" db:"verify_count"`
	FindCount   int       `json:"find_count" db:"find_count"`
	TotalCount  int       `json:"total_count" db:"total_count"`
}

// UsageDeltas are the per-counter increments for one completed operation.
// The store applies them in a single atomic call.
type UsageDeltas struct {
	Verify int
	Find   int
}
