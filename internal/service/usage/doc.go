// Package usage meters API operations: an append-only audit log plus atomic
// per-user daily counters keyed by UTC date. Counter atomicity is delegated
// to the store; the service issues one logical increment per completed
// operation and holds no locks of its own.
package usage
