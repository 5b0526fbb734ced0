// Package auth resolves raw API keys to an authorization context.
//
// A credential is reduced to a SHA-256 digest before any lookup; the raw key
// never touches the database or a log line. Authorization requires an active,
// unexpired key whose owner holds a Pro subscription in active or trial status.
//
// The service layer contains pure business logic and depends on the
// Repository interface defined in repository.go. It never imports
// net/http or database/sql directly.
package auth
