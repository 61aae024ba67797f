// Package ratelimit provides a per-client request limiter with pluggable
// backing stores: in-memory for a single instance, Redis when several
// instances must share budgets.
package ratelimit

// Limiter reports whether a client may make another request right now.
// Counting is approximate; concurrent callers may race on the increment.
type Limiter interface {
	Allow(clientID string) bool
}
