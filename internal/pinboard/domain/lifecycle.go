package domain

import "time"

// Expiry is computed, never stored: a pin is live while its age is under
// the TTL. Server filtering and client-side pruning both use these
// helpers so the two sides agree on the moment a pin disappears.

// IsExpired reports whether a pin created at createdAt has aged out by now.
func IsExpired(createdAt, now time.Time, ttl time.Duration) bool {
	return !now.Before(createdAt.Add(ttl))
}

// RemainingFraction returns the unexpired share of the pin's lifetime,
// clamped to [0, 1]. Used for countdown display.
func RemainingFraction(createdAt, now time.Time, ttl time.Duration) float64 {
	if ttl <= 0 {
		return 0
	}
	remaining := 1 - float64(now.Sub(createdAt))/float64(ttl)
	if remaining < 0 {
		return 0
	}
	if remaining > 1 {
		return 1
	}
	return remaining
}
