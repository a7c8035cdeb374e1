package transport

import "time"

// Backoff is an exponential reconnect policy with a delay cap and an attempt
// budget.
type Backoff struct {
	Base        time.Duration
	Cap         time.Duration
	MaxAttempts int
}

// DefaultBackoff matches the config package defaults.
func DefaultBackoff() Backoff {
	return Backoff{
		Base:        500 * time.Millisecond,
		Cap:         15 * time.Second,
		MaxAttempts: 8,
	}
}

// Delay returns the wait before the given attempt (1-based): base doubled
// per attempt, never above the cap.
func (b Backoff) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	delay := b.Base
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= b.Cap {
			return b.Cap
		}
	}
	if delay > b.Cap {
		return b.Cap
	}
	return delay
}
