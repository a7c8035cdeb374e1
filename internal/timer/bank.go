// Package timer converts authoritative server timer snapshots into local
// countdown values. The server sends (remaining, server_timestamp, running)
// once per change; the bank replays elapsed local time on top of the snapshot
// so every read between updates stays monotonically non-increasing without
// depending on the offset between the two clocks.
package timer

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Kind selects between a seat's two independent countdowns.
type Kind int

const (
	Turn Kind = iota
	Reserve

	numKinds = 2
)

// NumSeats mirrors the four fixed player positions.
const NumSeats = 4

type snapshot struct {
	remaining time.Duration
	// receivedAt is our clock at snapshot arrival. Elapsed time is measured
	// against it rather than the server timestamp, so the absolute offset
	// between server and client clocks cancels out of every read.
	receivedAt time.Time
	serverTime time.Time
	running    bool
}

// Bank holds the turn and reserve timers of all four seats for one session.
type Bank struct {
	clock clockwork.Clock

	mu    sync.Mutex
	slots [NumSeats][numKinds]snapshot
}

// NewBank builds a bank on the given clock. Tests pass a fake clock.
func NewBank(clock clockwork.Clock) *Bank {
	return &Bank{clock: clock}
}

// SetTime records an authoritative snapshot for one seat's timer.
func (b *Bank) SetTime(spot int, kind Kind, remaining time.Duration, serverTime time.Time, running bool) {
	if spot < 0 || spot >= NumSeats {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.slots[spot][kind] = snapshot{
		remaining:  remaining,
		receivedAt: b.clock.Now(),
		serverTime: serverTime,
		running:    running,
	}
}

// SetTradingTime writes one snapshot into every seat's reserve slot. The
// trading phase shows a single shared countdown in all four reserve
// positions; this is a display convention, not a fifth timer.
func (b *Bank) SetTradingTime(remaining time.Duration, serverTime time.Time, running bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := b.clock.Now()
	for spot := 0; spot < NumSeats; spot++ {
		b.slots[spot][Reserve] = snapshot{
			remaining:  remaining,
			receivedAt: now,
			serverTime: serverTime,
			running:    running,
		}
	}
}

// Remaining returns the countdown value to display for one seat's timer,
// clamped at zero. A stopped timer holds its last authoritative value.
func (b *Bank) Remaining(spot int, kind Kind) time.Duration {
	if spot < 0 || spot >= NumSeats {
		return 0
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	snap := b.slots[spot][kind]
	remaining := snap.remaining
	if snap.running {
		remaining -= b.clock.Now().Sub(snap.receivedAt)
	}
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Running reports whether the seat's timer is counting down.
func (b *Bank) Running(spot int, kind Kind) bool {
	if spot < 0 || spot >= NumSeats {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.slots[spot][kind].running
}

// Run invokes onTick at the given interval until ctx is cancelled. Ticks are
// delivered from a single goroutine, so a slow callback delays the next tick
// instead of overlapping it.
func (b *Bank) Run(ctx context.Context, interval time.Duration, onTick func()) {
	ticker := b.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			onTick()
		}
	}
}
