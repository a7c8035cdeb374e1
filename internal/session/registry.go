package session

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/presidents-game/client-go/internal/game"
	"github.com/presidents-game/client-go/internal/timer"
)

// Registry maps session identifiers to isolated state instances. Two joined
// games on one client never share any mutable state.
type Registry struct {
	log          *zerolog.Logger
	clock        clockwork.Clock
	tickInterval time.Duration

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewRegistry builds an empty registry. The clock is shared by every
// session's timer bank; tests pass a fake one.
func NewRegistry(logger *zerolog.Logger, clock clockwork.Clock, tickInterval time.Duration) *Registry {
	if tickInterval <= 0 {
		tickInterval = time.Second
	}
	return &Registry{
		log:          logger,
		clock:        clock,
		tickInterval: tickInterval,
		sessions:     make(map[string]*Session),
	}
}

// Create registers a fresh session for the identifier and starts its timer
// tick loop. Returns ErrSessionExists when the identifier is already live.
func (r *Registry) Create(id string, sender Sender) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[id]; exists {
		return nil, ErrSessionExists
	}

	ctx, cancel := context.WithCancel(context.Background())
	sess := &Session{
		id:     id,
		log:    r.log.With().Str("session_id", id).Logger(),
		sender: sender,
		timers: timer.NewBank(r.clock),
		state:  game.NewState(),
		cancel: cancel,
	}
	go sess.timers.Run(ctx, r.tickInterval, sess.notifyChange)

	r.sessions[id] = sess
	sess.log.Info().Msg("session created")
	return sess, nil
}

// Get returns the live session for the identifier, or ErrSessionNotFound.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sess, exists := r.sessions[id]
	if !exists {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Destroy stops the session's timer loop and removes it from the registry.
// The cancel happens before the delete so a late event routed during
// teardown finds no session instead of a half-dead one.
func (r *Registry) Destroy(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, exists := r.sessions[id]
	if !exists {
		return
	}
	sess.cancel()
	delete(r.sessions, id)
	sess.log.Info().Msg("session destroyed")
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
