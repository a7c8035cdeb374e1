package session

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/presidents-game/client-go/internal/game"
	"github.com/presidents-game/client-go/internal/proto"
	"github.com/presidents-game/client-go/internal/timer"
)

// Sender pushes a client action over the session's connection. Sends are
// fire-and-forget: the server answers with ordinary events, never with a
// response to the send itself.
type Sender interface {
	Send(ctx context.Context, action string, data any) error
}

// Session is the isolated state instance for one joined game. All mutation
// flows through apply (called by the dispatcher, single-threaded per
// session); State hands out immutable snapshots.
type Session struct {
	id     string
	log    zerolog.Logger
	sender Sender
	timers *timer.Bank

	mu       sync.RWMutex
	state    *game.State
	onChange func()

	cancel context.CancelFunc
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// State returns the current state snapshot. The snapshot is never mutated
// after publication, so callers may read it freely.
func (s *Session) State() *game.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Timers exposes the session's timer bank for countdown reads.
func (s *Session) Timers() *timer.Bank {
	return s.timers
}

// SetOnChange registers a callback invoked after every applied event and
// every timer tick. Whatever renders the state hangs off this.
func (s *Session) SetOnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

func (s *Session) apply(event string, payload any) error {
	s.mu.Lock()
	next, err := game.Apply(s.state, event, payload)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.state = next
	fn := s.onChange
	s.mu.Unlock()

	if fn != nil {
		fn()
	}
	return nil
}

func (s *Session) notifyChange() {
	s.mu.RLock()
	fn := s.onChange
	s.mu.RUnlock()
	if fn != nil {
		fn()
	}
}

// ClickCard reports the player tapping a card in their hand.
func (s *Session) ClickCard(ctx context.Context, card int) error {
	return s.send(ctx, proto.ActionCardClick, proto.CardData{Card: card})
}

// ClickAskingOption reports the player tapping an askable rank.
func (s *Session) ClickAskingOption(ctx context.Context, value int) error {
	return s.send(ctx, proto.ActionAskingClick, proto.AskingOptionData{Value: value})
}

// Unlock requests unlocking the play action.
func (s *Session) Unlock(ctx context.Context) error {
	return s.send(ctx, proto.ActionUnlock, nil)
}

// Lock releases the play unlock.
func (s *Session) Lock(ctx context.Context) error {
	return s.send(ctx, proto.ActionLock, nil)
}

// UnlockPass requests unlocking the pass action.
func (s *Session) UnlockPass(ctx context.Context) error {
	return s.send(ctx, proto.ActionUnlockPass, nil)
}

// Play submits the currently selected cards.
func (s *Session) Play(ctx context.Context) error {
	return s.send(ctx, proto.ActionPlay, nil)
}

// Pass passes the turn.
func (s *Session) Pass(ctx context.Context) error {
	return s.send(ctx, proto.ActionPass, nil)
}

// Ask submits the selected asking rank during trading.
func (s *Session) Ask(ctx context.Context) error {
	return s.send(ctx, proto.ActionAsk, nil)
}

// Give submits the selected cards to the asker during trading.
func (s *Session) Give(ctx context.Context) error {
	return s.send(ctx, proto.ActionGive, nil)
}

func (s *Session) send(ctx context.Context, action string, data any) error {
	if err := s.sender.Send(ctx, action, data); err != nil {
		s.log.Warn().Err(err).Str("action", action).Msg("send action")
		return err
	}
	return nil
}
