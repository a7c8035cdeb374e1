package app

import (
	"context"
	"errors"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/presidents-game/client-go/internal/config"
	"github.com/presidents-game/client-go/internal/proto"
	"github.com/presidents-game/client-go/internal/session"
	"github.com/presidents-game/client-go/internal/transport"
)

// App wires the registry, one session, and its transport adapter together
// for a single joined game.
type App struct {
	log      *zerolog.Logger
	registry *session.Registry
	adapter  *transport.Adapter
	session  *session.Session
}

// Join builds the client for a session the lobby already admitted us to.
func Join(cfg config.Config, logger *zerolog.Logger, info proto.JoinInfo) (*App, error) {
	registry := session.NewRegistry(logger, clockwork.NewRealClock(), cfg.TickInterval)

	adapter := transport.New(transport.Options{
		URL:        cfg.ServerURL,
		SessionID:  info.SessionID,
		Credential: info.JoinCredential,
		Backoff: transport.Backoff{
			Base:        cfg.ReconnectBase,
			Cap:         cfg.ReconnectCap,
			MaxAttempts: cfg.ReconnectAttempts,
		},
		OnStateChange: func(state transport.ConnState, reason error) {
			ev := logger.Info()
			if reason != nil {
				ev = logger.Warn().Err(reason)
			}
			ev.Str("session_id", info.SessionID).Stringer("state", state).Msg("connection state")
		},
	}, registry, logger)

	sess, err := registry.Create(info.SessionID, adapter)
	if err != nil {
		return nil, err
	}

	return &App{
		log:      logger,
		registry: registry,
		adapter:  adapter,
		session:  sess,
	}, nil
}

// Session returns the joined session.
func (a *App) Session() *session.Session {
	return a.session
}

// Run keeps the connection alive until ctx is cancelled or reconnection is
// abandoned, then tears the session down.
func (a *App) Run(ctx context.Context) error {
	defer a.registry.Destroy(a.session.ID())

	err := a.adapter.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
