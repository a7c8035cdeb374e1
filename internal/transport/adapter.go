// Package transport owns the persistent websocket connection of one session.
// It never touches game state: inbound events are handed to the dispatcher,
// outbound actions are fire-and-forget writes.
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/presidents-game/client-go/internal/proto"
)

// ConnState describes the adapter's connection lifecycle.
type ConnState int

const (
	Disconnected ConnState = iota
	Connecting
	Connected
)

func (s ConnState) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	default:
		return "disconnected"
	}
}

// Handshake headers carrying the session identity and join credential.
const (
	HeaderSessionID      = "X-Session-Id"
	HeaderJoinCredential = "X-Join-Credential"
)

// ErrCannotJoin is surfaced once reconnection is abandoned, either because
// the attempt budget ran out or the join credential already expired.
var ErrCannotJoin = errors.New("cannot join session")

// Router receives inbound events in arrival order.
type Router interface {
	Route(sessionID, event string, data json.RawMessage)
}

// Options configures an Adapter.
type Options struct {
	// URL of the websocket endpoint.
	URL string
	// SessionID and Credential come from the lobby's join response.
	SessionID  string
	Credential string

	Backoff Backoff

	// Clock defaults to the real clock; tests inject a fake.
	Clock clockwork.Clock

	// OnStateChange is invoked on every connection state transition. The
	// error is non-nil when the transition was caused by a fault.
	OnStateChange func(state ConnState, reason error)
}

// Adapter keeps one message-oriented connection alive for one session and
// reconnects with backoff when it drops. On every (re)connect the server
// replays a full snapshot stream, so resynchronization is just reduction.
type Adapter struct {
	opts   Options
	router Router
	log    zerolog.Logger
	clock  clockwork.Clock

	mu    sync.Mutex
	conn  *websocket.Conn
	state ConnState
}

// New builds an adapter. Run must be called to open the connection.
func New(opts Options, router Router, logger *zerolog.Logger) *Adapter {
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if opts.Backoff == (Backoff{}) {
		opts.Backoff = DefaultBackoff()
	}
	return &Adapter{
		opts:   opts,
		router: router,
		log:    logger.With().Str("session_id", opts.SessionID).Str("conn_id", uuid.NewString()).Logger(),
		clock:  clock,
	}
}

// State returns the current connection state.
func (a *Adapter) State() ConnState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Send writes one action envelope. There is no retry: the server is the
// source of truth and rejects invalid actions with ordinary events.
func (a *Adapter) Send(ctx context.Context, action string, data any) error {
	a.mu.Lock()
	conn := a.conn
	a.mu.Unlock()

	if conn == nil {
		return fmt.Errorf("send %s: not connected", action)
	}
	return wsjson.Write(ctx, conn, proto.Outbound{Action: action, Data: data})
}

// Run dials the server and pumps inbound events into the router until ctx is
// cancelled or reconnection is abandoned. It blocks; run it in a goroutine.
func (a *Adapter) Run(ctx context.Context) error {
	attempt := 0
	for {
		a.setState(Connecting, nil)

		conn, err := a.dial(ctx)
		if err == nil {
			attempt = 0
			a.setConn(conn)
			a.setState(Connected, nil)

			err = a.readLoop(ctx, conn)
			a.setConn(nil)
			conn.Close(websocket.StatusNormalClosure, "closing")
		}

		if ctx.Err() != nil {
			a.setState(Disconnected, nil)
			return ctx.Err()
		}
		a.setState(Disconnected, err)

		if CredentialExpired(a.opts.Credential, a.clock.Now()) {
			a.log.Warn().Msg("join credential expired, giving up")
			return fmt.Errorf("%w: credential expired", ErrCannotJoin)
		}
		attempt++
		if attempt > a.opts.Backoff.MaxAttempts {
			a.log.Warn().Int("attempts", attempt-1).Msg("reconnect budget exhausted")
			return fmt.Errorf("%w: %d attempts failed", ErrCannotJoin, attempt-1)
		}

		delay := a.opts.Backoff.Delay(attempt)
		a.log.Info().Err(err).Int("attempt", attempt).Dur("delay", delay).Msg("reconnecting")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-a.clock.After(delay):
		}
	}
}

func (a *Adapter) dial(ctx context.Context) (*websocket.Conn, error) {
	header := http.Header{}
	header.Set(HeaderSessionID, a.opts.SessionID)
	header.Set(HeaderJoinCredential, a.opts.Credential)

	conn, _, err := websocket.Dial(ctx, a.opts.URL, &websocket.DialOptions{
		HTTPHeader: header,
	})
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", a.opts.URL, err)
	}
	return conn, nil
}

func (a *Adapter) readLoop(ctx context.Context, conn *websocket.Conn) error {
	for {
		var inbound proto.Inbound
		if err := wsjson.Read(ctx, conn, &inbound); err != nil {
			if errors.Is(err, io.EOF) || websocket.CloseStatus(err) == websocket.StatusNormalClosure {
				return nil
			}
			return err
		}
		a.router.Route(a.opts.SessionID, inbound.Event, inbound.Data)
	}
}

func (a *Adapter) setConn(conn *websocket.Conn) {
	a.mu.Lock()
	a.conn = conn
	a.mu.Unlock()
}

func (a *Adapter) setState(state ConnState, reason error) {
	a.mu.Lock()
	changed := a.state != state
	a.state = state
	a.mu.Unlock()

	if changed && a.opts.OnStateChange != nil {
		a.opts.OnStateChange(state, reason)
	}
}
