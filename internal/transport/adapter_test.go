package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/presidents-game/client-go/internal/log"
	"github.com/presidents-game/client-go/internal/proto"
)

type captureRouter struct {
	mu     sync.Mutex
	events []string
}

func (c *captureRouter) Route(_, event string, _ json.RawMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
}

func (c *captureRouter) routed() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.events...)
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

// startGameServer runs a websocket endpoint that reports the handshake
// headers, pushes the given events, and then relays one inbound action.
func startGameServer(t *testing.T, events []proto.Inbound, headers chan<- http.Header, actions chan<- proto.Outbound) string {
	t.Helper()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if headers != nil {
			headers <- r.Header.Clone()
		}
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "done")

		ctx := r.Context()
		for _, ev := range events {
			if err := wsjson.Write(ctx, conn, ev); err != nil {
				return
			}
		}
		if actions != nil {
			var action proto.Outbound
			if err := wsjson.Read(ctx, conn, &action); err == nil {
				actions <- action
			}
		} else {
			// Hold the connection open until the client goes away.
			_, _, _ = conn.Read(ctx)
		}
	}))
	t.Cleanup(ts.Close)

	return strings.Replace(ts.URL, "http", "ws", 1)
}

func TestAdapterRoutesInboundEventsInOrder(t *testing.T) {
	events := []proto.Inbound{
		{Event: "add_card", Data: json.RawMessage(`{"card": 3}`)},
		{Event: "add_card", Data: json.RawMessage(`{"card": 15}`)},
		{Event: "select_card", Data: json.RawMessage(`{"card": 3}`)},
	}
	headers := make(chan http.Header, 1)
	url := startGameServer(t, events, headers, nil)

	router := &captureRouter{}
	adapter := New(Options{
		URL:        url,
		SessionID:  "g1",
		Credential: "tok-123",
	}, router, log.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go adapter.Run(ctx)

	waitFor(t, "events routed", func() bool { return len(router.routed()) == 3 })

	got := router.routed()
	for i, want := range []string{"add_card", "add_card", "select_card"} {
		if got[i] != want {
			t.Fatalf("routed = %v, want order [add_card add_card select_card]", got)
		}
	}
	header := <-headers
	if header.Get(HeaderSessionID) != "g1" {
		t.Fatalf("session id header = %q, want g1", header.Get(HeaderSessionID))
	}
	if header.Get(HeaderJoinCredential) != "tok-123" {
		t.Fatalf("credential header = %q, want tok-123", header.Get(HeaderJoinCredential))
	}
}

func TestAdapterSendWritesActionEnvelope(t *testing.T) {
	actions := make(chan proto.Outbound, 1)
	url := startGameServer(t, nil, nil, actions)

	adapter := New(Options{URL: url, SessionID: "g1"}, &captureRouter{}, log.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go adapter.Run(ctx)

	waitFor(t, "connection", func() bool { return adapter.State() == Connected })

	if err := adapter.Send(ctx, proto.ActionCardClick, proto.CardData{Card: 17}); err != nil {
		t.Fatalf("send: %v", err)
	}

	select {
	case action := <-actions:
		if action.Action != "card_click" {
			t.Fatalf("action = %q, want card_click", action.Action)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("timed out waiting for action")
	}
}

func TestAdapterSendWhileDisconnectedFails(t *testing.T) {
	adapter := New(Options{URL: "ws://127.0.0.1:1/ws", SessionID: "g1"}, &captureRouter{}, log.Nop())

	if err := adapter.Send(context.Background(), proto.ActionPlay, nil); err == nil {
		t.Fatalf("send without a connection should fail")
	}
}

func TestAdapterGivesUpAfterAttemptBudget(t *testing.T) {
	adapter := New(Options{
		URL:       "ws://127.0.0.1:1/ws",
		SessionID: "g1",
		Backoff:   Backoff{Base: time.Millisecond, Cap: 2 * time.Millisecond, MaxAttempts: 2},
	}, &captureRouter{}, log.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := adapter.Run(ctx)
	if !errors.Is(err, ErrCannotJoin) {
		t.Fatalf("run returned %v, want ErrCannotJoin", err)
	}
	if adapter.State() != Disconnected {
		t.Fatalf("state = %v, want disconnected", adapter.State())
	}
}

func TestAdapterStopsRetryingOnExpiredCredential(t *testing.T) {
	expired := signedToken(t, time.Now().Add(-time.Hour))

	adapter := New(Options{
		URL:        "ws://127.0.0.1:1/ws",
		SessionID:  "g1",
		Credential: expired,
		Backoff:    Backoff{Base: time.Millisecond, Cap: 2 * time.Millisecond, MaxAttempts: 100},
	}, &captureRouter{}, log.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	start := time.Now()
	err := adapter.Run(ctx)
	if !errors.Is(err, ErrCannotJoin) {
		t.Fatalf("run returned %v, want ErrCannotJoin", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Fatalf("expired credential should short-circuit the retry loop")
	}
}

func TestAdapterStateTransitions(t *testing.T) {
	url := startGameServer(t, nil, nil, nil)

	var mu sync.Mutex
	var states []ConnState
	adapter := New(Options{
		URL:       url,
		SessionID: "g1",
		OnStateChange: func(state ConnState, _ error) {
			mu.Lock()
			states = append(states, state)
			mu.Unlock()
		},
	}, &captureRouter{}, log.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	go adapter.Run(ctx)

	waitFor(t, "connected", func() bool { return adapter.State() == Connected })
	cancel()
	waitFor(t, "disconnected", func() bool { return adapter.State() == Disconnected })

	mu.Lock()
	defer mu.Unlock()
	if states[0] != Connecting || states[1] != Connected {
		t.Fatalf("state transitions = %v, want connecting then connected first", states)
	}
}
