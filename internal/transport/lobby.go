package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/presidents-game/client-go/internal/proto"
)

// Lobby is the thin client for the external session directory. It only
// creates and joins sessions; everything after the join response flows over
// the websocket.
type Lobby struct {
	baseURL string
	http    *http.Client
	log     *zerolog.Logger
}

// NewLobby builds a lobby client against the given base URL.
func NewLobby(baseURL string, logger *zerolog.Logger) *Lobby {
	return &Lobby{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		log:     logger,
	}
}

// CreateSession creates a named game and joins it, mirroring the server's
// create-then-auto-join flow.
func (l *Lobby) CreateSession(ctx context.Context, name, username string) (proto.JoinInfo, error) {
	var created struct {
		SessionID string `json:"session_id"`
	}
	if err := l.post(ctx, http.MethodPost, "/create_session", map[string]string{
		"name": name,
	}, &created); err != nil {
		return proto.JoinInfo{}, fmt.Errorf("create session: %w", err)
	}
	return l.JoinSession(ctx, created.SessionID, username)
}

// JoinSession joins an existing session and returns the credential the
// transport adapter attaches to its handshake.
func (l *Lobby) JoinSession(ctx context.Context, sessionID, username string) (proto.JoinInfo, error) {
	var info proto.JoinInfo
	if err := l.post(ctx, http.MethodPut, "/join_session", map[string]string{
		"session_id": sessionID,
		"username":   username,
	}, &info); err != nil {
		return proto.JoinInfo{}, fmt.Errorf("join session: %w", err)
	}
	if info.SessionID == "" {
		info.SessionID = sessionID
	}
	l.log.Info().Str("session_id", info.SessionID).Msg("joined session")
	return info, nil
}

func (l *Lobby) post(ctx context.Context, method, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, l.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := l.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
