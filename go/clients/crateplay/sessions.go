package crateplay

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/waxgig/crateplay/go/internal/game/gateway"
	"github.com/waxgig/crateplay/go/internal/game/scoring"
	"github.com/waxgig/crateplay/go/internal/game/session"
)

// CreatedSession is the create response: the id plus the speakable code
// hosts read out to the room.
type CreatedSession struct {
	SessionID string `json:"session_id"`
	Code      string `json:"code"`
}

// CursorState is the response shape shared by advance, previous, pause and
// resume.
type CursorState struct {
	SessionID          string     `json:"session_id"`
	Status             string     `json:"status"`
	CurrentRound       int        `json:"current_round"`
	CurrentCallIndex   int        `json:"current_call_index"`
	CountdownStartedAt *time.Time `json:"countdown_started_at"`
	PausedAt           *time.Time `json:"paused_at"`
	PausedRemainingSec *int       `json:"paused_remaining_sec"`
}

func (c *Client) CreateSession(ctx context.Context, req session.CreateSessionRequest) (*CreatedSession, error) {
	var created CreatedSession
	if err := c.makeRequest(ctx, http.MethodPost, SessionsEndpoint, req, &created); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return &created, nil
}

// ResolvedSession maps a spoken join code back to the session id pollers
// address.
type ResolvedSession struct {
	SessionID string `json:"session_id"`
	Code      string `json:"code"`
	Status    string `json:"status"`
}

func (c *Client) ResolveCode(ctx context.Context, code string) (*ResolvedSession, error) {
	endpoint := fmt.Sprintf("%s/by-code/%s", SessionsEndpoint, url.PathEscape(code))
	var resolved ResolvedSession
	if err := c.makeRequest(ctx, http.MethodGet, endpoint, nil, &resolved); err != nil {
		return nil, fmt.Errorf("failed to resolve session code: %w", err)
	}
	return &resolved, nil
}

func (c *Client) ListSessions(ctx context.Context, eventID *uuid.UUID) ([]gateway.SessionSummary, error) {
	endpoint := SessionsEndpoint
	if eventID != nil {
		endpoint += "?event_id=" + url.QueryEscape(eventID.String())
	}
	var response struct {
		Sessions []gateway.SessionSummary `json:"sessions"`
	}
	if err := c.makeRequest(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return response.Sessions, nil
}

// State polls the role-filtered snapshot for one session.
func (c *Client) State(ctx context.Context, sessionID uuid.UUID, role string) (*gateway.SessionSnapshot, error) {
	endpoint := fmt.Sprintf("%s/%s/state?role=%s", SessionsEndpoint, sessionID, url.QueryEscape(role))
	var snapshot gateway.SessionSnapshot
	if err := c.makeRequest(ctx, http.MethodGet, endpoint, nil, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to get session state: %w", err)
	}
	return &snapshot, nil
}

func (c *Client) Advance(ctx context.Context, sessionID uuid.UUID) (*CursorState, error) {
	return c.cursorOp(ctx, sessionID, "advance")
}

func (c *Client) Previous(ctx context.Context, sessionID uuid.UUID) (*CursorState, error) {
	return c.cursorOp(ctx, sessionID, "previous")
}

func (c *Client) Pause(ctx context.Context, sessionID uuid.UUID) (*CursorState, error) {
	return c.cursorOp(ctx, sessionID, "pause")
}

func (c *Client) Resume(ctx context.Context, sessionID uuid.UUID) (*CursorState, error) {
	return c.cursorOp(ctx, sessionID, "resume")
}

func (c *Client) cursorOp(ctx context.Context, sessionID uuid.UUID, op string) (*CursorState, error) {
	endpoint := fmt.Sprintf("%s/%s/%s", SessionsEndpoint, sessionID, op)
	var state CursorState
	if err := c.makeRequest(ctx, http.MethodPost, endpoint, nil, &state); err != nil {
		return nil, fmt.Errorf("failed to %s session: %w", op, err)
	}
	return &state, nil
}

func (c *Client) PatchCallStatus(ctx context.Context, sessionID, callID uuid.UUID, status string) error {
	endpoint := fmt.Sprintf("%s/%s/calls/%s/status", SessionsEndpoint, sessionID, callID)
	payload := map[string]string{"status": status}
	if err := c.makeRequest(ctx, http.MethodPatch, endpoint, payload, nil); err != nil {
		return fmt.Errorf("failed to patch call status: %w", err)
	}
	return nil
}

func (c *Client) RecordScores(ctx context.Context, sessionID, callID uuid.UUID, req scoring.ScoreRequest) error {
	endpoint := fmt.Sprintf("%s/%s/calls/%s/scores", SessionsEndpoint, sessionID, callID)
	if err := c.makeRequest(ctx, http.MethodPost, endpoint, req, nil); err != nil {
		return fmt.Errorf("failed to record scores: %w", err)
	}
	return nil
}
