package gateway

import (
	"encoding/json"
	"time"

	"github.com/waxgig/crateplay/go/internal/game/gameerr"
)

// Role identifies which view of a session a poller is rendering.
type Role string

const (
	RoleHost      Role = "host"
	RoleAssistant Role = "assistant"
	RoleJumbotron Role = "jumbotron"
)

// ParseRole validates a role query parameter. An empty role defaults to
// jumbotron, the most restricted view.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleHost, RoleAssistant, RoleJumbotron:
		return Role(s), nil
	case "":
		return RoleJumbotron, nil
	}
	return "", gameerr.Validationf("unknown role %q", s)
}

// SessionSnapshot is the complete polled state for one role. It is
// reconstructed from scratch on every poll; pollers replace their previous
// copy wholesale.
type SessionSnapshot struct {
	SessionID        string         `json:"session_id"`
	Code             string         `json:"code"`
	EventID          *string        `json:"event_id,omitempty"`
	GameType         string         `json:"game_type"`
	Status           string         `json:"status"`
	RoundCount       int            `json:"round_count"`
	CurrentRound     int            `json:"current_round"`
	CurrentCallIndex int            `json:"current_call_index"`
	Rounds           []RoundView    `json:"rounds"`
	CurrentCall      *CallView      `json:"current_call,omitempty"`
	Leaderboard      []TeamStanding `json:"leaderboard,omitempty"`
	Timer            TimerView      `json:"timer"`
	TotalCalls       int            `json:"total_calls"`
	CompletedCalls   int            `json:"completed_calls"`
}

// RoundView is one round's public shape.
type RoundView struct {
	RoundNumber  int    `json:"round_number"`
	Category     string `json:"category,omitempty"`
	CallsInRound int    `json:"calls_in_round"`
	Status       string `json:"status"`
}

// CallView is the call a role is looking at. The prompt payload is filtered
// per role before it leaves the server.
type CallView struct {
	CallID      string          `json:"call_id"`
	RoundNumber int             `json:"round_number"`
	CallIndex   int             `json:"call_index"`
	GlobalIndex int             `json:"global_index"`
	Status      string          `json:"status"`
	Prompt      json.RawMessage `json:"prompt,omitempty"`
	RevealedAt  *time.Time      `json:"revealed_at,omitempty"`
	ScoredAt    *time.Time      `json:"scored_at,omitempty"`
}

// TeamStanding is one leaderboard row.
type TeamStanding struct {
	TeamID        string     `json:"team_id"`
	Name          string     `json:"name"`
	Active        bool       `json:"active"`
	TotalPoints   int        `json:"total_points"`
	FirstScoredAt *time.Time `json:"first_scored_at,omitempty"`
}

// TimerView carries the three timer fields pollers combine with their local
// clock to render a countdown. SecondsRemaining is the server's own reading,
// included so thin clients can skip the arithmetic.
type TimerView struct {
	TargetGapSeconds   int        `json:"target_gap_seconds"`
	CountdownStartedAt *time.Time `json:"countdown_started_at,omitempty"`
	PausedAt           *time.Time `json:"paused_at,omitempty"`
	SecondsRemaining   *int       `json:"seconds_remaining,omitempty"`
}

// SessionSummary is one row of the session listing.
type SessionSummary struct {
	SessionID      string  `json:"session_id"`
	Code           string  `json:"code"`
	EventID        *string `json:"event_id,omitempty"`
	GameType       string  `json:"game_type"`
	Status         string  `json:"status"`
	RoundCount     int     `json:"round_count"`
	CurrentRound   int     `json:"current_round"`
	TotalCalls     int     `json:"total_calls"`
	CompletedCalls int     `json:"completed_calls"`
}
