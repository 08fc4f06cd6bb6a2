package session

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/waxgig/crateplay/go/internal/models"
)

// RoundSpec describes one round in a create request.
type RoundSpec struct {
	Category     string `json:"category"`
	CallsInRound int    `json:"calls_in_round"`
}

// CallSpec carries one prompt payload. The engine never looks inside the
// prompt; its shape varies by game type.
type CallSpec struct {
	Prompt json.RawMessage `json:"prompt"`
}

// CreateSessionRequest is the factory input.
type CreateSessionRequest struct {
	GameType   models.GameType        `json:"game_type"`
	EventID    *uuid.UUID             `json:"event_id,omitempty"`
	TeamNames  []string               `json:"team_names"`
	Rounds     []RoundSpec            `json:"rounds"`
	Calls      []CallSpec             `json:"calls"`
	Pacing     models.PacingSettings  `json:"pacing"`
	Visibility models.VisibilityFlags `json:"visibility"`
}

// NewCall is a call row the factory hands to the call store for bulk insert.
type NewCall struct {
	RoundNumber int
	CallIndex   int
	GlobalIndex int
	Prompt      json.RawMessage
}

// CreateSessionRow is the repository-level insert after validation.
type CreateSessionRow struct {
	ID               uuid.UUID
	Code             string
	EventID          *uuid.UUID
	GameType         models.GameType
	Status           models.SessionStatus
	RoundCount       int
	CurrentRound     int
	CurrentCallIndex int
	TargetGapSeconds int
	Pacing           models.PacingSettings
	Visibility       models.VisibilityFlags
}

// TimerUpdate rewrites the session's timer fields together with its status.
type TimerUpdate struct {
	Status             models.SessionStatus
	CountdownStartedAt *time.Time
	PausedAt           *time.Time
	PausedRemainingSec *int
}

// CursorUpdate moves the session cursor under an expected-value precondition.
type CursorUpdate struct {
	Round              int
	CallIndex          int
	Status             models.SessionStatus
	CountdownStartedAt *time.Time
	ExpectedRound      int
	ExpectedCallIndex  int
}
