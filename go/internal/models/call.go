package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// CallStatus defines the per-call state machine:
//
//	PENDING -> ASKED -> ANSWER_REVEALED -> SCORED
//
// Any pre-scored state may jump straight to SKIPPED. SCORED and SKIPPED
// are terminal.
type CallStatus string

const (
	CallStatusPending        CallStatus = "PENDING"
	CallStatusAsked          CallStatus = "ASKED"
	CallStatusAnswerRevealed CallStatus = "ANSWER_REVEALED"
	CallStatusScored         CallStatus = "SCORED"
	CallStatusSkipped        CallStatus = "SKIPPED"
)

// Terminal reports whether no further status transition is possible.
func (s CallStatus) Terminal() bool {
	return s == CallStatusScored || s == CallStatusSkipped
}

// Call is the atomic playable unit: a spin, a trivia question, a bracket
// matchup. The prompt payload varies per game type and is opaque to the
// engine; the view projector only redacts well-known answer fields.
type Call struct {
	ID          uuid.UUID       `json:"id"`
	SessionID   uuid.UUID       `json:"session_id"`
	RoundNumber int             `json:"round_number"`
	CallIndex   int             `json:"call_index"`   // 1-based within the round
	GlobalIndex int             `json:"global_index"` // 0-based across the session
	Prompt      json.RawMessage `json:"prompt"`
	Status      CallStatus      `json:"status"`
	RevealedAt  *time.Time      `json:"revealed_at,omitempty"`
	ScoredAt    *time.Time      `json:"scored_at,omitempty"`
}
