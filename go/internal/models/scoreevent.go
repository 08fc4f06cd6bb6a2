package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ScoreEvent is an immutable award record: points granted to one team for
// one call. The leaderboard is always derived by summing non-voided events,
// never kept as a separately mutated counter.
type ScoreEvent struct {
	ID            uuid.UUID       `json:"id"`
	SessionID     uuid.UUID       `json:"session_id"`
	CallID        uuid.UUID       `json:"call_id"`
	TeamID        uuid.UUID       `json:"team_id"`
	Correct       bool            `json:"correct"`
	PointsAwarded int             `json:"points_awarded"`
	Voided        bool            `json:"voided"`
	Detail        json.RawMessage `json:"detail,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// LeaderboardEntry is one team's derived standing within a session.
// FirstScoredAt breaks display ties; it never affects rank correctness.
type LeaderboardEntry struct {
	TeamID        uuid.UUID  `json:"team_id"`
	Name          string     `json:"name"`
	Active        bool       `json:"active"`
	TotalPoints   int        `json:"total_points"`
	FirstScoredAt *time.Time `json:"first_scored_at,omitempty"`
}
