package models

import (
	"time"

	"github.com/google/uuid"
)

// GameType tags which party game a session runs. Each type maps to a
// scoring policy selected once at session creation.
type GameType string

const (
	GameTypeTrivia          GameType = "TRIVIA"
	GameTypeMusicBingo      GameType = "MUSIC_BINGO"
	GameTypeNeedleDrop      GameType = "NEEDLE_DROP"
	GameTypeDecadeGuess     GameType = "DECADE_GUESS"
	GameTypeLyricChallenge  GameType = "LYRIC_CHALLENGE"
	GameTypeBracket         GameType = "BRACKET"
	GameTypeCoverOrOriginal GameType = "COVER_OR_ORIGINAL"
	GameTypeEraSort         GameType = "ERA_SORT"
	GameTypeFirstLine       GameType = "FIRST_LINE"
	GameTypeHotTake         GameType = "HOT_TAKE"
	GameTypeLabelLore       GameType = "LABEL_LORE"
	GameTypeSpeedSpin       GameType = "SPEED_SPIN"
)

// GameTypes lists every supported game type.
func GameTypes() []GameType {
	return []GameType{
		GameTypeTrivia, GameTypeMusicBingo, GameTypeNeedleDrop,
		GameTypeDecadeGuess, GameTypeLyricChallenge, GameTypeBracket,
		GameTypeCoverOrOriginal, GameTypeEraSort, GameTypeFirstLine,
		GameTypeHotTake, GameTypeLabelLore, GameTypeSpeedSpin,
	}
}

// Valid reports whether g is a known game type.
func (g GameType) Valid() bool {
	for _, known := range GameTypes() {
		if g == known {
			return true
		}
	}
	return false
}

// SessionStatus defines the lifecycle status of a session.
type SessionStatus string

const (
	SessionStatusPending   SessionStatus = "PENDING"
	SessionStatusActive    SessionStatus = "ACTIVE"
	SessionStatusPaused    SessionStatus = "PAUSED"
	SessionStatusCompleted SessionStatus = "COMPLETED"
)

// PacingSettings holds the four host-side stage durations that sum to the
// per-call pacing budget. The sum is computed once at session creation and
// stored on the session, so later edits never rewrite history.
type PacingSettings struct {
	ResleeveSec int `json:"resleeve_sec"`
	LocateSec   int `json:"locate_sec"`
	CueSec      int `json:"cue_sec"`
	BufferSec   int `json:"buffer_sec"`
}

// TargetGapSeconds returns the derived seconds-per-call pacing budget.
func (p PacingSettings) TargetGapSeconds() int {
	return p.ResleeveSec + p.LocateSec + p.CueSec + p.BufferSec
}

// VisibilityFlags controls which prompt fields the jumbotron renders.
// Answer fields are always withheld from the jumbotron until reveal,
// independent of these flags.
type VisibilityFlags struct {
	ShowArtist        bool `json:"show_artist"`
	ShowTitle         bool `json:"show_title"`
	ShowLeaderboard   bool `json:"show_leaderboard"`
	ShowRoundCategory bool `json:"show_round_category"`
}

// Session represents one live instance of a hosted game.
type Session struct {
	ID                 uuid.UUID       `json:"id"`
	Code               string          `json:"code"`
	EventID            *uuid.UUID      `json:"event_id,omitempty"`
	GameType           GameType        `json:"game_type"`
	Status             SessionStatus   `json:"status"`
	RoundCount         int             `json:"round_count"`
	CurrentRound       int             `json:"current_round"`
	CurrentCallIndex   int             `json:"current_call_index"`
	TargetGapSeconds   int             `json:"target_gap_seconds"`
	Pacing             PacingSettings  `json:"pacing"`
	Visibility         VisibilityFlags `json:"visibility"`
	CountdownStartedAt *time.Time      `json:"countdown_started_at,omitempty"`
	PausedAt           *time.Time      `json:"paused_at,omitempty"`
	PausedRemainingSec *int            `json:"paused_remaining_seconds,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// SecondsRemaining computes the pacing countdown left at the given instant
// from the stored timer fields alone. Returns nil when no countdown is
// running. Clients do the same arithmetic locally between polls.
func (s *Session) SecondsRemaining(now time.Time) *int {
	switch s.Status {
	case SessionStatusPaused:
		if s.PausedRemainingSec != nil {
			remaining := *s.PausedRemainingSec
			return &remaining
		}
		return nil
	case SessionStatusActive:
		if s.CountdownStartedAt == nil {
			return nil
		}
		elapsed := int(now.Sub(*s.CountdownStartedAt).Seconds())
		remaining := s.TargetGapSeconds - elapsed
		if remaining < 0 {
			remaining = 0
		}
		return &remaining
	default:
		return nil
	}
}

// Team is a named participant unit. Individual-scored games create one
// team per player.
type Team struct {
	ID        uuid.UUID `json:"id"`
	SessionID uuid.UUID `json:"session_id"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// RoundStatus defines the status of a round within a session.
type RoundStatus string

const (
	RoundStatusPending   RoundStatus = "PENDING"
	RoundStatusActive    RoundStatus = "ACTIVE"
	RoundStatusCompleted RoundStatus = "COMPLETED"
)

// Round is an ordered grouping of calls sharing a category label.
// Round numbers are 1-based and contiguous.
type Round struct {
	ID           uuid.UUID   `json:"id"`
	SessionID    uuid.UUID   `json:"session_id"`
	RoundNumber  int         `json:"round_number"`
	Category     string      `json:"category"`
	CallsInRound int         `json:"calls_in_round"`
	Status       RoundStatus `json:"status"`
}
