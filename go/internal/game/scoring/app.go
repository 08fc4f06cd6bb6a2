package scoring

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/waxgig/crateplay/go/internal/game/gameerr"
	"github.com/waxgig/crateplay/go/internal/models"
)

// ScoreRequest carries the per-team judgments for one call. Replace turns a
// re-score of an already-scored call into a correction: prior events for the
// call are voided before the new awards land.
type ScoreRequest struct {
	Judgments []Judgment `json:"judgments"`
	Replace   bool       `json:"replace,omitempty"`
}

// Repository defines what the scoring app layer needs from the score store.
type Repository interface {
	RecordScores(ctx context.Context, sessionID, callID uuid.UUID, expectedCallStatus models.CallStatus, replace bool, events []NewScoreEvent) ([]models.ScoreEvent, error)
	VoidScoresForCall(ctx context.Context, callID uuid.UUID) (int64, error)
	ListEventsByCall(ctx context.Context, callID uuid.UUID) ([]models.ScoreEvent, error)
	ListEventsBySession(ctx context.Context, sessionID uuid.UUID) ([]models.ScoreEvent, error)
	Leaderboard(ctx context.Context, sessionID uuid.UUID) ([]models.LeaderboardEntry, error)
}

// SessionReader provides the session and roster context scoring validates
// against.
type SessionReader interface {
	GetSession(ctx context.Context, id uuid.UUID) (*models.Session, error)
	ListTeams(ctx context.Context, sessionID uuid.UUID) ([]models.Team, error)
}

// CallReader resolves the call being scored.
type CallReader interface {
	GetCall(ctx context.Context, id uuid.UUID) (*models.Call, error)
}

// App handles scoring business logic.
type App struct {
	repo     Repository
	sessions SessionReader
	calls    CallReader
}

// NewApp creates a new scoring App.
func NewApp(repo Repository, sessions SessionReader, calls CallReader) *App {
	return &App{
		repo:     repo,
		sessions: sessions,
		calls:    calls,
	}
}

// RecordScores validates and writes one ScoreEvent per judged team, then
// transitions the call to scored. Scoring a call that is not answer_revealed
// is rejected; re-scoring a scored call is rejected unless the request asks
// for a correction.
func (a *App) RecordScores(ctx context.Context, sessionID, callID uuid.UUID, req ScoreRequest) ([]models.ScoreEvent, error) {
	c, err := a.calls.GetCall(ctx, callID)
	if err != nil {
		return nil, err
	}
	if c.SessionID != sessionID {
		return nil, gameerr.NotFoundf("call %s does not belong to session %s", callID, sessionID)
	}

	s, err := a.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	replace := false
	switch c.Status {
	case models.CallStatusAnswerRevealed:
	case models.CallStatusScored:
		if !req.Replace {
			return nil, gameerr.StateConflictf("call %s is already scored", callID)
		}
		replace = true
	default:
		return nil, gameerr.StateConflictf("cannot score a call in status %s, reveal the answer first", c.Status)
	}

	policy, ok := PolicyFor(s.GameType)
	if !ok {
		return nil, gameerr.Validationf("no scoring policy for game type %q", s.GameType)
	}

	events, err := a.buildEvents(ctx, sessionID, policy, req.Judgments)
	if err != nil {
		return nil, err
	}

	created, err := a.repo.RecordScores(ctx, sessionID, callID, c.Status, replace, events)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("session_id", sessionID.String()).
		Str("call_id", callID.String()).
		Int("events", len(created)).
		Bool("correction", replace).
		Msg("recorded scores")

	return created, nil
}

// ListEventsByCall returns a call's event history, voided corrections
// included.
func (a *App) ListEventsByCall(ctx context.Context, sessionID, callID uuid.UUID) ([]models.ScoreEvent, error) {
	c, err := a.calls.GetCall(ctx, callID)
	if err != nil {
		return nil, err
	}
	if c.SessionID != sessionID {
		return nil, gameerr.NotFoundf("call %s does not belong to session %s", callID, sessionID)
	}
	return a.repo.ListEventsByCall(ctx, callID)
}

// Leaderboard returns the derived standings for a session.
func (a *App) Leaderboard(ctx context.Context, sessionID uuid.UUID) ([]models.LeaderboardEntry, error) {
	if _, err := a.sessions.GetSession(ctx, sessionID); err != nil {
		return nil, err
	}
	return a.repo.Leaderboard(ctx, sessionID)
}

// buildEvents validates the judgments against the roster and computes each
// award. Explicit points override the policy but must be non-negative.
func (a *App) buildEvents(ctx context.Context, sessionID uuid.UUID, policy ScoringPolicy, judgments []Judgment) ([]NewScoreEvent, error) {
	if len(judgments) == 0 {
		return nil, gameerr.Validationf("at least one judgment required")
	}

	teams, err := a.sessions.ListTeams(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	roster := make(map[uuid.UUID]struct{}, len(teams))
	for _, t := range teams {
		roster[t.ID] = struct{}{}
	}

	seen := make(map[uuid.UUID]struct{}, len(judgments))
	events := make([]NewScoreEvent, 0, len(judgments))
	for _, j := range judgments {
		if _, ok := roster[j.TeamID]; !ok {
			return nil, gameerr.Validationf("team %s is not on the session roster", j.TeamID)
		}
		if _, dup := seen[j.TeamID]; dup {
			return nil, gameerr.Validationf("duplicate judgment for team %s", j.TeamID)
		}
		seen[j.TeamID] = struct{}{}

		var points int
		if j.AwardedPoints != nil {
			if *j.AwardedPoints < 0 {
				return nil, gameerr.Validationf("awarded points must be non-negative, got %d", *j.AwardedPoints)
			}
			points = *j.AwardedPoints
		} else {
			points = policy.ComputeAward(j)
		}

		detail, err := json.Marshal(j)
		if err != nil {
			return nil, gameerr.Persistence("failed to marshal judgment detail", err)
		}

		events = append(events, NewScoreEvent{
			TeamID:  j.TeamID,
			Correct: j.Correct,
			Points:  points,
			Detail:  detail,
		})
	}
	return events, nil
}
