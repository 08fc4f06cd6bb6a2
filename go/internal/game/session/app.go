package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/waxgig/crateplay/go/internal/game/gameerr"
	"github.com/waxgig/crateplay/go/internal/models"
	"github.com/waxgig/crateplay/go/internal/sessioncode"
)

// maxCodeAttempts bounds session-code generation retries on collision.
const maxCodeAttempts = 15

const minTeams = 2

// roundBounds caps round counts per game type. Bracket rounds double the
// field each step so they stay small; bingo nights rarely run past ten.
type roundBounds struct {
	min, max int
}

var roundBoundsByGame = map[models.GameType]roundBounds{
	models.GameTypeTrivia:          {min: 1, max: 20},
	models.GameTypeMusicBingo:      {min: 1, max: 10},
	models.GameTypeNeedleDrop:      {min: 1, max: 20},
	models.GameTypeDecadeGuess:     {min: 1, max: 20},
	models.GameTypeLyricChallenge:  {min: 1, max: 15},
	models.GameTypeBracket:         {min: 1, max: 6},
	models.GameTypeCoverOrOriginal: {min: 1, max: 20},
	models.GameTypeEraSort:         {min: 1, max: 15},
	models.GameTypeFirstLine:       {min: 1, max: 15},
	models.GameTypeHotTake:         {min: 1, max: 10},
	models.GameTypeLabelLore:       {min: 1, max: 15},
	models.GameTypeSpeedSpin:       {min: 1, max: 20},
}

// Repository defines what the session app layer needs from the session store.
type Repository interface {
	CreateSession(ctx context.Context, row CreateSessionRow) (*models.Session, error)
	GetSession(ctx context.Context, id uuid.UUID) (*models.Session, error)
	GetSessionByCode(ctx context.Context, code string) (*models.Session, error)
	ListSessions(ctx context.Context, eventID *uuid.UUID) ([]models.Session, error)
	UpdateTimer(ctx context.Context, id uuid.UUID, upd TimerUpdate) (*models.Session, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error
	CreateTeam(ctx context.Context, sessionID uuid.UUID, name string) (*models.Team, error)
	ListTeams(ctx context.Context, sessionID uuid.UUID) ([]models.Team, error)
	DeleteTeamsBySession(ctx context.Context, sessionID uuid.UUID) error
	CreateRound(ctx context.Context, round models.Round) (*models.Round, error)
	ListRounds(ctx context.Context, sessionID uuid.UUID) ([]models.Round, error)
	DeleteRoundsBySession(ctx context.Context, sessionID uuid.UUID) error
}

// CallWriter defines what the factory needs from the call store: bulk insert
// at creation and teardown during compensating rollback.
type CallWriter interface {
	CreateCalls(ctx context.Context, sessionID uuid.UUID, calls []NewCall) error
	DeleteCallsBySession(ctx context.Context, sessionID uuid.UUID) error
}

// App handles session factory and timer business logic.
type App struct {
	repo          Repository
	calls         CallWriter
	codes         *sessioncode.Generator
	clock         clockwork.Clock
	defaultPacing models.PacingSettings
}

// NewApp creates a new session App. Requests that leave the pacing block
// empty get defaultPacing, the venue-level setting from the engine config.
func NewApp(repo Repository, calls CallWriter, codes *sessioncode.Generator, clock clockwork.Clock, defaultPacing models.PacingSettings) *App {
	return &App{
		repo:          repo,
		calls:         calls,
		codes:         codes,
		clock:         clock,
		defaultPacing: defaultPacing,
	}
}

// CreateSession validates the request and materializes the session with its
// teams, rounds, and calls. The store has no multi-table transaction
// available here, so any post-validation write failure triggers a
// compensating rollback that deletes everything written so far.
func (a *App) CreateSession(ctx context.Context, req CreateSessionRequest) (*models.Session, error) {
	if req.Pacing == (models.PacingSettings{}) {
		req.Pacing = a.defaultPacing
	}

	teamNames, err := validateCreateSessionRequest(req)
	if err != nil {
		return nil, err
	}

	session, err := a.createSessionWithCode(ctx, req)
	if err != nil {
		return nil, err
	}

	for _, name := range teamNames {
		if _, err := a.repo.CreateTeam(ctx, session.ID, name); err != nil {
			a.rollbackCreate(ctx, session.ID)
			return nil, err
		}
	}

	for i, spec := range req.Rounds {
		status := models.RoundStatusPending
		if i == 0 {
			status = models.RoundStatusActive
		}
		round := models.Round{
			ID:           uuid.New(),
			SessionID:    session.ID,
			RoundNumber:  i + 1,
			Category:     spec.Category,
			CallsInRound: spec.CallsInRound,
			Status:       status,
		}
		if _, err := a.repo.CreateRound(ctx, round); err != nil {
			a.rollbackCreate(ctx, session.ID)
			return nil, err
		}
	}

	if err := a.calls.CreateCalls(ctx, session.ID, assignCalls(req)); err != nil {
		a.rollbackCreate(ctx, session.ID)
		return nil, err
	}

	log.Info().
		Str("session_id", session.ID.String()).
		Str("code", session.Code).
		Str("game_type", string(session.GameType)).
		Int("rounds", session.RoundCount).
		Int("teams", len(teamNames)).
		Msg("created session")

	return session, nil
}

// GetSession retrieves a session by ID.
func (a *App) GetSession(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	return a.repo.GetSession(ctx, id)
}

// GetSessionByCode retrieves a session by its human join code.
func (a *App) GetSessionByCode(ctx context.Context, code string) (*models.Session, error) {
	return a.repo.GetSessionByCode(ctx, code)
}

// ListSessions lists sessions, optionally filtered by event.
func (a *App) ListSessions(ctx context.Context, eventID *uuid.UUID) ([]models.Session, error) {
	return a.repo.ListSessions(ctx, eventID)
}

// ListTeams returns the session roster.
func (a *App) ListTeams(ctx context.Context, sessionID uuid.UUID) ([]models.Team, error) {
	return a.repo.ListTeams(ctx, sessionID)
}

// ListRounds returns the session's round definitions.
func (a *App) ListRounds(ctx context.Context, sessionID uuid.UUID) ([]models.Round, error) {
	return a.repo.ListRounds(ctx, sessionID)
}

// PauseSession freezes the countdown. The remaining seconds are captured at
// pause time so resuming restores the countdown exactly where it stopped.
func (a *App) PauseSession(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	session, err := a.repo.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Status != models.SessionStatusActive {
		return nil, gameerr.StateConflictf("cannot pause session in status %s", session.Status)
	}

	now := a.clock.Now()
	remaining := session.TargetGapSeconds
	if session.CountdownStartedAt != nil {
		remaining = session.TargetGapSeconds - int(now.Sub(*session.CountdownStartedAt).Seconds())
		if remaining < 0 {
			remaining = 0
		}
	}

	updated, err := a.repo.UpdateTimer(ctx, id, TimerUpdate{
		Status:             models.SessionStatusPaused,
		CountdownStartedAt: session.CountdownStartedAt,
		PausedAt:           &now,
		PausedRemainingSec: &remaining,
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("session_id", id.String()).
		Int("remaining_sec", remaining).
		Msg("paused session")

	return updated, nil
}

// ResumeSession restarts the countdown continuous with where pause left it:
// the fresh countdown_started_at is backdated by the already-elapsed part of
// the gap so remaining-time arithmetic never jumps.
func (a *App) ResumeSession(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	session, err := a.repo.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Status != models.SessionStatusPaused {
		return nil, gameerr.StateConflictf("cannot resume session in status %s", session.Status)
	}

	remaining := session.TargetGapSeconds
	if session.PausedRemainingSec != nil {
		remaining = *session.PausedRemainingSec
	}

	startedAt := a.clock.Now().Add(-time.Duration(session.TargetGapSeconds-remaining) * time.Second)
	updated, err := a.repo.UpdateTimer(ctx, id, TimerUpdate{
		Status:             models.SessionStatusActive,
		CountdownStartedAt: &startedAt,
		PausedAt:           nil,
		PausedRemainingSec: nil,
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("session_id", id.String()).
		Int("remaining_sec", remaining).
		Msg("resumed session")

	return updated, nil
}

func (a *App) createSessionWithCode(ctx context.Context, req CreateSessionRequest) (*models.Session, error) {
	row := CreateSessionRow{
		ID:               uuid.New(),
		EventID:          req.EventID,
		GameType:         req.GameType,
		Status:           models.SessionStatusPending,
		RoundCount:       len(req.Rounds),
		CurrentRound:     1,
		CurrentCallIndex: 0,
		TargetGapSeconds: req.Pacing.TargetGapSeconds(),
		Pacing:           req.Pacing,
		Visibility:       req.Visibility,
	}

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		row.Code = a.codes.Generate()
		session, err := a.repo.CreateSession(ctx, row)
		if err == nil {
			return session, nil
		}
		if errors.Is(err, ErrCodeTaken) {
			continue
		}
		return nil, err
	}
	return nil, gameerr.Validationf("could not generate a unique session code after %d attempts", maxCodeAttempts)
}

// rollbackCreate deletes everything the factory wrote so far. Children go
// first so the session row is the last observable artifact.
func (a *App) rollbackCreate(ctx context.Context, sessionID uuid.UUID) {
	if err := a.calls.DeleteCallsBySession(ctx, sessionID); err != nil {
		log.Error().Err(err).Str("session_id", sessionID.String()).Msg("rollback: failed to delete calls")
	}
	if err := a.repo.DeleteRoundsBySession(ctx, sessionID); err != nil {
		log.Error().Err(err).Str("session_id", sessionID.String()).Msg("rollback: failed to delete rounds")
	}
	if err := a.repo.DeleteTeamsBySession(ctx, sessionID); err != nil {
		log.Error().Err(err).Str("session_id", sessionID.String()).Msg("rollback: failed to delete teams")
	}
	if err := a.repo.DeleteSession(ctx, sessionID); err != nil {
		log.Error().Err(err).Str("session_id", sessionID.String()).Msg("rollback: failed to delete session")
	}
}

// validateCreateSessionRequest checks the factory preconditions and returns
// the cleaned team-name list.
func validateCreateSessionRequest(req CreateSessionRequest) ([]string, error) {
	if !req.GameType.Valid() {
		return nil, gameerr.Validationf("unknown game type %q", req.GameType)
	}

	teamNames := dedupeTeamNames(req.TeamNames)
	if len(teamNames) < minTeams {
		return nil, gameerr.Validationf("at least %d distinct team names required, got %d", minTeams, len(teamNames))
	}

	bounds := roundBoundsByGame[req.GameType]
	if len(req.Rounds) < bounds.min || len(req.Rounds) > bounds.max {
		return nil, gameerr.Validationf("%s sessions need between %d and %d rounds, got %d",
			req.GameType, bounds.min, bounds.max, len(req.Rounds))
	}

	required := 0
	for i, round := range req.Rounds {
		if strings.TrimSpace(round.Category) == "" {
			return nil, gameerr.Validationf("round %d is missing a category", i+1)
		}
		if round.CallsInRound < 1 {
			return nil, gameerr.Validationf("round %d needs at least one call slot", i+1)
		}
		required += round.CallsInRound
	}

	if len(req.Calls) < required {
		return nil, gameerr.Validationf("insufficient calls: rounds require %d, got %d", required, len(req.Calls))
	}

	if req.Pacing.ResleeveSec < 0 || req.Pacing.LocateSec < 0 || req.Pacing.CueSec < 0 || req.Pacing.BufferSec < 0 {
		return nil, gameerr.Validationf("pacing stages must be non-negative")
	}

	return teamNames, nil
}

// dedupeTeamNames trims whitespace and drops duplicates case-insensitively,
// preserving first-seen order and casing.
func dedupeTeamNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}

// assignCalls lays the flat call list onto rounds in order, filling each
// round's slots before moving on. Surplus calls spill into the final round
// as spares.
func assignCalls(req CreateSessionRequest) []NewCall {
	calls := make([]NewCall, 0, len(req.Calls))
	round := 1
	indexInRound := 1
	remaining := req.Rounds[0].CallsInRound
	for global, spec := range req.Calls {
		calls = append(calls, NewCall{
			RoundNumber: round,
			CallIndex:   indexInRound,
			GlobalIndex: global,
			Prompt:      spec.Prompt,
		})
		indexInRound++
		remaining--
		if remaining == 0 && round < len(req.Rounds) {
			round++
			indexInRound = 1
			remaining = req.Rounds[round-1].CallsInRound
		}
	}
	return calls
}
