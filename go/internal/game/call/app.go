package call

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/waxgig/crateplay/go/internal/game/gameerr"
	"github.com/waxgig/crateplay/go/internal/game/session"
	"github.com/waxgig/crateplay/go/internal/models"
)

// CallRepository defines what the sequencer app layer needs from the call store.
type CallRepository interface {
	GetCall(ctx context.Context, id uuid.UUID) (*models.Call, error)
	GetCallByCursor(ctx context.Context, sessionID uuid.UUID, roundNumber, cursorIndex int) (*models.Call, error)
	ListCalls(ctx context.Context, sessionID uuid.UUID) ([]models.Call, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, expected, next models.CallStatus, revealedAt, scoredAt *time.Time) (*models.Call, error)
	CountCalls(ctx context.Context, sessionID uuid.UUID) (int, error)
	CountCompletedCalls(ctx context.Context, sessionID uuid.UUID) (int, error)
}

// SessionStore defines what the sequencer needs from the session store.
type SessionStore interface {
	GetSession(ctx context.Context, id uuid.UUID) (*models.Session, error)
	UpdateCursor(ctx context.Context, id uuid.UUID, upd session.CursorUpdate) (bool, error)
	ListRounds(ctx context.Context, sessionID uuid.UUID) ([]models.Round, error)
	UpdateRoundStatus(ctx context.Context, sessionID uuid.UUID, roundNumber int, status models.RoundStatus) (*models.Round, error)
}

// ScoreVoider voids a call's score events when the cursor rewinds onto it.
type ScoreVoider interface {
	VoidScoresForCall(ctx context.Context, callID uuid.UUID) (int64, error)
}

// validTransitions holds the allowed call status moves. Terminal statuses
// have no outgoing edges; skipping is allowed from any pre-scored status.
var validTransitions = map[models.CallStatus][]models.CallStatus{
	models.CallStatusPending:        {models.CallStatusAsked, models.CallStatusSkipped},
	models.CallStatusAsked:          {models.CallStatusAnswerRevealed, models.CallStatusSkipped},
	models.CallStatusAnswerRevealed: {models.CallStatusScored, models.CallStatusSkipped},
}

// App handles round/call sequencer business logic.
type App struct {
	repo     CallRepository
	sessions SessionStore
	scores   ScoreVoider
	clock    clockwork.Clock
}

// NewApp creates a new sequencer App.
func NewApp(repo CallRepository, sessions SessionStore, scores ScoreVoider, clock clockwork.Clock) *App {
	return &App{
		repo:     repo,
		sessions: sessions,
		scores:   scores,
		clock:    clock,
	}
}

// GetCall retrieves a call belonging to the addressed session.
func (a *App) GetCall(ctx context.Context, sessionID, callID uuid.UUID) (*models.Call, error) {
	c, err := a.repo.GetCall(ctx, callID)
	if err != nil {
		return nil, err
	}
	if c.SessionID != sessionID {
		return nil, gameerr.NotFoundf("call %s does not belong to session %s", callID, sessionID)
	}
	return c, nil
}

// ListCalls returns every call of the session in play order.
func (a *App) ListCalls(ctx context.Context, sessionID uuid.UUID) ([]models.Call, error) {
	return a.repo.ListCalls(ctx, sessionID)
}

// CallByCursor returns the call the session cursor addresses.
func (a *App) CallByCursor(ctx context.Context, s *models.Session) (*models.Call, error) {
	return a.repo.GetCallByCursor(ctx, s.ID, s.CurrentRound, s.CurrentCallIndex)
}

// CallCounts returns total and terminal call counts for session summaries.
func (a *App) CallCounts(ctx context.Context, sessionID uuid.UUID) (total, completed int, err error) {
	total, err = a.repo.CountCalls(ctx, sessionID)
	if err != nil {
		return 0, 0, err
	}
	completed, err = a.repo.CountCompletedCalls(ctx, sessionID)
	if err != nil {
		return 0, 0, err
	}
	return total, completed, nil
}

// Advance moves the cursor to the next call. The first advance of a pending
// session also activates it. Advancing past the last call of a round rolls
// into the next round; past the final round it completes the session. A
// concurrent advance that already moved the cursor makes this one a no-op.
func (a *App) Advance(ctx context.Context, sessionID uuid.UUID) (*models.Session, error) {
	s, err := a.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	switch s.Status {
	case models.SessionStatusCompleted:
		return nil, gameerr.StateConflictf("cannot advance a completed session")
	case models.SessionStatusPaused:
		return nil, gameerr.StateConflictf("cannot advance a paused session, resume it first")
	}

	rounds, err := a.sessions.ListRounds(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	callsInRound := callsPerRound(rounds)

	now := a.clock.Now()
	upd := session.CursorUpdate{
		ExpectedRound:     s.CurrentRound,
		ExpectedCallIndex: s.CurrentCallIndex,
	}
	var rollover bool
	switch {
	case s.CurrentCallIndex+1 < callsInRound[s.CurrentRound]:
		upd.Round = s.CurrentRound
		upd.CallIndex = s.CurrentCallIndex + 1
		upd.Status = models.SessionStatusActive
		upd.CountdownStartedAt = &now
	case s.CurrentRound < s.RoundCount:
		upd.Round = s.CurrentRound + 1
		upd.CallIndex = 0
		upd.Status = models.SessionStatusActive
		upd.CountdownStartedAt = &now
		rollover = true
	default:
		upd.Round = s.CurrentRound
		upd.CallIndex = s.CurrentCallIndex
		upd.Status = models.SessionStatusCompleted
		upd.CountdownStartedAt = s.CountdownStartedAt
	}

	applied, err := a.sessions.UpdateCursor(ctx, sessionID, upd)
	if err != nil {
		return nil, err
	}
	if !applied {
		// cursor already moved by a concurrent advance
		return a.sessions.GetSession(ctx, sessionID)
	}

	if rollover {
		if _, err := a.sessions.UpdateRoundStatus(ctx, sessionID, s.CurrentRound, models.RoundStatusCompleted); err != nil {
			return nil, err
		}
		if _, err := a.sessions.UpdateRoundStatus(ctx, sessionID, upd.Round, models.RoundStatusActive); err != nil {
			return nil, err
		}
	}
	if upd.Status == models.SessionStatusCompleted {
		if _, err := a.sessions.UpdateRoundStatus(ctx, sessionID, s.CurrentRound, models.RoundStatusCompleted); err != nil {
			return nil, err
		}
	}

	log.Info().
		Str("session_id", sessionID.String()).
		Int("round", upd.Round).
		Int("call_index", upd.CallIndex).
		Str("status", string(upd.Status)).
		Msg("advanced cursor")

	return a.sessions.GetSession(ctx, sessionID)
}

// Previous rewinds the cursor one call. If the call rewound onto was already
// scored, its score events are voided and the call drops back to
// answer_revealed so the host can re-judge it.
func (a *App) Previous(ctx context.Context, sessionID uuid.UUID) (*models.Session, error) {
	s, err := a.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if s.Status != models.SessionStatusActive && s.Status != models.SessionStatusPaused {
		return nil, gameerr.StateConflictf("cannot rewind a session in status %s", s.Status)
	}

	rounds, err := a.sessions.ListRounds(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	callsInRound := callsPerRound(rounds)

	upd := session.CursorUpdate{
		Status:             s.Status,
		CountdownStartedAt: s.CountdownStartedAt,
		ExpectedRound:      s.CurrentRound,
		ExpectedCallIndex:  s.CurrentCallIndex,
	}
	var rollback bool
	switch {
	case s.CurrentCallIndex > 0:
		upd.Round = s.CurrentRound
		upd.CallIndex = s.CurrentCallIndex - 1
	case s.CurrentRound > 1:
		upd.Round = s.CurrentRound - 1
		upd.CallIndex = callsInRound[s.CurrentRound-1] - 1
		rollback = true
	default:
		return nil, gameerr.StateConflictf("already at the first call")
	}

	applied, err := a.sessions.UpdateCursor(ctx, sessionID, upd)
	if err != nil {
		return nil, err
	}
	if !applied {
		return a.sessions.GetSession(ctx, sessionID)
	}

	if rollback {
		if _, err := a.sessions.UpdateRoundStatus(ctx, sessionID, s.CurrentRound, models.RoundStatusPending); err != nil {
			return nil, err
		}
		if _, err := a.sessions.UpdateRoundStatus(ctx, sessionID, upd.Round, models.RoundStatusActive); err != nil {
			return nil, err
		}
	}

	target, err := a.repo.GetCallByCursor(ctx, sessionID, upd.Round, upd.CallIndex)
	if err != nil {
		return nil, err
	}
	if target.Status == models.CallStatusScored {
		voided, err := a.scores.VoidScoresForCall(ctx, target.ID)
		if err != nil {
			return nil, err
		}
		if _, err := a.repo.UpdateStatus(ctx, target.ID, models.CallStatusScored, models.CallStatusAnswerRevealed, nil, nil); err != nil {
			return nil, err
		}
		log.Info().
			Str("session_id", sessionID.String()).
			Str("call_id", target.ID.String()).
			Int64("voided_events", voided).
			Msg("rewound onto scored call, awards voided")
	}

	log.Info().
		Str("session_id", sessionID.String()).
		Int("round", upd.Round).
		Int("call_index", upd.CallIndex).
		Msg("rewound cursor")

	return a.sessions.GetSession(ctx, sessionID)
}

// PatchStatus writes a call status directly without moving the cursor, so a
// host can mark asked or reveal an answer before advancing. Re-patching the
// current status is a no-op.
func (a *App) PatchStatus(ctx context.Context, sessionID, callID uuid.UUID, target models.CallStatus) (*models.Call, error) {
	c, err := a.GetCall(ctx, sessionID, callID)
	if err != nil {
		return nil, err
	}

	s, err := a.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if s.Status == models.SessionStatusCompleted {
		return nil, gameerr.StateConflictf("cannot modify calls of a completed session")
	}

	switch target {
	case models.CallStatusPending, models.CallStatusAsked, models.CallStatusAnswerRevealed,
		models.CallStatusScored, models.CallStatusSkipped:
	default:
		return nil, gameerr.Validationf("unknown call status %q", target)
	}

	if c.Status == target {
		return c, nil
	}
	if !transitionAllowed(c.Status, target) {
		return nil, gameerr.StateConflictf("call cannot move from %s to %s", c.Status, target)
	}

	var revealedAt, scoredAt *time.Time
	now := a.clock.Now()
	switch target {
	case models.CallStatusAnswerRevealed:
		revealedAt = &now
	case models.CallStatusScored:
		scoredAt = &now
	}

	updated, err := a.repo.UpdateStatus(ctx, callID, c.Status, target, revealedAt, scoredAt)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("session_id", sessionID.String()).
		Str("call_id", callID.String()).
		Str("from", string(c.Status)).
		Str("to", string(target)).
		Msg("patched call status")

	return updated, nil
}

func transitionAllowed(from, to models.CallStatus) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// callsPerRound indexes call capacity by round number.
func callsPerRound(rounds []models.Round) map[int]int {
	m := make(map[int]int, len(rounds))
	for _, r := range rounds {
		m[r.RoundNumber] = r.CallsInRound
	}
	return m
}
