package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/waxgig/crateplay/go/internal/game/gameerr"
	"github.com/waxgig/crateplay/go/internal/game/session/db"
	"github.com/waxgig/crateplay/go/internal/models"
	"github.com/waxgig/crateplay/go/internal/sqlutil"
)

// ErrCodeTaken reports a session-code collision so the factory can retry
// with a fresh code.
var ErrCodeTaken = errors.New("session code already taken")

// SQLRepository implements session data access on top of the generated queries.
type SQLRepository struct {
	queries *db.Queries
}

// NewRepository creates a new session repository.
func NewRepository(queries *db.Queries) *SQLRepository {
	return &SQLRepository{
		queries: queries,
	}
}

// CreateSession inserts the session row. A code collision surfaces as
// ErrCodeTaken.
func (r *SQLRepository) CreateSession(ctx context.Context, row CreateSessionRow) (*models.Session, error) {
	pacing, err := json.Marshal(row.Pacing)
	if err != nil {
		return nil, gameerr.Persistence("failed to marshal pacing settings", err)
	}
	visibility, err := json.Marshal(row.Visibility)
	if err != nil {
		return nil, gameerr.Persistence("failed to marshal visibility flags", err)
	}

	dbSession, err := r.queries.CreateGameSession(ctx, db.CreateGameSessionParams{
		ID:               row.ID,
		Code:             row.Code,
		EventID:          sqlutil.ToNullUUID(row.EventID),
		GameType:         string(row.GameType),
		Status:           string(row.Status),
		RoundCount:       int32(row.RoundCount),
		CurrentRound:     int32(row.CurrentRound),
		CurrentCallIndex: int32(row.CurrentCallIndex),
		TargetGapSeconds: int32(row.TargetGapSeconds),
		Pacing:           pacing,
		Visibility:       visibility,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrCodeTaken
		}
		return nil, gameerr.Persistence("failed to create session", err)
	}

	return r.dbSessionToModel(dbSession)
}

// GetSession retrieves a session by ID.
func (r *SQLRepository) GetSession(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	dbSession, err := r.queries.GetGameSession(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gameerr.NotFoundf("session %s not found", id)
		}
		return nil, gameerr.Persistence("failed to get session", err)
	}
	return r.dbSessionToModel(dbSession)
}

// GetSessionByCode retrieves a session by its human code.
func (r *SQLRepository) GetSessionByCode(ctx context.Context, code string) (*models.Session, error) {
	dbSession, err := r.queries.GetGameSessionByCode(ctx, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gameerr.NotFoundf("session with code %s not found", code)
		}
		return nil, gameerr.Persistence("failed to get session by code", err)
	}
	return r.dbSessionToModel(dbSession)
}

// ListSessions lists sessions, optionally filtered by event.
func (r *SQLRepository) ListSessions(ctx context.Context, eventID *uuid.UUID) ([]models.Session, error) {
	var (
		dbSessions []db.GameSession
		err        error
	)
	if eventID != nil {
		dbSessions, err = r.queries.ListGameSessionsByEvent(ctx, sqlutil.ToNullUUID(eventID))
	} else {
		dbSessions, err = r.queries.ListGameSessions(ctx)
	}
	if err != nil {
		return nil, gameerr.Persistence("failed to list sessions", err)
	}

	sessions := make([]models.Session, 0, len(dbSessions))
	for _, dbSession := range dbSessions {
		s, err := r.dbSessionToModel(dbSession)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *s)
	}
	return sessions, nil
}

// UpdateCursor moves the cursor only if the stored cursor still matches the
// expected value. Returns false without error when the precondition fails,
// which callers treat as a concurrent-retry no-op.
func (r *SQLRepository) UpdateCursor(ctx context.Context, id uuid.UUID, upd CursorUpdate) (bool, error) {
	rows, err := r.queries.UpdateSessionCursor(ctx, db.UpdateSessionCursorParams{
		ID:                 id,
		CurrentRound:       int32(upd.Round),
		CurrentCallIndex:   int32(upd.CallIndex),
		Status:             string(upd.Status),
		CountdownStartedAt: sqlutil.ToSqlTime(upd.CountdownStartedAt),
		ExpectedRound:      int32(upd.ExpectedRound),
		ExpectedCallIndex:  int32(upd.ExpectedCallIndex),
	})
	if err != nil {
		return false, gameerr.Persistence("failed to update session cursor", err)
	}
	return rows > 0, nil
}

// UpdateStatus writes the session status.
func (r *SQLRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.SessionStatus) (*models.Session, error) {
	dbSession, err := r.queries.UpdateSessionStatus(ctx, db.UpdateSessionStatusParams{
		ID:     id,
		Status: string(status),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gameerr.NotFoundf("session %s not found", id)
		}
		return nil, gameerr.Persistence("failed to update session status", err)
	}
	return r.dbSessionToModel(dbSession)
}

// UpdateTimer rewrites the timer fields and status together.
func (r *SQLRepository) UpdateTimer(ctx context.Context, id uuid.UUID, upd TimerUpdate) (*models.Session, error) {
	dbSession, err := r.queries.UpdateSessionTimer(ctx, db.UpdateSessionTimerParams{
		ID:                 id,
		Status:             string(upd.Status),
		CountdownStartedAt: sqlutil.ToSqlTime(upd.CountdownStartedAt),
		PausedAt:           sqlutil.ToSqlTime(upd.PausedAt),
		PausedRemainingSec: sqlutil.ToSqlInt32(upd.PausedRemainingSec),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gameerr.NotFoundf("session %s not found", id)
		}
		return nil, gameerr.Persistence("failed to update session timer", err)
	}
	return r.dbSessionToModel(dbSession)
}

// DeleteSession removes the session row during compensating rollback.
func (r *SQLRepository) DeleteSession(ctx context.Context, id uuid.UUID) error {
	if err := r.queries.DeleteGameSession(ctx, id); err != nil {
		return gameerr.Persistence("failed to delete session", err)
	}
	return nil
}

// CreateTeam inserts one roster team.
func (r *SQLRepository) CreateTeam(ctx context.Context, sessionID uuid.UUID, name string) (*models.Team, error) {
	dbTeam, err := r.queries.CreateSessionTeam(ctx, db.CreateSessionTeamParams{
		ID:        uuid.New(),
		SessionID: sessionID,
		Name:      name,
		Active:    true,
	})
	if err != nil {
		return nil, gameerr.Persistence("failed to create team", err)
	}
	return r.dbTeamToModel(dbTeam), nil
}

// ListTeams returns the session roster in join order.
func (r *SQLRepository) ListTeams(ctx context.Context, sessionID uuid.UUID) ([]models.Team, error) {
	dbTeams, err := r.queries.ListSessionTeams(ctx, sessionID)
	if err != nil {
		return nil, gameerr.Persistence("failed to list teams", err)
	}
	teams := make([]models.Team, 0, len(dbTeams))
	for _, dbTeam := range dbTeams {
		teams = append(teams, *r.dbTeamToModel(dbTeam))
	}
	return teams, nil
}

// SetTeamActive toggles a team's active flag.
func (r *SQLRepository) SetTeamActive(ctx context.Context, teamID uuid.UUID, active bool) (*models.Team, error) {
	dbTeam, err := r.queries.UpdateSessionTeamActive(ctx, db.UpdateSessionTeamActiveParams{
		ID:     teamID,
		Active: active,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gameerr.NotFoundf("team %s not found", teamID)
		}
		return nil, gameerr.Persistence("failed to update team", err)
	}
	return r.dbTeamToModel(dbTeam), nil
}

// DeleteTeamsBySession removes all roster rows during compensating rollback.
func (r *SQLRepository) DeleteTeamsBySession(ctx context.Context, sessionID uuid.UUID) error {
	if err := r.queries.DeleteSessionTeamsBySession(ctx, sessionID); err != nil {
		return gameerr.Persistence("failed to delete teams", err)
	}
	return nil
}

// CreateRound inserts one round definition.
func (r *SQLRepository) CreateRound(ctx context.Context, round models.Round) (*models.Round, error) {
	dbRound, err := r.queries.CreateSessionRound(ctx, db.CreateSessionRoundParams{
		ID:           round.ID,
		SessionID:    round.SessionID,
		RoundNumber:  int32(round.RoundNumber),
		Category:     round.Category,
		CallsInRound: int32(round.CallsInRound),
		Status:       string(round.Status),
	})
	if err != nil {
		return nil, gameerr.Persistence("failed to create round", err)
	}
	return r.dbRoundToModel(dbRound), nil
}

// ListRounds returns the session's rounds in play order.
func (r *SQLRepository) ListRounds(ctx context.Context, sessionID uuid.UUID) ([]models.Round, error) {
	dbRounds, err := r.queries.ListSessionRounds(ctx, sessionID)
	if err != nil {
		return nil, gameerr.Persistence("failed to list rounds", err)
	}
	rounds := make([]models.Round, 0, len(dbRounds))
	for _, dbRound := range dbRounds {
		rounds = append(rounds, *r.dbRoundToModel(dbRound))
	}
	return rounds, nil
}

// UpdateRoundStatus flips one round's status.
func (r *SQLRepository) UpdateRoundStatus(ctx context.Context, sessionID uuid.UUID, roundNumber int, status models.RoundStatus) (*models.Round, error) {
	dbRound, err := r.queries.UpdateSessionRoundStatus(ctx, db.UpdateSessionRoundStatusParams{
		SessionID:   sessionID,
		RoundNumber: int32(roundNumber),
		Status:      string(status),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gameerr.NotFoundf("round %d of session %s not found", roundNumber, sessionID)
		}
		return nil, gameerr.Persistence("failed to update round status", err)
	}
	return r.dbRoundToModel(dbRound), nil
}

// DeleteRoundsBySession removes all round rows during compensating rollback.
func (r *SQLRepository) DeleteRoundsBySession(ctx context.Context, sessionID uuid.UUID) error {
	if err := r.queries.DeleteSessionRoundsBySession(ctx, sessionID); err != nil {
		return gameerr.Persistence("failed to delete rounds", err)
	}
	return nil
}

func (r *SQLRepository) dbSessionToModel(dbSession db.GameSession) (*models.Session, error) {
	var pacing models.PacingSettings
	if err := json.Unmarshal(dbSession.Pacing, &pacing); err != nil {
		return nil, gameerr.Persistence("failed to unmarshal pacing settings", err)
	}
	var visibility models.VisibilityFlags
	if err := json.Unmarshal(dbSession.Visibility, &visibility); err != nil {
		return nil, gameerr.Persistence("failed to unmarshal visibility flags", err)
	}

	return &models.Session{
		ID:                 dbSession.ID,
		Code:               dbSession.Code,
		EventID:            sqlutil.FromNullUUID(dbSession.EventID),
		GameType:           models.GameType(dbSession.GameType),
		Status:             models.SessionStatus(dbSession.Status),
		RoundCount:         int(dbSession.RoundCount),
		CurrentRound:       int(dbSession.CurrentRound),
		CurrentCallIndex:   int(dbSession.CurrentCallIndex),
		TargetGapSeconds:   int(dbSession.TargetGapSeconds),
		Pacing:             pacing,
		Visibility:         visibility,
		CountdownStartedAt: sqlutil.FromSqlTime(dbSession.CountdownStartedAt),
		PausedAt:           sqlutil.FromSqlTime(dbSession.PausedAt),
		PausedRemainingSec: sqlutil.FromSqlInt32(dbSession.PausedRemainingSec),
		CreatedAt:          dbSession.CreatedAt,
		UpdatedAt:          dbSession.UpdatedAt,
	}, nil
}

func (r *SQLRepository) dbTeamToModel(dbTeam db.SessionTeam) *models.Team {
	return &models.Team{
		ID:        dbTeam.ID,
		SessionID: dbTeam.SessionID,
		Name:      dbTeam.Name,
		Active:    dbTeam.Active,
		CreatedAt: dbTeam.CreatedAt,
	}
}

func (r *SQLRepository) dbRoundToModel(dbRound db.SessionRound) *models.Round {
	return &models.Round{
		ID:           dbRound.ID,
		SessionID:    dbRound.SessionID,
		RoundNumber:  int(dbRound.RoundNumber),
		Category:     dbRound.Category,
		CallsInRound: int(dbRound.CallsInRound),
		Status:       models.RoundStatus(dbRound.Status),
	}
}

// isUniqueViolation reports a Postgres unique_violation (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
