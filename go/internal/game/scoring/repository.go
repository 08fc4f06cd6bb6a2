package scoring

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/waxgig/crateplay/go/internal/game/gameerr"
	"github.com/waxgig/crateplay/go/internal/game/scoring/db"
	"github.com/waxgig/crateplay/go/internal/models"
	"github.com/waxgig/crateplay/go/internal/sqlutil"
)

// NewScoreEvent is one award row the app hands the repository for insertion.
type NewScoreEvent struct {
	TeamID  uuid.UUID
	Correct bool
	Points  int
	Detail  json.RawMessage
}

// SQLRepository implements score-event data access. Mutations that touch both
// score_events and session_calls run inside a single transaction.
type SQLRepository struct {
	queries *db.Queries
	sqlDB   *sql.DB
}

// NewRepository creates a new scoring repository.
func NewRepository(queries *db.Queries, sqlDB *sql.DB) *SQLRepository {
	return &SQLRepository{
		queries: queries,
		sqlDB:   sqlDB,
	}
}

// RecordScores inserts one event per team and flips the call to scored in
// the same transaction. The call row's expected status is re-checked inside
// the transaction, and the partial unique index on (call_id, team_id) backs
// up the at-most-once guarantee against racing writers.
func (r *SQLRepository) RecordScores(ctx context.Context, sessionID, callID uuid.UUID, expectedCallStatus models.CallStatus, replace bool, events []NewScoreEvent) ([]models.ScoreEvent, error) {
	var created []models.ScoreEvent
	err := sqlutil.Run(ctx, r.sqlDB, func(tx *sql.Tx) *db.Queries { return r.queries.WithTx(tx) }, func(q *db.Queries) error {
		if replace {
			if _, err := q.VoidScoreEventsByCall(ctx, callID); err != nil {
				return gameerr.Persistence("failed to void prior score events", err)
			}
		}
		for _, e := range events {
			row, err := q.CreateScoreEvent(ctx, db.CreateScoreEventParams{
				ID:            uuid.New(),
				SessionID:     sessionID,
				CallID:        callID,
				TeamID:        e.TeamID,
				Correct:       e.Correct,
				PointsAwarded: int32(e.Points),
				Detail:        sqlutil.ToNullRawMessage(e.Detail),
			})
			if err != nil {
				if isUniqueViolation(err) {
					return gameerr.StateConflictf("call %s already has a score for team %s", callID, e.TeamID)
				}
				return gameerr.Persistence("failed to create score event", err)
			}
			created = append(created, *dbScoreEventToModel(row))
		}
		if !replace {
			rows, err := q.MarkCallScored(ctx, db.MarkCallScoredParams{
				ID:             callID,
				ExpectedStatus: string(expectedCallStatus),
			})
			if err != nil {
				return gameerr.Persistence("failed to mark call scored", err)
			}
			if rows == 0 {
				return gameerr.StateConflictf("call %s is no longer in status %s", callID, expectedCallStatus)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// VoidScoresForCall voids every live event of a call. Used when the cursor
// rewinds onto a scored call.
func (r *SQLRepository) VoidScoresForCall(ctx context.Context, callID uuid.UUID) (int64, error) {
	rows, err := r.queries.VoidScoreEventsByCall(ctx, callID)
	if err != nil {
		return 0, gameerr.Persistence("failed to void score events", err)
	}
	return rows, nil
}

// ListEventsByCall returns every event for a call, voided included.
func (r *SQLRepository) ListEventsByCall(ctx context.Context, callID uuid.UUID) ([]models.ScoreEvent, error) {
	rows, err := r.queries.ListScoreEventsByCall(ctx, callID)
	if err != nil {
		return nil, gameerr.Persistence("failed to list score events", err)
	}
	return dbScoreEventsToModels(rows), nil
}

// ListEventsBySession returns the session's full event log.
func (r *SQLRepository) ListEventsBySession(ctx context.Context, sessionID uuid.UUID) ([]models.ScoreEvent, error) {
	rows, err := r.queries.ListScoreEventsBySession(ctx, sessionID)
	if err != nil {
		return nil, gameerr.Persistence("failed to list score events", err)
	}
	return dbScoreEventsToModels(rows), nil
}

// Leaderboard derives per-team totals from the live event log. Totals are
// never stored separately, so they cannot drift from the events.
func (r *SQLRepository) Leaderboard(ctx context.Context, sessionID uuid.UUID) ([]models.LeaderboardEntry, error) {
	rows, err := r.queries.SessionLeaderboard(ctx, sessionID)
	if err != nil {
		return nil, gameerr.Persistence("failed to compute leaderboard", err)
	}
	entries := make([]models.LeaderboardEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, models.LeaderboardEntry{
			TeamID:        row.TeamID,
			Name:          row.Name,
			Active:        row.Active,
			TotalPoints:   int(row.TotalPoints),
			FirstScoredAt: sqlutil.FromSqlTime(row.FirstScoredAt),
		})
	}
	return entries, nil
}

func dbScoreEventToModel(row db.ScoreEvent) *models.ScoreEvent {
	return &models.ScoreEvent{
		ID:            row.ID,
		SessionID:     row.SessionID,
		CallID:        row.CallID,
		TeamID:        row.TeamID,
		Correct:       row.Correct,
		PointsAwarded: int(row.PointsAwarded),
		Voided:        row.Voided,
		Detail:        sqlutil.FromNullRawMessage(row.Detail),
		CreatedAt:     row.CreatedAt,
	}
}

func dbScoreEventsToModels(rows []db.ScoreEvent) []models.ScoreEvent {
	events := make([]models.ScoreEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, *dbScoreEventToModel(row))
	}
	return events
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
