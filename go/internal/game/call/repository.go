package call

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/waxgig/crateplay/go/internal/game/call/db"
	"github.com/waxgig/crateplay/go/internal/game/gameerr"
	"github.com/waxgig/crateplay/go/internal/game/session"
	"github.com/waxgig/crateplay/go/internal/models"
	"github.com/waxgig/crateplay/go/internal/sqlutil"
)

// Repository implements call data access on top of the generated queries.
type Repository struct {
	queries *db.Queries
}

// NewRepository creates a new call repository.
func NewRepository(queries *db.Queries) *Repository {
	return &Repository{
		queries: queries,
	}
}

// CreateCalls bulk-inserts the factory's call rows. Satisfies the session
// factory's CallWriter.
func (r *Repository) CreateCalls(ctx context.Context, sessionID uuid.UUID, calls []session.NewCall) error {
	for _, c := range calls {
		_, err := r.queries.CreateSessionCall(ctx, db.CreateSessionCallParams{
			ID:          uuid.New(),
			SessionID:   sessionID,
			RoundNumber: int32(c.RoundNumber),
			CallIndex:   int32(c.CallIndex),
			GlobalIndex: int32(c.GlobalIndex),
			Prompt:      c.Prompt,
			Status:      string(models.CallStatusPending),
		})
		if err != nil {
			return gameerr.Persistence("failed to create call", err)
		}
	}
	return nil
}

// DeleteCallsBySession removes all call rows during compensating rollback.
func (r *Repository) DeleteCallsBySession(ctx context.Context, sessionID uuid.UUID) error {
	if err := r.queries.DeleteSessionCallsBySession(ctx, sessionID); err != nil {
		return gameerr.Persistence("failed to delete calls", err)
	}
	return nil
}

// GetCall retrieves a call by ID.
func (r *Repository) GetCall(ctx context.Context, id uuid.UUID) (*models.Call, error) {
	dbCall, err := r.queries.GetSessionCall(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gameerr.NotFoundf("call %s not found", id)
		}
		return nil, gameerr.Persistence("failed to get call", err)
	}
	return dbCallToModel(dbCall), nil
}

// GetCallByCursor retrieves the call a session cursor addresses. The cursor's
// call index is zero-based; call rows are one-based within their round.
func (r *Repository) GetCallByCursor(ctx context.Context, sessionID uuid.UUID, roundNumber, cursorIndex int) (*models.Call, error) {
	dbCall, err := r.queries.GetSessionCallByCursor(ctx, db.GetSessionCallByCursorParams{
		SessionID:   sessionID,
		RoundNumber: int32(roundNumber),
		CallIndex:   int32(cursorIndex + 1),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gameerr.NotFoundf("no call at round %d index %d of session %s", roundNumber, cursorIndex, sessionID)
		}
		return nil, gameerr.Persistence("failed to get call by cursor", err)
	}
	return dbCallToModel(dbCall), nil
}

// ListCalls returns every call of the session in global play order.
func (r *Repository) ListCalls(ctx context.Context, sessionID uuid.UUID) ([]models.Call, error) {
	dbCalls, err := r.queries.ListSessionCalls(ctx, sessionID)
	if err != nil {
		return nil, gameerr.Persistence("failed to list calls", err)
	}
	calls := make([]models.Call, 0, len(dbCalls))
	for _, dbCall := range dbCalls {
		calls = append(calls, *dbCallToModel(dbCall))
	}
	return calls, nil
}

// UpdateStatus writes the call status only if the stored status still matches
// expected. A concurrent change surfaces as StateConflict.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, expected, next models.CallStatus, revealedAt, scoredAt *time.Time) (*models.Call, error) {
	dbCall, err := r.queries.UpdateSessionCallStatus(ctx, db.UpdateSessionCallStatusParams{
		ID:             id,
		ExpectedStatus: string(expected),
		Status:         string(next),
		RevealedAt:     sqlutil.ToSqlTime(revealedAt),
		ScoredAt:       sqlutil.ToSqlTime(scoredAt),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gameerr.StateConflictf("call %s is no longer in status %s", id, expected)
		}
		return nil, gameerr.Persistence("failed to update call status", err)
	}
	return dbCallToModel(dbCall), nil
}

// CountCalls returns the session's total call count.
func (r *Repository) CountCalls(ctx context.Context, sessionID uuid.UUID) (int, error) {
	n, err := r.queries.CountSessionCalls(ctx, sessionID)
	if err != nil {
		return 0, gameerr.Persistence("failed to count calls", err)
	}
	return int(n), nil
}

// CountCompletedCalls returns how many calls reached a terminal status.
func (r *Repository) CountCompletedCalls(ctx context.Context, sessionID uuid.UUID) (int, error) {
	n, err := r.queries.CountTerminalSessionCalls(ctx, sessionID)
	if err != nil {
		return 0, gameerr.Persistence("failed to count completed calls", err)
	}
	return int(n), nil
}

func dbCallToModel(dbCall db.SessionCall) *models.Call {
	return &models.Call{
		ID:          dbCall.ID,
		SessionID:   dbCall.SessionID,
		RoundNumber: int(dbCall.RoundNumber),
		CallIndex:   int(dbCall.CallIndex),
		GlobalIndex: int(dbCall.GlobalIndex),
		Prompt:      dbCall.Prompt,
		Status:      models.CallStatus(dbCall.Status),
		RevealedAt:  sqlutil.FromSqlTime(dbCall.RevealedAt),
		ScoredAt:    sqlutil.FromSqlTime(dbCall.ScoredAt),
	}
}
