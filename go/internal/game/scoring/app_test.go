package scoring

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/waxgig/crateplay/go/internal/game/gameerr"
	"github.com/waxgig/crateplay/go/internal/models"
)

// fakeScoreRepo keeps the event log in memory and derives the leaderboard
// from it the same way the SQL aggregate does.
type fakeScoreRepo struct {
	events []models.ScoreEvent
	teams  []models.Team
	calls  map[uuid.UUID]*models.Call
	seq    int
}

func (f *fakeScoreRepo) RecordScores(ctx context.Context, sessionID, callID uuid.UUID, expectedCallStatus models.CallStatus, replace bool, events []NewScoreEvent) ([]models.ScoreEvent, error) {
	c := f.calls[callID]
	if c.Status != expectedCallStatus {
		return nil, gameerr.StateConflictf("call %s is no longer in status %s", callID, expectedCallStatus)
	}
	if replace {
		for i := range f.events {
			if f.events[i].CallID == callID {
				f.events[i].Voided = true
			}
		}
	}
	var created []models.ScoreEvent
	for _, e := range events {
		for _, existing := range f.events {
			if existing.CallID == callID && existing.TeamID == e.TeamID && !existing.Voided {
				return nil, gameerr.StateConflictf("call %s already has a score for team %s", callID, e.TeamID)
			}
		}
		f.seq++
		event := models.ScoreEvent{
			ID:            uuid.New(),
			SessionID:     sessionID,
			CallID:        callID,
			TeamID:        e.TeamID,
			Correct:       e.Correct,
			PointsAwarded: e.Points,
			Detail:        e.Detail,
			CreatedAt:     time.Unix(int64(f.seq), 0),
		}
		f.events = append(f.events, event)
		created = append(created, event)
	}
	if !replace {
		c.Status = models.CallStatusScored
	}
	return created, nil
}

func (f *fakeScoreRepo) VoidScoresForCall(ctx context.Context, callID uuid.UUID) (int64, error) {
	var n int64
	for i := range f.events {
		if f.events[i].CallID == callID && !f.events[i].Voided {
			f.events[i].Voided = true
			n++
		}
	}
	return n, nil
}

func (f *fakeScoreRepo) ListEventsByCall(ctx context.Context, callID uuid.UUID) ([]models.ScoreEvent, error) {
	var out []models.ScoreEvent
	for _, e := range f.events {
		if e.CallID == callID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeScoreRepo) ListEventsBySession(ctx context.Context, sessionID uuid.UUID) ([]models.ScoreEvent, error) {
	var out []models.ScoreEvent
	for _, e := range f.events {
		if e.SessionID == sessionID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeScoreRepo) Leaderboard(ctx context.Context, sessionID uuid.UUID) ([]models.LeaderboardEntry, error) {
	entries := make([]models.LeaderboardEntry, 0, len(f.teams))
	for _, t := range f.teams {
		entry := models.LeaderboardEntry{TeamID: t.ID, Name: t.Name, Active: t.Active}
		for _, e := range f.events {
			if e.TeamID != t.ID || e.Voided {
				continue
			}
			entry.TotalPoints += e.PointsAwarded
			if entry.FirstScoredAt == nil || e.CreatedAt.Before(*entry.FirstScoredAt) {
				at := e.CreatedAt
				entry.FirstScoredAt = &at
			}
		}
		entries = append(entries, entry)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].TotalPoints != entries[j].TotalPoints {
			return entries[i].TotalPoints > entries[j].TotalPoints
		}
		a, b := entries[i].FirstScoredAt, entries[j].FirstScoredAt
		if a != nil && b != nil {
			return a.Before(*b)
		}
		return a != nil
	})
	return entries, nil
}

type fakeSessionReader struct {
	session *models.Session
	teams   []models.Team
}

func (f *fakeSessionReader) GetSession(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	if f.session == nil || f.session.ID != id {
		return nil, gameerr.NotFoundf("session %s not found", id)
	}
	return f.session, nil
}

func (f *fakeSessionReader) ListTeams(ctx context.Context, sessionID uuid.UUID) ([]models.Team, error) {
	return f.teams, nil
}

type fakeCallReader struct {
	calls map[uuid.UUID]*models.Call
}

func (f *fakeCallReader) GetCall(ctx context.Context, id uuid.UUID) (*models.Call, error) {
	c, ok := f.calls[id]
	if !ok {
		return nil, gameerr.NotFoundf("call %s not found", id)
	}
	cp := *c
	return &cp, nil
}

type scoringFixture struct {
	app      *App
	repo     *fakeScoreRepo
	session  *models.Session
	teamA    models.Team
	teamB    models.Team
	revealed *models.Call
}

func newScoringFixture(gameType models.GameType) *scoringFixture {
	sessionID := uuid.New()
	teamA := models.Team{ID: uuid.New(), SessionID: sessionID, Name: "Crate Diggers", Active: true}
	teamB := models.Team{ID: uuid.New(), SessionID: sessionID, Name: "Dead Wax Society", Active: true}
	call := &models.Call{
		ID:          uuid.New(),
		SessionID:   sessionID,
		RoundNumber: 1,
		CallIndex:   1,
		Status:      models.CallStatusAnswerRevealed,
	}
	s := &models.Session{ID: sessionID, GameType: gameType, Status: models.SessionStatusActive}

	calls := map[uuid.UUID]*models.Call{call.ID: call}
	repo := &fakeScoreRepo{teams: []models.Team{teamA, teamB}, calls: calls}
	sessions := &fakeSessionReader{session: s, teams: []models.Team{teamA, teamB}}

	return &scoringFixture{
		app:      NewApp(repo, sessions, &fakeCallReader{calls: calls}),
		repo:     repo,
		session:  s,
		teamA:    teamA,
		teamB:    teamB,
		revealed: call,
	}
}

func TestRecordScoresComputesPolicyAwards(t *testing.T) {
	f := newScoringFixture(models.GameTypeNeedleDrop)

	events, err := f.app.RecordScores(context.Background(), f.session.ID, f.revealed.ID, ScoreRequest{
		Judgments: []Judgment{
			{TeamID: f.teamA.ID, Correct: true, NamedOriginalArtist: true},
			{TeamID: f.teamB.ID},
		},
	})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, 15, events[0].PointsAwarded)
	assert.Equal(t, 0, events[1].PointsAwarded)
	assert.Equal(t, models.CallStatusScored, f.revealed.Status)
}

func TestRecordScoresExplicitOverride(t *testing.T) {
	f := newScoringFixture(models.GameTypeSpeedSpin)
	points := 42

	events, err := f.app.RecordScores(context.Background(), f.session.ID, f.revealed.ID, ScoreRequest{
		Judgments: []Judgment{{TeamID: f.teamA.ID, Correct: true, AwardedPoints: &points}},
	})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, 42, events[0].PointsAwarded)
}

func TestRecordScoresRejectsDoubleScoring(t *testing.T) {
	f := newScoringFixture(models.GameTypeTrivia)
	ctx := context.Background()
	req := ScoreRequest{Judgments: []Judgment{{TeamID: f.teamA.ID, Correct: true}}}

	_, err := f.app.RecordScores(ctx, f.session.ID, f.revealed.ID, req)
	require.NoError(t, err)

	_, err = f.app.RecordScores(ctx, f.session.ID, f.revealed.ID, req)
	require.Error(t, err)
	assert.True(t, gameerr.IsKind(err, gameerr.KindStateConflict))

	// leaderboard reflects exactly one award
	board, err := f.app.Leaderboard(ctx, f.session.ID)
	require.NoError(t, err)
	require.Len(t, board, 2)
	assert.Equal(t, f.teamA.ID, board[0].TeamID)
	assert.Equal(t, 10, board[0].TotalPoints)
}

func TestRecordScoresCorrectionReplacesAwards(t *testing.T) {
	f := newScoringFixture(models.GameTypeTrivia)
	ctx := context.Background()

	_, err := f.app.RecordScores(ctx, f.session.ID, f.revealed.ID, ScoreRequest{
		Judgments: []Judgment{{TeamID: f.teamA.ID, Correct: true}},
	})
	require.NoError(t, err)

	_, err = f.app.RecordScores(ctx, f.session.ID, f.revealed.ID, ScoreRequest{
		Judgments: []Judgment{{TeamID: f.teamB.ID, Correct: true}},
		Replace:   true,
	})
	require.NoError(t, err)

	board, err := f.app.Leaderboard(ctx, f.session.ID)
	require.NoError(t, err)
	require.Len(t, board, 2)
	assert.Equal(t, f.teamB.ID, board[0].TeamID)
	assert.Equal(t, 10, board[0].TotalPoints)
	assert.Equal(t, f.teamA.ID, board[1].TeamID)
	assert.Equal(t, 0, board[1].TotalPoints)

	// the voided event stays in the log
	history, err := f.app.ListEventsByCall(ctx, f.session.ID, f.revealed.ID)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestRecordScoresValidation(t *testing.T) {
	negative := -5
	f := newScoringFixture(models.GameTypeTrivia)
	ctx := context.Background()

	_, err := f.app.RecordScores(ctx, f.session.ID, f.revealed.ID, ScoreRequest{})
	require.Error(t, err)
	assert.True(t, gameerr.IsKind(err, gameerr.KindValidation))

	_, err = f.app.RecordScores(ctx, f.session.ID, f.revealed.ID, ScoreRequest{
		Judgments: []Judgment{{TeamID: uuid.New(), Correct: true}},
	})
	require.Error(t, err)
	assert.True(t, gameerr.IsKind(err, gameerr.KindValidation))
	assert.Contains(t, err.Error(), "roster")

	_, err = f.app.RecordScores(ctx, f.session.ID, f.revealed.ID, ScoreRequest{
		Judgments: []Judgment{{TeamID: f.teamA.ID, Correct: true, AwardedPoints: &negative}},
	})
	require.Error(t, err)
	assert.True(t, gameerr.IsKind(err, gameerr.KindValidation))
	assert.Contains(t, err.Error(), "non-negative")

	_, err = f.app.RecordScores(ctx, f.session.ID, f.revealed.ID, ScoreRequest{
		Judgments: []Judgment{
			{TeamID: f.teamA.ID, Correct: true},
			{TeamID: f.teamA.ID},
		},
	})
	require.Error(t, err)
	assert.True(t, gameerr.IsKind(err, gameerr.KindValidation))
	assert.Contains(t, err.Error(), "duplicate")
}

func TestRecordScoresRequiresRevealedCall(t *testing.T) {
	f := newScoringFixture(models.GameTypeTrivia)
	f.revealed.Status = models.CallStatusAsked

	_, err := f.app.RecordScores(context.Background(), f.session.ID, f.revealed.ID, ScoreRequest{
		Judgments: []Judgment{{TeamID: f.teamA.ID, Correct: true}},
	})
	require.Error(t, err)
	assert.True(t, gameerr.IsKind(err, gameerr.KindStateConflict))
}

func TestRecordScoresWrongSession(t *testing.T) {
	f := newScoringFixture(models.GameTypeTrivia)

	_, err := f.app.RecordScores(context.Background(), uuid.New(), f.revealed.ID, ScoreRequest{
		Judgments: []Judgment{{TeamID: f.teamA.ID, Correct: true}},
	})
	require.Error(t, err)
	assert.True(t, gameerr.IsKind(err, gameerr.KindNotFound))
}

func TestLeaderboardConsistency(t *testing.T) {
	f := newScoringFixture(models.GameTypeTrivia)
	ctx := context.Background()

	sessionID := f.session.ID
	secondCall := &models.Call{
		ID:          uuid.New(),
		SessionID:   sessionID,
		RoundNumber: 1,
		CallIndex:   2,
		Status:      models.CallStatusAnswerRevealed,
	}
	f.repo.calls[secondCall.ID] = secondCall

	_, err := f.app.RecordScores(ctx, sessionID, f.revealed.ID, ScoreRequest{
		Judgments: []Judgment{
			{TeamID: f.teamA.ID, Correct: true},
			{TeamID: f.teamB.ID, Correct: true, DifficultyTier: 1},
		},
	})
	require.NoError(t, err)

	_, err = f.app.RecordScores(ctx, sessionID, secondCall.ID, ScoreRequest{
		Judgments: []Judgment{{TeamID: f.teamA.ID, Correct: true}},
	})
	require.NoError(t, err)

	// the board totals must equal the sum over live events, team by team
	board, err := f.app.Leaderboard(ctx, sessionID)
	require.NoError(t, err)

	events, err := f.repo.ListEventsBySession(ctx, sessionID)
	require.NoError(t, err)
	sums := make(map[uuid.UUID]int)
	for _, e := range events {
		if !e.Voided {
			sums[e.TeamID] += e.PointsAwarded
		}
	}
	for _, entry := range board {
		assert.Equal(t, sums[entry.TeamID], entry.TotalPoints, "team %s", entry.Name)
	}
	assert.Equal(t, 20, board[0].TotalPoints)
	assert.Equal(t, 15, board[1].TotalPoints)
}
