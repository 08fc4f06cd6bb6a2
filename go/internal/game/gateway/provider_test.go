package gateway

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/waxgig/crateplay/go/internal/game/gameerr"
	"github.com/waxgig/crateplay/go/internal/models"
)

type fakeStores struct {
	session   *models.Session
	rounds    []models.Round
	calls     []models.Call
	standings []models.LeaderboardEntry
}

func (f *fakeStores) GetSession(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	if f.session == nil || f.session.ID != id {
		return nil, gameerr.NotFoundf("session %s not found", id)
	}
	return f.session, nil
}

func (f *fakeStores) ListRounds(ctx context.Context, sessionID uuid.UUID) ([]models.Round, error) {
	return f.rounds, nil
}

func (f *fakeStores) ListCalls(ctx context.Context, sessionID uuid.UUID) ([]models.Call, error) {
	return f.calls, nil
}

func (f *fakeStores) Leaderboard(ctx context.Context, sessionID uuid.UUID) ([]models.LeaderboardEntry, error) {
	return f.standings, nil
}

func triviaPrompt(t *testing.T) json.RawMessage {
	t.Helper()
	return json.RawMessage(`{"question":"Which label released Blue Train?","artist":"John Coltrane","title":"Blue Train","answer":"Blue Note","accepted_answers":["Blue Note","Blue Note Records"]}`)
}

// projectorFixture is a two-round session sitting on its second call.
func projectorFixture(t *testing.T) (*fakeStores, clockwork.Clock) {
	t.Helper()
	sessionID := uuid.New()
	started := time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(started.Add(8 * time.Second))

	stores := &fakeStores{
		session: &models.Session{
			ID:                 sessionID,
			Code:               "GROOVY-PLATTER-42",
			GameType:           models.GameTypeTrivia,
			Status:             models.SessionStatusActive,
			RoundCount:         2,
			CurrentRound:       1,
			CurrentCallIndex:   1,
			TargetGapSeconds:   60,
			CountdownStartedAt: &started,
			Visibility: models.VisibilityFlags{
				ShowArtist:        true,
				ShowTitle:         false,
				ShowLeaderboard:   true,
				ShowRoundCategory: true,
			},
		},
		rounds: []models.Round{
			{SessionID: sessionID, RoundNumber: 1, Category: "60s Soul", CallsInRound: 2, Status: models.RoundStatusActive},
			{SessionID: sessionID, RoundNumber: 2, Category: "70s Funk", CallsInRound: 2, Status: models.RoundStatusPending},
		},
		calls: []models.Call{
			{ID: uuid.New(), SessionID: sessionID, RoundNumber: 1, CallIndex: 1, GlobalIndex: 0, Status: models.CallStatusScored, Prompt: triviaPrompt(t)},
			{ID: uuid.New(), SessionID: sessionID, RoundNumber: 1, CallIndex: 2, GlobalIndex: 1, Status: models.CallStatusAsked, Prompt: triviaPrompt(t)},
			{ID: uuid.New(), SessionID: sessionID, RoundNumber: 2, CallIndex: 1, GlobalIndex: 2, Status: models.CallStatusPending, Prompt: triviaPrompt(t)},
			{ID: uuid.New(), SessionID: sessionID, RoundNumber: 2, CallIndex: 2, GlobalIndex: 3, Status: models.CallStatusPending, Prompt: triviaPrompt(t)},
		},
		standings: []models.LeaderboardEntry{
			{TeamID: uuid.New(), Name: "Crate Diggers", Active: true, TotalPoints: 10},
			{TeamID: uuid.New(), Name: "Dead Wax Society", Active: true, TotalPoints: 0},
		},
	}
	return stores, clock
}

func TestProjectHostSnapshot(t *testing.T) {
	stores, clock := projectorFixture(t)
	p := NewProvider(stores, stores, stores, clock)

	snap, err := p.Project(context.Background(), stores.session.ID, RoleHost)
	require.NoError(t, err)

	assert.Equal(t, "GROOVY-PLATTER-42", snap.Code)
	assert.Equal(t, "ACTIVE", snap.Status)
	assert.Equal(t, 4, snap.TotalCalls)
	assert.Equal(t, 1, snap.CompletedCalls)
	require.Len(t, snap.Rounds, 2)
	assert.Equal(t, "60s Soul", snap.Rounds[0].Category)

	require.NotNil(t, snap.CurrentCall)
	assert.Equal(t, 1, snap.CurrentCall.GlobalIndex)
	// the host sees the full prompt, answer included
	var prompt map[string]any
	require.NoError(t, json.Unmarshal(snap.CurrentCall.Prompt, &prompt))
	assert.Equal(t, "Blue Note", prompt["answer"])
	assert.Equal(t, "Blue Train", prompt["title"])

	require.Len(t, snap.Leaderboard, 2)
	assert.Equal(t, "Crate Diggers", snap.Leaderboard[0].Name)

	require.NotNil(t, snap.Timer.SecondsRemaining)
	assert.Equal(t, 52, *snap.Timer.SecondsRemaining)
}

func TestProjectJumbotronRedactsAnswers(t *testing.T) {
	stores, clock := projectorFixture(t)
	p := NewProvider(stores, stores, stores, clock)

	snap, err := p.Project(context.Background(), stores.session.ID, RoleJumbotron)
	require.NoError(t, err)
	require.NotNil(t, snap.CurrentCall)

	var prompt map[string]any
	require.NoError(t, json.Unmarshal(snap.CurrentCall.Prompt, &prompt))
	assert.NotContains(t, prompt, "answer")
	assert.NotContains(t, prompt, "answer_key")
	assert.NotContains(t, prompt, "accepted_answers")
	assert.Contains(t, prompt, "question")
	// ShowArtist is on, ShowTitle is off
	assert.Equal(t, "John Coltrane", prompt["artist"])
	assert.NotContains(t, prompt, "title")
}

func TestProjectJumbotronAfterReveal(t *testing.T) {
	stores, clock := projectorFixture(t)
	stores.calls[1].Status = models.CallStatusAnswerRevealed
	p := NewProvider(stores, stores, stores, clock)

	snap, err := p.Project(context.Background(), stores.session.ID, RoleJumbotron)
	require.NoError(t, err)
	require.NotNil(t, snap.CurrentCall)

	var prompt map[string]any
	require.NoError(t, json.Unmarshal(snap.CurrentCall.Prompt, &prompt))
	assert.Equal(t, "Blue Note", prompt["answer"])
	// visibility flags still apply after reveal
	assert.NotContains(t, prompt, "title")
}

func TestProjectJumbotronVisibilityGates(t *testing.T) {
	stores, clock := projectorFixture(t)
	stores.session.Visibility.ShowLeaderboard = false
	stores.session.Visibility.ShowRoundCategory = false
	p := NewProvider(stores, stores, stores, clock)

	snap, err := p.Project(context.Background(), stores.session.ID, RoleJumbotron)
	require.NoError(t, err)
	assert.Empty(t, snap.Leaderboard)
	assert.Empty(t, snap.Rounds[0].Category)

	// the same gates never apply to the assistant view
	snap, err = p.Project(context.Background(), stores.session.ID, RoleAssistant)
	require.NoError(t, err)
	assert.Len(t, snap.Leaderboard, 2)
	assert.Equal(t, "60s Soul", snap.Rounds[0].Category)
}

func TestProjectFallsForwardPastTerminalCall(t *testing.T) {
	stores, clock := projectorFixture(t)
	// cursor addresses the skipped second call of round one
	stores.calls[1].Status = models.CallStatusSkipped
	p := NewProvider(stores, stores, stores, clock)

	snap, err := p.Project(context.Background(), stores.session.ID, RoleHost)
	require.NoError(t, err)
	require.NotNil(t, snap.CurrentCall)
	assert.Equal(t, 2, snap.CurrentCall.GlobalIndex)
	assert.Equal(t, string(models.CallStatusPending), snap.CurrentCall.Status)
	assert.Equal(t, 2, snap.CompletedCalls)
}

func TestProjectNonObjectPromptWithheldPreReveal(t *testing.T) {
	stores, clock := projectorFixture(t)
	stores.calls[1].Prompt = json.RawMessage(`"name that tune"`)
	p := NewProvider(stores, stores, stores, clock)

	snap, err := p.Project(context.Background(), stores.session.ID, RoleJumbotron)
	require.NoError(t, err)
	require.NotNil(t, snap.CurrentCall)
	assert.Empty(t, snap.CurrentCall.Prompt)

	stores.calls[1].Status = models.CallStatusAnswerRevealed
	snap, err = p.Project(context.Background(), stores.session.ID, RoleJumbotron)
	require.NoError(t, err)
	assert.JSONEq(t, `"name that tune"`, string(snap.CurrentCall.Prompt))
}

func TestProjectPausedTimer(t *testing.T) {
	stores, clock := projectorFixture(t)
	pausedAt := clock.Now()
	remaining := 33
	stores.session.Status = models.SessionStatusPaused
	stores.session.PausedAt = &pausedAt
	stores.session.PausedRemainingSec = &remaining
	p := NewProvider(stores, stores, stores, clock)

	snap, err := p.Project(context.Background(), stores.session.ID, RoleHost)
	require.NoError(t, err)
	require.NotNil(t, snap.Timer.SecondsRemaining)
	assert.Equal(t, 33, *snap.Timer.SecondsRemaining)
	assert.Equal(t, &pausedAt, snap.Timer.PausedAt)
}

func TestProjectUnknownSession(t *testing.T) {
	stores, clock := projectorFixture(t)
	p := NewProvider(stores, stores, stores, clock)

	_, err := p.Project(context.Background(), uuid.New(), RoleHost)
	require.Error(t, err)
	assert.True(t, gameerr.IsKind(err, gameerr.KindNotFound))
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{"host", RoleHost, false},
		{"assistant", RoleAssistant, false},
		{"jumbotron", RoleJumbotron, false},
		{"", RoleJumbotron, false},
		{"Host", "", true},
		{"dj", "", true},
	}
	for _, tc := range tests {
		role, err := ParseRole(tc.in)
		if tc.wantErr {
			assert.Error(t, err, "input %q", tc.in)
			continue
		}
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, role)
	}
}
