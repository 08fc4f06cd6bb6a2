package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/waxgig/crateplay/go/internal/game/gameerr"
	"github.com/waxgig/crateplay/go/internal/game/scoring"
	"github.com/waxgig/crateplay/go/internal/game/session"
	"github.com/waxgig/crateplay/go/internal/models"
)

type fakeSessionAPI struct {
	created   *models.Session
	createErr error
	sessions  []models.Session
	paused    *models.Session
	pauseErr  error
}

func (f *fakeSessionAPI) CreateSession(ctx context.Context, req session.CreateSessionRequest) (*models.Session, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.created, nil
}

func (f *fakeSessionAPI) GetSessionByCode(ctx context.Context, code string) (*models.Session, error) {
	if f.created == nil || f.created.Code != code {
		return nil, gameerr.NotFoundf("no session with code %s", code)
	}
	return f.created, nil
}

func (f *fakeSessionAPI) ListSessions(ctx context.Context, eventID *uuid.UUID) ([]models.Session, error) {
	return f.sessions, nil
}

func (f *fakeSessionAPI) PauseSession(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	if f.pauseErr != nil {
		return nil, f.pauseErr
	}
	return f.paused, nil
}

func (f *fakeSessionAPI) ResumeSession(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	return f.paused, nil
}

type fakeSequencerAPI struct {
	session    *models.Session
	advanceErr error
	patched    *models.Call
	patchErr   error
	gotStatus  models.CallStatus
}

func (f *fakeSequencerAPI) Advance(ctx context.Context, sessionID uuid.UUID) (*models.Session, error) {
	if f.advanceErr != nil {
		return nil, f.advanceErr
	}
	return f.session, nil
}

func (f *fakeSequencerAPI) Previous(ctx context.Context, sessionID uuid.UUID) (*models.Session, error) {
	return f.session, nil
}

func (f *fakeSequencerAPI) PatchStatus(ctx context.Context, sessionID, callID uuid.UUID, target models.CallStatus) (*models.Call, error) {
	f.gotStatus = target
	if f.patchErr != nil {
		return nil, f.patchErr
	}
	return f.patched, nil
}

func (f *fakeSequencerAPI) CallCounts(ctx context.Context, sessionID uuid.UUID) (int, int, error) {
	return 6, 2, nil
}

type fakeScoringAPI struct {
	events []models.ScoreEvent
	err    error
}

func (f *fakeScoringAPI) RecordScores(ctx context.Context, sessionID, callID uuid.UUID, req scoring.ScoreRequest) ([]models.ScoreEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.events, nil
}

type fakeSnapshots struct {
	snapshot *SessionSnapshot
	gotRole  Role
	err      error
}

func (f *fakeSnapshots) Project(ctx context.Context, sessionID uuid.UUID, role Role) (*SessionSnapshot, error) {
	f.gotRole = role
	if f.err != nil {
		return nil, f.err
	}
	return f.snapshot, nil
}

type handlerFixture struct {
	mux       *http.ServeMux
	sessions  *fakeSessionAPI
	sequencer *fakeSequencerAPI
	scores    *fakeScoringAPI
	snapshots *fakeSnapshots
}

func newHandlerFixture() *handlerFixture {
	s := &models.Session{
		ID:               uuid.New(),
		Code:             "MELLOW-GROOVE-07",
		GameType:         models.GameTypeTrivia,
		Status:           models.SessionStatusActive,
		RoundCount:       3,
		CurrentRound:     2,
		CurrentCallIndex: 1,
	}
	f := &handlerFixture{
		mux:       http.NewServeMux(),
		sessions:  &fakeSessionAPI{created: s, paused: s, sessions: []models.Session{*s}},
		sequencer: &fakeSequencerAPI{session: s, patched: &models.Call{ID: uuid.New(), Status: models.CallStatusAsked}},
		scores:    &fakeScoringAPI{events: []models.ScoreEvent{{ID: uuid.New(), PointsAwarded: 10}}},
		snapshots: &fakeSnapshots{snapshot: &SessionSnapshot{SessionID: s.ID.String(), Code: s.Code}},
	}
	NewHandler(f.sessions, f.sequencer, f.scores, f.snapshots).Register(f.mux)
	return f
}

func (f *handlerFixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload
}

func TestCreateSessionEndpoint(t *testing.T) {
	f := newHandlerFixture()

	rec := f.do(t, http.MethodPost, "/api/sessions", `{"game_type":"TRIVIA"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decodeBody(t, rec)
	assert.Equal(t, "MELLOW-GROOVE-07", body["code"])
	assert.NotEmpty(t, body["session_id"])
}

func TestCreateSessionEndpointRejectsBadJSON(t *testing.T) {
	f := newHandlerFixture()

	rec := f.do(t, http.MethodPost, "/api/sessions", `{"game_type":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeBody(t, rec)
	errObj := body["error"].(map[string]any)
	assert.Equal(t, string(gameerr.KindValidation), errObj["kind"])
}

func TestListSessionsEndpoint(t *testing.T) {
	f := newHandlerFixture()

	rec := f.do(t, http.MethodGet, "/api/sessions", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	sessions := body["sessions"].([]any)
	require.Len(t, sessions, 1)
	row := sessions[0].(map[string]any)
	assert.Equal(t, "MELLOW-GROOVE-07", row["code"])
	assert.Equal(t, float64(6), row["total_calls"])
	assert.Equal(t, float64(2), row["completed_calls"])
}

func TestListSessionsEndpointRejectsBadEventID(t *testing.T) {
	f := newHandlerFixture()

	rec := f.do(t, http.MethodGet, "/api/sessions?event_id=not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResolveCodeEndpoint(t *testing.T) {
	f := newHandlerFixture()

	rec := f.do(t, http.MethodGet, "/api/sessions/by-code/MELLOW-GROOVE-07", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, f.sessions.created.ID.String(), body["session_id"])
	assert.Equal(t, "ACTIVE", body["status"])

	rec = f.do(t, http.MethodGet, "/api/sessions/by-code/SMOOTH-GROOVE-99", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/sessions/by-code/notacode", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetStateEndpointPassesRole(t *testing.T) {
	f := newHandlerFixture()
	id := f.sessions.created.ID

	rec := f.do(t, http.MethodGet, "/api/sessions/"+id.String()+"/state?role=host", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, RoleHost, f.snapshots.gotRole)

	rec = f.do(t, http.MethodGet, "/api/sessions/"+id.String()+"/state", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, RoleJumbotron, f.snapshots.gotRole)

	rec = f.do(t, http.MethodGet, "/api/sessions/"+id.String()+"/state?role=producer", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdvanceEndpoint(t *testing.T) {
	f := newHandlerFixture()
	id := f.sessions.created.ID

	rec := f.do(t, http.MethodPost, "/api/sessions/"+id.String()+"/advance", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, float64(2), body["current_round"])
	assert.Equal(t, float64(1), body["current_call_index"])
	assert.Equal(t, "ACTIVE", body["status"])
}

func TestAdvanceEndpointConflict(t *testing.T) {
	f := newHandlerFixture()
	f.sequencer.advanceErr = gameerr.StateConflictf("session is already completed")
	id := f.sessions.created.ID

	rec := f.do(t, http.MethodPost, "/api/sessions/"+id.String()+"/advance", "")
	require.Equal(t, http.StatusConflict, rec.Code)

	body := decodeBody(t, rec)
	errObj := body["error"].(map[string]any)
	assert.Equal(t, string(gameerr.KindStateConflict), errObj["kind"])
	assert.Equal(t, "session is already completed", errObj["message"])
}

func TestCursorEndpointsRejectBadUUID(t *testing.T) {
	f := newHandlerFixture()

	for _, path := range []string{
		"/api/sessions/xyz/advance",
		"/api/sessions/xyz/previous",
		"/api/sessions/xyz/pause",
		"/api/sessions/xyz/resume",
	} {
		rec := f.do(t, http.MethodPost, path, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, "path %s", path)
	}
}

func TestPatchCallStatusEndpoint(t *testing.T) {
	f := newHandlerFixture()
	id := f.sessions.created.ID
	callID := f.sequencer.patched.ID

	rec := f.do(t, http.MethodPatch,
		"/api/sessions/"+id.String()+"/calls/"+callID.String()+"/status",
		`{"status":"ASKED"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.CallStatusAsked, f.sequencer.gotStatus)

	body := decodeBody(t, rec)
	assert.Equal(t, "ASKED", body["status"])
}

func TestPatchCallStatusEndpointNotFound(t *testing.T) {
	f := newHandlerFixture()
	f.sequencer.patchErr = gameerr.NotFoundf("call not found")
	id := f.sessions.created.ID

	rec := f.do(t, http.MethodPatch,
		"/api/sessions/"+id.String()+"/calls/"+uuid.NewString()+"/status",
		`{"status":"ASKED"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRecordScoresEndpoint(t *testing.T) {
	f := newHandlerFixture()
	id := f.sessions.created.ID

	rec := f.do(t, http.MethodPost,
		"/api/sessions/"+id.String()+"/calls/"+uuid.NewString()+"/scores",
		`{"judgments":[{"team_id":"`+uuid.NewString()+`","correct":true}]}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	events := body["score_events"].([]any)
	require.Len(t, events, 1)
}

func TestRecordScoresEndpointUnclassifiedErrorIs500(t *testing.T) {
	f := newHandlerFixture()
	f.scores.err = assert.AnError
	id := f.sessions.created.ID

	rec := f.do(t, http.MethodPost,
		"/api/sessions/"+id.String()+"/calls/"+uuid.NewString()+"/scores",
		`{"judgments":[]}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	// internal detail never leaks to the client
	body := decodeBody(t, rec)
	errObj := body["error"].(map[string]any)
	assert.Equal(t, "internal error", errObj["message"])
}
