package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/waxgig/crateplay/go/internal/game/gameerr"
	"github.com/waxgig/crateplay/go/internal/game/scoring"
	"github.com/waxgig/crateplay/go/internal/game/session"
	"github.com/waxgig/crateplay/go/internal/models"
	"github.com/waxgig/crateplay/go/internal/sessioncode"
)

// SessionAPI is the slice of the session app the gateway drives.
type SessionAPI interface {
	CreateSession(ctx context.Context, req session.CreateSessionRequest) (*models.Session, error)
	GetSessionByCode(ctx context.Context, code string) (*models.Session, error)
	ListSessions(ctx context.Context, eventID *uuid.UUID) ([]models.Session, error)
	PauseSession(ctx context.Context, id uuid.UUID) (*models.Session, error)
	ResumeSession(ctx context.Context, id uuid.UUID) (*models.Session, error)
}

// SequencerAPI is the slice of the call app the gateway drives.
type SequencerAPI interface {
	Advance(ctx context.Context, sessionID uuid.UUID) (*models.Session, error)
	Previous(ctx context.Context, sessionID uuid.UUID) (*models.Session, error)
	PatchStatus(ctx context.Context, sessionID, callID uuid.UUID, target models.CallStatus) (*models.Call, error)
	CallCounts(ctx context.Context, sessionID uuid.UUID) (total, completed int, err error)
}

// ScoringAPI is the slice of the scoring app the gateway drives.
type ScoringAPI interface {
	RecordScores(ctx context.Context, sessionID, callID uuid.UUID, req scoring.ScoreRequest) ([]models.ScoreEvent, error)
}

// SnapshotProvider builds role-filtered session snapshots.
type SnapshotProvider interface {
	Project(ctx context.Context, sessionID uuid.UUID, role Role) (*SessionSnapshot, error)
}

// Handler serves the polling HTTP API for all three roles.
type Handler struct {
	sessions  SessionAPI
	sequencer SequencerAPI
	scores    ScoringAPI
	snapshots SnapshotProvider
}

// NewHandler creates a new gateway handler.
func NewHandler(sessions SessionAPI, sequencer SequencerAPI, scores ScoringAPI, snapshots SnapshotProvider) *Handler {
	return &Handler{
		sessions:  sessions,
		sequencer: sequencer,
		scores:    scores,
		snapshots: snapshots,
	}
}

// Register mounts every route on the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/sessions", h.handleCreateSession)
	mux.HandleFunc("GET /api/sessions", h.handleListSessions)
	mux.HandleFunc("GET /api/sessions/by-code/{code}", h.handleResolveCode)
	mux.HandleFunc("GET /api/sessions/{id}/state", h.handleGetState)
	mux.HandleFunc("POST /api/sessions/{id}/advance", h.handleAdvance)
	mux.HandleFunc("POST /api/sessions/{id}/previous", h.handlePrevious)
	mux.HandleFunc("POST /api/sessions/{id}/pause", h.handlePause)
	mux.HandleFunc("POST /api/sessions/{id}/resume", h.handleResume)
	mux.HandleFunc("PATCH /api/sessions/{id}/calls/{callID}/status", h.handlePatchCallStatus)
	mux.HandleFunc("POST /api/sessions/{id}/calls/{callID}/scores", h.handleRecordScores)
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req session.CreateSessionRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeError(w, err)
		return
	}
	s, err := h.sessions.CreateSession(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"session_id": s.ID.String(),
		"code":       s.Code,
	})
}

func (h *Handler) handleListSessions(w http.ResponseWriter, r *http.Request) {
	var eventID *uuid.UUID
	if raw := r.URL.Query().Get("event_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, gameerr.Validationf("invalid event_id %q", raw))
			return
		}
		eventID = &id
	}

	sessions, err := h.sessions.ListSessions(r.Context(), eventID)
	if err != nil {
		writeError(w, err)
		return
	}

	summaries := make([]SessionSummary, 0, len(sessions))
	for _, s := range sessions {
		total, completed, err := h.sequencer.CallCounts(r.Context(), s.ID)
		if err != nil {
			writeError(w, err)
			return
		}
		summary := SessionSummary{
			SessionID:      s.ID.String(),
			Code:           s.Code,
			GameType:       string(s.GameType),
			Status:         string(s.Status),
			RoundCount:     s.RoundCount,
			CurrentRound:   s.CurrentRound,
			TotalCalls:     total,
			CompletedCalls: completed,
		}
		if s.EventID != nil {
			id := s.EventID.String()
			summary.EventID = &id
		}
		summaries = append(summaries, summary)
	}
	writeJSON(w, http.StatusOK, map[string]any{"sessions": summaries})
}

// handleResolveCode turns the code a host reads out to the room into the
// session id the pollers address from then on.
func (h *Handler) handleResolveCode(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if !sessioncode.Valid(code) {
		writeError(w, gameerr.Validationf("malformed session code %q", code))
		return
	}
	s, err := h.sessions.GetSessionByCode(r.Context(), code)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"session_id": s.ID.String(),
		"code":       s.Code,
		"status":     string(s.Status),
	})
}

func (h *Handler) handleGetState(w http.ResponseWriter, r *http.Request) {
	sessionID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	role, err := ParseRole(r.URL.Query().Get("role"))
	if err != nil {
		writeError(w, err)
		return
	}
	snapshot, err := h.snapshots.Project(r.Context(), sessionID, role)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (h *Handler) handleAdvance(w http.ResponseWriter, r *http.Request) {
	h.handleCursorOp(w, r, h.sequencer.Advance)
}

func (h *Handler) handlePrevious(w http.ResponseWriter, r *http.Request) {
	h.handleCursorOp(w, r, h.sequencer.Previous)
}

func (h *Handler) handlePause(w http.ResponseWriter, r *http.Request) {
	h.handleCursorOp(w, r, h.sessions.PauseSession)
}

func (h *Handler) handleResume(w http.ResponseWriter, r *http.Request) {
	h.handleCursorOp(w, r, h.sessions.ResumeSession)
}

func (h *Handler) handleCursorOp(w http.ResponseWriter, r *http.Request, op func(context.Context, uuid.UUID) (*models.Session, error)) {
	sessionID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	s, err := op(r.Context(), sessionID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"session_id":           s.ID.String(),
		"status":               string(s.Status),
		"current_round":        s.CurrentRound,
		"current_call_index":   s.CurrentCallIndex,
		"countdown_started_at": s.CountdownStartedAt,
		"paused_at":            s.PausedAt,
		"paused_remaining_sec": s.PausedRemainingSec,
	})
}

func (h *Handler) handlePatchCallStatus(w http.ResponseWriter, r *http.Request) {
	sessionID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	callID, err := pathUUID(r, "callID")
	if err != nil {
		writeError(w, err)
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r.Body, &body); err != nil {
		writeError(w, err)
		return
	}

	c, err := h.sequencer.PatchStatus(r.Context(), sessionID, callID, models.CallStatus(body.Status))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"call_id":     c.ID.String(),
		"status":      string(c.Status),
		"revealed_at": c.RevealedAt,
		"scored_at":   c.ScoredAt,
	})
}

func (h *Handler) handleRecordScores(w http.ResponseWriter, r *http.Request) {
	sessionID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	callID, err := pathUUID(r, "callID")
	if err != nil {
		writeError(w, err)
		return
	}

	var req scoring.ScoreRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeError(w, err)
		return
	}

	events, err := h.scores.RecordScores(r.Context(), sessionID, callID, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"score_events": events})
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, gameerr.Validationf("invalid %s in path", name)
	}
	return id, nil
}

func decodeJSON(body io.Reader, dst any) error {
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		return gameerr.Validationf("invalid request body: %v", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, err error) {
	kind := gameerr.KindOf(err)

	var status int
	switch kind {
	case gameerr.KindValidation:
		status = http.StatusBadRequest
	case gameerr.KindStateConflict:
		status = http.StatusConflict
	case gameerr.KindNotFound:
		status = http.StatusNotFound
	default:
		status = http.StatusInternalServerError
	}

	// conflicts and misses are routine during polling; only store failures
	// are worth a severe log line
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("request failed")
	}

	var message string
	var gameErr *gameerr.Error
	if errors.As(err, &gameErr) {
		message = gameErr.Message
	} else {
		message = "internal error"
	}

	writeJSON(w, status, map[string]any{
		"error": map[string]string{
			"kind":    string(kind),
			"message": message,
		},
	})
}
