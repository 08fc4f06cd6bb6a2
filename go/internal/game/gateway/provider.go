package gateway

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/waxgig/crateplay/go/internal/models"
)

// answerKeys are the prompt fields that must never reach a display before
// the host reveals the answer.
var answerKeys = []string{"answer", "answer_key", "accepted_answers"}

// SessionReader provides session and round state for projection.
type SessionReader interface {
	GetSession(ctx context.Context, id uuid.UUID) (*models.Session, error)
	ListRounds(ctx context.Context, sessionID uuid.UUID) ([]models.Round, error)
}

// CallReader provides the session's calls for projection.
type CallReader interface {
	ListCalls(ctx context.Context, sessionID uuid.UUID) ([]models.Call, error)
}

// LeaderboardReader provides the derived standings.
type LeaderboardReader interface {
	Leaderboard(ctx context.Context, sessionID uuid.UUID) ([]models.LeaderboardEntry, error)
}

// Provider projects session state into role-filtered snapshots. It is a
// pure read over the stores, safe to call at any polling frequency.
type Provider struct {
	sessions SessionReader
	calls    CallReader
	scores   LeaderboardReader
	clock    clockwork.Clock
}

// NewProvider creates a new snapshot provider.
func NewProvider(sessions SessionReader, calls CallReader, scores LeaderboardReader, clock clockwork.Clock) *Provider {
	return &Provider{
		sessions: sessions,
		calls:    calls,
		scores:   scores,
		clock:    clock,
	}
}

// Project builds the snapshot for one role. If the cursor points at a call
// that already reached a terminal status, the snapshot falls forward to the
// next pending call so the host is never shown a dead slot.
func (p *Provider) Project(ctx context.Context, sessionID uuid.UUID, role Role) (*SessionSnapshot, error) {
	s, err := p.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	rounds, err := p.sessions.ListRounds(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	calls, err := p.calls.ListCalls(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	standings, err := p.scores.Leaderboard(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	snapshot := &SessionSnapshot{
		SessionID:        s.ID.String(),
		Code:             s.Code,
		GameType:         string(s.GameType),
		Status:           string(s.Status),
		RoundCount:       s.RoundCount,
		CurrentRound:     s.CurrentRound,
		CurrentCallIndex: s.CurrentCallIndex,
		Timer: TimerView{
			TargetGapSeconds:   s.TargetGapSeconds,
			CountdownStartedAt: s.CountdownStartedAt,
			PausedAt:           s.PausedAt,
			SecondsRemaining:   s.SecondsRemaining(p.clock.Now()),
		},
		TotalCalls: len(calls),
	}
	if s.EventID != nil {
		eventID := s.EventID.String()
		snapshot.EventID = &eventID
	}

	for _, r := range rounds {
		view := RoundView{
			RoundNumber:  r.RoundNumber,
			Category:     r.Category,
			CallsInRound: r.CallsInRound,
			Status:       string(r.Status),
		}
		if role == RoleJumbotron && !s.Visibility.ShowRoundCategory {
			view.Category = ""
		}
		snapshot.Rounds = append(snapshot.Rounds, view)
	}

	for _, c := range calls {
		if c.Status.Terminal() {
			snapshot.CompletedCalls++
		}
	}

	if current := resolveCurrentCall(s, calls); current != nil {
		snapshot.CurrentCall = p.callView(s, current, role)
	}

	if role != RoleJumbotron || s.Visibility.ShowLeaderboard {
		for _, entry := range standings {
			snapshot.Leaderboard = append(snapshot.Leaderboard, TeamStanding{
				TeamID:        entry.TeamID.String(),
				Name:          entry.Name,
				Active:        entry.Active,
				TotalPoints:   entry.TotalPoints,
				FirstScoredAt: entry.FirstScoredAt,
			})
		}
	}

	return snapshot, nil
}

func (p *Provider) callView(s *models.Session, c *models.Call, role Role) *CallView {
	view := &CallView{
		CallID:      c.ID.String(),
		RoundNumber: c.RoundNumber,
		CallIndex:   c.CallIndex,
		GlobalIndex: c.GlobalIndex,
		Status:      string(c.Status),
		Prompt:      c.Prompt,
		RevealedAt:  c.RevealedAt,
		ScoredAt:    c.ScoredAt,
	}
	if role == RoleJumbotron {
		view.Prompt = redactPrompt(c, s.Visibility)
	}
	return view
}

// resolveCurrentCall finds the call the cursor addresses, falling forward to
// the next pending call when the addressed slot is already terminal.
func resolveCurrentCall(s *models.Session, calls []models.Call) *models.Call {
	var current *models.Call
	for i := range calls {
		c := &calls[i]
		if c.RoundNumber == s.CurrentRound && c.CallIndex == s.CurrentCallIndex+1 {
			current = c
			break
		}
	}
	if current == nil || !current.Status.Terminal() {
		return current
	}
	for i := range calls {
		c := &calls[i]
		if c.GlobalIndex > current.GlobalIndex && c.Status == models.CallStatusPending {
			return c
		}
	}
	return current
}

// redactPrompt strips the fields a jumbotron may not render: answer keys
// until the call is revealed, and artist/title per the session's visibility
// flags. Prompts that are not JSON objects are withheld entirely pre-reveal.
func redactPrompt(c *models.Call, flags models.VisibilityFlags) json.RawMessage {
	if len(c.Prompt) == 0 {
		return nil
	}

	revealed := c.Status == models.CallStatusAnswerRevealed || c.Status == models.CallStatusScored

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(c.Prompt, &fields); err != nil {
		if revealed {
			return c.Prompt
		}
		return nil
	}

	if !revealed {
		for _, key := range answerKeys {
			delete(fields, key)
		}
	}
	if !flags.ShowArtist {
		delete(fields, "artist")
	}
	if !flags.ShowTitle {
		delete(fields, "title")
	}

	out, err := json.Marshal(fields)
	if err != nil {
		return nil
	}
	return out
}
