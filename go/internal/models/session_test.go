package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecondsRemaining(t *testing.T) {
	started := time.Date(2026, 6, 5, 19, 30, 0, 0, time.UTC)
	remaining := 12

	tests := []struct {
		name    string
		session Session
		now     time.Time
		want    *int
	}{
		{
			name:    "pending session has no countdown",
			session: Session{Status: SessionStatusPending, TargetGapSeconds: 60},
			now:     started,
			want:    nil,
		},
		{
			name:    "active without a stamp has no countdown",
			session: Session{Status: SessionStatusActive, TargetGapSeconds: 60},
			now:     started,
			want:    nil,
		},
		{
			name: "active mid-countdown",
			session: Session{
				Status:             SessionStatusActive,
				TargetGapSeconds:   60,
				CountdownStartedAt: &started,
			},
			now:  started.Add(21 * time.Second),
			want: intPtr(t, 39),
		},
		{
			name: "active past the budget clamps to zero",
			session: Session{
				Status:             SessionStatusActive,
				TargetGapSeconds:   60,
				CountdownStartedAt: &started,
			},
			now:  started.Add(5 * time.Minute),
			want: intPtr(t, 0),
		},
		{
			name: "paused reads the frozen value",
			session: Session{
				Status:             SessionStatusPaused,
				TargetGapSeconds:   60,
				PausedRemainingSec: &remaining,
			},
			now:  started.Add(time.Hour),
			want: intPtr(t, 12),
		},
		{
			name:    "completed has no countdown",
			session: Session{Status: SessionStatusCompleted, TargetGapSeconds: 60, CountdownStartedAt: &started},
			now:     started,
			want:    nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.session.SecondsRemaining(tt.now)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestPacingTargetGap(t *testing.T) {
	p := PacingSettings{ResleeveSec: 15, LocateSec: 20, CueSec: 15, BufferSec: 10}
	assert.Equal(t, 60, p.TargetGapSeconds())
}

func intPtr(t *testing.T, v int) *int {
	t.Helper()
	return &v
}
