package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMatchIsLocked(t *testing.T) {
	now := time.Date(2025, 10, 4, 17, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		matchTime time.Time
		locked    bool
	}{
		{"61 minutes before kickoff", now.Add(61 * time.Minute), false},
		{"exactly 60 minutes before kickoff", now.Add(60 * time.Minute), true},
		{"59 minutes before kickoff", now.Add(59 * time.Minute), true},
		{"kickoff", now, true},
		{"after kickoff", now.Add(-2 * time.Hour), true},
		{"day before", now.Add(24 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Match{MatchTime: tt.matchTime}
			assert.Equal(t, tt.locked, m.IsLocked(now))
		})
	}
}
