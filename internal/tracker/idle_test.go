package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeIdleSubmission(t *testing.T) {
	tests := []struct {
		name        string
		triggerMs   int64
		start       int64
		grace       int
		wantEnd     int64
		wantWorked  int64
		wantMinutes int
	}{
		{"two minutes", 1_300_000, 1000, 180, 1120, 120, 2},
		{"sub-second trigger floors", 1_300_999, 1000, 180, 1120, 120, 2},
		{"exactly one minute", 1_240_000, 1000, 180, 1060, 60, 1},
		{"just under a minute", 1_239_000, 1000, 180, 1059, 59, 0},
		{"end precedes start", 1_010_000, 1000, 180, 830, -170, 0},
		{"zero grace", 1_600_000, 1000, 0, 1600, 600, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeIdleSubmission(tt.triggerMs, tt.start, tt.grace)
			assert.Equal(t, tt.wantEnd, got.EndTime)
			assert.Equal(t, tt.wantWorked, got.DurationWorked)
			assert.Equal(t, tt.wantMinutes, got.MinutesWorked)
			assert.Equal(t, tt.grace, got.IdleGraceSeconds)
		})
	}
}

func TestFloorDiv(t *testing.T) {
	assert.Equal(t, int64(1), floorDiv(1999, 1000))
	assert.Equal(t, int64(-2), floorDiv(-1001, 1000))
	assert.Equal(t, int64(-1), floorDiv(-1000, 1000))
}
