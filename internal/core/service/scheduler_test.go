package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var businessHours = Window{StartHour: 9, EndHour: 16, TimesPerDay: 2, WeekdaysOnly: true}

func TestNewRandomScheduler(t *testing.T) {
	tests := []struct {
		name    string
		window  Window
		wantErr bool
	}{
		{
			name:   "business hours",
			window: businessHours,
		},
		{
			name:    "start after end",
			window:  Window{StartHour: 17, EndHour: 9, TimesPerDay: 1},
			wantErr: true,
		},
		{
			name:    "hour out of range",
			window:  Window{StartHour: 9, EndHour: 24, TimesPerDay: 1},
			wantErr: true,
		},
		{
			name:    "no runs",
			window:  Window{StartHour: 9, EndHour: 16, TimesPerDay: 0},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewRandomScheduler("test", tt.window, func(context.Context) {})
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, s)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, s)
			}
		})
	}
}

func TestRandomScheduler_PlanDayInsideWindow(t *testing.T) {
	s, err := NewRandomScheduler("test", businessHours, func(context.Context) {})
	require.NoError(t, err)

	monday := time.Date(2026, time.October, 12, 0, 0, 0, 0, time.UTC)
	for range 100 {
		runs := s.planDay(monday)
		require.Len(t, runs, 2)
		assert.False(t, runs[1].Before(runs[0]), "runs are sorted")
		for _, run := range runs {
			assert.GreaterOrEqual(t, run.Hour(), 9)
			assert.LessOrEqual(t, run.Hour(), 16)
			assert.Equal(t, monday.Day(), run.Day())
		}
	}
}

func TestRandomScheduler_SkipsWeekend(t *testing.T) {
	s, err := NewRandomScheduler("test", businessHours, func(context.Context) {})
	require.NoError(t, err)

	saturday := time.Date(2026, time.October, 17, 0, 0, 0, 0, time.UTC)
	assert.Empty(t, s.planDay(saturday))
	assert.Empty(t, s.planDay(saturday.AddDate(0, 0, 1)))
}

func TestRandomScheduler_Next(t *testing.T) {
	s, err := NewRandomScheduler("test", businessHours, func(context.Context) {})
	require.NoError(t, err)
	// first run at the start of the window, second an hour later
	offsets := []int{0, 3600}
	calls := 0
	s.intn = func(int) int {
		offset := offsets[calls%len(offsets)]
		calls++
		return offset
	}

	friday := time.Date(2026, time.October, 16, 8, 0, 0, 0, time.UTC)

	first := s.next(friday)
	assert.Equal(t, time.Date(2026, time.October, 16, 9, 0, 0, 0, time.UTC), first)

	second := s.next(first)
	assert.Equal(t, time.Date(2026, time.October, 16, 10, 0, 0, 0, time.UTC), second)

	// the weekend is skipped
	third := s.next(second)
	assert.Equal(t, time.Date(2026, time.October, 19, 9, 0, 0, 0, time.UTC), third)
}

func TestRandomScheduler_NextDropsPastRuns(t *testing.T) {
	s, err := NewRandomScheduler("test", businessHours, func(context.Context) {})
	require.NoError(t, err)
	s.intn = func(int) int { return 0 }

	afternoon := time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC)

	next := s.next(afternoon)
	assert.Equal(t, time.Date(2026, time.October, 16, 9, 0, 0, 0, time.UTC), next)
}

func TestRandomScheduler_RunStopsOnCancel(t *testing.T) {
	s, err := NewRandomScheduler("test", businessHours, func(context.Context) {})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}
