package service

import (
	"context"
	"errors"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/rs/zerolog/log"
)

type Job func(ctx context.Context)

// Window describes when a random job may fire: TimesPerDay times between StartHour:00 and
// EndHour:59, optionally on weekdays only.
type Window struct {
	StartHour    int
	EndHour      int
	TimesPerDay  int
	WeekdaysOnly bool
}

// RandomScheduler fires a job at random times inside a daily window.
type RandomScheduler struct {
	name   string
	window Window
	job    Job
	intn   func(n int) int

	day  time.Time
	plan []time.Time
}

func NewRandomScheduler(name string, window Window, job Job) (*RandomScheduler, error) {
	if window.StartHour < 0 || window.EndHour > 23 || window.StartHour > window.EndHour {
		return nil, errors.New("invalid schedule hours")
	}

	if window.TimesPerDay < 1 {
		return nil, errors.New("schedule needs at least one run per day")
	}

	return &RandomScheduler{
		name:   name,
		window: window,
		job:    job,
		intn:   rand.IntN,
	}, nil
}

func (s *RandomScheduler) Run(ctx context.Context) {
	l := log.With().Str("job", s.name).Logger()
	ctx = l.WithContext(ctx)

	for {
		next := s.next(time.Now())

		l.Debug().Time("next", next).Msg("running schedule timer")
		select {
		case <-time.After(time.Until(next)):
			l.Info().Msg("running scheduled job")
			s.job(ctx)
		case <-ctx.Done():
			l.Debug().Msg("stopping schedule")
			return
		}
	}
}

// next pops the first planned run after now, planning following days as needed.
func (s *RandomScheduler) next(now time.Time) time.Time {
	for {
		for len(s.plan) > 0 {
			run := s.plan[0]
			s.plan = s.plan[1:]
			if run.After(now) {
				return run
			}
		}

		if s.day.IsZero() {
			s.day = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		} else {
			s.day = s.day.AddDate(0, 0, 1)
		}

		s.plan = s.planDay(s.day)
	}
}

func (s *RandomScheduler) planDay(day time.Time) []time.Time {
	if s.window.WeekdaysOnly && (day.Weekday() == time.Saturday || day.Weekday() == time.Sunday) {
		return nil
	}

	start := day.Add(time.Duration(s.window.StartHour) * time.Hour)
	span := int((time.Duration(s.window.EndHour-s.window.StartHour+1) * time.Hour) / time.Second)

	runs := make([]time.Time, 0, s.window.TimesPerDay)
	for range s.window.TimesPerDay {
		runs = append(runs, start.Add(time.Duration(s.intn(span))*time.Second))
	}

	slices.SortFunc(runs, func(a, b time.Time) int {
		return a.Compare(b)
	})

	return runs
}
