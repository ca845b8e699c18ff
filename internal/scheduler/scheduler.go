// Package scheduler refreshes the feed at fixed local hours.
package scheduler

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"alznews/internal/aggregator"
)

type Scheduler struct {
	agg      *aggregator.Aggregator
	hours    []int
	location *time.Location
	log      *slog.Logger
}

// New builds a scheduler firing at the given hours in tz. An unknown
// timezone falls back to UTC.
func New(agg *aggregator.Aggregator, hours []int, tz string, log *slog.Logger) *Scheduler {
	location, err := time.LoadLocation(tz)
	if err != nil {
		log.Warn("unknown timezone, using UTC", "tz", tz, "error", err)
		location = time.UTC
	}

	hours = append([]int{}, hours...)
	sort.Ints(hours)

	return &Scheduler{agg: agg, hours: hours, location: location, log: log}
}

// Run blocks until ctx is cancelled, refreshing at each configured hour.
func (s *Scheduler) Run(ctx context.Context) {
	if len(s.hours) == 0 {
		s.log.Warn("no refresh hours configured, scheduler idle")
		<-ctx.Done()
		return
	}

	for {
		next := s.nextRun(time.Now().In(s.location))
		s.log.Info("next scheduled refresh", "at", next.Format(time.RFC3339))

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		s.refresh(ctx)
	}
}

// refresh drops caches and runs a full pass so every provider is refetched.
func (s *Scheduler) refresh(ctx context.Context) {
	s.log.Info("scheduled refresh starting")
	s.agg.ClearSourceCaches()
	s.agg.ClearScoreCache()

	runCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	if _, err := s.agg.GetArticles(runCtx, aggregator.Filter{}); err != nil {
		s.log.Error("scheduled refresh failed", "error", err)
	}
}

// nextRun returns the earliest configured hour strictly after now.
func (s *Scheduler) nextRun(now time.Time) time.Time {
	for _, hour := range s.hours {
		candidate := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, s.location)
		if candidate.After(now) {
			return candidate
		}
	}
	tomorrow := now.AddDate(0, 0, 1)
	return time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), s.hours[0], 0, 0, 0, s.location)
}
