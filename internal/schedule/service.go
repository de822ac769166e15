package schedule

import (
	"context"
	"time"
)

// Service resolves "now" in the store's fixed local time zone and runs
// the resolver + generator pipeline. The store has one physical
// location, so the client's time zone never matters.
type Service struct {
	provider Provider
	config   ConfigProvider
	loc      *time.Location

	// nowFunc is swappable in tests.
	nowFunc func() time.Time
}

func NewService(provider Provider, config ConfigProvider, loc *time.Location) *Service {
	return &Service{
		provider: provider,
		config:   config,
		loc:      loc,
		nowFunc:  time.Now,
	}
}

// NowMinute is minutes since local midnight, store time.
func (s *Service) NowMinute() int {
	t := s.nowFunc().In(s.loc)
	return t.Hour()*60 + t.Minute()
}

// SlotsFor generates the offerable slot list for a mode at this
// instant. Pure recomputation every call; no state is kept.
func (s *Service) SlotsFor(ctx context.Context, mode Mode) ([]Slot, error) {
	hours, err := s.provider.GetTodayHours(ctx, mode)
	if err != nil {
		return nil, err
	}

	lt, err := s.config.GetLeadTimes(ctx)
	if err != nil {
		return nil, err
	}

	intervals := ResolveOpenIntervals(hours)
	return GenerateSlots(mode, s.NowMinute(), intervals, lt), nil
}
