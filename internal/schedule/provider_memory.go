package schedule

import "context"

// InMemoryProvider serves a fixed schedule and lead-time set.
type InMemoryProvider struct {
	Hours map[Mode]TodayHours
	Lead  LeadTimes
}

func NewInMemoryProvider(hours map[Mode]TodayHours, lead LeadTimes) *InMemoryProvider {
	return &InMemoryProvider{Hours: hours, Lead: lead}
}

func (p *InMemoryProvider) GetTodayHours(ctx context.Context, mode Mode) (TodayHours, error) {
	return p.Hours[mode], nil
}

func (p *InMemoryProvider) GetLeadTimes(ctx context.Context) (LeadTimes, error) {
	return p.Lead, nil
}
