package schedule

import "context"

// Provider is the schedule source: the day's opening periods for one
// fulfilment mode, in store-local minutes.
type Provider interface {
	GetTodayHours(ctx context.Context, mode Mode) (TodayHours, error)
}

// ConfigProvider supplies the store's lead-time configuration.
type ConfigProvider interface {
	GetLeadTimes(ctx context.Context) (LeadTimes, error)
}
