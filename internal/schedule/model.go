package schedule

// Mode is the fulfilment mode an order is placed for.
type Mode string

const (
	ModeCollection Mode = "collection"
	ModeDelivery   Mode = "delivery"
)

func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeCollection, ModeDelivery:
		return Mode(s), true
	}
	return "", false
}

// Slot timing constants. All times are minutes since local midnight in
// the store's own time zone; a close past 1440 crosses midnight.
const (
	SlotGranularityMinutes = 15
	MinutesPerDay          = 1440

	// Closed-day fallback: advance-order slots offered when the store
	// reports closed for the whole day.
	fallbackSlotCount   = 8
	fallbackSlotSpacing = 30
)

// AsapLabel is always the first offerable slot.
const AsapLabel = "ASAP"

// OpeningPeriod is one open/close span for a day. CloseMinute may
// exceed 1440 to represent service running past midnight.
type OpeningPeriod struct {
	OpenMinute  int `json:"open_minute"`
	CloseMinute int `json:"close_minute"`
}

// TodayHours is the schedule source's verdict for the current day and
// fulfilment mode.
type TodayHours struct {
	IsOpen  bool            `json:"is_open"`
	Periods []OpeningPeriod `json:"periods"`
}

// Interval is an open span slots are generated within.
type Interval struct {
	Start int
	End   int
}

// LeadTimes carries the per-mode prep lead and pre-close buffer.
type LeadTimes struct {
	CollectionLeadMinutes   int `json:"collection_lead_minutes"`
	DeliveryLeadMinutes     int `json:"delivery_lead_minutes"`
	CollectionBufferMinutes int `json:"collection_buffer_minutes"`
	DeliveryBufferMinutes   int `json:"delivery_buffer_minutes"`
}

// For returns the lead and buffer for a mode.
func (lt LeadTimes) For(mode Mode) (lead, buffer int) {
	if mode == ModeDelivery {
		return lt.DeliveryLeadMinutes, lt.DeliveryBufferMinutes
	}
	return lt.CollectionLeadMinutes, lt.CollectionBufferMinutes
}

// Slot is one offerable fulfilment time. Minute is the raw offset from
// local midnight (may exceed 1440 for spans crossing midnight); the
// ASAP slot carries -1.
type Slot struct {
	Label  string `json:"label"`
	Minute int    `json:"minute"`
}
