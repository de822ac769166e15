package schedule

import (
	"fmt"
	"log"
)

// GenerateSlots turns open intervals, the current minute and the
// mode's lead/buffer into the offerable slot list. The first slot is
// always ASAP; the rest are 15-minute marks, deduplicated by display
// string in generation order.
//
// Per interval: if the store is not open yet, the earliest offerable
// minute is opening plus lead; mid-service it is now plus lead; an
// interval already past its close yields nothing. The latest offerable
// minute is close minus buffer.
func GenerateSlots(mode Mode, now int, intervals []Interval, lt LeadTimes) []Slot {
	lead, buffer := lt.For(mode)

	slots := []Slot{{Label: AsapLabel, Minute: -1}}
	seen := map[string]bool{AsapLabel: true}

	if len(intervals) == 0 {
		// Closed day: still offer advance-order times so the picker is
		// never empty. These are not checked against staffing.
		log.Printf("schedule: closed-day fallback slots generated (mode=%s now=%d)", mode, now)
		for i := 1; i <= fallbackSlotCount; i++ {
			minute := now + i*fallbackSlotSpacing
			appendSlot(&slots, seen, minute)
		}
		return slots
	}

	for _, iv := range intervals {
		var earliest int
		switch {
		case now < iv.Start:
			earliest = iv.Start + lead
		case now < iv.End:
			earliest = now + lead
		default:
			// Interval already over.
			continue
		}

		latest := iv.End - buffer
		for minute := ceilToGranularity(earliest); minute <= latest; minute += SlotGranularityMinutes {
			appendSlot(&slots, seen, minute)
		}
	}

	return slots
}

// Snap keeps the previously chosen slot only while it is still
// offered; otherwise the selection falls back to the list head.
func Snap(slots []Slot, current string) string {
	for _, s := range slots {
		if s.Label == current {
			return current
		}
	}
	return slots[0].Label
}

func Labels(slots []Slot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.Label
	}
	return out
}

func appendSlot(slots *[]Slot, seen map[string]bool, minute int) {
	label := FormatMinute(minute)
	if seen[label] {
		return
	}
	seen[label] = true
	*slots = append(*slots, Slot{Label: label, Minute: minute})
}

func ceilToGranularity(minute int) int {
	rem := minute % SlotGranularityMinutes
	if rem == 0 {
		return minute
	}
	return minute + SlotGranularityMinutes - rem
}

// FormatMinute renders a minute offset as a 12-hour clock label.
// Offsets past midnight collapse to the same clock time; the raw
// offset stays on the Slot for callers that need the real ordering.
func FormatMinute(minute int) string {
	minute %= MinutesPerDay

	hour := minute / 60
	min := minute % 60

	meridiem := "AM"
	if hour >= 12 {
		meridiem = "PM"
	}

	hour12 := hour % 12
	if hour12 == 0 {
		hour12 = 12
	}

	return fmt.Sprintf("%d:%02d %s", hour12, min, meridiem)
}
