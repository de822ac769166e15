package schedule

// ResolveOpenIntervals converts the day's reported hours into open
// intervals. A closed day yields nil and callers degrade to the
// advance-order fallback. Periods are taken verbatim: the source is
// pre-normalized, so no merging or overlap correction happens here.
func ResolveOpenIntervals(today TodayHours) []Interval {
	if !today.IsOpen {
		return nil
	}

	intervals := make([]Interval, 0, len(today.Periods))
	for _, p := range today.Periods {
		intervals = append(intervals, Interval{Start: p.OpenMinute, End: p.CloseMinute})
	}
	return intervals
}
