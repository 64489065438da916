package availability

import "time"

// CycleRow is one recurring-schedule entry with times already normalized to
// minutes from midnight.
type CycleRow struct {
	CycleStart time.Time
	WeekNumber int // 1 or 2
	DayOfWeek  int // ISO: 1=Monday .. 7=Sunday
	Start      int
	End        int
}

// CycleResolution describes which recurring block, if any, governs a date.
// Matches counts rows that matched the resolved (cycle, week, weekday) key;
// more than one means the schedule data is ambiguous and the last row won.
type CycleResolution struct {
	Block       *Interval
	CycleStart  time.Time
	WeekInCycle int
	Matches     int
}

// ISOWeekday returns the day of week with Monday=1 .. Sunday=7.
func ISOWeekday(d time.Time) int {
	wd := int(d.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// ResolveCycle finds the recurring block for date within the two-week
// alternating schedule. The active cycle is the most recent CycleStart on or
// before the date; within it, week 1 covers days 0-6 and 13-plus alternating:
// week = (days_since_start / 7) % 2 + 1. No matching row means the date has
// no recurring block, which is not an error.
func ResolveCycle(rows []CycleRow, date time.Time) CycleResolution {
	day := date.Truncate(24 * time.Hour)

	var active time.Time
	found := false
	for _, r := range rows {
		cs := r.CycleStart.Truncate(24 * time.Hour)
		if cs.After(day) {
			continue
		}
		if !found || cs.After(active) {
			active = cs
			found = true
		}
	}
	if !found {
		return CycleResolution{}
	}

	daysDiff := int(day.Sub(active).Hours() / 24)
	week := (daysDiff/7)%2 + 1
	weekday := ISOWeekday(day)

	res := CycleResolution{CycleStart: active, WeekInCycle: week}
	for _, r := range rows {
		if !r.CycleStart.Truncate(24 * time.Hour).Equal(active) {
			continue
		}
		if r.WeekNumber != week || r.DayOfWeek != weekday {
			continue
		}
		// Last-read wins on duplicates; the caller logs when Matches > 1.
		res.Block = &Interval{Start: r.Start, End: r.End}
		res.Matches++
	}
	return res
}
