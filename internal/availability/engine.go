package availability

import "time"

// Defaults applied when the owner's settings leave a knob unset. Overhang
// past the end of the working window defaults to off; owners opt in via the
// overhang_minutes setting.
const (
	DefaultStepMins = 30
	DefaultLeadMins = 20
)

// Policy carries the owner-level timing rules, parsed once from settings and
// passed in explicitly. All values are minutes.
type Policy struct {
	WorkStart    int
	WorkEnd      int
	PrepMins     int
	BufferMins   int
	StepMins     int
	OverhangMins int // allowed past WorkEnd, final period only
	LeadMins     int // minimum lead time for same-day slots
	WorkPriority bool
}

// Input is everything the engine needs for one (service, date) query. All
// rows are pre-fetched and owner-scoped by the caller; the engine performs
// no I/O and mutates nothing.
type Input struct {
	Date         time.Time
	DurationMins int
	Schedule     []CycleRow
	Events       []Interval
	Bookings     []Interval // raw booked ranges, padding applied here
	Blocked      bool
	Now          *time.Time // optional; enables the same-day lead filter
	Policy       Policy
}

type Result struct {
	Slots   []string `json:"slots"`
	Message string   `json:"message,omitempty"`
}

// BuildBusyIntervals pads every booking with the prep/buffer reservation:
// the calendar actually blocks [start-prep, end+buffer). Recurring blocks and
// one-off events are external busy time and get no padding. Intervals are not
// merged; the generator checks candidates pairwise.
func BuildBusyIntervals(bookings []Interval, prep, buffer int) []Interval {
	out := make([]Interval, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, Interval{Start: b.Start - prep, End: b.End + buffer})
	}
	return out
}

// Compute runs the full pipeline: blocked-date short circuit, cycle
// resolution, busy-interval construction, slot generation, and the past-time
// filter. The returned CycleResolution lets the caller log ambiguous
// schedule data (Matches > 1) with request context.
func Compute(in Input) (Result, CycleResolution) {
	if in.Blocked {
		return Result{Slots: []string{}, Message: "Date is blocked"}, CycleResolution{}
	}

	cycle := ResolveCycle(in.Schedule, in.Date)
	p := in.Policy
	step := p.StepMins
	if step <= 0 {
		step = DefaultStepMins
	}

	busy := BuildBusyIntervals(in.Bookings, p.PrepMins, p.BufferMins)
	work := Interval{Start: p.WorkStart, End: p.WorkEnd}
	var periods []Interval

	if p.WorkPriority {
		// Work time wins: the recurring block is just another busy interval
		// over the whole window.
		periods = []Interval{work}
		if cycle.Block != nil {
			busy = append(busy, *cycle.Block)
		}
		busy = append(busy, in.Events...)
	} else {
		// Study time wins: carve the recurring block and the one-off events
		// out of the window, then walk what remains. They stay on the busy
		// list too: carving only bounds candidates inside the window, and
		// the final period's overhang must not spill into a block or event
		// that truncates the end of the day.
		periods = []Interval{work}
		if cycle.Block != nil {
			periods = Subtract(periods, *cycle.Block)
			busy = append(busy, *cycle.Block)
		}
		periods = SubtractAll(periods, in.Events)
		busy = append(busy, in.Events...)
	}

	total := p.PrepMins + in.DurationMins + p.BufferMins
	slots := []string{}
	for i, period := range periods {
		limit := period.End
		if i == len(periods)-1 {
			limit += p.OverhangMins
		}
		for t := period.Start; t < period.End; t += step {
			end := t + total
			if end > limit {
				break
			}
			candidate := Interval{Start: t, End: end}
			free := true
			for _, b := range busy {
				if candidate.Overlaps(b) {
					free = false
					break
				}
			}
			if !free {
				continue
			}
			// The time shown to the client is the post-prep start.
			slots = append(slots, FormatHHMM(t+p.PrepMins))
		}
	}
	if in.Now != nil && sameDate(*in.Now, in.Date) {
		slots = FilterPastSlots(slots, in.Now.Hour()*60+in.Now.Minute(), p.LeadMins)
	}
	return Result{Slots: slots}, cycle
}

// FilterPastSlots drops same-day slots that start at or before now+lead. It
// is a minimum lead-time guard, not a strict after-now cutoff.
func FilterPastSlots(slots []string, nowMins, leadMins int) []string {
	out := []string{}
	for _, s := range slots {
		start, err := ParseHHMM(s)
		if err != nil {
			continue
		}
		if start <= nowMins+leadMins {
			continue
		}
		out = append(out, s)
	}
	return out
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
