package availability

import "sort"

// Interval is a half-open [Start, End) time range in minutes from midnight.
type Interval struct {
	Start int
	End   int
}

// Overlaps reports whether two half-open intervals intersect.
// [a,b) overlaps [c,d) iff a < d && c < b.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.End && other.Start < iv.End
}

func (iv Interval) empty() bool { return iv.End <= iv.Start }

// Subtract removes busy from each interval in free, splitting where busy is
// fully contained. The result is sorted and contains no empty intervals.
func Subtract(free []Interval, busy Interval) []Interval {
	if busy.empty() {
		return free
	}
	out := make([]Interval, 0, len(free)+1)
	for _, f := range free {
		if !f.Overlaps(busy) {
			out = append(out, f)
			continue
		}
		if left := (Interval{f.Start, busy.Start}); !left.empty() {
			out = append(out, left)
		}
		if right := (Interval{busy.End, f.End}); !right.empty() {
			out = append(out, right)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

// SubtractAll applies Subtract for every busy interval in turn.
func SubtractAll(free []Interval, busy []Interval) []Interval {
	for _, b := range busy {
		free = Subtract(free, b)
	}
	return free
}
