package availability

import (
	"reflect"
	"testing"
)

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"disjoint before", Interval{540, 600}, Interval{600, 660}, false},
		{"disjoint after", Interval{660, 720}, Interval{600, 660}, false},
		{"partial left", Interval{570, 630}, Interval{600, 660}, true},
		{"partial right", Interval{630, 690}, Interval{600, 660}, true},
		{"contained", Interval{610, 650}, Interval{600, 660}, true},
		{"containing", Interval{540, 720}, Interval{600, 660}, true},
		{"identical", Interval{600, 660}, Interval{600, 660}, true},
		{"touching ends", Interval{540, 600}, Interval{600, 660}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("Overlaps(%v, %v) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestSubtract(t *testing.T) {
	work := []Interval{{540, 1080}}
	tests := []struct {
		name string
		free []Interval
		busy Interval
		want []Interval
	}{
		{"disjoint", work, Interval{300, 400}, []Interval{{540, 1080}}},
		{"left overlap", work, Interval{500, 600}, []Interval{{600, 1080}}},
		{"right overlap", work, Interval{1000, 1100}, []Interval{{540, 1000}}},
		{"contained splits", work, Interval{720, 840}, []Interval{{540, 720}, {840, 1080}}},
		{"covers all", work, Interval{0, 1440}, []Interval{}},
		{"empty busy", work, Interval{600, 600}, []Interval{{540, 1080}}},
		{"touches start", work, Interval{540, 600}, []Interval{{600, 1080}}},
		{"touches end", work, Interval{1020, 1080}, []Interval{{540, 1020}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Subtract(tt.free, tt.busy)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Subtract(%v, %v) = %v, want %v", tt.free, tt.busy, got, tt.want)
			}
		})
	}
}

func TestSubtractAll(t *testing.T) {
	free := []Interval{{540, 1080}}
	busy := []Interval{{720, 840}, {900, 930}}
	want := []Interval{{540, 720}, {840, 900}, {930, 1080}}
	got := SubtractAll(free, busy)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SubtractAll = %v, want %v", got, want)
	}
}
