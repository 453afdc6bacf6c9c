package onebotaway

import (
	"strings"
	"testing"
	"time"
)

func weekdayCommute() *Schedule {
	return &Schedule{
		Stop:           "1_13460",
		Route:          "40_100236",
		WindowStart:    TimeOfDay{Hour: 7, Min: 30},
		WindowEnd:      TimeOfDay{Hour: 10, Min: 0},
		DaysOfWeek:     []int{1, 2, 3, 4, 5},
		MinIntervalSec: 550,
		TravelTimeMin:  5,
	}
}

func TestScheduleValidate(t *testing.T) {
	if err := weekdayCommute().Validate(); err != nil {
		t.Fatalf("valid schedule rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Schedule)
		want   string
	}{
		{"missing stop", func(s *Schedule) { s.Stop = "" }, "stop and a route"},
		{"overnight window", func(s *Schedule) { s.WindowStart = TimeOfDay{Hour: 22}; s.WindowEnd = TimeOfDay{Hour: 6} }, "overnight"},
		{"empty days", func(s *Schedule) { s.DaysOfWeek = nil }, "daysOfWeek"},
		{"day out of range", func(s *Schedule) { s.DaysOfWeek = []int{1, 7} }, "out of range"},
		{"negative interval", func(s *Schedule) { s.MinIntervalSec = -1 }, "minIntervalSec"},
		{"negative travel time", func(s *Schedule) { s.TravelTimeMin = -1 }, "travelTimeMin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := weekdayCommute()
			tt.mutate(s)
			err := s.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestScheduleActiveAt(t *testing.T) {
	s := weekdayCommute()
	// 2026-09-01 is a Tuesday; 16:00 UTC is 08:00 PST.
	tests := []struct {
		name    string
		instant time.Time
		active  bool
	}{
		{"tuesday 08:00", time.Date(2026, 9, 1, 16, 0, 0, 0, time.UTC), true},
		{"tuesday 07:30 window start", time.Date(2026, 9, 1, 15, 30, 0, 0, time.UTC), true},
		{"tuesday 10:00 window end", time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC), false},
		{"tuesday 07:29", time.Date(2026, 9, 1, 15, 29, 0, 0, time.UTC), false},
		{"saturday 08:00", time.Date(2026, 9, 5, 16, 0, 0, 0, time.UTC), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.ActiveAt(tt.instant, pstMs, 0); got != tt.active {
				t.Errorf("expected %v, got %v", tt.active, got)
			}
		})
	}
}

// The server's own timezone must not leak into window decisions.
func TestScheduleActiveAtServerOffset(t *testing.T) {
	s := weekdayCommute()
	instant := time.Date(2026, 9, 1, 16, 0, 0, 0, time.UTC) // 08:00 PST
	for _, serverOffset := range []int64{0, 2 * hourMs, -5 * hourMs} {
		if !s.ActiveAt(instant, pstMs, serverOffset) {
			t.Errorf("serverOffset %d changed the decision", serverOffset)
		}
	}
}
