package onebotaway

import (
	"fmt"
	"sync"
	"time"
)

// TimeOfDay is a wall-clock time in the user's timezone.
type TimeOfDay struct {
	Hour int
	Min  int
}

func (t TimeOfDay) Ms() int64 {
	return int64(t.Hour)*3600000 + int64(t.Min)*60000
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Min)
}

// Schedule is a recurring notification window for one stop+route pair.
// lastFiredAt and skipDates are mutated for the life of the process and are
// guarded by mu; the schedule collection itself is owned by the Engine and
// never changes after startup.
type Schedule struct {
	Stop           string
	Route          string
	WindowStart    TimeOfDay
	WindowEnd      TimeOfDay
	DaysOfWeek     []int // 0=Sunday .. 6=Saturday
	MinIntervalSec int
	TravelTimeMin  int

	mu          sync.Mutex
	skipDates   []time.Time // user-local dates, normalized to midnight UTC
	lastFiredAt time.Time   // zero value means never fired
}

// Validate rejects schedules the engine cannot satisfy. Overnight windows
// (end at or before start) are unsupported.
func (s *Schedule) Validate() error {
	if s.Stop == "" || s.Route == "" {
		return fmt.Errorf("schedule must name a stop and a route")
	}
	if s.WindowStart.Ms() >= s.WindowEnd.Ms() {
		return fmt.Errorf("schedule %s/%s: window start %s must be before end %s (overnight windows are unsupported)",
			s.Stop, s.Route, s.WindowStart, s.WindowEnd)
	}
	if len(s.DaysOfWeek) == 0 {
		return fmt.Errorf("schedule %s/%s: daysOfWeek must not be empty", s.Stop, s.Route)
	}
	for _, d := range s.DaysOfWeek {
		if d < 0 || d > 6 {
			return fmt.Errorf("schedule %s/%s: day of week %d out of range 0-6", s.Stop, s.Route, d)
		}
	}
	if s.MinIntervalSec < 0 {
		return fmt.Errorf("schedule %s/%s: minIntervalSec must not be negative", s.Stop, s.Route)
	}
	if s.TravelTimeMin < 0 {
		return fmt.Errorf("schedule %s/%s: travelTimeMin must not be negative", s.Stop, s.Route)
	}
	return nil
}

// ActiveAt reports whether instant falls inside the schedule's time-of-day
// window on one of its active weekdays. The window is half-open [start, end).
func (s *Schedule) ActiveAt(instant time.Time, userOffsetMs, serverOffsetMs int64) bool {
	t := LocalTimeOfDayMs(instant, userOffsetMs, serverOffsetMs)
	if t < s.WindowStart.Ms() || t >= s.WindowEnd.Ms() {
		return false
	}
	day := LocalWeekday(instant, userOffsetMs)
	for _, d := range s.DaysOfWeek {
		if d == day {
			return true
		}
	}
	return false
}

// LastFiredAt returns the time of the last successful fire, or the zero time.
func (s *Schedule) LastFiredAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastFiredAt
}

// SkipDates returns a copy of the pending skip dates.
func (s *Schedule) SkipDates() []time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]time.Time, len(s.skipDates))
	copy(out, s.skipDates)
	return out
}
