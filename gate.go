package onebotaway

import "time"

// ShouldFire decides whether a scheduled notification should go out now.
// The checks, highest priority first: a run in progress suppresses all
// scheduled pushes, then today's skip state, then the schedule window, then
// the minimum spacing since the last fire. The decision does not record a
// fire; callers must invoke RecordFire immediately after a successful send
// so spacing is enforced at most once per interval.
func (s *Schedule) ShouldFire(runActive bool, instant time.Time, userOffsetMs, serverOffsetMs int64) bool {
	if runActive {
		return false
	}
	today := LocalDate(instant, userOffsetMs)
	if s.skippedOn(today) {
		return false
	}
	if !s.ActiveAt(instant, userOffsetMs, serverOffsetMs) {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.lastFiredAt.IsZero() {
		next := s.lastFiredAt.Add(time.Duration(s.MinIntervalSec) * time.Second)
		if instant.Before(next) {
			return false
		}
	}
	return true
}

// RecordFire marks a successful notification send.
func (s *Schedule) RecordFire(instant time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastFiredAt = instant
}

// RecordSkip suppresses further notifications for the rest of the user-local
// day containing instant.
func (s *Schedule) RecordSkip(instant time.Time, userOffsetMs int64) {
	today := LocalDate(instant, userOffsetMs)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneSkipsLocked(today)
	for _, d := range s.skipDates {
		if d.Equal(today) {
			return
		}
	}
	s.skipDates = append(s.skipDates, today)
}

// skippedOn reports whether the given user-local date is marked as skipped,
// lazily pruning dates that are already in the past.
func (s *Schedule) skippedOn(today time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneSkipsLocked(today)
	for _, d := range s.skipDates {
		if d.Equal(today) {
			return true
		}
	}
	return false
}

func (s *Schedule) pruneSkipsLocked(today time.Time) {
	kept := s.skipDates[:0]
	for _, d := range s.skipDates {
		if !d.Before(today) {
			kept = append(kept, d)
		}
	}
	s.skipDates = kept
}
