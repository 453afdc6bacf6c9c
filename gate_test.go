package onebotaway

import (
	"testing"
	"time"
)

// Tuesday 2026-09-01 08:00 PST.
var inWindow = time.Date(2026, 9, 1, 16, 0, 0, 0, time.UTC)

func TestShouldFireRunSuppresses(t *testing.T) {
	s := weekdayCommute()
	if !s.ShouldFire(false, inWindow, pstMs, 0) {
		t.Fatal("expected fire inside window")
	}
	if s.ShouldFire(true, inWindow, pstMs, 0) {
		t.Fatal("active run must suppress scheduled fires")
	}
}

func TestShouldFireMinInterval(t *testing.T) {
	s := weekdayCommute() // minIntervalSec 550
	if !s.ShouldFire(false, inWindow, pstMs, 0) {
		t.Fatal("first fire should be allowed")
	}
	s.RecordFire(inWindow)

	tooSoon := inWindow.Add(549 * time.Second)
	if s.ShouldFire(false, tooSoon, pstMs, 0) {
		t.Error("fire allowed 1s before the interval elapsed")
	}
	exact := inWindow.Add(550 * time.Second)
	if !s.ShouldFire(false, exact, pstMs, 0) {
		t.Error("fire denied exactly at the interval boundary")
	}
}

func TestShouldFireOutsideWindow(t *testing.T) {
	s := weekdayCommute()
	evening := time.Date(2026, 9, 1, 4, 0, 0, 0, time.UTC) // 20:00 PST Monday
	if s.ShouldFire(false, evening, pstMs, 0) {
		t.Error("fire allowed outside the window")
	}
}

func TestRecordSkipSuppressesForTheDay(t *testing.T) {
	s := weekdayCommute()
	s.RecordSkip(inWindow, pstMs)
	if s.ShouldFire(false, inWindow, pstMs, 0) {
		t.Fatal("skip did not suppress the fire")
	}
	later := inWindow.Add(90 * time.Minute) // still Tuesday, still in window
	if s.ShouldFire(false, later, pstMs, 0) {
		t.Fatal("skip did not hold for the rest of the day")
	}
	// Wednesday 08:00 PST: the skip has lapsed.
	wednesday := inWindow.Add(24 * time.Hour)
	if !s.ShouldFire(false, wednesday, pstMs, 0) {
		t.Fatal("skip leaked into the next day")
	}
	if n := len(s.SkipDates()); n != 0 {
		t.Errorf("expected stale skip to be pruned, %d remain", n)
	}
}

func TestRecordSkipIsIdempotent(t *testing.T) {
	s := weekdayCommute()
	s.RecordSkip(inWindow, pstMs)
	s.RecordSkip(inWindow.Add(time.Hour), pstMs)
	if n := len(s.SkipDates()); n != 1 {
		t.Errorf("expected a single skip date, got %d", n)
	}
}

// A skip is keyed to the user-local date, not the server's.
func TestRecordSkipUsesUserLocalDate(t *testing.T) {
	s := weekdayCommute()
	// 02:00 UTC Wednesday is still Tuesday 18:00 PST.
	lateTuesday := time.Date(2026, 9, 2, 2, 0, 0, 0, time.UTC)
	s.RecordSkip(lateTuesday, pstMs)
	dates := s.SkipDates()
	if len(dates) != 1 || !dates[0].Equal(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected skip dates %v", dates)
	}
}
