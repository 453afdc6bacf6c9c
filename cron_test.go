package onebotaway

import (
	"reflect"
	"testing"
)

func TestProjectCron(t *testing.T) {
	s := &Schedule{
		Stop:           "1_13460",
		Route:          "40_100236",
		WindowStart:    TimeOfDay{Hour: 7, Min: 0},
		WindowEnd:      TimeOfDay{Hour: 10, Min: 0},
		DaysOfWeek:     []int{1, 2, 3, 4, 5},
		MinIntervalSec: 600,
	}

	got := ProjectCron(s, 0, 0)
	want := CronSpec{
		Minutes:    []int{0, 10, 20, 30, 40, 50},
		Hours:      []int{7, 8, 9},
		DaysOfWeek: []int{1, 2, 3, 4, 5},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestProjectCronConvertsHoursToServerClock(t *testing.T) {
	s := &Schedule{
		WindowStart:    TimeOfDay{Hour: 7},
		WindowEnd:      TimeOfDay{Hour: 10},
		DaysOfWeek:     []int{2},
		MinIntervalSec: 600,
	}
	// User in PST, server on UTC: 07:00 local is 15:00 on the server.
	got := ProjectCron(s, pstMs, 0)
	if want := []int{15, 16, 17}; !reflect.DeepEqual(got.Hours, want) {
		t.Errorf("expected hours %v, got %v", want, got.Hours)
	}
}

func TestProjectCronWrapsMidnight(t *testing.T) {
	s := &Schedule{
		WindowStart:    TimeOfDay{Hour: 20},
		WindowEnd:      TimeOfDay{Hour: 23},
		DaysOfWeek:     []int{5},
		MinIntervalSec: 600,
	}
	got := ProjectCron(s, pstMs, 0)
	if want := []int{4, 5, 6}; !reflect.DeepEqual(got.Hours, want) {
		t.Errorf("expected hours %v, got %v", want, got.Hours)
	}
}

func TestProjectCronSingleHourWindow(t *testing.T) {
	s := &Schedule{
		WindowStart:    TimeOfDay{Hour: 7, Min: 15},
		WindowEnd:      TimeOfDay{Hour: 7, Min: 45},
		DaysOfWeek:     []int{3},
		MinIntervalSec: 300,
	}
	got := ProjectCron(s, 0, 0)
	if want := []int{7}; !reflect.DeepEqual(got.Hours, want) {
		t.Errorf("expected hours %v, got %v", want, got.Hours)
	}
	if want := []int{0, 5, 10, 15, 20, 25, 30, 35, 40, 45, 50, 55}; !reflect.DeepEqual(got.Minutes, want) {
		t.Errorf("expected minutes %v, got %v", want, got.Minutes)
	}
}

func TestProjectCronZeroIntervalTicksEveryMinute(t *testing.T) {
	s := &Schedule{
		WindowStart: TimeOfDay{Hour: 7},
		WindowEnd:   TimeOfDay{Hour: 8},
		DaysOfWeek:  []int{1},
	}
	got := ProjectCron(s, 0, 0)
	if len(got.Minutes) != 60 {
		t.Errorf("expected 60 minute slots, got %d", len(got.Minutes))
	}
}

func TestCronSpecExpression(t *testing.T) {
	spec := CronSpec{
		Minutes:    []int{0, 30},
		Hours:      []int{15, 16},
		DaysOfWeek: []int{1, 2, 3},
	}
	if got, want := spec.Expression(), "0 0,30 15,16 * * 1,2,3"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	empty := CronSpec{}
	if got, want := empty.Expression(), "0 * * * * *"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
