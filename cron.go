package onebotaway

import (
	"strconv"
	"strings"
)

// CronSpec is the trigger grid handed to the cron collaborator. It is an
// over-approximation: the grid tells the scheduler roughly when to invoke
// the gate, and ShouldFire enforces exact spacing at fire time. Seconds,
// day-of-month and month are always "every".
type CronSpec struct {
	Minutes    []int
	Hours      []int
	DaysOfWeek []int
}

// ProjectCron translates a schedule into its trigger grid. Hours are
// converted from the user's local clock to the server's, since that is the
// clock the cron runner ticks on.
func ProjectCron(s *Schedule, userOffsetMs, serverOffsetMs int64) CronSpec {
	spec := CronSpec{}

	interval := s.MinIntervalSec / 60
	if interval < 1 {
		interval = 1
	}
	for m := 0; m < 60; m += interval {
		spec.Minutes = append(spec.Minutes, m)
	}

	offsetHours := int((userOffsetMs - serverOffsetMs) / 3600000)
	for h := s.WindowStart.Hour; h < s.WindowEnd.Hour; h++ {
		spec.Hours = append(spec.Hours, wrapHour(h-offsetHours))
	}
	if len(spec.Hours) == 0 {
		// Window fits inside a single hour.
		spec.Hours = append(spec.Hours, wrapHour(s.WindowStart.Hour-offsetHours))
	}

	spec.DaysOfWeek = append(spec.DaysOfWeek, s.DaysOfWeek...)
	return spec
}

// Expression renders the spec as a six-field cron expression with a seconds
// column, the format the trigger collaborator consumes.
func (c CronSpec) Expression() string {
	return "0 " + joinInts(c.Minutes) + " " + joinInts(c.Hours) + " * * " + joinInts(c.DaysOfWeek)
}

func joinInts(vals []int) string {
	if len(vals) == 0 {
		return "*"
	}
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func wrapHour(h int) int {
	for h < 0 {
		h += 24
	}
	for h >= 24 {
		h -= 24
	}
	return h
}
