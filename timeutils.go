package onebotaway

import (
	"fmt"
	"time"
)

const dayMs = int64(24 * 60 * 60 * 1000)

// LocalTimeOfDayMs returns the milliseconds elapsed since local midnight for
// instant, where "local" means the user's timezone rather than the process
// timezone. Both offsets are milliseconds east of UTC. The result is always
// in [0, 86_400_000).
func LocalTimeOfDayMs(instant time.Time, userOffsetMs, serverOffsetMs int64) int64 {
	serverLocal := instant.UnixMilli() + serverOffsetMs
	t := mod(serverLocal, dayMs)
	t += userOffsetMs - serverOffsetMs
	// The two offsets can be more than a day apart (user at +14:00, server
	// west of UTC-10), so wrap with the floored modulo rather than a single
	// add or subtract.
	return mod(t, dayMs)
}

// LocalWeekday returns the user-local day of week for instant
// (0=Sunday .. 6=Saturday).
func LocalWeekday(instant time.Time, userOffsetMs int64) int {
	shifted := time.UnixMilli(instant.UnixMilli() + userOffsetMs).UTC()
	return int(shifted.Weekday())
}

// LocalDate returns the user-local calendar date of instant, normalized to
// midnight UTC so dates compare with ==.
func LocalDate(instant time.Time, userOffsetMs int64) time.Time {
	shifted := time.UnixMilli(instant.UnixMilli() + userOffsetMs).UTC()
	y, m, d := shifted.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ClockString formats an epoch-milliseconds timestamp as HH:MM on the user's
// local clock.
func ClockString(epochMs, userOffsetMs int64) string {
	shifted := time.UnixMilli(epochMs + userOffsetMs).UTC()
	return fmt.Sprintf("%02d:%02d", shifted.Hour(), shifted.Minute())
}

// mod is the floored modulo; the result has the sign of b.
func mod(a, b int64) int64 {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// floorDiv divides rounding toward negative infinity, matching how arrival
// offsets are reported (a bus 30s early counts as 1 min early).
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
