package onebotaway

import (
	"fmt"
	"strings"
)

const fetchFailureReply = "Sorry, I couldn't reach the transit service. Try again in a bit."

const noScheduleForRunReply = ":cold_sweat: I can't find any notification schedules for the current time, " +
	"so I don't know what bus you are running to.\n" +
	"Sorry I couldn't help you. Please check your notification schedules."

// renderArrivalsReply renders the "bus" command reply: the stop header plus
// one line per arrival, at most take lines.
func renderArrivalsReply(info BusArrivalsInfo, take int, userOffsetMs int64) string {
	var b strings.Builder
	fmt.Fprintf(&b, ":bus: `%s` at :busstop:`%s`\n", info.RouteName, info.StopName)
	if len(info.Arrivals) == 0 {
		fmt.Fprintf(&b, "No arrivals in the next %d min :scream:", info.LookupSpanMin)
		return b.String()
	}
	for i, a := range info.Arrivals {
		if i >= take {
			break
		}
		fmt.Fprintf(&b, "*%d min away* %s - %s\n",
			a.MinutesAway, statusString(a), ClockString(a.EffectiveMs, userOffsetMs))
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderNotification renders the scheduled push. Only arrivals the user can
// still comfortably leave for (more than a minute of slack) are listed.
func renderNotification(info BusArrivalsInfo, userOffsetMs int64) string {
	noArrivals := fmt.Sprintf("No *%s* arrivals in the next *%d min* :scream:\n:confused: Good luck...",
		info.RouteName, info.LookupSpanMin)
	if len(info.Arrivals) == 0 {
		return noArrivals
	}
	lines := []string{fmt.Sprintf("Catching the :bus: %s?", info.RouteName)}
	for _, a := range info.Arrivals {
		if a.MustLeaveIn > 1 {
			lines = append(lines, fmt.Sprintf(":runner: in *%d min* - %s %s",
				a.MustLeaveIn, ClockString(a.EffectiveMs, userOffsetMs), statusString(a)))
		}
	}
	if len(lines) == 1 {
		return noArrivals
	}
	return strings.Join(lines, "\n")
}

// statusString is the parenthesized on-time state with its status emoji.
func statusString(a RankedArrival) string {
	switch a.Status {
	case StatusScheduled:
		return "(:black_circle:scheduled)"
	case StatusLate:
		return fmt.Sprintf("(:red_circle:%d min late)", a.OffsetMin)
	case StatusEarly:
		return fmt.Sprintf("(:large_blue_circle:%d min early)", -a.OffsetMin)
	default:
		return "(:white_circle: on time)"
	}
}

// renderScheduleList renders the "schedule" command reply.
func renderScheduleList(schedules []*Schedule) string {
	blocks := make([]string, 0, len(schedules))
	for _, s := range schedules {
		var b strings.Builder
		fmt.Fprintf(&b, "Stop: `%s`\n", s.Stop)
		fmt.Fprintf(&b, "Route: `%s`\n", s.Route)
		fmt.Fprintf(&b, "Window: `%s - %s`\n", s.WindowStart, s.WindowEnd)
		fmt.Fprintf(&b, "NotifyOn: `%s`\n", joinInts(s.DaysOfWeek))
		fmt.Fprintf(&b, "SecBetweenNotifications: `%d`\n", s.MinIntervalSec)
		fmt.Fprintf(&b, "TravelTime: `%d min`", s.TravelTimeMin)
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n:dollar::dollar::dollar::dollar::dollar:\n")
}
