package onebotaway

import (
	"fmt"
	"time"
)

// ArrivalRecord is one predicted or scheduled vehicle visit to a stop, as
// reported by the transit API collaborator. A zero PredictedMs means there is
// no live prediction and the scheduled time stands.
type ArrivalRecord struct {
	RouteID     string
	VehicleID   string
	ScheduledMs int64
	PredictedMs int64
}

type ArrivalStatus int

const (
	// StatusScheduled means no live prediction exists for the arrival.
	StatusScheduled ArrivalStatus = iota
	StatusOnTime
	StatusEarly
	StatusLate
)

// RankedArrival is an arrival that is still catchable, with fields derived
// against a single evaluation instant.
type RankedArrival struct {
	VehicleID   string
	EffectiveMs int64 // predicted if present, else scheduled
	MinutesAway int
	Status      ArrivalStatus
	OffsetMin   int // minutes late (>0) or early (<0) vs the timetable
	MustLeaveIn int // minutes until departure-for-the-stop time
}

// StatusLabel renders the on-time state the way it appears in messages.
func (a RankedArrival) StatusLabel() string {
	switch a.Status {
	case StatusScheduled:
		return "scheduled"
	case StatusLate:
		return fmt.Sprintf("%d min late", a.OffsetMin)
	case StatusEarly:
		return fmt.Sprintf("%d min early", -a.OffsetMin)
	default:
		return "on time"
	}
}

// RankArrivals filters raw arrival records down to those on the requested
// route that can still be caught after walking travelTimeMin to the stop,
// and computes the derived fields. All arithmetic uses the single `now`
// instant so a long list cannot skew across its own evaluation. The source
// order of surviving records is preserved; the upstream API returns them
// chronologically.
func RankArrivals(records []ArrivalRecord, routeID string, travelTimeMin int, now time.Time) []RankedArrival {
	nowMs := now.UnixMilli()
	travelMs := int64(travelTimeMin) * 60000
	ranked := make([]RankedArrival, 0, len(records))
	for _, rec := range records {
		if rec.RouteID != routeID {
			continue
		}
		effective := rec.PredictedMs
		if effective == 0 {
			effective = rec.ScheduledMs
		}
		if effective-travelMs <= nowMs {
			// Too late to reach the stop before the bus does.
			continue
		}
		ra := RankedArrival{
			VehicleID:   rec.VehicleID,
			EffectiveMs: effective,
			MinutesAway: int(floorDiv(effective-nowMs, 60000)),
			MustLeaveIn: int(floorDiv(effective-travelMs-nowMs, 60000)),
		}
		if rec.PredictedMs == 0 {
			ra.Status = StatusScheduled
		} else {
			ra.OffsetMin = int(floorDiv(effective-rec.ScheduledMs, 60000))
			switch {
			case ra.OffsetMin > 0:
				ra.Status = StatusLate
			case ra.OffsetMin < 0:
				ra.Status = StatusEarly
			default:
				ra.Status = StatusOnTime
			}
		}
		ranked = append(ranked, ra)
	}
	return ranked
}
