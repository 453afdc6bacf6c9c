package onebotaway

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/rumit91/onebotaway/metrics"
	"github.com/rumit91/onebotaway/tracking"
)

// ErrFetchFailed wraps any failure of the three-step transit API pipeline.
// The engine never retries; the caller renders a generic failure message.
var ErrFetchFailed = errors.New("transit lookup failed")

// StopInfo and RouteInfo are the display names the transit API reports for
// the opaque stop/route identifiers.
type StopInfo struct {
	Name string
}

type RouteInfo struct {
	ShortName string
}

// ArrivalSource is the transit API collaborator.
type ArrivalSource interface {
	StopInfo(ctx context.Context, stopID string) (StopInfo, error)
	RouteInfo(ctx context.Context, routeID string) (RouteInfo, error)
	Arrivals(ctx context.Context, stopID string, spanMin int) ([]ArrivalRecord, error)
}

// Notifier is the chat delivery collaborator.
type Notifier interface {
	Send(channel, text string) error
}

// TriggerScheduler is the cron collaborator: it invokes fn at instants
// matching a six-field cron expression and supports cancellation.
type TriggerScheduler interface {
	Add(expr string, fn func()) (int, error)
	Remove(id int)
}

// BusRule selects which stop an on-demand "bus" lookup targets, depending on
// the time of day (e.g. the home stop before 11:00, the work stop after).
type BusRule struct {
	WindowStart   TimeOfDay
	WindowEnd     TimeOfDay
	Stop          string
	Route         string
	TravelTimeMin int
}

// ActiveAt reports whether instant falls inside the rule's window.
func (r BusRule) ActiveAt(instant time.Time, userOffsetMs, serverOffsetMs int64) bool {
	t := LocalTimeOfDayMs(instant, userOffsetMs, serverOffsetMs)
	return t >= r.WindowStart.Ms() && t < r.WindowEnd.Ms()
}

// BusArrivalsInfo is one evaluated lookup: resolved display names plus the
// ranked arrivals that are still catchable.
type BusArrivalsInfo struct {
	StopName      string
	RouteName     string
	LookupSpanMin int
	Arrivals      []RankedArrival
}

// Options wires an Engine together.
type Options struct {
	Schedules      []*Schedule
	BusRules       []BusRule
	Channel        string // chat channel scheduled pushes go to
	UserOffsetMs   int64  // user timezone, ms east of UTC
	ServerOffsetMs int64  // process timezone, ms east of UTC
	LookupSpanMin  int    // arrival lookup horizon; defaults to 100

	Source   ArrivalSource
	Chat     Notifier
	Triggers TriggerScheduler
	Metrics  *metrics.Collector // optional

	Now func() time.Time // optional; defaults to time.Now
}

// Engine owns the schedule collection, the run tracker and the notify
// pipeline. It is invoked by the cron collaborator at trigger points and by
// the chat layer for user commands; it never blocks waiting for a trigger.
type Engine struct {
	schedules      []*Schedule
	busRules       []BusRule
	channel        string
	userOffsetMs   int64
	serverOffsetMs int64
	lookupSpanMin  int

	src      ArrivalSource
	chat     Notifier
	triggers TriggerScheduler
	met      *metrics.Collector
	now      func() time.Time

	tracker  *tracking.Tracker
	runEntry atomic.Int64 // poll trigger id, 0 when no poll is registered

	lastNotified atomic.Int64 // epoch seconds of the last scheduled push

	ctx context.Context
}

// NewEngine validates the schedule collection and builds an engine. Invalid
// schedules are a startup error; the process must refuse to run with an
// unsatisfiable configuration.
func NewEngine(opts Options) (*Engine, error) {
	if opts.Source == nil || opts.Chat == nil || opts.Triggers == nil {
		return nil, fmt.Errorf("engine needs an arrival source, a chat sender and a trigger scheduler")
	}
	if len(opts.Schedules) == 0 {
		return nil, fmt.Errorf("at least one notification schedule is required")
	}
	for _, s := range opts.Schedules {
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}
	for _, r := range opts.BusRules {
		if r.WindowStart.Ms() >= r.WindowEnd.Ms() {
			return nil, fmt.Errorf("bus rule %s/%s: window start %s must be before end %s",
				r.Stop, r.Route, r.WindowStart, r.WindowEnd)
		}
	}
	if opts.LookupSpanMin <= 0 {
		opts.LookupSpanMin = 100
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Engine{
		schedules:      opts.Schedules,
		busRules:       opts.BusRules,
		channel:        opts.Channel,
		userOffsetMs:   opts.UserOffsetMs,
		serverOffsetMs: opts.ServerOffsetMs,
		lookupSpanMin:  opts.LookupSpanMin,
		src:            opts.Source,
		chat:           opts.Chat,
		triggers:       opts.Triggers,
		met:            opts.Metrics,
		now:            opts.Now,
		tracker:        tracking.New(),
		ctx:            context.Background(),
	}, nil
}

// Start registers one cron trigger per schedule. The trigger grid is an
// over-approximation; ShouldFire filters precisely at fire time.
func (e *Engine) Start(ctx context.Context) error {
	e.ctx = ctx
	for _, s := range e.schedules {
		s := s
		spec := ProjectCron(s, e.userOffsetMs, e.serverOffsetMs)
		expr := spec.Expression()
		if _, err := e.triggers.Add(expr, func() { e.notifySchedule(s) }); err != nil {
			return fmt.Errorf("register trigger %q for %s/%s: %w", expr, s.Stop, s.Route, err)
		}
		log.Printf("schedule %s/%s registered on %q", s.Stop, s.Route, expr)
	}
	return nil
}

// Schedules returns the configured schedule collection.
func (e *Engine) Schedules() []*Schedule { return e.schedules }

// LastNotifiedEpoch returns the unix time of the last scheduled push, 0 if
// none has been sent yet.
func (e *Engine) LastNotifiedEpoch() int64 { return e.lastNotified.Load() }

// RunActive reports whether run mode is armed.
func (e *Engine) RunActive() bool { return e.tracker.Active() }

// notifySchedule is the scheduled push path: gate, pipeline, render, send,
// record. Fetch failures are logged and counted but not pushed to chat; the
// next trigger will try again.
func (e *Engine) notifySchedule(s *Schedule) {
	now := e.now()
	if !s.ShouldFire(e.tracker.Active(), now, e.userOffsetMs, e.serverOffsetMs) {
		return
	}
	info, err := e.lookup(e.ctx, s.Stop, s.Route, s.TravelTimeMin)
	if err != nil {
		log.Printf("notify %s/%s: %v", s.Stop, s.Route, err)
		return
	}
	if err := e.chat.Send(e.channel, renderNotification(info, e.userOffsetMs)); err != nil {
		log.Printf("notify %s/%s: send: %v", s.Stop, s.Route, err)
		return
	}
	s.RecordFire(now)
	e.lastNotified.Store(now.Unix())
	if e.met != nil {
		e.met.NotificationsSent.Inc()
	}
}

// lookup runs the strict three-step pipeline: stop info, route info,
// arrivals. Each step's result feeds the next; the first failure aborts the
// evaluation.
func (e *Engine) lookup(ctx context.Context, stopID, routeID string, travelTimeMin int) (BusArrivalsInfo, error) {
	start := time.Now()
	info := BusArrivalsInfo{LookupSpanMin: e.lookupSpanMin}

	stop, err := e.src.StopInfo(ctx, stopID)
	if err != nil {
		return info, e.fetchFailed("stop %s: %v", stopID, err)
	}
	info.StopName = stop.Name

	route, err := e.src.RouteInfo(ctx, routeID)
	if err != nil {
		return info, e.fetchFailed("route %s: %v", routeID, err)
	}
	info.RouteName = route.ShortName

	records, err := e.src.Arrivals(ctx, stopID, e.lookupSpanMin)
	if err != nil {
		return info, e.fetchFailed("arrivals for %s: %v", stopID, err)
	}
	info.Arrivals = RankArrivals(records, routeID, travelTimeMin, e.now())

	if e.met != nil {
		e.met.PipelineDuration.Observe(time.Since(start).Seconds())
	}
	return info, nil
}

func (e *Engine) fetchFailed(format string, args ...any) error {
	if e.met != nil {
		e.met.FetchFailures.Inc()
	}
	return fmt.Errorf("%w: "+format, append([]any{ErrFetchFailed}, args...)...)
}

// matchingSchedule returns the first schedule whose window contains now, or
// nil. Day-of-week is deliberately not consulted here: the original commands
// match on time window only, so "run" works on an off day too.
func (e *Engine) matchingSchedule(now time.Time) *Schedule {
	for _, s := range e.schedules {
		t := LocalTimeOfDayMs(now, e.userOffsetMs, e.serverOffsetMs)
		if t >= s.WindowStart.Ms() && t < s.WindowEnd.Ms() {
			return s
		}
	}
	return nil
}

// HandleHi answers the greeting command.
func (e *Engine) HandleHi() string {
	e.countCommand("hi")
	return "Hi! I'm a bus bot."
}

// HandleBus answers the on-demand "bus [n]" lookup with the top n arrivals
// (default 5) at the stop whose rule window contains the current instant.
func (e *Engine) HandleBus(take int) string {
	e.countCommand("bus")
	if take <= 0 {
		take = 5
	}
	now := e.now()
	for _, r := range e.busRules {
		if !r.ActiveAt(now, e.userOffsetMs, e.serverOffsetMs) {
			continue
		}
		info, err := e.lookup(e.ctx, r.Stop, r.Route, r.TravelTimeMin)
		if err != nil {
			log.Printf("bus command: %v", err)
			return fetchFailureReply
		}
		return renderArrivalsReply(info, take, e.userOffsetMs)
	}
	return "I don't have a bus stop configured for this time of day."
}

// HandleRun arms run mode against the schedule whose window contains now and
// starts the 30-second poll trigger.
func (e *Engine) HandleRun() string {
	e.countCommand("run")
	if e.tracker.Active() {
		return "Already running to bus!"
	}
	now := e.now()
	s := e.matchingSchedule(now)
	if s == nil {
		return noScheduleForRunReply
	}
	info, err := e.lookup(e.ctx, s.Stop, s.Route, s.TravelTimeMin)
	if err != nil {
		log.Printf("run command: %v", err)
		return fetchFailureReply
	}
	if len(info.Arrivals) == 0 {
		return "I can't tell which bus you're running to - there are no upcoming " + info.RouteName + " arrivals."
	}
	if err := e.tracker.Start(s.Stop, s.Route, info.Arrivals[0].VehicleID); err != nil {
		// Lost the race against a concurrent run command.
		return "Already running to bus!"
	}
	id, err := e.triggers.Add(runPollExpr, e.runPoll)
	if err != nil {
		e.tracker.Cancel()
		log.Printf("run command: register poll: %v", err)
		return fetchFailureReply
	}
	e.runEntry.Store(int64(id))
	if e.met != nil {
		e.met.RunActive.Set(1)
	}
	return "Godspeed! I'll keep you posted with arrival times."
}

// runPollExpr fires every 30 seconds while a run is active.
const runPollExpr = "*/30 * * * * *"

// runPoll is the run-mode tick: while the tracked vehicle is still among the
// upcoming arrivals, post a status update; once it disappears, wish the user
// luck and tear the poll down.
func (e *Engine) runPoll() {
	snap := e.tracker.Snapshot()
	if !snap.Active {
		e.stopRunPoll()
		return
	}
	info, err := e.lookup(e.ctx, snap.Stop, snap.Route, 0)
	if err != nil {
		// Skip this tick; predictions may come back on the next one.
		log.Printf("run poll: %v", err)
		return
	}
	ids := make([]string, len(info.Arrivals))
	for i, a := range info.Arrivals {
		ids[i] = a.VehicleID
	}
	if e.tracker.Poll(ids) {
		if err := e.chat.Send(e.channel, renderArrivalsReply(info, 5, e.userOffsetMs)); err != nil {
			log.Printf("run poll: send: %v", err)
		}
		return
	}
	e.stopRunPoll()
	if err := e.chat.Send(e.channel, "I hope you made your bus!"); err != nil {
		log.Printf("run poll: send: %v", err)
	}
}

func (e *Engine) stopRunPoll() {
	if id := e.runEntry.Swap(0); id != 0 {
		e.triggers.Remove(int(id))
	}
	if e.met != nil {
		e.met.RunActive.Set(0)
	}
}

// CancelRun tears down run mode unconditionally.
func (e *Engine) CancelRun() {
	e.tracker.Cancel()
	e.stopRunPoll()
}

// HandleSkip suppresses today's notifications for the schedule whose window
// contains the current instant. The skip is recorded even when the transit
// API is unreachable; the lookup only resolves display names for the reply.
func (e *Engine) HandleSkip() string {
	e.countCommand("skip")
	now := e.now()
	s := e.matchingSchedule(now)
	if s == nil {
		return "I can't find any notification schedules for the current time, so there's nothing to skip."
	}
	s.RecordSkip(now, e.userOffsetMs)
	stopName, routeName := s.Stop, s.Route
	if info, err := e.lookup(e.ctx, s.Stop, s.Route, 0); err == nil {
		stopName, routeName = info.StopName, info.RouteName
	}
	return "Ok I won't send you anymore updates about the :bus: `" + routeName +
		"` at :busstop: `" + stopName + "` for the rest of the day."
}

// HandleSchedules renders the configured schedule collection.
func (e *Engine) HandleSchedules() string {
	e.countCommand("schedule")
	return renderScheduleList(e.schedules)
}

func (e *Engine) countCommand(name string) {
	if e.met != nil {
		e.met.CommandsHandled.WithLabelValues(name).Inc()
	}
}
