package tracking

import (
	"errors"
	"sync"
)

var (
	// ErrAlreadyRunning is returned when a run is armed while one is active.
	ErrAlreadyRunning = errors.New("already running to a bus")
	// ErrNoUpcomingVehicle is returned when a run is armed but there is no
	// upcoming arrival to latch onto.
	ErrNoUpcomingVehicle = errors.New("no upcoming vehicle to run to")
)

// State is a snapshot of the tracker.
type State struct {
	Active    bool
	VehicleID string
	Stop      string
	Route     string
}

// Tracker is the Idle/Running state machine. All methods are safe for
// concurrent use; two concurrent Start calls cannot both succeed.
type Tracker struct {
	mu    sync.Mutex
	state State
}

func New() *Tracker {
	return &Tracker{}
}

// Start transitions Idle -> Running, latching onto vehicleID (the first
// upcoming arrival as chosen by the caller).
func (t *Tracker) Start(stop, route, vehicleID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state.Active {
		return ErrAlreadyRunning
	}
	if vehicleID == "" {
		return ErrNoUpcomingVehicle
	}
	t.state = State{Active: true, VehicleID: vehicleID, Stop: stop, Route: route}
	return nil
}

// Poll checks the tracked vehicle against the current upcoming vehicle IDs.
// It returns true while the run continues; when the vehicle has disappeared
// from the list the tracker transitions to Idle and returns false. Polling
// an idle tracker also returns false.
func (t *Tracker) Poll(upcomingVehicleIDs []string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.state.Active {
		return false
	}
	for _, id := range upcomingVehicleIDs {
		if id == t.state.VehicleID {
			return true
		}
	}
	t.state = State{}
	return false
}

// Cancel unconditionally returns the tracker to Idle.
func (t *Tracker) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = State{}
}

// Snapshot returns the current state.
func (t *Tracker) Snapshot() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Active reports whether a run is in progress.
func (t *Tracker) Active() bool {
	return t.Snapshot().Active
}
