// Package tracking holds the run-mode state machine: whether the user is
// actively on their way to catch one specific vehicle.
//
// A run is armed by the user's "run" command with the first upcoming vehicle
// at that moment, polled on a short interval while active, and torn down when
// the tracked vehicle is no longer among the upcoming arrivals (it arrived,
// departed, or predictions ceased) or when the user cancels. Run state lives
// only in memory; a restart simply forgets it.
package tracking
