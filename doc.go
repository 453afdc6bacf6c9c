// Package onebotaway is the scheduling and arrival-relevance engine behind a
// personal transit-notification bot. It decides when a recurring schedule
// should push ("is the window active, is today skipped, has enough time
// passed"), projects schedules onto coarse cron trigger grids, ranks raw
// arrival records into catchable arrivals, and drives run mode while the
// user is on their way to a specific bus.
//
// Chat delivery, cron triggering and the transit API are collaborators
// behind small interfaces; see the slack, scheduler, oba and gtfsrt
// subpackages for the concrete ones.
package onebotaway
