// Package oba implements the transit API collaborator against the
// OneBusAway "where" REST API: stop info, route info and
// arrivals-and-departures for a stop.
package oba
