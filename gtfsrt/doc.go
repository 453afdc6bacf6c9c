// Package gtfsrt implements the transit API collaborator on top of a
// GTFS-Realtime TripUpdates feed, for agencies that publish GTFS-RT but no
// OneBusAway API. Stop and route display names are supplied by configuration
// since no static GTFS feed is loaded.
package gtfsrt
