package gtfsrt

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	gtfs "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	onebotaway "github.com/rumit91/onebotaway"
)

// Source reads arrivals for a stop out of a GTFS-RT TripUpdates feed.
type Source struct {
	tripUpdatesURL string
	httpClient     *http.Client
	stopNames      map[string]string
	routeNames     map[string]string
	now            func() time.Time
}

// NewSource creates a TripUpdates-backed arrival source. stopNames and
// routeNames map the opaque ids to display names; unknown ids fall back to
// the id itself. timeout <= 0 selects a 10s default.
func NewSource(tripUpdatesURL string, stopNames, routeNames map[string]string, timeout time.Duration) *Source {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Source{
		tripUpdatesURL: tripUpdatesURL,
		httpClient:     &http.Client{Timeout: timeout},
		stopNames:      stopNames,
		routeNames:     routeNames,
		now:            time.Now,
	}
}

// StopInfo resolves a stop's display name from configuration.
func (s *Source) StopInfo(ctx context.Context, stopID string) (onebotaway.StopInfo, error) {
	if name, ok := s.stopNames[stopID]; ok {
		return onebotaway.StopInfo{Name: name}, nil
	}
	return onebotaway.StopInfo{Name: stopID}, nil
}

// RouteInfo resolves a route's display name from configuration.
func (s *Source) RouteInfo(ctx context.Context, routeID string) (onebotaway.RouteInfo, error) {
	if name, ok := s.routeNames[routeID]; ok {
		return onebotaway.RouteInfo{ShortName: name}, nil
	}
	return onebotaway.RouteInfo{ShortName: routeID}, nil
}

// Arrivals fetches the TripUpdates feed and extracts all predicted arrivals
// at stopID within the next spanMin minutes. The timetable arrival is
// reconstructed as prediction minus delay, so on-time status survives the
// conversion.
func (s *Source) Arrivals(ctx context.Context, stopID string, spanMin int) ([]onebotaway.ArrivalRecord, error) {
	feed, err := s.fetchFeed(ctx)
	if err != nil {
		return nil, err
	}

	nowMs := s.now().UnixMilli()
	horizonMs := nowMs + int64(spanMin)*60000
	var records []onebotaway.ArrivalRecord
	for _, entity := range feed.Entity {
		tu := entity.TripUpdate
		if tu == nil || tu.Trip == nil {
			continue
		}
		routeID := tu.Trip.GetRouteId()
		vehicleID := ""
		if tu.Vehicle != nil {
			vehicleID = tu.Vehicle.GetId()
		}
		for _, stu := range tu.StopTimeUpdate {
			if stu.GetStopId() != stopID || stu.Arrival == nil {
				continue
			}
			predictedMs := stu.Arrival.GetTime() * 1000
			if predictedMs == 0 {
				continue
			}
			if predictedMs < nowMs || predictedMs > horizonMs {
				continue
			}
			scheduledMs := predictedMs - int64(stu.Arrival.GetDelay())*1000
			records = append(records, onebotaway.ArrivalRecord{
				RouteID:     routeID,
				VehicleID:   vehicleID,
				ScheduledMs: scheduledMs,
				PredictedMs: predictedMs,
			})
		}
	}
	return records, nil
}

// fetchFeed fetches and decodes the TripUpdates protobuf.
func (s *Source) fetchFeed(ctx context.Context) (*gtfs.FeedMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.tripUpdatesURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", s.tripUpdatesURL, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, s.tripUpdatesURL)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var feed gtfs.FeedMessage
	if err := proto.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("decode trip updates: %w", err)
	}
	return &feed, nil
}
