package oba

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/bluele/gcache"
	"github.com/sony/gobreaker"

	onebotaway "github.com/rumit91/onebotaway"
)

const (
	infoCacheSize = 128
	infoCacheTTL  = time.Hour
)

// Client talks to the OneBusAway "where" REST API. Stop and route names
// change rarely, so those lookups are memoized; arrivals are always fetched
// fresh. A circuit breaker fails calls fast while the upstream is down - the
// bot never retries, the next trigger simply tries again.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	infoCache  gcache.Cache
}

// NewClient creates a OneBusAway client. timeout <= 0 selects a 10s default.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	settings := gobreaker.Settings{
		Name:    "onebusaway",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("circuit breaker %s changed from %s to %s", name, from.String(), to.String())
		},
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		breaker:    gobreaker.NewCircuitBreaker(settings),
		infoCache:  gcache.New(infoCacheSize).LRU().Expiration(infoCacheTTL).Build(),
	}
}

// StopInfo returns the display name of a stop.
func (c *Client) StopInfo(ctx context.Context, stopID string) (onebotaway.StopInfo, error) {
	key := "stop|" + stopID
	if v, err := c.infoCache.Get(key); err == nil {
		return v.(onebotaway.StopInfo), nil
	}
	var res stopResponse
	if err := c.get(ctx, "stop/"+stopID+".json", nil, &res); err != nil {
		return onebotaway.StopInfo{}, err
	}
	if res.Data.Entry.Name == "" {
		return onebotaway.StopInfo{}, fmt.Errorf("stop %s: response missing name", stopID)
	}
	info := onebotaway.StopInfo{Name: res.Data.Entry.Name}
	_ = c.infoCache.Set(key, info)
	return info, nil
}

// RouteInfo returns the rider-facing short name of a route.
func (c *Client) RouteInfo(ctx context.Context, routeID string) (onebotaway.RouteInfo, error) {
	key := "route|" + routeID
	if v, err := c.infoCache.Get(key); err == nil {
		return v.(onebotaway.RouteInfo), nil
	}
	var res routeResponse
	if err := c.get(ctx, "route/"+routeID+".json", nil, &res); err != nil {
		return onebotaway.RouteInfo{}, err
	}
	name := res.Data.Entry.ShortName
	if name == "" {
		name = res.Data.Entry.LongName
	}
	if name == "" {
		return onebotaway.RouteInfo{}, fmt.Errorf("route %s: response missing name", routeID)
	}
	info := onebotaway.RouteInfo{ShortName: name}
	_ = c.infoCache.Set(key, info)
	return info, nil
}

// Arrivals returns the upcoming arrivals and departures at a stop within the
// next spanMin minutes.
func (c *Client) Arrivals(ctx context.Context, stopID string, spanMin int) ([]onebotaway.ArrivalRecord, error) {
	params := url.Values{"minutesAfter": {fmt.Sprint(spanMin)}}
	var res arrivalsResponse
	if err := c.get(ctx, "arrivals-and-departures-for-stop/"+stopID+".json", params, &res); err != nil {
		return nil, err
	}
	records := make([]onebotaway.ArrivalRecord, 0, len(res.Data.Entry.ArrivalsAndDepartures))
	for _, a := range res.Data.Entry.ArrivalsAndDepartures {
		records = append(records, onebotaway.ArrivalRecord{
			RouteID:     a.RouteID,
			VehicleID:   a.VehicleID,
			ScheduledMs: a.ScheduledArrivalTime,
			PredictedMs: a.PredictedArrivalTime,
		})
	}
	return records, nil
}

// get fetches one API resource through the circuit breaker and decodes the
// JSON envelope into out.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("key", c.apiKey)
	u := c.baseURL + "/" + path + "?" + params.Encode()

	body, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s: %w", path, err)
		}
		defer func() { _ = resp.Body.Close() }()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, path)
		}
		return io.ReadAll(resp.Body)
	})
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body.([]byte), out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
