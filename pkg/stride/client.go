package stride

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/senseyeio/duration"
	"github.com/travigo/timetable-maker/pkg/config"
	"github.com/travigo/timetable-maker/pkg/ctdf"
	"github.com/travigo/timetable-maker/pkg/util"
	"golang.org/x/net/html/charset"
)

const DefaultBaseURL = "https://open-bus-stride-api.hasadna.org.il"

// DefaultLimit is the single page size of every query. Anything past it is silently truncated.
const DefaultLimit = 300

const (
	routesPath    = "/gtfs_routes/list"
	rideStopsPath = "/gtfs_ride_stops/list"
)

// GlobalClient is set up by the binary from the loaded configuration
var GlobalClient *Client

type Client struct {
	BaseURL   string
	Limit     int
	UserAgent string

	// SearchWindow bounds the route and stop searches starting from now
	SearchWindow duration.Duration
	Location     *time.Location

	HTTPClient *http.Client
	Now        func() time.Time
}

func NewClient(baseURL string, location *time.Location) *Client {
	return &Client{
		BaseURL:      baseURL,
		Limit:        DefaultLimit,
		UserAgent:    "timetable-maker",
		SearchWindow: duration.Duration{D: 7},
		Location:     location,
		HTTPClient:   &http.Client{Timeout: 30 * time.Second},
		Now:          time.Now,
	}
}

func NewClientFromConfig(cfg *config.Config) (*Client, error) {
	location, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	window, err := cfg.API.SearchWindowDuration()
	if err != nil {
		return nil, err
	}
	timeout, err := cfg.API.TimeoutDuration()
	if err != nil {
		return nil, err
	}

	client := NewClient(cfg.API.BaseURL, location)
	client.Limit = cfg.API.Limit
	client.SearchWindow = window
	client.HTTPClient.Timeout = timeout
	if cfg.API.UserAgent != "" {
		client.UserAgent = cfg.API.UserAgent
	}

	return client, nil
}

func SetupClient(cfg *config.Config) error {
	client, err := NewClientFromConfig(cfg)
	if err != nil {
		return err
	}

	GlobalClient = client

	return nil
}

func (c *Client) baseParams() url.Values {
	return url.Values{
		"limit":     []string{strconv.Itoa(c.Limit)},
		"get_count": []string{"false"},
	}
}

func (c *Client) now() time.Time {
	if c.Now == nil {
		return time.Now().In(c.Location)
	}

	return c.Now().In(c.Location)
}

// ListRouteVariants finds the route variants of a line number operating in the search window from today
func (c *Client) ListRouteVariants(ctx context.Context, lineNumber string) ([]ctdf.RouteVariant, error) {
	from := util.StartOfDay(c.now(), c.Location)
	to := c.SearchWindow.Shift(from)

	params := c.baseParams()
	params.Set("date_from", util.DateKey(from))
	params.Set("date_to", util.DateKey(to))
	params.Set("route_short_name", lineNumber)
	params.Set("order_by", "id asc")

	var routes []ctdf.RouteVariant
	if err := c.get(ctx, routesPath, params, &routes); err != nil {
		return nil, &NetworkError{Operation: "fetch routes", Line: lineNumber, Err: err, StatusCode: statusCodeOf(err)}
	}

	return routes, nil
}

// ListStopsForRoute returns the ride stops of a route variant in sequence order.
// Rows repeat per ride, callers reduce them with ctdf.UniqueStops.
func (c *Client) ListStopsForRoute(ctx context.Context, line ctdf.SelectedLine) ([]ctdf.ScheduledArrival, error) {
	from := c.now()
	to := c.SearchWindow.Shift(from)

	params := c.baseParams()
	params.Set("arrival_time_from", from.Format(time.RFC3339))
	params.Set("arrival_time_to", to.Format(time.RFC3339))
	setRouteIdentity(params, line.Identity())
	params.Set("order_by", "stop_sequence asc")

	var stops []ctdf.ScheduledArrival
	if err := c.get(ctx, rideStopsPath, params, &stops); err != nil {
		return nil, &NetworkError{Operation: "fetch stops", Line: line.ShortName, Err: err, StatusCode: statusCodeOf(err)}
	}

	return stops, nil
}

// ListArrivals returns the arrivals of a route variant at a stop during the service day starting on day
func (c *Client) ListArrivals(ctx context.Context, line ctdf.SelectedLine, stopCode int, day time.Time) ([]ctdf.ScheduledArrival, error) {
	from, to := util.ServiceDayWindow(day, c.Location)

	params := c.baseParams()
	params.Set("arrival_time_from", from.Format(time.RFC3339))
	params.Set("arrival_time_to", to.Format(time.RFC3339))
	params.Set("gtfs_stop__code", strconv.Itoa(stopCode))
	setRouteIdentity(params, line.Identity())
	params.Set("order_by", "arrival_time asc")

	var arrivals []ctdf.ScheduledArrival
	if err := c.get(ctx, rideStopsPath, params, &arrivals); err != nil {
		return nil, &NetworkError{
			Operation:  "fetch timetable",
			Line:       line.ShortName,
			Day:        util.DateKey(util.StartOfDay(day, c.Location)),
			Err:        err,
			StatusCode: statusCodeOf(err),
		}
	}

	return arrivals, nil
}

func setRouteIdentity(params url.Values, identity ctdf.RouteIdentity) {
	params.Set("gtfs_route__route_mkt", identity.MarketCode)
	params.Set("gtfs_route__route_direction", identity.Direction)
	params.Set("gtfs_route__route_alternative", identity.Alternative)
}

type statusError struct {
	StatusCode int
	URL        string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("HTTP %d from %s", e.StatusCode, e.URL)
}

func statusCodeOf(err error) int {
	if statusErr, ok := err.(*statusError); ok {
		return statusErr.StatusCode
	}

	return 0
}

func (c *Client) get(ctx context.Context, path string, params url.Values, destination any) error {
	requestURL := fmt.Sprintf("%s%s?%s", c.BaseURL, path, params.Encode())
	started := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.UserAgent)

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Debug().Str("path", path).Int("status", resp.StatusCode).Msg("Stride query failed")
		return &statusError{StatusCode: resp.StatusCode, URL: requestURL}
	}

	body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if err := json.NewDecoder(body).Decode(destination); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	log.Debug().
		Str("path", path).
		Str("query", params.Encode()).
		Dur("duration", time.Since(started)).
		Msg("Stride query")

	return nil
}
