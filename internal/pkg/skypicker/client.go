// Package skypicker is the client for the Skypicker flight-search API. It
// issues the three request shapes the tool needs (round-trip search,
// multi-leg search, airline directory), de-duplicates identical requests
// through the request cache, and normalizes raw payloads into itinerary
// entities at the API boundary.
package skypicker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/rivol/flightsearch/internal/pkg/itinerary"
	"github.com/rivol/flightsearch/internal/pkg/requestcache"
)

const dateFormat = "02/01/2006"

// Cache is the request cache consulted before every live call. Lookup
// errors other than requestcache.ErrMiss are treated as a miss so a cache
// outage degrades to always-live instead of failing searches.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
}

// Config for the Skypicker client.
type Config struct {
	BaseURL      string
	Partner      string
	Timeout      time.Duration
	RateLimitRPS int
	CacheTTL     time.Duration
}

type Client struct {
	cfg        Config
	httpClient *http.Client
	cache      Cache
	limiter    *redis_rate.Limiter
}

// NewClient builds a client. The limiter is optional; without it live calls
// go out unthrottled.
func NewClient(cfg Config, cache Cache, limiter *redis_rate.Limiter) *Client {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = requestcache.DefaultTTL
	}

	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cache:      cache,
		limiter:    limiter,
	}
}

// DateWindow bounds the earliest and latest acceptable date for a leg.
type DateWindow struct {
	From time.Time
	To   time.Time
}

// RoundTripCriteria describes a single round-trip search. MaxFlyDuration is
// in hours; zero means unlimited.
type RoundTripCriteria struct {
	FlyFrom        string
	FlyTo          string
	Departure      DateWindow
	Return         DateWindow
	MaxFlyDuration int
}

// LegCriteria describes one independently searched leg of a multi-leg
// itinerary. MaxFlyDuration overrides the search-wide value when non-zero.
type LegCriteria struct {
	FlyFrom        string
	FlyTo          string
	Dates          DateWindow
	MaxFlyDuration int
}

type legRequest struct {
	FlyFrom        string `json:"flyFrom"`
	To             string `json:"to"`
	DateFrom       string `json:"dateFrom"`
	DateTo         string `json:"dateTo"`
	TypeFlight     string `json:"typeFlight"`
	MaxFlyDuration int    `json:"maxFlyDuration,omitempty"`
}

type multiLegRequest struct {
	Requests []legRequest `json:"requests"`
}

// SearchRoundTrip issues one round-trip search and returns one journey per
// result, each with exactly two flights (outbound and inbound).
func (c *Client) SearchRoundTrip(ctx context.Context, criteria RoundTripCriteria) ([]*itinerary.Journey, error) {
	params := url.Values{}
	params.Set("partner", c.cfg.Partner)
	params.Set("flyFrom", criteria.FlyFrom)
	params.Set("to", criteria.FlyTo)
	params.Set("dateFrom", criteria.Departure.From.Format(dateFormat))
	params.Set("dateTo", criteria.Departure.To.Format(dateFormat))
	params.Set("returnFrom", criteria.Return.From.Format(dateFormat))
	params.Set("returnTo", criteria.Return.To.Format(dateFormat))
	params.Set("typeFlight", "round")

	if criteria.MaxFlyDuration > 0 {
		params.Set("maxFlyDuration", strconv.Itoa(criteria.MaxFlyDuration))
	}

	payload, err := c.request(ctx, http.MethodGet, c.cfg.BaseURL+"/flights", params, nil)
	if err != nil {
		return nil, err
	}

	var response RoundTripResponse
	if err := json.Unmarshal(payload, &response); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnexpectedShape, err)
	}

	journeys := make([]*itinerary.Journey, 0, len(response.Data))

	for i, result := range response.Data {
		journey, err := journeyFromRoundTrip(result)
		if err != nil {
			return nil, fmt.Errorf("result %d: %w", i, err)
		}

		journeys = append(journeys, journey)
	}

	return journeys, nil
}

// SearchMultiLeg bundles the legs into a single multi-leg search, each leg
// submitted as an independent one-way request. It returns one journey per
// result, with one flight per leg.
func (c *Client) SearchMultiLeg(ctx context.Context, legs []LegCriteria, maxFlyDuration int) ([]*itinerary.Journey, error) {
	body := multiLegRequest{Requests: make([]legRequest, 0, len(legs))}

	for _, leg := range legs {
		legMax := leg.MaxFlyDuration
		if legMax == 0 {
			legMax = maxFlyDuration
		}

		body.Requests = append(body.Requests, legRequest{
			FlyFrom:        leg.FlyFrom,
			To:             leg.FlyTo,
			DateFrom:       leg.Dates.From.Format(dateFormat),
			DateTo:         leg.Dates.To.Format(dateFormat),
			TypeFlight:     "oneway",
			MaxFlyDuration: legMax,
		})
	}

	payload, err := c.request(ctx, http.MethodPost, c.cfg.BaseURL+"/flights_multi", nil, body)
	if err != nil {
		return nil, err
	}

	var results []MultiLegResult
	if err := json.Unmarshal(payload, &results); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnexpectedShape, err)
	}

	journeys := make([]*itinerary.Journey, 0, len(results))

	for i, result := range results {
		journey, err := journeyFromLegs(result)
		if err != nil {
			return nil, fmt.Errorf("result %d: %w", i, err)
		}

		journeys = append(journeys, journey)
	}

	return journeys, nil
}

// Airlines fetches the full airline directory as an id to name map. Loaded
// once per session by callers; the payload barely changes and is cached
// like any other request anyway.
func (c *Client) Airlines(ctx context.Context) (map[string]string, error) {
	payload, err := c.request(ctx, http.MethodGet, c.cfg.BaseURL+"/airlines", nil, nil)
	if err != nil {
		return nil, err
	}

	var airlines []Airline
	if err := json.Unmarshal(payload, &airlines); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnexpectedShape, err)
	}

	names := make(map[string]string, len(airlines))
	for _, airline := range airlines {
		names[airline.ID] = airline.Name
	}

	return names, nil
}

// request runs one cached upstream call: cache lookup first, then the live
// request, caching the payload on success. A 400-599 status is a hard
// failure and nothing is cached.
func (c *Client) request(ctx context.Context, method, rawURL string, params url.Values, body interface{}) ([]byte, error) {
	cacheKey, err := requestcache.Key(method, rawURL, params, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build cache key: %w", err)
	}

	payload, err := c.cache.Get(ctx, cacheKey)
	if err == nil {
		slog.DebugContext(ctx, "request cache hit",
			slog.String("method", method), slog.String("url", rawURL))

		return payload, nil
	}

	if !errors.Is(err, requestcache.ErrMiss) {
		slog.WarnContext(ctx, "request cache lookup failed, treating as miss",
			slog.String("error", err.Error()))
	}

	if c.limiter != nil {
		res, err := c.limiter.Allow(ctx, "skypicker:ratelimit", redis_rate.PerSecond(c.cfg.RateLimitRPS))
		if err != nil {
			slog.WarnContext(ctx, "rate limiter unavailable, proceeding",
				slog.String("error", err.Error()))
		} else if res.Allowed == 0 {
			return nil, ErrRateLimited
		}
	}

	payload, err = c.live(ctx, method, rawURL, params, body)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set(ctx, cacheKey, payload, c.cfg.CacheTTL); err != nil {
		slog.WarnContext(ctx, "failed to cache response", slog.String("error", err.Error()))
	}

	return payload, nil
}

func (c *Client) live(ctx context.Context, method, rawURL string, params url.Values, body interface{}) ([]byte, error) {
	var bodyReader io.Reader

	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}

		bodyReader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	if params != nil {
		req.URL.RawQuery = params.Encode()
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	slog.InfoContext(ctx, "calling upstream search API",
		slog.String("method", method), slog.String("url", rawURL))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read upstream response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, newUpstreamError(resp.StatusCode, payload)
	}

	return payload, nil
}
