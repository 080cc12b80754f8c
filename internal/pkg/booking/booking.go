// Package booking fetches a booking-confirmation document and renders a
// brief one-line-per-flight itinerary. The confirmation schema is separate
// from the search API and much simpler, so it gets its own client.
package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rivol/flightsearch/internal/pkg/exception"
)

// Confirmation is a booking-confirmation document.
type Confirmation struct {
	BID     int64    `json:"bid"`
	Flights []Flight `json:"flights"`
}

type Flight struct {
	Departure         Stop    `json:"departure"`
	Arrival           Stop    `json:"arrival"`
	Airline           Airline `json:"airline"`
	FlightNo          int     `json:"flight_no"`
	ReservationNumber string  `json:"reservation_number"`
}

type Stop struct {
	Where Where `json:"where"`
	When  When  `json:"when"`
}

type Where struct {
	Code string `json:"code"`
}

// When carries the local departure/arrival time as epoch seconds. Like the
// search API's local timestamps, the wall clock is encoded as if UTC, so it
// is decoded in UTC to keep the digits intact.
type When struct {
	Local int64 `json:"local"`
}

type Airline struct {
	IATA string `json:"iata"`
	Name string `json:"name"`
}

type Client struct {
	httpClient *http.Client
}

func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Fetch downloads and parses the booking-confirmation document at url.
func (c *Client) Fetch(ctx context.Context, url string) (Confirmation, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Confirmation{}, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Confirmation{}, fmt.Errorf("booking info request failed: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return Confirmation{}, fmt.Errorf("failed to read booking info response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return Confirmation{}, exception.ApplicationError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("booking info API error (status %d)", resp.StatusCode),
		}
	}

	var confirmation Confirmation
	if err := json.Unmarshal(payload, &confirmation); err != nil {
		return Confirmation{}, fmt.Errorf("failed to parse booking info: %w", err)
	}

	return confirmation, nil
}

// FormatLines renders one human-readable line per flight.
func (c Confirmation) FormatLines() []string {
	lines := make([]string, 0, len(c.Flights))

	for _, flight := range c.Flights {
		depTime := time.Unix(flight.Departure.When.Local, 0).UTC()
		arrTime := time.Unix(flight.Arrival.When.Local, 0).UTC()
		flightNo := fmt.Sprintf("%s-%d", flight.Airline.IATA, flight.FlightNo)

		lines = append(lines, fmt.Sprintf("- %s - %s: flight %s-%s  %-7s (%s); %s",
			depTime.Format("Mon 01-02  15:04"),
			arrTime.Format("15:04"),
			flight.Departure.Where.Code,
			flight.Arrival.Where.Code,
			flightNo,
			flight.Airline.Name,
			flight.ReservationNumber,
		))
	}

	return lines
}
