package dto

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rivol/flightsearch/internal/pkg/exception"
	"github.com/rivol/flightsearch/internal/pkg/skypicker"
)

const dateFormat = "2006-01-02"

// SearchRequest is the serve-mode request body for a round-trip search.
// Dates are ISO (year-month-day); each pair bounds the acceptable window
// for that leg.
type SearchRequest struct {
	FlyFrom        string `json:"fly_from" validate:"required"`
	FlyTo          string `json:"fly_to" validate:"required"`
	DateFrom       string `json:"date_from" validate:"required,datetime=2006-01-02"`
	DateTo         string `json:"date_to" validate:"required,datetime=2006-01-02"`
	ReturnFrom     string `json:"return_from" validate:"required,datetime=2006-01-02"`
	ReturnTo       string `json:"return_to" validate:"required,datetime=2006-01-02"`
	MaxFlyDuration int    `json:"max_fly_duration,omitempty" validate:"omitempty,gte=1"`
	Limit          int    `json:"limit,omitempty" validate:"omitempty,gte=1,lte=100"`
}

func (s *SearchRequest) Bind(r *http.Request) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("error validate request: %w", err)
	}

	return nil
}

func (s *SearchRequest) Validate() error {
	if err := ValidateSingleError(s); err != nil {
		return exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Message:    err.Error(),
		}
	}

	return nil
}

// Criteria converts the validated request into search criteria for the
// upstream client.
func (s *SearchRequest) Criteria() (skypicker.RoundTripCriteria, error) {
	windows := make([]time.Time, 0, 4)

	for _, raw := range []string{s.DateFrom, s.DateTo, s.ReturnFrom, s.ReturnTo} {
		parsed, err := time.Parse(dateFormat, raw)
		if err != nil {
			return skypicker.RoundTripCriteria{}, fmt.Errorf("invalid date %q: %w", raw, err)
		}

		windows = append(windows, parsed)
	}

	return skypicker.RoundTripCriteria{
		FlyFrom:        s.FlyFrom,
		FlyTo:          s.FlyTo,
		Departure:      skypicker.DateWindow{From: windows[0], To: windows[1]},
		Return:         skypicker.DateWindow{From: windows[2], To: windows[3]},
		MaxFlyDuration: s.MaxFlyDuration,
	}, nil
}

// Hop is one rendered flight segment.
type Hop struct {
	DepAirport  string `json:"dep_airport"`
	ArrAirport  string `json:"arr_airport"`
	DepTime     string `json:"dep_time"`
	ArrTime     string `json:"arr_time"`
	AirlineID   string `json:"airline_id"`
	AirlineName string `json:"airline_name,omitempty"`
}

// Flight is one priced unit of a journey.
type Flight struct {
	DepAirport      string  `json:"dep_airport"`
	ArrAirport      string  `json:"arr_airport"`
	DurationMinutes int     `json:"duration_minutes"`
	Price           float64 `json:"price"`
	Hops            []Hop   `json:"hops"`
}

// ScoreComponent is one named term of the journey score.
type ScoreComponent struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Journey is one ranked itinerary.
type Journey struct {
	Route           string           `json:"route"`
	Price           float64          `json:"price"`
	DurationMinutes int              `json:"duration_minutes"`
	Score           float64          `json:"score"`
	Breakdown       []ScoreComponent `json:"score_breakdown"`
	Flights         []Flight         `json:"flights"`
}

type Metadata struct {
	TotalResults int `json:"total_results"`
	SearchTimeMs int `json:"search_time_ms"`
}

// SearchResponse is the serve-mode response: journeys ranked best-first.
type SearchResponse struct {
	SearchRequest SearchRequest `json:"search_request"`
	Metadata      Metadata      `json:"metadata"`
	Journeys      []Journey     `json:"journeys"`
}
