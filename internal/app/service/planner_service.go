package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rivol/flightsearch/internal/app/dto"
	"github.com/rivol/flightsearch/internal/pkg/itinerary"
	"github.com/rivol/flightsearch/internal/pkg/skypicker"
)

// SearchClient is the upstream search API surface the planner depends on.
type SearchClient interface {
	SearchRoundTrip(ctx context.Context, criteria skypicker.RoundTripCriteria) ([]*itinerary.Journey, error)
	SearchMultiLeg(ctx context.Context, legs []skypicker.LegCriteria, maxFlyDuration int) ([]*itinerary.Journey, error)
	Airlines(ctx context.Context) (map[string]string, error)
}

// PlannerService runs searches, ranks the resulting journeys, and resolves
// airline names for display.
type PlannerService struct {
	Client SearchClient
	Scorer *itinerary.Scorer

	airlineNames map[string]string
}

func NewPlannerService(client SearchClient, scorer *itinerary.Scorer) *PlannerService {
	return &PlannerService{
		Client: client,
		Scorer: scorer,
	}
}

// AirlineNames returns the airline directory, fetched once per session and
// reused afterwards.
func (s *PlannerService) AirlineNames(ctx context.Context) (map[string]string, error) {
	if s.airlineNames != nil {
		return s.airlineNames, nil
	}

	names, err := s.Client.Airlines(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load airline directory: %w", err)
	}

	s.airlineNames = names

	return names, nil
}

// RoundTripJourneys runs one round-trip search and returns the journeys
// ranked best-first.
func (s *PlannerService) RoundTripJourneys(ctx context.Context,
	criteria skypicker.RoundTripCriteria,
) ([]*itinerary.Journey, error) {
	journeys, err := s.Client.SearchRoundTrip(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("round-trip search: %w", err)
	}

	if err := itinerary.Rank(s.Scorer, journeys); err != nil {
		return nil, fmt.Errorf("rank journeys: %w", err)
	}

	return journeys, nil
}

// MultiLegJourneys runs one multi-leg search and returns the journeys
// ranked best-first.
func (s *PlannerService) MultiLegJourneys(ctx context.Context,
	legs []skypicker.LegCriteria, maxFlyDuration int,
) ([]*itinerary.Journey, error) {
	journeys, err := s.Client.SearchMultiLeg(ctx, legs, maxFlyDuration)
	if err != nil {
		return nil, fmt.Errorf("multi-leg search: %w", err)
	}

	if err := itinerary.Rank(s.Scorer, journeys); err != nil {
		return nil, fmt.Errorf("rank journeys: %w", err)
	}

	return journeys, nil
}

// SearchRoundTrip is the serve-mode entry point: validate-and-converted
// request in, ranked journey DTOs out.
func (s *PlannerService) SearchRoundTrip(ctx context.Context, req dto.SearchRequest) (dto.SearchResponse, error) {
	startTime := time.Now()

	criteria, err := req.Criteria()
	if err != nil {
		return dto.SearchResponse{}, err
	}

	journeys, err := s.RoundTripJourneys(ctx, criteria)
	if err != nil {
		return dto.SearchResponse{}, err
	}

	if len(journeys) == 0 {
		return dto.SearchResponse{}, ErrNoJourneysFound
	}

	if req.Limit > 0 && len(journeys) > req.Limit {
		journeys = journeys[:req.Limit]
	}

	// names are cosmetic; a directory outage must not fail the search
	names, err := s.AirlineNames(ctx)
	if err != nil {
		slog.WarnContext(ctx, "airline directory unavailable", slog.String("error", err.Error()))
	}

	results := make([]dto.Journey, 0, len(journeys))

	for _, journey := range journeys {
		result, err := journeyDTO(journey, names)
		if err != nil {
			return dto.SearchResponse{}, fmt.Errorf("render journey: %w", err)
		}

		results = append(results, result)
	}

	return dto.SearchResponse{
		SearchRequest: req,
		Metadata: dto.Metadata{
			TotalResults: len(results),
			SearchTimeMs: int(time.Since(startTime).Milliseconds()),
		},
		Journeys: results,
	}, nil
}

func journeyDTO(journey *itinerary.Journey, airlineNames map[string]string) (dto.Journey, error) {
	duration, err := journey.Duration()
	if err != nil {
		return dto.Journey{}, err
	}

	flights := make([]dto.Flight, 0, len(journey.Flights))
	route := ""

	for _, flight := range journey.Flights {
		depAirport, err := flight.DepAirport()
		if err != nil {
			return dto.Journey{}, err
		}

		arrAirport, _ := flight.ArrAirport()
		flightDuration, _ := flight.Duration()

		if route != "" {
			route += ","
		}
		route += depAirport + "-" + arrAirport

		hops := make([]dto.Hop, 0, len(flight.Hops))
		for _, hop := range flight.Hops {
			hops = append(hops, dto.Hop{
				DepAirport:  hop.DepAirport,
				ArrAirport:  hop.ArrAirport,
				DepTime:     hop.DepTime.Format(time.RFC3339),
				ArrTime:     hop.ArrTime.Format(time.RFC3339),
				AirlineID:   hop.AirlineID,
				AirlineName: airlineNames[hop.AirlineID],
			})
		}

		flights = append(flights, dto.Flight{
			DepAirport:      depAirport,
			ArrAirport:      arrAirport,
			DurationMinutes: int(flightDuration.Minutes()),
			Price:           flight.Price,
			Hops:            hops,
		})
	}

	score, _ := journey.TotalScore()

	breakdown := make([]dto.ScoreComponent, 0, len(journey.Breakdown))
	for _, component := range journey.Breakdown {
		breakdown = append(breakdown, dto.ScoreComponent{Name: component.Name, Value: component.Value})
	}

	return dto.Journey{
		Route:           route,
		Price:           journey.Price(),
		DurationMinutes: int(duration.Minutes()),
		Score:           score,
		Breakdown:       breakdown,
		Flights:         flights,
	}, nil
}
