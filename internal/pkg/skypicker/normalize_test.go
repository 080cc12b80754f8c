package skypicker

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rivol/flightsearch/internal/pkg/itinerary"
)

func segment(from, to string, depUTC, arrUTC int64, returnFlag int) RouteSegment {
	return RouteSegment{
		FlyFrom:  from,
		FlyTo:    to,
		DTime:    depUTC + 10800,
		ATime:    arrUTC + 10800,
		DTimeUTC: depUTC,
		ATimeUTC: arrUTC,
		Airline:  "BT",
		Return:   returnFlag,
	}
}

func TestJourneyFromRoundTrip_Closure(t *testing.T) {
	convertRequest := func(result RoundTripResult, wantHops []int, wantPrices []float64) func(t *testing.T) {
		return func(t *testing.T) {
			journey, err := journeyFromRoundTrip(result)
			if err != nil {
				t.Fatalf("journeyFromRoundTrip returned error: %v", err)
			}

			if len(journey.Flights) != 2 {
				t.Fatalf("round-trip must yield exactly 2 flights, got %d", len(journey.Flights))
			}

			for i, flight := range journey.Flights {
				if len(flight.Hops) != wantHops[i] {
					t.Fatalf("flight %d: expected %d hops, got %d", i, wantHops[i], len(flight.Hops))
				}
				if flight.Price != wantPrices[i] {
					t.Fatalf("flight %d: expected price %v, got %v", i, wantPrices[i], flight.Price)
				}
			}

			if journey.Price() != wantPrices[0]+wantPrices[1] {
				t.Fatalf("split prices must sum back to the original, got %v", journey.Price())
			}
		}
	}

	t.Run("two_outbound_one_inbound", convertRequest(
		RoundTripResult{
			Price: json.Number("200"),
			Route: []RouteSegment{
				segment("TLL", "HEL", 0, 3600, 0),
				segment("HEL", "SYD", 7200, 64800, 0),
				segment("SYD", "TLL", 90000, 154800, 1),
			},
		},
		[]int{2, 1},
		[]float64{100, 100},
	))

	// price reported as a plain number instead of a string
	t.Run("numeric_price", convertRequest(
		RoundTripResult{
			Price: json.Number("450.5"),
			Route: []RouteSegment{
				segment("RIX", "SYD", 0, 3600, 0),
				segment("SYD", "RIX", 7200, 10800, 1),
			},
		},
		[]int{1, 1},
		[]float64{225.25, 225.25},
	))

	// an empty inbound list still yields two flights; the zero-hop one
	// errors on derived attributes instead of defaulting
	t.Run("missing_inbound_segments", func(t *testing.T) {
		journey, err := journeyFromRoundTrip(RoundTripResult{
			Price: json.Number("100"),
			Route: []RouteSegment{segment("TLL", "SYD", 0, 3600, 0)},
		})
		if err != nil {
			t.Fatalf("journeyFromRoundTrip returned error: %v", err)
		}

		if len(journey.Flights) != 2 {
			t.Fatalf("expected 2 flights, got %d", len(journey.Flights))
		}

		if _, err := journey.Flights[1].DepAirport(); !errors.Is(err, itinerary.ErrNoHops) {
			t.Fatalf("expected ErrNoHops from empty inbound flight, got %v", err)
		}
	})
}

func TestJourneyFromRoundTrip_Malformed_Closure(t *testing.T) {
	malformedRequest := func(result RoundTripResult) func(t *testing.T) {
		return func(t *testing.T) {
			_, err := journeyFromRoundTrip(result)
			if !errors.Is(err, ErrUnexpectedShape) {
				t.Fatalf("expected ErrUnexpectedShape, got %v", err)
			}
		}
	}

	t.Run("missing_airport_code", malformedRequest(RoundTripResult{
		Price: json.Number("100"),
		Route: []RouteSegment{{FlyTo: "SYD", Airline: "BT"}},
	}))

	t.Run("missing_airline", malformedRequest(RoundTripResult{
		Price: json.Number("100"),
		Route: []RouteSegment{{FlyFrom: "TLL", FlyTo: "SYD"}},
	}))

	t.Run("unknown_return_flag", malformedRequest(RoundTripResult{
		Price: json.Number("100"),
		Route: []RouteSegment{segment("TLL", "SYD", 0, 3600, 2)},
	}))

	t.Run("non_numeric_price", malformedRequest(RoundTripResult{
		Price: json.Number("free"),
		Route: []RouteSegment{segment("TLL", "SYD", 0, 3600, 0)},
	}))
}

func TestJourneyFromLegs_Closure(t *testing.T) {
	result := MultiLegResult{
		Route: []LegResult{
			{Price: json.Number("120"), Route: []RouteSegment{segment("TLL", "SIN", 0, 36000, 0)}},
			{Price: json.Number("80"), Route: []RouteSegment{
				segment("MEL", "SIN", 100000, 118000, 0),
				segment("SIN", "BKK", 125200, 132400, 0),
			}},
			{Price: json.Number("310"), Route: []RouteSegment{segment("BKK", "TLL", 200000, 239600, 0)}},
		},
	}

	journey, err := journeyFromLegs(result)
	if err != nil {
		t.Fatalf("journeyFromLegs returned error: %v", err)
	}

	if len(journey.Flights) != 3 {
		t.Fatalf("expected one flight per leg group, got %d", len(journey.Flights))
	}

	wantPrices := []float64{120, 80, 310}
	for i, flight := range journey.Flights {
		if flight.Price != wantPrices[i] {
			t.Fatalf("leg %d: price must be kept unmodified, want %v got %v",
				i, wantPrices[i], flight.Price)
		}
	}

	if journey.Price() != 510 {
		t.Fatalf("expected total price 510, got %v", journey.Price())
	}
}

func TestHopFromSegment_TimestampPolicy(t *testing.T) {
	hop, err := hopFromSegment(segment("TLL", "HEL", 1534658400, 1534662000, 0))
	if err != nil {
		t.Fatalf("hopFromSegment returned error: %v", err)
	}

	// epoch seconds decode in UTC regardless of host timezone
	if hop.DepTimeUTC != time.Unix(1534658400, 0).UTC() {
		t.Fatalf("unexpected UTC departure: %v", hop.DepTimeUTC)
	}
	if hop.DepTime != time.Unix(1534658400+10800, 0).UTC() {
		t.Fatalf("local time must keep upstream wall-clock digits: %v", hop.DepTime)
	}

	if hop.Duration() != time.Hour {
		t.Fatalf("expected 1h duration, got %v", hop.Duration())
	}
}
