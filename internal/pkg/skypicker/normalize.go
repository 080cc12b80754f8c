package skypicker

import (
	"fmt"
	"time"

	"github.com/rivol/flightsearch/internal/pkg/itinerary"
)

// journeyFromRoundTrip converts one round-trip search result into a journey
// of exactly two flights: outbound segments (return flag 0) and inbound
// segments (return flag 1), each list in its original order. Upstream quotes
// a single combined price, so it is split evenly between the two flights.
// The 50/50 split is an assumption, not something the API states.
func journeyFromRoundTrip(result RoundTripResult) (*itinerary.Journey, error) {
	var outbound, inbound []itinerary.Hop

	for i, segment := range result.Route {
		hop, err := hopFromSegment(segment)
		if err != nil {
			return nil, fmt.Errorf("route segment %d: %w", i, err)
		}

		switch segment.Return {
		case 0:
			outbound = append(outbound, hop)
		case 1:
			inbound = append(inbound, hop)
		default:
			return nil, fmt.Errorf("%w: route segment %d has return flag %d",
				ErrUnexpectedShape, i, segment.Return)
		}
	}

	price, err := result.Price.Float64()
	if err != nil {
		return nil, fmt.Errorf("%w: price %q is not numeric", ErrUnexpectedShape, result.Price)
	}

	return &itinerary.Journey{
		Flights: []itinerary.Flight{
			{Hops: outbound, Price: price / 2},
			{Hops: inbound, Price: price / 2},
		},
	}, nil
}

// journeyFromLegs converts one multi-leg search result into a journey with
// one flight per leg group, each keeping its own reported price.
func journeyFromLegs(result MultiLegResult) (*itinerary.Journey, error) {
	flights := make([]itinerary.Flight, 0, len(result.Route))

	for i, leg := range result.Route {
		hops := make([]itinerary.Hop, 0, len(leg.Route))

		for j, segment := range leg.Route {
			hop, err := hopFromSegment(segment)
			if err != nil {
				return nil, fmt.Errorf("leg %d, route segment %d: %w", i, j, err)
			}

			hops = append(hops, hop)
		}

		price, err := leg.Price.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: leg %d price %q is not numeric",
				ErrUnexpectedShape, i, leg.Price)
		}

		flights = append(flights, itinerary.Flight{Hops: hops, Price: price})
	}

	return &itinerary.Journey{Flights: flights}, nil
}

// hopFromSegment validates one raw route segment and builds the typed hop.
// Timestamps are not range checked; upstream owns their correctness.
func hopFromSegment(segment RouteSegment) (itinerary.Hop, error) {
	if segment.FlyFrom == "" || segment.FlyTo == "" {
		return itinerary.Hop{}, fmt.Errorf("%w: missing airport code", ErrUnexpectedShape)
	}

	if segment.Airline == "" {
		return itinerary.Hop{}, fmt.Errorf("%w: missing airline id", ErrUnexpectedShape)
	}

	return itinerary.Hop{
		DepAirport: segment.FlyFrom,
		ArrAirport: segment.FlyTo,
		DepTime:    epochUTC(segment.DTime),
		ArrTime:    epochUTC(segment.ATime),
		DepTimeUTC: epochUTC(segment.DTimeUTC),
		ArrTimeUTC: epochUTC(segment.ATimeUTC),
		AirlineID:  segment.Airline,
	}, nil
}

// epochUTC decodes upstream epoch seconds without consulting the host
// timezone. The "local" fields are wall-clock time encoded as if UTC, so
// this keeps their digits intact on any machine.
func epochUTC(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}
