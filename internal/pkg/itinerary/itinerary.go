// Package itinerary holds the normalized flight entities produced from raw
// search API payloads, plus the scoring and ranking logic that orders them.
package itinerary

import (
	"errors"
	"time"
)

var (
	// ErrNoHops is returned by Flight accessors when the flight has an
	// empty hop list. Upstream occasionally reports legs without route
	// segments; derived attributes are undefined in that case.
	ErrNoHops = errors.New("flight has no hops")

	// ErrNoFlights is returned by Journey accessors when the journey has
	// no flights.
	ErrNoFlights = errors.New("journey has no flights")
)

// Hop is one physical flight segment between two airports. Immutable once
// constructed; owned by its parent Flight.
//
// Dep/Arr times come in two flavors: the UTC pair is the real instant, the
// local pair is the wall clock at the airport encoded by upstream as epoch
// seconds. Both are decoded with time.Unix(sec, 0).UTC() so the wall-clock
// digits survive unchanged regardless of the host timezone.
type Hop struct {
	DepAirport string
	ArrAirport string

	DepTime    time.Time
	ArrTime    time.Time
	DepTimeUTC time.Time
	ArrTimeUTC time.Time

	AirlineID string
}

// Duration is the hop's airborne span, from the UTC timestamps.
func (h Hop) Duration() time.Duration {
	return h.ArrTimeUTC.Sub(h.DepTimeUTC)
}

// Flight is an ordered, connecting sequence of hops flown as one priced
// unit. Hops are assumed to be in chronological, connecting order as
// reported by upstream.
type Flight struct {
	Hops  []Hop
	Price float64
}

func (f Flight) first() (Hop, error) {
	if len(f.Hops) == 0 {
		return Hop{}, ErrNoHops
	}

	return f.Hops[0], nil
}

func (f Flight) last() (Hop, error) {
	if len(f.Hops) == 0 {
		return Hop{}, ErrNoHops
	}

	return f.Hops[len(f.Hops)-1], nil
}

// DepAirport is the first hop's departure airport.
func (f Flight) DepAirport() (string, error) {
	hop, err := f.first()

	return hop.DepAirport, err
}

// ArrAirport is the last hop's arrival airport.
func (f Flight) ArrAirport() (string, error) {
	hop, err := f.last()

	return hop.ArrAirport, err
}

// DepTime is the first hop's local departure time.
func (f Flight) DepTime() (time.Time, error) {
	hop, err := f.first()

	return hop.DepTime, err
}

// ArrTime is the last hop's local arrival time.
func (f Flight) ArrTime() (time.Time, error) {
	hop, err := f.last()

	return hop.ArrTime, err
}

// Duration spans from the first hop's UTC departure to the last hop's UTC
// arrival, so layovers between hops count towards it.
func (f Flight) Duration() (time.Duration, error) {
	first, err := f.first()
	if err != nil {
		return 0, err
	}

	last, _ := f.last()

	return last.ArrTimeUTC.Sub(first.DepTimeUTC), nil
}

// ScoreComponent is one named term of a journey's cost score.
type ScoreComponent struct {
	Name  string
	Value float64
}

// Journey is one complete multi-leg itinerary. Breakdown is nil until the
// journey has been scored; consumers must not assume its presence before a
// scoring pass has run.
type Journey struct {
	Flights []Flight

	// Breakdown holds the ordered score components attached by Scorer.
	// A new scoring pass replaces it wholesale.
	Breakdown []ScoreComponent
}

// Price is the sum of all flight prices.
func (j *Journey) Price() float64 {
	var total float64
	for _, flight := range j.Flights {
		total += flight.Price
	}

	return total
}

// Duration is the sum of all flight durations. Time on the ground between
// flights is not included; upstream prices legs independently and the gaps
// between them are open-ended.
func (j *Journey) Duration() (time.Duration, error) {
	if len(j.Flights) == 0 {
		return 0, ErrNoFlights
	}

	var total time.Duration

	for _, flight := range j.Flights {
		d, err := flight.Duration()
		if err != nil {
			return 0, err
		}

		total += d
	}

	return total, nil
}

// DepAirport is the first flight's departure airport.
func (j *Journey) DepAirport() (string, error) {
	if len(j.Flights) == 0 {
		return "", ErrNoFlights
	}

	return j.Flights[0].DepAirport()
}

// ArrAirport is the last flight's arrival airport.
func (j *Journey) ArrAirport() (string, error) {
	if len(j.Flights) == 0 {
		return "", ErrNoFlights
	}

	return j.Flights[len(j.Flights)-1].ArrAirport()
}

// TotalScore sums the attached breakdown. The boolean reports whether the
// journey has been scored at all.
func (j *Journey) TotalScore() (float64, bool) {
	if j.Breakdown == nil {
		return 0, false
	}

	var total float64
	for _, component := range j.Breakdown {
		total += component.Value
	}

	return total, true
}
