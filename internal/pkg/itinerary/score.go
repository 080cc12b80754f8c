package itinerary

import "fmt"

// DefaultHourlyCost is the time-cost rate in journey currency per hour of
// travel, used when no rate is configured.
const DefaultHourlyCost = 15.0

// Score component names, in breakdown order.
const (
	ComponentPrice        = "price"
	ComponentDepSurcharge = "departure airport"
	ComponentArrSurcharge = "arrival airport"
	ComponentTravelTime   = "travel time"
)

// DefaultAirportCosts estimates the overhead of starting or ending a journey
// at a given hub: ground transport to/from the airport, food, and a buffer
// of waiting hours billed at double the hourly rate (time spent in transit
// hubs is worth less than time at home). Airports absent from the table cost
// nothing extra.
func DefaultAirportCosts(hourlyCost float64) map[string]float64 {
	waitingCost := 2 * hourlyCost

	return map[string]float64{
		"HEL": 20 + 20 + 10 + 4*waitingCost, // ferry + local transport + food
		"RIX": 25 + 5 + 5 + 5*waitingCost,   // bus + local transport + food
	}
}

// Scorer computes a scalar desirability score per journey. Lower is better:
// the score is an estimated all-in cost of taking the journey, in the same
// unit as the ticket price.
type Scorer struct {
	HourlyCost   float64
	AirportCosts map[string]float64
}

// NewScorer builds a scorer with the default airport surcharge table derived
// from the given hourly rate. A non-positive rate falls back to
// DefaultHourlyCost.
func NewScorer(hourlyCost float64) *Scorer {
	if hourlyCost <= 0 {
		hourlyCost = DefaultHourlyCost
	}

	return &Scorer{
		HourlyCost:   hourlyCost,
		AirportCosts: DefaultAirportCosts(hourlyCost),
	}
}

// Score computes the journey's cost score and attaches the component
// breakdown to it, replacing any breakdown from an earlier pass. Components
// are, in order: ticket price, departure hub surcharge, arrival hub
// surcharge, and total travel time at the hourly rate.
func (s *Scorer) Score(journey *Journey) (float64, error) {
	depAirport, err := journey.DepAirport()
	if err != nil {
		return 0, fmt.Errorf("departure airport: %w", err)
	}

	arrAirport, err := journey.ArrAirport()
	if err != nil {
		return 0, fmt.Errorf("arrival airport: %w", err)
	}

	duration, err := journey.Duration()
	if err != nil {
		return 0, fmt.Errorf("journey duration: %w", err)
	}

	journey.Breakdown = []ScoreComponent{
		{Name: ComponentPrice, Value: journey.Price()},
		{Name: ComponentDepSurcharge, Value: s.AirportCosts[depAirport]},
		{Name: ComponentArrSurcharge, Value: s.AirportCosts[arrAirport]},
		{Name: ComponentTravelTime, Value: duration.Hours() * s.HourlyCost},
	}

	total, _ := journey.TotalScore()

	return total, nil
}
