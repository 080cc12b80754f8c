package skypicker

import "encoding/json"

// Raw response shapes as the upstream API reports them. Prices arrive
// inconsistently as strings or numbers, hence json.Number.

// RouteSegment is one physical segment of a search result's route. The four
// timestamps are epoch seconds: the UTC pair is the real instant, the plain
// pair is local wall time encoded as if it were UTC.
type RouteSegment struct {
	FlyFrom  string `json:"flyFrom"`
	FlyTo    string `json:"flyTo"`
	DTime    int64  `json:"dTime"`
	ATime    int64  `json:"aTime"`
	DTimeUTC int64  `json:"dTimeUTC"`
	ATimeUTC int64  `json:"aTimeUTC"`
	Airline  string `json:"airline"`
	Return   int    `json:"return"`
}

// RoundTripResponse wraps the result list of a GET /flights search.
type RoundTripResponse struct {
	Data []RoundTripResult `json:"data"`
}

// RoundTripResult is one round-trip itinerary: a flat segment list tagged
// with the return flag, priced as a whole.
type RoundTripResult struct {
	Price json.Number    `json:"price"`
	Route []RouteSegment `json:"route"`
}

// MultiLegResult is one multi-leg itinerary from POST /flights_multi: a
// group of individually priced legs.
type MultiLegResult struct {
	Route []LegResult `json:"route"`
}

// LegResult is one leg of a multi-leg itinerary with its own price and
// route segments.
type LegResult struct {
	Price json.Number    `json:"price"`
	Route []RouteSegment `json:"route"`
}

// Airline is one entry of the GET /airlines directory.
type Airline struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
