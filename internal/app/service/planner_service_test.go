package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rivol/flightsearch/internal/app/dto"
	"github.com/rivol/flightsearch/internal/pkg/itinerary"
	"github.com/rivol/flightsearch/internal/pkg/skypicker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockSearchClient struct {
	mock.Mock
}

func NewMockSearchClient(t *testing.T) *MockSearchClient {
	m := &MockSearchClient{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockSearchClient) SearchRoundTrip(ctx context.Context, criteria skypicker.RoundTripCriteria) ([]*itinerary.Journey, error) {
	args := m.Called(ctx, criteria)

	journeys, _ := args.Get(0).([]*itinerary.Journey)

	return journeys, args.Error(1)
}

func (m *MockSearchClient) SearchMultiLeg(ctx context.Context, legs []skypicker.LegCriteria, maxFlyDuration int) ([]*itinerary.Journey, error) {
	args := m.Called(ctx, legs, maxFlyDuration)

	journeys, _ := args.Get(0).([]*itinerary.Journey)

	return journeys, args.Error(1)
}

func (m *MockSearchClient) Airlines(ctx context.Context) (map[string]string, error) {
	args := m.Called(ctx)

	names, _ := args.Get(0).(map[string]string)

	return names, args.Error(1)
}

func testJourney(dep, arr string, price float64, hours int64) *itinerary.Journey {
	return &itinerary.Journey{
		Flights: []itinerary.Flight{
			{
				Hops: []itinerary.Hop{{
					DepAirport: dep,
					ArrAirport: arr,
					DepTime:    time.Unix(0, 0).UTC(),
					ArrTime:    time.Unix(hours*3600, 0).UTC(),
					DepTimeUTC: time.Unix(0, 0).UTC(),
					ArrTimeUTC: time.Unix(hours*3600, 0).UTC(),
					AirlineID:  "BT",
				}},
				Price: price,
			},
		},
	}
}

func searchRequest() dto.SearchRequest {
	return dto.SearchRequest{
		FlyFrom:    "TLL",
		FlyTo:      "SYD",
		DateFrom:   "2018-08-19",
		DateTo:     "2018-08-22",
		ReturnFrom: "2018-09-03",
		ReturnTo:   "2018-09-10",
	}
}

func TestPlannerService_SearchRoundTrip_Closure(t *testing.T) {
	searchFlightRequest := func(
		req dto.SearchRequest,
		setupMock func(m *MockSearchClient),
		check func(t *testing.T, got dto.SearchResponse),
		wantErr error,
	) func(t *testing.T) {
		return func(t *testing.T) {
			m := NewMockSearchClient(t)
			setupMock(m)

			s := NewPlannerService(m, itinerary.NewScorer(15))

			got, err := s.SearchRoundTrip(context.Background(), req)

			if wantErr != nil {
				assert.Error(t, err)
				assert.ErrorIs(t, err, wantErr)

				return
			}

			assert.NoError(t, err)
			check(t, got)
		}
	}

	t.Run("ranked_best_first", searchFlightRequest(
		searchRequest(),
		func(m *MockSearchClient) {
			m.On("SearchRoundTrip", mock.Anything, mock.Anything).Return([]*itinerary.Journey{
				testJourney("TLL", "SYD", 500, 20),
				testJourney("TLL", "SYD", 200, 20),
			}, nil)
			m.On("Airlines", mock.Anything).Return(map[string]string{"BT": "Air Baltic"}, nil)
		},
		func(t *testing.T, got dto.SearchResponse) {
			assert.Len(t, got.Journeys, 2)
			assert.Equal(t, 200.0, got.Journeys[0].Price)
			assert.Equal(t, 500.0, got.Journeys[1].Price)
			assert.Equal(t, "TLL-SYD", got.Journeys[0].Route)
			assert.Equal(t, 2, got.Metadata.TotalResults)

			// breakdown in component order, summing to the score
			breakdown := got.Journeys[0].Breakdown
			assert.Len(t, breakdown, 4)
			assert.Equal(t, itinerary.ComponentPrice, breakdown[0].Name)

			var sum float64
			for _, component := range breakdown {
				sum += component.Value
			}
			assert.Equal(t, got.Journeys[0].Score, sum)

			assert.Equal(t, "Air Baltic", got.Journeys[0].Flights[0].Hops[0].AirlineName)
		},
		nil,
	))

	t.Run("limit_applied", searchFlightRequest(
		func() dto.SearchRequest {
			req := searchRequest()
			req.Limit = 1

			return req
		}(),
		func(m *MockSearchClient) {
			m.On("SearchRoundTrip", mock.Anything, mock.Anything).Return([]*itinerary.Journey{
				testJourney("TLL", "SYD", 500, 20),
				testJourney("TLL", "SYD", 200, 20),
			}, nil)
			m.On("Airlines", mock.Anything).Return(map[string]string{}, nil)
		},
		func(t *testing.T, got dto.SearchResponse) {
			assert.Len(t, got.Journeys, 1)
			assert.Equal(t, 200.0, got.Journeys[0].Price)
		},
		nil,
	))

	t.Run("no_journeys", searchFlightRequest(
		searchRequest(),
		func(m *MockSearchClient) {
			m.On("SearchRoundTrip", mock.Anything, mock.Anything).Return([]*itinerary.Journey{}, nil)
		},
		nil,
		ErrNoJourneysFound,
	))

	t.Run("directory_outage_is_non_fatal", searchFlightRequest(
		searchRequest(),
		func(m *MockSearchClient) {
			m.On("SearchRoundTrip", mock.Anything, mock.Anything).Return([]*itinerary.Journey{
				testJourney("TLL", "SYD", 200, 20),
			}, nil)
			m.On("Airlines", mock.Anything).Return(nil, errors.New("directory down"))
		},
		func(t *testing.T, got dto.SearchResponse) {
			assert.Len(t, got.Journeys, 1)
			assert.Empty(t, got.Journeys[0].Flights[0].Hops[0].AirlineName)
		},
		nil,
	))
}

func TestPlannerService_AirlineNames_Memoized(t *testing.T) {
	m := NewMockSearchClient(t)
	m.On("Airlines", mock.Anything).Return(map[string]string{"BT": "Air Baltic"}, nil).Once()

	s := NewPlannerService(m, itinerary.NewScorer(15))

	for i := 0; i < 3; i++ {
		names, err := s.AirlineNames(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, "Air Baltic", names["BT"])
	}
}

func TestPlannerService_MultiLegJourneys(t *testing.T) {
	legs := []skypicker.LegCriteria{
		{FlyFrom: "TLL", FlyTo: "SIN"},
		{FlyFrom: "SIN", FlyTo: "SYD"},
	}

	m := NewMockSearchClient(t)
	m.On("SearchMultiLeg", mock.Anything, legs, 32).Return([]*itinerary.Journey{
		testJourney("TLL", "SYD", 900, 30),
		testJourney("TLL", "SYD", 400, 30),
	}, nil)

	s := NewPlannerService(m, itinerary.NewScorer(15))

	journeys, err := s.MultiLegJourneys(context.Background(), legs, 32)
	assert.NoError(t, err)
	assert.Len(t, journeys, 2)
	assert.Equal(t, 400.0, journeys[0].Price())

	score, scored := journeys[0].TotalScore()
	assert.True(t, scored)
	assert.Greater(t, score, 400.0)
}
