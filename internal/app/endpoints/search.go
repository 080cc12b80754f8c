package endpoints

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-kit/kit/endpoint"
	"github.com/rivol/flightsearch/internal/app/dto"
)

type PlannerService interface {
	SearchRoundTrip(ctx context.Context, req dto.SearchRequest) (dto.SearchResponse, error)
}

type Endpoints struct {
	SearchEndpoint SearchEndpoint
}

type SearchEndpoint struct {
	SearchJourneys endpoint.Endpoint
}

func MakeSearchEndpoint(service PlannerService) SearchEndpoint {
	return SearchEndpoint{
		SearchJourneys: makeSearchJourneysEndpoint(service),
	}
}

func makeSearchJourneysEndpoint(service PlannerService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.SearchRequest)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		response, err := service.SearchRoundTrip(ctx, *request)
		if err != nil {
			return nil, fmt.Errorf("planner service: %w", err)
		}

		return response, nil
	}
}
