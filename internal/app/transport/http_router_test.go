package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rivol/flightsearch/internal/app/dto"
	"github.com/rivol/flightsearch/internal/app/endpoints"
	"github.com/rivol/flightsearch/internal/app/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPlanner struct {
	response dto.SearchResponse
	err      error
}

func (s *stubPlanner) SearchRoundTrip(_ context.Context, _ dto.SearchRequest) (dto.SearchResponse, error) {
	return s.response, s.err
}

func newRouter(planner endpoints.PlannerService) http.Handler {
	return MakeHTTPRouter(endpoints.Endpoints{
		SearchEndpoint: endpoints.MakeSearchEndpoint(planner),
	})
}

const validBody = `{
	"fly_from": "TLL", "fly_to": "SYD",
	"date_from": "2018-08-19", "date_to": "2018-08-22",
	"return_from": "2018-09-03", "return_to": "2018-09-10"
}`

func TestRouter_SearchJourneys(t *testing.T) {
	require.NoError(t, dto.InitValidator())

	planner := &stubPlanner{
		response: dto.SearchResponse{
			Metadata: dto.Metadata{TotalResults: 1},
			Journeys: []dto.Journey{{Route: "TLL-SYD,SYD-TLL", Price: 200, Score: 520}},
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/journeys/search", strings.NewReader(validBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newRouter(planner).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	var response dto.SearchResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, "TLL-SYD,SYD-TLL", response.Journeys[0].Route)
}

func TestRouter_SearchJourneys_ValidationError(t *testing.T) {
	require.NoError(t, dto.InitValidator())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/journeys/search",
		strings.NewReader(`{"fly_from": "TLL"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newRouter(&stubPlanner{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_SearchJourneys_NotFound(t *testing.T) {
	require.NoError(t, dto.InitValidator())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/journeys/search", strings.NewReader(validBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newRouter(&stubPlanner{err: service.ErrNoJourneysFound}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var response dto.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, "no journeys found", response.Error)
}

func TestRouter_Health(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	newRouter(&stubPlanner{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
