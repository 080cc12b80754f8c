package service

import (
	"net/http"

	"github.com/rivol/flightsearch/internal/pkg/exception"
)

var ErrNoJourneysFound = exception.ApplicationError{
	Message:    "no journeys found",
	StatusCode: http.StatusNotFound,
}
