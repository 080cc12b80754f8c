package skypicker

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/rivol/flightsearch/internal/pkg/exception"
)

var ErrUnexpectedShape = exception.ApplicationError{
	StatusCode: http.StatusBadGateway,
	Message:    "unexpected upstream response shape",
}

var ErrRateLimited = exception.ApplicationError{
	StatusCode: http.StatusTooManyRequests,
	Message:    "upstream rate limit budget exhausted",
}

// newUpstreamError reports a 400-599 response from the search API. The body
// is carried along so the caller can see what the upstream complained about.
func newUpstreamError(statusCode int, body []byte) error {
	return exception.ApplicationError{
		StatusCode: statusCode,
		Message:    fmt.Sprintf("upstream API error (status %d)", statusCode),
		Cause:      errors.New(string(body)),
	}
}
