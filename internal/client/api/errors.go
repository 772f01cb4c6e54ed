package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/phonomarket/phono/internal/common"
)

var (
	// ErrUnauthorized matches any 401 response via errors.Is.
	ErrUnauthorized = errors.New("unauthorized")
)

// ServerError is a non-2xx response decoded from the API. Message holds the
// server-provided "message" field, or an "API error: <status>" fallback when
// the body carried none.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	return e.Message
}

// Is lets callers match common conditions without inspecting status codes:
// errors.Is(err, ErrUnauthorized) and errors.Is(err, common.ErrorNotFound).
func (e *ServerError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case common.ErrorNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

func newServerError(status int, message string) *ServerError {
	if message == "" {
		message = fmt.Sprintf("API error: %d", status)
	}
	return &ServerError{StatusCode: status, Message: message}
}
