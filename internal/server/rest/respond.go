package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/phonomarket/phono/internal/common"
)

type errorMessage struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// statusFor maps domain errors to HTTP status codes. Anything unrecognized is
// an internal error and its message is not leaked to the client.
func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrorWrongLogin):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrorPhoneTaken),
		errors.Is(err, common.ErrAlreadyInFavourites):
		return http.StatusConflict
	case errors.Is(err, common.ErrOTPExpired),
		errors.Is(err, common.ErrOTPMismatch),
		errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal server error"
	}
	writeJSON(w, status, errorMessage{Message: msg})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorMessage{Message: msg})
}

// decodeBody parses a JSON request body into v.
func decodeBody(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
