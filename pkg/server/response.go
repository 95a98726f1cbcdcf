package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/matzehuels/wiregraph/pkg/errors"
)

// errorResponse is the body of every error reply.
type errorResponse struct {
	Code      errors.Code `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			code = errors.ErrCodeInputTooLarge
		} else {
			code = errors.ErrCodeInternal
		}
	}

	msg := errors.UserMessage(err)
	if code == errors.ErrCodeInternal {
		msg = "internal server error"
	}
	writeJSON(w, statusFor(code), errorResponse{
		Code:      code,
		Message:   msg,
		RequestID: RequestID(r.Context()),
	})
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidPinTable, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeInputTooLarge:
		return http.StatusRequestEntityTooLarge
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnresolvedReference, errors.ErrCodePinOutOfRange:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func notFoundRoute(r *http.Request) error {
	return errors.New(errors.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path)
}
