package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	domerrors "github.com/amirhosseinghanipour/idolbase/internal/domain/errors"
)

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Errors  []domerrors.FieldError `json:"errors,omitempty"`
}

// writeErr sends { "code": errCode, "message": message }. If errCode is empty, a default is used from status.
func writeErr(w http.ResponseWriter, status int, errCode string, message string) {
	if errCode == "" {
		errCode = defaultErrCode(status)
	}
	writeJSON(w, status, ErrorResponse{Code: errCode, Message: message})
}

func defaultErrCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return ErrCodeInvalidArgument
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	case http.StatusTooManyRequests:
		return ErrCodeRateLimited
	default:
		return ErrCodeInternal
	}
}

// writeError maps a use case error to its status and payload. Unclassified errors are
// logged and reported as "internal error".
func writeError(w http.ResponseWriter, r *http.Request, log zerolog.Logger, err error) {
	var verr *domerrors.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Code:    ErrCodeValidation,
			Message: domerrors.ErrValidation.Error(),
			Errors:  verr.Errors,
		})
	case errors.Is(err, domerrors.ErrNotFound):
		writeErr(w, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case errors.Is(err, domerrors.ErrInvalidArgument):
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidArgument, err.Error())
	case errors.Is(err, domerrors.ErrBusinessRule):
		writeErr(w, http.StatusBadRequest, ErrCodeBusinessRule, err.Error())
	case errors.Is(err, domerrors.ErrInvalidOperation):
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidOperation, err.Error())
	case errors.Is(err, domerrors.ErrConflict):
		writeErr(w, http.StatusConflict, ErrCodeConflict, err.Error())
	default:
		log.Error().
			Err(err).
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("unhandled error")
		writeErr(w, http.StatusInternalServerError, ErrCodeInternal, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
