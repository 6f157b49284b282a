package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rpupo63/agency-site-backend/errs"
	"github.com/rs/zerolog"
)

const internalErrorMessage = "internal server error"

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

func (r Responder) WriteJSON(w http.ResponseWriter, data any) {
	r.WriteJSONStatus(w, http.StatusOK, data)
}

func (r Responder) WriteJSONStatus(w http.ResponseWriter, status int, data any) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// WriteError maps err to the error envelope. Anything that is not a client error is logged
// with its cause and reported to the client as a bare internal error.
func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr
	if !errors.As(err, &apiErr) || apiErr.StatusCode >= http.StatusInternalServerError {
		status := http.StatusInternalServerError
		if apiErr != nil {
			status = apiErr.StatusCode
			r.logger.Error().Int("status", status).Msg(apiErr.GetFullError())
		} else {
			r.logger.Error().Err(err).Msg("unexpected error")
		}
		r.WriteJSONStatus(w, status, ErrorResponse{
			Status: "error",
			Error:  internalErrorMessage,
		})
		return
	}

	if apiErr.Cause != nil {
		r.logger.Debug().Int("status", apiErr.StatusCode).Msg(apiErr.GetFullError())
	}

	r.WriteJSONStatus(w, apiErr.StatusCode, ErrorResponse{
		Status:  "error",
		Error:   apiErr.Message(),
		Field:   apiErr.Field,
		Details: apiErr.Details,
		Errors:  apiErr.Errors,
	})
}
