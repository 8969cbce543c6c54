package server

import (
	"encoding/json"
	"net/http"

	"github.com/arthur-debert/mcgen/pkg/errors"
	"github.com/arthur-debert/mcgen/pkg/render"
)

type errorResponse struct {
	Error   string                 `json:"error"`
	Code    errors.ErrorCode       `json:"code"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Warn().Err(err).Msg("Failed to write response")
	}
}

// respondError maps the error code to an HTTP status and writes the
// message and details as JSON.
func respondError(w http.ResponseWriter, err error) {
	code := errors.GetErrorCode(err)
	msg := err.Error()
	if e, ok := err.(*errors.Error); ok {
		msg = e.Message
	}
	status := StatusFor(code)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("code", string(code)).Msg("Request failed")
	}
	respondJSON(w, status, errorResponse{
		Error:   msg,
		Code:    code,
		Details: errors.GetErrorDetails(err),
	})
}

// StatusFor returns the HTTP status for an error code.
func StatusFor(code errors.ErrorCode) int {
	switch code {
	case errors.ErrMarkup, errors.ErrGenerator, errors.ErrTooManyTextures,
		errors.ErrInvalidInput, errors.ErrImageDecode:
		return http.StatusBadRequest
	case errors.ErrNotFound:
		return http.StatusNotFound
	case errors.ErrGeneratorTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func respondImage(w http.ResponseWriter, res render.Result) {
	data, mediaType, err := render.Encode(res)
	if err != nil {
		respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", mediaType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Warn().Err(err).Msg("Failed to write image")
	}
}

func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Wrap(err, errors.ErrInvalidInput, "Invalid request body")
	}
	return nil
}
