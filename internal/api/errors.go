package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/cellux/gradnoise/noise"
)

const (
	ErrTypeValidation = "validation_error"
	ErrTypeDomain     = "out_of_domain"
	ErrTypeInternal   = "internal_error"
)

// APIError is the JSON body of every error response.
type APIError struct {
	Type      string         `json:"type"`
	Message   string         `json:"message"`
	Context   map[string]any `json:"context,omitempty"`
	RequestID string         `json:"requestId,omitempty"`
}

func (e APIError) Error() string {
	return e.Message
}

// classify maps a core error to an HTTP status and error type.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, noise.ErrOutOfDomain), errors.Is(err, noise.ErrOutOfBounds):
		return http.StatusBadRequest, ErrTypeDomain
	case errors.Is(err, noise.ErrInvalidDimensions):
		return http.StatusBadRequest, ErrTypeValidation
	default:
		return http.StatusInternalServerError, ErrTypeInternal
	}
}

func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	status, errType := classify(err)
	s.writeError(w, r, status, errType, err.Error(), nil)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, errType, message string, context map[string]any) {
	apiErr := APIError{
		Type:      errType,
		Message:   message,
		Context:   context,
		RequestID: middleware.GetReqID(r.Context()),
	}
	level := s.logger.Warn
	if status >= http.StatusInternalServerError {
		level = s.logger.Error
	}
	level("request failed",
		"request_id", apiErr.RequestID,
		"method", r.Method,
		"path", r.URL.Path,
		"status", status,
		"error", message)
	s.writeJSON(w, status, apiErr)
}
