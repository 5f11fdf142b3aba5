package apierr

import (
	"errors"
	"net/http"

	"github.com/mcoot/gamehub-go/internal/api/response"
	"github.com/mcoot/gamehub-go/internal/model"
)

// ErrorResponse is the JSON error envelope
type ErrorResponse struct {
	Error string `json:"error"`
}

// httpError combines an HTTP status code with a message
type httpError struct {
	status  int
	message string
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	response.JSON(w, he.status, ErrorResponse{Error: he.message})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrUserNotFound):
		return &httpError{http.StatusNotFound, "user not found"}
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, "game not found"}
	case errors.Is(err, model.ErrProgressNotFound):
		return &httpError{http.StatusNotFound, "progress not found"}
	case errors.Is(err, model.ErrUserExists):
		return &httpError{http.StatusConflict, model.ErrUserExists.Error()}
	case errors.Is(err, model.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, model.ErrInvalidCredentials.Error()}
	case errors.Is(err, model.ErrInvalidToken):
		return &httpError{http.StatusUnauthorized, "invalid or expired token"}
	case errors.Is(err, model.ErrSelfModification):
		return &httpError{http.StatusBadRequest, model.ErrSelfModification.Error()}
	default:
		return &httpError{http.StatusInternalServerError, "internal server error"}
	}
}

// NewValidationError creates a 400 error with the given message
func NewValidationError(message string) error {
	return &httpError{http.StatusBadRequest, message}
}

// NewUnauthorizedError creates a 401 error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, "not authorized"}
}

// NewForbiddenError creates a 403 error
func NewForbiddenError() error {
	return &httpError{http.StatusForbidden, "admin access required"}
}

// NewNotFoundError creates a 404 error with the given message
func NewNotFoundError(message string) error {
	return &httpError{http.StatusNotFound, message}
}

// NewInternalError creates a 500 error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, "internal server error"}
}
