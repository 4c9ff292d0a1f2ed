package errors

import (
	"net/http"

	"github.com/Sharif-Hamza/eventlynk-backend/pkg/status"
)

// AppError carries the HTTP status code and machine-readable status a
// failure should resolve to at the request boundary.
type AppError struct {
	HTTPStatusCode int
	Status         string
	Message        string
}

func (e *AppError) Error() string {
	return e.Message
}

func New(httpStatusCode int, status string, message string) error {
	return &AppError{
		HTTPStatusCode: httpStatusCode,
		Status:         status,
		Message:        message,
	}
}

// Destruct resolves any error into an AppError. Errors that did not
// originate from New are treated as internal server errors.
func Destruct(err error) *AppError {
	if ae, ok := err.(*AppError); ok {
		return ae
	}

	return &AppError{
		HTTPStatusCode: http.StatusInternalServerError,
		Status:         status.INTERNAL_SERVER_ERROR,
		Message:        err.Error(),
	}
}
