package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"tattoo-studio-api/internal/services"
	"tattoo-studio-api/pkg/lambda"
)

// Handler-level messages
const (
	msgMethodNotAllowed  = "Method not allowed"
	msgMethodUnsupported = "Метод не поддерживается"
	msgMalformedBody     = "Некорректный формат данных"
	msgServerError       = "Ошибка сервера"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// statusForError maps the service error kinds onto HTTP status codes
func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// handleError turns err into a JSON error response. Errors outside the
// service taxonomy are logged and reported with their text.
func handleError(logger *logrus.Logger, req *lambda.Request, err error) (*lambda.Response, error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		logger.WithFields(logrus.Fields{
			"request_id": req.RequestID,
			"method":     req.Method,
			"error":      err.Error(),
		}).Error("Request failed")
		return errorResponse(status, fmt.Sprintf("%s: %v", msgServerError, err))
	}

	message, ok := services.ClientMessage(err)
	if !ok {
		message = err.Error()
	}
	return errorResponse(status, message)
}
