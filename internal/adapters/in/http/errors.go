package http

import (
	"errors"
	"net/http"
	"strings"

	"washroute/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// statusFor maps an application error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrStateIsInvalid):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(c echo.Context, err error) error {
	status := statusFor(err)
	message := sanitize(err.Error())
	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err,
		)
		message = http.StatusText(status)
	}

	return c.JSON(status, ErrorResponse{Code: status, Message: message})
}

func sanitize(msg string) string {
	return strings.Join(strings.Fields(msg), " ")
}
