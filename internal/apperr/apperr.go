// Package apperr is the single place where error kinds map to HTTP statuses.
// Handlers return *Error values and the echo error handler renders them, so
// every route shares one translation table.
package apperr

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

type Kind int

const (
	Validation Kind = iota
	Unauthorized
	BadRequest
	Forbidden
	NotFound
	InsufficientStock
	Internal
)

var statusByKind = map[Kind]int{
	Validation:        http.StatusBadRequest,
	Unauthorized:      http.StatusUnauthorized,
	BadRequest:        http.StatusBadRequest,
	Forbidden:         http.StatusForbidden,
	NotFound:          http.StatusNotFound,
	InsufficientStock: http.StatusBadRequest,
	Internal:          http.StatusInternalServerError,
}

func (k Kind) Status() int {
	if s, ok := statusByKind[k]; ok {
		return s
	}
	return http.StatusInternalServerError
}

type Error struct {
	Kind    Kind
	Message string
	// Fields holds per-field validation messages; rendered as the whole
	// response body when present.
	Fields map[string]string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Fields(fields map[string]string) *Error {
	return &Error{Kind: Validation, Message: "validation failed", Fields: fields}
}

// ErrorHandler turns returned errors into JSON responses. Wrapped causes are
// logged server-side and never leak into the body.
func ErrorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var ae *Error
		if errors.As(err, &ae) {
			if ae.Err != nil {
				log.Error("request failed",
					"method", c.Request().Method,
					"path", c.Path(),
					"status", ae.Kind.Status(),
					"error", ae.Err,
				)
			}
			if len(ae.Fields) > 0 {
				_ = c.JSON(ae.Kind.Status(), ae.Fields)
				return
			}
			_ = c.JSON(ae.Kind.Status(), echo.Map{"message": ae.Message})
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			_ = c.JSON(he.Code, echo.Map{"message": fmt.Sprint(he.Message)})
			return
		}

		log.Error("unhandled error", "method", c.Request().Method, "path", c.Path(), "error", err)
		_ = c.JSON(http.StatusInternalServerError, echo.Map{"message": "An error occurred"})
	}
}
