package auth

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bluekeys/repair_shop/internal/apperr"
	"github.com/bluekeys/repair_shop/internal/service/token"
)

// CustomerIDKey is where RequireLogin stores the verified customer id on the
// echo context.
const CustomerIDKey = "customerID"

// RequireLogin gates a route behind a bearer token. A missing or non-bearer
// Authorization header is a 400; a token that fails verification is a 403.
func RequireLogin(tokens *token.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				return apperr.New(apperr.BadRequest, "Invalid Authorization header format!")
			}

			raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			if raw == "" {
				return apperr.New(apperr.Forbidden, "Token is missing")
			}

			customerID, err := tokens.Parse(raw)
			if err != nil {
				return err
			}

			c.Set(CustomerIDKey, customerID)
			return next(c)
		}
	}
}

// CustomerID reads the id RequireLogin stored on the context.
func CustomerID(c echo.Context) (uint, bool) {
	id, ok := c.Get(CustomerIDKey).(uint)
	return id, ok
}
