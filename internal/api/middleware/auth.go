package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/tracker-api/internal/core/domain"
	"github.com/taskboard/tracker-api/internal/core/ports"
)

// UserIDKey is the echo context key the verified user id is stored under.
const UserIDKey = "user_id"

// Auth verifies the token in the Authorization header and injects the user id
// into context. The header carries the raw token; a "Bearer " prefix is
// accepted too. Failures are returned as domain errors for the error handler.
func Auth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if token == "" {
				return domain.ErrTokenMissing
			}

			userID, err := tokens.Verify(token)
			if err != nil {
				return domain.ErrTokenInvalid
			}

			c.Set(UserIDKey, userID)
			return next(c)
		}
	}
}

// bearerToken strips an optional "Bearer" scheme from the header value.
func bearerToken(header string) string {
	token := strings.TrimSpace(header)
	if scheme, rest, ok := strings.Cut(token, " "); ok && strings.EqualFold(scheme, "bearer") {
		return strings.TrimSpace(rest)
	}
	if strings.EqualFold(token, "bearer") {
		return ""
	}
	return token
}
