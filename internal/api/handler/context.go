package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/taskboard/tracker-api/internal/api/middleware"
	"github.com/taskboard/tracker-api/internal/core/domain"
)

// ctxUserID returns the identity injected by the Auth middleware. An empty
// value means the middleware did not run for this route.
func ctxUserID(c echo.Context) (string, error) {
	userID, _ := c.Get(middleware.UserIDKey).(string)
	if userID == "" {
		return "", domain.ErrTokenMissing
	}
	return userID, nil
}
