package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskboard/tracker-api/pkg/logger"
)

// RequestContext stores log, tagged with the request id, in the request
// context. It must run after echo's RequestID middleware.
func RequestContext(log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			req := c.Request()
			c.SetRequest(req.WithContext(logger.WithRequestID(req.Context(), log, rid)))
			return next(c)
		}
	}
}
