package middleware

import (
	"rateMenu/pkg/trace"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Trace reuses the caller's X-Request-ID or mints a uuid, echoes it back, and
// stores it on the request context for log correlation.
func Trace() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			id := req.Header.Get(trace.HeaderTraceID)
			if id == "" {
				id = uuid.NewString()
			}

			c.Response().Header().Set(trace.HeaderTraceID, id)
			c.SetRequest(req.WithContext(trace.WithTraceID(req.Context(), id)))

			return next(c)
		}
	}
}
