package middleware

import (
	"errors"
	"net/http"

	"rateMenu/pkg/logger"
	"rateMenu/pkg/trace"

	"github.com/labstack/echo/v4"
)

// ErrorHandler renders every unhandled error as {"message": ...}, the same
// body the handlers return themselves.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := http.StatusText(code)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		} else {
			message = http.StatusText(code)
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Error("Unhandled request error",
			"trace_id", trace.TraceIDFromContext(c.Request().Context()),
			"path", c.Path(),
			err,
		)
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(code)
	} else {
		writeErr = c.JSON(code, echo.Map{"message": message})
	}
	if writeErr != nil {
		logger.Error("Failed to write error response", writeErr)
	}
}
