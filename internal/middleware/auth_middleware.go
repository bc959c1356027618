package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"rateMenu/pkg/logger"
	"rateMenu/pkg/utils"

	"github.com/labstack/echo/v4"
)

// ContextUserID is the echo context key AuthMiddleware stores the caller under.
const ContextUserID = "user_id"

// AuthMiddleware validates a "Bearer <jwt>" Authorization header signed with
// secret and stores the caller's id (int64) on the echo context.
func AuthMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "missing authorization header"})
			}

			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid authorization format"})
			}

			// expiry is enforced by the jwt parser
			claims, err := utils.ParseJWT(tokenParts[1], secret)
			if err != nil {
				logger.Warn("Failed to parse JWT", err)
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid token"})
			}

			userID, err := strconv.ParseInt(claims.UserID, 10, 64)
			if err != nil || userID <= 0 {
				logger.Error("Invalid user ID in token", "user_id", claims.UserID)
				return c.JSON(http.StatusForbidden, echo.Map{"message": "invalid user id in token"})
			}

			c.Set(ContextUserID, userID)

			return next(c)
		}
	}
}
