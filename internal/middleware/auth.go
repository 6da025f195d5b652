package middleware

import (
	"net/http"
	"strings"

	"admin-service/internal/model"
	"admin-service/pkg/jwtutil"
	"admin-service/pkg/logger"
	"admin-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuthMiddleware validates the JWT token from the Authorization header
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		// Get the Authorization header
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			log.Error("Missing Authorization header")
			prometheus.RecordAuthError("missing_token")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
		}

		// Check if it's a Bearer token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			log.Error("Invalid Authorization header format")
			prometheus.RecordAuthError("invalid_auth_format")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization format, expected Bearer token"})
		}

		// Extract the token
		tokenString := parts[1]

		// Validate the token
		claims, err := jwtutil.ValidateToken(tokenString)
		if err != nil {
			log.Error("Invalid JWT token", zap.Error(err))
			prometheus.RecordAuthError("invalid_token")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
		}

		// Store user info in context for later use
		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("user_role", claims.Role)

		if claims.BusinessID != nil {
			c.Set("business_id", *claims.BusinessID)
		}

		// Token is valid, proceed with the request
		return next(c)
	}
}

// RequireSuperAdmin rejects any caller that does not hold the platform-wide
// privileged role. It must run after AuthMiddleware so the role claim is
// already in the context. The rejection happens before any data access.
func RequireSuperAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		role, ok := c.Get("user_role").(string)
		if !ok || role != model.RoleSuperAdmin {
			log.Warn("Privileged operation rejected",
				zap.String("role", role),
				zap.String("path", c.Path()))
			prometheus.RecordAuthError("insufficient_role")
			return c.JSON(http.StatusForbidden, echo.Map{"error": "superadmin role required"})
		}

		return next(c)
	}
}
