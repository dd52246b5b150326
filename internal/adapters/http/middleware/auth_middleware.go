package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/swearleehlairlookus-boop/erp/internal/config"
	"github.com/swearleehlairlookus-boop/erp/internal/pkg/jwt"
	"github.com/swearleehlairlookus-boop/erp/internal/pkg/response"
)

// authFailedMessage is returned for every authentication failure.
// A missing header, a garbled token and a bad signature all read the
// same to the caller.
const authFailedMessage = "Invalid or missing authentication token"

// RequireAuth validates the bearer token and stores the caller's
// identity in the request context
func RequireAuth(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. Tokens travel in the Authorization header only
		authHeader := c.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			return response.Unauthorized(c, authFailedMessage)
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			return response.Unauthorized(c, authFailedMessage)
		}

		// 2. Validate
		claims, err := jwt.Validate(token, cfg.JWT.Secret)
		if err != nil {
			return response.Unauthorized(c, authFailedMessage)
		}

		// 3. Stash identity for handlers and the role guard
		c.Locals("userID", claims.UserID)
		c.Locals("email", claims.Email)
		c.Locals("role", claims.Role)

		return c.Next()
	}
}

// RequireRole allows only the listed roles past. Must run after
// RequireAuth.
func RequireRole(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return response.Unauthorized(c, authFailedMessage)
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// UserID returns the authenticated user's ID from the request context
func UserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals("userID").(uint); ok {
		return id
	}
	return 0
}
