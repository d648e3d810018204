package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"moneypal-go-be/auth"
)

// UserIDKey is the locals key under which Protected stores the caller's ID.
const UserIDKey = "user_id"

// Protected returns a middleware that requires a valid bearer token and puts
// the authenticated user ID into the request locals.
func Protected(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authorization header is required"})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid authorization format"})
		}

		userID, err := auth.ValidateToken(parts[1], secret)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
		}

		c.Locals(UserIDKey, userID)
		return c.Next()
	}
}
